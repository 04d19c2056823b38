// rowgen appends synthetic freelancer rows to a file or stdout at a fixed
// rate. Point `datagrid -file <out> -follow` at the output to watch rows
// arrive.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datagrid/internal/parse"
)

func main() {
	var (
		format      string
		rate        float64
		outPath     string
		toStdout    bool
		count       int
		durationStr string
		seed        int64
	)
	flag.StringVar(&format, "format", "json", "row format: json|logfmt|csv")
	flag.Float64Var(&rate, "rate", 2.0, "rows per second")
	flag.StringVar(&outPath, "out", "", "append rows to this file")
	flag.BoolVar(&toStdout, "stdout", false, "write to stdout instead of a file")
	flag.IntVar(&count, "count", 0, "stop after N rows (0 = until interrupted)")
	flag.StringVar(&durationStr, "duration", "", "optional run duration (e.g. 30s, 2m)")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	f, err := parse.ParseFormat(format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !toStdout && outPath == "" {
		fmt.Fprintln(os.Stderr, "either --out or --stdout is required")
		os.Exit(2)
	}
	var deadline time.Time
	if durationStr != "" {
		d, err := time.ParseDuration(durationStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid duration: %v\n", err)
			os.Exit(2)
		}
		deadline = time.Now().Add(d)
	}

	abort := make(chan os.Signal, 1)
	signal.Notify(abort, os.Interrupt, syscall.SIGTERM)

	var out io.Writer = os.Stdout
	writeHeader := true
	if !toStdout {
		fi, statErr := os.Stat(outPath)
		writeHeader = statErr != nil || fi.Size() == 0
		file, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
		fmt.Fprintf(os.Stderr, "appending %s rows -> %s at %.2f rows/s\n", f, outPath, rate)
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	gen := newGenerator(f, rand.New(rand.NewSource(seed)))
	if writeHeader {
		if h := gen.header(); h != "" {
			w.WriteString(h + "\n")
			w.Flush()
		}
	}

	if rate <= 0 {
		rate = 1
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
	defer ticker.Stop()
	for n := 0; count == 0 || n < count; n++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return
		}
		select {
		case <-abort:
			return
		case <-ticker.C:
		}
		w.WriteString(gen.line() + "\n")
		_ = w.Flush()
	}
}
