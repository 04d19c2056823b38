package ingest

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nxadm/tail"
)

type SourceKind string

const (
	SourceStdin SourceKind = "stdin"
	SourceFile  SourceKind = "file"
	SourceDemo  SourceKind = "demo"
)

type Options struct {
	Source      SourceKind
	Path        string
	Follow      bool
	ScanBufSize int // per-line max (bytes)
	// Stdin overrides os.Stdin for SourceStdin.
	Stdin io.Reader
}

type Line struct {
	Text   string
	Source string
	When   time.Time
}

// Read streams lines from the configured source. In follow mode only lines
// appended after the call are delivered.
func Read(ctx context.Context, opt Options) (<-chan Line, <-chan error) {
	out := make(chan Line, 1024)
	errs := make(chan error, 1)
	if opt.ScanBufSize <= 0 {
		opt.ScanBufSize = 1024 * 1024
	}

	go func() {
		defer close(out)
		defer close(errs)

		switch opt.Source {
		case SourceStdin:
			in := opt.Stdin
			if in == nil {
				in = os.Stdin
			}
			readFromReader(ctx, in, "stdin", opt.ScanBufSize, out, errs)
		case SourceFile:
			if opt.Follow {
				readFromTail(ctx, opt.Path, out, errs)
				return
			}
			f, err := os.Open(opt.Path)
			if err != nil {
				errs <- err
				return
			}
			defer f.Close()
			readFromReader(ctx, f, opt.Path, opt.ScanBufSize, out, errs)
		case SourceDemo:
			demo(ctx, out)
		default:
			errs <- errors.New("unknown source kind")
		}
	}()

	return out, errs
}

func readFromReader(ctx context.Context, r io.Reader, src string, maxBuf int, out chan<- Line, errs chan<- error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 1024*64)
	scanner.Buffer(buf, maxBuf)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		case out <- Line{Text: scanner.Text(), Source: src, When: time.Now()}:
		}
	}
	if err := scanner.Err(); err != nil {
		errs <- err
	}
}

func readFromTail(ctx context.Context, path string, out chan<- Line, errs chan<- error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
		Poll:      true,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		errs <- err
		return
	}
	defer t.Cleanup()
	for {
		select {
		case <-ctx.Done():
			_ = t.Stop()
			return
		case l, ok := <-t.Lines:
			if !ok {
				return
			}
			if l.Err != nil {
				select {
				case errs <- l.Err:
				default:
				}
				continue
			}
			text := strings.TrimRight(l.Text, "\r")
			select {
			case out <- Line{Text: text, Source: path, When: time.Now()}:
			case <-ctx.Done():
				_ = t.Stop()
				return
			}
		}
	}
}

// demo emits a small freelance-marketplace dataset once.
func demo(ctx context.Context, out chan<- Line) {
	samples := []string{
		`{"id":"f-101","name":"Ada Brooks","skill":"Go","country":"UK","rate":95,"hours":32,"status":"active"}`,
		`{"id":"f-102","name":"Bruno Silva","skill":"React","country":"BR","rate":60,"hours":40,"status":"active"}`,
		`{"id":"f-103","name":"Chen Wei","skill":"Data","country":"CN","rate":75,"hours":12,"status":"paused"}`,
		`{"id":"f-104","name":"Dana Okafor","skill":"Design","country":"NG","rate":55,"hours":20,"status":"active"}`,
		`{"id":"f-105","name":"Elif Kaya","skill":"Go","country":"TR","rate":80,"hours":25,"status":"invited"}`,
		`{"id":"f-106","name":"Farid Haddad","skill":"DevOps","country":"LB","rate":90,"hours":8,"status":"active"}`,
		`{"id":"f-107","name":"Greta Lind","skill":"React","country":"SE","rate":85,"hours":30,"status":"paused"}`,
		`{"id":"f-108","name":"Hiro Sato","skill":"Mobile","country":"JP","rate":70,"hours":16,"status":"active"}`,
		`{"id":"f-109","name":"Ines Duarte","skill":"Data","country":"PT","rate":65,"hours":36,"status":"active"}`,
		`{"id":"f-110","name":"Jonas Weber","skill":"Go","country":"DE","rate":100,"hours":4,"status":"invited"}`,
		`{"id":"f-111","name":"Kemi Adeyemi","skill":"Design","country":"NG","rate":50,"hours":28,"status":"active"}`,
		`{"id":"f-112","name":"Luca Romano","skill":"DevOps","country":"IT","rate":88,"hours":22,"status":"active"}`,
	}
	for _, s := range samples {
		select {
		case <-ctx.Done():
			return
		case out <- Line{Text: s, Source: "demo", When: time.Now()}:
		}
	}
}
