package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"datagrid/internal/app"
	"datagrid/internal/config"
	"datagrid/internal/ui"
	"datagrid/internal/util/logx"
	"datagrid/internal/version"
)

func main() {
	logx.SetLevelFromEnv()
	fi, _ := os.Stdin.Stat()
	piped := fi != nil && (fi.Mode()&os.ModeCharDevice) == 0
	cfg, err := config.Load(os.Args[1:], piped)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println("datagrid", version.String())
		return
	}

	// Setup cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logx.Infof("starting datagrid %s: %s", version.String(), cfg.String())
	sess, err := app.Build(ctx, cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer sess.Close()

	if cfg.Headless() {
		n, err := sess.Export(cfg.ExportFormat, cfg.ExportOut)
		if err != nil {
			fmt.Fprintln(os.Stderr, "export error:", err)
			sess.Close()
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "exported %d rows to %s\n", n, cfg.ExportOut)
		return
	}

	if err := ui.Run(ctx, cfg, sess); err != nil {
		logx.Errorf("datagrid exited with error: %v", err)
		if logx.CurrentLevel() == logx.Debug {
			fmt.Fprintln(os.Stderr, logx.Dump())
		}
		sess.Close()
		os.Exit(1)
	}
}
