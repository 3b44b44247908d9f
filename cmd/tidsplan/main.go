package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/tidsplan/internal/app"
	"github.com/alexanderramin/tidsplan/internal/cli"
	"github.com/alexanderramin/tidsplan/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config file: env var or default ~/.tidsplan/config.yaml
	cfgPath := os.Getenv("TIDSPLAN_CONFIG")
	if cfgPath == "" {
		cfgPath = filepath.Join(config.DefaultDir(), "config.yaml")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	appCtx, err := app.Open(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	a := &cli.App{
		Ctx: appCtx,
		// Detect interactive terminal for prompts and the live board.
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}
