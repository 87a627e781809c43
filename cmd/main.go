package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/desertthunder/ytexport/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(ctx, os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "ytexport",
		Usage:    "Export a YouTube channel's videos, statistics and comments to a spreadsheet",
		Version:  "0.1.0",
		Commands: r.register(),
	}
}
