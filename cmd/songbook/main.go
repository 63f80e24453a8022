package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/songhaven/songbook/internal/config"
)

const version = "0.3.0"

func main() {
	runner := NewRunner(RunnerOpts{})

	root := &cli.Command{
		Name:     "songbook",
		Usage:    "Personal song catalog and playback client",
		Version:  version,
		Commands: runner.register(),
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   config.DefaultPath(),
	}
}
