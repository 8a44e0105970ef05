package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.design/x/hotkey/mainthread"
)

func main() {
	// macOS delivers hotkey events only to the main thread's run loop.
	mainthread.Init(run)
}

func run() {
	runner := NewRunner(RunnerOpts{})

	app := &cli.Command{
		Name:  "spotkey",
		Usage: "Control Spotify playback and global hotkeys from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "home",
				Usage: "Keep config, cache and logs under this directory instead of the per-user defaults",
			},
		},
		Before:   runner.Setup,
		After:    runner.Teardown,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errFailed) {
			os.Exit(1)
		}
		log.Fatalf("spotkey: %v", err)
	}
}
