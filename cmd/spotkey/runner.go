package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"spotify-hotkey/internal/app"
	"spotify-hotkey/internal/config"
	"spotify-hotkey/internal/result"
)

// errFailed signals a command whose result was not a success. The result
// has already been printed.
var errFailed = errors.New("command failed")

// Runner holds the services for CLI commands and provides methods for each command action.
type Runner struct {
	core   *app.App
	output io.Writer
	open   func(url string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Core   *app.App
	Output io.Writer
	Open   func(url string) error
}

// NewRunner creates a Runner. Core is normally built by Setup.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Open == nil {
		opts.Open = openBrowser
	}
	return &Runner{core: opts.Core, output: opts.Output, open: opts.Open}
}

// Setup resolves directories and builds the services before any command runs.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.core != nil {
		return ctx, nil
	}

	var paths config.Paths
	var err error
	if home := cmd.String("home"); home != "" {
		paths, err = config.PathsAt(home)
	} else {
		paths, err = config.ResolvePaths()
	}
	if err != nil {
		return ctx, err
	}

	core, err := app.New(paths)
	if err != nil {
		return ctx, err
	}
	r.core = core
	return ctx, nil
}

// Teardown releases everything Setup acquired.
func (r *Runner) Teardown(ctx context.Context, cmd *cli.Command) error {
	if r.core == nil {
		return nil
	}
	return r.core.Close()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		authCommand, logoutCommand, statusCommand, meCommand,
		playPauseCommand, nextCommand, prevCommand, volumeCommand,
		hotkeysCommand, listenCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// report prints res and turns anything but success into an error.
func (r *Runner) report(res result.Result) error {
	switch res.Kind {
	case result.KindSuccess:
		return r.writePlain("✓ %s\n", res.OK)
	case result.KindNeedsAuth:
		r.writePlain("Not authenticated. Run `spotkey auth` or visit:\n%s\n", res.URL)
	default:
		r.writePlain("✗ %s\n", res.Message)
	}
	return errFailed
}

func (r *Runner) writeJSON(data any) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
