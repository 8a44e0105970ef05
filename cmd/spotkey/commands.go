package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/urfave/cli/v3"

	"spotify-hotkey/internal/action"
	"spotify-hotkey/internal/hotkey"
	"spotify-hotkey/internal/result"
)

func openBrowser(url string) error {
	return browser.OpenURL(url)
}

func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Log in to Spotify through the browser",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "How long to wait for the browser login",
				Value: 5 * time.Minute,
			},
		},
		Action: r.Auth,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Delete the saved Spotify token",
		Action: r.Logout,
	}
}

func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show whether a usable Spotify token is saved",
		Action: r.Status,
	}
}

func meCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "me",
		Usage: "Show the signed-in Spotify user",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		},
		Action: r.Me,
	}
}

func playPauseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "play-pause",
		Usage:  "Toggle playback",
		Action: r.perform(action.PlayPause),
	}
}

func nextCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "next",
		Usage:  "Skip to the next track",
		Action: r.perform(action.NextTrack),
	}
}

func prevCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "prev",
		Usage:  "Go back to the previous track",
		Action: r.perform(action.PrevTrack),
	}
}

func volumeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "volume",
		Usage: "Step the active device's volume",
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Raise the volume one step",
				Action: r.perform(action.VolumeUp),
			},
			{
				Name:   "down",
				Usage:  "Lower the volume one step",
				Action: r.perform(action.VolumeDown),
			},
		},
	}
}

func hotkeysCommand(r *Runner) *cli.Command {
	setFlags := make([]cli.Flag, 0, len(action.All()))
	for _, a := range action.All() {
		setFlags = append(setFlags, &cli.StringFlag{
			Name:  flagName(a),
			Usage: fmt.Sprintf("Hotkey for %s, e.g. \"CTRL + SHIFT + P\"; empty unbinds", a),
		})
	}

	return &cli.Command{
		Name:  "hotkeys",
		Usage: "Manage saved hotkeys",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the saved hotkeys",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.HotkeysList,
			},
			{
				Name:   "set",
				Usage:  "Save hotkeys; unspecified actions keep their current binding",
				Flags:  setFlags,
				Action: r.HotkeysSet,
			},
		},
	}
}

func listenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "listen",
		Usage:  "Register the saved hotkeys and run them until interrupted",
		Action: r.Listen,
	}
}

// flagName maps play_pause to play-pause.
func flagName(a action.Action) string {
	b := []byte(a.String())
	for i, c := range b {
		if c == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

// Auth restores the saved session or runs the browser login.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	authSvc, err := r.core.Auth()
	if err != nil {
		return err
	}

	res := r.core.InitAuth(ctx)
	if res.Kind != result.KindNeedsAuth {
		return r.report(res)
	}

	r.writePlain("Opening the browser to log in. If it does not open, visit:\n%s\n", res.URL)
	if err := r.open(res.URL); err != nil {
		r.core.Log.Warn("Could not open browser", "err", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	select {
	case code := <-authSvc.Callback().Codes():
		return r.report(r.core.HandleCallback(ctx, code))
	case <-ctx.Done():
		return fmt.Errorf("login not completed: %w", ctx.Err())
	}
}

// Logout deletes the saved token.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	return r.report(r.core.Logout())
}

// Status prints the token state.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	return r.report(r.core.CheckAuthStatus())
}

// Me prints the signed-in user.
func (r *Runner) Me(ctx context.Context, cmd *cli.Command) error {
	user, err := r.core.Me(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return r.report(result.Errorf("Not authenticated"))
	}
	if cmd.Bool("json") {
		return r.writeJSON(user)
	}
	return r.writePlain("%s (%s) %s\n", user.DisplayName, user.ID, user.Email)
}

func (r *Runner) perform(a action.Action) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		return r.report(r.core.Playback.Perform(ctx, a))
	}
}

// HotkeysList prints the saved hotkeys.
func (r *Runner) HotkeysList(ctx context.Context, cmd *cli.Command) error {
	mapping, err := r.core.LoadedHotkeys()
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(mapping)
	}

	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.writePlain("%-12s %s\n", name, mapping[name])
	}
	return nil
}

// HotkeysSet merges the given flags into the saved hotkeys. A running
// listener picks the change up from the cache file.
func (r *Runner) HotkeysSet(ctx context.Context, cmd *cli.Command) error {
	current, err := r.core.LoadedHotkeys()
	if err != nil {
		current = map[string]string{}
	}

	next := make(map[action.Action]string, len(action.All()))
	for _, a := range action.All() {
		if cmd.IsSet(flagName(a)) {
			next[a] = cmd.String(flagName(a))
		} else if s, ok := current[a.String()]; ok {
			next[a] = s
		}
	}

	res, skipped := r.core.SetHotkeys(ctx, next)
	names := make([]string, 0, len(skipped))
	for name := range skipped {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.writePlain("! skipped %s: %s\n", name, skipped[name])
	}
	return r.report(res)
}

// Listen registers the saved hotkeys and dispatches them until interrupted.
func (r *Runner) Listen(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The callback server is not started here so a running GUI keeps its port.
	if res := r.core.CheckAuthStatus(); !res.IsSuccess() {
		r.writePlain("Warning: %s; hotkeys will ask for login until `spotkey auth` succeeds.\n", res.Message)
	}

	r.core.OnHotkeyResult(func(a action.Action, res result.Result) {
		r.writePlain("%s: %s\n", a, res)
	})
	if err := r.core.StartHotkeys(ctx, hotkey.NewOSBackend()); err != nil {
		return err
	}

	active := r.core.ActiveHotkeys()
	if len(active) == 0 {
		r.writePlain("No hotkeys registered. Use `spotkey hotkeys set` to add some.\n")
	}
	for _, a := range action.All() {
		if s, ok := active[a.String()]; ok {
			r.writePlain("%-12s %s\n", a, s)
		}
	}
	r.writePlain("Listening for hotkeys, press Ctrl+C to stop.\n")

	<-ctx.Done()
	return nil
}
