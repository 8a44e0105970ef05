package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/runtime"
	"github.com/zmb3/spotify/v2"

	"spotify-hotkey/internal/action"
	"spotify-hotkey/internal/app"
	"spotify-hotkey/internal/config"
	"spotify-hotkey/internal/hotkey"
	"spotify-hotkey/internal/result"
	"spotify-hotkey/internal/tray"
	"spotify-hotkey/internal/window"
)

//go:embed all:frontend/dist
var assets embed.FS

// App struct
type App struct {
	ctx    context.Context
	core   *app.App
	window *window.Service
	tray   *tray.Manager
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// OnStartup is called when the app starts up
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	paths, err := config.ResolvePaths()
	if err != nil {
		fmt.Printf("Failed to resolve directories: %v\n", err)
		os.Exit(1)
	}

	core, err := app.New(paths)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	a.core = core

	ctrl := window.NewWailsController(ctx)
	a.window = window.New(ctrl, workArea(ctrl), core.Config.Get().Window, core.Log.WithPrefix("window"))

	core.OnHotkeyResult(func(act action.Action, res result.Result) {
		runtime.EventsEmit(ctx, "hotkey-result", act.String(), res)
	})
	if err := core.StartHotkeys(ctx, hotkey.NewOSBackend()); err != nil {
		core.Log.Error("Hotkeys unavailable", "err", err)
	}

	if authSvc, err := core.Auth(); err == nil {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case code := <-authSvc.Callback().Codes():
					runtime.EventsEmit(ctx, "auth-result", core.HandleCallback(ctx, code))
				}
			}
		}()
	}

	a.tray = tray.New(a.window, core.Log.WithPrefix("tray"))
	a.window.OnChange(a.tray.SetVisible)
	a.tray.Start()
	go func() {
		<-a.tray.QuitRequested()
		runtime.Quit(ctx)
	}()
}

// OnShutdown is called when the app is shutting down
func (a *App) OnShutdown(ctx context.Context) {
	if a.tray != nil {
		a.tray.Stop()
	}
	if a.core != nil {
		if err := a.core.Close(); err != nil {
			fmt.Printf("Shutdown: %v\n", err)
		}
	}
}

// InitAuth restores the saved session or returns the authorize URL
func (a *App) InitAuth() result.Result {
	return a.core.InitAuth(a.ctx)
}

// HandleCallback exchanges the code posted back by the callback page
func (a *App) HandleCallback(code string) result.Result {
	return a.core.HandleCallback(a.ctx, code)
}

// Logout deletes the saved token
func (a *App) Logout() result.Result {
	return a.core.Logout()
}

// CheckAuthStatus reports whether a usable token is saved
func (a *App) CheckAuthStatus() result.Result {
	return a.core.CheckAuthStatus()
}

// Me returns the signed-in user's profile
func (a *App) Me() (*spotify.PrivateUser, error) {
	return a.core.Me(a.ctx)
}

// PlayPause toggles playback
func (a *App) PlayPause() result.Result {
	return a.core.Playback.PlayPause(a.ctx)
}

// NextTrack skips forward
func (a *App) NextTrack() result.Result {
	return a.core.Playback.Next(a.ctx)
}

// PrevTrack skips back
func (a *App) PrevTrack() result.Result {
	return a.core.Playback.Previous(a.ctx)
}

// VolumeControlUp raises the volume one step
func (a *App) VolumeControlUp() result.Result {
	return a.core.Playback.VolumeUp(a.ctx)
}

// VolumeControlDown lowers the volume one step
func (a *App) VolumeControlDown() result.Result {
	return a.core.Playback.VolumeDown(a.ctx)
}

// SetHotkeys saves and registers the hotkeys. Empty strings unbind.
// Skipped bindings are sent as a hotkeys-skipped event.
func (a *App) SetHotkeys(playPause, nextTrack, prevTrack, volumeUp, volumeDown string) result.Result {
	res, skipped := a.core.SetHotkeys(a.ctx, map[action.Action]string{
		action.PlayPause:  playPause,
		action.NextTrack:  nextTrack,
		action.PrevTrack:  prevTrack,
		action.VolumeUp:   volumeUp,
		action.VolumeDown: volumeDown,
	})
	if len(skipped) > 0 {
		runtime.EventsEmit(a.ctx, "hotkeys-skipped", skipped)
	}
	return res
}

// ReturnLoadedHotkeys returns the saved hotkey strings keyed by action
func (a *App) ReturnLoadedHotkeys() (map[string]string, error) {
	return a.core.LoadedHotkeys()
}

// ShowWindow shows the window near the tray
func (a *App) ShowWindow() {
	a.window.Show()
}

// HideWindow hides the window
func (a *App) HideWindow() {
	a.window.Hide()
}

func main() {
	// Create an instance of the app structure
	app := NewApp()

	err := wails.Run(&options.App{
		Title:  "Spotify Hotkey",
		Width:  500,
		Height: 500,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Frameless:         true,
		AlwaysOnTop:       true,
		StartHidden:       true,
		HideWindowOnClose: true,
		DisableResize:     true,
		BackgroundColour:  &options.RGBA{R: 18, G: 18, B: 18, A: 255},
		OnStartup:         app.OnStartup,
		OnShutdown:        app.OnShutdown,
		Bind:              []interface{}{app},
	})

	if err != nil {
		fmt.Printf("Error starting application: %v\n", err)
		os.Exit(1)
	}
}
