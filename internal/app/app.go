// Package app builds the services shared by the GUI and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zmb3/spotify/v2"

	"spotify-hotkey/internal/action"
	"spotify-hotkey/internal/auth"
	"spotify-hotkey/internal/config"
	"spotify-hotkey/internal/hotkey"
	"spotify-hotkey/internal/logging"
	"spotify-hotkey/internal/playback"
	"spotify-hotkey/internal/result"
)

// App holds the long-lived services.
type App struct {
	Paths    config.Paths
	Config   *config.Service
	Log      *log.Logger
	Playback *playback.Service

	auth      *auth.Service
	authErr   error
	cache     *hotkey.Cache
	logCloser io.Closer

	onResult func(action.Action, result.Result)

	mu      sync.Mutex
	manager *hotkey.Manager
	hotkeys *hotkey.Service
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New loads the config, opens the log and builds the auth and playback
// services. Missing Spotify credentials are not fatal: commands report
// them instead.
func New(paths config.Paths) (*App, error) {
	cfgSvc, err := config.New(paths.ConfigFile())
	if err != nil {
		return nil, err
	}
	cfg := cfgSvc.Get()

	logger, closer, err := logging.New(cfg.Log.Level, paths.LogFile())
	if err != nil {
		return nil, err
	}

	a := &App{
		Paths:     paths,
		Config:    cfgSvc,
		Log:       logger,
		cache:     hotkey.NewCache(paths.HotkeyFile()),
		logCloser: closer,
	}

	authSvc, err := auth.New(cfg, auth.NewTokenStore(paths.TokenFile()), logger.WithPrefix("auth"))
	if err != nil {
		logger.Warn("Spotify authentication unavailable", "err", err, "config", cfgSvc.Path())
		a.authErr = err
		a.Playback = playback.New(unavailable{err}, cfg.Playback, logger.WithPrefix("playback"))
	} else {
		a.auth = authSvc
		a.Playback = playback.New(authSvc, cfg.Playback, logger.WithPrefix("playback"))
	}

	return a, nil
}

// Auth returns the auth service, or the reason it is unavailable.
func (a *App) Auth() (*auth.Service, error) {
	if a.auth == nil {
		return nil, a.authErr
	}
	return a.auth, nil
}

// OnHotkeyResult registers a callback for every action a hotkey triggers.
// It must be set before StartHotkeys.
func (a *App) OnHotkeyResult(fn func(action.Action, result.Result)) {
	a.onResult = fn
}

// StartHotkeys takes ownership of backend, restores the saved hotkeys and
// starts the dispatcher and, if enabled, the cache watcher.
func (a *App) StartHotkeys(ctx context.Context, backend hotkey.Backend) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.manager != nil {
		return errors.New("hotkeys already started")
	}

	logger := a.Log.WithPrefix("hotkey")
	manager := hotkey.NewManager(backend)
	registry := hotkey.NewRegistry(manager, logger)
	service := hotkey.NewService(a.cache, registry, logger)

	failures, err := service.Restore(ctx)
	if err != nil {
		manager.Close()
		return fmt.Errorf("failed to restore hotkeys: %w", err)
	}
	for act, ferr := range failures {
		logger.Warn("Saved hotkey not active", "action", act, "err", ferr)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	dispatcher := hotkey.NewDispatcher(manager.Events(), registry, a.Playback, logger)
	if a.onResult != nil {
		dispatcher.OnResult(a.onResult)
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		dispatcher.Run(runCtx)
	}()

	if a.Config.Get().Hotkeys.WatchCache {
		watcher := hotkey.NewWatcher(service, logger)
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := watcher.Run(runCtx); err != nil {
				logger.Warn("Hotkey cache watcher stopped", "err", err)
			}
		}()
	}

	a.manager = manager
	a.hotkeys = service
	a.cancel = cancel
	return nil
}

// InitAuth restores or starts authentication.
func (a *App) InitAuth(ctx context.Context) result.Result {
	if a.auth == nil {
		return result.Errorf("%v", a.authErr)
	}
	return a.auth.InitAuth(ctx)
}

// HandleCallback completes the OAuth flow with code.
func (a *App) HandleCallback(ctx context.Context, code string) result.Result {
	if a.auth == nil {
		return result.Errorf("%v", a.authErr)
	}
	res := a.auth.HandleCallback(ctx, code)
	if res.IsSuccess() {
		// The new token may belong to another account.
		a.Playback.ForgetProfile()
	}
	return res
}

// Logout deletes the saved token and forgets the signed-in user.
func (a *App) Logout() result.Result {
	if a.auth == nil {
		return result.Errorf("%v", a.authErr)
	}
	a.Playback.ForgetProfile()
	if err := a.auth.Logout(); err != nil {
		a.Log.Error("Failed to delete token", "err", err)
		return result.Errorf("Failed to log out: %v", err)
	}
	a.Log.Info("Logged out of Spotify")
	return result.Success()
}

// CheckAuthStatus reports whether a usable token is saved.
func (a *App) CheckAuthStatus() result.Result {
	if a.auth == nil {
		return result.Errorf("%v", a.authErr)
	}
	return a.auth.CheckAuthStatus()
}

// Me returns the signed-in user, or nil when not signed in.
func (a *App) Me(ctx context.Context) (*spotify.PrivateUser, error) {
	return a.Playback.Me(ctx)
}

// SetHotkeys saves and applies a new hotkey set. Empty strings leave an
// action unbound. Bindings that fail to parse or register are skipped and
// returned keyed by action name; the others stay active and the result is
// still Success. Without a running listener the set is only validated and
// saved.
func (a *App) SetHotkeys(ctx context.Context, hotkeys map[action.Action]string) (result.Result, map[string]string) {
	a.mu.Lock()
	service := a.hotkeys
	a.mu.Unlock()

	var failures map[action.Action]error
	if service != nil {
		var err error
		failures, err = service.Set(ctx, hotkeys)
		if err != nil {
			return result.Errorf("Failed to set hotkeys: %v", err), nil
		}
	} else {
		failures = validate(hotkeys)
		mapping := make(map[string]string, len(hotkeys))
		for act, s := range hotkeys {
			mapping[act.String()] = s
		}
		if err := a.cache.Save(mapping); err != nil {
			return result.Errorf("Failed to save hotkeys: %v", err), nil
		}
	}

	if len(failures) == 0 {
		return result.Success(), nil
	}
	skipped := make(map[string]string, len(failures))
	for act, err := range failures {
		a.Log.Warn("Hotkey skipped", "action", act, "hotkey", hotkeys[act], "err", err)
		skipped[act.String()] = err.Error()
	}
	return result.Success(), skipped
}

// LoadedHotkeys returns the saved hotkey strings.
func (a *App) LoadedHotkeys() (map[string]string, error) {
	mapping, err := a.cache.Read()
	if err != nil {
		a.Log.Debug("No saved hotkeys", "err", err)
		return nil, errors.New("failed to load hotkeys")
	}
	return mapping, nil
}

// ActiveHotkeys returns the registered bindings, or nil without a
// running listener.
func (a *App) ActiveHotkeys() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.hotkeys == nil {
		return nil
	}
	return a.hotkeys.Active()
}

// Close stops the hotkey listener, unregisters everything, stops the
// callback server and closes the log.
func (a *App) Close() error {
	var errs []error

	a.mu.Lock()
	manager := a.manager
	service := a.hotkeys
	cancel := a.cancel
	a.manager, a.hotkeys, a.cancel = nil, nil, nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if service != nil {
		if err := service.Registry().Clear(context.Background()); err != nil {
			errs = append(errs, err)
		}
	}
	if manager != nil {
		if err := manager.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.wg.Wait()

	if a.auth != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.auth.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		cancel()
	}

	if err := a.logCloser.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func validate(hotkeys map[action.Action]string) map[action.Action]error {
	failures := make(map[action.Action]error)
	for act, s := range hotkeys {
		if s == "" {
			continue
		}
		if _, err := hotkey.Parse(s); err != nil {
			failures[act] = err
		}
	}
	return failures
}

// unavailable stands in for the auth service when it could not be built.
type unavailable struct {
	err error
}

func (u unavailable) Client(context.Context) (*spotify.Client, error) { return nil, u.err }

func (u unavailable) AuthURL() string { return "" }
