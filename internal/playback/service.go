package playback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/time/rate"

	"spotify-hotkey/internal/action"
	"spotify-hotkey/internal/auth"
	"spotify-hotkey/internal/config"
	"spotify-hotkey/internal/result"
)

// ErrNoActiveDevice is returned when Spotify has nowhere to play.
var ErrNoActiveDevice = errors.New("no active device")

// Player is the subset of the Spotify Web API the facade uses.
type Player interface {
	PlayerState(ctx context.Context, opts ...spotify.RequestOption) (*spotify.PlayerState, error)
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Volume(ctx context.Context, percent int) error
	CurrentUser(ctx context.Context) (*spotify.PrivateUser, error)
}

// Authorizer hands out the authenticated client.
type Authorizer interface {
	Client(ctx context.Context) (*spotify.Client, error)
	AuthURL() string
}

// Service handles Spotify playback commands
type Service struct {
	connect    func(ctx context.Context) (Player, error)
	authURL    func() string
	limiter    *rate.Limiter
	timeout    time.Duration
	volumeStep int
	profile    profileCache
	log        *log.Logger
}

// New creates a playback service using clients from authorizer.
func New(authorizer Authorizer, cfg config.PlaybackConfig, logger *log.Logger) *Service {
	connect := func(ctx context.Context) (Player, error) {
		client, err := authorizer.Client(ctx)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return newService(connect, authorizer.AuthURL, cfg, logger)
}

func newService(connect func(context.Context) (Player, error), authURL func() string, cfg config.PlaybackConfig, logger *log.Logger) *Service {
	return &Service{
		connect:    connect,
		authURL:    authURL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		volumeStep: cfg.VolumeStep,
		profile:    profileCache{now: time.Now},
		log:        logger,
	}
}

// Perform runs the playback command bound to a.
func (s *Service) Perform(ctx context.Context, a action.Action) result.Result {
	switch a {
	case action.PlayPause:
		return s.PlayPause(ctx)
	case action.NextTrack:
		return s.Next(ctx)
	case action.PrevTrack:
		return s.Previous(ctx)
	case action.VolumeUp:
		return s.VolumeUp(ctx)
	case action.VolumeDown:
		return s.VolumeDown(ctx)
	default:
		return result.Errorf("%v: %d", action.ErrUnknownAction, int(a))
	}
}

// PlayPause pauses when something is playing and resumes otherwise.
func (s *Service) PlayPause(ctx context.Context) result.Result {
	return s.run(ctx, "Play/pause", func(ctx context.Context, p Player) error {
		state, err := activeState(ctx, p)
		if err != nil {
			return err
		}
		if state.Playing {
			return p.Pause(ctx)
		}
		return p.Play(ctx)
	})
}

// Next skips to the next track.
func (s *Service) Next(ctx context.Context) result.Result {
	return s.run(ctx, "Next track", func(ctx context.Context, p Player) error {
		return p.Next(ctx)
	})
}

// Previous goes back to the previous track.
func (s *Service) Previous(ctx context.Context) result.Result {
	return s.run(ctx, "Previous track", func(ctx context.Context, p Player) error {
		return p.Previous(ctx)
	})
}

// VolumeUp raises the device volume by one step.
func (s *Service) VolumeUp(ctx context.Context) result.Result {
	return s.run(ctx, "Volume up", func(ctx context.Context, p Player) error {
		return s.stepVolume(ctx, p, s.volumeStep)
	})
}

// VolumeDown lowers the device volume by one step.
func (s *Service) VolumeDown(ctx context.Context) result.Result {
	return s.run(ctx, "Volume down", func(ctx context.Context, p Player) error {
		return s.stepVolume(ctx, p, -s.volumeStep)
	})
}

// Me returns the current user's profile, or nil when not authenticated.
// A profile fetched in the last ten minutes is reused.
func (s *Service) Me(ctx context.Context) (*spotify.PrivateUser, error) {
	p, err := s.connect(ctx)
	if errors.Is(err, auth.ErrNotAuthenticated) {
		s.profile.clear()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user := s.profile.get(); user != nil {
		return user, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := p.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %s", remoteMessage(err))
	}
	s.profile.set(user)
	return user, nil
}

// ForgetProfile drops the cached profile so the next Me asks Spotify.
func (s *Service) ForgetProfile() {
	s.profile.clear()
}

func (s *Service) stepVolume(ctx context.Context, p Player, delta int) error {
	state, err := activeState(ctx, p)
	if err != nil {
		return err
	}
	volume := clampVolume(int(state.Device.Volume) + delta)
	s.log.Debug("Setting volume", "device", state.Device.Name, "volume", volume)
	return p.Volume(ctx, volume)
}

// run acquires the client, waits for the rate limiter and issues op
// under the request timeout.
func (s *Service) run(ctx context.Context, op string, fn func(context.Context, Player) error) result.Result {
	p, err := s.connect(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return result.NeedsAuth(s.authURL())
		}
		return result.Errorf("%s failed: %v", op, err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return result.Errorf("%s failed: %v", op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := fn(ctx, p); err != nil {
		if noDevice(err) {
			return result.Errorf("No active playback")
		}
		s.log.Warn("Spotify API error", "op", op, "err", err)
		return result.Errorf("%s failed: %s", op, remoteMessage(err))
	}
	return result.Success()
}

func activeState(ctx context.Context, p Player) (*spotify.PlayerState, error) {
	state, err := p.PlayerState(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil || state.Device.ID == "" {
		return nil, ErrNoActiveDevice
	}
	return state, nil
}

func clampVolume(v int) int {
	return max(0, min(100, v))
}

// apiError unwraps the error body Spotify sent with a failed request.
func apiError(err error) (spotify.Error, bool) {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *spotify.Error
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return spotify.Error{}, false
}

// noDevice reports whether err means Spotify has no active device. The
// player endpoints answer 404 in that case.
func noDevice(err error) bool {
	if errors.Is(err, ErrNoActiveDevice) {
		return true
	}
	apiErr, ok := apiError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

func remoteMessage(err error) string {
	apiErr, ok := apiError(err)
	if !ok {
		return err.Error()
	}
	if apiErr.Status == http.StatusTooManyRequests {
		return "rate limited by Spotify, try again shortly"
	}
	return apiErr.Message
}
