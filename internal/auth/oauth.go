package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"spotify-hotkey/internal/config"
	"spotify-hotkey/internal/result"
)

// refreshWindow is how close to expiry a token is refreshed.
const refreshWindow = 5 * time.Minute

var (
	// ErrNotAuthenticated is returned by Client when no usable token exists.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrMissingCredentials is returned by New without a client ID and secret.
	ErrMissingCredentials = errors.New("Spotify client ID and secret must be configured")
)

// Service handles Spotify OAuth2 authentication
type Service struct {
	authenticator *spotifyauth.Authenticator
	tokens        *TokenStore
	callback      *CallbackServer
	state         string
	log           *log.Logger
	now           func() time.Time

	mu     sync.Mutex
	token  *oauth2.Token
	client *spotify.Client
}

// New creates a new auth service
func New(cfg *config.Config, tokens *TokenStore, logger *log.Logger) (*Service, error) {
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	state := uuid.NewString()

	auth := spotifyauth.New(
		spotifyauth.WithRedirectURL(cfg.Spotify.RedirectURI),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadEmail,
			spotifyauth.ScopeUserReadPrivate,
			spotifyauth.ScopeUserReadRecentlyPlayed,
			spotifyauth.ScopeUserLibraryRead,
			spotifyauth.ScopeUserReadCurrentlyPlaying,
			spotifyauth.ScopeUserReadPlaybackState,
			spotifyauth.ScopeUserModifyPlaybackState,
		),
		spotifyauth.WithClientID(cfg.Spotify.ClientID),
		spotifyauth.WithClientSecret(cfg.Spotify.ClientSecret),
	)

	return &Service{
		authenticator: auth,
		tokens:        tokens,
		callback:      NewCallbackServer(cfg.Callback.Addr(), state, logger),
		state:         state,
		log:           logger,
		now:           time.Now,
	}, nil
}

// Callback returns the loopback callback server.
func (s *Service) Callback() *CallbackServer {
	return s.callback
}

// AuthURL returns the OAuth authorization URL
func (s *Service) AuthURL() string {
	return s.authenticator.AuthURL(s.state)
}

// InitAuth starts the callback server and restores the saved token,
// refreshing it if it is about to expire. Without a usable token the
// result carries the authorize URL, or an error when the callback server
// could not start and the redirect would have nowhere to land.
func (s *Service) InitAuth(ctx context.Context) result.Result {
	serverErr := s.callback.Start()
	if serverErr != nil {
		s.log.Warn("Callback server unavailable", "addr", s.callback.Addr(), "err", serverErr)
	}

	if s.restore(ctx) {
		return result.Success()
	}
	if serverErr != nil {
		return result.Errorf("%v", serverErr)
	}
	return result.NeedsAuth(s.AuthURL())
}

// restore loads the saved token into the client, refreshing it first
// when needed. It reports whether a usable token is in place.
func (s *Service) restore(ctx context.Context) bool {
	token, err := s.tokens.Load()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			s.log.Warn("Ignoring unreadable token cache", "path", s.tokens.Path(), "err", err)
		}
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expiresSoon(token) {
		if err := s.refreshLocked(ctx, token); err != nil {
			s.log.Warn("Token refresh failed", "err", err)
			s.dropLocked()
			return false
		}
		return true
	}

	s.useLocked(ctx, token)
	return true
}

// HandleCallback exchanges an authorization code for a token, saves it
// and builds the client.
func (s *Service) HandleCallback(ctx context.Context, code string) result.Result {
	if code == "" {
		return result.Errorf("Missing authorization code")
	}

	token, err := s.authenticator.Exchange(ctx, code)
	if err != nil {
		s.log.Error("Token exchange failed", "err", err)
		return result.Errorf("Token exchange failed: %v", err)
	}

	if err := s.tokens.Save(token); err != nil {
		s.log.Error("Failed to save token", "err", err)
		return result.Errorf("Failed to save token: %v", err)
	}

	s.mu.Lock()
	s.useLocked(ctx, token)
	s.mu.Unlock()

	s.log.Info("Authenticated with Spotify")
	return result.Success()
}

// CheckAuthStatus reports whether a saved, unexpired token exists.
func (s *Service) CheckAuthStatus() result.Result {
	token, err := s.tokens.Load()
	if errors.Is(err, ErrNoToken) {
		return result.Errorf("No token found")
	}
	if err != nil {
		return result.Errorf("%v", err)
	}
	if !token.Expiry.IsZero() && !token.Expiry.After(s.now()) {
		return result.Errorf("Token expired")
	}
	return result.Success()
}

// Client returns the authenticated Spotify client, refreshing the token
// when it is within five minutes of expiry.
func (s *Service) Client(ctx context.Context) (*spotify.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		token, err := s.tokens.Load()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
		}
		s.useLocked(ctx, token)
	}

	if s.expiresSoon(s.token) {
		if err := s.refreshLocked(ctx, s.token); err != nil {
			s.dropLocked()
			return nil, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
		}
	}

	return s.client, nil
}

// Logout deletes the saved token and drops the client.
func (s *Service) Logout() error {
	s.mu.Lock()
	s.dropLocked()
	s.mu.Unlock()
	return s.tokens.Clear()
}

// Shutdown stops the callback server.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.callback.Shutdown(ctx)
}

func (s *Service) expiresSoon(token *oauth2.Token) bool {
	if token.Expiry.IsZero() {
		return false
	}
	return !token.Expiry.After(s.now().Add(refreshWindow))
}

func (s *Service) refreshLocked(ctx context.Context, token *oauth2.Token) error {
	if token.RefreshToken == "" {
		return fmt.Errorf("no refresh token available")
	}

	newToken, err := s.authenticator.RefreshToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	// Spotify may omit the refresh token from a refresh response.
	if newToken.RefreshToken == "" {
		newToken.RefreshToken = token.RefreshToken
	}

	if err := s.tokens.Save(newToken); err != nil {
		return fmt.Errorf("failed to save refreshed token: %w", err)
	}

	s.useLocked(ctx, newToken)
	s.log.Debug("Refreshed Spotify token", "expiry", newToken.Expiry)
	return nil
}

func (s *Service) useLocked(ctx context.Context, token *oauth2.Token) {
	s.token = token
	s.client = spotify.New(s.authenticator.Client(context.WithoutCancel(ctx), token))
}

func (s *Service) dropLocked() {
	s.token = nil
	s.client = nil
}
