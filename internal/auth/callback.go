package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// callbackPage hands the code to the window that opened the authorize
// URL and then closes itself.
const callbackPage = `<!DOCTYPE html>
<html>
<head>
    <title>Spotify Hotkey - Authentication</title>
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 50px; background: #1db954; color: white; }
    </style>
</head>
<body>
    <h1>Authentication complete</h1>
    <p>You can close this window.</p>
    <script>
        const code = new URLSearchParams(window.location.search).get("code");
        if (code && window.opener) {
            window.opener.postMessage({ type: "spotify-callback", code: code }, "*");
        }
        setTimeout(() => window.close(), 1000);
    </script>
</body>
</html>`

// CallbackServer is the loopback HTTP listener the OAuth redirect lands on.
type CallbackServer struct {
	addr  string
	state string
	log   *log.Logger

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	codes    chan string
}

// NewCallbackServer creates a server for addr. Codes are published only
// when the request carries the expected state.
func NewCallbackServer(addr, state string, logger *log.Logger) *CallbackServer {
	return &CallbackServer{
		addr:  addr,
		state: state,
		log:   logger,
		codes: make(chan string, 1),
	}
}

// Start begins listening. It is a no-op while the server runs; after a
// failed bind a later call tries again.
func (c *CallbackServer) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.server != nil {
		return nil
	}

	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", c.handleCallback)

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	c.listener = ln
	c.server = srv

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.log.Error("Callback server error", "err", err)
		}
	}()
	c.log.Info("Callback server listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (c *CallbackServer) Addr() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listener != nil {
		return c.listener.Addr().String()
	}
	return c.addr
}

// Codes delivers authorization codes received with a matching state.
func (c *CallbackServer) Codes() <-chan string {
	return c.codes
}

func (c *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if oauthErr := q.Get("error"); oauthErr != "" {
		c.log.Warn("OAuth callback returned an error", "error", oauthErr)
		http.Error(w, fmt.Sprintf("OAuth error: %s", oauthErr), http.StatusBadRequest)
		return
	}

	if q.Get("state") != c.state {
		c.log.Warn("OAuth callback with mismatched state")
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := q.Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	select {
	case c.codes <- code:
	default:
		c.log.Warn("Dropping authorization code, previous one not consumed")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, callbackPage)
}

// Shutdown stops the server if it was started.
func (c *CallbackServer) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	srv := c.server
	c.server = nil
	c.listener = nil
	c.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
