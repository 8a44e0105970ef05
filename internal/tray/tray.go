// Package tray puts the application in the system tray.
package tray

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/getlantern/systray"
)

// Window is the window the tray shows and hides.
type Window interface {
	Toggle() bool
	IsVisible() bool
}

// Manager manages the system tray icon and menu
type Manager struct {
	window Window
	log    *log.Logger
	quit   chan struct{}
	once   sync.Once

	mu     sync.Mutex
	toggle *systray.MenuItem
}

// New creates a tray manager whose Show item toggles window.
func New(window Window, logger *log.Logger) *Manager {
	return &Manager{
		window: window,
		log:    logger,
		quit:   make(chan struct{}),
	}
}

// Start installs the tray icon alongside the running GUI event loop.
func (m *Manager) Start() {
	start(m.onReady, m.onExit)
}

// Stop removes the tray icon
func (m *Manager) Stop() {
	systray.Quit()
}

// QuitRequested is closed when the user clicks Quit.
func (m *Manager) QuitRequested() <-chan struct{} {
	return m.quit
}

// SetVisible relabels the toggle item. Calls before the tray is ready
// are ignored; onReady reads the window state itself.
func (m *Manager) SetVisible(visible bool) {
	m.mu.Lock()
	item := m.toggle
	m.mu.Unlock()

	if item != nil {
		item.SetTitle(toggleTitle(visible))
	}
}

func toggleTitle(visible bool) string {
	if visible {
		return "Hide"
	}
	return "Show"
}

func (m *Manager) onReady() {
	systray.SetIcon(Icon())
	systray.SetTitle("Spotify Hotkey")
	systray.SetTooltip("Spotify Hotkey")

	mToggle := systray.AddMenuItem(toggleTitle(m.window.IsVisible()), "Show or hide the Spotify Hotkey window")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit Spotify Hotkey")

	m.mu.Lock()
	m.toggle = mToggle
	m.mu.Unlock()

	go func() {
		for {
			select {
			case <-mToggle.ClickedCh:
				m.window.Toggle()
			case <-mQuit.ClickedCh:
				m.log.Info("User requested quit from system tray")
				m.once.Do(func() { close(m.quit) })
				return
			}
		}
	}()
}

func (m *Manager) onExit() {
	m.log.Info("System tray exited")
}
