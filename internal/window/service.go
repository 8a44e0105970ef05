package window

import (
	"sync"

	"github.com/charmbracelet/log"

	"spotify-hotkey/internal/config"
)

// margin keeps the window off the edge of the work area.
const margin = 12

// Controller drives the native window.
type Controller interface {
	Show()
	Hide()
	SetSize(width, height int)
	SetPosition(x, y int)
}

// Rect is a screen area in pixels.
type Rect struct {
	Left, Top, Right, Bottom int
}

// WorkAreaFunc reports the usable screen area, excluding the taskbar.
type WorkAreaFunc func() (Rect, error)

// Service manages the companion window's visibility
type Service struct {
	ctrl     Controller
	workArea WorkAreaFunc
	width    int
	height   int
	log      *log.Logger

	mu       sync.Mutex
	visible  bool
	onChange func(visible bool)
}

// New creates a window service. The window starts hidden.
func New(ctrl Controller, workArea WorkAreaFunc, cfg config.WindowConfig, logger *log.Logger) *Service {
	return &Service{
		ctrl:     ctrl,
		workArea: workArea,
		width:    cfg.Width,
		height:   cfg.Height,
		log:      logger,
	}
}

// OnChange registers fn to run after every visibility change. It must be
// set before the window is shown.
func (s *Service) OnChange(fn func(visible bool)) {
	s.onChange = fn
}

// Show sizes the window, anchors it to the bottom-right of the work area
// and shows it.
func (s *Service) Show() {
	s.mu.Lock()
	s.showLocked()
	s.mu.Unlock()
	s.notify(true)
}

// Hide hides the window
func (s *Service) Hide() {
	s.mu.Lock()
	s.ctrl.Hide()
	s.visible = false
	s.mu.Unlock()
	s.notify(false)
}

// Toggle flips visibility and returns the new state.
func (s *Service) Toggle() bool {
	s.mu.Lock()
	if s.visible {
		s.ctrl.Hide()
		s.visible = false
	} else {
		s.showLocked()
	}
	visible := s.visible
	s.mu.Unlock()

	s.notify(visible)
	return visible
}

// IsVisible returns current visibility state
func (s *Service) IsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *Service) notify(visible bool) {
	if s.onChange != nil {
		s.onChange(visible)
	}
}

func (s *Service) showLocked() {
	s.ctrl.SetSize(s.width, s.height)

	if s.workArea != nil {
		area, err := s.workArea()
		if err != nil {
			s.log.Warn("Could not get work area, leaving window in place", "err", err)
		} else {
			x, y := Anchor(area, s.width, s.height)
			s.ctrl.SetPosition(x, y)
		}
	}

	s.ctrl.Show()
	s.visible = true
}

// Anchor returns the top-left corner placing a width by height window in
// the bottom-right of area, clamped so it never starts off-area.
func Anchor(area Rect, width, height int) (x, y int) {
	x = max(area.Left, area.Right-width-margin)
	y = max(area.Top, area.Bottom-height-margin)
	return x, y
}
