package window

import (
	"context"
	"errors"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

var errNoScreen = errors.New("no screen reported")

// WailsController drives the Wails application window.
type WailsController struct {
	ctx context.Context
}

// NewWailsController wraps the context Wails passes to OnStartup.
func NewWailsController(ctx context.Context) *WailsController {
	return &WailsController{ctx: ctx}
}

func (c *WailsController) Show() { runtime.WindowShow(c.ctx) }

func (c *WailsController) Hide() { runtime.WindowHide(c.ctx) }

func (c *WailsController) SetSize(width, height int) { runtime.WindowSetSize(c.ctx, width, height) }

func (c *WailsController) SetPosition(x, y int) { runtime.WindowSetPosition(c.ctx, x, y) }

// PrimaryScreen returns the work area of the primary screen as seen by
// the Wails runtime. The runtime does not expose the taskbar, so this is
// the full screen.
func (c *WailsController) PrimaryScreen() (Rect, error) {
	screens, err := runtime.ScreenGetAll(c.ctx)
	if err != nil {
		return Rect{}, err
	}
	for _, s := range screens {
		if s.IsPrimary {
			return Rect{Right: s.Size.Width, Bottom: s.Size.Height}, nil
		}
	}
	if len(screens) > 0 {
		return Rect{Right: screens[0].Size.Width, Bottom: screens[0].Size.Height}, nil
	}
	return Rect{}, errNoScreen
}
