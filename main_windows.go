//go:build windows

package main

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"spotify-hotkey/internal/window"
)

const _SPI_GETWORKAREA = 0x0030

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")
)

// workArea returns the desktop area not covered by the taskbar, so the
// window sits just above the tray.
func workArea(*window.WailsController) window.WorkAreaFunc {
	return func() (window.Rect, error) {
		var r windows.Rect
		ret, _, err := procSystemParametersInfoW.Call(_SPI_GETWORKAREA, 0, uintptr(unsafe.Pointer(&r)), 0)
		if ret == 0 {
			return window.Rect{}, fmt.Errorf("SystemParametersInfoW failed: %w", err)
		}
		return window.Rect{
			Left:   int(r.Left),
			Top:    int(r.Top),
			Right:  int(r.Right),
			Bottom: int(r.Bottom),
		}, nil
	}
}
