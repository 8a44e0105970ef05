//go:build !windows

package main

import "spotify-hotkey/internal/window"

// workArea uses the primary screen reported by the Wails runtime
func workArea(ctrl *window.WailsController) window.WorkAreaFunc {
	return ctrl.PrimaryScreen
}
