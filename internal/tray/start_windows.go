//go:build windows

package tray

import (
	"runtime"

	"github.com/getlantern/systray"
)

// The Windows tray pumps its own message loop, so it gets a dedicated
// thread instead of sharing the one Wails owns.
func start(onReady, onExit func()) {
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		systray.Run(onReady, onExit)
	}()
}
