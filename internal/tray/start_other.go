//go:build !windows

package tray

import "github.com/getlantern/systray"

func start(onReady, onExit func()) {
	systray.Register(onReady, onExit)
}
