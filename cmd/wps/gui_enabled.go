//go:build gui

package main

import (
	"runtime"

	"github.com/verte-zerg/wps/internal/gui"
)

func runGUI(s *practiceSession) error {
	// fyne needs the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	return gui.Run(gui.NewApp(s.ctrl, s.store))
}
