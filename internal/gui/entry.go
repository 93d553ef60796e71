//go:build gui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// typingEntry is an Entry that hands the full-screen keys to the window
// instead of consuming them.
type typingEntry struct {
	widget.Entry
	onToggle func()
}

func newTypingEntry(onToggle func()) *typingEntry {
	e := &typingEntry{onToggle: onToggle}
	e.ExtendBaseWidget(e)
	return e
}

func (e *typingEntry) TypedKey(ev *fyne.KeyEvent) {
	if isToggleKey(ev.Name) {
		e.onToggle()
		return
	}
	e.Entry.TypedKey(ev)
}

func isToggleKey(name fyne.KeyName) bool {
	return name == fyne.KeyF11 || name == fyne.KeyEscape
}
