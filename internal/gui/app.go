//go:build gui

package gui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/verte-zerg/wps/internal/log"
	"github.com/verte-zerg/wps/internal/model"
	"github.com/verte-zerg/wps/internal/session"
	"github.com/verte-zerg/wps/internal/stats"
	"github.com/verte-zerg/wps/internal/store"
)

// App is the desktop typing window.
type App struct {
	ctrl  *session.Controller
	store *store.Store

	fyneApp fyne.App
	window  fyne.Window
	target  *widget.RichText
	entry   *typingEntry
	wpm     *widget.Label
	timer   *canvas.Text
	footer  *widget.Label

	snap   session.Snapshot
	rounds []model.RoundAggregate
	// resetting suppresses OnChanged while the entry is cleared for a new round.
	resetting bool
}

// NewApp wires a controller and an optional round log to a window.
func NewApp(ctrl *session.Controller, st *store.Store) *App {
	return &App{ctrl: ctrl, store: st}
}

// Run opens the window full screen and blocks until it is closed. It must be
// called from the main goroutine.
func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.wps.gui")
	a.fyneApp.Settings().SetTheme(&darkTheme{})

	a.window = a.fyneApp.NewWindow("Typing Test")
	a.window.SetMaster()
	a.window.SetContent(a.build())
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if isToggleKey(ev.Name) {
			a.toggleFullscreen()
		}
	})
	a.window.Resize(fyne.NewSize(1024, 640))
	a.window.SetFullScreen(true)

	a.apply(a.ctrl.Start())
	a.window.ShowAndRun()
	return nil
}

func (a *App) build() fyne.CanvasObject {
	a.target = widget.NewRichText()
	a.target.Wrapping = fyne.TextWrapWord

	a.entry = newTypingEntry(a.toggleFullscreen)
	a.entry.SetPlaceHolder("start typing")
	a.entry.OnChanged = func(s string) {
		if a.resetting {
			return
		}
		a.apply(a.ctrl.Input(s))
	}

	a.wpm = widget.NewLabel("WPM: 0")
	a.timer = canvas.NewText("", timerColor)
	a.timer.TextSize = theme.TextSize()
	a.footer = widget.NewLabel("")

	restart := widget.NewButton("Restart", func() {
		log.Restart(a.snap.Round)
		a.apply(a.ctrl.Restart())
	})
	fullscreen := widget.NewButton("Fullscreen", a.toggleFullscreen)

	body := container.NewVBox(
		a.target,
		a.entry,
		container.NewHBox(a.wpm, layout.NewSpacer(), a.timer),
		container.NewHBox(restart, fullscreen),
	)
	return container.NewBorder(nil, a.footer, nil, nil, container.NewPadded(body))
}

// apply renders a controller update and schedules its timers. It runs on the
// fyne UI goroutine.
func (a *App) apply(up session.Update) {
	newRound := up.Snapshot.Round != a.snap.Round
	wasAccepting := a.snap.Accepting
	a.snap = up.Snapshot
	if up.Finished != nil {
		a.record(*up.Finished)
	}

	if newRound {
		a.resetting = true
		a.entry.SetText("")
		a.resetting = false
	}
	if a.snap.Accepting {
		if !wasAccepting || newRound {
			a.entry.Enable()
			a.window.Canvas().Focus(a.entry)
		}
	} else {
		a.entry.Disable()
	}
	a.render()

	for _, t := range up.Timers {
		a.schedule(t)
	}
}

func (a *App) schedule(t session.Timer) {
	tok := t.Token
	time.AfterFunc(t.After, func() {
		fyne.Do(func() {
			a.apply(a.ctrl.Tick(tok))
		})
	})
}

func (a *App) render() {
	runs := Runs(a.snap.Target, a.snap.Classes, a.snap.Placeholder)
	segs := make([]widget.RichTextSegment, 0, len(runs))
	for _, r := range runs {
		style := widget.RichTextStyle{
			Inline:    true,
			ColorName: colorFor(r.Kind),
			SizeName:  theme.SizeNameText,
		}
		style.TextStyle.Bold = r.Kind == KindCurrent
		style.TextStyle.Underline = r.Cursor
		segs = append(segs, &widget.TextSegment{Text: r.Text, Style: style})
	}
	a.target.Segments = segs
	a.target.Refresh()

	a.wpm.SetText(fmt.Sprintf("WPM: %d", a.snap.WPM))
	a.timer.Text = fmt.Sprintf("Next in: %ds", a.snap.Remaining)
	a.timer.Color = timerColor
	if a.snap.State == session.Countdown && a.snap.Glow {
		a.timer.Color = glowColor
	}
	a.timer.Refresh()

	footer := fmt.Sprintf("Round %d", a.snap.Round)
	if s := stats.Summarize(a.rounds); s.Rounds > 0 {
		footer += fmt.Sprintf(" · Last %d WPM · Best %d WPM", s.LastWPM, s.BestWPM)
	}
	a.footer.SetText(footer)
}

func (a *App) record(res model.RoundResult) {
	log.RoundFinished(res)
	if a.store == nil {
		return
	}
	ctx := context.Background()
	if _, err := a.store.InsertRound(ctx, res); err != nil {
		log.Errorf("failed to record round %d: %v", res.Round, err)
		return
	}
	rounds, err := a.store.ListRounds(ctx, 0)
	if err != nil {
		log.Errorf("failed to load rounds: %v", err)
		return
	}
	a.rounds = rounds
}

func (a *App) toggleFullscreen() {
	a.window.SetFullScreen(!a.window.FullScreen())
}

func colorFor(k Kind) fyne.ThemeColorName {
	switch k {
	case KindCorrect:
		return colorCorrect
	case KindIncorrect:
		return colorIncorrect
	case KindCurrent:
		return colorCurrent
	case KindPlaceholder:
		return colorPlaceholder
	default:
		return colorPending
	}
}
