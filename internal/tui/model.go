// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wps/internal/log"
	"github.com/verte-zerg/wps/internal/model"
	"github.com/verte-zerg/wps/internal/session"
	"github.com/verte-zerg/wps/internal/stats"
	"github.com/verte-zerg/wps/internal/store"
)

const (
	contentRatio = 0.70
	sparkWidth   = 20
)

type tickMsg struct {
	token session.Token
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	ctrl     *session.Controller
	store    *store.Store
	schedule func(session.Timer) tea.Cmd

	input textinput.Model
	keys  keyMap
	help  help.Model

	snap   session.Snapshot
	rounds []model.RoundAggregate

	width     int
	height    int
	altScreen bool
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44747"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	wpmStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4D4D4"))
	timerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4D4D4"))
	glowStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a typing TUI model. The store may be nil.
func NewModel(ctrl *session.Controller, st *store.Store) *Model {
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "start typing"
	input.Focus()

	return &Model{
		ctrl:      ctrl,
		store:     st,
		schedule:  tickCmd,
		input:     input,
		keys:      defaultKeyMap(),
		help:      help.New(),
		snap:      ctrl.Snapshot(),
		altScreen: true,
	}
}

func tickCmd(t session.Timer) tea.Cmd {
	tok := t.Token
	return tea.Tick(t.After, func(_ time.Time) tea.Msg {
		return tickMsg{token: tok}
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.apply(m.ctrl.Start()))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(1, m.contentWidth()-lipgloss.Width(m.input.Prompt)-1)
		return m, nil
	case tickMsg:
		return m, m.apply(m.ctrl.Tick(msg.token))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			log.Restart(m.snap.Round)
			return m, m.apply(m.ctrl.Restart())
		case key.Matches(msg, m.keys.Fullscreen):
			return m, m.toggleFullscreen()
		}
		if !m.snap.Accepting {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, tea.Batch(cmd, m.apply(m.ctrl.Input(m.input.Value())))
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.snap.Target) == 0 && m.snap.State == session.AwaitingInput {
		return ""
	}
	styled := buildStyledRunes(m.snap.Target, m.snap.Classes, m.snap.Placeholder)
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{renderStyledRunes(styled), m.input.View(), m.renderStatus()}, "\n")
	}
	contentWidth := m.contentWidth()
	wrapped := wrapStyledRunes(styled, contentWidth)
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(contentWidth).Render(wrapped),
		"",
		m.input.View(),
		"",
		m.renderStatus(),
	)
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	return max(1, int(float64(m.width)*contentRatio))
}

// apply stores the snapshot, records a finished round and turns timer
// requests into commands.
func (m *Model) apply(up session.Update) tea.Cmd {
	newRound := up.Snapshot.Round != m.snap.Round
	m.snap = up.Snapshot
	if up.Finished != nil {
		m.recordRound(*up.Finished)
	}

	cmds := make([]tea.Cmd, 0, len(up.Timers)+1)
	if newRound {
		m.input.Reset()
	}
	if m.snap.Accepting {
		if !m.input.Focused() {
			cmds = append(cmds, m.input.Focus())
		}
	} else {
		m.input.Blur()
	}
	for _, t := range up.Timers {
		cmds = append(cmds, m.schedule(t))
	}
	return tea.Batch(cmds...)
}

func (m *Model) recordRound(res model.RoundResult) {
	log.RoundFinished(res)
	if m.store == nil {
		return
	}
	ctx := context.Background()
	if _, err := m.store.InsertRound(ctx, res); err != nil {
		log.Errorf("failed to record round %d: %v", res.Round, err)
		return
	}
	rounds, err := m.store.ListRounds(ctx, 0)
	if err != nil {
		log.Errorf("failed to load rounds: %v", err)
		return
	}
	m.rounds = rounds
}

func (m *Model) toggleFullscreen() tea.Cmd {
	m.altScreen = !m.altScreen
	if m.altScreen {
		return tea.EnterAltScreen
	}
	return tea.ExitAltScreen
}

func (m *Model) renderStatus() string {
	wpm := wpmStyle.Render(fmt.Sprintf("WPM: %d", m.snap.WPM))
	style := timerStyle
	if m.snap.State == session.Countdown && m.snap.Glow {
		style = glowStyle
	}
	timer := style.Render(fmt.Sprintf("Next in: %ds", m.snap.Remaining))
	return wpm + "    " + timer
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Round %d", m.snap.Round)}
	if summary := stats.Summarize(m.rounds); summary.Rounds > 0 {
		segments = append(segments,
			fmt.Sprintf("Last %d WPM", summary.LastWPM),
			fmt.Sprintf("Best %d WPM", summary.BestWPM),
		)
		if summary.Rounds > 1 {
			segments = append(segments, stats.Sparkline(stats.WPMSeries(m.rounds, sparkWidth)))
		}
	}
	footer := footerStyle.Render(strings.Join(segments, " · "))
	return footer + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}
