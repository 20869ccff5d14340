// Package tui provides the Bubble Tea attack dashboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/crackle/internal/attack"
	statsPkg "github.com/verte-zerg/crackle/internal/stats"
)

const (
	tickInterval = 250 * time.Millisecond
	rateHistory  = 40
	recentShown  = 8
	labelWidth   = 11
)

// Controls is the part of an attack controller the dashboard drives.
type Controls interface {
	ID() string
	State() attack.State
	Toggle() attack.State
	Stop() bool
	Stats() attack.Stats
}

// Info describes the attack for the header.
type Info struct {
	Target     string
	Algorithm  string
	Dictionary string
}

// DoneMsg tells the dashboard the attack worker has returned.
type DoneMsg struct {
	Result attack.Result
	Err    error
}

type (
	tickMsg     time.Time
	progressMsg attack.Progress
)

// Model implements the Bubble Tea attack dashboard.
type Model struct {
	ctrl    Controls
	info    Info
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int

	current      attack.Progress
	stats        attack.Stats
	rates        []float64
	prevAttempts int64
	prevSample   time.Time

	done   bool
	result attack.Result
	err    error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Width(labelWidth)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	foundStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	recentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs the dashboard for one controller.
func NewModel(ctrl Controls, info Info) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle
	return &Model{
		ctrl:    ctrl,
		info:    info,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Pause):
			m.ctrl.Toggle()
			return m, nil
		case key.Matches(msg, m.keys.Stop):
			if m.done || !m.ctrl.Stop() {
				return m, tea.Quit
			}
			return m, nil
		}
		return m, nil
	case progressMsg:
		m.current = attack.Progress(msg)
		return m, nil
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.sample(time.Time(msg))
		return m, tick()
	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		m.stats = msg.Result.Stats
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *Model) sample(now time.Time) {
	st := m.ctrl.Stats()
	if !m.prevSample.IsZero() {
		if dt := now.Sub(m.prevSample).Seconds(); dt > 0 {
			m.rates = append(m.rates, float64(st.Attempts-m.prevAttempts)/dt)
			if len(m.rates) > rateHistory {
				m.rates = m.rates[len(m.rates)-rateHistory:]
			}
		}
	}
	m.prevAttempts = st.Attempts
	m.prevSample = now
	m.stats = st
}

// View implements tea.Model.
func (m *Model) View() string {
	contentWidth := 0
	if m.width > 0 {
		contentWidth = max(20, int(float64(m.width)*0.70))
	}
	content := m.renderBody(contentWidth)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderBody(width int) string {
	valueWidth := 0
	if width > 0 {
		valueWidth = max(1, width-labelWidth)
	}
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(truncateDisplay(value, valueWidth))
	}

	lines := []string{
		titleStyle.Render("crackle") + "  " + m.renderStatus(),
		"",
		row("target", fmt.Sprintf("%s (%s)", m.info.Target, m.info.Algorithm)),
		row("dictionary", m.info.Dictionary),
		row("tried", fmt.Sprintf("%s  skipped %s", humanize.Comma(m.stats.Attempts), humanize.Comma(m.stats.Skipped))),
		row("rate", statsPkg.FormatRate(m.stats.AttemptsPerSecond)+"  "+statsPkg.Sparkline(m.rates)),
		row("elapsed", statsPkg.FormatDuration(m.stats.Elapsed)),
	}
	if m.current.Current != "" {
		lines = append(lines, row("current", fmt.Sprintf("%s [%s]", m.current.Current, m.current.Origin)))
	}
	recent := m.stats.Recent
	if len(recent) > recentShown {
		recent = recent[len(recent)-recentShown:]
	}
	if len(recent) > 0 {
		lines = append(lines, "", labelStyle.Render("recent"))
		for _, line := range wrapCandidates(recent, width) {
			lines = append(lines, recentStyle.Render(line))
		}
	}
	if m.done {
		lines = append(lines, "", m.renderResult())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	if m.done {
		return valueStyle.Render(strings.ToUpper(m.result.Outcome.String()))
	}
	switch state := m.ctrl.State(); state {
	case attack.StateRunning:
		return m.spinner.View() + " " + valueStyle.Render("RUNNING")
	case attack.StatePaused:
		return pausedStyle.Render("PAUSED")
	default:
		return valueStyle.Render(strings.ToUpper(state.String()))
	}
}

func (m *Model) renderResult() string {
	switch {
	case m.err != nil:
		return failStyle.Render("error: " + m.err.Error())
	case m.result.Found():
		return foundStyle.Render("password found: " + m.result.Password)
	default:
		return failStyle.Render("password not found")
	}
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if id := m.ctrl.ID(); len(id) >= 8 {
		segments = append(segments, "session "+id[:8])
	}
	segments = append(segments, m.help.View(m.keys))
	return footerStyle.Render(strings.Join(segments, "  "))
}
