package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/crackle/internal/attack"
)

// DefaultSinkInterval bounds how often progress reaches the program.
const DefaultSinkInterval = 50 * time.Millisecond

// ProgramSink forwards attack progress to a Bubble Tea program. It is
// called from the attack worker only.
type ProgramSink struct {
	send     func(tea.Msg)
	interval time.Duration
	last     time.Time
}

// NewProgramSink returns a sink that sends at most one event per interval.
// Events are dropped until a program is attached.
func NewProgramSink(interval time.Duration) *ProgramSink {
	return &ProgramSink{interval: interval}
}

// Attach binds the sink to a program. Call it before the attack starts.
func (s *ProgramSink) Attach(p *tea.Program) {
	s.send = p.Send
}

// Progress implements attack.EventSink.
func (s *ProgramSink) Progress(p attack.Progress) {
	if s.send == nil {
		return
	}
	now := time.Now()
	if !s.last.IsZero() && now.Sub(s.last) < s.interval {
		return
	}
	s.last = now
	s.send(progressMsg(p))
}
