package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/crackle/internal/attack"
	"github.com/verte-zerg/crackle/internal/candidate"
)

type fakeControls struct {
	state   attack.State
	stats   attack.Stats
	toggles int
	stops   int
}

func (f *fakeControls) ID() string { return "0123456789abcdef" }

func (f *fakeControls) State() attack.State { return f.state }

func (f *fakeControls) Toggle() attack.State {
	f.toggles++
	switch f.state {
	case attack.StateRunning:
		f.state = attack.StatePaused
	case attack.StatePaused:
		f.state = attack.StateRunning
	}
	return f.state
}

func (f *fakeControls) Stop() bool {
	f.stops++
	if f.state != attack.StateRunning && f.state != attack.StatePaused {
		return false
	}
	f.state = attack.StateStopped
	return true
}

func (f *fakeControls) Stats() attack.Stats { return f.stats }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPauseKeyTogglesController(t *testing.T) {
	ctrl := &fakeControls{state: attack.StateRunning}
	m := NewModel(ctrl, Info{})

	m.Update(keyRunes("p"))
	if ctrl.state != attack.StatePaused {
		t.Fatalf("expected paused, got %s", ctrl.state)
	}
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if ctrl.state != attack.StateRunning {
		t.Fatalf("expected running, got %s", ctrl.state)
	}
	if ctrl.toggles != 2 {
		t.Fatalf("expected 2 toggles, got %d", ctrl.toggles)
	}
}

func TestStopKeyWaitsForWorker(t *testing.T) {
	ctrl := &fakeControls{state: attack.StateRunning}
	m := NewModel(ctrl, Info{})

	_, cmd := m.Update(keyRunes("q"))
	if isQuit(cmd) {
		t.Fatalf("expected to wait for the worker after stop")
	}
	if ctrl.state != attack.StateStopped {
		t.Fatalf("expected stopped, got %s", ctrl.state)
	}

	_, cmd = m.Update(DoneMsg{Result: attack.Result{Outcome: attack.OutcomeCancelled}})
	if !isQuit(cmd) {
		t.Fatalf("expected quit after done")
	}
}

func TestStopKeyQuitsWhenNothingToStop(t *testing.T) {
	ctrl := &fakeControls{state: attack.StateCompleted}
	m := NewModel(ctrl, Info{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Fatalf("expected quit")
	}
}

func TestTickSamplesRate(t *testing.T) {
	ctrl := &fakeControls{state: attack.StateRunning}
	m := NewModel(ctrl, Info{})
	start := time.Unix(100, 0)

	ctrl.stats = attack.Stats{Attempts: 100}
	m.Update(tickMsg(start))
	ctrl.stats = attack.Stats{Attempts: 600}
	_, cmd := m.Update(tickMsg(start.Add(500 * time.Millisecond)))

	if len(m.rates) != 1 || m.rates[0] != 1000 {
		t.Fatalf("expected one sample of 1000/s, got %v", m.rates)
	}
	if cmd == nil {
		t.Fatalf("expected another tick to be scheduled")
	}
	if m.stats.Attempts != 600 {
		t.Fatalf("expected stats snapshot to update")
	}
}

func TestViewShowsProgress(t *testing.T) {
	ctrl := &fakeControls{
		state: attack.StatePaused,
		stats: attack.Stats{
			Attempts: 12345,
			Skipped:  2,
			Recent:   []string{"admin", "Admin", "ADMIN"},
		},
	}
	m := NewModel(ctrl, Info{Target: "5f4dcc3b", Algorithm: "md5", Dictionary: "words.txt"})
	m.stats = ctrl.stats
	m.Update(progressMsg(attack.Progress{Current: "ADMIN", Origin: candidate.OriginVariation}))

	out := m.View()
	for _, want := range []string{"PAUSED", "12,345", "skipped 2", "5f4dcc3b (md5)", "words.txt", "ADMIN [variation]", "admin  Admin  ADMIN", "session 01234567"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestViewShowsResult(t *testing.T) {
	ctrl := &fakeControls{state: attack.StateCompleted}
	m := NewModel(ctrl, Info{})
	m.Update(DoneMsg{Result: attack.Result{Outcome: attack.OutcomeFound, Password: "hunter2"}})
	out := m.View()
	if !strings.Contains(out, "password found: hunter2") || !strings.Contains(out, "FOUND") {
		t.Fatalf("unexpected result view:\n%s", out)
	}

	m = NewModel(ctrl, Info{})
	m.Update(DoneMsg{Result: attack.Result{Outcome: attack.OutcomeAborted}, Err: errors.New("disk gone")})
	if out := m.View(); !strings.Contains(out, "error: disk gone") {
		t.Fatalf("unexpected error view:\n%s", out)
	}
}
