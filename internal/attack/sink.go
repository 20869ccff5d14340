package attack

import (
	"log/slog"
	"time"

	"github.com/verte-zerg/crackle/internal/candidate"
)

// Progress is a periodic notification from a running session.
type Progress struct {
	SessionID string
	Attempts  int64
	// Current is the latest candidate, truncated for display.
	Current string
	Origin  candidate.Origin
	Elapsed time.Duration
}

// EventSink accepts progress events. Progress is called synchronously on
// the worker goroutine, so implementations must not block for long.
type EventSink interface {
	Progress(Progress)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(Progress)

// Progress implements EventSink.
func (f SinkFunc) Progress(p Progress) {
	f(p)
}

// NopSink discards events.
type NopSink struct{}

// Progress implements EventSink.
func (NopSink) Progress(Progress) {}

// MultiSink fans events out to every sink in order.
type MultiSink []EventSink

// Progress implements EventSink.
func (m MultiSink) Progress(p Progress) {
	for _, s := range m {
		s.Progress(p)
	}
}

// LogSink writes every Every-th attempt count to a logger.
type LogSink struct {
	Logger *slog.Logger
	Every  int64
}

// Progress implements EventSink.
func (l LogSink) Progress(p Progress) {
	if l.Logger == nil {
		return
	}
	if l.Every > 0 && p.Attempts%l.Every != 0 {
		return
	}
	l.Logger.Info("attack progress",
		slog.String("session", p.SessionID),
		slog.Int64("attempts", p.Attempts),
		slog.String("current", p.Current),
		slog.String("origin", string(p.Origin)),
		slog.Duration("elapsed", p.Elapsed.Round(time.Millisecond)),
	)
}
