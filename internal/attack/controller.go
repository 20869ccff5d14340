// Package attack drives a candidate stream against a target digest.
package attack

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/verte-zerg/crackle/internal/candidate"
	"github.com/verte-zerg/crackle/internal/hashing"
	"github.com/verte-zerg/crackle/internal/wordlist"
)

const (
	DefaultPollInterval   = 50 * time.Millisecond
	DefaultRecentCapacity = 1000
	DefaultProgressEvery  = 100
	displayWidth          = 30
)

// ErrAlreadyStarted is returned when a controller is asked to run twice.
var ErrAlreadyStarted = errors.New("attack session already started")

// Request configures one attack.
type Request struct {
	TargetDigest   string
	DictionaryPath string
	// Algorithm is detected from the digest length when empty.
	Algorithm string
	// Charset filters seeds, see wordlist.FilterForCharset.
	Charset string
	Options candidate.Options
}

// Stats is a snapshot of session counters.
type Stats struct {
	Attempts          int64
	PasswordsTested   int64
	Skipped           int64
	Elapsed           time.Duration
	AttemptsPerSecond float64
	Recent            []string
	ByOrigin          map[candidate.Origin]int64
}

// Result is the final outcome of a session.
type Result struct {
	SessionID string
	Outcome   Outcome
	Password  string
	Algorithm string
	StartedAt time.Time
	EndedAt   time.Time
	Stats     Stats
}

// Found reports whether the target was matched.
func (r Result) Found() bool {
	return r.Outcome == OutcomeFound
}

// Controller owns the state of a single attack session. Pause, Resume,
// Toggle and Stop may be called from any goroutine.
type Controller struct {
	id            string
	sink          EventSink
	logger        *slog.Logger
	pollInterval  time.Duration
	progressEvery int64

	mu        sync.Mutex
	state     State
	attempts  int64
	skipped   int64
	byOrigin  map[candidate.Origin]int64
	recent    *ring
	startedAt time.Time
	endedAt   time.Time
}

// Option customises a Controller.
type Option func(*Controller)

// WithSink sets the progress event sink.
func WithSink(s EventSink) Option {
	return func(c *Controller) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPollInterval sets how often a paused session re-checks its state.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithRecentCapacity sets the size of the recent-candidate buffer.
func WithRecentCapacity(n int) Option {
	return func(c *Controller) {
		c.recent = newRing(n)
	}
}

// WithProgressEvery sets the progress event cadence in attempts.
func WithProgressEvery(n int64) Option {
	return func(c *Controller) {
		if n > 0 {
			c.progressEvery = n
		}
	}
}

// New returns an idle controller with a fresh session ID.
func New(opts ...Option) *Controller {
	c := &Controller{
		id:            uuid.NewString(),
		sink:          NopSink{},
		logger:        slog.Default(),
		pollInterval:  DefaultPollInterval,
		progressEvery: DefaultProgressEvery,
		byOrigin:      map[candidate.Origin]int64{},
		recent:        newRing(DefaultRecentCapacity),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("session", c.id))
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// Attack opens the dictionary and runs the session to completion.
// Configuration errors are returned before any hashing starts.
func (c *Controller) Attack(ctx context.Context, req Request) (Result, error) {
	algorithm, hashFn, err := c.prepare(&req)
	if err != nil {
		return Result{}, err
	}
	var filters []wordlist.FilterFunc
	if req.Charset != "" {
		filters = append(filters, wordlist.FilterForCharset(req.Charset))
	}
	src, err := wordlist.Open(req.DictionaryPath, filters...)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			c.logger.Warn("failed to close dictionary", slog.Any("error", cerr))
		}
	}()
	return c.run(ctx, req, algorithm, hashFn, candidate.New(src, req.Options))
}

// AttackSeeds runs the session over an already opened seed supply.
func (c *Controller) AttackSeeds(ctx context.Context, req Request, seeds candidate.Seeds) (Result, error) {
	algorithm, hashFn, err := c.prepare(&req)
	if err != nil {
		return Result{}, err
	}
	return c.run(ctx, req, algorithm, hashFn, candidate.New(seeds, req.Options))
}

func (c *Controller) prepare(req *Request) (string, hashing.Func, error) {
	req.TargetDigest = strings.TrimSpace(req.TargetDigest)
	if req.TargetDigest == "" {
		return "", nil, fmt.Errorf("target digest is empty")
	}
	if req.Options.UseMarkov {
		req.Options.Markov.Limit = candidate.ClampMarkovLimit(req.Options.Markov.Limit)
	}
	if err := req.Options.Validate(); err != nil {
		return "", nil, fmt.Errorf("invalid options: %w", err)
	}
	return hashing.Resolve(req.Algorithm, req.TargetDigest)
}

func (c *Controller) run(ctx context.Context, req Request, algorithm string, hashFn hashing.Func, stream *candidate.Stream) (Result, error) {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return Result{}, ErrAlreadyStarted
	}
	c.state = StateRunning
	c.startedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("attack started",
		slog.String("algorithm", algorithm),
		slog.String("dictionary", req.DictionaryPath),
	)

	next, stop := iter.Pull(stream.All())
	defer stop()
	end := func(outcome Outcome, password string) Result {
		return c.finish(algorithm, outcome, password, stream.Seen())
	}

	for {
		if err := c.awaitRunning(ctx); err != nil {
			return end(OutcomeCancelled, ""), ctx.Err()
		}
		if c.State().Terminal() {
			return end(OutcomeCancelled, ""), nil
		}

		cand, ok := next()
		if !ok {
			if err := stream.Err(); err != nil {
				return end(OutcomeAborted, ""), err
			}
			return end(OutcomeNotFound, ""), nil
		}

		digest, err := hashFn(cand.Value)
		if err != nil {
			c.mu.Lock()
			c.skipped++
			c.mu.Unlock()
			c.logger.Warn("skipping candidate", slog.String("origin", string(cand.Origin)), slog.Any("error", err))
			continue
		}

		attempts, elapsed := c.record(cand)
		if attempts%c.progressEvery == 0 {
			c.sink.Progress(Progress{
				SessionID: c.id,
				Attempts:  attempts,
				Current:   truncate(cand.Value, displayWidth),
				Origin:    cand.Origin,
				Elapsed:   elapsed,
			})
		}
		if hashing.Equal(digest, req.TargetDigest) {
			return end(OutcomeFound, cand.Value), nil
		}
	}
}

// awaitRunning blocks while the session is paused. It returns ctx.Err() if
// the context ends first, which also moves the session to Stopped.
func (c *Controller) awaitRunning(ctx context.Context) error {
	var ticker *time.Ticker
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()
	for {
		if err := ctx.Err(); err != nil {
			c.Stop()
			return err
		}
		if c.State() != StatePaused {
			return nil
		}
		if ticker == nil {
			ticker = time.NewTicker(c.pollInterval)
		}
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
}

func (c *Controller) record(cand candidate.Candidate) (int64, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	c.byOrigin[cand.Origin]++
	c.recent.push(cand.Value)
	return c.attempts, time.Since(c.startedAt)
}

// finish records the end of the session. distinct is the number of
// candidates the stream admitted.
func (c *Controller) finish(algorithm string, outcome Outcome, password string, distinct int) Result {
	c.mu.Lock()
	c.endedAt = time.Now()
	startedAt, endedAt := c.startedAt, c.endedAt
	if outcome == OutcomeFound || outcome == OutcomeNotFound {
		c.state = StateCompleted
	} else {
		c.state = StateStopped
	}
	c.mu.Unlock()

	stats := c.Stats()
	attrs := []any{
		slog.String("outcome", outcome.String()),
		slog.Int64("attempts", stats.Attempts),
		slog.Int64("skipped", stats.Skipped),
		slog.Int("distinct", distinct),
		slog.Duration("elapsed", stats.Elapsed.Round(time.Millisecond)),
	}
	if outcome == OutcomeFound {
		attrs = append(attrs, slog.String("password", password))
	}
	c.logger.Info("attack finished", attrs...)
	return Result{
		SessionID: c.id,
		Outcome:   outcome,
		Password:  password,
		Algorithm: algorithm,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Stats:     stats,
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pause moves a running session to Paused.
func (c *Controller) Pause() bool {
	return c.transition(StateRunning, StatePaused)
}

// Resume moves a paused session back to Running.
func (c *Controller) Resume() bool {
	return c.transition(StatePaused, StateRunning)
}

// Toggle flips between Running and Paused and returns the new state.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateRunning:
		c.state = StatePaused
	case StatePaused:
		c.state = StateRunning
	}
	return c.state
}

// Stop cancels a running or paused session. The worker observes it at the
// next loop iteration.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning && c.state != StatePaused {
		return false
	}
	c.state = StateStopped
	return true
}

func (c *Controller) transition(from, to State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != from {
		return false
	}
	c.state = to
	return true
}

// Stats returns a snapshot of the session counters.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var elapsed time.Duration
	switch {
	case c.startedAt.IsZero():
	case c.endedAt.IsZero():
		elapsed = time.Since(c.startedAt)
	default:
		elapsed = c.endedAt.Sub(c.startedAt)
	}
	byOrigin := make(map[candidate.Origin]int64, len(c.byOrigin))
	for k, v := range c.byOrigin {
		byOrigin[k] = v
	}
	return Stats{
		Attempts:          c.attempts,
		PasswordsTested:   c.attempts,
		Skipped:           c.skipped,
		Elapsed:           elapsed,
		AttemptsPerSecond: rate(c.attempts, elapsed),
		Recent:            c.recent.snapshot(),
		ByOrigin:          byOrigin,
	}
}

func rate(attempts int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(attempts) / elapsed.Seconds()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
