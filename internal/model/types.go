// Package model defines shared data structures.
package model

import "time"

// SessionRecord captures a finished attack session.
type SessionRecord struct {
	ID             string
	StartedAt      time.Time
	EndedAt        time.Time
	Algorithm      string
	Target         string
	DictionaryPath string
	Outcome        string
	Password       string
	Attempts       int64
	Skipped        int64
	DurationMs     int64
}

// OriginCount stores how many candidates of one origin a session tried.
type OriginCount struct {
	Origin   string
	Attempts int64
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Algorithm string
	Since     *time.Time
	Last      int
	Window    int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  string
	EndedAt    time.Time
	Algorithm  string
	Outcome    string
	Password   string
	Attempts   int64
	DurationMs int64
}

// OriginAggregate aggregates origin counts across sessions.
type OriginAggregate struct {
	Origin   string
	Attempts int64
	Sessions int
}
