package attack

// State is the lifecycle of one attack session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateStopped
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateStopped || s == StateCompleted
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeFound Outcome = iota + 1
	OutcomeNotFound
	OutcomeCancelled
	// OutcomeAborted means the dictionary could not be read to the end.
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
