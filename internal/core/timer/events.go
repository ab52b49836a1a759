package timer

// State represents the current Timer mode.
type State int

const (
	StateInitialized State = iota
	StateRunning
	StatePaused
	StateFinished
)

func (state State) String() string {
	switch state {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Listener observes state transitions. It receives the state just entered.
type Listener func(State)

type subscription struct {
	id       uint64
	listener Listener
}
