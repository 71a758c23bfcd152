package loopexec

// State is the lifecycle state of an Executor.
type State uint32

const (
	Idle State = iota
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Stats is a point-in-time snapshot of executor counters.
type Stats struct {
	State State
	// Ticks counts handler calls, idle ticks included.
	Ticks uint64
	// Published counts events written to the channel.
	Published uint64
	// Skipped counts ticks that published nothing: idle ticks and events
	// without an owned form.
	Skipped     uint64
	Subscribers int
}
