package worker

// State is the lifecycle position of a worker loop.
type State int32

const (
	Starting State = iota
	Polling
	Processing
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Starting:
		return "Starting"
	case Polling:
		return "Polling"
	case Processing:
		return "Processing"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
