package game

type RoomState int

const (
	StateWaiting RoomState = iota
	StateStarting
	StateInProgress
	StateEnded
)

func (s RoomState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateStarting:
		return "starting"
	case StateInProgress:
		return "in_progress"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason explains why a match ended.
type EndReason string

const (
	EndTimeUp EndReason = "time"
)
