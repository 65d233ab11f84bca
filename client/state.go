package client

// State represents connection state
type State int

const (
	Disconnected State = iota
	Pending
	Connected
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case Pending:
		return "pending"
	default:
		return "disconnected"
	}
}
