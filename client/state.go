package client

// SessionState is the session's position in the establishment lifecycle.
// Transitions are one-directional within an attempt; reaching StateClosed
// permits a fresh attempt, which restarts at StateConnecting.
type SessionState int

const (
	// StateIdle is the initial state before any connection attempt.
	StateIdle SessionState = iota
	// StateConnecting means HELLO has been sent and no reply has arrived.
	StateConnecting
	// StateAuthenticating means a CHALLENGE arrived and AUTHENTICATE was sent.
	StateAuthenticating
	// StateOpen means WELCOME arrived; the session id is valid.
	StateOpen
	// StateClosed means a terminal event ended the attempt.
	StateClosed
)

// String maps a SessionState to its lower-case name.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateAuthenticating:
		return "authenticating"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
