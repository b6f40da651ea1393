package wamp

import "strings"

// ID is a WAMP integer identifier. Session ids are router-assigned and only
// meaningful while the session that carries them is open.
type ID int64

// URI identifies procedures, topics, errors, and close reasons.
type URI string

// Valid reports whether the URI satisfies the protocol's loose URI rule:
// non-empty, no whitespace, and no empty component between dots.
func (u URI) Valid() bool {
	if u == "" {
		return false
	}
	s := string(u)
	if strings.ContainsAny(s, " \t\r\n#") {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// MessageType is the wire code of a WAMP message kind.
type MessageType int

// Session-scope message kinds of the basic profile.
const (
	MessageTypeHello        MessageType = 1
	MessageTypeWelcome      MessageType = 2
	MessageTypeAbort        MessageType = 3
	MessageTypeChallenge    MessageType = 4
	MessageTypeAuthenticate MessageType = 5
	MessageTypeGoodbye      MessageType = 6
)

// String returns the protocol's canonical upper-case name for the kind.
func (t MessageType) String() string {
	switch t {
	case MessageTypeHello:
		return "HELLO"
	case MessageTypeWelcome:
		return "WELCOME"
	case MessageTypeAbort:
		return "ABORT"
	case MessageTypeChallenge:
		return "CHALLENGE"
	case MessageTypeAuthenticate:
		return "AUTHENTICATE"
	case MessageTypeGoodbye:
		return "GOODBYE"
	default:
		return "UNKNOWN"
	}
}

// Close reasons.
const (
	// CloseNormal is the default reason for an orderly, locally initiated close.
	CloseNormal URI = "wamp.close.normal"
	// CloseGoodbyeAndOut acknowledges a peer-initiated GOODBYE.
	CloseGoodbyeAndOut URI = "wamp.close.goodbye_and_out"
	// CloseSystemShutdown indicates the closing side is shutting down entirely.
	CloseSystemShutdown URI = "wamp.close.system_shutdown"
)

// Error URIs relevant to session establishment.
const (
	ErrNoSuchRealm          URI = "wamp.error.no_such_realm"
	ErrNotAuthorized        URI = "wamp.error.not_authorized"
	ErrAuthenticationFailed URI = "wamp.error.authentication_failed"
	ErrNoSuchRole           URI = "wamp.error.no_such_role"
	ErrCannotAuthenticate   URI = "wamp.error.cannot_authenticate"
	ErrProtocolViolation    URI = "wamp.error.protocol_violation"
)
