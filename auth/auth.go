package auth

import (
	"fmt"

	"github.com/wamphub/wamp-client-go/serializer"
	"github.com/wamphub/wamp-client-go/wamp"
)

// ClientAuthenticator answers router challenges during session establishment.
// Implementations should be lightweight and safe for concurrent use; a single
// authenticator instance is shared across all connection attempts of a client.
type ClientAuthenticator interface {
	// AuthID returns the identity to announce in HELLO, or "" for none.
	AuthID() string
	// AuthMethods returns the candidate methods to announce in HELLO.
	// A nil or empty slice announces none.
	AuthMethods() []string
	// Authenticate answers a CHALLENGE for the given method. The challenge
	// payload is decoded on demand through the Deferred view. On success it
	// returns the signature plus optional extra response data; on failure it
	// returns an error, preferably a *Error carrying the abort reason.
	Authenticate(method string, challenge *serializer.Deferred) (signature string, extra map[string]any, err error)
}

// Error is an authentication failure that maps onto an outgoing ABORT.
type Error struct {
	// Reason becomes the ABORT reason URI.
	Reason wamp.URI
	// Details becomes the ABORT details payload; nil is sent as an empty map.
	Details map[string]any
	// Message is a human-readable description for logs.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authentication failed: %s (%s)", e.Message, e.Reason)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// NewError builds a *Error with the given reason and message.
func NewError(reason wamp.URI, msg string) *Error {
	return &Error{Reason: reason, Message: msg}
}
