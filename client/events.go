package client

import (
	"github.com/wamphub/wamp-client-go/serializer"
	"github.com/wamphub/wamp-client-go/wamp"
)

// CloseType classifies how a connection attempt ended.
type CloseType string

const (
	// CloseTypeAbort means the peer rejected the attempt with ABORT.
	CloseTypeAbort CloseType = "abort"
	// CloseTypeGoodbye means the attempt ended through the GOODBYE handshake.
	CloseTypeGoodbye CloseType = "goodbye"
	// CloseTypeDisconnection means the transport link went away with no
	// further protocol context.
	CloseTypeDisconnection CloseType = "disconnection"
)

// EstablishedEvent reports a successfully opened session.
type EstablishedEvent struct {
	SessionID wamp.ID
	// Details is the WELCOME details payload, decoded on demand.
	Details *serializer.Deferred
}

// BrokenEvent reports the single terminal lifecycle event of an attempt.
type BrokenEvent struct {
	CloseType CloseType
	// SessionID is the id the session held, or 0 if it never opened.
	SessionID wamp.ID
	// Details and Reason carry the peer-supplied payload for Abort and
	// Goodbye closes; both are empty for Disconnection.
	Details *serializer.Deferred
	Reason  wamp.URI
}

// EstablishedListener observes session establishment. Listeners run
// synchronously on the delivering goroutine, in registration order.
type EstablishedListener func(ev EstablishedEvent)

// BrokenListener observes the terminal lifecycle event of an attempt.
type BrokenListener func(ev BrokenEvent)

// ErrorListener observes authentication failures and transport faults.
type ErrorListener func(err error)
