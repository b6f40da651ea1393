package client

import (
	"errors"
	"fmt"

	"github.com/wamphub/wamp-client-go/wamp"
)

// ErrClosedBeforeEstablished indicates the transport link closed while the
// handshake was still pending.
var ErrClosedBeforeEstablished = errors.New("connection closed before session was established")

// ErrPeerRequired indicates a SessionCore was configured without a Peer.
var ErrPeerRequired = errors.New("peer is required")

// ErrRealmRequired indicates a SessionCore was configured without a realm.
var ErrRealmRequired = errors.New("realm is required")

// ConnectionBrokenError is the typed failure placed on a pending open handle
// whenever a terminal event ends the attempt before WELCOME, so awaiting code
// always receives a failure instead of hanging.
type ConnectionBrokenError struct {
	// CloseType classifies the terminal event.
	CloseType CloseType
	// Reason is the peer-supplied reason URI for Abort and Goodbye closes.
	Reason wamp.URI
	// Err is the underlying cause, if any.
	Err error
}

func (e *ConnectionBrokenError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("connection broken (%s): %v", e.CloseType, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("connection broken (%s): %s", e.CloseType, e.Reason)
	default:
		return fmt.Sprintf("connection broken (%s)", e.CloseType)
	}
}

func (e *ConnectionBrokenError) Unwrap() error { return e.Err }
