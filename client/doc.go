// Package client implements the client-side WAMP session establishment and
// teardown state machine. It drives the HELLO → CHALLENGE/AUTHENTICATE →
// WELCOME or ABORT handshake and the GOODBYE/disconnect/error teardown,
// and exposes the outcome to application code through a one-shot open
// completion handle plus three lifecycle notification streams (Established,
// Broken, Error).
//
// The core deliberately owns nothing but session state. Transports deliver
// inbound protocol events (Welcome, Abort, Goodbye, Challenge) and link
// signals (OnConnectionOpen, OnConnectionClosed, OnConnectionError) from a
// single delivery goroutine; an outbound Peer sends HELLO, AUTHENTICATE,
// ABORT and GOODBYE; an auth.ClientAuthenticator answers challenges; payload
// interpretation is deferred behind serializer.Deferred views.
//
// A SessionCore is constructed once per logical client and reused across
// connection attempts: every terminal event settles the current open handle
// exactly once and atomically installs a fresh pending one, and the
// goodbyeSent/brokenRaised guards are reset at attempt boundaries, so a
// reconnecting transport can simply call OnConnectionOpen again.
package client
