package client

import "github.com/wamphub/wamp-client-go/wamp"

// Peer is the outbound half of the session: a one-way proxy that frames and
// transmits session-scope messages to the router. Transports implement it;
// the core never sees wire bytes.
type Peer interface {
	SendHello(realm string, details wamp.HelloDetails) error
	SendAuthenticate(signature string, extra map[string]any) error
	SendAbort(details map[string]any, reason wamp.URI) error
	SendGoodbye(details map[string]any, reason wamp.URI) error
}
