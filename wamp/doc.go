// Package wamp contains protocol data types and constants shared across
// transports and the client session core. It mirrors the wire representation
// of the WAMP basic profile while keeping the surface Go-friendly (exported
// structs with json tags, string constants for URIs, helper validation
// functions).
//
// The package is intentionally free of transport logic: websocket, raw
// socket, or any future transports import these types but implement their
// own framing and delivery. Likewise the session core constructs HELLO and
// GOODBYE payloads from these concrete types and hands them to its outbound
// peer for serialization.
//
// # Message Types
//
// Session-scope message kinds are enumerated as MessageType constants with
// their wire codes (e.g. MessageTypeHello is 1). Using the constants avoids
// magic numbers and gives transports a single point of truth for frame
// dispatch.
//
// # URIs
//
// Close and error reasons are URI constants (e.g. CloseNormal,
// ErrNotAuthorized). URI.Valid performs the loose-URI check the protocol
// mandates for reasons received off the wire.
package wamp
