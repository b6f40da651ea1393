// Package auth provides the pluggable client-authenticator surface used by
// the session core. It focuses on the challenge/response leg of WAMP session
// establishment: the router sends CHALLENGE, the authenticator computes a
// signature, and the client answers with AUTHENTICATE.
//
// The public surface intentionally stays small: a ClientAuthenticator
// advertises an optional identity and candidate methods for HELLO, and
// answers a single challenge. Method selection policy and credential material
// live entirely in implementations; the session core only drives the protocol
// shape and maps a returned *Error into an outgoing ABORT.
//
// # Implementations
//
//   - Anonymous: no identity, no methods; any challenge is an error. This is
//     the default when no authenticator is supplied.
//   - Ticket: static ticket strings ("ticket" method).
//   - CRA: WAMP challenge-response (HMAC-SHA256, optional PBKDF2 key
//     derivation when the router salts the secret).
//   - JWTTicket: ticket auth where each signature is a freshly signed JWT.
//
// # Errors
//
// Authenticate returns a *Error when the failure should be surfaced to the
// peer: its Reason becomes the ABORT reason URI and its Details the ABORT
// details payload. Any other error is wrapped into a generic
// wamp.error.cannot_authenticate abort by the session core.
package auth
