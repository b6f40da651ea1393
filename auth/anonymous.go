package auth

import (
	"github.com/wamphub/wamp-client-go/serializer"
	"github.com/wamphub/wamp-client-go/wamp"
)

var _ ClientAuthenticator = (*Anonymous)(nil)

// Anonymous is the authenticator used when none is supplied. It announces no
// identity and no methods; an anonymous client must never be challenged, so
// receiving a CHALLENGE is itself a failure.
type Anonymous struct{}

func (Anonymous) AuthID() string { return "" }

func (Anonymous) AuthMethods() []string { return nil }

func (Anonymous) Authenticate(method string, challenge *serializer.Deferred) (string, map[string]any, error) {
	return "", nil, NewError(wamp.ErrCannotAuthenticate,
		"received a challenge ("+method+") but no authenticator is configured")
}
