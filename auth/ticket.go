package auth

import (
	"github.com/wamphub/wamp-client-go/serializer"
	"github.com/wamphub/wamp-client-go/wamp"
)

// MethodTicket is the WAMP ticket authentication method name.
const MethodTicket = "ticket"

var _ ClientAuthenticator = (*Ticket)(nil)

// Ticket authenticates with a static ticket string.
type Ticket struct {
	// ID is the authid announced in HELLO.
	ID string
	// Secret is the ticket sent as the AUTHENTICATE signature.
	Secret string
}

func (t *Ticket) AuthID() string { return t.ID }

func (t *Ticket) AuthMethods() []string { return []string{MethodTicket} }

func (t *Ticket) Authenticate(method string, challenge *serializer.Deferred) (string, map[string]any, error) {
	if method != MethodTicket {
		return "", nil, NewError(wamp.ErrCannotAuthenticate, "unexpected challenge method "+method)
	}
	return t.Secret, nil, nil
}
