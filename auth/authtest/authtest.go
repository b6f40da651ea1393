// Package authtest provides scripted authenticators for tests.
package authtest

import (
	"github.com/wamphub/wamp-client-go/auth"
	"github.com/wamphub/wamp-client-go/serializer"
)

// Static is a test authenticator that records challenges and answers each one
// with a fixed outcome.
type Static struct {
	ID      string
	Methods []string

	// Signature and Extra are returned on success; Err, when non-nil, makes
	// every challenge fail with it.
	Signature string
	Extra     map[string]any
	Err       error

	// Challenges records every (method, payload) pair seen, in order.
	Challenges []ChallengeRecord
}

// ChallengeRecord is one observed challenge delegation.
type ChallengeRecord struct {
	Method  string
	Payload *serializer.Deferred
}

var _ auth.ClientAuthenticator = (*Static)(nil)

func (s *Static) AuthID() string { return s.ID }

func (s *Static) AuthMethods() []string { return s.Methods }

func (s *Static) Authenticate(method string, challenge *serializer.Deferred) (string, map[string]any, error) {
	s.Challenges = append(s.Challenges, ChallengeRecord{Method: method, Payload: challenge})
	if s.Err != nil {
		return "", nil, s.Err
	}
	return s.Signature, s.Extra, nil
}
