package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wamphub/wamp-client-go/serializer"
	"github.com/wamphub/wamp-client-go/wamp"
)

var _ ClientAuthenticator = (*JWTTicket)(nil)

// JWTTicket performs ticket authentication where the ticket is a short-lived
// HS256 JWT signed with a shared key, so the router can verify freshness and
// issuer instead of comparing a static secret.
type JWTTicket struct {
	// ID is the authid announced in HELLO and used as the token subject.
	ID string
	// Key is the HS256 signing key shared with the router.
	Key []byte
	// Issuer is set as the token's iss claim when non-empty.
	Issuer string
	// TTL bounds token validity. Zero means 30 seconds.
	TTL time.Duration

	// now allows tests to pin token timestamps.
	now func() time.Time
}

func (j *JWTTicket) AuthID() string { return j.ID }

func (j *JWTTicket) AuthMethods() []string { return []string{MethodTicket} }

func (j *JWTTicket) Authenticate(method string, challenge *serializer.Deferred) (string, map[string]any, error) {
	if method != MethodTicket {
		return "", nil, NewError(wamp.ErrCannotAuthenticate, "unexpected challenge method "+method)
	}

	now := time.Now
	if j.now != nil {
		now = j.now
	}
	ttl := j.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	issued := now()
	claims := jwt.RegisteredClaims{
		Subject:   j.ID,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
	}
	if j.Issuer != "" {
		claims.Issuer = j.Issuer
	}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Key)
	if err != nil {
		return "", nil, NewError(wamp.ErrCannotAuthenticate, "failed to sign ticket: "+err.Error())
	}
	return tok, nil, nil
}
