// Package serializer abstracts payload encoding for WAMP frames and exposes
// Deferred, a deserialize-on-demand view over a raw payload. The session core
// never interprets details payloads itself; it hands observers a Deferred and
// lets them decode into whatever shape they expect.
package serializer

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoPayload indicates a Deferred was constructed without a raw payload.
var ErrNoPayload = errors.New("no payload")

// Serializer encodes and decodes payloads for a given wire format.
// Implementations MUST be safe for concurrent use.
type Serializer interface {
	// Name returns the format's subprotocol suffix (e.g. "json" for
	// "wamp.2.json").
	Name() string
	Serialize(v any) ([]byte, error)
	Deserialize(data []byte, ref any) error
}

var _ Serializer = (*JSON)(nil)

// JSON is the wamp.2.json serializer.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Serialize(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return data, nil
}

func (JSON) Deserialize(data []byte, ref any) error {
	if err := json.Unmarshal(data, ref); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}

// Deferred is a raw payload paired with the serializer that produced it.
// Interpretation is deferred until an observer calls Decode, so payloads that
// nobody reads are never decoded.
type Deferred struct {
	raw   []byte
	codec Serializer
}

// NewDeferred wraps raw bytes with the codec that can decode them.
func NewDeferred(raw []byte, codec Serializer) *Deferred {
	return &Deferred{raw: raw, codec: codec}
}

// FromValue builds a Deferred by serializing v with the given codec. It is
// primarily useful to tests and to transports that synthesize payloads
// locally.
func FromValue(codec Serializer, v any) (*Deferred, error) {
	raw, err := codec.Serialize(v)
	if err != nil {
		return nil, err
	}
	return &Deferred{raw: raw, codec: codec}, nil
}

// Raw returns the undecoded payload bytes. The slice is shared, not copied.
func (d *Deferred) Raw() []byte {
	if d == nil {
		return nil
	}
	return d.raw
}

// Decode unmarshals the payload into the provided struct reference.
func (d *Deferred) Decode(ref any) error {
	if d == nil || len(d.raw) == 0 {
		return ErrNoPayload
	}
	return d.codec.Deserialize(d.raw, ref)
}
