// Package websocket is a WAMP client transport over websocket, speaking the
// wamp.2.json subprotocol. It frames session-scope messages for the outbound
// peer surface and drives a protocol handler from a single read goroutine, so
// inbound events reach the session core serially and in arrival order.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"

	"github.com/wamphub/wamp-client-go/client"
	"github.com/wamphub/wamp-client-go/internal/logctx"
	"github.com/wamphub/wamp-client-go/serializer"
	"github.com/wamphub/wamp-client-go/wamp"
)

// Subprotocol is the websocket subprotocol this transport negotiates.
const Subprotocol = "wamp.2.json"

var _ client.Peer = (*Transport)(nil)

// ErrNotConnected indicates a send was attempted with no live connection.
var ErrNotConnected = errors.New("transport is not connected")

// ErrAlreadyConnected indicates Connect was called on a live connection.
var ErrAlreadyConnected = errors.New("transport is already connected")

// ProtocolHandler consumes inbound protocol events and link signals. The
// transport invokes it from its single read goroutine; implementations need
// no internal serialization of these entry points.
type ProtocolHandler interface {
	OnConnectionOpen() error
	OnConnectionClosed()
	OnConnectionError(fault error)

	Welcome(sessionID wamp.ID, details *serializer.Deferred)
	Abort(details *serializer.Deferred, reason wamp.URI)
	Goodbye(details *serializer.Deferred, reason wamp.URI) error
	Challenge(authMethod string, extra *serializer.Deferred) error
}

// Config configures a Transport.
type Config struct {
	// URL is the ws:// or wss:// router endpoint. Required.
	URL string

	// HandshakeTimeout bounds the websocket upgrade. Zero means 10 seconds.
	HandshakeTimeout time.Duration

	// Header is attached to the upgrade request (cookies, tracing, ...).
	Header http.Header

	// Logger receives structured transport logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Transport is a single-connection websocket link. It implements the session
// core's outbound Peer surface and feeds inbound frames to a ProtocolHandler.
// A Transport is reusable: after the read loop ends, Connect may be called
// again for a fresh attempt.
type Transport struct {
	url    string
	dialer *ws.Dialer
	header http.Header
	log    *slog.Logger
	codec  serializer.JSON

	mu   sync.Mutex // guards conn swap and writes
	conn *ws.Conn
	done chan struct{}
}

// New validates cfg and returns an unconnected Transport.
func New(cfg Config) (*Transport, error) {
	if cfg.URL == "" {
		return nil, errors.New("url is required")
	}

	timeout := cfg.HandshakeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Transport{
		url: cfg.URL,
		dialer: &ws.Dialer{
			HandshakeTimeout: timeout,
			Subprotocols:     []string{Subprotocol},
		},
		header: cfg.Header,
		log:    slog.New(logctx.Handler{Handler: log.Handler()}),
	}, nil
}

// Connect dials the router, signals connection-open to the handler, and
// spawns the read loop that delivers inbound frames to it. It returns once
// the link is up; session establishment completes asynchronously.
func (t *Transport) Connect(ctx context.Context, handler ProtocolHandler) error {
	t.mu.Lock()
	if t.conn != nil {
		t.mu.Unlock()
		return ErrAlreadyConnected
	}
	t.mu.Unlock()

	conn, _, err := t.dialer.DialContext(ctx, t.url, t.header)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", t.url, err)
	}

	connCtx := logctx.WithConnData(context.Background(), &logctx.ConnData{
		ConnectionID: uuid.NewString(),
		URL:          t.url,
	})

	done := make(chan struct{})
	t.mu.Lock()
	t.conn = conn
	t.done = done
	t.mu.Unlock()

	t.log.DebugContext(connCtx, "websocket connected",
		slog.String("subprotocol", conn.Subprotocol()))

	if err := handler.OnConnectionOpen(); err != nil {
		t.teardown()
		return err
	}

	go t.readLoop(connCtx, conn, done, handler)
	return nil
}

// Done returns a channel closed when the current connection's read loop ends.
// It is only valid between Connect and the loop's exit.
func (t *Transport) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Disconnect tears the link down. The read loop observes the closure and
// signals connection-closed to the handler.
func (t *Transport) Disconnect() error {
	return t.teardown()
}

func (t *Transport) teardown() error {
	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()
	if conn == nil {
		return nil
	}
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(ws.CloseMessage,
		ws.FormatCloseMessage(ws.CloseNormalClosure, ""), deadline)
	return conn.Close()
}

func (t *Transport) readLoop(ctx context.Context, conn *ws.Conn, done chan struct{}, handler ProtocolHandler) {
	defer func() {
		t.mu.Lock()
		if t.conn == conn {
			t.conn = nil
		}
		t.mu.Unlock()
		close(done)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if isExpectedClose(err) {
				t.log.DebugContext(ctx, "websocket closed")
				handler.OnConnectionClosed()
			} else {
				t.log.WarnContext(ctx, "websocket read failed", slog.String("error", err.Error()))
				handler.OnConnectionError(err)
				handler.OnConnectionClosed()
			}
			return
		}

		if err := t.dispatch(ctx, data, handler); err != nil {
			handler.OnConnectionError(err)
			_ = conn.Close()
			handler.OnConnectionClosed()
			return
		}
	}
}

func isExpectedClose(err error) bool {
	if ws.IsCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway, ws.CloseNoStatusReceived) {
		return true
	}
	return errors.Is(err, net.ErrClosed)
}

// dispatch decodes one inbound frame and routes it to the handler. Only
// session-scope messages are understood here; anything else is a fault,
// since nothing above the session layer is attached yet.
func (t *Transport) dispatch(ctx context.Context, data []byte, handler ProtocolHandler) error {
	var frame []json.RawMessage
	if err := t.codec.Deserialize(data, &frame); err != nil {
		return fmt.Errorf("malformed frame: %w", err)
	}
	if len(frame) == 0 {
		return errors.New("malformed frame: empty message array")
	}

	var msgType wamp.MessageType
	if err := t.codec.Deserialize(frame[0], &msgType); err != nil {
		return fmt.Errorf("malformed frame: bad message type: %w", err)
	}

	msgCtx := logctx.WithMsgData(ctx, &logctx.MsgData{Kind: msgType.String()})
	t.log.DebugContext(msgCtx, "received frame")

	switch msgType {
	case wamp.MessageTypeWelcome:
		if len(frame) < 3 {
			return fmt.Errorf("malformed WELCOME: %d elements", len(frame))
		}
		var sessionID wamp.ID
		if err := t.codec.Deserialize(frame[1], &sessionID); err != nil {
			return fmt.Errorf("malformed WELCOME session id: %w", err)
		}
		handler.Welcome(sessionID, serializer.NewDeferred(frame[2], t.codec))
		return nil

	case wamp.MessageTypeAbort:
		details, reason, err := t.detailsReason(frame, "ABORT")
		if err != nil {
			return err
		}
		handler.Abort(details, reason)
		return nil

	case wamp.MessageTypeGoodbye:
		details, reason, err := t.detailsReason(frame, "GOODBYE")
		if err != nil {
			return err
		}
		return handler.Goodbye(details, reason)

	case wamp.MessageTypeChallenge:
		if len(frame) < 3 {
			return fmt.Errorf("malformed CHALLENGE: %d elements", len(frame))
		}
		var method string
		if err := t.codec.Deserialize(frame[1], &method); err != nil {
			return fmt.Errorf("malformed CHALLENGE method: %w", err)
		}
		return handler.Challenge(method, serializer.NewDeferred(frame[2], t.codec))

	default:
		return fmt.Errorf("unexpected message type %d during session scope", msgType)
	}
}

func (t *Transport) detailsReason(frame []json.RawMessage, kind string) (*serializer.Deferred, wamp.URI, error) {
	if len(frame) < 3 {
		return nil, "", fmt.Errorf("malformed %s: %d elements", kind, len(frame))
	}
	var reason wamp.URI
	if err := t.codec.Deserialize(frame[2], &reason); err != nil {
		return nil, "", fmt.Errorf("malformed %s reason: %w", kind, err)
	}
	return serializer.NewDeferred(frame[1], t.codec), reason, nil
}

// send serializes a frame and writes it under the write lock; gorilla
// connections allow one concurrent writer only.
func (t *Transport) send(frame []any) error {
	data, err := t.codec.Serialize(frame)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return ErrNotConnected
	}
	if err := t.conn.WriteMessage(ws.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// SendHello implements the session core's outbound peer surface.
func (t *Transport) SendHello(realm string, details wamp.HelloDetails) error {
	return t.send([]any{wamp.MessageTypeHello, realm, details})
}

// SendAuthenticate implements the session core's outbound peer surface.
func (t *Transport) SendAuthenticate(signature string, extra map[string]any) error {
	return t.send([]any{wamp.MessageTypeAuthenticate, signature, extra})
}

// SendAbort implements the session core's outbound peer surface.
func (t *Transport) SendAbort(details map[string]any, reason wamp.URI) error {
	return t.send([]any{wamp.MessageTypeAbort, details, reason})
}

// SendGoodbye implements the session core's outbound peer surface.
func (t *Transport) SendGoodbye(details map[string]any, reason wamp.URI) error {
	return t.send([]any{wamp.MessageTypeGoodbye, details, reason})
}
