package client

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wamphub/wamp-client-go/auth"
	"github.com/wamphub/wamp-client-go/internal/completion"
	"github.com/wamphub/wamp-client-go/serializer"
	"github.com/wamphub/wamp-client-go/wamp"
)

// defaultAgent is announced in HELLO details when Config.Agent is empty.
const defaultAgent = "wamp-client-go"

// Config configures a SessionCore.
type Config struct {
	// Realm is the routing namespace to join. Required.
	Realm string

	// Peer transmits outbound session-scope messages. Required.
	Peer Peer

	// Authenticator answers router challenges. Defaults to auth.Anonymous,
	// which announces no identity and fails any challenge.
	Authenticator auth.ClientAuthenticator

	// Agent is the agent string announced in HELLO.
	Agent string

	// Logger receives structured lifecycle logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// SessionCore is the session establishment and teardown state machine.
//
// Protocol entry points (OnConnectionOpen, Challenge, Welcome, Abort,
// Goodbye, OnConnectionClosed, OnConnectionError) MUST be invoked serially
// from the transport's single delivery goroutine. The open handle returned by
// OpenedSignal and the accessors are safe for arbitrary concurrent use.
type SessionCore struct {
	realm         string
	peer          Peer
	authenticator auth.ClientAuthenticator
	agent         string
	log           *slog.Logger

	sessionID    wamp.ID
	state        SessionState
	goodbyeSent  bool
	brokenRaised bool

	// signalMu guards the read-and-replace of the open handle so a late
	// observer of one attempt cannot race the start of the next.
	signalMu sync.Mutex
	opened   *completion.Handle[wamp.ID]

	listenerMu  sync.Mutex
	established []EstablishedListener
	broken      []BrokenListener
	errored     []ErrorListener
}

// NewSessionCore validates cfg and returns an idle state machine.
func NewSessionCore(cfg Config) (*SessionCore, error) {
	if cfg.Realm == "" {
		return nil, ErrRealmRequired
	}
	if cfg.Peer == nil {
		return nil, ErrPeerRequired
	}

	authenticator := cfg.Authenticator
	if authenticator == nil {
		authenticator = auth.Anonymous{}
	}
	agent := cfg.Agent
	if agent == "" {
		agent = defaultAgent
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &SessionCore{
		realm:         cfg.Realm,
		peer:          cfg.Peer,
		authenticator: authenticator,
		agent:         agent,
		log:           log.With(slog.String("realm", cfg.Realm)),
		state:         StateIdle,
		opened:        completion.New[wamp.ID](),
	}, nil
}

// Realm returns the realm this client joins.
func (s *SessionCore) Realm() string { return s.realm }

// SessionID returns the router-assigned id, or 0 when no session is open.
func (s *SessionCore) SessionID() wamp.ID { return s.sessionID }

// State returns the current lifecycle state.
func (s *SessionCore) State() SessionState { return s.state }

// OpenedSignal returns the completion handle for the connection attempt in
// flight (or the next one, if none is). Grab the handle before triggering
// the transport connect, then Await it; a handle settles exactly once and a
// fresh pending one replaces it when the attempt reaches a terminal outcome.
func (s *SessionCore) OpenedSignal() *completion.Handle[wamp.ID] {
	s.signalMu.Lock()
	defer s.signalMu.Unlock()
	return s.opened
}

// OnEstablished registers a listener for session establishment. Listeners
// fire synchronously on the delivering goroutine, in registration order.
func (s *SessionCore) OnEstablished(fn EstablishedListener) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.established = append(s.established, fn)
}

// OnBroken registers a listener for the terminal lifecycle event of an
// attempt. At most one BrokenEvent fires per attempt.
func (s *SessionCore) OnBroken(fn BrokenListener) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.broken = append(s.broken, fn)
}

// OnError registers a listener for authentication failures and transport
// faults. Error and Broken are distinct channels; observers interested in
// every way an attempt can end should watch both.
func (s *SessionCore) OnError(fn ErrorListener) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.errored = append(s.errored, fn)
}

// OnConnectionOpen is invoked by the transport once a link exists. It resets
// the attempt guards and announces the client with HELLO. No response is
// awaited; the reply arrives later as Welcome, Challenge, or Abort.
func (s *SessionCore) OnConnectionOpen() error {
	s.goodbyeSent = false
	s.brokenRaised = false
	s.sessionID = 0
	s.state = StateConnecting

	details := wamp.HelloDetails{
		Agent: s.agent,
		Roles: wamp.DefaultClientRoles(),
	}
	if id := s.authenticator.AuthID(); id != "" {
		details.AuthID = id
	}
	if methods := s.authenticator.AuthMethods(); len(methods) > 0 {
		details.AuthMethods = methods
	}

	s.log.Debug("sending HELLO", slog.String("agent", s.agent))
	if err := s.peer.SendHello(s.realm, details); err != nil {
		return fmt.Errorf("failed to send HELLO: %w", err)
	}
	return nil
}

// Challenge is invoked when the peer sends CHALLENGE. The authenticator
// computes the response; on success AUTHENTICATE is sent, on failure the
// attempt is aborted locally: ABORT goes to the peer, the open handle fails,
// and an Error notification fires. One failed challenge ends the attempt.
func (s *SessionCore) Challenge(authMethod string, extra *serializer.Deferred) error {
	s.state = StateAuthenticating
	s.log.Debug("received CHALLENGE", slog.String("method", authMethod))

	signature, respExtra, err := s.authenticator.Authenticate(authMethod, extra)
	if err != nil {
		return s.failChallenge(authMethod, err)
	}

	if respExtra == nil {
		respExtra = map[string]any{}
	}
	if err := s.peer.SendAuthenticate(signature, respExtra); err != nil {
		return fmt.Errorf("failed to send AUTHENTICATE: %w", err)
	}
	return nil
}

func (s *SessionCore) failChallenge(authMethod string, cause error) error {
	var authErr *auth.Error
	if !errors.As(cause, &authErr) {
		authErr = &auth.Error{
			Reason:  wamp.ErrCannotAuthenticate,
			Message: cause.Error(),
		}
	}
	details := authErr.Details
	if details == nil {
		details = map[string]any{}
	}

	s.log.Warn("authentication failed, aborting",
		slog.String("method", authMethod),
		slog.String("reason", string(authErr.Reason)))

	sendErr := s.peer.SendAbort(details, authErr.Reason)

	s.state = StateClosed
	s.rejectOpened(&ConnectionBrokenError{CloseType: CloseTypeAbort, Reason: authErr.Reason, Err: authErr})
	s.emitError(authErr)

	if sendErr != nil {
		return fmt.Errorf("failed to send ABORT: %w", sendErr)
	}
	return nil
}

// Welcome is invoked when the peer sends WELCOME: the sole success terminal.
// It records the session id, resolves the open handle, and emits Established.
func (s *SessionCore) Welcome(sessionID wamp.ID, details *serializer.Deferred) {
	s.sessionID = sessionID
	s.state = StateOpen

	s.log.Info("session established", slog.Int64("session_id", int64(sessionID)))
	s.resolveOpened(sessionID)
	s.emitEstablished(EstablishedEvent{SessionID: sessionID, Details: details})
}

// Abort is invoked when the peer sends ABORT at any point of the handshake.
// It is a terminal close tagged CloseTypeAbort.
func (s *SessionCore) Abort(details *serializer.Deferred, reason wamp.URI) {
	s.log.Warn("received ABORT", slog.String("reason", string(reason)))
	s.terminate(CloseTypeAbort, details, reason)
}

// Goodbye is invoked when the peer sends GOODBYE. If the local side has not
// already sent its own GOODBYE this attempt, the core completes the handshake
// by replying once with wamp.close.goodbye_and_out, then raises the terminal
// close tagged CloseTypeGoodbye.
func (s *SessionCore) Goodbye(details *serializer.Deferred, reason wamp.URI) error {
	s.log.Info("received GOODBYE", slog.String("reason", string(reason)))

	var sendErr error
	if !s.goodbyeSent {
		s.goodbyeSent = true
		sendErr = s.peer.SendGoodbye(map[string]any{}, wamp.CloseGoodbyeAndOut)
	}

	s.terminate(CloseTypeGoodbye, details, reason)

	if sendErr != nil {
		return fmt.Errorf("failed to send GOODBYE reply: %w", sendErr)
	}
	return nil
}

// Close initiates a local, orderly shutdown by sending GOODBYE. An empty
// reason defaults to wamp.close.normal and nil details to an empty map.
// Close only initiates: the open handle and the Broken notification settle
// later, when the peer's GOODBYE reply or the transport's closure arrives,
// keeping one code path responsible for ending the attempt.
func (s *SessionCore) Close(reason wamp.URI, details map[string]any) error {
	if reason == "" {
		reason = wamp.CloseNormal
	}
	if details == nil {
		details = map[string]any{}
	}

	s.goodbyeSent = true
	s.log.Info("closing session", slog.String("reason", string(reason)))
	if err := s.peer.SendGoodbye(details, reason); err != nil {
		return fmt.Errorf("failed to send GOODBYE: %w", err)
	}
	return nil
}

// OnConnectionClosed is invoked when the transport link is torn down with no
// further protocol context. The open handle fails before the broken-guard
// check so a pending handshake always surfaces as a failure to awaiting code
// whether or not a Broken event also fires; the attempt guards then reset so
// the machine is clean for the next attempt.
func (s *SessionCore) OnConnectionClosed() {
	s.log.Debug("transport closed")
	s.rejectOpened(&ConnectionBrokenError{
		CloseType: CloseTypeDisconnection,
		Err:       ErrClosedBeforeEstablished,
	})

	if !s.brokenRaised {
		s.emitBroken(BrokenEvent{
			CloseType: CloseTypeDisconnection,
			SessionID: s.sessionID,
		})
	}

	s.sessionID = 0
	s.state = StateClosed
	s.brokenRaised = false
	s.goodbyeSent = false
}

// OnConnectionError is invoked on an unrecoverable transport fault. The fault
// is surfaced verbatim through the Error stream; no Broken event fires, and
// the attempt guards reset for the next attempt.
func (s *SessionCore) OnConnectionError(fault error) {
	s.log.Error("transport error", slog.String("error", fault.Error()))
	s.rejectOpened(&ConnectionBrokenError{
		CloseType: CloseTypeDisconnection,
		Err:       fault,
	})
	s.emitError(fault)

	s.sessionID = 0
	s.state = StateClosed
	s.brokenRaised = false
	s.goodbyeSent = false
}

// terminate handles the protocol-level terminal closes (Abort, Goodbye):
// fail a pending open handle, then emit at most one Broken per attempt.
func (s *SessionCore) terminate(closeType CloseType, details *serializer.Deferred, reason wamp.URI) {
	s.rejectOpened(&ConnectionBrokenError{CloseType: closeType, Reason: reason})

	if !s.brokenRaised {
		s.brokenRaised = true
		s.emitBroken(BrokenEvent{
			CloseType: closeType,
			SessionID: s.sessionID,
			Details:   details,
			Reason:    reason,
		})
	}

	s.sessionID = 0
	s.state = StateClosed
}

// resolveOpened settles the current open handle with success and installs a
// fresh pending handle. Settling is a no-op on an already-settled handle.
func (s *SessionCore) resolveOpened(id wamp.ID) {
	s.signalMu.Lock()
	h := s.opened
	s.opened = completion.New[wamp.ID]()
	s.signalMu.Unlock()
	h.Resolve(id)
}

// rejectOpened settles the current open handle with failure and installs a
// fresh pending handle. Settling is a no-op on an already-settled handle.
func (s *SessionCore) rejectOpened(err error) {
	s.signalMu.Lock()
	h := s.opened
	s.opened = completion.New[wamp.ID]()
	s.signalMu.Unlock()
	h.Reject(err)
}

func (s *SessionCore) emitEstablished(ev EstablishedEvent) {
	s.listenerMu.Lock()
	listeners := append([]EstablishedListener(nil), s.established...)
	s.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

func (s *SessionCore) emitBroken(ev BrokenEvent) {
	s.listenerMu.Lock()
	listeners := append([]BrokenListener(nil), s.broken...)
	s.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

func (s *SessionCore) emitError(err error) {
	s.listenerMu.Lock()
	listeners := append([]ErrorListener(nil), s.errored...)
	s.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(err)
	}
}
