// Package state holds the client's mirror of the server's game state and the
// rules for updating it from server events and connection signals.
package state

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"
	"github.com/vovakirdan/thirteen/internal/core"
	"github.com/vovakirdan/thirteen/internal/eventlog"
	"github.com/vovakirdan/thirteen/internal/protocol"
)

// Connection phase machine events.
const (
	eventDial    = "dial"
	eventOpen    = "open"
	eventConfirm = "confirm"
	eventClose   = "close"
)

// NameSource supplies the remembered display name.
type NameSource interface {
	LastName() (string, error)
}

// LogView is the read-only surface of the event log.
type LogView interface {
	Entries() []eventlog.Entry
	Since(n int) []eventlog.Entry
	Last() (eventlog.Entry, bool)
	Len() int
	Generation() int
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithLog replaces the event log, e.g. to inject a clock.
func WithLog(l *eventlog.Log) Option {
	return func(r *Reducer) {
		r.log = l
	}
}

// WithRememberedName seeds the display name from src at construction.
func WithRememberedName(src NameSource) Option {
	return func(r *Reducer) {
		r.names = src
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Reducer) {
		r.logger = l
	}
}

// Reducer owns the game snapshot and the event log. It is the only writer of
// either. It is not safe for concurrent use; callers apply events and
// signals from one goroutine.
type Reducer struct {
	snap   GameSnapshot
	log    *eventlog.Log
	sm     *fsm.FSM
	names  NameSource
	logger *log.Logger
}

var _ protocol.Handler = (*Reducer)(nil)

// New creates a reducer in the not-connected state.
func New(opts ...Option) *Reducer {
	r := &Reducer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = eventlog.New()
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}

	name := ""
	if r.names != nil {
		n, err := r.names.LastName()
		if err != nil {
			r.logger.Warn("could not read remembered name", "err", err)
		}
		name = n
	}
	r.snap = emptySnapshot(name)

	all := []string{core.NotConnected.String(), core.Connecting.String(), core.Connected.String()}
	r.sm = fsm.NewFSM(
		core.NotConnected.String(),
		fsm.Events{
			{Name: eventDial, Src: all, Dst: core.Connecting.String()},
			{Name: eventOpen, Src: []string{core.NotConnected.String(), core.Connecting.String()}, Dst: core.Connected.String()},
			{Name: eventConfirm, Src: all, Dst: core.Connected.String()},
			{Name: eventClose, Src: all, Dst: core.NotConnected.String()},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) { r.enterState(e) },
		},
	)
	return r
}

func (r *Reducer) enterState(e *fsm.Event) {
	phase, ok := core.ParseConnectionPhase(e.Dst)
	if !ok {
		return
	}
	r.snap.Phase = phase
	r.logger.Debug("connection phase", "from", e.Src, "to", e.Dst, "event", e.Event)
}

func (r *Reducer) transition(event string) {
	err := r.sm.Event(event)
	if err == nil {
		return
	}
	var noop fsm.NoTransitionError
	if errors.As(err, &noop) {
		return
	}
	r.logger.Debug("ignored phase transition", "event", event, "phase", r.sm.Current(), "err", err)
}

// Connecting records that a connection attempt has started.
func (r *Reducer) Connecting() {
	r.transition(eventDial)
}

// Opened records that the transport is open. The caller sends the join
// request afterwards.
func (r *Reducer) Opened() {
	r.transition(eventOpen)
}

// Disconnected resets the table after the transport closed, for any reason.
// The event log is kept.
func (r *Reducer) Disconnected() {
	r.log.Append(eventlog.Error, []eventlog.Rune{eventlog.Text("You were disconnected from the game.")}, true)
	r.transition(eventClose)
	r.snap = emptySnapshot(r.snap.Name)
}

// Dispatch applies one server event.
func (r *Reducer) Dispatch(e protocol.Event) {
	e.Visit(r)
}

// Snapshot returns a copy of the current state.
func (r *Reducer) Snapshot() GameSnapshot {
	return r.snap.clone()
}

// Phase returns the connection phase.
func (r *Reducer) Phase() core.ConnectionPhase { return r.snap.Phase }

// Name returns the local display name.
func (r *Reducer) Name() string { return r.snap.Name }

// Log returns a read-only view of the event log.
func (r *Reducer) Log() LogView { return r.log }

// IsInLobby reports whether the table waits for a game to start.
func (r *Reducer) IsInLobby() bool { return r.snap.IsInLobby() }

// IsInProgress reports whether a game is running or paused.
func (r *Reducer) IsInProgress() bool { return r.snap.IsInProgress() }

// IsPaused reports whether the game waits for players to reconnect.
func (r *Reducer) IsPaused() bool { return r.snap.IsPaused() }

// IsFirstGame reports whether nobody at the table has scored yet.
func (r *Reducer) IsFirstGame() bool { return r.snap.IsFirstGame() }

func (r *Reducer) say(sev eventlog.Severity, format string, args ...any) {
	r.log.Append(sev, []eventlog.Rune{eventlog.Text(fmt.Sprintf(format, args...))})
}
