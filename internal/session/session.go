// Package session binds a state reducer to a transport client and the local
// stores. It applies transport signals to the reducer in order and sends the
// player's intents.
package session

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/thirteen/internal/client"
	"github.com/vovakirdan/thirteen/internal/core"
	"github.com/vovakirdan/thirteen/internal/protocol"
	"github.com/vovakirdan/thirteen/internal/state"
	"github.com/vovakirdan/thirteen/internal/storage"
)

// Transport is the part of client.Client a session needs.
type Transport interface {
	Connect(ctx context.Context, url string) error
	Send(ctx context.Context, r protocol.Request) error
	Signals() <-chan client.Signal
	Close() error
}

// NameStore remembers the display name between runs.
type NameStore interface {
	LastName() (string, error)
	SetLastName(name string) error
}

// ResultStore records finished games.
type ResultStore interface {
	SaveResult(r storage.GameResult) (int64, error)
}

// Option configures a Session.
type Option func(*Session)

// WithNames remembers the name passed to Join.
func WithNames(n NameStore) Option {
	return func(s *Session) {
		s.names = n
	}
}

// WithResults records every finished game.
func WithResults(r ResultStore) Option {
	return func(s *Session) {
		s.results = r
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithWriteTimeout bounds every send.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.writeTimeout = d
	}
}

// Session is used from a single goroutine except for Join, which may run
// concurrently with Handle.
type Session struct {
	reducer      *state.Reducer
	transport    Transport
	url          string
	names        NameStore
	results      ResultStore
	logger       *log.Logger
	writeTimeout time.Duration

	mu       sync.Mutex // guards joinName and pending
	joinName string
	pending  *storage.GameResult
}

// New creates a session for the server at url.
func New(r *state.Reducer, t Transport, url string, opts ...Option) *Session {
	s := &Session{
		reducer:      r,
		transport:    t,
		url:          url,
		writeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Reducer returns the session's state.
func (s *Session) Reducer() *state.Reducer {
	return s.reducer
}

// Signals returns the transport's signal stream.
func (s *Session) Signals() <-chan client.Signal {
	return s.transport.Signals()
}

// Join remembers name and (re)connects. The join request itself is sent
// when the connection opens.
func (s *Session) Join(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	s.mu.Lock()
	s.joinName = name
	s.mu.Unlock()
	if s.names != nil && name != "" {
		if err := s.names.SetLastName(name); err != nil {
			s.logger.Warn("could not remember name", "err", err)
		}
	}
	return s.transport.Connect(ctx, s.url)
}

// Handle applies one transport signal.
func (s *Session) Handle(sig client.Signal) {
	switch sig := sig.(type) {
	case client.Connecting:
		s.reducer.Connecting()
	case client.Opened:
		s.reducer.Opened()
		s.mu.Lock()
		name := s.joinName
		s.mu.Unlock()
		if err := s.send(s.reducer.JoinIntent(name)); err != nil {
			s.logger.Error("join failed", "conn", sig.ConnID, "err", err)
		}
	case client.Message:
		s.reducer.Dispatch(sig.Event)
		s.track(sig.Event)
	case client.Closed:
		s.flushResult()
		s.reducer.Disconnected()
		if sig.Err != nil {
			s.logger.Warn("connection lost", "conn", sig.ConnID, "err", sig.Err)
		}
	case client.Failed:
		s.logger.Error("transport error", "conn", sig.ConnID, "err", sig.Err)
	}
}

// Run applies signals until ctx is done or the stream ends. onSignal, if
// set, is called after each one.
func (s *Session) Run(ctx context.Context, onSignal func(client.Signal)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-s.transport.Signals():
			if !ok {
				return nil
			}
			s.Handle(sig)
			if onSignal != nil {
				onSignal(sig)
			}
		}
	}
}

// StartGame asks the server to start the game.
func (s *Session) StartGame() error {
	return s.sendConnected(s.reducer.StartGameIntent())
}

// PassTurn passes the current turn.
func (s *Session) PassTurn() error {
	return s.sendConnected(s.reducer.PassTurnIntent())
}

// PlayCards plays the given cards.
func (s *Session) PlayCards(cards []core.Card) error {
	return s.sendConnected(s.reducer.PlayCardsIntent(cards))
}

// ChangeName renames the local player and remembers the new name.
func (s *Session) ChangeName(name string) error {
	name = strings.TrimSpace(name)
	if err := s.sendConnected(s.reducer.ChangeNameIntent(name)); err != nil {
		return err
	}
	if s.names != nil {
		if err := s.names.SetLastName(name); err != nil {
			s.logger.Warn("could not remember name", "err", err)
		}
	}
	return nil
}

// ResetGame returns the table to the lobby.
func (s *Session) ResetGame() error {
	return s.sendConnected(s.reducer.ResetGameIntent())
}

// Close records a game still waiting for its final refresh, shuts the
// transport down and discards signals nobody reads any more.
func (s *Session) Close() error {
	s.flushResult()
	err := s.transport.Close()
	go func() {
		for range s.transport.Signals() {
		}
	}()
	return err
}

func (s *Session) sendConnected(r protocol.Request) error {
	if s.reducer.Phase() != core.Connected {
		return client.ErrNotConnected
	}
	return s.send(r)
}

func (s *Session) send(r protocol.Request) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	return s.transport.Send(ctx, r)
}

// track stashes a finished game on GAME_WON and completes it with the
// finishing order from the refresh that follows.
func (s *Session) track(e protocol.Event) {
	if s.results == nil {
		return
	}
	switch e := e.(type) {
	case protocol.GameWon:
		s.flushResult()
		snap := s.reducer.Snapshot()
		players := len(snap.Opponents)
		if snap.Self != nil {
			players++
		}
		s.mu.Lock()
		s.pending = &storage.GameResult{
			GameID:    uuid.NewString(),
			Server:    s.url,
			LocalName: s.reducer.Name(),
			Winner:    e.Player.Name,
			Players:   players,
			Places:    names(snap.WinPlaces),
		}
		s.mu.Unlock()
	case protocol.GameStateRefresh:
		s.mu.Lock()
		p := s.pending
		if p != nil && len(e.WinPlaces) >= len(p.Places) {
			p.Places = names(e.WinPlaces)
		}
		s.mu.Unlock()
		if p != nil {
			s.flushResult()
		}
	}
}

func (s *Session) flushResult() {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.mu.Unlock()
	if p == nil || s.results == nil {
		return
	}
	r := *p
	if _, err := s.results.SaveResult(r); err != nil {
		s.logger.Warn("could not record result", "err", err)
		return
	}
	s.logger.Debug("recorded result", "game", r.GameID, "winner", r.Winner)
}

func names(players []core.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.Name)
	}
	return out
}
