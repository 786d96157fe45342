package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"nhooyr.io/websocket"

	"github.com/vovakirdan/thirteen/internal/client"
	"github.com/vovakirdan/thirteen/internal/core"
	"github.com/vovakirdan/thirteen/internal/protocol"
	"github.com/vovakirdan/thirteen/internal/state"
	"github.com/vovakirdan/thirteen/internal/storage"
)

type fakeTransport struct {
	signals chan client.Signal
	sent    []protocol.Request
	urls    []string
	sendErr error
	closed  bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{signals: make(chan client.Signal, 16)}
}

func (f *fakeTransport) Connect(ctx context.Context, url string) error {
	f.urls = append(f.urls, url)
	return nil
}

func (f *fakeTransport) Send(ctx context.Context, r protocol.Request) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, r)
	return nil
}

func (f *fakeTransport) Signals() <-chan client.Signal { return f.signals }

func (f *fakeTransport) Close() error {
	if !f.closed {
		f.closed = true
		close(f.signals)
	}
	return nil
}

type memNames struct {
	name string
}

func (m *memNames) LastName() (string, error)     { return m.name, nil }
func (m *memNames) SetLastName(name string) error { m.name = name; return nil }

type memResults struct {
	saved []storage.GameResult
}

func (m *memResults) SaveResult(r storage.GameResult) (int64, error) {
	m.saved = append(m.saved, r)
	return int64(len(m.saved)), nil
}

func TestJoinRemembersNameAndSendsOnOpen(t *testing.T) {
	names := &memNames{}
	tr := newFakeTransport()
	s := New(state.New(), tr, "ws://example/api", WithNames(names))

	if err := s.Join(context.Background(), "  alice "); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if names.name != "alice" {
		t.Errorf("remembered name = %q, want alice", names.name)
	}
	if diff := cmp.Diff([]string{"ws://example/api"}, tr.urls); diff != "" {
		t.Errorf("connect urls (-want +got):\n%s", diff)
	}

	s.Handle(client.Connecting{ConnID: "c1"})
	if got := s.Reducer().Phase(); got != core.Connecting {
		t.Fatalf("Phase() = %v, want connecting", got)
	}
	s.Handle(client.Opened{ConnID: "c1"})
	if got := s.Reducer().Phase(); got != core.Connected {
		t.Fatalf("Phase() = %v, want connected", got)
	}

	want := []protocol.Request{protocol.JoinGame{PlayerName: "alice"}}
	if diff := cmp.Diff(want, tr.sent); diff != "" {
		t.Errorf("sent (-want +got):\n%s", diff)
	}
}

func TestIntentsRequireConnection(t *testing.T) {
	tr := newFakeTransport()
	s := New(state.New(), tr, "ws://example/api")

	if err := s.StartGame(); !errors.Is(err, client.ErrNotConnected) {
		t.Errorf("StartGame() err = %v, want ErrNotConnected", err)
	}
	if len(tr.sent) != 0 {
		t.Fatalf("sent %v while not connected", tr.sent)
	}

	s.Handle(client.Opened{})
	tr.sent = nil

	deck := core.Deck()
	calls := []func() error{
		s.StartGame,
		s.PassTurn,
		func() error { return s.PlayCards([]core.Card{deck[3], deck[0]}) },
		func() error { return s.ChangeName("bob") },
		s.ResetGame,
	}
	for i, call := range calls {
		if err := call(); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	want := []protocol.Request{
		protocol.StartGame{},
		protocol.TurnPass{},
		protocol.TurnPlay{Cards: []int{49, 52}},
		protocol.ChangeName{Name: "bob"},
		protocol.ResetGame{},
	}
	if diff := cmp.Diff(want, tr.sent); diff != "" {
		t.Errorf("sent (-want +got):\n%s", diff)
	}
}

func TestClosedResetsState(t *testing.T) {
	tr := newFakeTransport()
	s := New(state.New(), tr, "ws://example/api")

	s.Handle(client.Opened{})
	s.Handle(client.Message{Event: protocol.GameStateRefresh{
		GameState: core.Running,
		Self:      &core.Player{Name: "alice"},
		SelfHand:  core.Deck()[:5],
	}})
	s.Handle(client.Closed{Err: errors.New("reset by peer")})

	snap := s.Reducer().Snapshot()
	if snap.Phase != core.NotConnected || snap.Self != nil || len(snap.SelfHand) != 0 || snap.GamePhase != core.InLobby {
		t.Errorf("snapshot not reset: %+v", snap)
	}
	last, _ := s.Reducer().Log().Last()
	if !last.Interrupt {
		t.Error("disconnect entry should interrupt")
	}
}

func TestFailedDoesNotChangeState(t *testing.T) {
	tr := newFakeTransport()
	s := New(state.New(), tr, "ws://example/api")
	s.Handle(client.Opened{})

	before := s.Reducer().Snapshot()
	s.Handle(client.Failed{Err: errors.New("write: broken pipe")})

	if diff := cmp.Diff(before, s.Reducer().Snapshot()); diff != "" {
		t.Errorf("Failed changed the snapshot (-want +got):\n%s", diff)
	}
	if s.Reducer().Log().Len() != 0 {
		t.Error("Failed wrote to the event log")
	}
}

func TestResultRecordedAfterRefresh(t *testing.T) {
	results := &memResults{}
	tr := newFakeTransport()
	s := New(state.New(), tr, "ws://example/api", WithResults(results))

	s.Handle(client.Opened{})
	s.Handle(client.Message{Event: protocol.GameStateRefresh{
		GameState: core.Running,
		Self:      &core.Player{Name: "alice"},
		Opponents: []core.Player{{Name: "bob"}, {Name: "carol"}},
	}})
	s.Handle(client.Message{Event: protocol.GameWon{Player: core.Player{Name: "bob"}}})
	if len(results.saved) != 0 {
		t.Fatal("result saved before the final refresh")
	}

	s.Handle(client.Message{Event: protocol.GameStateRefresh{
		GameState: core.InLobby,
		Self:      &core.Player{Name: "alice", Score: 1},
		Opponents: []core.Player{{Name: "bob", Score: 3}, {Name: "carol"}},
		WinPlaces: []core.Player{{Name: "bob"}, {Name: "alice"}, {Name: "carol"}},
	}})

	if len(results.saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(results.saved))
	}
	got := results.saved[0]
	if got.Winner != "bob" || got.LocalName != "alice" || got.Players != 3 || got.GameID == "" {
		t.Errorf("unexpected result: %+v", got)
	}
	if diff := cmp.Diff([]string{"bob", "alice", "carol"}, got.Places); diff != "" {
		t.Errorf("places (-want +got):\n%s", diff)
	}
}

func TestResultRecordedOnDisconnect(t *testing.T) {
	results := &memResults{}
	tr := newFakeTransport()
	s := New(state.New(), tr, "ws://example/api", WithResults(results))

	s.Handle(client.Opened{})
	s.Handle(client.Message{Event: protocol.GameWon{Player: core.Player{Name: "bob"}}})
	s.Handle(client.Closed{})

	if len(results.saved) != 1 || results.saved[0].Winner != "bob" {
		t.Errorf("saved = %+v, want one result won by bob", results.saved)
	}
}

func TestResultRecordedOnClose(t *testing.T) {
	results := &memResults{}
	tr := newFakeTransport()
	s := New(state.New(), tr, "ws://example/api", WithResults(results))

	s.Handle(client.Opened{})
	s.Handle(client.Message{Event: protocol.GameWon{Player: core.Player{Name: "bob"}}})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(results.saved) != 1 || results.saved[0].Winner != "bob" {
		t.Errorf("saved = %+v, want one result won by bob", results.saved)
	}
}

func TestJoinConcurrentWithOpened(t *testing.T) {
	tr := newFakeTransport()
	s := New(state.New(), tr, "ws://example/api")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.Join(context.Background(), "bob"); err != nil {
			t.Errorf("Join: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		s.Handle(client.Opened{})
	}()
	wg.Wait()

	if len(tr.sent) != 1 {
		t.Fatalf("sent %d requests, want 1", len(tr.sent))
	}
	if _, ok := tr.sent[0].(protocol.JoinGame); !ok {
		t.Errorf("sent %#v, want a join", tr.sent[0])
	}
}

func TestRunAgainstServer(t *testing.T) {
	requests := make(chan protocol.JoinGame, 4)
	frames := [][]byte{
		eventFrame(t, protocol.PlayerJoined{Player: core.Player{Name: "Alice"}}),
		eventFrame(t, protocol.GameStateRefresh{GameState: core.InLobby, Self: &core.Player{Name: "Alice"}, FirstRound: true, NewRound: true}),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{Subprotocols: []string{protocol.Subprotocol}})
		if err != nil {
			return
		}
		ctx := r.Context()
		_, data, err := c.Read(ctx)
		if err != nil {
			return
		}
		req, ok := joinRequest(data)
		if !ok {
			return
		}
		requests <- req

		for _, f := range frames {
			if err := c.Write(ctx, websocket.MessageText, f); err != nil {
				return
			}
		}
		c.Close(websocket.StatusNormalClosure, "done")
	}))
	defer srv.Close()

	cl := client.New()
	s := New(state.New(), cl, "ws"+strings.TrimPrefix(srv.URL, "http"))
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- s.Join(ctx, "Alice") }()

	var refreshed bool
	err := s.Run(ctx, func(sig client.Signal) {
		if m, ok := sig.(client.Message); ok {
			if _, ok := m.Event.(protocol.GameStateRefresh); ok {
				snap := s.Reducer().Snapshot()
				refreshed = snap.Self != nil && snap.Self.Name == "Alice" && s.Reducer().IsFirstGame()
			}
		}
		if _, ok := sig.(client.Closed); ok {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if err := <-errc; err != nil {
		t.Fatalf("Join: %v", err)
	}

	select {
	case req := <-requests:
		if diff := cmp.Diff(protocol.JoinGame{PlayerName: "Alice"}, req); diff != "" {
			t.Errorf("server got (-want +got):\n%s", diff)
		}
	default:
		t.Fatal("server received no request")
	}
	if !refreshed {
		t.Error("refresh did not populate self")
	}

	var got []string
	for _, e := range s.Reducer().Log().Entries() {
		got = append(got, e.String())
	}
	want := []string{`"Alice" has joined the game.`, "You were disconnected from the game."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
	if s.Reducer().Phase() != core.NotConnected {
		t.Errorf("Phase() = %v, want not-connected", s.Reducer().Phase())
	}
}
