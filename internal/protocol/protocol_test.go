package protocol

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/vovakirdan/thirteen/internal/core"
	"github.com/vovakirdan/thirteen/internal/errpolicy"
)

// frame builds an envelope the way the server does.
func frame(kind, payload string) []byte {
	data := base64.StdEncoding.EncodeToString([]byte(payload))
	return []byte(`{"kind":"` + kind + `","data":"` + data + `"}`)
}

// recorder remembers which handler method was called.
type recorder struct {
	called string
	event  Event
}

func (r *recorder) PlayerJoined(e PlayerJoined)             { r.called, r.event = "PlayerJoined", e }
func (r *recorder) PlayerDisconnected(e PlayerDisconnected) { r.called, r.event = "PlayerDisconnected", e }
func (r *recorder) GameStarted(e GameStarted)               { r.called, r.event = "GameStarted", e }
func (r *recorder) GamePaused(e GamePaused)                 { r.called, r.event = "GamePaused", e }
func (r *recorder) GameResumed(e GameResumed)               { r.called, r.event = "GameResumed", e }
func (r *recorder) GameReset(e GameReset)                   { r.called, r.event = "GameReset", e }
func (r *recorder) TurnPassed(e TurnPassed)                 { r.called, r.event = "TurnPassed", e }
func (r *recorder) RoundWon(e RoundWon)                     { r.called, r.event = "RoundWon", e }
func (r *recorder) TurnPlayed(e TurnPlayed)                 { r.called, r.event = "TurnPlayed", e }
func (r *recorder) NameChanged(e NameChanged)               { r.called, r.event = "NameChanged", e }
func (r *recorder) PlayerPlaced(e PlayerPlaced)             { r.called, r.event = "PlayerPlaced", e }
func (r *recorder) GameWon(e GameWon)                       { r.called, r.event = "GameWon", e }
func (r *recorder) GameStateRefresh(e GameStateRefresh)     { r.called, r.event = "GameStateRefresh", e }
func (r *recorder) Error(e Error)                           { r.called, r.event = "Error", e }
func (r *recorder) Unrecognized(e Unrecognized)             { r.called, r.event = "Unrecognized", e }

func TestDecodeDispatch(t *testing.T) {
	alice := `{"player":{"name":"alice","position":1}}`
	tests := []struct {
		kind    string
		payload string
		handler string
	}{
		{KindPlayerJoined, alice, "PlayerJoined"},
		{KindPlayerDisconnected, alice, "PlayerDisconnected"},
		{KindGameStarted, alice, "GameStarted"},
		{KindGamePaused, `{}`, "GamePaused"},
		{KindGameResumed, `{}`, "GameResumed"},
		{KindGameReset, alice, "GameReset"},
		{KindTurnPassed, alice, "TurnPassed"},
		{KindRoundWon, alice, "RoundWon"},
		{KindTurnPlayed, `{"player":{"name":"alice"},"cards":[{"suit":1,"faceValue":3,"suitRank":13,"globalRank":52}]}`, "TurnPlayed"},
		{KindNameChanged, `{"oldPlayer":{"name":"a"},"newPlayer":{"name":"b"}}`, "NameChanged"},
		{KindPlayerPlaced, `{"player":{"name":"alice"},"place":2}`, "PlayerPlaced"},
		{KindGameWon, alice, "GameWon"},
		{KindGameStateRefresh, `{"gameState":1,"firstRound":true,"newRound":true}`, "GameStateRefresh"},
		{KindError, `{"kind":3}`, "Error"},
		{"SOMETHING_NEW", `{"x":1}`, "Unrecognized"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			e, err := Decode(frame(tt.kind, tt.payload))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if e.Kind() != tt.kind {
				t.Errorf("Kind() = %q, want %q", e.Kind(), tt.kind)
			}

			var r recorder
			e.Visit(&r)
			if r.called != tt.handler {
				t.Errorf("visited %q, want %q", r.called, tt.handler)
			}
		})
	}
}

func TestDecodePayloads(t *testing.T) {
	e, err := Decode(frame(KindPlayerPlaced, `{"player":{"name":"bob","cardsLeft":0,"score":3},"place":1}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := PlayerPlaced{Player: core.Player{Name: "bob", Score: 3}, Place: 1}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("PlayerPlaced mismatch (-want +got):\n%s", diff)
	}

	e, err = Decode(frame(KindGameStateRefresh, `{
		"opponents":[{"name":"bob","position":2,"cardsLeft":13}],
		"self":{"name":"alice","position":1,"isTurn":true},
		"selfHand":[{"suit":4,"faceValue":2,"suitRank":1,"globalRank":1}],
		"gameState":2,"firstRound":false,"newRound":true}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	wantRefresh := GameStateRefresh{
		Opponents:  []core.Player{{Name: "bob", Position: 2, CardsLeft: 13}},
		Self:       &core.Player{Name: "alice", Position: 1, IsTurn: true},
		SelfHand:   []core.Card{{Suit: core.Hearts, FaceValue: 2, SuitRank: 1, GlobalRank: 1}},
		GameState:  core.Running,
		NewRound:   true,
	}
	if diff := cmp.Diff(wantRefresh, e, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("GameStateRefresh mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
	}{
		{"not json", []byte("hello")},
		{"missing kind", []byte(`{"data":""}`)},
		{"bad base64", []byte(`{"kind":"PLAYER_JOINED","data":"!!!"}`)},
		{"bad payload", frame(KindPlayerJoined, `{"player":"alice"}`)},
		{"game state out of range", frame(KindGameStateRefresh, `{"gameState":7}`)},
		{"game state missing", frame(KindGameStateRefresh, `{}`)},
		{"error kind out of range", frame(KindError, `{"kind":42}`)},
		{"player joined without data", []byte(`{"kind":"PLAYER_JOINED"}`)},
		{"player joined with null data", []byte(`{"kind":"PLAYER_JOINED","data":"bnVsbA=="}`)},
		{"turn played with empty data", []byte(`{"kind":"TURN_PLAYED","data":""}`)},
		{"player placed without data", []byte(`{"kind":"PLAYER_PLACED"}`)},
		{"refresh without data", []byte(`{"kind":"GAME_STATE_REFRESH"}`)},
		{"error without data", []byte(`{"kind":"ERROR","data":null}`)},
		{"player joined without name", frame(KindPlayerJoined, `{"player":{"name":""}}`)},
		{"game won without player", frame(KindGameWon, `{}`)},
		{"name changed without new name", frame(KindNameChanged, `{"oldPlayer":{"name":"a"},"newPlayer":{}}`)},
		{"player placed 0th", frame(KindPlayerPlaced, `{"player":{"name":"bob"},"place":0}`)},
		{"turn played without cards", frame(KindTurnPlayed, `{"player":{"name":"bob"},"cards":[]}`)},
		{"turn played unknown card", frame(KindTurnPlayed, `{"player":{"name":"bob"},"cards":[{"globalRank":60}]}`)},
		{"refresh with unknown card", frame(KindGameStateRefresh, `{"gameState":2,"selfHand":[{"suit":1,"globalRank":1}]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.frame)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Decode err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestDecodeEmptyPayloadEvents(t *testing.T) {
	for _, f := range [][]byte{
		[]byte(`{"kind":"GAME_PAUSED"}`),
		[]byte(`{"kind":"GAME_RESUMED","data":null}`),
		frame(KindGamePaused, `{}`),
	} {
		e, err := Decode(f)
		if err != nil {
			t.Fatalf("Decode(%s): %v", f, err)
		}
		switch e.(type) {
		case GamePaused, GameResumed:
		default:
			t.Errorf("Decode(%s) = %T", f, e)
		}
	}
}

func TestEncodeRequests(t *testing.T) {
	cards := []core.Card{{GlobalRank: 7}, {GlobalRank: 3}}

	tests := []Request{
		JoinGame{PlayerName: "alice"},
		StartGame{},
		TurnPass{},
		NewTurnPlay(cards),
		ChangeName{Name: "bob"},
		ResetGame{},
	}

	for _, req := range tests {
		t.Run(req.Kind(), func(t *testing.T) {
			b, err := Encode(req)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := decodeRequest(b)
			if err != nil {
				t.Fatalf("decodeRequest: %v", err)
			}
			if diff := cmp.Diff(req, got); diff != "" {
				t.Errorf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTurnPlayWire(t *testing.T) {
	b, err := Encode(NewTurnPlay([]core.Card{{GlobalRank: 52}, {GlobalRank: 13}}))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Kind != KindTurnPlay {
		t.Errorf("kind = %q", env.Kind)
	}
	if got, want := string(env.Data), `{"cards":[52,13]}`; got != want {
		t.Errorf("data = %s, want %s", got, want)
	}
}

func TestEncodeEventRoundTrip(t *testing.T) {
	events := []Event{
		PlayerJoined{Player: core.Player{Name: "alice"}},
		GamePaused{},
		Error{ErrorKind: errpolicy.GameFull},
		GameStateRefresh{GameState: core.InLobby, FirstRound: true},
	}

	for _, e := range events {
		b, err := encodeEvent(e)
		if err != nil {
			t.Fatalf("encodeEvent(%s): %v", e.Kind(), err)
		}
		got, err := Decode(b)
		if err != nil {
			t.Fatalf("Decode(%s): %v", e.Kind(), err)
		}
		if diff := cmp.Diff(e, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", e.Kind(), diff)
		}
	}
}
