package protocol

import "github.com/vovakirdan/thirteen/internal/core"

// Outbound request kinds.
const (
	KindJoinGame   = "JOIN_GAME"
	KindStartGame  = "START_GAME"
	KindTurnPass   = "TURN_PASS"
	KindTurnPlay   = "TURN_PLAY"
	KindChangeName = "CHANGE_NAME"
	KindResetGame  = "RESET_GAME"
)

// Request is a message sent to the server.
type Request interface {
	Kind() string
	request()
}

// JoinGame links the connection with a player name.
type JoinGame struct {
	PlayerName string `json:"playerName"`
}

func (JoinGame) Kind() string { return KindJoinGame }
func (JoinGame) request()     {}

// StartGame starts a ready lobby.
type StartGame struct{}

func (StartGame) Kind() string { return KindStartGame }
func (StartGame) request()     {}

// TurnPass skips the current turn.
type TurnPass struct{}

func (TurnPass) Kind() string { return KindTurnPass }
func (TurnPass) request()     {}

// TurnPlay plays cards identified by global rank.
type TurnPlay struct {
	Cards []int `json:"cards"`
}

func (TurnPlay) Kind() string { return KindTurnPlay }
func (TurnPlay) request()     {}

// NewTurnPlay converts cards to their global ranks, keeping order.
func NewTurnPlay(cards []core.Card) TurnPlay {
	return TurnPlay{Cards: core.GlobalRanks(cards)}
}

// ChangeName renames the local player.
type ChangeName struct {
	Name string `json:"name"`
}

func (ChangeName) Kind() string { return KindChangeName }
func (ChangeName) request()     {}

// ResetGame returns the table to the lobby.
type ResetGame struct{}

func (ResetGame) Kind() string { return KindResetGame }
func (ResetGame) request()     {}

// Encode builds the envelope for r.
func Encode(r Request) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: r.Kind(), Data: data})
}

func unmarshalData(env envelope, v any) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return malformed(env.Kind, "payload", err)
	}
	return nil
}
