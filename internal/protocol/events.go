package protocol

import (
	"github.com/vovakirdan/thirteen/internal/core"
	"github.com/vovakirdan/thirteen/internal/errpolicy"
)

// Inbound event kinds.
const (
	KindPlayerJoined       = "PLAYER_JOINED"
	KindPlayerDisconnected = "PLAYER_DISCONNECTED"
	KindGameStarted        = "GAME_STARTED"
	KindGamePaused         = "GAME_PAUSED"
	KindGameResumed        = "GAME_RESUMED"
	KindGameReset          = "GAME_RESET"
	KindTurnPassed         = "TURN_PASSED"
	KindRoundWon           = "ROUND_WON"
	KindTurnPlayed         = "TURN_PLAYED"
	KindNameChanged        = "NAME_CHANGED"
	KindPlayerPlaced       = "PLAYER_PLACED"
	KindGameWon            = "GAME_WON"
	KindGameStateRefresh   = "GAME_STATE_REFRESH"
	KindError              = "ERROR"
)

// Event is a decoded server event. The set of implementations is closed;
// consumers handle them through Visit.
type Event interface {
	Kind() string
	Visit(h Handler)
}

// Handler has one method per known event kind. Unrecognized receives kinds
// this client does not know, typically from a newer server.
type Handler interface {
	PlayerJoined(PlayerJoined)
	PlayerDisconnected(PlayerDisconnected)
	GameStarted(GameStarted)
	GamePaused(GamePaused)
	GameResumed(GameResumed)
	GameReset(GameReset)
	TurnPassed(TurnPassed)
	RoundWon(RoundWon)
	TurnPlayed(TurnPlayed)
	NameChanged(NameChanged)
	PlayerPlaced(PlayerPlaced)
	GameWon(GameWon)
	GameStateRefresh(GameStateRefresh)
	Error(Error)
	Unrecognized(Unrecognized)
}

// PlayerJoined announces a newly connected player.
type PlayerJoined struct {
	Player core.Player `json:"player"`
}

func (PlayerJoined) Kind() string      { return KindPlayerJoined }
func (e PlayerJoined) Visit(h Handler) { h.PlayerJoined(e) }

// PlayerDisconnected announces a player leaving.
type PlayerDisconnected struct {
	Player core.Player `json:"player"`
}

func (PlayerDisconnected) Kind() string      { return KindPlayerDisconnected }
func (e PlayerDisconnected) Visit(h Handler) { h.PlayerDisconnected(e) }

// GameStarted names the player who started the game.
type GameStarted struct {
	Player core.Player `json:"player"`
}

func (GameStarted) Kind() string      { return KindGameStarted }
func (e GameStarted) Visit(h Handler) { h.GameStarted(e) }

// GamePaused is sent when a player drops out of a running game.
type GamePaused struct{}

func (GamePaused) Kind() string      { return KindGamePaused }
func (e GamePaused) Visit(h Handler) { h.GamePaused(e) }

// GameResumed is sent once every player is back.
type GameResumed struct{}

func (GameResumed) Kind() string      { return KindGameResumed }
func (e GameResumed) Visit(h Handler) { h.GameResumed(e) }

// GameReset names the player who reset the game.
type GameReset struct {
	Player core.Player `json:"player"`
}

func (GameReset) Kind() string      { return KindGameReset }
func (e GameReset) Visit(h Handler) { h.GameReset(e) }

// TurnPassed names the player who passed.
type TurnPassed struct {
	Player core.Player `json:"player"`
}

func (TurnPassed) Kind() string      { return KindTurnPassed }
func (e TurnPassed) Visit(h Handler) { h.TurnPassed(e) }

// RoundWon names the winner of the current round.
type RoundWon struct {
	Player core.Player `json:"player"`
}

func (RoundWon) Kind() string      { return KindRoundWon }
func (e RoundWon) Visit(h Handler) { h.RoundWon(e) }

// TurnPlayed carries the cards a player put down.
type TurnPlayed struct {
	Player core.Player `json:"player"`
	Cards  []core.Card `json:"cards"`
}

func (TurnPlayed) Kind() string      { return KindTurnPlayed }
func (e TurnPlayed) Visit(h Handler) { h.TurnPlayed(e) }

// NameChanged reports a rename.
type NameChanged struct {
	OldPlayer core.Player `json:"oldPlayer"`
	NewPlayer core.Player `json:"newPlayer"`
}

func (NameChanged) Kind() string      { return KindNameChanged }
func (e NameChanged) Visit(h Handler) { h.NameChanged(e) }

// PlayerPlaced reports a player running out of cards.
type PlayerPlaced struct {
	Player core.Player `json:"player"`
	Place  int         `json:"place"`
}

func (PlayerPlaced) Kind() string      { return KindPlayerPlaced }
func (e PlayerPlaced) Visit(h Handler) { h.PlayerPlaced(e) }

// GameWon names the winner of the game.
type GameWon struct {
	Player core.Player `json:"player"`
}

func (GameWon) Kind() string      { return KindGameWon }
func (e GameWon) Visit(h Handler) { h.GameWon(e) }

// GameStateRefresh is the authoritative table state as seen by this player.
type GameStateRefresh struct {
	Opponents  []core.Player  `json:"opponents"`
	Self       *core.Player   `json:"self"`
	SelfHand   []core.Card    `json:"selfHand"`
	GameState  core.GamePhase `json:"gameState"`
	LastPlayed []core.Card    `json:"lastPlayed"`
	FirstRound bool           `json:"firstRound"`
	NewRound   bool           `json:"newRound"`
	WinPlaces  []core.Player  `json:"winPlaces"`
}

func (GameStateRefresh) Kind() string      { return KindGameStateRefresh }
func (e GameStateRefresh) Visit(h Handler) { h.GameStateRefresh(e) }

// Error is a server-side rejection of a request.
type Error struct {
	ErrorKind errpolicy.Kind `json:"kind"`
}

func (Error) Kind() string      { return KindError }
func (e Error) Visit(h Handler) { h.Error(e) }

// Unrecognized carries a kind this client does not know.
type Unrecognized struct {
	EventKind string
	Data      []byte
}

func (e Unrecognized) Kind() string    { return e.EventKind }
func (e Unrecognized) Visit(h Handler) { h.Unrecognized(e) }
