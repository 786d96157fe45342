package state

import "github.com/vovakirdan/thirteen/internal/core"

// GameSnapshot is the local mirror of the remote table.
type GameSnapshot struct {
	Phase      core.ConnectionPhase
	Name       string
	Opponents  []core.Player // table order
	Self       *core.Player  // nil until the first refresh after joining
	SelfHand   []core.Card
	GamePhase  core.GamePhase
	LastPlayed []core.Card
	FirstRound bool
	NewRound   bool
	WinPlaces  []core.Player // finishing order
}

// emptySnapshot is the state after construction and after every disconnect.
func emptySnapshot(name string) GameSnapshot {
	return GameSnapshot{
		Phase:      core.NotConnected,
		Name:       name,
		Opponents:  []core.Player{},
		SelfHand:   []core.Card{},
		GamePhase:  core.InLobby,
		LastPlayed: []core.Card{},
		FirstRound: true,
		NewRound:   true,
		WinPlaces:  []core.Player{},
	}
}

// clone returns a deep copy so callers cannot reach the reducer's slices.
func (s GameSnapshot) clone() GameSnapshot {
	out := s
	out.Opponents = append([]core.Player{}, s.Opponents...)
	out.SelfHand = append([]core.Card{}, s.SelfHand...)
	out.LastPlayed = append([]core.Card{}, s.LastPlayed...)
	out.WinPlaces = append([]core.Player{}, s.WinPlaces...)
	if s.Self != nil {
		self := *s.Self
		out.Self = &self
	}
	return out
}

// IsInLobby reports whether the table is waiting for a game to start.
func (s GameSnapshot) IsInLobby() bool { return s.GamePhase == core.InLobby }

// IsInProgress reports whether a game is running or paused.
func (s GameSnapshot) IsInProgress() bool { return s.GamePhase != core.InLobby }

// IsPaused reports whether the running game is waiting for players to return.
func (s GameSnapshot) IsPaused() bool { return s.GamePhase == core.Paused }

// IsFirstGame reports whether nobody at the table has scored yet.
func (s GameSnapshot) IsFirstGame() bool {
	return core.TotalScore(s.Self, s.Opponents) == 0
}
