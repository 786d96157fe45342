package state

import (
	"github.com/vovakirdan/thirteen/internal/core"
	"github.com/vovakirdan/thirteen/internal/protocol"
)

// Intents build the requests for player actions. The reducer never sends
// them; the transport does.

// JoinIntent asks to sit at the table under name.
func (r *Reducer) JoinIntent(name string) protocol.Request {
	return protocol.JoinGame{PlayerName: name}
}

// StartGameIntent asks to deal a new game.
func (r *Reducer) StartGameIntent() protocol.Request {
	return protocol.StartGame{}
}

// PassTurnIntent passes the current turn.
func (r *Reducer) PassTurnIntent() protocol.Request {
	return protocol.TurnPass{}
}

// PlayCardsIntent references cards by global rank, in the given order.
func (r *Reducer) PlayCardsIntent(cards []core.Card) protocol.Request {
	return protocol.NewTurnPlay(cards)
}

// ChangeNameIntent renames the local player.
func (r *Reducer) ChangeNameIntent(name string) protocol.Request {
	return protocol.ChangeName{Name: name}
}

// ResetGameIntent returns the table to the lobby.
func (r *Reducer) ResetGameIntent() protocol.Request {
	return protocol.ResetGame{}
}
