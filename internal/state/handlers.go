package state

import (
	"github.com/vovakirdan/thirteen/internal/core"
	"github.com/vovakirdan/thirteen/internal/errpolicy"
	"github.com/vovakirdan/thirteen/internal/eventlog"
	"github.com/vovakirdan/thirteen/internal/protocol"
)

// The methods below implement protocol.Handler, one per server event.

// PlayerJoined logs the arrival and confirms a pending join.
func (r *Reducer) PlayerJoined(e protocol.PlayerJoined) {
	r.say(eventlog.Info, "%s has joined the game.", quote(e.Player.Name))
	// The roster itself arrives with the next state refresh.
	r.transition(eventConfirm)
}

// PlayerDisconnected logs a departure, as an error once a game is under way.
func (r *Reducer) PlayerDisconnected(e protocol.PlayerDisconnected) {
	sev := eventlog.Error
	if r.snap.IsInLobby() {
		sev = eventlog.Info
	}
	r.say(sev, "%s has left the game.", quote(e.Player.Name))
}

// GameStarted clears the previous game's log and announces the start.
func (r *Reducer) GameStarted(e protocol.GameStarted) {
	if !r.snap.IsFirstGame() {
		r.log.Clear()
	}
	r.say(eventlog.Info, "%s has started the game.", quote(e.Player.Name))
}

// GamePaused logs that the game waits for reconnects.
func (r *Reducer) GamePaused(protocol.GamePaused) {
	r.say(eventlog.Warning, "Game is paused and will resume when all players re-connect.")
}

// GameResumed logs that play continues.
func (r *Reducer) GameResumed(protocol.GameResumed) {
	r.say(eventlog.Info, "All players have re-connected, game has resumed.")
}

// GameReset logs who sent the table back to the lobby.
func (r *Reducer) GameReset(e protocol.GameReset) {
	r.say(eventlog.Warning, "%s has reset the game.", quote(e.Player.Name))
}

// TurnPassed logs a pass.
func (r *Reducer) TurnPassed(e protocol.TurnPassed) {
	r.say(eventlog.Info, "%s has passed their turn.", quote(e.Player.Name))
}

// RoundWon logs the winner of a trick.
func (r *Reducer) RoundWon(e protocol.RoundWon) {
	r.say(eventlog.Success, "%s has won the round.", quote(e.Player.Name))
}

// TurnPlayed logs the played cards, highest first.
func (r *Reducer) TurnPlayed(e protocol.TurnPlayed) {
	cards := core.SortByGlobalRankDesc(e.Cards)
	runes := make([]eventlog.Rune, 0, len(cards)+1)
	runes = append(runes, eventlog.Text(quote(e.Player.Name)+" played "))
	for _, c := range cards {
		runes = append(runes, eventlog.CardRune(c))
	}
	r.log.Append(eventlog.Info, runes)
}

// NameChanged logs a rename and follows it when it is the local player.
func (r *Reducer) NameChanged(e protocol.NameChanged) {
	old := e.OldPlayer.Name
	if old == r.snap.Name || (r.snap.Self != nil && r.snap.Self.Name == old) {
		r.snap.Name = e.NewPlayer.Name
	}
	r.say(eventlog.Info, "%s is now known as %s.", quote(old), quote(e.NewPlayer.Name))
}

// PlayerPlaced logs a player going out and their place.
func (r *Reducer) PlayerPlaced(e protocol.PlayerPlaced) {
	r.say(eventlog.Success, "%s has no more cards and placed %s.", quote(e.Player.Name), core.Ordinal(e.Place))
}

// GameWon logs the winner of the game.
func (r *Reducer) GameWon(e protocol.GameWon) {
	r.say(eventlog.Success, "%s has won the game.", quote(e.Player.Name))
}

// GameStateRefresh replaces the table snapshot. The connection phase and
// the local name survive unless the refresh names the local player.
func (r *Reducer) GameStateRefresh(e protocol.GameStateRefresh) {
	next := GameSnapshot{
		Phase:      r.snap.Phase,
		Name:       r.snap.Name,
		Opponents:  append([]core.Player{}, e.Opponents...),
		SelfHand:   append([]core.Card{}, e.SelfHand...),
		GamePhase:  e.GameState,
		LastPlayed: append([]core.Card{}, e.LastPlayed...),
		FirstRound: e.FirstRound,
		NewRound:   e.NewRound,
		WinPlaces:  append([]core.Player{}, e.WinPlaces...),
	}
	if e.Self != nil {
		self := *e.Self
		next.Self = &self
		next.Name = self.Name
	}
	r.snap = next
}

// Error logs the message for a server rejection, if the kind is known.
func (r *Reducer) Error(e protocol.Error) {
	msg, interrupt := errpolicy.Resolve(e.ErrorKind, r.snap.Phase)
	if msg == "" {
		return
	}
	r.log.Append(eventlog.Error, []eventlog.Rune{eventlog.Text(msg)}, interrupt)
}

// Unrecognized ignores events this client does not know.
func (r *Reducer) Unrecognized(e protocol.Unrecognized) {
	r.logger.Debug("dropped unrecognized event", "kind", e.EventKind)
}

func quote(name string) string {
	return `"` + name + `"`
}
