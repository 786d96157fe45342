package protocol

import (
	"bytes"

	"github.com/vovakirdan/thirteen/internal/core"
)

// Decode parses one frame. Unknown kinds decode to Unrecognized; anything
// that cannot be parsed, lacks its payload, names no player, or carries an
// out-of-range value returns an error wrapping ErrMalformed.
func Decode(frame []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, malformed("", "envelope", err)
	}
	if env.Kind == "" {
		return nil, malformed("", "missing kind", nil)
	}

	var (
		e   Event
		err error
	)
	switch env.Kind {
	case KindPlayerJoined:
		e, err = decodeAs[PlayerJoined](env)
	case KindPlayerDisconnected:
		e, err = decodeAs[PlayerDisconnected](env)
	case KindGameStarted:
		e, err = decodeAs[GameStarted](env)
	case KindGamePaused:
		e, err = decodeOptional[GamePaused](env)
	case KindGameResumed:
		e, err = decodeOptional[GameResumed](env)
	case KindGameReset:
		e, err = decodeAs[GameReset](env)
	case KindTurnPassed:
		e, err = decodeAs[TurnPassed](env)
	case KindRoundWon:
		e, err = decodeAs[RoundWon](env)
	case KindTurnPlayed:
		e, err = decodeAs[TurnPlayed](env)
	case KindNameChanged:
		e, err = decodeAs[NameChanged](env)
	case KindPlayerPlaced:
		e, err = decodeAs[PlayerPlaced](env)
	case KindGameWon:
		e, err = decodeAs[GameWon](env)
	case KindGameStateRefresh:
		e, err = decodeAs[GameStateRefresh](env)
	case KindError:
		e, err = decodeAs[Error](env)
	default:
		return Unrecognized{EventKind: env.Kind, Data: env.Data}, nil
	}
	if err != nil {
		return nil, err
	}
	if what := invalid(e); what != "" {
		return nil, malformed(env.Kind, what, nil)
	}
	return e, nil
}

// decodeAs unmarshals a payload that must be present.
func decodeAs[T Event](env envelope) (T, error) {
	var e T
	if noPayload(env.Data) {
		return e, malformed(env.Kind, "missing payload", nil)
	}
	err := unmarshalData(env, &e)
	return e, err
}

// decodeOptional unmarshals a payload that may be absent.
func decodeOptional[T Event](env envelope) (T, error) {
	var e T
	if noPayload(env.Data) {
		return e, nil
	}
	err := unmarshalData(env, &e)
	return e, err
}

func noPayload(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}

// invalid describes why a decoded event cannot be applied, or returns "".
func invalid(e Event) string {
	switch e := e.(type) {
	case PlayerJoined:
		return unnamed(e.Player)
	case PlayerDisconnected:
		return unnamed(e.Player)
	case GameStarted:
		return unnamed(e.Player)
	case GameReset:
		return unnamed(e.Player)
	case TurnPassed:
		return unnamed(e.Player)
	case RoundWon:
		return unnamed(e.Player)
	case GameWon:
		return unnamed(e.Player)
	case TurnPlayed:
		if what := unnamed(e.Player); what != "" {
			return what
		}
		if len(e.Cards) == 0 {
			return "no cards played"
		}
		return badCards(e.Cards)
	case NameChanged:
		if e.OldPlayer.Name == "" || e.NewPlayer.Name == "" {
			return "missing player name"
		}
	case PlayerPlaced:
		if what := unnamed(e.Player); what != "" {
			return what
		}
		if e.Place < 1 {
			return "place out of range"
		}
	case GameStateRefresh:
		if !e.GameState.Valid() {
			return "game state out of range"
		}
		if what := badCards(e.SelfHand); what != "" {
			return what
		}
		return badCards(e.LastPlayed)
	case Error:
		if !e.ErrorKind.Valid() {
			return "error kind out of range"
		}
	}
	return ""
}

func unnamed(p core.Player) string {
	if p.Name == "" {
		return "missing player name"
	}
	return ""
}

func badCards(cards []core.Card) string {
	for _, c := range cards {
		if !c.Valid() {
			return "unknown card"
		}
	}
	return ""
}
