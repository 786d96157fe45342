package protocol

// encodeEvent builds the envelope for a server event, the inverse of Decode.
func encodeEvent(e Event) ([]byte, error) {
	if u, ok := e.(Unrecognized); ok {
		return json.Marshal(envelope{Kind: u.EventKind, Data: u.Data})
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: e.Kind(), Data: data})
}

// decodeRequest parses a client frame, the inverse of Encode.
func decodeRequest(frame []byte) (Request, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, malformed("", "envelope", err)
	}

	var r Request
	switch env.Kind {
	case KindJoinGame:
		var v JoinGame
		if err := unmarshalData(env, &v); err != nil {
			return nil, err
		}
		r = v
	case KindStartGame:
		r = StartGame{}
	case KindTurnPass:
		r = TurnPass{}
	case KindTurnPlay:
		var v TurnPlay
		if err := unmarshalData(env, &v); err != nil {
			return nil, err
		}
		r = v
	case KindChangeName:
		var v ChangeName
		if err := unmarshalData(env, &v); err != nil {
			return nil, err
		}
		r = v
	case KindResetGame:
		r = ResetGame{}
	default:
		return nil, malformed(env.Kind, "unknown request kind", nil)
	}
	return r, nil
}
