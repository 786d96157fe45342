package session

import (
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/vovakirdan/thirteen/internal/protocol"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// frame mirrors the wire envelope as the server writes it.
type frame struct {
	Kind string `json:"kind"`
	Data []byte `json:"data"`
}

func rawFrame(t *testing.T, kind string, data []byte) []byte {
	t.Helper()
	b, err := json.Marshal(frame{Kind: kind, Data: data})
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return b
}

func eventFrame(t *testing.T, e protocol.Event) []byte {
	t.Helper()
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal %s: %v", e.Kind(), err)
	}
	return rawFrame(t, e.Kind(), data)
}

// joinRequest parses a client frame that must be a join request.
func joinRequest(b []byte) (protocol.JoinGame, bool) {
	var f frame
	var jg protocol.JoinGame
	if err := json.Unmarshal(b, &f); err != nil || f.Kind != protocol.KindJoinGame {
		return jg, false
	}
	if err := json.Unmarshal(f.Data, &jg); err != nil {
		return jg, false
	}
	return jg, true
}
