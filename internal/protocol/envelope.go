// Package protocol implements the game server's wire format: a JSON envelope
// {kind, data} whose data field is the base64 encoding of a kind-specific
// JSON payload.
package protocol

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformed is returned for frames that cannot be decoded.
var ErrMalformed = errors.New("protocol: malformed message")

// Subprotocol is the websocket subprotocol the server speaks.
const Subprotocol = "json"

// envelope is the outer frame. Data is marshalled as standard base64.
type envelope struct {
	Kind string `json:"kind"`
	Data []byte `json:"data"`
}

func malformed(kind, what string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %s: %v", ErrMalformed, kind, what, err)
	}
	return fmt.Errorf("%w: %s: %s", ErrMalformed, kind, what)
}
