// Package core holds the value types shared by every layer of the client:
// cards, players and the connection/game phase enums.
package core

// ConnectionPhase describes where the local client is in its connection lifecycle.
type ConnectionPhase int

const (
	NotConnected ConnectionPhase = iota
	Connecting
	Connected
)

// String returns a stable lowercase name, also used as the phase machine state.
func (p ConnectionPhase) String() string {
	switch p {
	case NotConnected:
		return "not-connected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// ParseConnectionPhase is the inverse of ConnectionPhase.String.
func ParseConnectionPhase(s string) (ConnectionPhase, bool) {
	switch s {
	case "not-connected":
		return NotConnected, true
	case "connecting":
		return Connecting, true
	case "connected":
		return Connected, true
	}
	return NotConnected, false
}

// GamePhase is the table state reported by the server.
// The numeric values are the wire values.
type GamePhase int

const (
	InLobby GamePhase = 1
	Running GamePhase = 2
	Paused  GamePhase = 3
)

// Valid reports whether p is one of the known wire values.
func (p GamePhase) Valid() bool {
	return p >= InLobby && p <= Paused
}

// String returns a human-readable name for the game phase.
func (p GamePhase) String() string {
	switch p {
	case InLobby:
		return "In lobby"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}
