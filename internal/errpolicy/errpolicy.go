// Package errpolicy maps the server's error kinds to the message shown to
// the player and whether the entry should interrupt them.
package errpolicy

import "github.com/vovakirdan/thirteen/internal/core"

// Kind is a server error kind. The numeric values are the wire values.
type Kind int

const (
	LobbyNotReady Kind = iota + 1
	NotAuthorised
	OutOfTurn
	MustPlay
	InvalidCards
	InvalidPattern
	CardsNotBetter
	MustPlayLowest
	NameTaken
	GameFull
	InvalidName

	kindEnd
)

const numKinds = int(kindEnd) - 1

// Valid reports whether k is part of the closed set.
func (k Kind) Valid() bool {
	return k >= LobbyNotReady && k < kindEnd
}

type interruptMode int

const (
	never interruptMode = iota
	always
	whileNotConnected
)

// Interrupt decides whether an error entry interrupts the player.
type Interrupt struct {
	mode interruptMode
}

// Always interrupts regardless of connection phase.
func Always() Interrupt { return Interrupt{mode: always} }

// Never interrupts.
func Never() Interrupt { return Interrupt{mode: never} }

// WhileNotConnected interrupts only if the client is not connected when the
// error is handled.
func WhileNotConnected() Interrupt { return Interrupt{mode: whileNotConnected} }

// Resolve evaluates the flag for the given connection phase.
func (i Interrupt) Resolve(phase core.ConnectionPhase) bool {
	switch i.mode {
	case always:
		return true
	case whileNotConnected:
		return phase == core.NotConnected
	default:
		return false
	}
}

// Policy is one row of the table.
type Policy struct {
	Kind      Kind
	Message   string
	Interrupt Interrupt
}

// table is indexed by Kind-1.
var table = [...]Policy{
	{LobbyNotReady, "Game is not yet ready to start.", Never()},
	{NotAuthorised, "You cannot perform that action now.", Never()},
	{OutOfTurn, "It is not your turn.", Never()},
	{MustPlay, "You must play one or more cards.", Never()},
	{InvalidCards, "Unrecognised cards, did you select any?", Never()},
	{InvalidPattern, "Cards cannot be played.", Never()},
	{CardsNotBetter, "Cards do not beat the last played hand.", Never()},
	{MustPlayLowest, "You must play your lowest card.", Never()},
	{NameTaken, "That name is already taken.", Always()},
	{GameFull, "The game is full.", Always()},
	{InvalidName, "That name is not valid.", WhileNotConnected()},
}

// Every kind has exactly one row.
var (
	_ [numKinds - len(table)]struct{}
	_ [len(table) - numKinds]struct{}
)

// Lookup returns the policy for k. ok is false for values outside the closed set.
func Lookup(k Kind) (p Policy, ok bool) {
	if !k.Valid() {
		return Policy{}, false
	}
	return table[k-1], true
}

// Resolve returns the message and interrupt flag for k in the given phase.
// Unknown kinds produce an empty message and no interrupt.
func Resolve(k Kind, phase core.ConnectionPhase) (message string, interrupt bool) {
	p, ok := Lookup(k)
	if !ok {
		return "", false
	}
	return p.Message, p.Interrupt.Resolve(phase)
}
