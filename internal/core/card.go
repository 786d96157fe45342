package core

import (
	"sort"
	"strconv"
)

// Suit of a playing card. The numeric values are the wire values.
type Suit int

const (
	Spades   Suit = 1
	Clubs    Suit = 2
	Diamonds Suit = 3
	Hearts   Suit = 4
)

// Symbol returns the suit glyph used when rendering cards.
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	default:
		return "?"
	}
}

// IsRed reports whether the suit is drawn in red.
func (s Suit) IsRed() bool {
	return s == Diamonds || s == Hearts
}

// Card is an immutable playing card as described by the server.
//
// GlobalRank orders the whole deck (52 = 3♠ lowest, 1 = 2♥ highest) and is
// the only card identity the server accepts in requests.
type Card struct {
	Suit       Suit `json:"suit"`
	FaceValue  int  `json:"faceValue"`  // 1 = Ace, 11..13 = J, Q, K
	SuitRank   int  `json:"suitRank"`   // 13 = "3" (lowest), 1 = "2" (highest)
	GlobalRank int  `json:"globalRank"` // 1..52, unique within a deck
}

// Face returns the face label without the suit ("A", "10", "K").
func (c Card) Face() string {
	switch c.FaceValue {
	case 1:
		return "A"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	default:
		return strconv.Itoa(c.FaceValue)
	}
}

// String renders the card glyph, e.g. "♣3" or "♥A".
func (c Card) String() string {
	return c.Suit.Symbol() + c.Face()
}

// SortByGlobalRankDesc returns a copy of cards ordered by GlobalRank, highest first.
func SortByGlobalRankDesc(cards []Card) []Card {
	sorted := append([]Card(nil), cards...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GlobalRank > sorted[j].GlobalRank
	})
	return sorted
}

// GlobalRanks returns the wire identifiers of cards, preserving order.
func GlobalRanks(cards []Card) []int {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = c.GlobalRank
	}
	return ranks
}

// byRank is the deck indexed by global rank.
var byRank = func() map[int]Card {
	m := make(map[int]Card, 52)
	for _, c := range Deck() {
		m[c.GlobalRank] = c
	}
	return m
}()

// Valid reports whether c is one of the 52 deck cards, with every field
// matching the card of its global rank.
func (c Card) Valid() bool {
	d, ok := byRank[c.GlobalRank]
	return ok && d == c
}

// Deck returns the 52 cards in server order, from 3♠ (global rank 52) to 2♥ (1).
func Deck() []Card {
	faces := []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 1, 2}
	suits := []Suit{Spades, Clubs, Diamonds, Hearts}

	deck := make([]Card, 0, len(faces)*len(suits))
	globalRank := len(faces) * len(suits)
	for i, face := range faces {
		for _, suit := range suits {
			deck = append(deck, Card{
				Suit:       suit,
				FaceValue:  face,
				SuitRank:   len(faces) - i,
				GlobalRank: globalRank,
			})
			globalRank--
		}
	}
	return deck
}
