// Package eventlog keeps the ordered, append-only activity log shown to the
// player. Entries are made of runes, each either text or a card, so the
// renderer can draw cards as glyphs.
package eventlog

import (
	"strings"
	"time"

	"github.com/vovakirdan/thirteen/internal/core"
)

// Severity controls how an entry is styled.
type Severity int

const (
	Info Severity = iota
	Warning
	Success
	Error
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Rune is one piece of an entry: either a run of text or a single card.
type Rune struct {
	text   string
	card   core.Card
	isCard bool
}

// Text makes a text rune.
func Text(s string) Rune {
	return Rune{text: s}
}

// CardRune makes a card rune.
func CardRune(c core.Card) Rune {
	return Rune{card: c, isCard: true}
}

// IsCard reports whether the rune holds a card.
func (r Rune) IsCard() bool { return r.isCard }

// Card returns the card of a card rune; zero for text runes.
func (r Rune) Card() core.Card { return r.card }

// Text returns the text of a text rune; empty for card runes.
func (r Rune) Text() string { return r.text }

// Entry is one immutable line of the log.
type Entry struct {
	Severity  Severity
	Runes     []Rune
	Timestamp time.Time
	// Interrupt asks the renderer to draw the user's attention.
	Interrupt bool
}

// String flattens the runes to plain text. Consecutive cards are separated by a space.
func (e Entry) String() string {
	var b strings.Builder
	prevCard := false
	for _, r := range e.Runes {
		if r.isCard {
			if prevCard {
				b.WriteByte(' ')
			}
			b.WriteString(r.card.String())
		} else {
			b.WriteString(r.text)
		}
		prevCard = r.isCard
	}
	return b.String()
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// Log is the ordered list of entries. It is not safe for concurrent use;
// the owner mutates it from a single goroutine.
type Log struct {
	entries    []Entry
	generation int
	now        func() time.Time
}

// New returns an empty log.
func New(opts ...Option) *Log {
	l := &Log{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append adds an entry stamped with the current time. interrupt defaults to false.
func (l *Log) Append(sev Severity, runes []Rune, interrupt ...bool) {
	e := Entry{
		Severity:  sev,
		Runes:     append([]Rune(nil), runes...),
		Timestamp: l.now(),
	}
	if len(interrupt) > 0 {
		e.Interrupt = interrupt[0]
	}
	l.entries = append(l.entries, e)
}

// Clear removes all entries and bumps the generation.
func (l *Log) Clear() {
	l.entries = nil
	l.generation++
}

// Generation changes every time the log is cleared.
func (l *Log) Generation() int { return l.generation }

// Len returns the number of entries.
func (l *Log) Len() int { return len(l.entries) }

// Entries returns a copy of all entries, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Since returns the entries appended after the first n, oldest first.
func (l *Log) Since(n int) []Entry {
	if n < 0 {
		n = 0
	}
	if n >= len(l.entries) {
		return nil
	}
	out := make([]Entry, len(l.entries)-n)
	copy(out, l.entries[n:])
	return out
}

// Last returns the newest entry.
func (l *Log) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}
