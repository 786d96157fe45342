package eventlog

import (
	"testing"
	"time"

	"github.com/vovakirdan/thirteen/internal/core"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func TestAppendDefaults(t *testing.T) {
	l := New(WithClock(fixedClock()))

	l.Append(Info, []Rune{Text("hello")})
	l.Append(Error, []Rune{Text("bye")}, true)

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Interrupt {
		t.Error("first entry should not interrupt by default")
	}
	if !entries[1].Interrupt {
		t.Error("second entry should interrupt")
	}
	if !entries[0].Timestamp.Before(entries[1].Timestamp) {
		t.Error("timestamps not increasing")
	}
	if entries[1].Severity != Error {
		t.Errorf("severity = %v, want error", entries[1].Severity)
	}
}

func TestClearBumpsGeneration(t *testing.T) {
	l := New()
	l.Append(Info, []Rune{Text("a")})

	gen := l.Generation()
	l.Clear()

	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", l.Len())
	}
	if l.Generation() != gen+1 {
		t.Errorf("Generation() = %d, want %d", l.Generation(), gen+1)
	}
	if _, ok := l.Last(); ok {
		t.Error("Last() reported an entry on an empty log")
	}
}

func TestEntriesIsCopy(t *testing.T) {
	l := New()
	runes := []Rune{Text("x")}
	l.Append(Info, runes)
	runes[0] = Text("mutated")

	entries := l.Entries()
	entries[0].Severity = Error

	got, _ := l.Last()
	if got.Severity != Info || got.String() != "x" {
		t.Errorf("stored entry changed: %+v", got)
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{Runes: []Rune{
		Text(`"alice" played `),
		CardRune(core.Card{Suit: core.Spades, FaceValue: 2}),
		CardRune(core.Card{Suit: core.Hearts, FaceValue: 2}),
		Text("!"),
	}}

	if got, want := e.String(), `"alice" played ♠2 ♥2!`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSince(t *testing.T) {
	l := New()
	for _, s := range []string{"a", "b", "c"} {
		l.Append(Info, []Rune{Text(s)})
	}

	got := l.Since(1)
	if len(got) != 2 || got[0].String() != "b" || got[1].String() != "c" {
		t.Errorf("Since(1) = %v", got)
	}
	if l.Since(3) != nil {
		t.Error("Since(Len()) should be empty")
	}
}
