// Package tui provides the Bubble Tea interface for the card table, the
// results history screen and SSH hosting via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashMsg toggles the window title while the flasher of the same generation runs.
type flashMsg struct {
	gen int
}

// toastExpiredMsg hides the toast with the given id.
type toastExpiredMsg struct {
	id int
}

func flashTick(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return flashMsg{gen: gen}
	})
}

func toastTick(d time.Duration, id int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
