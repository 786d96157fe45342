package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Flasher alternates the terminal window title to get the player's
// attention. It runs between Start and Stop; Stop always restores the
// regular title. Every Start/Stop bumps the generation so ticks scheduled
// by an earlier run are ignored.
type Flasher struct {
	title    string
	alert    string
	interval time.Duration

	gen     int
	running bool
	showing bool // alert title currently displayed
}

// NewFlasher creates a stopped flasher.
func NewFlasher(title, alert string, interval time.Duration) *Flasher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Flasher{title: title, alert: alert, interval: interval}
}

// Running reports whether the flasher is active.
func (f *Flasher) Running() bool {
	return f.running
}

// Start begins flashing. Starting a running flasher is a no-op.
func (f *Flasher) Start() tea.Cmd {
	if f.running {
		return nil
	}
	f.gen++
	f.running = true
	f.showing = true
	return tea.Batch(tea.SetWindowTitle(f.alert), flashTick(f.interval, f.gen))
}

// Stop ends flashing and restores the regular title.
func (f *Flasher) Stop() tea.Cmd {
	f.gen++
	f.running = false
	f.showing = false
	return tea.SetWindowTitle(f.title)
}

// Title returns the title that should currently be shown.
func (f *Flasher) Title() string {
	if f.showing {
		return f.alert
	}
	return f.title
}

// handle advances a running flasher by one tick.
func (f *Flasher) handle(msg flashMsg) tea.Cmd {
	if !f.running || msg.gen != f.gen {
		return nil
	}
	f.showing = !f.showing
	return tea.Batch(tea.SetWindowTitle(f.Title()), flashTick(f.interval, f.gen))
}
