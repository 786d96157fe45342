package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/thirteen/internal/core"
	"github.com/vovakirdan/thirteen/internal/eventlog"
	"github.com/vovakirdan/thirteen/internal/state"
)

// View renders the table.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.prompting {
		return m.viewPrompt()
	}

	snap := m.sess.Reducer().Snapshot()

	var b strings.Builder
	b.WriteString(m.viewHeader(snap))
	b.WriteString("\n\n")
	b.WriteString(m.viewOpponents(snap))
	b.WriteString("\n")
	b.WriteString(m.viewPile(snap))
	b.WriteString("\n")
	b.WriteString(m.viewHand(snap))
	b.WriteString("\n")
	b.WriteString(m.theme.Panel.Width(m.logView.Width + 2).Render(m.logView.View()))
	b.WriteString("\n")

	if m.toast != "" {
		b.WriteString(m.theme.Toast.Render(m.toast))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.theme.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) viewPrompt() string {
	var b strings.Builder
	title := "Join a table"
	if m.renaming {
		title = "Change your name"
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.prompt.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.Dim.Render("enter: confirm  esc: cancel  ctrl+c: quit"))
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Status.Render(m.status))
	}

	box := m.theme.Prompt.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) viewHeader(snap state.GameSnapshot) string {
	title := m.theme.Title.Render(m.opts.UI.Title)

	parts := []string{
		m.theme.Label.Render("connection ") + m.theme.Value.Render(snap.Phase.String()),
		m.theme.Label.Render("game ") + m.theme.Value.Render(snap.GamePhase.String()),
	}
	if snap.Name != "" {
		parts = append(parts, m.theme.Label.Render("you ")+m.theme.Value.Render(snap.Name))
	}
	if total := core.TotalScore(snap.Self, snap.Opponents); total > 0 {
		parts = append(parts, m.theme.Label.Render("games ")+m.theme.Value.Render(fmt.Sprint(total)))
	}
	return title + "  " + strings.Join(parts, m.theme.Dim.Render(" | "))
}

func (m Model) viewOpponents(snap state.GameSnapshot) string {
	if len(snap.Opponents) == 0 {
		return m.theme.Dim.Render("Waiting for other players...")
	}
	boxes := make([]string, 0, len(snap.Opponents))
	for _, p := range snap.Opponents {
		boxes = append(boxes, m.viewSeat(p, snap))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) viewSeat(p core.Player, snap state.GameSnapshot) string {
	lines := []string{m.theme.Value.Render(p.Name)}

	if snap.IsInLobby() {
		lines = append(lines, m.theme.Label.Render(fmt.Sprintf("wins %d", p.Score)))
	} else {
		lines = append(lines, m.theme.Label.Render(fmt.Sprintf("%d cards", p.CardsLeft)))
	}
	lines = append(lines, m.theme.Dim.Render(seatStatus(p, snap)))

	style := m.theme.Panel
	if p.IsTurn && snap.IsInProgress() {
		style = m.theme.Active
	}
	return style.Width(16).Render(strings.Join(lines, "\n"))
}

// seatStatus is the one-word state line under a player's name.
func seatStatus(p core.Player, snap state.GameSnapshot) string {
	for i, w := range snap.WinPlaces {
		if w.Name == p.Name {
			return core.Ordinal(i + 1)
		}
	}
	switch {
	case !p.Connected:
		return "away"
	case snap.IsInLobby() && p.WonLastGame:
		return "last winner"
	case snap.IsInLobby():
		return "ready"
	case p.IsTurn:
		return "playing"
	case p.IsPassed:
		return "passed"
	}
	return ""
}

func (m Model) viewPile(snap state.GameSnapshot) string {
	label := m.theme.Label.Render("Table: ")
	switch {
	case snap.IsPaused():
		return label + m.theme.Warning.Render("paused, waiting for a player to return")
	case snap.IsInLobby():
		return label + m.theme.Dim.Render("press s to start a game")
	case len(snap.LastPlayed) == 0 && snap.FirstRound:
		return label + m.theme.Dim.Render("lowest card leads")
	case len(snap.LastPlayed) == 0 || snap.NewRound:
		return label + m.theme.Dim.Render("new round, play anything")
	}
	return label + m.renderCards(snap.LastPlayed)
}

func (m Model) viewHand(snap state.GameSnapshot) string {
	var b strings.Builder

	b.WriteString(m.theme.Label.Render("Your hand"))
	if snap.Self != nil {
		b.WriteString(m.theme.Dim.Render(" (" + seatStatus(*snap.Self, snap) + ")"))
		if snap.Self.IsTurn && snap.IsInProgress() {
			b.WriteString(" " + m.theme.Selected.Render("your turn"))
		}
	}
	b.WriteString("\n")

	if len(snap.SelfHand) == 0 {
		b.WriteString(m.theme.Dim.Render("no cards"))
		return b.String()
	}

	cards := make([]string, 0, len(snap.SelfHand))
	for i, c := range snap.SelfHand {
		style := m.cardStyle(c)
		if m.selected[c.GlobalRank] {
			style = m.theme.CardSelected.Inherit(style)
		}
		if i == m.cursor {
			style = m.theme.CardCursor.Inherit(style)
		}
		cards = append(cards, style.Render(" "+c.String()+" "))
	}
	b.WriteString(strings.Join(cards, " "))
	return b.String()
}

func (m Model) cardStyle(c core.Card) lipgloss.Style {
	if c.Suit.IsRed() {
		return m.theme.RedCard
	}
	return m.theme.BlackCard
}

func (m Model) renderCards(cards []core.Card) string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, m.cardStyle(c).Render(" "+c.String()+" "))
	}
	return strings.Join(out, " ")
}

// renderLog draws every entry on its own line, oldest first.
func (m Model) renderLog(entries []eventlog.Entry) string {
	if len(entries) == 0 {
		return m.theme.Dim.Render("Nothing has happened yet.")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, m.renderEntry(e))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(e eventlog.Entry) string {
	style := m.theme.Severity(e.Severity)

	var b strings.Builder
	b.WriteString(m.theme.Time.Render(e.Timestamp.Format("15:04:05")))
	b.WriteByte(' ')

	prevCard := false
	for _, r := range e.Runes {
		if r.IsCard() {
			if prevCard {
				b.WriteByte(' ')
			}
			b.WriteString(m.cardStyle(r.Card()).Render(r.Card().String()))
		} else {
			b.WriteString(style.Render(r.Text()))
		}
		prevCard = r.IsCard()
	}
	return b.String()
}
