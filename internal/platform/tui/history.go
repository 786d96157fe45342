package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/thirteen/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the tab sidebar
	sidebarWidth       = 20
	maxResults         = 100
	maxWinners         = 20
)

// HistoryStore is what the history screen reads from.
type HistoryStore interface {
	RecentResults(limit int) ([]storage.GameResult, error)
	WinCounts(limit int) ([]storage.WinCount, error)
}

// historyTab selects which table is shown.
type historyTab int

const (
	tabRecent historyTab = iota
	tabWins
	numTabs
)

func (t historyTab) title() string {
	if t == tabWins {
		return "Most wins"
	}
	return "Recent games"
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Reload, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the recorded game history.
type HistoryModel struct {
	store       HistoryStore
	tab         historyTab
	results     []storage.GameResult
	wins        []storage.WinCount
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a new history model and loads the first view.
func NewHistoryModel(store HistoryStore, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

// createTable creates a table with the columns of the current tab.
func (m *HistoryModel) createTable() table.Model {
	var columns []table.Column
	if m.tab == tabWins {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: 24},
			{Title: "Wins", Width: 6},
		}
	} else {
		columns = []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Winner", Width: 16},
			{Title: "Places", Width: 30},
			{Title: "You", Width: 12},
		}
		tableWidth := m.width - 4
		if m.showSidebar {
			tableWidth -= sidebarWidth + 3
		}
		// give spare room to the places column
		if spare := tableWidth - 80; spare > 0 {
			columns[2].Width += min(spare, 30)
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current tab from the store and rebuilds the table.
func (m *HistoryModel) load() {
	m.err = nil
	m.results, m.wins = nil, nil
	if m.store != nil {
		if m.tab == tabWins {
			m.wins, m.err = m.store.WinCounts(maxWinners)
		} else {
			m.results, m.err = m.store.RecentResults(maxResults)
		}
	}
	m.table = m.createTable()
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m HistoryModel) rows() []table.Row {
	if m.tab == tabWins {
		rows := make([]table.Row, len(m.wins))
		for i, w := range m.wins {
			rows[i] = table.Row{fmt.Sprintf("#%d", i+1), w.Name, fmt.Sprintf("%d", w.Wins)}
		}
		return rows
	}

	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Winner,
			strings.Join(r.Places, ", "),
			r.LocalName,
		}
	}
	return rows
}

func (m HistoryModel) empty() bool {
	if m.tab == tabWins {
		return len(m.wins) == 0
	}
	return len(m.results) == 0
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % numTabs
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + numTabs - 1) % numTabs
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("HISTORY - "+m.tab.title(), m.width)))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := panel.Render(m.renderTableContent())
	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(content)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString("Views\n")
	s.WriteString(strings.Repeat("-", sidebarWidth-4))
	s.WriteString("\n")
	for t := historyTab(0); t < numTabs; t++ {
		cursor := "  "
		item := lipgloss.NewStyle()
		if t == m.tab {
			cursor = "> "
			item = item.Bold(true).Foreground(lipgloss.Color("229"))
		}
		s.WriteString(item.Render(cursor + t.title()))
		s.WriteString("\n")
	}
	return style.Render(s.String())
}

func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, numTabs)
	for t := historyTab(0); t < numTabs; t++ {
		if t == m.tab {
			tabs = append(tabs, activeStyle.Render(t.title()))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+t.title()+" "))
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table, an error or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not read history:\n" + m.err.Error())
	}
	if m.empty() {
		return emptyStyle.Render("No games recorded yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// IsQuitting reports whether the user closed the screen.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunHistory runs the history screen.
func RunHistory(store HistoryStore, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
