package tui

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/thirteen/internal/client"
	"github.com/vovakirdan/thirteen/internal/config"
	"github.com/vovakirdan/thirteen/internal/core"
	"github.com/vovakirdan/thirteen/internal/session"
)

// Layout constants
const (
	logHeight    = 8
	minLogHeight = 3
	nameLimit    = 24
)

// Options configures a table Model.
type Options struct {
	UI          config.UIConfig
	DialTimeout time.Duration

	// Name pre-fills the join prompt. With AutoJoin the prompt is skipped.
	Name     string
	AutoJoin bool
	Theme    *Theme
}

// signalMsg carries one transport signal into the update loop.
type signalMsg struct {
	sig client.Signal
}

// signalsClosedMsg is sent once the transport stopped.
type signalsClosedMsg struct{}

// joinDoneMsg reports the result of a connection attempt.
type joinDoneMsg struct {
	err error
}

// Model is the Bubble Tea model for the card table. All reducer access
// happens in Update, so the reducer is only touched from one goroutine.
type Model struct {
	sess  *session.Session
	opts  Options
	theme Theme
	keys  KeyMap
	help  help.Model

	prompt    textinput.Model
	prompting bool
	renaming  bool

	logView viewport.Model
	seenGen int
	seenLen int

	cursor   int
	selected map[int]bool // by global rank

	toast    string
	toastID  int
	flasher  *Flasher
	focused  bool
	status   string
	confirm  bool // reset pressed once
	width    int
	height   int
	quitting bool
}

// NewModel creates the table model for sess.
func NewModel(sess *session.Session, opts Options) Model {
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 10 * time.Second
	}

	name := opts.Name
	if name == "" {
		name = sess.Reducer().Name()
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = nameLimit
	ti.SetValue(name)
	ti.Focus()

	h := help.New()
	h.ShowAll = false

	return Model{
		sess:      sess,
		opts:      opts,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      h,
		prompt:    ti,
		prompting: !(opts.AutoJoin && name != ""),
		logView:   viewport.New(76, logHeight),
		selected:  make(map[int]bool),
		flasher:   NewFlasher(opts.UI.Title, opts.UI.AlertTitle, opts.UI.FlashInterval),
		focused:   true,
	}
}

// Init starts listening for transport signals.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.waitForSignal(),
		tea.SetWindowTitle(m.opts.UI.Title),
	}
	if m.prompting {
		cmds = append(cmds, textinput.Blink)
	} else {
		cmds = append(cmds, m.join(m.prompt.Value()))
	}
	return tea.Batch(cmds...)
}

// waitForSignal returns a command that waits for the next transport signal.
func (m Model) waitForSignal() tea.Cmd {
	signals := m.sess.Signals()
	return func() tea.Msg {
		sig, ok := <-signals
		if !ok {
			return signalsClosedMsg{}
		}
		return signalMsg{sig: sig}
	}
}

// join connects in the background; signals arrive through waitForSignal.
func (m Model) join(name string) tea.Cmd {
	sess, timeout := m.sess, m.opts.DialTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return joinDoneMsg{err: sess.Join(ctx, name)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		return m, m.flasher.Stop()

	case tea.BlurMsg:
		m.focused = false
		if m.toast != "" {
			return m, m.flasher.Start()
		}
		return m, nil

	case signalMsg:
		m.sess.Handle(msg.sig)
		cmd := m.syncLog()
		m.syncHand()
		return m, tea.Batch(cmd, m.waitForSignal())

	case signalsClosedMsg:
		return m, nil

	case joinDoneMsg:
		if msg.err != nil {
			m.status = "Could not connect: " + msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil

	case flashMsg:
		return m, m.flasher.handle(msg)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		if m.renaming || m.sess.Reducer().Phase() == core.Connected {
			m.prompting = false
			m.renaming = false
			m.prompt.Blur()
		}
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.prompt.Value())
		if name == "" {
			m.status = "Please enter a name."
			return m, nil
		}
		m.prompting = false
		m.prompt.Blur()
		m.status = ""
		if m.renaming {
			m.renaming = false
			m.report(m.sess.ChangeName(name))
			return m, nil
		}
		return m, m.join(name)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Reset) {
		m.confirm = false
	}

	hand := m.sess.Reducer().Snapshot().SelfHand

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(hand)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(hand) {
			rank := hand[m.cursor].GlobalRank
			if m.selected[rank] {
				delete(m.selected, rank)
			} else {
				m.selected[rank] = true
			}
		}

	case key.Matches(msg, m.keys.Play):
		cards := m.selectedCards(hand)
		if len(cards) == 0 {
			m.status = "Select cards with space first."
			return m, nil
		}
		if m.report(m.sess.PlayCards(cards)) {
			m.selected = make(map[int]bool)
		}

	case key.Matches(msg, m.keys.Pass):
		m.report(m.sess.PassTurn())

	case key.Matches(msg, m.keys.Start):
		m.report(m.sess.StartGame())

	case key.Matches(msg, m.keys.Reset):
		if !m.confirm {
			m.confirm = true
			m.status = "Press R again to reset the game for everyone."
			return m, nil
		}
		m.confirm = false
		m.report(m.sess.ResetGame())

	case key.Matches(msg, m.keys.Rename):
		if m.sess.Reducer().Phase() != core.Connected {
			m.status = "Join a game before changing your name."
			return m, nil
		}
		m.renaming = true
		m.prompting = true
		m.prompt.SetValue(m.sess.Reducer().Name())
		cmd := m.prompt.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Rejoin):
		name := m.sess.Reducer().Name()
		if name == "" {
			name = strings.TrimSpace(m.prompt.Value())
		}
		if name == "" {
			m.prompting = true
			cmd := m.prompt.Focus()
			return m, cmd
		}
		m.status = "Reconnecting..."
		return m, m.join(name)

	case key.Matches(msg, m.keys.LogUp):
		m.logView.SetYOffset(m.logView.YOffset - m.logView.Height/2)

	case key.Matches(msg, m.keys.LogDown):
		m.logView.SetYOffset(m.logView.YOffset + m.logView.Height/2)
	}

	return m, nil
}

// report shows a local error from an intent. It returns true on success.
func (m *Model) report(err error) bool {
	switch {
	case err == nil:
		m.status = ""
		return true
	case errors.Is(err, client.ErrNotConnected):
		m.status = "Not connected, press c to reconnect."
	default:
		m.status = err.Error()
	}
	return false
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Sequence(m.flasher.Stop(), tea.Quit)
}

// syncLog refreshes the log view and raises attention for new
// interrupting entries.
func (m *Model) syncLog() tea.Cmd {
	log := m.sess.Reducer().Log()
	if log.Generation() != m.seenGen {
		m.seenGen = log.Generation()
		m.seenLen = 0
	}
	fresh := log.Since(m.seenLen)
	m.seenLen = log.Len()
	if len(fresh) == 0 && m.seenLen > 0 {
		return nil
	}

	m.logView.SetContent(m.renderLog(log.Entries()))
	m.logView.GotoBottom()

	var cmds []tea.Cmd
	for _, e := range fresh {
		if !e.Interrupt {
			continue
		}
		m.toast = e.String()
		m.toastID++
		cmds = append(cmds, toastTick(m.opts.UI.ToastDuration, m.toastID))
		if !m.focused {
			cmds = append(cmds, m.flasher.Start())
		}
	}
	return tea.Batch(cmds...)
}

// syncHand drops selections for cards that left the hand and clamps the cursor.
func (m *Model) syncHand() {
	hand := m.sess.Reducer().Snapshot().SelfHand
	inHand := make(map[int]bool, len(hand))
	for _, c := range hand {
		inHand[c.GlobalRank] = true
	}
	for rank := range m.selected {
		if !inHand[rank] {
			delete(m.selected, rank)
		}
	}
	if m.cursor >= len(hand) {
		m.cursor = max(len(hand)-1, 0)
	}
}

func (m Model) selectedCards(hand []core.Card) []core.Card {
	var cards []core.Card
	for _, c := range hand {
		if m.selected[c.GlobalRank] {
			cards = append(cards, c)
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].GlobalRank > cards[j].GlobalRank
	})
	return cards
}

func (m *Model) resize() {
	if m.width > 0 {
		// border and padding of the log panel
		m.logView.Width = max(m.width-4, 20)
		m.help.Width = m.width
	}
	h := logHeight
	if m.height > 0 {
		// leave room for the table above the log
		h = min(logHeight, max(m.height-20, minLogHeight))
	}
	m.logView.Height = h
}

// Run starts the Bubble Tea program for sess in the local terminal.
func Run(sess *session.Session, opts Options, progOpts ...tea.ProgramOption) error {
	model := NewModel(sess, opts)

	p := tea.NewProgram(
		model,
		append([]tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithReportFocus(),
		}, progOpts...)...,
	)

	_, err := p.Run()
	return err
}
