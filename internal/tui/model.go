package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/grimoire"
	"github.com/arcanaland/grimoire/internal/source"
	"github.com/arcanaland/grimoire/internal/spell"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

const (
	// statusLifetime is how long a copy confirmation or failure stays
	// in a card's status line.
	statusLifetime = 2200 * time.Millisecond

	// focusDelay is the pause between expanding a card and moving
	// keyboard focus into its full-text region, so focus does not jump
	// while the card is still unfolding.
	focusDelay = 200 * time.Millisecond
)

// cardView is one card on screen: the spell it presents, its runtime
// state, and the transient UI bits that never outlive the session.
type cardView struct {
	spell spell.Spell
	state spell.CardState

	// focusContent marks that keyboard focus sits inside this card's
	// full-text region. At most one card holds it at a time.
	focusContent bool

	// status is the transient status line content. statusSeq
	// invalidates expiry ticks from statuses that were since replaced.
	status    string
	statusErr bool
	statusSeq int
}

// controlLabel is the toggle control's label in its current state.
func (c cardView) controlLabel() string {
	if c.state.Expanded {
		return "Collapse"
	}
	return "View"
}

// Messages produced by commands.

type contentLoadedMsg struct {
	index int
	body  string
	err   error
}

type focusContentMsg struct {
	index int
}

type copyResultMsg struct {
	index int
	err   error
}

type statusExpireMsg struct {
	index int
	seq   int
}

// interaction identifies what a key event asks for. Every key event
// resolves to one of these and is then dispatched through the handlers
// table, so there is exactly one handling path no matter how many
// cards are on screen.
type interaction int

const (
	interactionNone interaction = iota
	interactionToggle
	interactionCopy
	interactionDismiss
	interactionNext
	interactionPrev
	interactionQuit
)

// handlers is the dispatch table keyed by interaction type.
var handlers = map[interaction]func(*Model) tea.Cmd{
	interactionToggle:  (*Model).toggleCard,
	interactionCopy:    (*Model).copyCard,
	interactionDismiss: (*Model).dismissCard,
	interactionNext:    (*Model).selectNext,
	interactionPrev:    (*Model).selectPrev,
	interactionQuit:    (*Model).quit,
}

func interactionFor(msg tea.KeyMsg) interaction {
	switch msg.String() {
	case "enter", " ":
		return interactionToggle
	case "c", "y":
		return interactionCopy
	case "esc":
		return interactionDismiss
	case "j", "down", "tab":
		return interactionNext
	case "k", "up", "shift+tab":
		return interactionPrev
	case "q", "ctrl+c":
		return interactionQuit
	}
	return interactionNone
}

// Model is the browse screen: one card per spell of a grimoire, in
// manifest order, inside a single scrolling viewport.
type Model struct {
	grim   *grimoire.Grimoire
	src    source.Source
	logger *zap.Logger
	styles Styles

	cards  []cardView
	cursor int

	// anyExpanded tracks whether any card is currently expanded. It
	// drives container layout only.
	anyExpanded bool

	// loading is the index of the spell whose fetch is outstanding;
	// len(cards) once every card has settled.
	loading int

	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel builds a browse model for a loaded grimoire. Spell content
// is not fetched yet; Init starts the sequential loading chain.
func NewModel(g *grimoire.Grimoire, src source.Source, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Spinner

	cards := make([]cardView, len(g.Spells))
	for i, s := range g.Spells {
		cards[i] = cardView{spell: s}
	}

	return Model{
		grim:    g,
		src:     src,
		logger:  logger,
		styles:  styles,
		spinner: sp,
		cards:   cards,
	}
}

// Init starts the spinner and the first content fetch. Each fetch is
// issued only after the previous one has settled, keeping at most one
// network operation outstanding.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(0))
}

// fetchCmd returns the command that loads spell content for cards[index],
// or nil once every card has settled.
func (m Model) fetchCmd(index int) tea.Cmd {
	if index < 0 || index >= len(m.cards) {
		return nil
	}
	src := m.src
	path := m.cards[index].spell.Path
	return func() tea.Msg {
		body, err := src.Fetch(context.Background(), path)
		return contentLoadedMsg{index: index, body: string(body), err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())
		vh := msg.Height - chrome
		if vh < 1 {
			vh = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vh)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vh
		}
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		if handler, ok := handlers[interactionFor(msg)]; ok {
			cmd := handler(&m)
			m.syncViewport()
			return m, cmd
		}

	case contentLoadedMsg:
		if msg.index >= 0 && msg.index < len(m.cards) {
			card := &m.cards[msg.index]
			if msg.err != nil {
				card.state.FinishLoadFailure(msg.err.Error())
				m.logger.Warn("spell fetch failed",
					zap.String("spell", card.spell.ID),
					zap.Error(msg.err))
			} else {
				card.state.FinishLoad(msg.body)
				m.logger.Debug("spell loaded",
					zap.String("spell", card.spell.ID),
					zap.Int("bytes", len(msg.body)))
			}
			m.loading = msg.index + 1
		}
		m.syncViewport()
		return m, m.fetchCmd(msg.index + 1)

	case focusContentMsg:
		if msg.index >= 0 && msg.index < len(m.cards) && m.cards[msg.index].state.Expanded {
			for i := range m.cards {
				m.cards[i].focusContent = false
			}
			m.cards[msg.index].focusContent = true
			m.syncViewport()
		}
		return m, nil

	case copyResultMsg:
		if msg.index < 0 || msg.index >= len(m.cards) {
			return m, nil
		}
		card := &m.cards[msg.index]
		card.statusSeq++
		if msg.err != nil {
			card.status = "Copy failed"
			card.statusErr = true
			m.logger.Warn("clipboard write failed",
				zap.String("spell", card.spell.ID),
				zap.Error(msg.err))
		} else {
			card.status = "Copied to clipboard"
			card.statusErr = false
		}
		index, seq := msg.index, card.statusSeq
		m.syncViewport()
		return m, tea.Tick(statusLifetime, func(time.Time) tea.Msg {
			return statusExpireMsg{index: index, seq: seq}
		})

	case statusExpireMsg:
		if msg.index >= 0 && msg.index < len(m.cards) {
			card := &m.cards[msg.index]
			if card.statusSeq == msg.seq {
				card.status = ""
				card.statusErr = false
				m.syncViewport()
			}
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading >= len(m.cards) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncViewport()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// toggleCard flips the selected card between collapsed and expanded.
// Expanding schedules the focus move into the full-text region.
func (m *Model) toggleCard() tea.Cmd {
	if len(m.cards) == 0 {
		return nil
	}
	card := &m.cards[m.cursor]

	expanded := card.state.Toggle()
	if !expanded {
		card.focusContent = false
	}
	m.refreshAnyExpanded()

	if expanded {
		index := m.cursor
		return tea.Tick(focusDelay, func(time.Time) tea.Msg {
			return focusContentMsg{index: index}
		})
	}
	return nil
}

// copyCard writes the text currently rendered in the selected card's
// full-text region to the system clipboard. The write runs as its own
// command; copies on different cards do not interact.
func (m *Model) copyCard() tea.Cmd {
	if len(m.cards) == 0 {
		return nil
	}
	index := m.cursor
	text := m.cards[index].state.Content
	return func() tea.Msg {
		return copyResultMsg{index: index, err: clipboardWriteAll(text)}
	}
}

// dismissCard collapses the card whose full-text region holds keyboard
// focus and returns focus to that card's toggle control. Other
// expanded cards keep their state.
func (m *Model) dismissCard() tea.Cmd {
	for i := range m.cards {
		card := &m.cards[i]
		if card.focusContent && card.state.Expanded {
			card.state.Toggle()
			card.focusContent = false
			m.cursor = i
			m.refreshAnyExpanded()
			return nil
		}
	}
	return nil
}

func (m *Model) selectNext() tea.Cmd {
	if m.cursor < len(m.cards)-1 {
		m.cursor++
	}
	m.blurContent()
	return nil
}

func (m *Model) selectPrev() tea.Cmd {
	if m.cursor > 0 {
		m.cursor--
	}
	m.blurContent()
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

// blurContent pulls keyboard focus out of every full-text region,
// back to the card level.
func (m *Model) blurContent() {
	for i := range m.cards {
		m.cards[i].focusContent = false
	}
}

func (m *Model) refreshAnyExpanded() {
	m.anyExpanded = false
	for i := range m.cards {
		if m.cards[i].state.Expanded {
			m.anyExpanded = true
			return
		}
	}
}

// cardGap is the blank-line spacing between cards. The container
// spreads out while any card is expanded; the flag drives layout only.
func (m Model) cardGap() int {
	if m.anyExpanded {
		return 2
	}
	return 1
}

func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderCards())
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls the viewport so the selected card is on
// screen.
func (m *Model) ensureCursorVisible() {
	if len(m.cards) == 0 {
		return
	}
	top := 0
	for i := 0; i < m.cursor; i++ {
		top += lipgloss.Height(m.renderCard(i)) + m.cardGap()
	}
	height := lipgloss.Height(m.renderCard(m.cursor))

	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom := top + height; bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  Opening grimoire..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.RenderTitle("✦ " + m.grim.Name)

	var counts string
	if m.loading < len(m.cards) {
		counts = fmt.Sprintf("%d/%d loaded", m.loading, len(m.cards))
	} else {
		counts = fmt.Sprintf("%d spells", len(m.cards))
	}
	if failed := m.failedCount(); failed > 0 {
		counts += fmt.Sprintf(" · %d failed", failed)
	}

	return m.styles.Header.Render(title + "  " + m.styles.Muted.Render(counts))
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Render(
		"enter view/collapse · c copy · esc dismiss · j/k move · q quit")
}

func (m Model) failedCount() int {
	n := 0
	for i := range m.cards {
		if m.cards[i].state.Failed {
			n++
		}
	}
	return n
}

func (m Model) renderCards() string {
	if len(m.cards) == 0 {
		return m.styles.Muted.Render("This grimoire has no spells.")
	}

	separator := strings.Repeat("\n", m.cardGap()+1)
	var b strings.Builder
	for i := range m.cards {
		if i > 0 {
			b.WriteString(separator)
		}
		b.WriteString(m.renderCard(i))
	}
	return b.String()
}

func (m Model) renderCard(i int) string {
	card := m.cards[i]
	st := m.styles

	width := m.width - 4
	if width < 20 {
		width = 20
	}

	var lines []string
	lines = append(lines, st.CardTitle.Render(card.spell.Title))
	if card.spell.Description != "" {
		lines = append(lines, st.Description.Render(card.spell.Description))
	}

	body := card.state.Preview
	bodyStyle := st.Body
	if card.state.Expanded {
		body = card.state.Content
		if card.focusContent {
			bodyStyle = st.BodyFocused
		}
	}
	if body != "" {
		lines = append(lines, "", bodyStyle.Render(body))
	}

	lines = append(lines, "", m.renderControls(card))

	frame := st.Card
	if i == m.cursor {
		frame = st.CardFocused
	}
	return frame.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderControls(card cardView) string {
	st := m.styles

	glyph := "▸"
	if card.state.Expanded {
		glyph = "▾"
	}
	line := st.Control.Render(glyph+" "+card.controlLabel()) +
		st.Muted.Render("  ·  ") +
		st.Control.Render("⧉ Copy")

	if status := m.renderStatus(card); status != "" {
		line += st.Muted.Render("  ·  ") + status
	}
	return line
}

func (m Model) renderStatus(card cardView) string {
	st := m.styles
	switch {
	case card.status != "" && card.statusErr:
		return st.Error.Render(card.status)
	case card.status != "":
		return st.Success.Render(card.status)
	case card.state.Failed:
		return st.Error.Render("✗ load failed")
	case !card.state.Loaded:
		return m.spinner.View() + st.Muted.Render(" loading")
	}
	return ""
}
