package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgersten/taskline/internal/api"
	"github.com/mgersten/taskline/internal/board"
	"github.com/mgersten/taskline/internal/cli/formatter"
	"github.com/mgersten/taskline/internal/domain"
)

// ── messages ─────────────────────────────────────────────────────────────────

// cardsLoadedMsg signals that the project's cards have been loaded, either
// from the tracker or, on failure, from the local snapshot.
type cardsLoadedMsg struct {
	cards     []domain.KanbanCard
	fromCache bool
	fetchedAt time.Time
	err       error
}

// commitResultMsg carries the settled outcome of a drop commit back onto
// the UI loop.
type commitResultMsg struct {
	res board.Resolution
}

// ── view ─────────────────────────────────────────────────────────────────────

// boardView renders the kanban board. Card moves are keyboard drags:
// grab a card, steer it to a target column, drop it. The transition
// engine owns the drag lifecycle and commit semantics; this view only
// routes keys and renders whatever collection the engine hands back.
type boardView struct {
	state   *SharedState
	engine  *board.Engine
	cards   []domain.KanbanCard
	loading bool
	err     error

	// Snapshot fallback bookkeeping
	stale     bool
	fetchedAt time.Time

	col    int // selected column; drop target while dragging
	row    int // selected row within the column
	notice string
}

func newBoardView(state *SharedState) View {
	source := api.BoardSource{Client: state.App.Client, ProjectID: state.ActiveProjectID}
	return &boardView{
		state:   state,
		engine:  board.NewEngine(source, source, state.App.Logger),
		loading: true,
	}
}

func (v *boardView) ID() ViewID    { return ViewBoard }
func (v *boardView) Title() string { return "Board" }

func (v *boardView) ShortHelp() []key.Binding {
	if _, dragging := v.engine.Dragging(); dragging {
		return []key.Binding{
			key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "target column")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("space/enter", "grab card")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

// HandlesEsc claims the escape key while a drag is active so escape
// cancels the drag instead of leaving the board.
func (v *boardView) HandlesEsc() bool {
	_, dragging := v.engine.Dragging()
	return dragging
}

func (v *boardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *boardView) loadData() tea.Cmd {
	app := v.state.App
	projectID := v.state.ActiveProjectID
	return func() tea.Msg {
		ctx := context.Background()

		cards, err := app.Client.ListCards(ctx, projectID)
		if err == nil {
			if app.Cache != nil {
				if cacheErr := app.Cache.SaveCards(ctx, projectID, cards, time.Now()); cacheErr != nil {
					app.Logger.Warn("saving card snapshot", "err", cacheErr)
				}
			}
			return cardsLoadedMsg{cards: cards, fetchedAt: time.Now()}
		}

		if app.Cache != nil {
			cached, at, cacheErr := app.Cache.LoadCards(ctx, projectID)
			if cacheErr == nil && cached != nil {
				return cardsLoadedMsg{cards: cached, fromCache: true, fetchedAt: at}
			}
		}
		return cardsLoadedMsg{err: err}
	}
}

// saveSnapshot persists the current card set off the UI loop.
func (v *boardView) saveSnapshot(cards []domain.KanbanCard) tea.Cmd {
	app := v.state.App
	projectID := v.state.ActiveProjectID
	if app.Cache == nil {
		return nil
	}
	return func() tea.Msg {
		if err := app.Cache.SaveCards(context.Background(), projectID, cards, time.Now()); err != nil {
			app.Logger.Warn("saving card snapshot", "err", err)
		}
		return nil
	}
}

// columnCards returns the cards currently shown in column col.
func (v *boardView) columnCards(col int) []domain.KanbanCard {
	return domain.GroupByStatus(v.cards)[domain.BoardColumns[col]]
}

// selectedCard returns the card under the cursor, if any.
func (v *boardView) selectedCard() (domain.KanbanCard, bool) {
	cards := v.columnCards(v.col)
	if v.row < 0 || v.row >= len(cards) {
		return domain.KanbanCard{}, false
	}
	return cards[v.row], true
}

func (v *boardView) clampRow() {
	if n := len(v.columnCards(v.col)); v.row >= n {
		v.row = max(0, n-1)
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.cards = msg.cards
		v.stale = msg.fromCache
		v.fetchedAt = msg.fetchedAt
		v.clampRow()
		return v, nil

	case commitResultMsg:
		return v.applyResolution(msg.res)

	case refreshViewMsg:
		v.loading = true
		v.notice = ""
		return v, v.loadData()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, dragging := v.engine.Dragging()

	switch msg.String() {
	case "left", "h":
		if v.col > 0 {
			v.col--
			if !dragging {
				v.clampRow()
			}
		}
	case "right", "l":
		if v.col < len(domain.BoardColumns)-1 {
			v.col++
			if !dragging {
				v.clampRow()
			}
		}
	case "up", "k":
		if !dragging && v.row > 0 {
			v.row--
		}
	case "down", "j":
		if !dragging && v.row < len(v.columnCards(v.col))-1 {
			v.row++
		}
	case " ", "enter":
		if dragging {
			return v.dropCard()
		}
		return v.grabCard()
	case "esc":
		if dragging {
			v.engine.CancelDrag()
			v.notice = ""
		}
	case "n":
		if !dragging {
			return v, pushView(newCardFormView(v.state, nil))
		}
	case "e":
		if !dragging {
			if card, ok := v.selectedCard(); ok {
				return v, pushView(newCardFormView(v.state, &card))
			}
		}
	case "r":
		if !dragging {
			v.loading = true
			v.notice = ""
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *boardView) grabCard() (tea.Model, tea.Cmd) {
	card, ok := v.selectedCard()
	if !ok {
		return v, nil
	}
	if err := v.engine.BeginDrag(card, card.Status); err != nil {
		v.notice = "move still syncing, try again"
		return v, nil
	}
	v.notice = ""
	return v, nil
}

func (v *boardView) dropCard() (tea.Model, tea.Cmd) {
	target := domain.BoardColumns[v.col]
	moved, commit, err := v.engine.CompleteDrop(v.cards, target)
	if err != nil {
		return v, nil
	}
	v.cards = moved
	v.clampRow()
	if commit == nil {
		return v, nil
	}
	return v, func() tea.Msg {
		return commitResultMsg{res: commit(context.Background())}
	}
}

// applyResolution renders a settled drop commit.
func (v *boardView) applyResolution(res board.Resolution) (tea.Model, tea.Cmd) {
	switch {
	case res.Committed:
		return v, v.saveSnapshot(v.cards)
	case res.Reloaded:
		v.cards = res.Cards
		v.clampRow()
		v.notice = "move rejected by server, board reloaded"
		return v, v.saveSnapshot(v.cards)
	case res.Err != nil:
		v.notice = "sync failed: " + res.Err.Error()
	}
	return v, nil
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *boardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	drag, dragging := v.engine.Dragging()

	colWidth := v.state.Width/len(domain.BoardColumns) - 2
	if colWidth < 14 {
		colWidth = 14
	}

	columns := make([]string, 0, len(domain.BoardColumns))
	for i, status := range domain.BoardColumns {
		columns = append(columns, v.renderColumn(i, status, colWidth, drag, dragging))
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.stale {
		b.WriteString("  " + formatter.StyleYellow.Render("⚠ offline, showing snapshot from "+v.fetchedAt.Format("Jan 02 15:04")) + "\n")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")
	if dragging {
		b.WriteString("\n  " + formatter.StylePurple.Render("moving: "+drag.Card.Title))
	} else if v.notice != "" {
		b.WriteString("\n  " + formatter.StyleYellow.Render(v.notice))
	}
	return b.String()
}

func (v *boardView) renderColumn(idx int, status domain.CardStatus, width int, drag board.DragState, dragging bool) string {
	cards := v.columnCards(idx)

	var b strings.Builder
	header := fmt.Sprintf("%s %s", formatter.StatusPill(status), formatter.Dim(fmt.Sprintf("(%d)", len(cards))))
	b.WriteString(header + "\n")

	rule := strings.Repeat("─", width)
	if dragging && idx == v.col {
		b.WriteString(formatter.StylePurple.Render(rule) + "\n")
	} else {
		b.WriteString(formatter.Dim(rule) + "\n")
	}

	for i, card := range cards {
		b.WriteString(v.renderCard(card, idx == v.col && i == v.row && !dragging, dragging && card.ID == drag.Card.ID, width) + "\n")
	}
	if len(cards) == 0 {
		b.WriteString(formatter.Dim("  ·") + "\n")
	}

	return lipgloss.NewStyle().Width(width + 2).Render(b.String())
}

func (v *boardView) renderCard(card domain.KanbanCard, selected, dragged bool, width int) string {
	title := formatter.Truncate(card.Title, width-4)

	cursor := "  "
	style := formatter.StyleFg
	switch {
	case dragged:
		cursor = formatter.StylePurple.Render("┆ ")
		style = formatter.StylePurple
	case selected:
		cursor = formatter.StyleGreen.Render("▸ ")
		style = formatter.StyleBold
	}

	line := cursor + style.Render(title)
	if tag := formatter.PriorityTag(card.Priority); tag != "" {
		line += " " + tag
	}
	if selected && card.DueDate != nil {
		line += " " + formatter.Dim("due "+formatter.ShortDate(*card.DueDate))
	}
	return line
}
