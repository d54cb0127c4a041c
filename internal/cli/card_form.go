package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgersten/taskline/internal/cli/formatter"
	"github.com/mgersten/taskline/internal/domain"
)

// tasklineHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func tasklineHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// cardFormFields holds form-bound values for the card form.
type cardFormFields struct {
	title    string
	desc     string
	status   string
	priority string
	dueDate  string
	assignee string
}

// cardSavedMsg carries the outcome of a create or update.
type cardSavedMsg struct {
	err error
}

// cardFormView wraps a huh.Form for creating or editing a card.
// On submit it persists via the tracker, then pops back to the board
// and broadcasts a refresh.
type cardFormView struct {
	state    *SharedState
	form     *huh.Form
	fields   *cardFormFields
	editing  *domain.KanbanCard // nil when creating
	titleStr string
	saving   bool
	err      error
}

// newCardFormView creates the form view. Pass nil to create a new card,
// or an existing card to edit it.
func newCardFormView(state *SharedState, card *domain.KanbanCard) View {
	f := &cardFormFields{status: string(domain.StatusNotStarted)}
	title := "New Card"
	if card != nil {
		title = "Edit Card"
		f.title = card.Title
		f.desc = card.Description
		f.status = string(card.Status)
		f.assignee = card.Assignee
		if card.Priority != nil {
			f.priority = string(*card.Priority)
		}
		if card.DueDate != nil {
			f.dueDate = card.DueDate.Format("2006-01-02")
		}
	}

	statusOptions := make([]huh.Option[string], 0, len(domain.BoardColumns))
	for _, s := range domain.BoardColumns {
		statusOptions = append(statusOptions, huh.NewOption(s.Label(), string(s)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Card title").
				Value(&f.title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&f.desc),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions...).
				Value(&f.status),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("None", ""),
					huh.NewOption("Low", string(domain.PriorityLow)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("High", string(domain.PriorityHigh)),
				).
				Value(&f.priority),
			huh.NewInput().
				Title("Due Date (YYYY-MM-DD, blank to clear)").
				Placeholder("2026-09-30").
				Value(&f.dueDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Assignee").
				Placeholder("optional").
				Value(&f.assignee),
		),
	).WithTheme(tasklineHuhTheme()).WithShowHelp(false)

	return &cardFormView{
		state:    state,
		form:     form,
		fields:   f,
		editing:  card,
		titleStr: title,
	}
}

func (v *cardFormView) ID() ViewID    { return ViewCardForm }
func (v *cardFormView) Title() string { return v.titleStr }

func (v *cardFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *cardFormView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *cardFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the form.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, popView()
	}

	if msg, ok := msg.(cardSavedMsg); ok {
		v.saving = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		return v, tea.Batch(popView(), func() tea.Msg { return refreshViewMsg{} })
	}

	if v.saving {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.saving = true
		return v, tea.Batch(cmd, v.save())
	}
	return v, cmd
}

func (v *cardFormView) save() tea.Cmd {
	app := v.state.App
	projectID := v.state.ActiveProjectID
	card := v.fields.toCard(v.editing)
	creating := v.editing == nil
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if creating {
			_, err = app.Client.CreateCard(ctx, projectID, card)
		} else {
			_, err = app.Client.UpdateCard(ctx, card)
		}
		return cardSavedMsg{err: err}
	}
}

// toCard maps form fields onto a card, starting from the card being
// edited so fields the form does not cover survive the round trip.
func (f *cardFormFields) toCard(editing *domain.KanbanCard) domain.KanbanCard {
	var card domain.KanbanCard
	if editing != nil {
		card = *editing
	}
	card.Title = f.title
	card.Description = f.desc
	card.Status = domain.CardStatus(f.status)
	card.Assignee = f.assignee

	card.Priority = nil
	if f.priority != "" {
		p := domain.Priority(f.priority)
		card.Priority = &p
	}

	card.DueDate = nil
	if t, err := time.Parse("2006-01-02", f.dueDate); err == nil {
		card.DueDate = &t
	}
	return card
}

func (v *cardFormView) View() string {
	out := "\n" + v.form.View()
	if v.err != nil {
		out += "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.saving {
		out += "\n  " + formatter.Dim("Saving...")
	}
	return out
}
