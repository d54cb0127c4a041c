package api

import (
	"time"

	"github.com/mgersten/taskline/internal/domain"
)

const wireDate = "2006-01-02"

// Wire shapes for the tracker's JSON API. Kept separate from the domain
// types so server field renames stay contained here.

type projectWire struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

type taskWire struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Assignee    string  `json:"assignee,omitempty"`
}

type scheduleItemWire struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	ProgressPercentage int      `json:"progressPercentage"`
	IsCritical         bool     `json:"isCritical"`
	DependencyIDs      []string `json:"dependencyIds"`
}

type statusPatchWire struct {
	Status string `json:"status"`
}

func (w projectWire) toDomain() domain.Project {
	return domain.Project{
		ID:        w.ID,
		Name:      w.Name,
		Status:    domain.ProjectStatus(w.Status),
		StartDate: parseWireDate(w.StartDate),
		EndDate:   parseWireDate(w.EndDate),
	}
}

func (w taskWire) toDomain() domain.KanbanCard {
	card := domain.KanbanCard{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Status:      domain.CardStatus(w.Status),
		DueDate:     parseWireDate(w.DueDate),
		Assignee:    w.Assignee,
	}
	if w.Priority != nil {
		p := domain.Priority(*w.Priority)
		card.Priority = &p
	}
	return card
}

func (w scheduleItemWire) toDomain() domain.ScheduleItem {
	// Unparseable dates come through as zero instants; the layout engine
	// absorbs them the same way it absorbs inverted ranges.
	start, _ := time.Parse(wireDate, w.StartDate)
	end, _ := time.Parse(wireDate, w.EndDate)
	return domain.ScheduleItem{
		ID:            w.ID,
		Name:          w.Name,
		Start:         start,
		End:           end,
		ProgressPct:   w.ProgressPercentage,
		Critical:      w.IsCritical,
		DependencyIDs: w.DependencyIDs,
	}
}

func cardToWire(c domain.KanbanCard) taskWire {
	w := taskWire{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Status:      string(c.Status),
		Assignee:    c.Assignee,
	}
	if c.DueDate != nil {
		s := c.DueDate.Format(wireDate)
		w.DueDate = &s
	}
	if c.Priority != nil {
		p := string(*c.Priority)
		w.Priority = &p
	}
	return w
}

func parseWireDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(wireDate, *s)
	if err != nil {
		return nil
	}
	return &t
}
