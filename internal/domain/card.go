package domain

import "time"

// KanbanCard is one card on the board. Cards are value types: a status
// change produces a new card, never a mutation of a shared one.
type KanbanCard struct {
	ID          string
	Title       string
	Description string
	Status      CardStatus
	DueDate     *time.Time
	Priority    *Priority
	Assignee    string
}

// WithStatus returns a copy of the card with its status replaced.
func (c KanbanCard) WithStatus(s CardStatus) KanbanCard {
	c.Status = s
	return c
}

// Project is tracker project metadata as returned by the server.
type Project struct {
	ID        string
	Name      string
	Status    ProjectStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// GroupByStatus buckets cards into board columns, preserving the input
// order within each column. Every known status gets a bucket, so empty
// columns still render.
func GroupByStatus(cards []KanbanCard) map[CardStatus][]KanbanCard {
	groups := make(map[CardStatus][]KanbanCard, len(BoardColumns))
	for _, s := range BoardColumns {
		groups[s] = nil
	}
	for _, c := range cards {
		if !ValidStatus(c.Status) {
			continue
		}
		groups[c.Status] = append(groups[c.Status], c)
	}
	return groups
}
