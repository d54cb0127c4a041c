package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mgersten/taskline/internal/domain"
)

// ListProjects fetches all projects visible to the session.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var wire []projectWire
	if err := c.get(ctx, "/api/projects", &wire); err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(wire))
	for _, w := range wire {
		projects = append(projects, w.toDomain())
	}
	return projects, nil
}

// GetProject fetches one project, memoized through the LRU cache.
func (c *Client) GetProject(ctx context.Context, projectID string) (domain.Project, error) {
	if p, ok := c.projects.Get(projectID); ok {
		return p, nil
	}
	var wire projectWire
	if err := c.get(ctx, "/api/projects/"+url.PathEscape(projectID), &wire); err != nil {
		return domain.Project{}, err
	}
	p := wire.toDomain()
	c.projects.Add(projectID, p)
	return p, nil
}

// ListCards fetches the kanban card set for a project.
func (c *Client) ListCards(ctx context.Context, projectID string) ([]domain.KanbanCard, error) {
	var wire []taskWire
	path := fmt.Sprintf("/api/projects/%s/tasks", url.PathEscape(projectID))
	if err := c.get(ctx, path, &wire); err != nil {
		return nil, err
	}
	cards := make([]domain.KanbanCard, 0, len(wire))
	for _, w := range wire {
		cards = append(cards, w.toDomain())
	}
	return cards, nil
}

// ListSchedule fetches the schedule items for a project's timeline,
// including the server-computed critical-path flags. The client renders
// these as-is and never recomputes them.
func (c *Client) ListSchedule(ctx context.Context, projectID string) ([]domain.ScheduleItem, error) {
	var wire []scheduleItemWire
	path := fmt.Sprintf("/api/projects/%s/schedule", url.PathEscape(projectID))
	if err := c.get(ctx, path, &wire); err != nil {
		return nil, err
	}
	items := make([]domain.ScheduleItem, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.toDomain())
	}
	return items, nil
}

// CreateCard creates a task in a project and returns the stored card.
func (c *Client) CreateCard(ctx context.Context, projectID string, card domain.KanbanCard) (domain.KanbanCard, error) {
	var wire taskWire
	path := fmt.Sprintf("/api/projects/%s/tasks", url.PathEscape(projectID))
	if err := c.do(ctx, http.MethodPost, path, cardToWire(card), &wire); err != nil {
		return domain.KanbanCard{}, err
	}
	return wire.toDomain(), nil
}

// UpdateCard replaces a task's editable fields.
func (c *Client) UpdateCard(ctx context.Context, card domain.KanbanCard) (domain.KanbanCard, error) {
	var wire taskWire
	path := "/api/tasks/" + url.PathEscape(card.ID)
	if err := c.do(ctx, http.MethodPut, path, cardToWire(card), &wire); err != nil {
		return domain.KanbanCard{}, err
	}
	return wire.toDomain(), nil
}

// UpdateCardStatus patches only a task's status. This is the write half
// of the board's optimistic move.
func (c *Client) UpdateCardStatus(ctx context.Context, cardID string, status domain.CardStatus) error {
	path := "/api/tasks/" + url.PathEscape(cardID) + "/status"
	return c.do(ctx, http.MethodPatch, path, statusPatchWire{Status: string(status)}, nil)
}

// DeleteCard removes a task.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(cardID), nil, nil)
}

// BoardSource adapts the client to the board engine's collaborator ports
// for one project's card set.
type BoardSource struct {
	Client    *Client
	ProjectID string
}

func (b BoardSource) UpdateStatus(ctx context.Context, cardID string, status domain.CardStatus) error {
	return b.Client.UpdateCardStatus(ctx, cardID, status)
}

func (b BoardSource) Reload(ctx context.Context) ([]domain.KanbanCard, error) {
	return b.Client.ListCards(ctx, b.ProjectID)
}
