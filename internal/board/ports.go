package board

import (
	"context"

	"github.com/mgersten/taskline/internal/domain"
)

// StatusUpdater writes a card's status change to the upstream tracker.
// Failure is reported as an error; the engine never interprets the cause,
// it only drives the reload path.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, cardID string, status domain.CardStatus) error
}

// CardReloader fetches the authoritative card set from the upstream
// tracker. Invoked on the failure path of a drop commit.
type CardReloader interface {
	Reload(ctx context.Context) ([]domain.KanbanCard, error)
}
