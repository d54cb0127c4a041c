// Package board implements the kanban status-transition state machine:
// a drag lifecycle (begin, drop, cancel) with an optimistic local move and
// reload-on-failure commit semantics against the upstream tracker.
//
// The engine never mutates a card collection in place. A drop returns a
// fresh collection for the caller to render immediately, plus a commit
// closure the caller runs off the UI loop. On commit failure the closure
// reloads the full authoritative card set rather than undoing the local
// patch: an undo would assume the pre-move state was still current, which
// concurrent mutations make unknowable without versioning.
package board

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mgersten/taskline/internal/domain"
)

var (
	// ErrDragActive is returned by BeginDrag while a drag or an
	// unsettled drop commit is in progress.
	ErrDragActive = errors.New("board: drag already active")
	// ErrNoDrag is returned by CompleteDrop without a preceding BeginDrag.
	ErrNoDrag = errors.New("board: no active drag")
)

// DragState is the transient state of one pointer drag. It lives only
// between BeginDrag and the matching CompleteDrop or CancelDrag.
type DragState struct {
	Card         domain.KanbanCard
	SourceStatus domain.CardStatus
}

// Resolution is the settled outcome of a drop commit.
//
// Committed: the optimistic collection already matches server truth;
// Cards is nil and the caller keeps what it has.
// Reloaded: the update failed and Cards holds the fresh authoritative
// set, which the caller must render wholesale.
// Err is non-nil only when the failure-path reload itself failed; the
// caller keeps the optimistic collection and retries the refresh later.
type Resolution struct {
	Committed bool
	Reloaded  bool
	Cards     []domain.KanbanCard
	Err       error
}

// CommitFunc performs the remote status update for a completed drop.
// It blocks, so callers run it off the UI loop.
type CommitFunc func(ctx context.Context) Resolution

// Engine serializes drag-initiated status changes for one card
// collection. At most one drag, and at most one drop commit, is active
// at a time.
type Engine struct {
	updater  StatusUpdater
	reloader CardReloader
	logger   *log.Logger

	mu       sync.Mutex
	drag     *DragState
	inFlight bool
}

// NewEngine wires a transition engine to its upstream collaborators.
// A nil logger disables logging.
func NewEngine(updater StatusUpdater, reloader CardReloader, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{updater: updater, reloader: reloader, logger: logger}
}

// BeginDrag records the drag state for a card. Purely visual from the
// engine's perspective: no network call happens until CompleteDrop.
func (e *Engine) BeginDrag(card domain.KanbanCard, source domain.CardStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag != nil || e.inFlight {
		return ErrDragActive
	}
	e.drag = &DragState{Card: card, SourceStatus: source}
	return nil
}

// Dragging returns a copy of the active drag state, if any.
func (e *Engine) Dragging() (DragState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag == nil {
		return DragState{}, false
	}
	return *e.drag, true
}

// CancelDrag clears the drag state with no side effects.
func (e *Engine) CancelDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drag = nil
}

// CompleteDrop finishes the active drag against target.
//
// Dropping onto the source column, or onto an unknown status, is a local
// no-op: the input collection is returned untouched and commit is nil.
// Otherwise the returned collection carries the optimistic move and
// commit performs the remote update; run it off the UI loop and apply
// its Resolution.
func (e *Engine) CompleteDrop(cards []domain.KanbanCard, target domain.CardStatus) ([]domain.KanbanCard, CommitFunc, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.drag == nil {
		return cards, nil, ErrNoDrag
	}
	drag := *e.drag
	e.drag = nil

	if target == drag.SourceStatus || !domain.ValidStatus(target) {
		return cards, nil, nil
	}

	moved := applyMove(cards, drag.Card.ID, target)
	e.inFlight = true

	commit := func(ctx context.Context) Resolution {
		defer e.endFlight()
		return e.commitMove(ctx, drag.Card.ID, target)
	}
	return moved, commit, nil
}

func (e *Engine) endFlight() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}

func (e *Engine) commitMove(ctx context.Context, cardID string, target domain.CardStatus) Resolution {
	err := e.updater.UpdateStatus(ctx, cardID, target)
	if err == nil {
		return Resolution{Committed: true}
	}
	e.logger.Warn("status update failed, reloading board", "card", cardID, "target", target, "err", err)

	fresh, reloadErr := e.reloader.Reload(ctx)
	if reloadErr != nil {
		e.logger.Error("board reload failed", "err", reloadErr)
		return Resolution{Err: reloadErr}
	}
	return Resolution{Reloaded: true, Cards: fresh}
}

// applyMove returns a new collection with the moved card's status
// replaced. Order is preserved; the source slice is never touched.
func applyMove(cards []domain.KanbanCard, cardID string, target domain.CardStatus) []domain.KanbanCard {
	out := make([]domain.KanbanCard, len(cards))
	for i, c := range cards {
		if c.ID == cardID {
			out[i] = c.WithStatus(target)
		} else {
			out[i] = c
		}
	}
	return out
}
