package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mgersten/taskline/internal/domain"
)

const (
	kindSchedule = "schedule"
	kindCards    = "cards"

	dateFormat = "2006-01-02"
)

// SaveSchedule replaces the schedule snapshot for a project. Row order is
// the server order and survives a round trip.
func (s *Store) SaveSchedule(ctx context.Context, projectID string, items []domain.ScheduleItem, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_items WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing schedule snapshot: %w", err)
	}

	for i, item := range items {
		deps, err := json.Marshal(item.DependencyIDs)
		if err != nil {
			return fmt.Errorf("encoding dependency ids: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO schedule_items
				(project_id, position, id, name, start_date, end_date, progress_pct, critical, dependency_ids)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			projectID, i, item.ID, item.Name,
			item.Start.UTC().Format(dateFormat), item.End.UTC().Format(dateFormat),
			item.ProgressPct, boolToInt(item.Critical), string(deps),
		)
		if err != nil {
			return fmt.Errorf("inserting schedule item %s: %w", item.ID, err)
		}
	}

	if err := upsertMeta(ctx, tx, projectID, kindSchedule, fetchedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadSchedule returns the cached schedule snapshot for a project, with
// the instant it was fetched. A missing snapshot yields nil items and a
// zero time, not an error.
func (s *Store) LoadSchedule(ctx context.Context, projectID string) ([]domain.ScheduleItem, time.Time, error) {
	fetchedAt, ok, err := s.meta(ctx, projectID, kindSchedule)
	if err != nil || !ok {
		return nil, time.Time{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, start_date, end_date, progress_pct, critical, dependency_ids
		FROM schedule_items WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying schedule snapshot: %w", err)
	}
	defer rows.Close()

	var items []domain.ScheduleItem
	for rows.Next() {
		var item domain.ScheduleItem
		var start, end, deps string
		var critical int
		if err := rows.Scan(&item.ID, &item.Name, &start, &end, &item.ProgressPct, &critical, &deps); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning schedule item: %w", err)
		}
		item.Start, _ = time.Parse(dateFormat, start)
		item.End, _ = time.Parse(dateFormat, end)
		item.Critical = critical != 0
		if err := json.Unmarshal([]byte(deps), &item.DependencyIDs); err != nil {
			return nil, time.Time{}, fmt.Errorf("decoding dependency ids: %w", err)
		}
		items = append(items, item)
	}
	return items, fetchedAt, rows.Err()
}

// SaveCards replaces the card snapshot for a project.
func (s *Store) SaveCards(ctx context.Context, projectID string, cards []domain.KanbanCard, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing card snapshot: %w", err)
	}

	for i, card := range cards {
		var due, prio sql.NullString
		if card.DueDate != nil {
			due = sql.NullString{String: card.DueDate.UTC().Format(dateFormat), Valid: true}
		}
		if card.Priority != nil {
			prio = sql.NullString{String: string(*card.Priority), Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cards
				(project_id, position, id, title, description, status, due_date, priority, assignee)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			projectID, i, card.ID, card.Title, card.Description, string(card.Status),
			due, prio, card.Assignee,
		)
		if err != nil {
			return fmt.Errorf("inserting card %s: %w", card.ID, err)
		}
	}

	if err := upsertMeta(ctx, tx, projectID, kindCards, fetchedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadCards returns the cached card snapshot for a project.
func (s *Store) LoadCards(ctx context.Context, projectID string) ([]domain.KanbanCard, time.Time, error) {
	fetchedAt, ok, err := s.meta(ctx, projectID, kindCards)
	if err != nil || !ok {
		return nil, time.Time{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, status, due_date, priority, assignee
		FROM cards WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying card snapshot: %w", err)
	}
	defer rows.Close()

	var cards []domain.KanbanCard
	for rows.Next() {
		var card domain.KanbanCard
		var status string
		var due, prio sql.NullString
		if err := rows.Scan(&card.ID, &card.Title, &card.Description, &status, &due, &prio, &card.Assignee); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning card: %w", err)
		}
		card.Status = domain.CardStatus(status)
		if due.Valid {
			if t, err := time.Parse(dateFormat, due.String); err == nil {
				card.DueDate = &t
			}
		}
		if prio.Valid {
			p := domain.Priority(prio.String)
			card.Priority = &p
		}
		cards = append(cards, card)
	}
	return cards, fetchedAt, rows.Err()
}

func upsertMeta(ctx context.Context, tx *sql.Tx, projectID, kind string, fetchedAt time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (project_id, kind, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT (project_id, kind) DO UPDATE SET fetched_at = excluded.fetched_at`,
		projectID, kind, fetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording snapshot time: %w", err)
	}
	return nil
}

func (s *Store) meta(ctx context.Context, projectID, kind string) (time.Time, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM snapshot_meta WHERE project_id = ? AND kind = ?`,
		projectID, kind).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading snapshot meta: %w", err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing snapshot time: %w", err)
	}
	return t, true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
