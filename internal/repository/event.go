package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/forgo/datepoll/internal/database"
	"github.com/forgo/datepoll/internal/model"
	"github.com/forgo/datepoll/internal/service"
)

// EventRepository handles event data access on SQLite
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new SQLite-backed event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// InTx runs fn inside one SQLite transaction
func (r *EventRepository) InTx(ctx context.Context, fn func(tx service.EventTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", database.SQLiteError(err))
	}

	if err := fn(&sqlEventTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", database.SQLiteError(err))
	}
	return nil
}

// GetByURL retrieves an event and its dates by unique URL
func (r *EventRepository) GetByURL(ctx context.Context, uniqueURL string) (*model.Event, error) {
	query := `SELECT id, unique_url, name, description, created_at FROM events WHERE unique_url = ?`

	var (
		id        int64
		createdAt int64
		event     model.Event
	)
	err := r.db.QueryRowContext(ctx, query, uniqueURL).
		Scan(&id, &event.UniqueURL, &event.Name, &event.Description, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", database.SQLiteError(err))
	}
	event.ID = formatID(id)
	event.CreatedAt = fromMillis(createdAt)

	dates, err := r.getDates(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Dates = dates
	return &event, nil
}

func (r *EventRepository) getDates(ctx context.Context, eventID int64) ([]model.CandidateDate, error) {
	query := `SELECT id, candidate_date FROM dates WHERE event_id = ? ORDER BY candidate_date ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dates: %w", database.SQLiteError(err))
	}
	defer rows.Close()

	dates := make([]model.CandidateDate, 0)
	for rows.Next() {
		var (
			id  int64
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", database.SQLiteError(err))
		}
		d, err := model.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt candidate date %d: %w", id, err)
		}
		dates = append(dates, model.CandidateDate{
			ID:      formatID(id),
			EventID: formatID(eventID),
			Date:    d,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dates: %w", database.SQLiteError(err))
	}
	return dates, nil
}

// ListResponses returns every response on the event's dates in insertion order
func (r *EventRepository) ListResponses(ctx context.Context, eventID string) ([]*model.Response, error) {
	id, err := parseID(eventID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT r.id, r.date_id, r.participant_name, r.status, r.comment
		FROM responses r
		JOIN dates d ON d.id = r.date_id
		WHERE d.event_id = ?
		ORDER BY r.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", database.SQLiteError(err))
	}
	defer rows.Close()

	responses := make([]*model.Response, 0)
	for rows.Next() {
		var (
			respID, dateID int64
			resp           model.Response
		)
		if err := rows.Scan(&respID, &dateID, &resp.ParticipantName, &resp.Status, &resp.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", database.SQLiteError(err))
		}
		resp.ID = formatID(respID)
		resp.DateID = formatID(dateID)
		responses = append(responses, &resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", database.SQLiteError(err))
	}
	return responses, nil
}

// sqlEventTx implements service.EventTx on a *sql.Tx
type sqlEventTx struct {
	tx *sql.Tx
}

func (t *sqlEventTx) CreateEvent(ctx context.Context, event *model.Event) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO events (unique_url, name, description, created_at) VALUES (?, ?, ?, ?)`,
		event.UniqueURL, event.Name, event.Description, toMillis(event.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", database.SQLiteError(err))
	}
	eventID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read event id: %w", database.SQLiteError(err))
	}

	stmt, err := t.tx.PrepareContext(ctx, `INSERT INTO dates (event_id, candidate_date) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare date insert: %w", database.SQLiteError(err))
	}
	defer stmt.Close()

	for i := range event.Dates {
		res, err := stmt.ExecContext(ctx, eventID, model.FormatDate(event.Dates[i].Date))
		if err != nil {
			return fmt.Errorf("failed to insert date: %w", database.SQLiteError(err))
		}
		dateID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read date id: %w", database.SQLiteError(err))
		}
		event.Dates[i].ID = formatID(dateID)
		event.Dates[i].EventID = formatID(eventID)
	}

	event.ID = formatID(eventID)
	return nil
}

func (t *sqlEventTx) DeleteEvent(ctx context.Context, eventID string) error {
	id, err := parseID(eventID)
	if err != nil {
		return err
	}

	// Children first, then the event
	queries := []string{
		`DELETE FROM responses WHERE date_id IN (SELECT id FROM dates WHERE event_id = ?)`,
		`DELETE FROM dates WHERE event_id = ?`,
		`DELETE FROM events WHERE id = ?`,
	}
	for _, q := range queries {
		if _, err := t.tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("failed to delete event: %w", database.SQLiteError(err))
		}
	}
	return nil
}

func (t *sqlEventTx) DeleteParticipantResponses(ctx context.Context, eventID, participant string) error {
	id, err := parseID(eventID)
	if err != nil {
		return err
	}

	query := `
		DELETE FROM responses
		WHERE participant_name = ?
		AND date_id IN (SELECT id FROM dates WHERE event_id = ?)
	`
	if _, err := t.tx.ExecContext(ctx, query, participant, id); err != nil {
		return fmt.Errorf("failed to delete responses: %w", database.SQLiteError(err))
	}
	return nil
}

func (t *sqlEventTx) InsertResponses(ctx context.Context, eventID string, responses []*model.Response) error {
	if len(responses) == 0 {
		return nil
	}

	stmt, err := t.tx.PrepareContext(ctx,
		`INSERT INTO responses (date_id, participant_name, status, comment) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare response insert: %w", database.SQLiteError(err))
	}
	defer stmt.Close()

	for _, resp := range responses {
		dateID, err := parseID(resp.DateID)
		if err != nil {
			return err
		}
		res, err := stmt.ExecContext(ctx, dateID, resp.ParticipantName, int(resp.Status), resp.Comment)
		if err != nil {
			return fmt.Errorf("failed to insert response: %w", database.SQLiteError(err))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read response id: %w", database.SQLiteError(err))
		}
		resp.ID = formatID(id)
	}
	return nil
}
