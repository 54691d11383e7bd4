package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/datepoll/internal/database"
	"github.com/forgo/datepoll/internal/model"
	"github.com/forgo/datepoll/internal/service"
)

// SurrealEventRepository handles event data access on SurrealDB.
// Record keys are client-generated UUIDs so a whole write can be sent as
// one batch without reading ids back.
type SurrealEventRepository struct {
	db database.Database
}

// NewSurrealEventRepository creates a new SurrealDB-backed event repository
func NewSurrealEventRepository(db database.Database) *SurrealEventRepository {
	return &SurrealEventRepository{db: db}
}

// InTx collects fn's writes and commits them as one transaction block.
// Returning an error from fn discards the batch.
func (r *SurrealEventRepository) InTx(ctx context.Context, fn func(tx service.EventTx) error) error {
	tx := &surrealEventTx{batch: database.NewAtomicBatch(), now: time.Now}
	if err := fn(tx); err != nil {
		return err
	}
	slog.Debug("committing batch", slog.Int("statements", tx.batch.Len()))
	if err := tx.batch.Execute(ctx, r.db); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByURL retrieves an event and its dates by unique URL
func (r *SurrealEventRepository) GetByURL(ctx context.Context, uniqueURL string) (*model.Event, error) {
	query := `
		SELECT meta::id(id) AS id, unique_url, name, description, created_at
		FROM event WHERE unique_url = $unique_url LIMIT 1
	`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"unique_url": uniqueURL})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected event format", database.ErrQuery)
	}
	event := &model.Event{
		ID:          getString(data, "id"),
		UniqueURL:   getString(data, "unique_url"),
		Name:        getString(data, "name"),
		Description: getString(data, "description"),
		CreatedAt:   parseTime(data["created_at"]),
	}

	dates, err := r.getDates(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Dates = dates
	return event, nil
}

func (r *SurrealEventRepository) getDates(ctx context.Context, eventID string) ([]model.CandidateDate, error) {
	query := `
		SELECT meta::id(id) AS id, candidate_date FROM event_date
		WHERE event = type::thing("event", $event)
		ORDER BY candidate_date ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"event": eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to get dates: %w", err)
	}

	records := extractQueryResults(result)
	dates := make([]model.CandidateDate, 0, len(records))
	for _, rec := range records {
		data, ok := rec.(map[string]interface{})
		if !ok {
			continue
		}
		d, err := model.ParseDate(getString(data, "candidate_date"))
		if err != nil {
			return nil, fmt.Errorf("corrupt candidate date: %w", err)
		}
		dates = append(dates, model.CandidateDate{
			ID:      getString(data, "id"),
			EventID: eventID,
			Date:    d,
		})
	}
	return dates, nil
}

// ListResponses returns every response on the event in insertion order
func (r *SurrealEventRepository) ListResponses(ctx context.Context, eventID string) ([]*model.Response, error) {
	query := `
		SELECT meta::id(id) AS id, meta::id(date) AS date_id, participant_name, status, comment, batch, seq
		FROM response
		WHERE event = type::thing("event", $event)
		ORDER BY batch ASC, seq ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"event": eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	records := extractQueryResults(result)
	responses := make([]*model.Response, 0, len(records))
	for _, rec := range records {
		data, ok := rec.(map[string]interface{})
		if !ok {
			continue
		}
		responses = append(responses, &model.Response{
			ID:              getString(data, "id"),
			DateID:          getString(data, "date_id"),
			ParticipantName: getString(data, "participant_name"),
			Status:          model.ResponseStatus(getInt(data, "status")),
			Comment:         getString(data, "comment"),
		})
	}
	return responses, nil
}

// surrealEventTx queues statements on an AtomicBatch
type surrealEventTx struct {
	batch *database.AtomicBatch
	now   func() time.Time
}

func (t *surrealEventTx) CreateEvent(ctx context.Context, event *model.Event) error {
	event.ID = uuid.NewString()
	t.batch.Add(`
		CREATE type::thing("event", $id) SET
			unique_url = $unique_url,
			name = $name,
			description = $description,
			created_at = $created_at
	`, map[string]interface{}{
		"id":          event.ID,
		"unique_url":  event.UniqueURL,
		"name":        event.Name,
		"description": event.Description,
		"created_at":  event.CreatedAt,
	})

	for i := range event.Dates {
		event.Dates[i].ID = uuid.NewString()
		event.Dates[i].EventID = event.ID
		t.batch.Add(`
			CREATE type::thing("event_date", $id) SET
				event = type::thing("event", $event),
				candidate_date = $candidate_date
		`, map[string]interface{}{
			"id":             event.Dates[i].ID,
			"event":          event.ID,
			"candidate_date": model.FormatDate(event.Dates[i].Date),
		})
	}
	return nil
}

func (t *surrealEventTx) DeleteEvent(ctx context.Context, eventID string) error {
	vars := map[string]interface{}{"event": eventID}
	t.batch.
		Add(`DELETE response WHERE event = type::thing("event", $event)`, vars).
		Add(`DELETE event_date WHERE event = type::thing("event", $event)`, vars).
		Add(`DELETE type::thing("event", $event)`, vars)
	return nil
}

func (t *surrealEventTx) DeleteParticipantResponses(ctx context.Context, eventID, participant string) error {
	t.batch.Add(
		`DELETE response WHERE event = type::thing("event", $event) AND participant_name = $participant_name`,
		map[string]interface{}{"event": eventID, "participant_name": participant},
	)
	return nil
}

func (t *surrealEventTx) InsertResponses(ctx context.Context, eventID string, responses []*model.Response) error {
	batch := t.now().UnixNano()
	for i, resp := range responses {
		resp.ID = uuid.NewString()
		t.batch.Add(`
			CREATE type::thing("response", $id) SET
				event = type::thing("event", $event),
				date = type::thing("event_date", $date),
				participant_name = $participant_name,
				status = $status,
				comment = $comment,
				batch = $batch,
				seq = $seq
		`, map[string]interface{}{
			"id":               resp.ID,
			"event":            eventID,
			"date":             resp.DateID,
			"participant_name": resp.ParticipantName,
			"status":           int(resp.Status),
			"comment":          resp.Comment,
			"batch":            batch,
			"seq":              i,
		})
	}
	return nil
}
