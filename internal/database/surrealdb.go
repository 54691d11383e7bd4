package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// surrealSchema defines the event/date/response tables. Re-running it is a no-op.
const surrealSchema = `
DEFINE TABLE IF NOT EXISTS event SCHEMAFULL;
DEFINE FIELD IF NOT EXISTS unique_url ON event TYPE string;
DEFINE FIELD IF NOT EXISTS name ON event TYPE string ASSERT string::len($value) > 0 AND string::len($value) <= 100;
DEFINE FIELD IF NOT EXISTS description ON event TYPE string ASSERT string::len($value) <= 200;
DEFINE FIELD IF NOT EXISTS created_at ON event TYPE datetime;
DEFINE INDEX IF NOT EXISTS event_unique_url ON event FIELDS unique_url UNIQUE;

DEFINE TABLE IF NOT EXISTS event_date SCHEMAFULL;
DEFINE FIELD IF NOT EXISTS event ON event_date TYPE record<event>;
DEFINE FIELD IF NOT EXISTS candidate_date ON event_date TYPE string;
DEFINE INDEX IF NOT EXISTS event_date_unique ON event_date FIELDS event, candidate_date UNIQUE;

DEFINE TABLE IF NOT EXISTS response SCHEMAFULL;
DEFINE FIELD IF NOT EXISTS event ON response TYPE record<event>;
DEFINE FIELD IF NOT EXISTS date ON response TYPE record<event_date>;
DEFINE FIELD IF NOT EXISTS participant_name ON response TYPE string ASSERT string::len($value) > 0 AND string::len($value) <= 50;
DEFINE FIELD IF NOT EXISTS status ON response TYPE int ASSERT $value >= 0 AND $value <= 3;
DEFINE FIELD IF NOT EXISTS comment ON response TYPE string ASSERT string::len($value) <= 100;
DEFINE FIELD IF NOT EXISTS batch ON response TYPE int;
DEFINE FIELD IF NOT EXISTS seq ON response TYPE int;
DEFINE INDEX IF NOT EXISTS response_participant ON response FIELDS event, participant_name;
`

// SurrealDB implements the Database interface for SurrealDB
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates a new SurrealDB instance
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
	}
}

// Connect establishes a connection to SurrealDB and defines the schema
func (s *SurrealDB) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	_, err = db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	})
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db

	if err := s.Execute(ctx, surrealSchema, nil); err != nil {
		_ = s.Close()
		s.db = nil
		return fmt.Errorf("define schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SurrealDB) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ping checks the database connection
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query executes a query and returns results
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

// QueryOne executes a query and returns a single result
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	// Unwrap {status: "OK", result: [...]}
	first := results[0]
	if resp, ok := first.(map[string]interface{}); ok {
		if resultData, ok := resp["result"].([]interface{}); ok {
			if len(resultData) == 0 {
				return nil, ErrNotFound
			}
			return resultData[0], nil
		}
		return resp["result"], nil
	}

	return first, nil
}

// Execute runs a query without returning results
func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}
