package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/forgo/datepoll/internal/database"
)

var (
	// counterMu protects the namespace counter
	counterMu sync.Mutex
	counter   int64
)

// NewSQLite opens a fresh in-memory SQLite database with the schema applied.
// It is closed when the test ends.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.OpenSQLite(ctx, database.MemoryPath)
	if err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestDB is a SurrealDB connection scoped to a unique namespace
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
}

// getSurrealConfig returns database config from environment or defaults.
// ok is false when TEST_SURREAL_HOST is unset.
func getSurrealConfig() (cfg database.Config, ok bool) {
	host := os.Getenv("TEST_SURREAL_HOST")
	if host == "" {
		return database.Config{}, false
	}

	return database.Config{
		Host:     host,
		Port:     getEnv("TEST_SURREAL_PORT", "8000"),
		User:     getEnv("TEST_SURREAL_USER", "root"),
		Password: getEnv("TEST_SURREAL_PASSWORD", "root"),
	}, true
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

// NewSurreal connects to SurrealDB in a fresh namespace with the schema
// defined. The namespace is removed when the test ends.
func NewSurreal(t *testing.T) *TestDB {
	t.Helper()

	cfg, ok := getSurrealConfig()
	if !ok {
		t.Skip("testdb: TEST_SURREAL_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	tdb := &TestDB{DB: db, Namespace: cfg.Namespace, Database: cfg.Database}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close removes the test namespace and closes the connection
func (tdb *TestDB) Close() {
	if tdb.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = tdb.DB.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace), nil)
	_ = tdb.DB.Close()
	tdb.DB = nil
}
