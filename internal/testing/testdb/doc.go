// Package testdb provides test database utilities for datepoll.
//
// # SQLite
//
// Every call to NewSQLite returns a new private in-memory database with all
// migrations applied, so tests can run in parallel without sharing rows:
//
//	db := testdb.NewSQLite(t) // closed via t.Cleanup
//
// # SurrealDB
//
// NewSurreal connects to the server named by TEST_SURREAL_HOST
// (TEST_SURREAL_PORT, TEST_SURREAL_USER and TEST_SURREAL_PASSWORD are
// optional) and isolates the test in its own namespace:
//
//	tdb := testdb.NewSurreal(t) // skipped when TEST_SURREAL_HOST is unset
//	repo := repository.NewSurrealEventRepository(tdb.DB)
package testdb
