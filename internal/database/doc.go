// Package database provides the storage backends for datepoll.
//
// Two backends are supported:
//   - SQLite (default): a *sql.DB opened by OpenSQLite with the embedded
//     schema migrations applied. Transactions are real connection-level
//     transactions.
//   - SurrealDB: the Database interface below, implemented by SurrealDB.
//
// # SurrealDB Transactions
//
// IMPORTANT: SurrealDB transactions here are BATCH-BASED, not connection-level.
// Statements are accumulated in an AtomicBatch and sent as one
// BEGIN TRANSACTION / COMMIT TRANSACTION block. This means:
//   - No reads see the batch's own writes before commit
//   - Discarding the batch is the rollback (nothing was sent)
//   - All statements succeed or fail together at commit time
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
