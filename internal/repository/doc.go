// Package repository implements service.EventRepository on two backends.
//
// EventRepository stores events in SQLite through database/sql and the
// modernc.org/sqlite driver. It is the default backend. Internal ids are
// INTEGER primary keys and foreign keys cascade on delete.
//
// SurrealEventRepository stores the same aggregate in SurrealDB through
// database.Database. Record keys are generated client-side so every write
// inside InTx is queued on a database.AtomicBatch and sent as one
// BEGIN/COMMIT block.
//
// # Query Patterns
//
//   - Parameterized queries only ($variable for SurrealQL, ? for SQLite)
//   - type::thing() for record links, meta::id() to read keys back
//   - Responses keep insertion order (autoincrement id, or batch then seq)
//
// # Example Usage
//
//	repo := NewEventRepository(db)
//	event, err := repo.GetByURL(ctx, uniqueURL)
//	if err != nil {
//	    return err
//	}
//	if event == nil {
//	    // not found
//	}
package repository
