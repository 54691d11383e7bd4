// Package service implements the business logic of the date-poll API.
//
// EventService is the single entry point. It validates requests with the
// model package, looks events up through an EventRepository and performs
// every mutation inside EventRepository.InTx.
//
// # Operations
//
//   - Create: expand start..end into candidate dates and store them with the event
//   - Get / Delete: look an event up by its unique URL
//   - SubmitResponses / ReplaceResponses: full overwrite of one participant's answers
//   - GetResults: per-date responses ordered by participant name
//
// # Replacing Responses
//
// All items are validated and resolved to candidate dates before anything is
// written. The delete of the participant's old answers and the insert of the
// new ones share one transaction, so a failure leaves the previous set intact:
//
//	err = s.repo.InTx(ctx, func(tx EventTx) error {
//	    if err := tx.DeleteParticipantResponses(ctx, event.ID, name); err != nil {
//	        return err
//	    }
//	    return tx.InsertResponses(ctx, event.ID, responses)
//	})
//
// Two concurrent replaces for the same participant are last-commit-wins.
//
// # Error Handling
//
// Lookup and mapping errors are package-level sentinels (ErrEventNotFound,
// ErrUnknownDate, ...). Validation errors come from the model package.
// Storage errors are wrapped with context and surface as 500s.
package service
