package handler

import (
	"errors"
	"net/http"

	"github.com/forgo/datepoll/internal/model"
	"github.com/forgo/datepoll/internal/service"
)

// MapServiceError converts a service error to an ErrorResponse.
// Anything unrecognised becomes a generic 500.
func MapServiceError(err error) *model.ErrorResponse {
	if err == nil {
		return nil
	}

	var resp *model.ErrorResponse
	if errors.As(err, &resp) {
		return resp
	}

	switch {
	// ===== Validation Errors → 400 =====
	case errors.Is(err, model.ErrMissingField),
		errors.Is(err, model.ErrFieldTooLong),
		errors.Is(err, model.ErrBadDateFormat),
		errors.Is(err, model.ErrInvalidRange),
		errors.Is(err, model.ErrRangeTooLarge),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrInvalidItem):
		return model.NewBadRequestError(err.Error())

	// ===== Response Errors → 400 =====
	case errors.Is(err, service.ErrUnknownDate),
		errors.Is(err, service.ErrDuplicateDate):
		return model.NewBadRequestError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrNoCandidateDates):
		return &model.ErrorResponse{Status: http.StatusNotFound, Message: service.ErrNoCandidateDates.Error()}

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}
