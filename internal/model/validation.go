package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so errors match what the client sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RequireFields checks the validate tags on a request struct and returns the
// first failing field as a *FieldError wrapping ErrMissingField or
// ErrFieldTooLong. Fields are checked in declaration order.
func RequireFields(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	first := verrs[0]
	if first.Tag() == "max" {
		return &FieldError{Field: first.Field(), Err: ErrFieldTooLong}
	}
	return &FieldError{Field: first.Field(), Err: ErrMissingField}
}

// StatusInRange rejects anything outside 0..3
func StatusInRange(status int) error {
	if !ResponseStatus(status).Valid() {
		return fmt.Errorf("%w, got %d", ErrInvalidStatus, status)
	}
	return nil
}

// Parse validates a single response item and returns its calendar date and status.
func (it ResponseItem) Parse() (time.Time, ResponseStatus, error) {
	if it.Date == "" || it.Status == nil {
		return time.Time{}, 0, ErrInvalidItem
	}
	date, err := ParseDate(it.Date)
	if err != nil {
		return time.Time{}, 0, err
	}
	if err := StatusInRange(*it.Status); err != nil {
		return time.Time{}, 0, err
	}
	if utf8.RuneCountInString(it.Comment) > MaxCommentLength {
		return time.Time{}, 0, &FieldError{Field: "comment", Err: ErrFieldTooLong}
	}
	return date, ResponseStatus(*it.Status), nil
}
