package validation

import (
	"errors"
	"strings"
)

// MissingField reports a required field that was empty after trimming.
type MissingField struct {
	Field string
}

func (e *MissingField) Error() string {
	return e.Field + ": this field is required"
}

// InvalidEmail reports an email_id that is not a usable address.
type InvalidEmail struct {
	Reason string
}

func (e *InvalidEmail) Error() string {
	return FieldEmailID + ": " + e.Reason
}

// Errors collects every field problem found in one form.
type Errors []error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual field errors to errors.Is / errors.As.
func (e Errors) Unwrap() []error {
	return e
}

// ByField maps form field names to a human-readable message for inline
// rendering next to the offending input.
func (e Errors) ByField() map[string]string {
	out := make(map[string]string, len(e))
	for _, err := range e {
		var missing *MissingField
		var invalid *InvalidEmail
		switch {
		case errors.As(err, &missing):
			out[missing.Field] = "This field is required."
		case errors.As(err, &invalid):
			out[FieldEmailID] = invalid.Reason
		}
	}
	return out
}

// EmailError returns the first email error, if any.
func (e Errors) EmailError() (*InvalidEmail, bool) {
	for _, err := range e {
		var invalid *InvalidEmail
		if errors.As(err, &invalid) {
			return invalid, true
		}
	}
	return nil, false
}
