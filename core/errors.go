package core

import (
	"strings"

	"github.com/pkg/errors"
)

// FieldError is a problem with one input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is an invalid input. It maps to a 400 with the field errors as body.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

// RequiredFields returns a ValidationError for every named field whose value is blank.
// Arguments go in (name, value) pairs. Returns nil when all are set.
func RequiredFields(pairs ...string) error {
	var flds []FieldError
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			flds = append(flds, FieldError{Field: pairs[i], Error: "this field is required"})
		}
	}
	if flds == nil {
		return nil
	}
	return NewValidationError(errors.New("missing fields"), flds...)
}

func (err ValidationError) Error() string {
	if len(err.Fields) == 0 {
		if err.Err == nil {
			return ""
		}
		return err.Err.Error()
	}
	names := make([]string, 0, len(err.Fields))
	for _, fErr := range err.Fields {
		names = append(names, fErr.Field+": "+fErr.Error)
	}
	msg := strings.Join(names, ", ")
	if err.Err != nil {
		msg = err.Err.Error() + ": " + msg
	}
	return msg
}

// FieldMap returns the field errors keyed by field name, or nil when there are none.
func (err ValidationError) FieldMap() map[string]string {
	if len(err.Fields) == 0 {
		return nil
	}
	flds := make(map[string]string, len(err.Fields))
	for _, fErr := range err.Fields {
		flds[fErr.Field] = fErr.Error
	}
	return flds
}

// shutdown is an error the app cannot recover from; the API server stops on it.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
