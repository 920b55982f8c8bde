package workflows

import (
	"errors"
	"fmt"
)

// DuplicateError indicates an add was rejected because an equivalent
// record already exists. Non-fatal; the stored list is unchanged.
type DuplicateError struct {
	Resource string
	Value    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Value)
}

// ValidationError indicates the request was rejected before any external
// call was attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrNoPendingAmbiguity is returned when an ambiguity resolution arrives
// after the pending state was cleared (resolved elsewhere or cancelled).
var ErrNoPendingAmbiguity = errors.New("no location ambiguity awaiting resolution")

// IsDuplicate reports whether err is a duplicate-record rejection.
func IsDuplicate(err error) bool {
	var dupErr *DuplicateError
	return errors.As(err, &dupErr)
}

// IsValidation reports whether err is a pre-flight validation rejection.
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
