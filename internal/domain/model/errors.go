package model

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrWeightTableMisconfiguration is fatal at scorecard construction.
	ErrWeightTableMisconfiguration = errors.New("weight table misconfiguration")

	// ErrScorecardNotFound is returned when no scorecard has the requested name.
	ErrScorecardNotFound = errors.New("scorecard not found")

	// Request-time errors. They are always wrapped in an *AttributeError.
	ErrMissingAttribute = errors.New("missing attribute")
	ErrInvalidValueType = errors.New("invalid attribute value type")
	ErrValueOutOfRange  = errors.New("attribute value out of range")
)

// AttributeError identifies the input attribute that caused a request to be
// rejected.
type AttributeError struct {
	Err       error
	Attribute string
	Detail    string
}

func (e *AttributeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("attribute %q: %v", e.Attribute, e.Err)
	}
	return fmt.Sprintf("attribute %q: %v: %s", e.Attribute, e.Err, e.Detail)
}

func (e *AttributeError) Unwrap() error { return e.Err }

// IsRequestError reports whether err is a per-request validation failure.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrMissingAttribute) ||
		errors.Is(err, ErrInvalidValueType) ||
		errors.Is(err, ErrValueOutOfRange)
}

func misconfigured(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrWeightTableMisconfiguration, fmt.Sprintf(format, args...))
}
