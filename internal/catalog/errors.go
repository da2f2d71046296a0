package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad matches any *LoadError.
	ErrLoad = errors.New("catalog: load failed")
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("catalog: item not found")
)

// LoadError is returned when the catalog document is unreachable or cannot be parsed.
type LoadError struct {
	Source string
	// Status holds the HTTP status for remote sources that answered with a non-2xx code.
	Status int
	Err    error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("catalog: load %s: status %d", e.Source, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("catalog: load %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("catalog: load %s failed", e.Source)
	}
}

// Unwrap exposes the underlying cause.
func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrLoad) match every LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// NotFoundReason tells apart a malformed id from an id that matches nothing.
type NotFoundReason int

const (
	// ReasonInvalidID covers a missing, non-numeric, or non-positive id.
	ReasonInvalidID NotFoundReason = iota + 1
	// ReasonUnknownID covers a well-formed id with no matching item.
	ReasonUnknownID
)

// NotFoundError is returned by id lookups that cannot resolve to an item.
type NotFoundError struct {
	// Raw is the id exactly as it was received.
	Raw    string
	Reason NotFoundReason
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Reason == ReasonInvalidID {
		return fmt.Sprintf("catalog: invalid item id %q", e.Raw)
	}
	return fmt.Sprintf("catalog: item %q not found", e.Raw)
}

// Is lets errors.Is(err, ErrNotFound) match every NotFoundError.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
