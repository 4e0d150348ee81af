package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")

// ConflictError rejects a create or update whose interval overlaps an
// existing item. The mutation is not applied; how it is surfaced is up to
// the caller.
type ConflictError struct {
	Title string
	Start time.Time
	End   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time conflict with %q (%v - %v)", e.Title, e.Start, e.End)
}

// ValidationError rejects malformed input before it reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
