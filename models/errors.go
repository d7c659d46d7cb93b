package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError covers malformed entry data, a missing mandatory rejection
// reason, duplicate weeks and similar caller mistakes. Always surfaced
// synchronously, never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvalidStateError is returned when a workflow transition is attempted from a
// state that forbids it. It carries the current state and the attempted
// transition so the caller can render a precise message.
type InvalidStateError struct {
	Current   TimesheetStatus
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a timesheet in status %q", e.Attempted, e.Current)
}

func NewInvalidStateError(current TimesheetStatus, attempted string) error {
	return &InvalidStateError{Current: current, Attempted: attempted}
}

func IsInvalidStateError(err error) bool {
	var se *InvalidStateError
	return errors.As(err, &se)
}

// CapacityExceededError is informational: the template holds fewer time rows
// than the timesheet has entries. Rendering proceeds truncated.
type CapacityExceededError struct {
	Entries      int
	TemplateRows int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("template holds %d time rows, %d entries dropped", e.TemplateRows, e.Entries-e.TemplateRows)
}

// TemplateStructureError means the template is missing an expected table or
// row. Fatal for the render call only; stored data is untouched.
type TemplateStructureError struct {
	Detail string
}

func (e *TemplateStructureError) Error() string {
	return "template structure: " + e.Detail
}

func NewTemplateStructureError(format string, args ...interface{}) error {
	return &TemplateStructureError{Detail: fmt.Sprintf(format, args...)}
}

func IsTemplateStructureError(err error) bool {
	var te *TemplateStructureError
	return errors.As(err, &te)
}
