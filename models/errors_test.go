package models

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		err := NewValidationError("duplicate entry for %s", "2023-06-05")
		require.EqualError(t, err, "duplicate entry for 2023-06-05")
		require.True(t, IsValidationError(err))
		require.False(t, IsInvalidStateError(err))

		wrapped := errors.Wrap(err, "error updating timesheet")
		require.True(t, IsValidationError(wrapped))
	})

	t.Run("invalid state", func(t *testing.T) {
		err := NewInvalidStateError(TimesheetStatusApproved, "submit")
		require.EqualError(t, err, `cannot submit a timesheet in status "approved"`)
		require.True(t, IsInvalidStateError(err))
		require.False(t, IsValidationError(err))
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		err := &CapacityExceededError{Entries: 9, TemplateRows: 7}
		require.EqualError(t, err, "template holds 7 time rows, 2 entries dropped")
	})

	t.Run("template structure", func(t *testing.T) {
		err := NewTemplateStructureError("missing %s", "word/document.xml")
		require.True(t, IsTemplateStructureError(err))
		require.True(t, IsTemplateStructureError(errors.Wrap(err, "render failed")))
	})
}

func TestTimesheetStatus(t *testing.T) {
	require.True(t, TimesheetStatusDraft.IsEditable())
	require.True(t, TimesheetStatusRejected.IsEditable())
	require.False(t, TimesheetStatusSubmitted.IsEditable())
	require.False(t, TimesheetStatusApproved.IsEditable())

	require.True(t, TimesheetStatusSubmitted.IsValid())
	require.False(t, TimesheetStatus("archived").IsValid())

	require.Equal(t, "Pending review", TimesheetStatusSubmitted.ToHuman())
	require.Equal(t, "Returned for changes", TimesheetStatusRejected.ToHuman())
}
