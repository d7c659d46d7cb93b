package models

type TimesheetStatus string

const (
	TimesheetStatusDraft     TimesheetStatus = "draft"
	TimesheetStatusSubmitted TimesheetStatus = "submitted"
	TimesheetStatusApproved  TimesheetStatus = "approved"
	TimesheetStatusRejected  TimesheetStatus = "rejected"
)

var timesheetStatusHumanName = map[TimesheetStatus]string{
	TimesheetStatusDraft:     "Draft",
	TimesheetStatusSubmitted: "Pending review",
	TimesheetStatusApproved:  "Approved",
	TimesheetStatusRejected:  "Returned for changes",
}

func (s TimesheetStatus) ToHuman() string {
	if human, exist := timesheetStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsEditable reports whether entries and notes may still be replaced.
// A rejected timesheet re-opens for editing until it is resubmitted.
func (s TimesheetStatus) IsEditable() bool {
	return s == TimesheetStatusDraft || s == TimesheetStatusRejected
}

func (s TimesheetStatus) IsValid() bool {
	switch s {
	case TimesheetStatusDraft, TimesheetStatusSubmitted, TimesheetStatusApproved, TimesheetStatusRejected:
		return true
	}
	return false
}

type UserRole string

const (
	UserRoleParticipant UserRole = "PARTICIPANT"
	UserRoleAdmin       UserRole = "ADMIN"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleParticipant || r == UserRoleAdmin
}
