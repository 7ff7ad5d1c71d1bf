package events

import "time"

const AttendanceTopic = "hr.attendance.v1"

const (
	AttendanceCheckedIn  = "attendance.checked_in"
	AttendanceCheckedOut = "attendance.checked_out"
	AttendanceEdited     = "attendance.edited"
)

type AttendanceEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	RecordID    int64     `json:"record_id"`
	EmployeeID  int64     `json:"employee_id"`
	Date        string    `json:"date"`
	HoursWorked float64   `json:"hours_worked"`
	EditedBy    string    `json:"edited_by,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
