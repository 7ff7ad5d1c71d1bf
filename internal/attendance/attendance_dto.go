package attendance

import (
	"time"

	"github.com/YugandharPise/SME-HR/internal/store"
)

const unknownEmployee = "Unknown"

// EditAttendanceRequest timestamps are RFC3339; absent or empty ones keep
// the stored value.
type EditAttendanceRequest struct {
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Reason       string  `json:"reason"`
}

type AttendanceResponse struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	EmployeeName   string     `json:"employee_name,omitempty"`
	Date           string     `json:"date"`
	CheckInTime    *time.Time `json:"check_in_time"`
	CheckOutTime   *time.Time `json:"check_out_time"`
	HoursWorked    float64    `json:"hours_worked"`
	LastEditBy     string     `json:"last_edit_by,omitempty"`
	LastEditReason string     `json:"last_edit_reason,omitempty"`
	LastEditAt     *time.Time `json:"last_edit_at,omitempty"`
}

func mapToResponse(r store.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		Date:           r.Date,
		CheckInTime:    r.CheckInTime,
		CheckOutTime:   r.CheckOutTime,
		HoursWorked:    r.HoursWorked,
		LastEditBy:     r.LastEditBy,
		LastEditReason: r.LastEditReason,
		LastEditAt:     r.LastEditAt,
	}
}
