package store

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// ParseRole accepts only the closed role set.
func ParseRole(v string) (Role, bool) {
	switch Role(v) {
	case RoleAdmin, RoleHR, RoleEmployee:
		return Role(v), true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Role         Role   `json:"role"`
	EmployeeID   *int64 `json:"employee_id,omitempty"`
}

type Employee struct {
	ID         int64   `json:"id"`
	UserID     *int64  `json:"user_id,omitempty"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AttendanceRecord is unique per (EmployeeID, Date).
type AttendanceRecord struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	Date           string     `json:"date"`
	CheckInTime    *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime   *time.Time `json:"check_out_time,omitempty"`
	HoursWorked    float64    `json:"hours_worked"`
	LastEditBy     string     `json:"last_edit_by,omitempty"`
	LastEditReason string     `json:"last_edit_reason,omitempty"`
	LastEditAt     *time.Time `json:"last_edit_at,omitempty"`
}

type Payslip struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Period       string    `json:"period"`
	PayDate      time.Time `json:"pay_date"`
	Basic        float64   `json:"basic"`
	Allowances   float64   `json:"allowances"`
	Deductions   float64   `json:"deductions"`
	NetPay       float64   `json:"net_pay"`
	ArtifactPath string    `json:"artifact_path"`
}

// Sequences hold the last id handed out per entity type.
type Sequences struct {
	UserID       int64 `json:"user_id"`
	EmployeeID   int64 `json:"employee_id"`
	AttendanceID int64 `json:"attendance_id"`
	PayslipID    int64 `json:"payslip_id"`
}

const (
	OutboxStatusPending = "pending"
	OutboxStatusFailed  = "failed"
)

type OutboxEvent struct {
	ID            string    `json:"id"`
	RequestID     string    `json:"request_id,omitempty"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   string    `json:"aggregate_id"`
	EventType     string    `json:"event_type"`
	Topic         string    `json:"topic"`
	Payload       []byte    `json:"payload"`
	Status        string    `json:"status"`
	RetryCount    int       `json:"retry_count"`
	LastError     string    `json:"last_error,omitempty"`
	NextRetryAt   time.Time `json:"next_retry_at"`
	CreatedAt     time.Time `json:"created_at"`
}
