package events

import "time"

const PayrollRunCompletedTopic = "hr.payroll.run.completed.v1"

const PayrollRunCompleted = "payroll.run_completed"

// PayrollRunCompletedEvent tells the consumer which period's payslip
// artifacts to make sure exist.
type PayrollRunCompletedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	Period       string    `json:"period"`
	PayslipCount int       `json:"payslip_count"`
	RequestedBy  int64     `json:"requested_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
