package employee

import (
	"context"
	"strconv"
	"time"

	"github.com/YugandharPise/SME-HR/internal/events"
	"github.com/YugandharPise/SME-HR/internal/messaging/kafka"
	"github.com/YugandharPise/SME-HR/internal/shared/contextutil"
	"github.com/YugandharPise/SME-HR/internal/store"
)

const aggregateType = "employee"

func newLifecycleEvent(ctx context.Context, eventType string, emp store.Employee, now time.Time) (kafka.OutboxEvent, error) {
	payload := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: emp.ID,
		Email:      emp.Email,
		Department: emp.Department,
		OccurredAt: now.UTC(),
	}
	return kafka.NewOutboxEvent(ctx,
		aggregateType,
		strconv.FormatInt(emp.ID, 10),
		eventType,
		events.EmployeeLifecycleTopic,
		payload,
	)
}
