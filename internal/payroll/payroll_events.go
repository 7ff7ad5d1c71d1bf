package payroll

import (
	"context"
	"time"

	"github.com/YugandharPise/SME-HR/internal/events"
	"github.com/YugandharPise/SME-HR/internal/messaging/kafka"
	"github.com/YugandharPise/SME-HR/internal/shared/contextutil"
)

const aggregateType = "payroll_run"

func newRunCompletedEvent(ctx context.Context, period string, count int, requestedBy int64, now time.Time) (kafka.OutboxEvent, error) {
	payload := events.PayrollRunCompletedEvent{
		EventType:    events.PayrollRunCompleted,
		RequestID:    contextutil.GetRequestID(ctx),
		Period:       period,
		PayslipCount: count,
		RequestedBy:  requestedBy,
		OccurredAt:   now.UTC(),
	}
	return kafka.NewOutboxEvent(ctx,
		aggregateType,
		period,
		events.PayrollRunCompleted,
		events.PayrollRunCompletedTopic,
		payload,
	)
}
