package consumer

import (
	"context"
	"encoding/json"

	"github.com/YugandharPise/SME-HR/internal/events"

	"go.uber.org/zap"
)

// ArtifactEnsurer renders whatever payslip artifacts of a period are missing.
type ArtifactEnsurer interface {
	EnsureArtifacts(ctx context.Context, period string) (int, error)
}

// ConsumePayrollRunCompleted makes sure every payslip of a finished run has
// its PDF. Messages are committed only after the artifacts exist, so a crash
// replays the period; rendering is idempotent.
func ConsumePayrollRunCompleted(
	ctx context.Context,
	reader MessageReader,
	ensurer ArtifactEnsurer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_run")
	log.Info("payroll run consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll run consumer stopped")
				return
			}
			log.Error("fetch payroll run message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.Period == "" {
			log.Error("decode payroll run event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		rendered, err := ensurer.EnsureArtifacts(ctx, event.Period)
		if err != nil {
			log.Error("ensure payslip artifacts failed",
				zap.String("period", event.Period),
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll run message failed", zap.Error(err))
			continue
		}

		log.Info("payslip artifacts ensured",
			zap.String("period", event.Period),
			zap.Int("payslips", event.PayslipCount),
			zap.Int("rendered", rendered),
			zap.String("request_id", event.RequestID),
		)
	}
}
