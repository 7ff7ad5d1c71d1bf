package app

import (
	"context"

	"github.com/YugandharPise/SME-HR/internal/config"
	"github.com/YugandharPise/SME-HR/internal/messaging/kafka"
	"github.com/YugandharPise/SME-HR/internal/messaging/kafka/producer"
	"github.com/YugandharPise/SME-HR/internal/shared/connection"
	"github.com/YugandharPise/SME-HR/internal/store"

	"go.uber.org/zap"
)

// startOutboxRelay runs the outbox relay next to the API, since only the
// process that owns the store may commit to it. Without a broker no events
// are recorded and the returned repository is nil.
func startOutboxRelay(ctx context.Context, cfg *config.Config, st store.Store, logger *zap.Logger) (kafka.OutboxRepository, func(), error) {
	if !cfg.Kafka.Enabled() {
		logger.Info("kafka disabled; domain events are not published")
		return nil, func() {}, nil
	}

	writer, err := connection.ConnectKafkaWithRetry(ctx, cfg.Kafka.Broker, connectRetries, logger)
	if err != nil {
		return nil, func() {}, err
	}
	logger.Info("kafka connection established", zap.String("broker", cfg.Kafka.Broker))

	outboxRepo := kafka.NewOutboxRepository(st)

	relayCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(relayCtx, outboxRepo, writer, logger, cfg.Kafka.RelayInterval)
	}()

	stop := func() {
		cancel()
		<-done
		if err := writer.Close(); err != nil {
			logger.Warn("close kafka writer failed", zap.Error(err))
		}
	}
	return outboxRepo, stop, nil
}
