package app

import (
	"context"
	"errors"
	"sync"

	"github.com/YugandharPise/SME-HR/internal/bootstrap"
	"github.com/YugandharPise/SME-HR/internal/config"
	"github.com/YugandharPise/SME-HR/internal/events"
	"github.com/YugandharPise/SME-HR/internal/messaging/kafka/consumer"
	"github.com/YugandharPise/SME-HR/internal/payroll"
	"github.com/YugandharPise/SME-HR/internal/store"

	"go.uber.org/zap"
)

// RunConsumer reads domain events until ctx is cancelled. It only ever reads
// the store; the API process stays its single writer.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger = logger.Named("app.consumer")

	if !cfg.Kafka.Enabled() {
		return errors.New("KAFKA_BROKER is required")
	}
	if cfg.Store.Driver == "memory" {
		return errors.New("consumer needs a shared store; set STORE_DRIVER to file or postgres")
	}

	persister, closePersister, err := openPersister(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePersister()
	st := store.ReadOnly(persister)

	artifacts, err := payroll.NewDirArtifactStore(cfg.Payroll.ArtifactDir)
	if err != nil {
		return err
	}
	payrollService := payroll.NewService(
		st,
		payroll.NewRepository(st),
		payroll.FlatRate{Rate: cfg.Payroll.TaxRate},
		payroll.NewPDFRenderer(),
		artifacts,
		logger,
	)
	auditLogger := bootstrap.NewStdoutAuditLogger(logger)

	payrollReader := consumer.NewReader(cfg.Kafka.Broker, cfg.Kafka.ConsumerGroup, events.PayrollRunCompletedTopic)
	defer payrollReader.Close()
	lifecycleReader := consumer.NewReader(cfg.Kafka.Broker, cfg.Kafka.ConsumerGroup+"-audit", events.EmployeeLifecycleTopic)
	defer lifecycleReader.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumePayrollRunCompleted(ctx, payrollReader, payrollService, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, auditLogger, logger)
	}()

	<-ctx.Done()
	logger.Info("consumer shutting down")
	wg.Wait()
	return nil
}
