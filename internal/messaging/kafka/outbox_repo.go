package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/YugandharPise/SME-HR/internal/shared/contextutil"
	"github.com/YugandharPise/SME-HR/internal/store"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = store.OutboxStatusPending
	OutboxStatusFailed  = store.OutboxStatusFailed

	maxErrorLength  = 500
	retryStep       = 15 * time.Second
	maxRetryBackoff = 10
)

type OutboxEvent = store.OutboxEvent

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

// OutboxRepository keeps undelivered events inside the HR snapshot. Create
// works on a commit draft so the event lands in the same commit as the change.
type OutboxRepository interface {
	Create(draft *store.Snapshot, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	store store.Store
	now   func() time.Time
}

func NewOutboxRepository(st store.Store) OutboxRepository {
	return &outboxRepository{store: st, now: time.Now}
}

// NewOutboxEvent builds a pending event carrying the request id from ctx.
func NewOutboxEvent(ctx context.Context, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s event: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       data,
		Status:        OutboxStatusPending,
	}, nil
}

func (r *outboxRepository) Create(draft *store.Snapshot, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	now := r.now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	if event.NextRetryAt.IsZero() {
		event.NextRetryAt = now
	}
	draft.Outbox = append(draft.Outbox, event)
	return nil
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	due := make([]OutboxEvent, 0, len(snap.Outbox))
	for _, e := range snap.Outbox {
		if e.NextRetryAt.After(now) {
			continue
		}
		due = append(due, e)
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].CreatedAt.Before(due[j].CreatedAt)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// MarkSent removes the event; delivered events are not kept in the snapshot.
func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.store.Commit(ctx, func(draft *store.Snapshot) error {
		draft.RemoveOutbox(id)
		return nil
	})
	return err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.store.Commit(ctx, func(draft *store.Snapshot) error {
		i := draft.OutboxIndex(id)
		if i < 0 {
			return nil
		}
		e := &draft.Outbox[i]
		e.Status = OutboxStatusFailed
		e.RetryCount++
		if len(reason) > maxErrorLength {
			reason = reason[:maxErrorLength]
		}
		e.LastError = reason
		e.NextRetryAt = r.now().UTC().Add(time.Duration(min(e.RetryCount, maxRetryBackoff)) * retryStep)
		return nil
	})
	return err
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
