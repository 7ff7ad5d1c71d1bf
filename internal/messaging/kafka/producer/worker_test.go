package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/YugandharPise/SME-HR/internal/messaging/kafka"
	"github.com/YugandharPise/SME-HR/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	fail map[string]error
	sent []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := w.fail[string(m.Key)]; err != nil {
			return err
		}
		w.sent = append(w.sent, m)
	}
	return nil
}

func headerValue(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	ok := kafka.OutboxEvent{ID: "o-1", RequestID: "req-1", AggregateType: "employee", AggregateID: "7", EventType: "employee.created", Topic: "hr.employee.lifecycle.v1", Payload: []byte(`{}`)}
	bad := kafka.OutboxEvent{ID: "o-2", AggregateType: "employee", AggregateID: "8", EventType: "employee.deleted", Topic: "hr.employee.lifecycle.v1", Payload: []byte(`{}`)}

	writer := &fakeWriter{fail: map[string]error{"8": errors.New("broker down")}}

	repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{ok, bad}, nil)
	repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "o-2", "broker down").Return(nil)

	sent, err := ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, writer.sent, 1)
	msg := writer.sent[0]
	assert.Equal(t, "hr.employee.lifecycle.v1", msg.Topic)
	assert.Equal(t, "7", string(msg.Key))
	assert.Equal(t, "employee.created", headerValue(msg, "event_type"))
	assert.Equal(t, "req-1", headerValue(msg, "request_id"))
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("read failed"))

	sent, err := ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
	assert.EqualError(t, err, "read failed")
	assert.Zero(t, sent)
}
