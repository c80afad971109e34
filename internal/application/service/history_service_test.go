package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/garyjia/bill-review/internal/domain/event"
)

type mockHistoryRepo struct {
	createFunc func(ctx context.Context, history *entity.BillHistory) error
	created    []*entity.BillHistory
}

func (m *mockHistoryRepo) Create(ctx context.Context, history *entity.BillHistory) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, history); err != nil {
			return err
		}
	}
	m.created = append(m.created, history)
	return nil
}

func (m *mockHistoryRepo) GetByBillID(ctx context.Context, billID string) ([]*entity.BillHistory, error) {
	var out []*entity.BillHistory
	for _, h := range m.created {
		if h.BillID == billID {
			out = append(out, h)
		}
	}
	return out, nil
}

func TestHistoryService_Record(t *testing.T) {
	repo := &mockHistoryRepo{}
	svc := NewHistoryService(repo, &mockLogger{})

	evt := event.NewEvent(event.TypeBillRefused, "1234", map[string]interface{}{
		event.KeyActor:          "admin@test.tld",
		event.KeyPreviousStatus: "pending",
		event.KeyNewStatus:      "refused",
		event.KeyComment:        "illisible",
	})
	require.NoError(t, svc.Record(context.Background(), evt))

	entries, err := svc.History(context.Background(), "1234")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ActionRefuse, entries[0].ActionType)
	assert.Equal(t, "admin@test.tld", entries[0].ActorEmail)
	assert.Equal(t, "pending", entries[0].PreviousStatus)
	assert.Equal(t, "refused", entries[0].NewStatus)
	assert.Equal(t, "illisible", entries[0].ActionData)
	assert.Equal(t, evt.Timestamp, entries[0].Timestamp)
}

func TestHistoryService_RecordErrors(t *testing.T) {
	repo := &mockHistoryRepo{
		createFunc: func(ctx context.Context, history *entity.BillHistory) error {
			return errors.New("disk full")
		},
	}
	logger := &mockLogger{}
	svc := NewHistoryService(repo, logger)

	err := svc.Record(context.Background(), event.NewEvent(event.TypeBillSubmitted, "1", nil))
	assert.Error(t, err)
	assert.Equal(t, 1, logger.errorCount())

	err = svc.Record(context.Background(), event.NewEvent(event.Type("bill.archived"), "1", nil))
	assert.Error(t, err)
}
