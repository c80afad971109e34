package service

import (
	"context"
	"fmt"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/garyjia/bill-review/internal/domain/event"
)

// HistoryService records bill events as an audit trail
type HistoryService interface {
	// Record stores one history entry for a bill event
	Record(ctx context.Context, evt *event.Event) error

	// History returns the trail of a bill, oldest first
	History(ctx context.Context, billID string) ([]*entity.BillHistory, error)
}

type historyServiceImpl struct {
	historyRepo port.HistoryRepository
	logger      Logger
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(historyRepo port.HistoryRepository, logger Logger) HistoryService {
	return &historyServiceImpl{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

func (s *historyServiceImpl) Record(ctx context.Context, evt *event.Event) error {
	action, err := actionFor(evt.Type)
	if err != nil {
		return err
	}

	history := &entity.BillHistory{
		BillID:         evt.BillID,
		ActorEmail:     evt.GetPayloadString(event.KeyActor),
		PreviousStatus: evt.GetPayloadString(event.KeyPreviousStatus),
		NewStatus:      evt.GetPayloadString(event.KeyNewStatus),
		ActionType:     action,
		ActionData:     evt.GetPayloadString(event.KeyComment),
		Timestamp:      evt.Timestamp,
	}

	if err := s.historyRepo.Create(ctx, history); err != nil {
		s.logger.Error("Failed to record bill history", "error", err, "bill_id", evt.BillID, "event_type", evt.Type)
		return fmt.Errorf("create history: %w", err)
	}
	return nil
}

func (s *historyServiceImpl) History(ctx context.Context, billID string) ([]*entity.BillHistory, error) {
	entries, err := s.historyRepo.GetByBillID(ctx, billID)
	if err != nil {
		s.logger.Error("Failed to get bill history", "error", err, "bill_id", billID)
		return nil, err
	}
	return entries, nil
}

func actionFor(eventType event.Type) (string, error) {
	switch eventType {
	case event.TypeBillSubmitted:
		return entity.ActionSubmit, nil
	case event.TypeBillAccepted:
		return entity.ActionAccept, nil
	case event.TypeBillRefused:
		return entity.ActionRefuse, nil
	default:
		return "", fmt.Errorf("unsupported event type: %s", eventType)
	}
}
