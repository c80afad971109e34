package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/domain/bill"
	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/garyjia/bill-review/internal/domain/event"
	"github.com/garyjia/bill-review/internal/domain/workflow"
)

// DefaultBatchLimit bounds concurrent store updates in DecideMany
const DefaultBatchLimit = 4

// Decision is an admin verdict on a pending bill
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionRefuse Decision = "refuse"
)

// Trigger maps a decision to its lifecycle trigger
func (d Decision) Trigger() (workflow.Trigger, error) {
	switch d {
	case DecisionAccept:
		return workflow.TriggerAccept, nil
	case DecisionRefuse:
		return workflow.TriggerRefuse, nil
	default:
		return "", fmt.Errorf("unknown decision: %q", d)
	}
}

// DecisionResult is the outcome of one bill in a batch decision
type DecisionResult struct {
	BillID string      `json:"billId"`
	Bill   entity.Bill `json:"bill"`
	Err    error       `json:"-"`
}

// ReviewService drives the admin review queue
type ReviewService interface {
	// Accept moves a pending bill to accepted and persists it.
	// Navigation to the dashboard happens whatever the update outcome.
	Accept(ctx context.Context, actor entity.Session, b entity.Bill, comment string, navigate port.Navigator) (entity.Bill, error)

	// Refuse moves a pending bill to refused and persists it
	Refuse(ctx context.Context, actor entity.Session, b entity.Bill, comment string, navigate port.Navigator) (entity.Bill, error)

	// DecideMany applies one decision to several bills, each as an independent store call
	DecideMany(ctx context.Context, actor entity.Session, bills []entity.Bill, decision Decision, comment string) []DecisionResult

	// GroupForDisplay builds the three review columns
	GroupForDisplay(bills []entity.Bill) bill.Groups

	// Dashboard loads bills and renders the review columns, or renders the failure message
	Dashboard(ctx context.Context, view port.DashboardView) (bill.Groups, error)

	// FindBill returns the bill with the given identifier
	FindBill(ctx context.Context, id string) (*entity.Bill, error)
}

type reviewServiceImpl struct {
	store      port.BillStore
	listing    ListingService
	publisher  EventPublisher
	batchLimit int
	logger     Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(store port.BillStore, listing ListingService, publisher EventPublisher, batchLimit int, logger Logger) ReviewService {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	return &reviewServiceImpl{
		store:      store,
		listing:    listing,
		publisher:  publisher,
		batchLimit: batchLimit,
		logger:     logger,
	}
}

func (s *reviewServiceImpl) Accept(ctx context.Context, actor entity.Session, b entity.Bill, comment string, navigate port.Navigator) (entity.Bill, error) {
	defer navigateTo(navigate, port.RouteDashboard)
	return s.transition(ctx, actor, b, workflow.TriggerAccept, comment)
}

func (s *reviewServiceImpl) Refuse(ctx context.Context, actor entity.Session, b entity.Bill, comment string, navigate port.Navigator) (entity.Bill, error) {
	defer navigateTo(navigate, port.RouteDashboard)
	return s.transition(ctx, actor, b, workflow.TriggerRefuse, comment)
}

func (s *reviewServiceImpl) DecideMany(ctx context.Context, actor entity.Session, bills []entity.Bill, decision Decision, comment string) []DecisionResult {
	results := make([]DecisionResult, len(bills))

	trigger, err := decision.Trigger()
	if err != nil {
		for i, b := range bills {
			results[i] = DecisionResult{BillID: b.ID, Bill: b, Err: err}
		}
		return results
	}

	// failures are kept per bill and never cancel the other updates
	var g errgroup.Group
	g.SetLimit(s.batchLimit)
	for i, b := range bills {
		g.Go(func() error {
			updated, err := s.transition(ctx, actor, b, trigger, comment)
			results[i] = DecisionResult{BillID: b.ID, Bill: updated, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *reviewServiceImpl) GroupForDisplay(bills []entity.Bill) bill.Groups {
	return bill.GroupByStatus(bills)
}

func (s *reviewServiceImpl) Dashboard(ctx context.Context, view port.DashboardView) (bill.Groups, error) {
	bills, err := s.listing.LoadBills(ctx)
	if err != nil {
		view.ShowError(err.Error())
		return bill.Groups{}, err
	}

	groups := s.GroupForDisplay(bills)
	view.RenderGroups(groups, Columns(groups))
	return groups, nil
}

func (s *reviewServiceImpl) FindBill(ctx context.Context, id string) (*entity.Bill, error) {
	bills, err := s.listing.LoadBills(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		if bills[i].ID == id {
			return &bills[i], nil
		}
	}
	return nil, port.NewStoreError(port.ErrNotFound.Code, fmt.Errorf("bill %s not found", id))
}

// transition fires the lifecycle trigger and overwrites the stored record.
// Only pending bills may transition; the store is not called otherwise.
func (s *reviewServiceImpl) transition(ctx context.Context, actor entity.Session, b entity.Bill, trigger workflow.Trigger, comment string) (entity.Bill, error) {
	machine, err := workflow.ForBill(b)
	if err != nil {
		return b, err
	}
	previous := machine.State()
	if err := machine.Fire(ctx, trigger); err != nil {
		s.logger.Error("Rejected bill transition", "error", err, "bill_id", b.ID, "status", b.Status)
		return b, err
	}

	updated := b
	updated.Status = machine.State().Status()
	updated.CommentAdmin = comment

	if err := updateRecord(ctx, s.store, b.ID, updated); err != nil {
		s.logger.Error("Failed to persist bill transition", "error", err, "bill_id", b.ID, "status", updated.Status)
		return b, fmt.Errorf("persist %s of bill %s: %w", trigger, b.ID, err)
	}

	s.logger.Info("Bill reviewed", "bill_id", b.ID, "status", updated.Status, "admin", actor.Email)
	publish(ctx, s.publisher, event.NewEvent(eventTypeFor(trigger), b.ID, map[string]interface{}{
		event.KeyActor:          actor.Email,
		event.KeyPreviousStatus: previous.String(),
		event.KeyNewStatus:      updated.Status.String(),
		event.KeyComment:        comment,
	}))

	return updated, nil
}

func eventTypeFor(trigger workflow.Trigger) event.Type {
	if trigger == workflow.TriggerRefuse {
		return event.TypeBillRefused
	}
	return event.TypeBillAccepted
}

// Columns returns the review queue headers in display order
func Columns(groups bill.Groups) []port.Column {
	statuses := []entity.Status{entity.StatusPending, entity.StatusAccepted, entity.StatusRefused}
	counts := groups.Counts()
	columns := make([]port.Column, 0, len(statuses))
	for _, status := range statuses {
		count := counts[status]
		columns = append(columns, port.Column{
			Status: status.String(),
			Header: bill.ColumnHeader(status, count),
			Count:  count,
		})
	}
	return columns
}
