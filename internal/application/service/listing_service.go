package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/domain/bill"
	"github.com/garyjia/bill-review/internal/domain/entity"
)

var errEmptyRecord = errors.New("empty bill record")

// ListingService fetches bills for display
type ListingService interface {
	// LoadBills lists every bill from the store, most recent first.
	// Malformed records are skipped; a failed list call is returned as is.
	LoadBills(ctx context.Context) ([]entity.Bill, error)

	// Show loads bills and renders them, or renders the failure message
	Show(ctx context.Context, view port.ListView) error

	// ResolveProofImage returns the URL of the bill's proof image
	ResolveProofImage(b entity.Bill) string
}

type listingServiceImpl struct {
	store  port.BillStore
	logger Logger
}

// NewListingService creates a new ListingService
func NewListingService(store port.BillStore, logger Logger) ListingService {
	return &listingServiceImpl{
		store:  store,
		logger: logger,
	}
}

func (s *listingServiceImpl) LoadBills(ctx context.Context) ([]entity.Bill, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list bills", "error", err)
		return nil, err
	}

	bills := make([]entity.Bill, 0, len(records))
	for _, record := range records {
		b, err := decodeRecord(record)
		if err != nil {
			s.logger.Error("Skipping corrupted bill record", "error", err, "bill_id", record.ID)
			continue
		}
		bills = append(bills, *b)
	}

	return bill.SortDescendingByDate(bills), nil
}

func (s *listingServiceImpl) Show(ctx context.Context, view port.ListView) error {
	bills, err := s.LoadBills(ctx)
	if err != nil {
		view.ShowError(err.Error())
		return err
	}

	rows := make([]port.BillRow, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, s.toRow(b))
	}
	view.RenderBills(rows)
	return nil
}

func (s *listingServiceImpl) ResolveProofImage(b entity.Bill) string {
	return b.ProofURL()
}

// toRow formats a bill for display, falling back to the raw date when it cannot be formatted
func (s *listingServiceImpl) toRow(b entity.Bill) port.BillRow {
	date, err := bill.FormatDate(b.Date)
	if err != nil {
		s.logger.Error("Cannot format bill date", "error", err, "bill_id", b.ID)
		date = b.Date
	}

	return port.BillRow{
		ID:          b.ID,
		Type:        b.Type,
		Name:        b.Name,
		Date:        date,
		Amount:      b.Amount,
		Status:      b.Status.String(),
		StatusLabel: bill.FormatStatus(b.Status),
		ProofURL:    s.ResolveProofImage(b),
	}
}

// decodeRecord parses the JSON data of a raw record; the record identifier wins over any id in the data
func decodeRecord(record port.RawRecord) (*entity.Bill, error) {
	var b *entity.Bill
	if err := json.Unmarshal([]byte(record.Data), &b); err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errEmptyRecord
	}
	b.ID = record.ID
	return b, nil
}
