package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/domain/bill"
	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/garyjia/bill-review/internal/domain/event"
)

// ErrInvalidProof is returned when a selected proof file is not a jpeg or png image
var ErrInvalidProof = errors.New("proof file must be a jpeg or png image")

// PendingUpload carries the result of a proof upload to the final submission
type PendingUpload struct {
	BillID   string  `json:"billId"`
	FileURL  *string `json:"fileUrl"`
	FileName *string `json:"fileName"`
}

// SubmissionService drives the employee new-bill flow
type SubmissionService interface {
	// SelectFile validates a proof file and uploads it when valid.
	// Invalid files are reported to the view and never reach the store.
	SelectFile(ctx context.Context, session entity.Session, file entity.ProofFile, view port.FileInputView) (*PendingUpload, error)

	// CreateFile uploads the proof; failures are logged and returned unchanged
	CreateFile(ctx context.Context, upload port.Upload) (*PendingUpload, error)

	// Submit assembles the pending bill, persists it and navigates to the listing.
	// Navigation happens once whatever the outcome of the update.
	Submit(ctx context.Context, session entity.Session, form bill.FormFields, pending *PendingUpload, navigate port.Navigator) entity.Bill

	// UpdateBill persists a bill under billID; failures are only logged
	UpdateBill(ctx context.Context, billID string, b entity.Bill)
}

type submissionServiceImpl struct {
	store     port.BillStore
	publisher EventPublisher
	logger    Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(store port.BillStore, publisher EventPublisher, logger Logger) SubmissionService {
	return &submissionServiceImpl{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *submissionServiceImpl) SelectFile(ctx context.Context, session entity.Session, file entity.ProofFile, view port.FileInputView) (*PendingUpload, error) {
	if !bill.IsValidProof(file) {
		if view != nil {
			view.RejectFile(ErrInvalidProof.Error())
		}
		return nil, ErrInvalidProof
	}

	if view != nil {
		view.AcceptFile(file.Name)
	}

	return s.CreateFile(ctx, port.Upload{File: file, Email: session.Email})
}

func (s *submissionServiceImpl) CreateFile(ctx context.Context, upload port.Upload) (*PendingUpload, error) {
	result, err := s.store.Create(ctx, upload)
	if err != nil {
		s.logger.Error("Failed to upload proof file", "error", err, "file_name", upload.File.Name, "email", upload.Email)
		return nil, err
	}

	s.logger.Info("Proof file uploaded", "bill_id", result.Key, "file_url", result.FileURL)

	fileURL := result.FileURL
	fileName := upload.File.Name
	return &PendingUpload{
		BillID:   result.Key,
		FileURL:  &fileURL,
		FileName: &fileName,
	}, nil
}

func (s *submissionServiceImpl) Submit(ctx context.Context, session entity.Session, form bill.FormFields, pending *PendingUpload, navigate port.Navigator) entity.Bill {
	var (
		billID   string
		fileURL  *string
		fileName *string
	)
	if pending != nil {
		billID = pending.BillID
		fileURL = pending.FileURL
		fileName = pending.FileName
	}

	b := bill.BuildBill(session.Email, form, fileURL, fileName)
	b.ID = billID

	s.UpdateBill(ctx, billID, b)
	navigateTo(navigate, port.RouteBills)

	return b
}

func (s *submissionServiceImpl) UpdateBill(ctx context.Context, billID string, b entity.Bill) {
	if err := updateRecord(ctx, s.store, billID, b); err != nil {
		s.logger.Error("Failed to persist bill", "error", err, "bill_id", billID)
		return
	}

	s.logger.Info("Bill submitted", "bill_id", billID, "email", b.Email)
	if billID == "" {
		// no upload happened: the store assigned the key and did not report it
		return
	}
	publish(ctx, s.publisher, event.NewEvent(event.TypeBillSubmitted, billID, map[string]interface{}{
		event.KeyActor:     b.Email,
		event.KeyNewStatus: b.Status.String(),
	}))
}

// updateRecord writes the full bill as the store's data field; the identifier travels as the selector only
func updateRecord(ctx context.Context, store port.BillStore, billID string, b entity.Bill) error {
	b.ID = ""
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return store.Update(ctx, port.UpdateRequest{Data: string(data), Selector: billID})
}
