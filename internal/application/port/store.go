package port

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/garyjia/bill-review/internal/domain/entity"
)

// RawRecord is a bill as returned by the store: an identifier plus the JSON encoded bill
type RawRecord struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

// Upload is the multipart payload sent when an employee selects a proof file
type Upload struct {
	File  entity.ProofFile
	Email string
}

// CreateResult is the store's answer to an upload; Key becomes the bill identifier
type CreateResult struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// UpdateRequest overwrites the record identified by Selector with Data
type UpdateRequest struct {
	Data     string `json:"data"`
	Selector string `json:"selector"`
}

// BillStore is the remote persistence service for bills and proof files
type BillStore interface {
	// List returns every raw bill record
	List(ctx context.Context) ([]RawRecord, error)

	// Create uploads a proof file and reserves a bill identifier
	Create(ctx context.Context, upload Upload) (*CreateResult, error)

	// Update overwrites the full record keyed by the request selector
	Update(ctx context.Context, req UpdateRequest) error
}

// StoreError is a failure reported by the store, rendered as "Erreur <code>"
type StoreError struct {
	Code int
	Err  error
}

// NewStoreError creates a store error with an optional cause
func NewStoreError(code int, cause error) *StoreError {
	return &StoreError{Code: code, Err: cause}
}

// ErrNotFound and ErrServer are the two failure classes surfaced to users
var (
	ErrNotFound = &StoreError{Code: http.StatusNotFound}
	ErrServer   = &StoreError{Code: http.StatusInternalServerError}
)

func (e *StoreError) Error() string {
	return fmt.Sprintf("Erreur %d", e.Code)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches any StoreError carrying the same code
func (e *StoreError) Is(target error) bool {
	var other *StoreError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// StoreErrorCode extracts the status code of a store error, or 500 for any other error
func StoreErrorCode(err error) int {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return http.StatusInternalServerError
}
