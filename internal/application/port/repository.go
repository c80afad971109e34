package port

import (
	"context"

	"github.com/garyjia/bill-review/internal/domain/entity"
)

// BillRecordRepository persists raw bill records for the local store
type BillRecordRepository interface {
	Insert(ctx context.Context, record RawRecord) error
	GetByID(ctx context.Context, id string) (*RawRecord, error)
	List(ctx context.Context) ([]RawRecord, error)

	// Update overwrites the data of an existing record; it returns ErrNotFound for an unknown id
	Update(ctx context.Context, record RawRecord) error
}

// HistoryRepository persists the audit trail of bills
type HistoryRepository interface {
	Create(ctx context.Context, history *entity.BillHistory) error
	GetByBillID(ctx context.Context, billID string) ([]*entity.BillHistory, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
