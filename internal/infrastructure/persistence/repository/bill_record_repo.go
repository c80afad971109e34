package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/infrastructure/persistence/sqlite"
)

// BillRecordRepository implements port.BillRecordRepository
type BillRecordRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewBillRecordRepository creates a new bill record repository
func NewBillRecordRepository(db *sqlite.DB, logger *zap.Logger) port.BillRecordRepository {
	return &BillRecordRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a new raw record
func (r *BillRecordRepository) Insert(ctx context.Context, record port.RawRecord) error {
	query := `INSERT INTO bill_records (id, data) VALUES (?, ?)`

	if _, err := r.db.Executor(ctx).ExecContext(ctx, query, record.ID, record.Data); err != nil {
		r.logger.Error("Failed to insert bill record", zap.String("id", record.ID), zap.Error(err))
		return fmt.Errorf("failed to insert bill record: %w", err)
	}
	return nil
}

// GetByID returns port.ErrNotFound when no record has the identifier
func (r *BillRecordRepository) GetByID(ctx context.Context, id string) (*port.RawRecord, error) {
	query := `SELECT id, data FROM bill_records WHERE id = ?`

	var record port.RawRecord
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, id).Scan(&record.ID, &record.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.NewStoreError(port.ErrNotFound.Code, fmt.Errorf("bill record %s not found", id))
	}
	if err != nil {
		r.logger.Error("Failed to get bill record", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get bill record: %w", err)
	}
	return &record, nil
}

// List returns records in insertion order
func (r *BillRecordRepository) List(ctx context.Context) ([]port.RawRecord, error) {
	query := `SELECT id, data FROM bill_records ORDER BY created_at ASC, rowid ASC`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list bill records", zap.Error(err))
		return nil, fmt.Errorf("failed to list bill records: %w", err)
	}
	defer rows.Close()

	records := make([]port.RawRecord, 0)
	for rows.Next() {
		var record port.RawRecord
		if err := rows.Scan(&record.ID, &record.Data); err != nil {
			return nil, fmt.Errorf("failed to scan bill record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Update overwrites the data of an existing record
func (r *BillRecordRepository) Update(ctx context.Context, record port.RawRecord) error {
	query := `UPDATE bill_records SET data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, record.Data, record.ID)
	if err != nil {
		r.logger.Error("Failed to update bill record", zap.String("id", record.ID), zap.Error(err))
		return fmt.Errorf("failed to update bill record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return port.NewStoreError(port.ErrNotFound.Code, fmt.Errorf("bill record %s not found", record.ID))
	}
	return nil
}

var _ port.BillRecordRepository = (*BillRecordRepository)(nil)
