package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/domain/bill"
	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/garyjia/bill-review/internal/infrastructure/storage"
)

// FilesRoute is the path prefix proof files are served under
const FilesRoute = "/v1/files"

// ErrUnsupportedContent is returned when an uploaded file is not a jpeg or png image
var ErrUnsupportedContent = port.NewStoreError(http.StatusUnsupportedMediaType, errors.New("proof content is not a jpeg or png image"))

// LocalStore implements port.BillStore on sqlite records and local proof files
type LocalStore struct {
	records       port.BillRecordRepository
	files         port.FileStorage
	tx            port.TransactionManager
	publicBaseURL string
	newKey        func() string
	logger        *zap.Logger
}

// Option configures the local store
type Option func(*LocalStore)

// WithKeyGenerator replaces the uuid key generator
func WithKeyGenerator(fn func() string) Option {
	return func(s *LocalStore) {
		s.newKey = fn
	}
}

// NewLocalStore creates a store whose file URLs start with publicBaseURL.
// Record writes run in transactions of tx.
func NewLocalStore(records port.BillRecordRepository, files port.FileStorage, tx port.TransactionManager, publicBaseURL string, logger *zap.Logger, opts ...Option) *LocalStore {
	s := &LocalStore{
		records:       records,
		files:         files,
		tx:            tx,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		newKey:        uuid.NewString,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every record in insertion order
func (s *LocalStore) List(ctx context.Context) ([]port.RawRecord, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, port.NewStoreError(port.ErrServer.Code, err)
	}
	return records, nil
}

// Create saves the proof under a new key and reserves a pending record for it.
// The record is rolled back when the file cannot be saved.
func (s *LocalStore) Create(ctx context.Context, upload port.Upload) (*port.CreateResult, error) {
	detected := mimetype.Detect(upload.File.Content)
	if !bill.IsValidProofType(detected.String()) {
		s.logger.Warn("Rejected proof content",
			zap.String("declared", upload.File.Type),
			zap.String("detected", detected.String()))
		return nil, ErrUnsupportedContent
	}

	key := s.newKey()
	name := storage.SanitizeName(upload.File.Name)
	filePath := path.Join(key, name)

	fileURL := s.FileURL(key, name)
	placeholder, err := json.Marshal(entity.Bill{
		Email:    upload.Email,
		FileURL:  &fileURL,
		FileName: &name,
		Status:   entity.StatusPending,
	})
	if err != nil {
		return nil, port.NewStoreError(port.ErrServer.Code, err)
	}

	saved := false
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.records.Insert(ctx, port.RawRecord{ID: key, Data: string(placeholder)}); err != nil {
			return err
		}
		if err := s.files.Save(ctx, filePath, upload.File.Content); err != nil {
			return err
		}
		saved = true
		return nil
	})
	if err != nil {
		// only a failed commit leaves the file behind
		if saved {
			if delErr := s.files.Delete(ctx, filePath); delErr != nil {
				s.logger.Error("Failed to remove orphan proof", zap.String("path", filePath), zap.Error(delErr))
			}
		}
		return nil, port.NewStoreError(port.ErrServer.Code, err)
	}

	s.logger.Info("Proof stored",
		zap.String("key", key),
		zap.String("file_name", name),
		zap.String("content_type", detected.String()),
		zap.Int("size", len(upload.File.Content)))

	return &port.CreateResult{FileURL: fileURL, Key: key}, nil
}

// Update overwrites the selected record; an empty selector inserts a new one
func (s *LocalStore) Update(ctx context.Context, req port.UpdateRequest) error {
	if !json.Valid([]byte(req.Data)) {
		return port.NewStoreError(http.StatusBadRequest, errors.New("record data is not valid JSON"))
	}

	if req.Selector == "" {
		key := s.newKey()
		if err := s.records.Insert(ctx, port.RawRecord{ID: key, Data: req.Data}); err != nil {
			return port.NewStoreError(port.ErrServer.Code, err)
		}
		s.logger.Info("Bill record created without proof", zap.String("key", key))
		return nil
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.records.GetByID(ctx, req.Selector)
		if err != nil {
			return err
		}
		if err := s.records.Update(ctx, port.RawRecord{ID: req.Selector, Data: req.Data}); err != nil {
			return err
		}
		s.logger.Info("Bill record updated",
			zap.String("key", req.Selector),
			zap.String("previous_status", recordStatus(current.Data)),
			zap.String("new_status", recordStatus(req.Data)))
		return nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, port.ErrNotFound):
		return err
	default:
		return port.NewStoreError(port.ErrServer.Code, err)
	}
}

// recordStatus reads the status of an encoded bill, empty when it has none
func recordStatus(data string) string {
	var record struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return ""
	}
	return record.Status
}

// OpenProof returns the bytes of a stored proof and their detected content type
func (s *LocalStore) OpenProof(ctx context.Context, key, name string) ([]byte, string, error) {
	if key != storage.SanitizeName(key) || name != storage.SanitizeName(name) {
		return nil, "", port.NewStoreError(port.ErrNotFound.Code, fmt.Errorf("invalid proof path %s/%s", key, name))
	}

	content, err := s.files.Read(ctx, path.Join(key, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", port.NewStoreError(port.ErrNotFound.Code, err)
	}
	if err != nil {
		return nil, "", port.NewStoreError(port.ErrServer.Code, err)
	}
	return content, mimetype.Detect(content).String(), nil
}

// FileURL builds the public URL of a stored proof
func (s *LocalStore) FileURL(key, name string) string {
	return s.publicBaseURL + FilesRoute + "/" + url.PathEscape(key) + "/" + url.PathEscape(name)
}

var _ port.BillStore = (*LocalStore)(nil)
