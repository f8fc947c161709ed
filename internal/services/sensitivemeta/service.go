// Package sensitivemeta mediates reads and writes of patient-identifying
// metadata. A video or PDF must have its metadata verified by a human before
// annotation work on it proceeds.
package sensitivemeta

import (
	"context"
	"fmt"
	"sync"

	"github.com/lx-annotate/annotate-api/internal/models"
)

// BackendClient is the slice of the backend client this service depends on.
type BackendClient interface {
	GetSensitiveMeta(ctx context.Context, fileID int64) (*models.SensitiveMeta, error)
	UpdateSensitiveMeta(ctx context.Context, meta *models.SensitiveMeta) error
}

// Service reads, updates and verifies sensitive metadata.
type Service interface {
	Fetch(ctx context.Context, fileID int64) (*models.SensitiveMeta, error)
	Update(ctx context.Context, meta *models.SensitiveMeta) error
	MarkVerified(ctx context.Context, fileID int64) (*models.SensitiveMeta, error)
	Error() string
}

// ServiceImpl implements the Service interface.
type ServiceImpl struct {
	client BackendClient

	mu        sync.RWMutex
	lastError string
}

// NewService creates a new sensitive metadata service.
func NewService(client BackendClient) *ServiceImpl {
	return &ServiceImpl{client: client}
}

// Fetch loads the metadata attached to a file.
func (s *ServiceImpl) Fetch(ctx context.Context, fileID int64) (*models.SensitiveMeta, error) {
	meta, err := s.client.GetSensitiveMeta(ctx, fileID)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to fetch sensitive meta for file %d: %v", fileID, err))
		return nil, err
	}
	s.clearError()
	return meta, nil
}

// Update writes patient metadata back. The file ID is required.
func (s *ServiceImpl) Update(ctx context.Context, meta *models.SensitiveMeta) error {
	if meta.FileID == 0 {
		err := fmt.Errorf("file id is required")
		s.recordError(err.Error())
		return err
	}
	if err := s.client.UpdateSensitiveMeta(ctx, meta); err != nil {
		s.recordError(fmt.Sprintf("failed to update sensitive meta for file %d: %v", meta.FileID, err))
		return err
	}
	s.clearError()
	return nil
}

// MarkVerified flags a file's metadata as human-verified. All required
// fields must be filled in first.
func (s *ServiceImpl) MarkVerified(ctx context.Context, fileID int64) (*models.SensitiveMeta, error) {
	meta, err := s.Fetch(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !meta.RequiredFieldsPresent() {
		err := fmt.Errorf("sensitive meta for file %d is incomplete", fileID)
		s.recordError(err.Error())
		return nil, err
	}

	meta.Verified = true
	if err := s.Update(ctx, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// Error returns the last recorded failure, empty after a success.
func (s *ServiceImpl) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastError
}

func (s *ServiceImpl) recordError(message string) {
	s.mu.Lock()
	s.lastError = message
	s.mu.Unlock()
}

func (s *ServiceImpl) clearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}
