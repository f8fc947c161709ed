// Package annotations provides general-purpose annotation CRUD over the
// backend, a derived filtered view, and the selection state behind the
// dashboard's bulk operations. The segments service is injected, so the
// orchestration helpers can reload a video and mirror its committed segments
// into segment-typed annotations.
package annotations

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lx-annotate/annotate-api/internal/models"
)

// ServiceImpl implements the Service interface.
type ServiceImpl struct {
	client   BackendClient
	segments SegmentsStore

	mu          sync.RWMutex
	annotations []models.Annotation
	selected    []string
	isLoading   bool
	lastError   string
}

// NewService creates a new annotation service. The segments store is passed
// at construction time.
func NewService(client BackendClient, segments SegmentsStore) *ServiceImpl {
	return &ServiceImpl{
		client:   client,
		segments: segments,
	}
}

// LoadAnnotations fetches annotations, optionally filtered by video, and
// replaces the local list. On failure the last-known list survives.
func (s *ServiceImpl) LoadAnnotations(ctx context.Context, videoID *int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	annotations, err := s.client.ListAnnotations(ctx, videoID)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to load annotations: %v", err))
		return err
	}

	s.mu.Lock()
	s.annotations = annotations
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// Annotations returns a copy of the loaded annotation list.
func (s *ServiceImpl) Annotations() []models.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Annotation(nil), s.annotations...)
}

// CreateAnnotation validates, creates and appends an annotation.
func (s *ServiceImpl) CreateAnnotation(ctx context.Context, annotation *models.Annotation) (*models.Annotation, error) {
	if err := annotation.Validate(); err != nil {
		s.recordError(err.Error())
		return nil, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	created, err := s.client.CreateAnnotation(ctx, annotation)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to create annotation: %v", err))
		return nil, err
	}

	s.mu.Lock()
	s.annotations = append(s.annotations, *created)
	s.lastError = ""
	s.mu.Unlock()
	return created, nil
}

// UpdateAnnotation applies a partial update and replaces the local entry.
func (s *ServiceImpl) UpdateAnnotation(ctx context.Context, id string, updates map[string]any) (*models.Annotation, error) {
	if id == "" {
		err := fmt.Errorf("annotation id is required")
		s.recordError(err.Error())
		return nil, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	updated, err := s.client.UpdateAnnotation(ctx, id, updates)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to update annotation %s: %v", id, err))
		return nil, err
	}

	s.mu.Lock()
	for i := range s.annotations {
		if s.annotations[i].ID == id {
			s.annotations[i] = *updated
			break
		}
	}
	s.lastError = ""
	s.mu.Unlock()
	return updated, nil
}

// DeleteAnnotation deletes an annotation and removes it locally.
func (s *ServiceImpl) DeleteAnnotation(ctx context.Context, id string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.client.DeleteAnnotation(ctx, id); err != nil {
		s.recordError(fmt.Sprintf("failed to delete annotation %s: %v", id, err))
		return err
	}

	s.mu.Lock()
	s.removeLocked(func(a *models.Annotation) bool { return a.ID == id })
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// BulkDeleteAnnotations deletes a batch of annotations in one backend call.
func (s *ServiceImpl) BulkDeleteAnnotations(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.client.BulkDeleteAnnotations(ctx, ids); err != nil {
		s.recordError(fmt.Sprintf("failed to bulk delete annotations: %v", err))
		return err
	}

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	s.mu.Lock()
	s.removeLocked(func(a *models.Annotation) bool {
		_, hit := idSet[a.ID]
		return hit
	})
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// ExportAnnotations passes the backend's export through untouched.
func (s *ServiceImpl) ExportAnnotations(ctx context.Context, format string) ([]byte, string, error) {
	body, contentType, err := s.client.ExportAnnotations(ctx, format)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to export annotations: %v", err))
		return nil, "", err
	}
	return body, contentType, nil
}

// FilteredAnnotations applies the filter to the loaded list and returns the
// result sorted ascending by start time.
func (s *ServiceImpl) FilteredAnnotations(filter Filter) []models.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter.apply(s.annotations)
}

// CreateSegmentAnnotation creates a segment-typed annotation for a labeled
// time range.
func (s *ServiceImpl) CreateSegmentAnnotation(ctx context.Context, videoID int64, label string, startTime, endTime float64) (*models.Annotation, error) {
	return s.CreateAnnotation(ctx, &models.Annotation{
		VideoID:   videoID,
		StartTime: startTime,
		EndTime:   endTime,
		Type:      models.AnnotationSegment,
		Text:      label,
		Tags:      []string{label},
	})
}

// SyncSegmentsFromVideoStore destructively replaces all segment-typed
// annotations for a video with ones derived from the segments service's
// current state, under seg-<id> identifiers.
func (s *ServiceImpl) SyncSegmentsFromVideoStore(videoID int64) {
	derived := make([]models.Annotation, 0)
	for _, segment := range s.segments.AllSegments() {
		confidence := segment.AvgConfidence
		derived = append(derived, models.Annotation{
			ID:         "seg-" + segment.ID.String(),
			VideoID:    videoID,
			StartTime:  segment.StartTime,
			EndTime:    segment.EndTime,
			Type:       models.AnnotationSegment,
			Text:       segment.Label,
			Tags:       []string{segment.Label},
			Confidence: &confidence,
		})
	}

	s.mu.Lock()
	s.removeLocked(func(a *models.Annotation) bool {
		return a.Type == models.AnnotationSegment && a.VideoID == videoID
	})
	s.annotations = append(s.annotations, derived...)
	s.mu.Unlock()
}

// ValidateSegmentsAndExaminations loads the video, refreshes its committed
// segments and mirrors them into segment annotations. Any failure is
// captured into the error state and reported as false.
func (s *ServiceImpl) ValidateSegmentsAndExaminations(ctx context.Context, fileID int64) bool {
	return s.refreshFromVideo(ctx, fileID)
}

// AnnotateSegmentsAndExaminations is the annotation-mode twin of
// ValidateSegmentsAndExaminations; both converge on the same refresh.
func (s *ServiceImpl) AnnotateSegmentsAndExaminations(ctx context.Context, fileID int64) bool {
	return s.refreshFromVideo(ctx, fileID)
}

func (s *ServiceImpl) refreshFromVideo(ctx context.Context, fileID int64) bool {
	if _, err := s.segments.LoadVideo(ctx, fileID); err != nil {
		s.recordError(fmt.Sprintf("failed to load video %d: %v", fileID, err))
		return false
	}
	if err := s.segments.FetchVideoSegments(ctx, fileID); err != nil {
		s.recordError(fmt.Sprintf("failed to fetch segments for video %d: %v", fileID, err))
		return false
	}
	s.SyncSegmentsFromVideoStore(fileID)
	s.clearError()
	return true
}

// IsLoading reports whether a backend call is in flight.
func (s *ServiceImpl) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.isLoading
}

// Error returns the last recorded failure, empty after a success.
func (s *ServiceImpl) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastError
}

// removeLocked drops matching annotations and their selection entries.
// Callers must hold the write lock.
func (s *ServiceImpl) removeLocked(match func(*models.Annotation) bool) {
	kept := s.annotations[:0]
	removed := make(map[string]struct{})
	for i := range s.annotations {
		if match(&s.annotations[i]) {
			removed[s.annotations[i].ID] = struct{}{}
			continue
		}
		kept = append(kept, s.annotations[i])
	}
	s.annotations = kept

	if len(removed) == 0 {
		return
	}
	keptSelected := s.selected[:0]
	for _, id := range s.selected {
		if _, gone := removed[id]; !gone {
			keptSelected = append(keptSelected, id)
		}
	}
	s.selected = keptSelected
}

func (s *ServiceImpl) setLoading(loading bool) {
	s.mu.Lock()
	s.isLoading = loading
	s.mu.Unlock()
}

func (s *ServiceImpl) recordError(message string) {
	s.mu.Lock()
	s.lastError = strings.TrimSpace(message)
	s.mu.Unlock()
}

func (s *ServiceImpl) clearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}
