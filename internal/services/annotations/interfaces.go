package annotations

import (
	"context"

	"github.com/lx-annotate/annotate-api/internal/models"
)

// BackendClient is the slice of the backend client the annotation service
// depends on.
type BackendClient interface {
	ListAnnotations(ctx context.Context, videoID *int64) ([]models.Annotation, error)
	CreateAnnotation(ctx context.Context, annotation *models.Annotation) (*models.Annotation, error)
	UpdateAnnotation(ctx context.Context, id string, updates map[string]any) (*models.Annotation, error)
	DeleteAnnotation(ctx context.Context, id string) error
	BulkDeleteAnnotations(ctx context.Context, ids []string) error
	ExportAnnotations(ctx context.Context, format string) ([]byte, string, error)
}

// SegmentsStore is the slice of the segments service the annotation service
// bridges into. It is injected at construction rather than looked up lazily.
type SegmentsStore interface {
	LoadVideo(ctx context.Context, videoID int64) (*models.Video, error)
	FetchVideoSegments(ctx context.Context, videoID int64) error
	AllSegments() []models.Segment
}

// Service provides general-purpose annotation CRUD with filtering and
// bulk-selection support.
type Service interface {
	// CRUD
	LoadAnnotations(ctx context.Context, videoID *int64) error
	Annotations() []models.Annotation
	CreateAnnotation(ctx context.Context, annotation *models.Annotation) (*models.Annotation, error)
	UpdateAnnotation(ctx context.Context, id string, updates map[string]any) (*models.Annotation, error)
	DeleteAnnotation(ctx context.Context, id string) error
	BulkDeleteAnnotations(ctx context.Context, ids []string) error
	ExportAnnotations(ctx context.Context, format string) ([]byte, string, error)

	// Filtering
	FilteredAnnotations(filter Filter) []models.Annotation

	// Selection
	SelectAnnotation(id string)
	DeselectAnnotation(id string)
	ToggleSelection(id string)
	SelectAll()
	ClearSelection()
	SelectedAnnotations() []string
	CanEdit() bool
	CanDelete() bool

	// Segment bridging
	CreateSegmentAnnotation(ctx context.Context, videoID int64, label string, startTime, endTime float64) (*models.Annotation, error)
	SyncSegmentsFromVideoStore(videoID int64)
	ValidateSegmentsAndExaminations(ctx context.Context, fileID int64) bool
	AnnotateSegmentsAndExaminations(ctx context.Context, fileID int64) bool

	// State
	IsLoading() bool
	Error() string
}
