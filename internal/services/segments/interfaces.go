package segments

import (
	"context"

	"github.com/lx-annotate/annotate-api/internal/backend"
	"github.com/lx-annotate/annotate-api/internal/models"
)

// BackendClient is the slice of the backend client the segments service
// depends on.
type BackendClient interface {
	ListVideoSegments(ctx context.Context, videoID int64) ([]backend.SegmentPayload, error)
	CreateVideoSegment(ctx context.Context, req backend.CreateSegmentRequest) (*backend.SegmentPayload, error)
	UpdateVideoSegment(ctx context.Context, id int64, updates map[string]any) (*backend.SegmentPayload, error)
	DeleteVideoSegment(ctx context.Context, id int64) error
	GetLabelPrediction(ctx context.Context, videoID int64, label string) (*backend.LabelPrediction, error)
	ResolveLabel(ctx context.Context, name string) (*models.Label, error)
	ListVideos(ctx context.Context) ([]models.Video, error)
	GetVideo(ctx context.Context, id int64) (*models.Video, error)
	UpdateVideoStatus(ctx context.Context, id int64, status models.VideoStatus) error
}

// SegmentUpdate is a partial update of a committed segment. Times are in
// seconds; the service converts them to frame numbers before calling the
// backend.
type SegmentUpdate struct {
	StartTime *float64
	EndTime   *float64
	LabelID   *int64
}

// Service represents one loaded video's timeline of labeled segments and
// mediates segment CRUD against the backend.
type Service interface {
	// Video lifecycle
	LoadVideo(ctx context.Context, videoID int64) (*models.Video, error)
	CurrentVideo() *models.Video
	FetchAllVideos(ctx context.Context) ([]models.Video, error)
	UpdateVideoStatus(ctx context.Context, videoID int64, status models.VideoStatus) error

	// Segment state
	FetchVideoSegments(ctx context.Context, videoID int64) error
	SegmentsByLabel() map[string][]models.Segment
	AllSegments() []models.Segment
	CreateSegment(ctx context.Context, videoID int64, labelName string, startTime, endTime float64) (*models.Segment, error)
	UpdateSegment(ctx context.Context, segmentID int64, update SegmentUpdate) error
	DeleteSegment(ctx context.Context, segmentID int64) error

	// Predictions
	FetchLabelPrediction(ctx context.Context, videoID int64, label string) (*backend.LabelPrediction, error)

	// ErrorMessage is the last recorded failure, empty after a success.
	ErrorMessage() string
}
