package types

import "github.com/lx-annotate/annotate-api/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// DraftsResponse for draft lists scoped to a video
type DraftsResponse struct {
	BaseResponse
	VideoID string                   `json:"videoId"`
	Drafts  []models.AnnotationDraft `json:"drafts"`
	Count   int                      `json:"count"`
}

// SingleDraftResponse for a saved draft
type SingleDraftResponse struct {
	BaseResponse
	Draft models.AnnotationDraft `json:"draft"`
}

// VideosResponse for video lists
type VideosResponse struct {
	BaseResponse
	Videos []models.Video `json:"videos"`
	Count  int            `json:"count"`
}

// SingleVideoResponse for a single video
type SingleVideoResponse struct {
	BaseResponse
	Video *models.Video `json:"video"`
}

// SegmentsResponse for segment lists grouped by label
type SegmentsResponse struct {
	BaseResponse
	VideoID  int64                       `json:"videoId"`
	ByLabel  map[string][]models.Segment `json:"byLabel"`
	Segments []models.Segment            `json:"segments"`
	Count    int                         `json:"count"`
}

// SingleSegmentResponse for a single segment
type SingleSegmentResponse struct {
	BaseResponse
	Segment *models.Segment `json:"segment"`
}

// AnnotationsResponse for annotation lists
type AnnotationsResponse struct {
	BaseResponse
	Annotations []models.Annotation `json:"annotations"`
	Count       int                 `json:"count"`
}

// SingleAnnotationResponse for a single annotation
type SingleAnnotationResponse struct {
	BaseResponse
	Annotation *models.Annotation `json:"annotation"`
}

// StatsResponse for the aggregated annotation statistics
type StatsResponse struct {
	BaseResponse
	Stats       models.AnnotationStats `json:"stats"`
	LastUpdated string                 `json:"lastUpdated,omitempty"`
	Stale       bool                   `json:"stale"`
}

// SensitiveMetaResponse for patient metadata
type SensitiveMetaResponse struct {
	BaseResponse
	Meta *models.SensitiveMeta `json:"meta"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}
