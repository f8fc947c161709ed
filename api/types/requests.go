package types

import "github.com/lx-annotate/annotate-api/internal/models"

// SaveDraftRequest is the body for creating or updating a draft.
type SaveDraftRequest struct {
	ID    any      `json:"id,omitempty"`
	Label string   `json:"label" binding:"required"`
	Start *float64 `json:"start" binding:"required"`
	End   *float64 `json:"end" binding:"required"`
	Note  string   `json:"note,omitempty"`
}

// CreateSegmentRequest is the body for creating a video segment.
type CreateSegmentRequest struct {
	VideoID   int64    `json:"videoId" binding:"required"`
	Label     string   `json:"label" binding:"required"`
	StartTime *float64 `json:"startTime" binding:"required"`
	EndTime   *float64 `json:"endTime" binding:"required"`
}

// UpdateSegmentRequest is the body for updating a segment. All fields are
// optional but at least one must be present.
type UpdateSegmentRequest struct {
	StartTime *float64 `json:"startTime,omitempty"`
	EndTime   *float64 `json:"endTime,omitempty"`
	LabelID   *int64   `json:"labelId,omitempty"`
}

// UpdateVideoStatusRequest changes a video's workflow status.
type UpdateVideoStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateAnnotationRequest is the body for creating an annotation.
type CreateAnnotationRequest struct {
	Type      string   `json:"type" binding:"required"`
	VideoID   int64    `json:"videoId" binding:"required"`
	UserID    string   `json:"userId,omitempty"`
	Text      string   `json:"text,omitempty"`
	StartTime float64  `json:"startTime"`
	EndTime   float64  `json:"endTime"`
	Tags      []string `json:"tags,omitempty"`
	IsPublic  bool     `json:"isPublic"`
}

// ToAnnotation converts the request into a model annotation.
func (r *CreateAnnotationRequest) ToAnnotation() *models.Annotation {
	return &models.Annotation{
		Type:      models.AnnotationType(r.Type),
		VideoID:   r.VideoID,
		UserID:    r.UserID,
		Text:      r.Text,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Tags:      r.Tags,
		IsPublic:  r.IsPublic,
	}
}

// UpdateAnnotationRequest carries a partial annotation update.
type UpdateAnnotationRequest map[string]any

// BulkDeleteAnnotationsRequest names the annotations to delete.
type BulkDeleteAnnotationsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}
