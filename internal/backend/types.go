package backend

import (
	"fmt"

	"github.com/lx-annotate/annotate-api/internal/models"
)

// SegmentPayload is the wire form of a video segment as the backend returns
// it. Start/end times are computed server-side from the frame numbers; the
// gateway does not recompute them.
type SegmentPayload struct {
	ID            int64   `json:"id"`
	VideoID       int64   `json:"video_id"`
	LabelID       int64   `json:"label_id"`
	LabelName     string  `json:"label_name"`
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	StartFrame    int64   `json:"start_frame_number"`
	EndFrame      int64   `json:"end_frame_number"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// EffectiveLabel returns the label name, synthesizing label_<id> when the
// backend sent an unnamed label.
func (p *SegmentPayload) EffectiveLabel() string {
	if p.LabelName != "" {
		return p.LabelName
	}
	return fmt.Sprintf("label_%d", p.LabelID)
}

// ToSegment converts the payload to the domain segment type.
func (p *SegmentPayload) ToSegment() models.Segment {
	return models.Segment{
		ID:            models.NewPersistedID(p.ID),
		VideoID:       p.VideoID,
		LabelID:       p.LabelID,
		Label:         p.EffectiveLabel(),
		StartTime:     p.StartTime,
		EndTime:       p.EndTime,
		StartFrame:    p.StartFrame,
		EndFrame:      p.EndFrame,
		AvgConfidence: p.AvgConfidence,
	}
}

// CreateSegmentRequest is the body for POST /api/video-segments/.
// The backend stores frame numbers and derives times itself.
type CreateSegmentRequest struct {
	VideoID    int64 `json:"video_id"`
	LabelID    int64 `json:"label_id"`
	StartFrame int64 `json:"start_frame_number"`
	EndFrame   int64 `json:"end_frame_number"`
}

// PredictionSegment is one auto-generated prediction interval returned by
// the per-label lookup endpoint.
type PredictionSegment struct {
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// LabelPrediction is the response of GET /api/video/:id/label/:label/.
type LabelPrediction struct {
	Label        string              `json:"label"`
	TimeSegments []PredictionSegment `json:"time_segments"`
}

// BulkDeleteRequest is the body for POST /api/annotations/bulk-delete/.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// UpdateStatusRequest is the body for PATCH /api/videos/:id/status/.
type UpdateStatusRequest struct {
	Status models.VideoStatus `json:"status"`
}

// errorBody is the DRF-style error envelope.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e errorBody) text() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}
