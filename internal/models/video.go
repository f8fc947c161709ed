package models

// VideoStatus tracks the annotation lifecycle of a video. Transitions are
// explicit; nothing moves a video automatically when annotation work happens.
type VideoStatus string

const (
	VideoStatusAvailable  VideoStatus = "available"
	VideoStatusInProgress VideoStatus = "in_progress"
	VideoStatusCompleted  VideoStatus = "completed"
)

// Valid reports whether s is a known status.
func (s VideoStatus) Valid() bool {
	switch s {
	case VideoStatusAvailable, VideoStatusInProgress, VideoStatusCompleted:
		return true
	}
	return false
}

// DefaultFPS is assumed when the backend does not report a frame rate for a
// video. Segment frame numbers computed from it are only as accurate as this
// guess; see the segments service.
const DefaultFPS = 30.0

// Label is a finding class a segment can be labeled with.
type Label struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Video is the metadata of an uploaded video under annotation.
type Video struct {
	ID           int64       `json:"id"`
	Filename     string      `json:"original_file_name,omitempty"`
	CenterName   string      `json:"center_name,omitempty"`
	Status       VideoStatus `json:"status"`
	AssignedUser string      `json:"assigned_user,omitempty"`
	Duration     float64     `json:"duration"`
	FPS          float64     `json:"fps,omitempty"`
	Anonymized   bool        `json:"anonymized"`
	Labels       []Label     `json:"labels,omitempty"`
}

// EffectiveFPS returns the reported frame rate, or DefaultFPS when the
// backend did not supply one.
func (v *Video) EffectiveFPS() float64 {
	if v != nil && v.FPS > 0 {
		return v.FPS
	}
	return DefaultFPS
}
