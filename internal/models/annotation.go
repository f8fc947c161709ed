package models

import (
	"fmt"
	"time"
)

// AnnotationType enumerates the supported annotation variants.
type AnnotationType string

const (
	AnnotationText           AnnotationType = "text"
	AnnotationRegion         AnnotationType = "region"
	AnnotationPoint          AnnotationType = "point"
	AnnotationSegment        AnnotationType = "segment"
	AnnotationClassification AnnotationType = "classification"
	AnnotationDetection      AnnotationType = "detection"
)

// Valid reports whether t is one of the enumerated variants.
func (t AnnotationType) Valid() bool {
	switch t {
	case AnnotationText, AnnotationRegion, AnnotationPoint,
		AnnotationSegment, AnnotationClassification, AnnotationDetection:
		return true
	}
	return false
}

// Annotation is a finding attached to a video: a labeled time range, point
// marker, free-text note or classification.
type Annotation struct {
	ID         string         `json:"id"`
	VideoID    int64          `json:"video_id"`
	StartTime  float64        `json:"start_time"`
	EndTime    float64        `json:"end_time"`
	Type       AnnotationType `json:"type"`
	Text       string         `json:"text"`
	Tags       []string       `json:"tags"`
	UserID     string         `json:"user_id"`
	IsPublic   bool           `json:"is_public"`
	Confidence *float64       `json:"confidence,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Validate checks the type and time-range invariants. Point and
// classification annotations may have a zero-length range; everything else
// needs start strictly before end.
func (a *Annotation) Validate() error {
	if !a.Type.Valid() {
		return fmt.Errorf("invalid annotation type %q", a.Type)
	}
	if a.StartTime < 0 {
		return fmt.Errorf("start time must not be negative")
	}
	if a.StartTime > a.EndTime {
		return fmt.Errorf("start time must not be after end time")
	}
	if a.StartTime == a.EndTime &&
		a.Type != AnnotationPoint && a.Type != AnnotationClassification {
		return fmt.Errorf("zero-length range only allowed for point and classification annotations")
	}
	return nil
}

// HasTag reports whether the annotation carries the given tag.
func (a *Annotation) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
