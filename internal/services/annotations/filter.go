package annotations

import (
	"sort"

	"github.com/lx-annotate/annotate-api/internal/models"
)

// TimeRange is an inclusive [Start, End] window in seconds.
type TimeRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Filter narrows the annotation list. Zero-value fields match everything.
type Filter struct {
	VideoID   *int64                `json:"video_id,omitempty"`
	Type      models.AnnotationType `json:"type,omitempty"`
	UserID    string                `json:"user_id,omitempty"`
	Tags      []string              `json:"tags,omitempty"`
	TimeRange *TimeRange            `json:"time_range,omitempty"`
	IsPublic  *bool                 `json:"is_public,omitempty"`
}

// Matches applies the filter criteria in order: video, type, user, tag
// intersection, time-range containment, public flag.
func (f Filter) Matches(a *models.Annotation) bool {
	if f.VideoID != nil && a.VideoID != *f.VideoID {
		return false
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.UserID != "" && a.UserID != f.UserID {
		return false
	}
	if len(f.Tags) > 0 && !f.anyTagMatches(a) {
		return false
	}
	if f.TimeRange != nil {
		if a.StartTime < f.TimeRange.Start || a.EndTime > f.TimeRange.End {
			return false
		}
	}
	if f.IsPublic != nil && a.IsPublic != *f.IsPublic {
		return false
	}
	return true
}

func (f Filter) anyTagMatches(a *models.Annotation) bool {
	for _, tag := range f.Tags {
		if a.HasTag(tag) {
			return true
		}
	}
	return false
}

// apply filters and sorts a copy of the list, ascending by start time.
func (f Filter) apply(annotations []models.Annotation) []models.Annotation {
	filtered := make([]models.Annotation, 0, len(annotations))
	for i := range annotations {
		if f.Matches(&annotations[i]) {
			filtered = append(filtered, annotations[i])
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].StartTime < filtered[j].StartTime
	})
	return filtered
}
