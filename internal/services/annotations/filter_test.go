package annotations

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lx-annotate/annotate-api/internal/models"
)

func ptrInt64(v int64) *int64 { return &v }
func ptrBool(v bool) *bool    { return &v }

func sampleAnnotations() []models.Annotation {
	return []models.Annotation{
		{ID: "a", VideoID: 7, Type: models.AnnotationText, UserID: "dr-a", Tags: []string{"polyp"}, StartTime: 30, EndTime: 40, IsPublic: true},
		{ID: "b", VideoID: 7, Type: models.AnnotationSegment, UserID: "dr-b", Tags: []string{"blood"}, StartTime: 10, EndTime: 20},
		{ID: "c", VideoID: 8, Type: models.AnnotationSegment, UserID: "dr-a", Tags: []string{"polyp", "flat"}, StartTime: 5, EndTime: 50, IsPublic: true},
		{ID: "d", VideoID: 7, Type: models.AnnotationPoint, UserID: "dr-a", StartTime: 25, EndTime: 25},
	}
}

func TestFilter_Matches(t *testing.T) {
	annotations := sampleAnnotations()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "empty filter matches all",
			filter: Filter{},
			want:   []string{"c", "b", "d", "a"},
		},
		{
			name:   "video id",
			filter: Filter{VideoID: ptrInt64(7)},
			want:   []string{"b", "d", "a"},
		},
		{
			name:   "type",
			filter: Filter{Type: models.AnnotationSegment},
			want:   []string{"c", "b"},
		},
		{
			name:   "user",
			filter: Filter{UserID: "dr-a"},
			want:   []string{"c", "d", "a"},
		},
		{
			name:   "tag intersection",
			filter: Filter{Tags: []string{"polyp", "ulcer"}},
			want:   []string{"c", "a"},
		},
		{
			name:   "time range containment",
			filter: Filter{TimeRange: &TimeRange{Start: 0, End: 30}},
			want:   []string{"b", "d"},
		},
		{
			name:   "public only",
			filter: Filter{IsPublic: ptrBool(true)},
			want:   []string{"c", "a"},
		},
		{
			name:   "private only",
			filter: Filter{IsPublic: ptrBool(false)},
			want:   []string{"b", "d"},
		},
		{
			name: "combined",
			filter: Filter{
				VideoID: ptrInt64(7),
				UserID:  "dr-a",
				Type:    models.AnnotationText,
			},
			want: []string{"a"},
		},
		{
			name:   "no match",
			filter: Filter{UserID: "nobody"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.filter.apply(annotations)

			got := make([]string, 0, len(result))
			for _, a := range result {
				got = append(got, a.ID)
			}
			assert.Equal(t, tt.want, got)

			// Sorted ascending by start time regardless of filter.
			assert.True(t, sort.SliceIsSorted(result, func(i, j int) bool {
				return result[i].StartTime < result[j].StartTime
			}))
		})
	}
}

func TestFilter_ApplyReturnsCopy(t *testing.T) {
	annotations := sampleAnnotations()
	result := Filter{}.apply(annotations)
	result[0].Text = "mutated"

	assert.Empty(t, annotations[0].Text)
}
