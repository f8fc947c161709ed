package drafts

import (
	"time"

	"github.com/lx-annotate/annotate-api/internal/models"
)

// Service holds not-yet-committed annotation work so users don't lose edits
// across reloads, independent of the backend.
type Service interface {
	// In-progress segment drawing
	StartDraft(label string, start float64)
	UpdateDraftEnd(end float64)
	CancelDraft()
	CurrentDraft() *models.DraftSegment

	// Pending draft buckets
	SaveDraft(videoID string, draft models.AnnotationDraft) models.AnnotationDraft
	DraftsForVideo(videoID string) []models.AnnotationDraft
	RemoveDraft(videoID string, id any) bool
	ClearDraftsForVideo(videoID string)
	ClearAllDrafts()

	// LastSaved is the time of the last successful SaveDraft.
	LastSaved() time.Time
}
