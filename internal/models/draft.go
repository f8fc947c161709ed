package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// DraftStorageKey is the fixed storage key the draft bucket map is persisted
// under. It matches the key the dashboard historically used in browser
// storage, so existing blobs remain readable.
const DraftStorageKey = "lx-annotate-drafts"

// DraftID identifies a draft annotation within a video bucket. The dashboard
// sends both numeric and string IDs, so the type normalizes on decode: 1 and
// "1" are the same draft.
type DraftID string

// UnmarshalJSON accepts numbers and strings.
func (d *DraftID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*d = DraftID(strconv.FormatInt(int64(v), 10))
	case string:
		*d = DraftID(v)
	}
	return nil
}

// NormalizeDraftID converts any scalar draft identifier to its canonical
// string form.
func NormalizeDraftID(id any) DraftID {
	switch v := id.(type) {
	case DraftID:
		return v
	case string:
		return DraftID(v)
	case int:
		return DraftID(strconv.Itoa(v))
	case int64:
		return DraftID(strconv.FormatInt(v, 10))
	case float64:
		return DraftID(strconv.FormatInt(int64(v), 10))
	default:
		return ""
	}
}

// DraftSegment is the single in-progress segment being drawn on the
// timeline. End is nil until the user finishes drawing.
type DraftSegment struct {
	Label string   `json:"label"`
	Start float64  `json:"start"`
	End   *float64 `json:"end"`
}

// AnnotationDraft is a pending annotation awaiting an explicit save to the
// backend. Drafts live only in the gateway's storage, keyed by video ID.
type AnnotationDraft struct {
	ID        DraftID   `json:"id"`
	Label     string    `json:"label"`
	Start     float64   `json:"start"`
	End       float64   `json:"end"`
	Note      string    `json:"note,omitempty"`
	IsDraft   bool      `json:"isDraft"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a copy the caller may mutate freely.
func (d AnnotationDraft) Clone() AnnotationDraft {
	return d
}

// DraftBucket maps a video ID to its list of pending drafts. The whole map is
// serialized as one JSON blob under DraftStorageKey.
type DraftBucket map[string][]AnnotationDraft

// Clone deep-copies the bucket map.
func (b DraftBucket) Clone() DraftBucket {
	out := make(DraftBucket, len(b))
	for videoID, drafts := range b {
		copied := make([]AnnotationDraft, len(drafts))
		copy(copied, drafts)
		out[videoID] = copied
	}
	return out
}
