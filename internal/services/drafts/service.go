// Package drafts keeps pending annotation work client-side until the user
// explicitly saves it to the backend. The whole bucket map is mirrored to the
// key-value store on every mutation and read back once at startup, so a
// gateway restart loses nothing. Storage failures are logged and swallowed;
// losing a draft is annoying but never fatal.
package drafts

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lx-annotate/annotate-api/internal/models"
	"github.com/lx-annotate/annotate-api/internal/storage"
)

// ServiceImpl implements the Service interface.
type ServiceImpl struct {
	mu sync.Mutex

	store      storage.Store
	storageKey string

	buckets   models.DraftBucket
	current   *models.DraftSegment
	lastSaved time.Time
}

// NewService creates a draft service backed by the given store and loads any
// previously persisted bucket map.
func NewService(store storage.Store) *ServiceImpl {
	s := &ServiceImpl{
		store:      store,
		storageKey: models.DraftStorageKey,
		buckets:    make(models.DraftBucket),
	}
	s.loadFromStorage()
	return s
}

// StartDraft replaces any in-progress draft segment with a new incomplete one.
func (s *ServiceImpl) StartDraft(label string, start float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &models.DraftSegment{Label: label, Start: start}
}

// UpdateDraftEnd sets the end time of the in-progress segment. No-op when no
// draft is active.
func (s *ServiceImpl) UpdateDraftEnd(end float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	s.current.End = &end
}

// CancelDraft discards the in-progress segment.
func (s *ServiceImpl) CancelDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
}

// CurrentDraft returns a copy of the in-progress segment, or nil.
func (s *ServiceImpl) CurrentDraft() *models.DraftSegment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	copied := *s.current
	if s.current.End != nil {
		end := *s.current.End
		copied.End = &end
	}
	return &copied
}

// SaveDraft upserts a draft into the bucket for videoID, matching by ID. The
// original CreatedAt survives an update; UpdatedAt is always stamped. The
// whole bucket map is persisted afterwards.
func (s *ServiceImpl) SaveDraft(videoID string, draft models.AnnotationDraft) models.AnnotationDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	draft.IsDraft = true
	draft.UpdatedAt = now
	if draft.ID == "" {
		draft.ID = models.DraftID(uuid.New().String())
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}

	bucket := s.buckets[videoID]
	replaced := false
	for i := range bucket {
		if bucket[i].ID == draft.ID {
			draft.CreatedAt = bucket[i].CreatedAt
			bucket[i] = draft
			replaced = true
			break
		}
	}
	if !replaced {
		bucket = append(bucket, draft)
	}
	s.buckets[videoID] = bucket

	s.lastSaved = now
	s.saveToStorage()
	return draft
}

// DraftsForVideo returns copies of all drafts for a video so callers may
// mutate them safely.
func (s *ServiceImpl) DraftsForVideo(videoID string) []models.AnnotationDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[videoID]
	copied := make([]models.AnnotationDraft, len(bucket))
	for i, draft := range bucket {
		copied[i] = draft.Clone()
	}
	return copied
}

// RemoveDraft filters one draft out of a video's bucket. Numeric and string
// identifiers match after normalization. The bucket key disappears entirely
// when the list becomes empty, and storage is written only when something was
// actually removed.
func (s *ServiceImpl) RemoveDraft(videoID string, id any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := models.NormalizeDraftID(id)
	bucket, ok := s.buckets[videoID]
	if !ok {
		return false
	}

	kept := bucket[:0]
	for _, draft := range bucket {
		if draft.ID != target {
			kept = append(kept, draft)
		}
	}
	if len(kept) == len(bucket) {
		return false
	}

	if len(kept) == 0 {
		delete(s.buckets, videoID)
	} else {
		s.buckets[videoID] = kept
	}
	s.saveToStorage()
	return true
}

// ClearDraftsForVideo deletes one video's bucket.
func (s *ServiceImpl) ClearDraftsForVideo(videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets, videoID)
	s.saveToStorage()
}

// ClearAllDrafts deletes every bucket.
func (s *ServiceImpl) ClearAllDrafts() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buckets = make(models.DraftBucket)
	s.saveToStorage()
}

// LastSaved returns the time of the last successful SaveDraft.
func (s *ServiceImpl) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSaved
}

// saveToStorage serializes the entire bucket map under the fixed storage key.
// Callers must hold the mutex.
func (s *ServiceImpl) saveToStorage() {
	data, err := json.Marshal(s.buckets)
	if err != nil {
		log.Printf("drafts: failed to serialize buckets: %v", err)
		return
	}
	if err := s.store.Set(s.storageKey, data); err != nil {
		log.Printf("drafts: failed to persist buckets: %v", err)
	}
}

// loadFromStorage reads the persisted bucket map once at startup. A parse
// failure resets to an empty map rather than surfacing an error.
func (s *ServiceImpl) loadFromStorage() {
	data, err := s.store.Get(s.storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("drafts: failed to read persisted buckets: %v", err)
		}
		return
	}

	var buckets models.DraftBucket
	if err := json.Unmarshal(data, &buckets); err != nil {
		log.Printf("drafts: failed to parse persisted buckets, resetting: %v", err)
		s.buckets = make(models.DraftBucket)
		return
	}
	if buckets == nil {
		buckets = make(models.DraftBucket)
	}
	s.buckets = buckets
}
