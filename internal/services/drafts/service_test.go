package drafts

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-annotate/annotate-api/internal/models"
	"github.com/lx-annotate/annotate-api/internal/storage"
)

func newTestService(t *testing.T) (*ServiceImpl, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewService(store), store
}

func TestServiceImpl_DrawLifecycle(t *testing.T) {
	service, _ := newTestService(t)

	t.Run("update before start is a no-op", func(t *testing.T) {
		service.UpdateDraftEnd(5)
		assert.Nil(t, service.CurrentDraft())
	})

	t.Run("start then update", func(t *testing.T) {
		service.StartDraft("polyp", 10)
		current := service.CurrentDraft()
		require.NotNil(t, current)
		assert.Equal(t, "polyp", current.Label)
		assert.Equal(t, 10.0, current.Start)
		assert.Nil(t, current.End)

		service.UpdateDraftEnd(20)
		current = service.CurrentDraft()
		require.NotNil(t, current)
		require.NotNil(t, current.End)
		assert.Equal(t, 20.0, *current.End)
	})

	t.Run("start replaces the previous draft", func(t *testing.T) {
		service.StartDraft("blood", 30)
		current := service.CurrentDraft()
		require.NotNil(t, current)
		assert.Equal(t, "blood", current.Label)
		assert.Nil(t, current.End)
	})

	t.Run("cancel discards", func(t *testing.T) {
		service.CancelDraft()
		assert.Nil(t, service.CurrentDraft())
	})

	t.Run("returned draft is a copy", func(t *testing.T) {
		service.StartDraft("polyp", 1)
		service.UpdateDraftEnd(2)
		current := service.CurrentDraft()
		*current.End = 99
		current.Label = "mutated"

		again := service.CurrentDraft()
		assert.Equal(t, "polyp", again.Label)
		assert.Equal(t, 2.0, *again.End)
	})
}

func TestServiceImpl_SaveDraft(t *testing.T) {
	t.Run("upsert keeps one entry per id and preserves CreatedAt", func(t *testing.T) {
		service, _ := newTestService(t)

		first := service.SaveDraft("42", models.AnnotationDraft{ID: "1", Label: "polyp", Start: 10, End: 20})
		require.False(t, first.CreatedAt.IsZero())

		time.Sleep(2 * time.Millisecond)
		second := service.SaveDraft("42", models.AnnotationDraft{ID: "1", Label: "blood", Start: 11, End: 21})

		bucket := service.DraftsForVideo("42")
		require.Len(t, bucket, 1)
		assert.Equal(t, "blood", bucket[0].Label)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.True(t, second.UpdatedAt.After(first.UpdatedAt) || second.UpdatedAt.Equal(first.UpdatedAt))
	})

	t.Run("assigns an id when missing", func(t *testing.T) {
		service, _ := newTestService(t)

		saved := service.SaveDraft("42", models.AnnotationDraft{Label: "polyp"})
		assert.NotEmpty(t, saved.ID)
		assert.True(t, saved.IsDraft)
	})

	t.Run("updates LastSaved", func(t *testing.T) {
		service, _ := newTestService(t)
		assert.True(t, service.LastSaved().IsZero())

		service.SaveDraft("42", models.AnnotationDraft{ID: "1"})
		assert.False(t, service.LastSaved().IsZero())
	})

	t.Run("storage failure does not lose in-memory state", func(t *testing.T) {
		store := storage.NewMemoryStore()
		service := NewService(store)
		store.FailWrites = true

		service.SaveDraft("42", models.AnnotationDraft{ID: "1", Label: "polyp"})
		assert.Len(t, service.DraftsForVideo("42"), 1)
	})
}

func TestServiceImpl_DraftsForVideo_ReturnsCopies(t *testing.T) {
	service, _ := newTestService(t)
	service.SaveDraft("42", models.AnnotationDraft{ID: "1", Label: "polyp", Start: 10, End: 20})

	drafts := service.DraftsForVideo("42")
	require.Len(t, drafts, 1)
	drafts[0].Label = "mutated"

	assert.Equal(t, "polyp", service.DraftsForVideo("42")[0].Label)
}

func TestServiceImpl_RemoveDraft(t *testing.T) {
	t.Run("removes by id and deletes empty bucket", func(t *testing.T) {
		service, store := newTestService(t)
		service.SaveDraft("42", models.AnnotationDraft{ID: "1", Label: "polyp", Start: 10, End: 20})

		removed := service.RemoveDraft("42", 1)
		assert.True(t, removed)
		assert.Empty(t, service.DraftsForVideo("42"))

		// The bucket key itself is gone from the persisted blob.
		data, err := store.Get(models.DraftStorageKey)
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"42"`)
	})

	t.Run("numeric and string ids are equivalent", func(t *testing.T) {
		service, _ := newTestService(t)
		service.SaveDraft("42", models.AnnotationDraft{ID: "7"})

		assert.True(t, service.RemoveDraft("42", "7"))

		service.SaveDraft("42", models.AnnotationDraft{ID: "8"})
		assert.True(t, service.RemoveDraft("42", 8))
	})

	t.Run("missing id skips the storage write", func(t *testing.T) {
		service, store := newTestService(t)
		service.SaveDraft("42", models.AnnotationDraft{ID: "1"})

		before, err := store.Get(models.DraftStorageKey)
		require.NoError(t, err)

		store.FailWrites = true // a redundant write would now fail loudly
		assert.False(t, service.RemoveDraft("42", "999"))
		assert.False(t, service.RemoveDraft("absent", "1"))
		store.FailWrites = false

		after, err := store.Get(models.DraftStorageKey)
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
	})

	t.Run("other drafts survive", func(t *testing.T) {
		service, _ := newTestService(t)
		service.SaveDraft("42", models.AnnotationDraft{ID: "1"})
		service.SaveDraft("42", models.AnnotationDraft{ID: "2"})

		require.True(t, service.RemoveDraft("42", "1"))
		remaining := service.DraftsForVideo("42")
		require.Len(t, remaining, 1)
		assert.Equal(t, models.DraftID("2"), remaining[0].ID)
	})
}

func TestServiceImpl_Clear(t *testing.T) {
	service, _ := newTestService(t)
	service.SaveDraft("42", models.AnnotationDraft{ID: "1"})
	service.SaveDraft("43", models.AnnotationDraft{ID: "2"})

	service.ClearDraftsForVideo("42")
	assert.Empty(t, service.DraftsForVideo("42"))
	assert.Len(t, service.DraftsForVideo("43"), 1)

	service.ClearAllDrafts()
	assert.Empty(t, service.DraftsForVideo("43"))
}

func TestServiceImpl_StorageRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()

	service := NewService(store)
	service.SaveDraft("42", models.AnnotationDraft{ID: "1", Label: "polyp", Start: 10, End: 20, Note: "flat lesion"})
	service.SaveDraft("43", models.AnnotationDraft{ID: "2", Label: "blood", Start: 5, End: 6})

	// A fresh service over the same store sees an equal bucket map.
	reloaded := NewService(store)

	for _, videoID := range []string{"42", "43"} {
		expected := service.DraftsForVideo(videoID)
		actual := reloaded.DraftsForVideo(videoID)
		require.Len(t, actual, len(expected))
		for i := range expected {
			assert.Equal(t, expected[i].ID, actual[i].ID)
			assert.Equal(t, expected[i].Label, actual[i].Label)
			assert.Equal(t, expected[i].Start, actual[i].Start)
			assert.Equal(t, expected[i].End, actual[i].End)
			assert.Equal(t, expected[i].Note, actual[i].Note)
			assert.True(t, expected[i].CreatedAt.Equal(actual[i].CreatedAt))
		}
	}
}

func TestServiceImpl_CorruptStorageResetsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(models.DraftStorageKey, []byte(`{broken`)))

	service := NewService(store)
	assert.Empty(t, service.DraftsForVideo("42"))

	// Still usable afterwards.
	service.SaveDraft("42", models.AnnotationDraft{ID: "1"})
	assert.Len(t, service.DraftsForVideo("42"), 1)
}

func TestServiceImpl_ConcurrentSaves(t *testing.T) {
	service, _ := newTestService(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		service.SaveDraft("42", models.AnnotationDraft{ID: "a", Label: "polyp"})
	}()
	go func() {
		defer wg.Done()
		service.SaveDraft("42", models.AnnotationDraft{ID: "b", Label: "blood"})
	}()
	wg.Wait()

	drafts := service.DraftsForVideo("42")
	assert.Len(t, drafts, 2)
}
