package segments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lx-annotate/annotate-api/internal/backend"
	"github.com/lx-annotate/annotate-api/internal/models"
)

// MockBackend is a mock implementation of the BackendClient interface
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListVideoSegments(ctx context.Context, videoID int64) ([]backend.SegmentPayload, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]backend.SegmentPayload), args.Error(1)
}

func (m *MockBackend) CreateVideoSegment(ctx context.Context, req backend.CreateSegmentRequest) (*backend.SegmentPayload, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.SegmentPayload), args.Error(1)
}

func (m *MockBackend) UpdateVideoSegment(ctx context.Context, id int64, updates map[string]any) (*backend.SegmentPayload, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.SegmentPayload), args.Error(1)
}

func (m *MockBackend) DeleteVideoSegment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) GetLabelPrediction(ctx context.Context, videoID int64, label string) (*backend.LabelPrediction, error) {
	args := m.Called(ctx, videoID, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.LabelPrediction), args.Error(1)
}

func (m *MockBackend) ResolveLabel(ctx context.Context, name string) (*models.Label, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Label), args.Error(1)
}

func (m *MockBackend) ListVideos(ctx context.Context) ([]models.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockBackend) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockBackend) UpdateVideoStatus(ctx context.Context, id int64, status models.VideoStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func TestServiceImpl_FetchVideoSegments(t *testing.T) {
	ctx := context.Background()

	t.Run("groups by label name", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		mockBackend.On("ListVideoSegments", ctx, int64(7)).Return([]backend.SegmentPayload{
			{ID: 1, LabelID: 3, LabelName: "polyp", StartTime: 1, EndTime: 2},
			{ID: 2, LabelID: 3, LabelName: "polyp", StartTime: 5, EndTime: 8},
			{ID: 3, LabelID: 9, StartTime: 10, EndTime: 12},
		}, nil)

		require.NoError(t, service.FetchVideoSegments(ctx, 7))

		byLabel := service.SegmentsByLabel()
		assert.Len(t, byLabel["polyp"], 2)
		assert.Len(t, byLabel["label_9"], 1)
		assert.Empty(t, service.ErrorMessage())

		for _, segment := range service.AllSegments() {
			assert.GreaterOrEqual(t, segment.StartTime, 0.0)
			assert.LessOrEqual(t, segment.StartTime, segment.EndTime)
		}
	})

	t.Run("replaces previous map", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		mockBackend.On("ListVideoSegments", ctx, int64(7)).Return([]backend.SegmentPayload{
			{ID: 1, LabelName: "polyp"},
		}, nil).Once()
		mockBackend.On("ListVideoSegments", ctx, int64(8)).Return([]backend.SegmentPayload{
			{ID: 2, LabelName: "blood"},
		}, nil).Once()

		require.NoError(t, service.FetchVideoSegments(ctx, 7))
		require.NoError(t, service.FetchVideoSegments(ctx, 8))

		byLabel := service.SegmentsByLabel()
		assert.NotContains(t, byLabel, "polyp")
		assert.Contains(t, byLabel, "blood")
	})

	t.Run("records error and keeps state on failure", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		mockBackend.On("ListVideoSegments", ctx, int64(7)).Return([]backend.SegmentPayload{
			{ID: 1, LabelName: "polyp"},
		}, nil).Once()
		require.NoError(t, service.FetchVideoSegments(ctx, 7))

		mockBackend.On("ListVideoSegments", ctx, int64(9)).Return(nil, errors.New("connection refused")).Once()
		assert.Error(t, service.FetchVideoSegments(ctx, 9))
		assert.Contains(t, service.ErrorMessage(), "connection refused")

		// Last known state survives.
		assert.Len(t, service.SegmentsByLabel()["polyp"], 1)
	})
}

func TestServiceImpl_CreateSegment(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves label and converts seconds to frames", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		mockBackend.On("ResolveLabel", ctx, "polyp").Return(&models.Label{ID: 3, Name: "polyp"}, nil)
		mockBackend.On("CreateVideoSegment", ctx, backend.CreateSegmentRequest{
			VideoID:    7,
			LabelID:    3,
			StartFrame: 300, // 10s at the 30 fps fallback
			EndFrame:   600,
		}).Return(&backend.SegmentPayload{
			ID: 11, VideoID: 7, LabelID: 3, LabelName: "polyp",
			StartTime: 10, EndTime: 20, StartFrame: 300, EndFrame: 600,
		}, nil)

		segment, err := service.CreateSegment(ctx, 7, "polyp", 10, 20)
		require.NoError(t, err)

		server, persisted := segment.ID.Persisted()
		assert.True(t, persisted)
		assert.Equal(t, int64(11), server)
		assert.Len(t, service.SegmentsByLabel()["polyp"], 1)

		mockBackend.AssertExpectations(t)
	})

	t.Run("uses the current video frame rate", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		mockBackend.On("GetVideo", ctx, int64(7)).Return(&models.Video{ID: 7, FPS: 25}, nil)
		_, err := service.LoadVideo(ctx, 7)
		require.NoError(t, err)

		mockBackend.On("ResolveLabel", ctx, "polyp").Return(&models.Label{ID: 3, Name: "polyp"}, nil)
		mockBackend.On("CreateVideoSegment", ctx, backend.CreateSegmentRequest{
			VideoID:    7,
			LabelID:    3,
			StartFrame: 250, // 10s at 25 fps
			EndFrame:   500,
		}).Return(&backend.SegmentPayload{ID: 12, LabelName: "polyp"}, nil)

		_, err = service.CreateSegment(ctx, 7, "polyp", 10, 20)
		require.NoError(t, err)
		mockBackend.AssertExpectations(t)
	})

	t.Run("label resolution failure leaves state untouched", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		mockBackend.On("ResolveLabel", ctx, "polyp").Return(nil, backend.ErrNotFound)

		segment, err := service.CreateSegment(ctx, 7, "polyp", 10, 20)
		assert.Nil(t, segment)
		assert.ErrorIs(t, err, backend.ErrNotFound)
		assert.Empty(t, service.SegmentsByLabel())
		assert.NotEmpty(t, service.ErrorMessage())

		mockBackend.AssertNotCalled(t, "CreateVideoSegment")
	})

	t.Run("create failure leaves state untouched", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		mockBackend.On("ResolveLabel", ctx, "polyp").Return(&models.Label{ID: 3}, nil)
		mockBackend.On("CreateVideoSegment", ctx, mock.AnythingOfType("backend.CreateSegmentRequest")).
			Return(nil, errors.New("500"))

		segment, err := service.CreateSegment(ctx, 7, "polyp", 10, 20)
		assert.Nil(t, segment)
		assert.Error(t, err)
		assert.Empty(t, service.SegmentsByLabel())
	})

	t.Run("rejects an inverted range before any network call", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		_, err := service.CreateSegment(ctx, 7, "polyp", 20, 10)
		assert.Error(t, err)
		mockBackend.AssertNotCalled(t, "ResolveLabel")
	})
}

func TestServiceImpl_UpdateSegment(t *testing.T) {
	ctx := context.Background()

	t.Run("patches frames and regroups locally", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		mockBackend.On("ListVideoSegments", ctx, int64(7)).Return([]backend.SegmentPayload{
			{ID: 11, LabelID: 3, LabelName: "polyp", StartTime: 10, EndTime: 20},
		}, nil)
		require.NoError(t, service.FetchVideoSegments(ctx, 7))

		end := 30.0
		mockBackend.On("UpdateVideoSegment", ctx, int64(11), map[string]any{
			"end_frame_number": int64(900),
		}).Return(&backend.SegmentPayload{
			ID: 11, LabelID: 3, LabelName: "polyp", StartTime: 10, EndTime: 30,
		}, nil)

		require.NoError(t, service.UpdateSegment(ctx, 11, SegmentUpdate{EndTime: &end}))

		byLabel := service.SegmentsByLabel()
		require.Len(t, byLabel["polyp"], 1)
		assert.Equal(t, 30.0, byLabel["polyp"][0].EndTime)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		err := service.UpdateSegment(ctx, 11, SegmentUpdate{})
		assert.Error(t, err)
		mockBackend.AssertNotCalled(t, "UpdateVideoSegment")
	})

	t.Run("backend failure records message", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		start := 5.0
		mockBackend.On("UpdateVideoSegment", ctx, int64(11), mock.Anything).
			Return(nil, errors.New("conflict"))

		err := service.UpdateSegment(ctx, 11, SegmentUpdate{StartTime: &start})
		assert.Error(t, err)
		assert.Contains(t, service.ErrorMessage(), "conflict")
	})
}

func TestServiceImpl_DeleteSegment(t *testing.T) {
	ctx := context.Background()

	mockBackend := new(MockBackend)
	service := NewService(mockBackend)

	mockBackend.On("ListVideoSegments", ctx, int64(7)).Return([]backend.SegmentPayload{
		{ID: 11, LabelName: "polyp"},
		{ID: 12, LabelName: "polyp"},
	}, nil)
	require.NoError(t, service.FetchVideoSegments(ctx, 7))

	mockBackend.On("DeleteVideoSegment", ctx, int64(11)).Return(nil)
	require.NoError(t, service.DeleteSegment(ctx, 11))
	assert.Len(t, service.SegmentsByLabel()["polyp"], 1)

	mockBackend.On("DeleteVideoSegment", ctx, int64(12)).Return(nil)
	require.NoError(t, service.DeleteSegment(ctx, 12))

	// Last segment gone means the label bucket is gone too.
	assert.NotContains(t, service.SegmentsByLabel(), "polyp")
}

func TestServiceImpl_FetchAllVideos(t *testing.T) {
	ctx := context.Background()

	mockBackend := new(MockBackend)
	service := NewService(mockBackend)

	mockBackend.On("ListVideos", ctx).Return([]models.Video{
		{ID: 1, Status: models.VideoStatusCompleted, Anonymized: true},
		{ID: 2},
	}, nil)

	videos, err := service.FetchAllVideos(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, models.VideoStatusCompleted, videos[0].Status)
	assert.Equal(t, models.VideoStatusAvailable, videos[1].Status)
	assert.False(t, videos[1].Anonymized)
}

func TestServiceImpl_UpdateVideoStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("updates current video state", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		mockBackend.On("GetVideo", ctx, int64(7)).Return(&models.Video{ID: 7}, nil)
		_, err := service.LoadVideo(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, models.VideoStatusAvailable, service.CurrentVideo().Status)

		mockBackend.On("UpdateVideoStatus", ctx, int64(7), models.VideoStatusInProgress).Return(nil)
		require.NoError(t, service.UpdateVideoStatus(ctx, 7, models.VideoStatusInProgress))
		assert.Equal(t, models.VideoStatusInProgress, service.CurrentVideo().Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		mockBackend := new(MockBackend)
		service := NewService(mockBackend)

		err := service.UpdateVideoStatus(ctx, 7, "archived")
		assert.Error(t, err)
		mockBackend.AssertNotCalled(t, "UpdateVideoStatus")
	})
}
