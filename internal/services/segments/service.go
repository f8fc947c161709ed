// Package segments holds the state of the currently loaded video and its
// labeled timeline segments, grouped by label name, and mediates all segment
// CRUD against the backend.
//
// Times flow in two directions with an asymmetry inherited from the
// dashboard: fetches trust the server-computed start/end seconds, while
// creates and updates convert seconds to frame numbers client-side using the
// video's frame rate, falling back to 30 fps when the backend never reported
// one. Frame numbers computed from the fallback are wrong whenever the real
// rate differs.
package segments

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/lx-annotate/annotate-api/internal/backend"
	"github.com/lx-annotate/annotate-api/internal/models"
)

// ServiceImpl implements the Service interface.
type ServiceImpl struct {
	client BackendClient

	mu              sync.RWMutex
	currentVideo    *models.Video
	segmentsByLabel map[string][]models.Segment
	errorMessage    string
}

// NewService creates a new segments service.
func NewService(client BackendClient) *ServiceImpl {
	return &ServiceImpl{
		client:          client,
		segmentsByLabel: make(map[string][]models.Segment),
	}
}

// LoadVideo fetches a video's metadata and makes it the current video.
func (s *ServiceImpl) LoadVideo(ctx context.Context, videoID int64) (*models.Video, error) {
	video, err := s.client.GetVideo(ctx, videoID)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to load video %d: %v", videoID, err))
		return nil, err
	}
	if video.Status == "" {
		video.Status = models.VideoStatusAvailable
	}

	s.mu.Lock()
	s.currentVideo = video
	s.errorMessage = ""
	s.mu.Unlock()
	return video, nil
}

// CurrentVideo returns a copy of the currently loaded video, or nil.
func (s *ServiceImpl) CurrentVideo() *models.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentVideo == nil {
		return nil
	}
	copied := *s.currentVideo
	copied.Labels = append([]models.Label(nil), s.currentVideo.Labels...)
	return &copied
}

// FetchAllVideos lists all videos, defaulting a missing status to available.
func (s *ServiceImpl) FetchAllVideos(ctx context.Context) ([]models.Video, error) {
	videos, err := s.client.ListVideos(ctx)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to list videos: %v", err))
		return nil, err
	}
	for i := range videos {
		if videos[i].Status == "" {
			videos[i].Status = models.VideoStatusAvailable
		}
	}
	s.clearError()
	return videos, nil
}

// UpdateVideoStatus explicitly transitions a video's annotation status.
// Nothing transitions automatically on annotation activity.
func (s *ServiceImpl) UpdateVideoStatus(ctx context.Context, videoID int64, status models.VideoStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid video status %q", status)
	}
	if err := s.client.UpdateVideoStatus(ctx, videoID, status); err != nil {
		s.recordError(fmt.Sprintf("failed to update status of video %d: %v", videoID, err))
		return err
	}

	s.mu.Lock()
	if s.currentVideo != nil && s.currentVideo.ID == videoID {
		s.currentVideo.Status = status
	}
	s.errorMessage = ""
	s.mu.Unlock()
	return nil
}

// FetchVideoSegments replaces the label map with the video's segments,
// regrouped by label name. Start/end times come from the server as-is.
func (s *ServiceImpl) FetchVideoSegments(ctx context.Context, videoID int64) error {
	payloads, err := s.client.ListVideoSegments(ctx, videoID)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to fetch segments for video %d: %v", videoID, err))
		return err
	}

	grouped := make(map[string][]models.Segment)
	for i := range payloads {
		segment := payloads[i].ToSegment()
		grouped[segment.Label] = append(grouped[segment.Label], segment)
	}

	s.mu.Lock()
	s.segmentsByLabel = grouped
	s.errorMessage = ""
	s.mu.Unlock()
	return nil
}

// SegmentsByLabel returns a copy of the label map.
func (s *ServiceImpl) SegmentsByLabel() map[string][]models.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make(map[string][]models.Segment, len(s.segmentsByLabel))
	for label, list := range s.segmentsByLabel {
		copied[label] = append([]models.Segment(nil), list...)
	}
	return copied
}

// AllSegments returns every committed segment across labels.
func (s *ServiceImpl) AllSegments() []models.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []models.Segment
	for _, list := range s.segmentsByLabel {
		all = append(all, list...)
	}
	return all
}

// CreateSegment resolves the label name, converts the second-based range to
// frame numbers, creates the segment and appends the server-returned object
// to local state. On any failure it records the error and returns it without
// touching the label map.
func (s *ServiceImpl) CreateSegment(ctx context.Context, videoID int64, labelName string, startTime, endTime float64) (*models.Segment, error) {
	if startTime < 0 || startTime > endTime {
		err := fmt.Errorf("invalid segment range [%v, %v]", startTime, endTime)
		s.recordError(err.Error())
		return nil, err
	}

	label, err := s.client.ResolveLabel(ctx, labelName)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to resolve label %q: %v", labelName, err))
		return nil, err
	}

	fps := s.fpsForVideo(videoID)
	created, err := s.client.CreateVideoSegment(ctx, backend.CreateSegmentRequest{
		VideoID:    videoID,
		LabelID:    label.ID,
		StartFrame: secondsToFrame(startTime, fps),
		EndFrame:   secondsToFrame(endTime, fps),
	})
	if err != nil {
		s.recordError(fmt.Sprintf("failed to create segment: %v", err))
		return nil, err
	}

	segment := created.ToSegment()
	s.mu.Lock()
	s.segmentsByLabel[segment.Label] = append(s.segmentsByLabel[segment.Label], segment)
	s.errorMessage = ""
	s.mu.Unlock()
	return &segment, nil
}

// UpdateSegment patches a committed segment and mutates the matching entry in
// the label map on success.
func (s *ServiceImpl) UpdateSegment(ctx context.Context, segmentID int64, update SegmentUpdate) error {
	fps := s.fpsForSegment(segmentID)

	updates := make(map[string]any)
	if update.StartTime != nil {
		updates["start_frame_number"] = secondsToFrame(*update.StartTime, fps)
	}
	if update.EndTime != nil {
		updates["end_frame_number"] = secondsToFrame(*update.EndTime, fps)
	}
	if update.LabelID != nil {
		updates["label_id"] = *update.LabelID
	}
	if len(updates) == 0 {
		return fmt.Errorf("nothing to update for segment %d", segmentID)
	}

	updated, err := s.client.UpdateVideoSegment(ctx, segmentID, updates)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to update segment %d: %v", segmentID, err))
		return err
	}

	segment := updated.ToSegment()
	s.mu.Lock()
	s.removeSegmentLocked(segmentID)
	s.segmentsByLabel[segment.Label] = append(s.segmentsByLabel[segment.Label], segment)
	s.errorMessage = ""
	s.mu.Unlock()
	return nil
}

// DeleteSegment deletes a committed segment and removes it from the label
// map on success.
func (s *ServiceImpl) DeleteSegment(ctx context.Context, segmentID int64) error {
	if err := s.client.DeleteVideoSegment(ctx, segmentID); err != nil {
		s.recordError(fmt.Sprintf("failed to delete segment %d: %v", segmentID, err))
		return err
	}

	s.mu.Lock()
	s.removeSegmentLocked(segmentID)
	s.errorMessage = ""
	s.mu.Unlock()
	return nil
}

// FetchLabelPrediction fetches the auto-generated prediction intervals for
// one label of a video.
func (s *ServiceImpl) FetchLabelPrediction(ctx context.Context, videoID int64, label string) (*backend.LabelPrediction, error) {
	prediction, err := s.client.GetLabelPrediction(ctx, videoID, label)
	if err != nil {
		s.recordError(fmt.Sprintf("failed to fetch %q prediction for video %d: %v", label, videoID, err))
		return nil, err
	}
	s.clearError()
	return prediction, nil
}

// ErrorMessage returns the last recorded failure, empty after a success.
func (s *ServiceImpl) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.errorMessage
}

// removeSegmentLocked drops a segment from whichever label bucket holds it,
// deleting the bucket when it empties. Callers must hold the write lock.
func (s *ServiceImpl) removeSegmentLocked(segmentID int64) {
	for label, list := range s.segmentsByLabel {
		for i := range list {
			server, ok := list[i].ID.Persisted()
			if !ok || server != segmentID {
				continue
			}
			list = append(list[:i], list[i+1:]...)
			if len(list) == 0 {
				delete(s.segmentsByLabel, label)
			} else {
				s.segmentsByLabel[label] = list
			}
			return
		}
	}
}

// fpsForVideo returns the frame rate to use for second/frame conversion on a
// given video.
func (s *ServiceImpl) fpsForVideo(videoID int64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentVideo != nil && s.currentVideo.ID == videoID {
		return s.currentVideo.EffectiveFPS()
	}
	return models.DefaultFPS
}

// fpsForSegment returns the frame rate for a segment already in the label
// map, based on its video.
func (s *ServiceImpl) fpsForSegment(segmentID int64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, list := range s.segmentsByLabel {
		for i := range list {
			if server, ok := list[i].ID.Persisted(); ok && server == segmentID {
				if s.currentVideo != nil && s.currentVideo.ID == list[i].VideoID {
					return s.currentVideo.EffectiveFPS()
				}
			}
		}
	}
	return models.DefaultFPS
}

func (s *ServiceImpl) recordError(message string) {
	s.mu.Lock()
	s.errorMessage = message
	s.mu.Unlock()
}

func (s *ServiceImpl) clearError() {
	s.mu.Lock()
	s.errorMessage = ""
	s.mu.Unlock()
}

func secondsToFrame(seconds, fps float64) int64 {
	return int64(math.Round(seconds * fps))
}
