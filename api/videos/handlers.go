package videos

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
	"github.com/lx-annotate/annotate-api/internal/backend"
	"github.com/lx-annotate/annotate-api/internal/models"
)

// ListVideos returns all videos known to the backend
// @Summary      List videos
// @Description  Retrieve the video overview list from the clinical backend. Videos with
// @Description  no workflow status are reported as available.
// @Tags         videos
// @Produce      json
// @Success      200 {object} types.VideosResponse "Video list"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/videos [get]
func ListVideos(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videos, err := deps.SegmentService.FetchAllVideos(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to fetch videos: %v", err)
			types.SendBadGateway(c, "Failed to fetch videos", err)
			return
		}

		c.JSON(http.StatusOK, types.VideosResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: fmt.Sprintf("Found %d videos", len(videos)),
			},
			Videos: videos,
			Count:  len(videos),
		})
	}
}

// GetVideo loads a single video and makes it current
// @Summary      Get a video
// @Tags         videos
// @Produce      json
// @Param        id path int64 true "Video ID"
// @Success      200 {object} types.SingleVideoResponse "Video metadata"
// @Failure      400 {object} types.ErrorResponse "Invalid video ID"
// @Failure      404 {object} types.ErrorResponse "Video not found"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/videos/{id} [get]
func GetVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		video, err := deps.SegmentService.LoadVideo(c.Request.Context(), videoID)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				types.SendNotFound(c, "Video not found")
				return
			}
			log.Printf("[ERROR] Failed to load video %d: %v", videoID, err)
			types.SendBadGateway(c, "Failed to load video", err)
			return
		}

		c.JSON(http.StatusOK, types.SingleVideoResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Video loaded",
			},
			Video: video,
		})
	}
}

// UpdateStatus changes a video's workflow status
// @Summary      Update video status
// @Description  Move a video through the annotation workflow. Accepted statuses are
// @Description  available, in_progress and completed.
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        id path int64 true "Video ID"
// @Param        status body types.UpdateVideoStatusRequest true "New status"
// @Success      200 {object} types.BaseResponse "Status updated"
// @Failure      400 {object} types.ErrorResponse "Invalid video ID or status"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/videos/{id}/status [put]
func UpdateStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		var req types.UpdateVideoStatusRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		status := models.VideoStatus(req.Status)
		if !status.Valid() {
			types.SendBadRequest(c, "Invalid status "+req.Status)
			return
		}

		if err := deps.SegmentService.UpdateVideoStatus(c.Request.Context(), videoID, status); err != nil {
			log.Printf("[ERROR] Failed to update status for video %d: %v", videoID, err)
			types.SendBadGateway(c, "Failed to update video status", err)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Video status updated",
		})
	}
}

// GetSegments fetches and groups a video's segments
// @Summary      Get a video's segments grouped by label
// @Description  Fetch the committed segments for a video from the backend and return
// @Description  them grouped by label name alongside the flat list.
// @Tags         videos
// @Produce      json
// @Param        id path int64 true "Video ID"
// @Success      200 {object} types.SegmentsResponse "Segments grouped by label"
// @Failure      400 {object} types.ErrorResponse "Invalid video ID"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/videos/{id}/segments [get]
func GetSegments(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		if err := deps.SegmentService.FetchVideoSegments(c.Request.Context(), videoID); err != nil {
			log.Printf("[ERROR] Failed to fetch segments for video %d: %v", videoID, err)
			types.SendBadGateway(c, "Failed to fetch segments", err)
			return
		}

		segments := deps.SegmentService.AllSegments()
		c.JSON(http.StatusOK, types.SegmentsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: fmt.Sprintf("Found %d segments", len(segments)),
			},
			VideoID:  videoID,
			ByLabel:  deps.SegmentService.SegmentsByLabel(),
			Segments: segments,
			Count:    len(segments),
		})
	}
}

// GetLabelPrediction returns model-predicted segments for a label
// @Summary      Get label prediction for a video
// @Description  Fetch the AI-predicted segments for one label on a video. Predictions
// @Description  are read-only suggestions; committing one goes through segment creation.
// @Tags         videos
// @Produce      json
// @Param        id path int64 true "Video ID"
// @Param        label path string true "Label name"
// @Success      200 {object} backend.LabelPrediction "Predicted segments"
// @Failure      404 {object} types.ErrorResponse "No prediction for that label"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/videos/{id}/prediction/{label} [get]
func GetLabelPrediction(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}
		label := c.Param("label")

		prediction, err := deps.SegmentService.FetchLabelPrediction(c.Request.Context(), videoID, label)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				types.SendNotFound(c, "No prediction for label "+label)
				return
			}
			types.SendBadGateway(c, "Failed to fetch label prediction", err)
			return
		}

		c.JSON(http.StatusOK, prediction)
	}
}

// GetSensitiveMeta returns the patient metadata for a file
// @Summary      Get sensitive metadata
// @Tags         videos
// @Produce      json
// @Param        id path int64 true "File ID"
// @Success      200 {object} types.SensitiveMetaResponse "Patient metadata"
// @Failure      404 {object} types.ErrorResponse "No metadata for that file"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/videos/{id}/sensitivemeta [get]
func GetSensitiveMeta(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		meta, err := deps.SensitiveMeta.Fetch(c.Request.Context(), fileID)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				types.SendNotFound(c, "No sensitive metadata for that file")
				return
			}
			types.SendBadGateway(c, "Failed to fetch sensitive metadata", err)
			return
		}

		c.JSON(http.StatusOK, types.SensitiveMetaResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Sensitive metadata loaded",
			},
			Meta: meta,
		})
	}
}

// UpdateSensitiveMeta writes patient metadata back
// @Summary      Update sensitive metadata
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        id path int64 true "File ID"
// @Param        meta body models.SensitiveMeta true "Metadata payload"
// @Success      200 {object} types.BaseResponse "Metadata updated"
// @Failure      400 {object} types.ErrorResponse "Invalid body"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/videos/{id}/sensitivemeta [put]
func UpdateSensitiveMeta(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		var meta models.SensitiveMeta
		if !types.BindJSONOrError(c, &meta) {
			return
		}
		meta.FileID = fileID

		if err := deps.SensitiveMeta.Update(c.Request.Context(), &meta); err != nil {
			types.SendBadGateway(c, "Failed to update sensitive metadata", err)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Sensitive metadata updated",
		})
	}
}

// VerifySensitiveMeta marks a file's metadata as human-verified
// @Summary      Verify sensitive metadata
// @Description  Flag a file's patient metadata as verified. Verification is refused
// @Description  while required fields (names, date of birth, examination date) are
// @Description  still missing.
// @Tags         videos
// @Produce      json
// @Param        id path int64 true "File ID"
// @Success      200 {object} types.SensitiveMetaResponse "Verified metadata"
// @Failure      400 {object} types.ErrorResponse "Required fields missing"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/videos/{id}/sensitivemeta/verify [post]
func VerifySensitiveMeta(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		meta, err := deps.SensitiveMeta.MarkVerified(c.Request.Context(), fileID)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				types.SendNotFound(c, "No sensitive metadata for that file")
				return
			}
			types.SendBadRequest(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, types.SensitiveMetaResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Sensitive metadata verified",
			},
			Meta: meta,
		})
	}
}
