package segments

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
	"github.com/lx-annotate/annotate-api/internal/backend"
	"github.com/lx-annotate/annotate-api/internal/services/segments"
)

// CreateSegment commits a new labeled segment
// @Summary      Create a video segment
// @Description  Commit a labeled time range on a video. The label name is resolved to
// @Description  its backend ID first; times in seconds are converted to frame numbers
// @Description  at the video's frame rate before the write.
// @Tags         segments
// @Accept       json
// @Produce      json
// @Param        segment body types.CreateSegmentRequest true "Segment payload"
// @Success      201 {object} types.SingleSegmentResponse "Created segment"
// @Failure      400 {object} types.ErrorResponse "Invalid body or time range"
// @Failure      404 {object} types.ErrorResponse "Unknown label"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/video-segments [post]
func CreateSegment(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateSegmentRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		segment, err := deps.SegmentService.CreateSegment(
			c.Request.Context(), req.VideoID, req.Label, *req.StartTime, *req.EndTime)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				types.SendNotFound(c, "Unknown label "+req.Label)
				return
			}
			log.Printf("[ERROR] Failed to create segment: %v", err)
			types.SendBadRequest(c, err.Error())
			return
		}

		types.SendCreated(c, types.SingleSegmentResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Segment created",
			},
			Segment: segment,
		})
	}
}

// UpdateSegment edits a committed segment
// @Summary      Update a video segment
// @Description  Apply a partial update to a committed segment. Times in seconds are
// @Description  converted to frame numbers before the write; at least one field must
// @Description  be present.
// @Tags         segments
// @Accept       json
// @Produce      json
// @Param        id path int64 true "Segment ID"
// @Param        update body types.UpdateSegmentRequest true "Fields to change"
// @Success      200 {object} types.BaseResponse "Segment updated"
// @Failure      400 {object} types.ErrorResponse "Invalid ID or empty update"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/video-segments/{id} [patch]
func UpdateSegment(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		segmentID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		var req types.UpdateSegmentRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		update := segments.SegmentUpdate{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			LabelID:   req.LabelID,
		}
		if err := deps.SegmentService.UpdateSegment(c.Request.Context(), segmentID, update); err != nil {
			log.Printf("[ERROR] Failed to update segment %d: %v", segmentID, err)
			types.SendBadRequest(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Segment updated",
		})
	}
}

// DeleteSegment removes a committed segment
// @Summary      Delete a video segment
// @Tags         segments
// @Produce      json
// @Param        id path int64 true "Segment ID"
// @Success      200 {object} types.BaseResponse "Segment deleted"
// @Failure      400 {object} types.ErrorResponse "Invalid segment ID"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/video-segments/{id} [delete]
func DeleteSegment(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		segmentID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		if err := deps.SegmentService.DeleteSegment(c.Request.Context(), segmentID); err != nil {
			log.Printf("[ERROR] Failed to delete segment %d: %v", segmentID, err)
			types.SendBadGateway(c, "Failed to delete segment", err)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Segment deleted",
		})
	}
}
