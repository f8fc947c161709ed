package drafts

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
	"github.com/lx-annotate/annotate-api/internal/models"
)

// ListDrafts returns the pending drafts for a video
// @Summary      List annotation drafts for a video
// @Description  Retrieve all not-yet-committed annotation drafts stored for a video.
// @Description  Drafts survive gateway restarts; they are persisted locally and never
// @Description  sent to the clinical backend until explicitly committed.
// @Tags         drafts
// @Produce      json
// @Param        id path string true "Video identifier"
// @Success      200 {object} types.DraftsResponse "Drafts for the video"
// @Router       /api/v1/videos/{id}/drafts [get]
func ListDrafts(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID := c.Param("id")
		drafts := deps.DraftService.DraftsForVideo(videoID)

		c.JSON(http.StatusOK, types.DraftsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: fmt.Sprintf("Found %d drafts", len(drafts)),
			},
			VideoID: videoID,
			Drafts:  drafts,
			Count:   len(drafts),
		})
	}
}

// SaveDraft creates or updates a draft
// @Summary      Save an annotation draft
// @Description  Upsert a draft for a video. A draft with a known ID replaces the stored
// @Description  copy in place and keeps its original creation time; a draft without an
// @Description  ID gets a generated one.
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        id path string true "Video identifier"
// @Param        draft body types.SaveDraftRequest true "Draft payload"
// @Success      201 {object} types.SingleDraftResponse "Stored draft with assigned ID"
// @Failure      400 {object} types.ErrorResponse "Invalid request body"
// @Router       /api/v1/videos/{id}/drafts [post]
func SaveDraft(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID := c.Param("id")

		var req types.SaveDraftRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		if *req.Start < 0 || *req.End < *req.Start {
			types.SendBadRequest(c, "Draft range must satisfy 0 <= start <= end")
			return
		}

		draft := models.AnnotationDraft{
			ID:    models.NormalizeDraftID(req.ID),
			Label: req.Label,
			Start: *req.Start,
			End:   *req.End,
			Note:  req.Note,
		}
		saved := deps.DraftService.SaveDraft(videoID, draft)

		types.SendCreated(c, types.SingleDraftResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Draft saved",
			},
			Draft: saved,
		})
	}
}

// RemoveDraft deletes a single draft
// @Summary      Remove an annotation draft
// @Description  Delete one draft by ID. Removing the last draft of a video also removes
// @Description  the video's bucket from storage.
// @Tags         drafts
// @Produce      json
// @Param        id path string true "Video identifier"
// @Param        draftId path string true "Draft identifier"
// @Success      200 {object} types.BaseResponse "Draft removed"
// @Failure      404 {object} types.ErrorResponse "No draft with that ID"
// @Router       /api/v1/videos/{id}/drafts/{draftId} [delete]
func RemoveDraft(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID := c.Param("id")
		draftID := c.Param("draftId")

		if !deps.DraftService.RemoveDraft(videoID, draftID) {
			types.SendNotFound(c, "Draft not found")
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Draft removed",
		})
	}
}

// ClearDrafts deletes all drafts for a video
// @Summary      Clear all drafts for a video
// @Tags         drafts
// @Produce      json
// @Param        id path string true "Video identifier"
// @Success      200 {object} types.BaseResponse "Drafts cleared"
// @Router       /api/v1/videos/{id}/drafts [delete]
func ClearDrafts(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID := c.Param("id")
		deps.DraftService.ClearDraftsForVideo(videoID)

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Drafts cleared",
		})
	}
}
