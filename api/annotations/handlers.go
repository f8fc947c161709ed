package annotations

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
	"github.com/lx-annotate/annotate-api/internal/models"
	"github.com/lx-annotate/annotate-api/internal/services/annotations"
)

// ListAnnotations returns annotations, optionally filtered
// @Summary      List annotations
// @Description  Load annotations from the backend and apply the filter criteria from
// @Description  the query string. Filters stack: video, type, user, tags (the
// @Description  annotation must carry at least one of them), time range containment,
// @Description  public flag. Results are always sorted by start time.
// @Tags         annotations
// @Produce      json
// @Param        video_id query int64 false "Restrict to one video"
// @Param        type query string false "Annotation type" Enums(text, region, point, segment, classification, detection)
// @Param        user_id query string false "Restrict to one user"
// @Param        tags query string false "Comma-separated tags, any may match"
// @Param        start_time query number false "Range start in seconds"
// @Param        end_time query number false "Range end in seconds"
// @Param        is_public query bool false "Public flag"
// @Success      200 {object} types.AnnotationsResponse "Filtered annotations"
// @Failure      400 {object} types.ErrorResponse "Malformed filter parameter"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/annotations [get]
func ListAnnotations(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := filterFromQuery(c)
		if !ok {
			return
		}

		if err := deps.AnnotationService.LoadAnnotations(c.Request.Context(), filter.VideoID); err != nil {
			log.Printf("[ERROR] Failed to load annotations: %v", err)
			types.SendBadGateway(c, "Failed to load annotations", err)
			return
		}

		result := deps.AnnotationService.FilteredAnnotations(*filter)
		c.JSON(http.StatusOK, types.AnnotationsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: fmt.Sprintf("Found %d annotations", len(result)),
			},
			Annotations: result,
			Count:       len(result),
		})
	}
}

// filterFromQuery builds a Filter from the request's query string. Sends the
// error response itself when a parameter is malformed.
func filterFromQuery(c *gin.Context) (*annotations.Filter, bool) {
	filter := annotations.Filter{}

	videoID, ok := types.ParseInt64Query(c, "video_id")
	if !ok {
		return nil, false
	}
	filter.VideoID = videoID

	if typ := c.Query("type"); typ != "" {
		annotationType := models.AnnotationType(typ)
		if !annotationType.Valid() {
			types.SendBadRequest(c, "Invalid annotation type "+typ)
			return nil, false
		}
		filter.Type = annotationType
	}

	filter.UserID = c.Query("user_id")

	if tags := c.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	startRaw, endRaw := c.Query("start_time"), c.Query("end_time")
	if startRaw != "" || endRaw != "" {
		start, err := strconv.ParseFloat(startRaw, 64)
		if err != nil {
			types.SendBadRequest(c, "Invalid start_time")
			return nil, false
		}
		end, err := strconv.ParseFloat(endRaw, 64)
		if err != nil {
			types.SendBadRequest(c, "Invalid end_time")
			return nil, false
		}
		filter.TimeRange = &annotations.TimeRange{Start: start, End: end}
	}

	if isPublic := c.Query("is_public"); isPublic != "" {
		value, err := strconv.ParseBool(isPublic)
		if err != nil {
			types.SendBadRequest(c, "Invalid is_public")
			return nil, false
		}
		filter.IsPublic = &value
	}

	return &filter, true
}

// CreateAnnotation creates a new annotation
// @Summary      Create an annotation
// @Description  Validate and persist a new annotation. Zero-length time ranges are
// @Description  only accepted for point and classification annotations.
// @Tags         annotations
// @Accept       json
// @Produce      json
// @Param        annotation body types.CreateAnnotationRequest true "Annotation payload"
// @Success      201 {object} types.SingleAnnotationResponse "Created annotation"
// @Failure      400 {object} types.ErrorResponse "Invalid body or failed validation"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/annotations [post]
func CreateAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateAnnotationRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		annotation := req.ToAnnotation()
		if err := annotation.Validate(); err != nil {
			types.SendBadRequest(c, err.Error())
			return
		}

		created, err := deps.AnnotationService.CreateAnnotation(c.Request.Context(), annotation)
		if err != nil {
			log.Printf("[ERROR] Failed to create annotation: %v", err)
			types.SendBadGateway(c, "Failed to create annotation", err)
			return
		}

		types.SendCreated(c, types.SingleAnnotationResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Annotation created",
			},
			Annotation: created,
		})
	}
}

// UpdateAnnotation applies a partial update
// @Summary      Update an annotation
// @Tags         annotations
// @Accept       json
// @Produce      json
// @Param        id path string true "Annotation ID"
// @Param        updates body types.UpdateAnnotationRequest true "Fields to change"
// @Success      200 {object} types.SingleAnnotationResponse "Updated annotation"
// @Failure      400 {object} types.ErrorResponse "Invalid body"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/annotations/{id} [patch]
func UpdateAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var updates types.UpdateAnnotationRequest
		if !types.BindJSONOrError(c, &updates) {
			return
		}

		updated, err := deps.AnnotationService.UpdateAnnotation(c.Request.Context(), id, updates)
		if err != nil {
			log.Printf("[ERROR] Failed to update annotation %s: %v", id, err)
			types.SendBadGateway(c, "Failed to update annotation", err)
			return
		}

		c.JSON(http.StatusOK, types.SingleAnnotationResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Annotation updated",
			},
			Annotation: updated,
		})
	}
}

// DeleteAnnotation removes one annotation
// @Summary      Delete an annotation
// @Tags         annotations
// @Produce      json
// @Param        id path string true "Annotation ID"
// @Success      200 {object} types.BaseResponse "Annotation deleted"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/annotations/{id} [delete]
func DeleteAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if err := deps.AnnotationService.DeleteAnnotation(c.Request.Context(), id); err != nil {
			log.Printf("[ERROR] Failed to delete annotation %s: %v", id, err)
			types.SendBadGateway(c, "Failed to delete annotation", err)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: "Annotation deleted",
		})
	}
}

// BulkDeleteAnnotations removes several annotations in one call
// @Summary      Bulk delete annotations
// @Tags         annotations
// @Accept       json
// @Produce      json
// @Param        ids body types.BulkDeleteAnnotationsRequest true "Annotation IDs"
// @Success      200 {object} types.BaseResponse "Annotations deleted"
// @Failure      400 {object} types.ErrorResponse "Invalid body"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/annotations/bulk-delete [post]
func BulkDeleteAnnotations(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.BulkDeleteAnnotationsRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := deps.AnnotationService.BulkDeleteAnnotations(c.Request.Context(), req.IDs); err != nil {
			log.Printf("[ERROR] Failed to bulk delete %d annotations: %v", len(req.IDs), err)
			types.SendBadGateway(c, "Failed to delete annotations", err)
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: fmt.Sprintf("Deleted %d annotations", len(req.IDs)),
		})
	}
}

// ExportAnnotations streams the backend's export file through
// @Summary      Export annotations
// @Description  Pass the backend's export through unchanged, preserving its content
// @Description  type. Supported formats depend on the backend (json, csv).
// @Tags         annotations
// @Produce      json
// @Produce      text/csv
// @Param        format query string false "Export format" default(json)
// @Success      200 {string} string "Export payload"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/annotations/export [get]
func ExportAnnotations(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.DefaultQuery("format", "json")

		data, contentType, err := deps.AnnotationService.ExportAnnotations(c.Request.Context(), format)
		if err != nil {
			log.Printf("[ERROR] Failed to export annotations as %s: %v", format, err)
			types.SendBadGateway(c, "Failed to export annotations", err)
			return
		}

		c.Data(http.StatusOK, contentType, data)
	}
}

// ValidateFile re-syncs a file's segments for the validation workflow
// @Summary      Start segment validation for a file
// @Description  Reload the file's video and segments from the backend and mirror the
// @Description  segments into annotation form so validators see current state.
// @Tags         annotations
// @Produce      json
// @Param        id path int64 true "File ID"
// @Success      200 {object} types.AnnotationsResponse "Synced annotations"
// @Failure      400 {object} types.ErrorResponse "Invalid file ID"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/annotations/validate/{id} [post]
func ValidateFile(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		if !deps.AnnotationService.ValidateSegmentsAndExaminations(c.Request.Context(), fileID) {
			types.SendBadGateway(c, "Failed to sync segments for validation",
				fmt.Errorf("%s", deps.AnnotationService.Error()))
			return
		}

		sendSyncedAnnotations(c, deps, fileID)
	}
}

// AnnotateFile re-syncs a file's segments for the annotation workflow
// @Summary      Start segment annotation for a file
// @Tags         annotations
// @Produce      json
// @Param        id path int64 true "File ID"
// @Success      200 {object} types.AnnotationsResponse "Synced annotations"
// @Failure      400 {object} types.ErrorResponse "Invalid file ID"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/annotations/annotate/{id} [post]
func AnnotateFile(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		if !deps.AnnotationService.AnnotateSegmentsAndExaminations(c.Request.Context(), fileID) {
			types.SendBadGateway(c, "Failed to sync segments for annotation",
				fmt.Errorf("%s", deps.AnnotationService.Error()))
			return
		}

		sendSyncedAnnotations(c, deps, fileID)
	}
}

func sendSyncedAnnotations(c *gin.Context, deps *types.Dependencies, fileID int64) {
	filter := annotations.Filter{VideoID: &fileID}
	result := deps.AnnotationService.FilteredAnnotations(filter)

	c.JSON(http.StatusOK, types.AnnotationsResponse{
		BaseResponse: types.BaseResponse{
			Status:  types.StatusOK,
			Message: fmt.Sprintf("Synced %d annotations", len(result)),
		},
		Annotations: result,
		Count:       len(result),
	})
}
