package annotations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
)

// SelectionState is the current multi-select state.
type SelectionState struct {
	types.BaseResponse
	Selected  []string `json:"selected"`
	CanEdit   bool     `json:"canEdit"`
	CanDelete bool     `json:"canDelete"`
}

// GetSelection returns the current selection
// @Summary      Get the annotation selection
// @Description  Return the selected annotation IDs together with the derived edit and
// @Description  delete affordances: editing requires exactly one selected annotation,
// @Description  deleting at least one.
// @Tags         annotations
// @Produce      json
// @Success      200 {object} SelectionState "Current selection"
// @Router       /api/v1/annotations/selection [get]
func GetSelection(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, selectionState(deps, "Selection"))
	}
}

// SelectAnnotation adds an annotation to the selection
// @Summary      Select an annotation
// @Tags         annotations
// @Produce      json
// @Param        id path string true "Annotation ID"
// @Success      200 {object} SelectionState "Selection after the change"
// @Router       /api/v1/annotations/selection/{id} [post]
func SelectAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.AnnotationService.SelectAnnotation(c.Param("id"))
		c.JSON(http.StatusOK, selectionState(deps, "Annotation selected"))
	}
}

// DeselectAnnotation removes an annotation from the selection
// @Summary      Deselect an annotation
// @Tags         annotations
// @Produce      json
// @Param        id path string true "Annotation ID"
// @Success      200 {object} SelectionState "Selection after the change"
// @Router       /api/v1/annotations/selection/{id} [delete]
func DeselectAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.AnnotationService.DeselectAnnotation(c.Param("id"))
		c.JSON(http.StatusOK, selectionState(deps, "Annotation deselected"))
	}
}

// ToggleSelection flips an annotation's selection state
// @Summary      Toggle an annotation's selection
// @Tags         annotations
// @Produce      json
// @Param        id path string true "Annotation ID"
// @Success      200 {object} SelectionState "Selection after the change"
// @Router       /api/v1/annotations/selection/{id}/toggle [post]
func ToggleSelection(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.AnnotationService.ToggleSelection(c.Param("id"))
		c.JSON(http.StatusOK, selectionState(deps, "Selection toggled"))
	}
}

// SelectAll selects every loaded annotation
// @Summary      Select all annotations
// @Tags         annotations
// @Produce      json
// @Success      200 {object} SelectionState "Selection after the change"
// @Router       /api/v1/annotations/selection/all [post]
func SelectAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.AnnotationService.SelectAll()
		c.JSON(http.StatusOK, selectionState(deps, "All annotations selected"))
	}
}

// ClearSelection empties the selection
// @Summary      Clear the annotation selection
// @Tags         annotations
// @Produce      json
// @Success      200 {object} SelectionState "Empty selection"
// @Router       /api/v1/annotations/selection [delete]
func ClearSelection(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.AnnotationService.ClearSelection()
		c.JSON(http.StatusOK, selectionState(deps, "Selection cleared"))
	}
}

func selectionState(deps *types.Dependencies, message string) SelectionState {
	return SelectionState{
		BaseResponse: types.BaseResponse{
			Status:  types.StatusOK,
			Message: message,
		},
		Selected:  deps.AnnotationService.SelectedAnnotations(),
		CanEdit:   deps.AnnotationService.CanEdit(),
		CanDelete: deps.AnnotationService.CanDelete(),
	}
}
