package annotations

import (
	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
)

// RegisterRoutes registers annotation routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", ListAnnotations(deps))
	group.POST("", CreateAnnotation(deps))
	group.GET("/export", ExportAnnotations(deps))
	group.POST("/bulk-delete", BulkDeleteAnnotations(deps))
	group.POST("/validate/:id", ValidateFile(deps))
	group.POST("/annotate/:id", AnnotateFile(deps))

	group.GET("/selection", GetSelection(deps))
	group.DELETE("/selection", ClearSelection(deps))
	group.POST("/selection/all", SelectAll(deps))
	group.POST("/selection/:id", SelectAnnotation(deps))
	group.DELETE("/selection/:id", DeselectAnnotation(deps))
	group.POST("/selection/:id/toggle", ToggleSelection(deps))

	group.PATCH("/:id", UpdateAnnotation(deps))
	group.DELETE("/:id", DeleteAnnotation(deps))
}
