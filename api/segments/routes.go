package segments

import (
	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
)

// RegisterRoutes registers segment routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", CreateSegment(deps))
	group.PATCH("/:id", UpdateSegment(deps))
	group.DELETE("/:id", DeleteSegment(deps))
}
