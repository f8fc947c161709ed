package stats

import (
	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
)

// RegisterRoutes registers stats routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", GetStats(deps))
	group.POST("/refresh", RefreshStats(deps))
}
