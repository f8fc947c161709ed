package videos

import (
	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
)

// RegisterRoutes registers video routes on the videos group
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", ListVideos(deps))
	group.GET("/:id", GetVideo(deps))
	group.PUT("/:id/status", UpdateStatus(deps))
	group.GET("/:id/segments", GetSegments(deps))
	group.GET("/:id/prediction/:label", GetLabelPrediction(deps))
	group.GET("/:id/sensitivemeta", GetSensitiveMeta(deps))
	group.PUT("/:id/sensitivemeta", UpdateSensitiveMeta(deps))
	group.POST("/:id/sensitivemeta/verify", VerifySensitiveMeta(deps))
}
