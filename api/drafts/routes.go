package drafts

import (
	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
)

// RegisterRoutes registers draft routes on the videos group
func RegisterRoutes(videos *gin.RouterGroup, deps *types.Dependencies) {
	videos.GET("/:id/drafts", ListDrafts(deps))
	videos.POST("/:id/drafts", SaveDraft(deps))
	videos.DELETE("/:id/drafts", ClearDrafts(deps))
	videos.DELETE("/:id/drafts/:draftId", RemoveDraft(deps))
}
