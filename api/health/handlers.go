package health

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
	"github.com/lx-annotate/annotate-api/internal/models"
	"github.com/lx-annotate/annotate-api/internal/storage"
)

// Get handles health check requests
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		// Add storage status
		if deps != nil && deps.Storage != nil {
			response["storage"] = getStorageStatus(deps)
		} else {
			response["storage"] = gin.H{"status": "not configured"}
		}

		// Add backend status
		if deps != nil && deps.Backend != nil {
			response["backend"] = gin.H{
				"status":  "configured",
				"metrics": deps.Backend.Metrics(),
			}
		} else {
			response["backend"] = gin.H{"status": "not configured"}
		}

		c.JSON(http.StatusOK, response)
	}
}

// getStorageStatus probes the draft store by reading the drafts key
func getStorageStatus(deps *types.Dependencies) gin.H {
	if _, err := deps.Storage.Get(models.DraftStorageKey); err != nil {
		// A missing key means the store is reachable but empty
		if errors.Is(err, storage.ErrNotFound) {
			return gin.H{"status": "healthy"}
		}
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}
	return gin.H{"status": "healthy"}
}
