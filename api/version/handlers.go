package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Build information, set via ldflags at build time
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Annotate Gateway API",
			"version":     Version,
			"commit":      Commit,
			"buildDate":   BuildDate,
			"description": "Gateway for medical video annotation workflows",
			"status":      "running",
		})
	}
}
