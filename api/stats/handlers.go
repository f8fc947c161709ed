package stats

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lx-annotate/annotate-api/api/types"
)

// GetStats returns the aggregated annotation statistics
// @Summary      Get annotation statistics
// @Description  Return pending, in-progress and completed counts per annotation domain
// @Description  plus the combined totals. Counts are refreshed from the backend when
// @Description  older than five minutes; pass force=true to refresh unconditionally.
// @Tags         stats
// @Produce      json
// @Param        force query bool false "Force a refresh regardless of age"
// @Success      200 {object} types.StatsResponse "Aggregated counts"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/stats [get]
func GetStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var err error
		if c.Query("force") == "true" {
			_, err = deps.StatsService.FetchAnnotationStats(c.Request.Context())
		} else {
			err = deps.StatsService.RefreshIfNeeded(c.Request.Context())
		}
		if err != nil {
			log.Printf("[ERROR] Failed to refresh annotation stats: %v", err)
			types.SendBadGateway(c, "Failed to refresh annotation stats", err)
			return
		}

		c.JSON(http.StatusOK, statsResponse(deps, "Annotation statistics"))
	}
}

// RefreshStats forces a statistics refresh
// @Summary      Refresh annotation statistics
// @Description  Fetch fresh counts from the backend immediately. A refresh already in
// @Description  flight is not duplicated; the call returns the current aggregate.
// @Tags         stats
// @Produce      json
// @Success      200 {object} types.StatsResponse "Aggregated counts after the refresh"
// @Failure      502 {object} types.ErrorResponse "Backend unreachable"
// @Router       /api/v1/stats/refresh [post]
func RefreshStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := deps.StatsService.FetchAnnotationStats(c.Request.Context()); err != nil {
			log.Printf("[ERROR] Failed to fetch annotation stats: %v", err)
			types.SendBadGateway(c, "Failed to fetch annotation stats", err)
			return
		}

		c.JSON(http.StatusOK, statsResponse(deps, "Annotation statistics refreshed"))
	}
}

func statsResponse(deps *types.Dependencies, message string) types.StatsResponse {
	resp := types.StatsResponse{
		BaseResponse: types.BaseResponse{
			Status:  types.StatusOK,
			Message: message,
		},
		Stats: deps.StatsService.Stats(),
		Stale: deps.StatsService.NeedsRefresh(),
	}
	if updated := deps.StatsService.LastUpdated(); updated != nil {
		resp.LastUpdated = updated.UTC().Format(time.RFC3339)
	}
	return resp
}
