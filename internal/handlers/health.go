// internal/handlers/health.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoplens/shoplens-backend/internal/cache"
	"github.com/shoplens/shoplens-backend/internal/utils"
)

type HealthHandler struct {
	startedAt   time.Time
	resultCache *cache.Cache
}

func NewHealthHandler(resultCache *cache.Cache) *HealthHandler {
	return &HealthHandler{
		startedAt:   time.Now(),
		resultCache: resultCache,
	}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"cached_stores":  h.resultCache.Len(),
		"cached_urls":    h.resultCache.Keys(),
	})
}
