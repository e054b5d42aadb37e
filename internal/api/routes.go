package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the API routes
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		v1.GET("/stats", h.GetStats)
		v1.GET("/commits", h.GetCommits)
		v1.GET("/authors", h.GetAuthors)
		v1.POST("/sync", h.TriggerSync)
		v1.DELETE("/commits", h.ResetRepository)
	}

	return r
}
