package v1

import (
	"net/http"

	"github.com/animatic-studio/services"
	"github.com/gin-gonic/gin"
)

var statsService = services.NewStatsService()

// GetPlatformStats godoc
// @Summary Get platform statistics
// @Description Get aggregate counts of users, projects, phases and generation jobs (admin only)
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /stats [get]
func GetPlatformStats(c *gin.Context) {
	stats, err := statsService.GetPlatformStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to collect platform statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   stats,
	})
}
