package v1

import (
	"net/http"

	"github.com/animatic-studio/lib/timeline"
	"github.com/gin-gonic/gin"
)

// GetPhaseTimeline godoc
// @Summary Get the derived timeline view of a phase
// @Description Recompute the scene/element timeline from the phase's live content
// @Tags phases
// @Accept json
// @Produce json
// @Param id path string true "Phase ID"
// @Success 200 {object} timeline.Result
// @Router /phases/{id}/timeline [get]
func GetPhaseTimeline(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not authenticated"})
		return
	}

	role, _ := c.Get("role")
	isAdmin := role == "admin"

	phaseID := c.Param("id")
	if phaseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Phase ID is required"})
		return
	}

	phase, err := phaseService.GetPhase(phaseID, userID.(string), isAdmin)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Phase not found or access denied: " + err.Error(),
		})
		return
	}

	// Derived view: recomputed on every read, never persisted.
	// Empty content parses to the safe empty state.
	result := timeline.Parse(phase.Content)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   result,
	})
}
