package v1

import (
	"net/http"
	"strconv"

	"github.com/animatic-studio/dto"
	"github.com/animatic-studio/services"
	"github.com/gin-gonic/gin"
)

var phaseService = services.NewPhaseService()
var generationService = services.NewGenerationService()

// GetPhase godoc
// @Summary Get a phase by ID
// @Description Get a single production phase with its live content
// @Tags phases
// @Accept json
// @Produce json
// @Param id path string true "Phase ID"
// @Success 200 {object} models.Phase
// @Router /phases/{id} [get]
func GetPhase(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   phase,
	})
}

// UpdatePhaseContent godoc
// @Summary Update a phase's content
// @Description Overwrite the live content and append an immutable version snapshot
// @Tags phases
// @Accept json
// @Produce json
// @Param id path string true "Phase ID"
// @Param body body dto.UpdatePhaseContentRequest true "Content payload"
// @Success 200 {object} models.Phase
// @Router /phases/{id}/content [put]
func UpdatePhaseContent(c *gin.Context) {
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

	var req dto.UpdatePhaseContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	phase, err := phaseService.UpdatePhaseContent(phaseID, req.Content, req.Description, userID.(string), isAdmin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to update phase content: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   phase,
	})
}

// SavePhase godoc
// @Summary Save a phase and unlock the next one
// @Description Mark the phase completed and open the gate on the next pipeline phase
// @Tags phases
// @Accept json
// @Produce json
// @Param id path string true "Phase ID"
// @Success 200 {object} models.Phase
// @Router /phases/{id}/save [post]
func SavePhase(c *gin.Context) {
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

	phase, err := phaseService.SavePhaseAndUnlockNext(phaseID, userID.(string), isAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to save phase: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   phase,
	})
}

// GeneratePhase godoc
// @Summary Trigger generation for a phase
// @Description Invoke the external workflow and store its response as phase content
// @Tags phases
// @Accept json
// @Produce json
// @Param id path string true "Phase ID"
// @Param body body dto.GeneratePhaseRequest false "Operation"
// @Success 200 {object} models.GenerationJob
// @Router /phases/{id}/generate [post]
func GeneratePhase(c *gin.Context) {
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

	// Operation is optional; the body may be empty
	var req dto.GeneratePhaseRequest
	_ = c.ShouldBindJSON(&req)

	job, err := generationService.GeneratePhaseContent(c.Request.Context(), phaseID, req.Operation, userID.(string), isAdmin)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Generation failed: " + err.Error(),
			"jobId":   job.ID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   job,
	})
}

// ListPhaseVersions godoc
// @Summary List a phase's version history
// @Description Get the append-only version snapshots, newest first
// @Tags phases
// @Accept json
// @Produce json
// @Param id path string true "Phase ID"
// @Success 200 {array} models.PhaseVersion
// @Router /phases/{id}/versions [get]
func ListPhaseVersions(c *gin.Context) {
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

	versions, err := phaseService.ListVersions(phaseID, userID.(string), isAdmin)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Failed to retrieve versions: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   versions,
	})
}

// RestorePhaseVersion godoc
// @Summary Restore an old version
// @Description Copy an old snapshot back as the live content (as a new version)
// @Tags phases
// @Accept json
// @Produce json
// @Param id path string true "Phase ID"
// @Param number path int true "Version number"
// @Success 200 {object} models.Phase
// @Router /phases/{id}/versions/{number}/restore [post]
func RestorePhaseVersion(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not authenticated"})
		return
	}

	role, _ := c.Get("role")
	isAdmin := role == "admin"

	phaseID := c.Param("id")
	versionNumber, err := strconv.Atoi(c.Param("number"))
	if phaseID == "" || err != nil || versionNumber < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Phase ID and version number are required"})
		return
	}

	phase, err := phaseService.RestoreVersion(phaseID, versionNumber, userID.(string), isAdmin)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Failed to restore version: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   phase,
	})
}
