package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GetJob godoc
// @Summary Get a generation job
// @Description Get a workflow job's status and payloads from the audit log
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.GenerationJob
// @Router /jobs/{id} [get]
func GetJob(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not authenticated"})
		return
	}

	role, _ := c.Get("role")
	isAdmin := role == "admin"

	jobID := c.Param("id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Job ID is required"})
		return
	}

	job, err := generationService.GetJob(jobID, userID.(string), isAdmin)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Job not found or access denied: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   job,
	})
}

// ListProjectJobs godoc
// @Summary List a project's generation jobs
// @Description Get all workflow job records for a project, newest first
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.GenerationJob
// @Router /projects/{id}/jobs [get]
func ListProjectJobs(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not authenticated"})
		return
	}

	role, _ := c.Get("role")
	isAdmin := role == "admin"

	projectID := c.Param("id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID is required"})
		return
	}

	jobs, err := generationService.ListProjectJobs(projectID, userID.(string), isAdmin)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Failed to retrieve jobs: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   jobs,
	})
}

// JobProgressWebSocket streams a job's status over a websocket. The
// database is the source of truth: the current row is pushed once, then
// polled every second and re-pushed on change until the job reaches a
// terminal state.
func JobProgressWebSocket(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not authenticated"})
		return
	}

	role, _ := c.Get("role")
	isAdmin := role == "admin"

	jobID := c.Param("id")

	job, err := generationService.GetJob(jobID, userID.(string), isAdmin)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Job not found: " + err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "WebSocket upgrade failed"})
		return
	}
	defer conn.Close()

	// Read pump. Clients never send data, but reading is how a dropped
	// connection is noticed while the job sits unchanged.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(job); err != nil {
		return
	}
	if job.Terminal() {
		return
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	prevStatus := job.Status
	for {
		select {
		case <-disconnected:
			return
		case <-ticker.C:
			current, err := generationService.GetJob(jobID, userID.(string), isAdmin)
			if err != nil {
				continue
			}

			if current.Status != prevStatus {
				if err := conn.WriteJSON(current); err != nil {
					return
				}
				prevStatus = current.Status
			}

			if current.Terminal() {
				return
			}
		}
	}
}
