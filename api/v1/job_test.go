package v1

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/animatic-studio/database"
	"github.com/animatic-studio/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupHandlerTestDB points the shared database handle at a fresh
// in-memory SQLite database for one handler test.
func setupHandlerTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Phase{},
		&models.PhaseVersion{},
		&models.GenerationJob{},
	))

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
	})
}

// jobStreamRouter serves the websocket route with a fixed caller identity
func jobStreamRouter(userID string, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("role", role)
	})
	router.GET("/jobs/:id/ws", JobProgressWebSocket)
	return router
}

func createStreamFixtures(t *testing.T, status string) (models.User, models.GenerationJob) {
	t.Helper()

	user := models.User{Email: "owner@example.com", Password: "hashed"}
	require.NoError(t, database.DB.Create(&user).Error)

	project := models.Project{Name: "Night Walk", UserID: user.ID}
	require.NoError(t, database.DB.Create(&project).Error)

	job := models.GenerationJob{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		PhaseName: models.PhaseScriptInterpretation,
		Operation: "generate",
		Status:    status,
	}
	require.NoError(t, database.DB.Create(&job).Error)

	return user, job
}

func dialJobStream(t *testing.T, serverURL string, jobID string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/jobs/" + jobID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func TestJobProgressWebSocketStreamsUntilTerminal(t *testing.T) {
	setupHandlerTestDB(t)
	user, job := createStreamFixtures(t, models.JobStatusPending)

	server := httptest.NewServer(jobStreamRouter(user.ID, "user"))
	defer server.Close()

	conn := dialJobStream(t, server.URL, job.ID)
	defer conn.Close()

	var first models.GenerationJob
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, models.JobStatusPending, first.Status)

	// Complete the job; the poll loop pushes the change and closes
	require.NoError(t, database.DB.Model(&models.GenerationJob{}).
		Where("id = ?", job.ID).Update("status", models.JobStatusCompleted).Error)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var update models.GenerationJob
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, models.JobStatusCompleted, update.Status)

	// Terminal status ends the stream
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestJobProgressWebSocketTerminalJobClosesImmediately(t *testing.T) {
	setupHandlerTestDB(t)
	user, job := createStreamFixtures(t, models.JobStatusCompleted)

	server := httptest.NewServer(jobStreamRouter(user.ID, "user"))
	defer server.Close()

	conn := dialJobStream(t, server.URL, job.ID)
	defer conn.Close()

	var frame models.GenerationJob
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, models.JobStatusCompleted, frame.Status)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestJobProgressWebSocketRejectsStranger(t *testing.T) {
	setupHandlerTestDB(t)
	_, job := createStreamFixtures(t, models.JobStatusPending)

	server := httptest.NewServer(jobStreamRouter("someone-else", "user"))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/jobs/" + job.ID + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}
