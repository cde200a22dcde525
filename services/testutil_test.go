package services

import (
	"testing"

	"github.com/animatic-studio/database"
	"github.com/animatic-studio/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the shared database handle at a fresh in-memory
// SQLite database for the duration of one test.
func setupTestDB(t *testing.T) {
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

// createTestUser inserts a user and returns it
func createTestUser(t *testing.T, email string) models.User {
	t.Helper()

	user := models.User{
		Email:    email,
		Password: "hashed",
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

// createTestProject creates a project with its five phases via the service
func createTestProject(t *testing.T, userID string, name string) (models.Project, []models.Phase) {
	t.Helper()

	project, phases, err := NewProjectService().CreateProject(models.Project{
		Name:   name,
		UserID: userID,
	})
	require.NoError(t, err)
	return project, phases
}
