package services

import (
	"testing"

	"github.com/animatic-studio/database"
	"github.com/animatic-studio/dto"
	"github.com/animatic-studio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectCreatesFivePhases(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "owner@example.com")

	project, phases, err := NewProjectService().CreateProject(models.Project{
		Name:   "Night Walk",
		UserID: user.ID,
	})
	require.NoError(t, err)
	require.Len(t, phases, 5)

	for i, phase := range phases {
		assert.Equal(t, project.ID, phase.ProjectID)
		assert.Equal(t, i+1, phase.PhaseIndex)
		assert.Equal(t, models.PhaseOrder[i], phase.PhaseName)
		assert.Equal(t, 0, phase.CurrentVersion)

		if i == 0 {
			assert.True(t, phase.CanProceed, "first phase must start unlocked")
			assert.Equal(t, models.PhaseStatusPending, phase.Status)
		} else {
			assert.False(t, phase.CanProceed, "phase %d must start locked", i+1)
			assert.Equal(t, models.PhaseStatusLocked, phase.Status)
		}
	}
}

func TestCreateProjectRollsBackOnPhaseInsertFailure(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "owner@example.com")

	// Force the phase insert to fail after the project insert succeeded
	require.NoError(t, database.DB.Migrator().DropTable(&models.Phase{}))

	_, _, err := NewProjectService().CreateProject(models.Project{
		Name:   "Doomed",
		UserID: user.ID,
	})
	require.Error(t, err)

	// The transaction rolled back: no project without phases can exist
	var count int64
	require.NoError(t, database.DB.Model(&models.Project{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetProjectDetailOwnership(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	stranger := createTestUser(t, "stranger@example.com")
	project, _ := createTestProject(t, owner.ID, "Night Walk")

	service := NewProjectService()

	got, err := service.GetProjectDetail(project.ID, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Night Walk", got.Name)
	assert.Len(t, got.Phases, 5)

	_, err = service.GetProjectDetail(project.ID, stranger.ID, false)
	assert.Error(t, err)

	// Admin can see any project
	_, err = service.GetProjectDetail(project.ID, stranger.ID, true)
	assert.NoError(t, err)
}

func TestListProjectsScopedToOwner(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	createTestProject(t, alice.ID, "Alpha")
	createTestProject(t, alice.ID, "Beta")
	createTestProject(t, bob.ID, "Gamma")

	service := NewProjectService()

	response, err := service.ListProjects(dto.ProjectFilter{UserID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), response.TotalCount)
	assert.Len(t, response.Projects, 2)

	// Admin listing sees everything
	response, err = service.ListProjects(dto.ProjectFilter{UserID: bob.ID, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), response.TotalCount)
}

func TestListProjectsPagination(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "owner@example.com")
	for _, name := range []string{"One", "Two", "Three"} {
		createTestProject(t, user.ID, name)
	}

	response, err := NewProjectService().ListProjects(dto.ProjectFilter{
		UserID:   user.ID,
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), response.TotalCount)
	assert.Equal(t, 2, response.TotalPages)
	assert.Len(t, response.Projects, 1)
}

func TestUpdateProjectPreservesOwner(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	project, _ := createTestProject(t, owner.ID, "Night Walk")

	service := NewProjectService()

	updated, err := service.UpdateProject(models.Project{
		ID:     project.ID,
		Name:   "Night Walk (final)",
		UserID: "someone-else",
	}, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Night Walk (final)", updated.Name)
	assert.Equal(t, owner.ID, updated.UserID)
	// Empty status falls back to the stored value
	assert.Equal(t, models.ProjectStatusActive, updated.Status)
}

func TestDeleteProjectCascades(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	project, phases := createTestProject(t, owner.ID, "Night Walk")

	phaseService := NewPhaseService()
	_, err := phaseService.UpdatePhaseContent(phases[0].ID, []byte(`{"scenes": {}}`), "", owner.ID, false)
	require.NoError(t, err)

	service := NewProjectService()
	require.NoError(t, service.DeleteProject(project.ID, owner.ID, false))

	_, err = service.GetProjectDetail(project.ID, owner.ID, false)
	assert.Error(t, err)

	remaining, err := phaseService.phaseRepo.FindByProjectID(project.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	versions, err := phaseService.versionRepo.FindByPhaseID(phases[0].ID)
	require.NoError(t, err)
	assert.Empty(t, versions)

	// A second delete reports not found instead of silently succeeding
	err = service.DeleteProject(project.ID, owner.ID, false)
	assert.Error(t, err)
}

func TestDeleteProjectRequiresOwnership(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	stranger := createTestUser(t, "stranger@example.com")
	project, _ := createTestProject(t, owner.ID, "Night Walk")

	service := NewProjectService()

	err := service.DeleteProject(project.ID, stranger.ID, false)
	assert.Error(t, err)

	// Still there
	_, err = service.GetProjectDetail(project.ID, owner.ID, false)
	assert.NoError(t, err)
}
