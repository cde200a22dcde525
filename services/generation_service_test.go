package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/animatic-studio/dto"
	"github.com/animatic-studio/models"
	"github.com/animatic-studio/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGenerationService builds a service pointed at a stub webhook
func newTestGenerationService(webhookURL string) *GenerationService {
	return &GenerationService{
		phaseRepo:    repositories.NewPhaseRepository(),
		projectRepo:  repositories.NewProjectRepository(),
		jobRepo:      repositories.NewGenerationJobRepository(),
		phaseService: NewPhaseService(),
		webhookURL:   webhookURL,
		client:       &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGeneratePhaseContentSuccess(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	project, phases := createTestProject(t, owner.ID, "Night Walk")

	var received dto.GenerationWebhookPayload
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"scenes": {"scene_1": {"description": "generated"}}}`))
	}))
	defer stub.Close()

	service := newTestGenerationService(stub.URL)

	job, err := service.GeneratePhaseContent(context.Background(), phases[0].ID, "generate", owner.ID, false)
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusCompleted, job.Status)
	assert.NotEmpty(t, job.ID)
	assert.Contains(t, string(job.OutputPayload), "generated")

	// The webhook payload carries the project and phase context
	assert.Equal(t, "script_interpretation", received.Phase)
	assert.Equal(t, "generate", received.Operation)
	assert.Equal(t, job.ID, received.JobID)
	assert.Equal(t, project.ID, received.ProjectID)
	assert.Equal(t, "Night Walk", received.ProjectName)
	assert.Equal(t, project.ID, received.Data.ProjectID)

	// The response landed as the phase's first content version
	phase, err := service.phaseService.GetPhase(phases[0].ID, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, phase.CurrentVersion)
	assert.Equal(t, models.PhaseStatusPending, phase.Status)
	assert.Contains(t, string(phase.Content), "generated")
}

func TestGeneratePhaseContentLockedPhase(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	_, phases := createTestProject(t, owner.ID, "Night Walk")

	service := newTestGenerationService("http://localhost:1") // never reached

	_, err := service.GeneratePhaseContent(context.Background(), phases[1].ID, "generate", owner.ID, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}

func TestGeneratePhaseContentWebhookFailure(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	_, phases := createTestProject(t, owner.ID, "Night Walk")

	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow exploded", http.StatusInternalServerError)
	}))
	defer stub.Close()

	service := newTestGenerationService(stub.URL)

	job, err := service.GeneratePhaseContent(context.Background(), phases[0].ID, "generate", owner.ID, false)
	require.Error(t, err)

	// The audit row records the failure and the phase gate is released
	stored, err := service.jobRepo.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, stored.Status)
	assert.Contains(t, stored.Error, "500")

	phase, err := service.phaseService.GetPhase(phases[0].ID, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseStatusPending, phase.Status)
	assert.Equal(t, 0, phase.CurrentVersion)
}

func TestGeneratePhaseContentMalformedResponse(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	_, phases := createTestProject(t, owner.ID, "Night Walk")

	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	}))
	defer stub.Close()

	service := newTestGenerationService(stub.URL)

	job, err := service.GeneratePhaseContent(context.Background(), phases[0].ID, "generate", owner.ID, false)
	require.Error(t, err)

	stored, err := service.jobRepo.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, stored.Status)

	// No content version was stored
	phase, err := service.phaseService.GetPhase(phases[0].ID, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, phase.CurrentVersion)
}

func TestGeneratePhaseContentNoWebhookConfigured(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	_, phases := createTestProject(t, owner.ID, "Night Walk")

	service := newTestGenerationService("")

	_, err := service.GeneratePhaseContent(context.Background(), phases[0].ID, "generate", owner.ID, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GENERATION_WEBHOOK_URL")
}

func TestListProjectJobs(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	stranger := createTestUser(t, "stranger@example.com")
	project, phases := createTestProject(t, owner.ID, "Night Walk")

	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scenes": {}}`))
	}))
	defer stub.Close()

	service := newTestGenerationService(stub.URL)

	first, err := service.GeneratePhaseContent(context.Background(), phases[0].ID, "generate", owner.ID, false)
	require.NoError(t, err)
	second, err := service.GeneratePhaseContent(context.Background(), phases[0].ID, "regenerate", owner.ID, false)
	require.NoError(t, err)

	jobs, err := service.ListProjectJobs(project.ID, owner.ID, false)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	ids := []string{jobs[0].ID, jobs[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)

	_, err = service.ListProjectJobs(project.ID, stranger.ID, false)
	assert.Error(t, err)

	jobs, err = service.ListProjectJobs(project.ID, stranger.ID, true)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestGetJobOwnership(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	stranger := createTestUser(t, "stranger@example.com")
	_, phases := createTestProject(t, owner.ID, "Night Walk")

	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scenes": {}}`))
	}))
	defer stub.Close()

	service := newTestGenerationService(stub.URL)
	job, err := service.GeneratePhaseContent(context.Background(), phases[0].ID, "generate", owner.ID, false)
	require.NoError(t, err)

	_, err = service.GetJob(job.ID, owner.ID, false)
	assert.NoError(t, err)

	_, err = service.GetJob(job.ID, stranger.ID, false)
	assert.Error(t, err)

	_, err = service.GetJob(job.ID, stranger.ID, true)
	assert.NoError(t, err)
}
