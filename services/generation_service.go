package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/animatic-studio/config"
	"github.com/animatic-studio/dto"
	"github.com/animatic-studio/models"
	"github.com/animatic-studio/repositories"
	"github.com/google/uuid"
)

// GenerationService drives the external generation workflow: one
// synchronous POST per request, with the exchange recorded as a
// GenerationJob audit row. The call carries a deadline; a hung workflow
// run fails the job instead of blocking forever.
type GenerationService struct {
	phaseRepo    *repositories.PhaseRepository
	projectRepo  *repositories.ProjectRepository
	jobRepo      *repositories.GenerationJobRepository
	phaseService *PhaseService
	webhookURL   string
	client       *http.Client
}

// NewGenerationService creates a new generation service instance
func NewGenerationService() *GenerationService {
	timeout := time.Duration(config.GetEnvInt("GENERATION_TIMEOUT_SECONDS", 120)) * time.Second

	return &GenerationService{
		phaseRepo:    repositories.NewPhaseRepository(),
		projectRepo:  repositories.NewProjectRepository(),
		jobRepo:      repositories.NewGenerationJobRepository(),
		phaseService: NewPhaseService(),
		webhookURL:   config.GetEnv("GENERATION_WEBHOOK_URL", ""),
		client:       &http.Client{Timeout: timeout},
	}
}

// GeneratePhaseContent invokes the external workflow for a phase and
// stores the response body as the phase's next content version. The
// response document is treated as opaque beyond the per-phase shape
// checks applied at save time.
func (s *GenerationService) GeneratePhaseContent(ctx context.Context, phaseID string, operation string, userID string, isAdmin bool) (models.GenerationJob, error) {
	if s.webhookURL == "" {
		return models.GenerationJob{}, fmt.Errorf("GENERATION_WEBHOOK_URL not configured")
	}

	phase, err := s.phaseService.GetPhase(phaseID, userID, isAdmin)
	if err != nil {
		return models.GenerationJob{}, err
	}

	// The linear unlock gate applies to generation too
	if !phase.CanProceed {
		return models.GenerationJob{}, fmt.Errorf("phase %s is locked: save the preceding phase first", phase.PhaseName)
	}

	project, err := s.projectRepo.FindByID(phase.ProjectID)
	if err != nil {
		return models.GenerationJob{}, err
	}

	if operation == "" {
		operation = "generate"
	}

	// Fresh random job identifier per invocation
	jobID := uuid.NewString()

	payload := dto.GenerationWebhookPayload{
		Phase:       string(phase.PhaseName),
		Operation:   operation,
		JobID:       jobID,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Data: dto.GenerationWebhookData{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			Phase:       string(phase.PhaseName),
			Timestamp:   time.Now().Format(time.RFC3339),
		},
	}

	inputPayload, err := json.Marshal(payload)
	if err != nil {
		return models.GenerationJob{}, err
	}

	// Audit row first, so a crashed call still leaves a trace
	now := time.Now()
	job := models.GenerationJob{
		ID:           jobID,
		ProjectID:    project.ID,
		PhaseName:    phase.PhaseName,
		Operation:    operation,
		Status:       models.JobStatusPending,
		InputPayload: inputPayload,
		StartedAt:    &now,
	}
	job, err = s.jobRepo.Create(job)
	if err != nil {
		return models.GenerationJob{}, err
	}

	if err := s.phaseRepo.UpdateStatus(phase.ID, models.PhaseStatusProcessing); err != nil {
		log.Printf("Warning: failed to mark phase %s as processing: %v", phase.ID, err)
	}

	output, err := s.callWebhook(ctx, inputPayload)
	if err != nil {
		s.failJob(job.ID, phase.ID, err)
		return job, fmt.Errorf("generation workflow call failed: %w", err)
	}

	// Store the workflow response as the phase's next content version
	if _, err := s.phaseService.UpdatePhaseContent(phase.ID, output,
		fmt.Sprintf("Generated by workflow job %s", jobID), userID, isAdmin); err != nil {
		s.failJob(job.ID, phase.ID, err)
		return job, err
	}

	if err := s.jobRepo.MarkCompleted(job.ID, output); err != nil {
		log.Printf("Warning: failed to mark job %s completed: %v", job.ID, err)
	}

	job, _ = s.jobRepo.FindByID(job.ID)
	return job, nil
}

// GetJob retrieves a generation job, enforcing project ownership
func (s *GenerationService) GetJob(jobID string, userID string, isAdmin bool) (models.GenerationJob, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return models.GenerationJob{}, err
	}

	if !isAdmin {
		owner, err := s.projectRepo.GetOwnerID(job.ProjectID)
		if err != nil {
			return models.GenerationJob{}, err
		}
		if owner != userID {
			return models.GenerationJob{}, fmt.Errorf("unauthorized: you don't have permission to access this job")
		}
	}

	return job, nil
}

// ListProjectJobs returns a project's generation history, newest first,
// enforcing project ownership
func (s *GenerationService) ListProjectJobs(projectID string, userID string, isAdmin bool) ([]models.GenerationJob, error) {
	if !isAdmin {
		owner, err := s.projectRepo.GetOwnerID(projectID)
		if err != nil {
			return nil, err
		}
		if owner != userID {
			return nil, fmt.Errorf("unauthorized: you don't have permission to access this project")
		}
	}

	return s.jobRepo.FindByProjectID(projectID)
}

// callWebhook performs the synchronous POST and returns the raw response body
func (s *GenerationService) callWebhook(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	output, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("workflow returned status %d: %s", resp.StatusCode, string(output))
	}

	return output, nil
}

// failJob records a failure on the job row and releases the phase gate
func (s *GenerationService) failJob(jobID string, phaseID string, cause error) {
	if err := s.jobRepo.MarkFailed(jobID, cause.Error()); err != nil {
		log.Printf("Warning: failed to mark job %s failed: %v", jobID, err)
	}
	if err := s.phaseRepo.UpdateStatus(phaseID, models.PhaseStatusPending); err != nil {
		log.Printf("Warning: failed to reset phase %s status: %v", phaseID, err)
	}
}
