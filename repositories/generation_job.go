package repositories

import (
	"time"

	"github.com/animatic-studio/database"
	"github.com/animatic-studio/models"
)

// GenerationJobRepository handles database operations for workflow jobs
type GenerationJobRepository struct{}

// NewGenerationJobRepository creates a new generation job repository instance
func NewGenerationJobRepository() *GenerationJobRepository {
	return &GenerationJobRepository{}
}

// Create inserts a new job record
func (r *GenerationJobRepository) Create(job models.GenerationJob) (models.GenerationJob, error) {
	result := database.DB.Create(&job)
	return job, result.Error
}

// FindByID retrieves a job by its ID
func (r *GenerationJobRepository) FindByID(id string) (models.GenerationJob, error) {
	var job models.GenerationJob
	result := database.DB.First(&job, "id = ?", id)
	return job, result.Error
}

// FindByProjectID retrieves all jobs for a project, newest first
func (r *GenerationJobRepository) FindByProjectID(projectID string) ([]models.GenerationJob, error) {
	var jobs []models.GenerationJob
	result := database.DB.Where("project_id = ?", projectID).Order("created_at DESC").Find(&jobs)
	return jobs, result.Error
}

// MarkCompleted records a successful workflow response on the job row
func (r *GenerationJobRepository) MarkCompleted(id string, output []byte) error {
	now := time.Now()
	result := database.DB.Model(&models.GenerationJob{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         models.JobStatusCompleted,
		"output_payload": output,
		"finished_at":    now,
	})
	return result.Error
}

// MarkFailed records a workflow failure on the job row
func (r *GenerationJobRepository) MarkFailed(id string, errMessage string) error {
	now := time.Now()
	result := database.DB.Model(&models.GenerationJob{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      models.JobStatusFailed,
		"error":       errMessage,
		"finished_at": now,
	})
	return result.Error
}
