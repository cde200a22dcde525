package repositories

import (
	"github.com/animatic-studio/database"
	"github.com/animatic-studio/models"
	"gorm.io/gorm"
)

// PhaseRepository handles database operations for project phases
type PhaseRepository struct{}

// NewPhaseRepository creates a new phase repository instance
func NewPhaseRepository() *PhaseRepository {
	return &PhaseRepository{}
}

// FindByID retrieves a phase by its ID
func (r *PhaseRepository) FindByID(id string) (models.Phase, error) {
	var phase models.Phase
	result := database.DB.First(&phase, "id = ?", id)
	return phase, result.Error
}

// FindByProjectID retrieves all phases for a project in pipeline order
func (r *PhaseRepository) FindByProjectID(projectID string) ([]models.Phase, error) {
	var phases []models.Phase
	result := database.DB.Where("project_id = ?", projectID).Order("phase_index ASC").Find(&phases)
	return phases, result.Error
}

// Update modifies an existing phase
func (r *PhaseRepository) Update(phase models.Phase) error {
	result := database.DB.Save(&phase)
	return result.Error
}

// UpdateStatus sets the status column only
func (r *PhaseRepository) UpdateStatus(id string, status string) error {
	result := database.DB.Model(&models.Phase{}).Where("id = ?", id).Update("status", status)
	return result.Error
}

// DB returns the database instance
func (r *PhaseRepository) DB() *gorm.DB {
	return database.DB
}
