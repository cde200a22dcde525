package repositories

import (
	"github.com/animatic-studio/database"
	"github.com/animatic-studio/models"
)

// PhaseVersionRepository handles database operations for version snapshots
type PhaseVersionRepository struct{}

// NewPhaseVersionRepository creates a new phase version repository instance
func NewPhaseVersionRepository() *PhaseVersionRepository {
	return &PhaseVersionRepository{}
}

// FindByPhaseID retrieves a phase's version history, newest first
func (r *PhaseVersionRepository) FindByPhaseID(phaseID string) ([]models.PhaseVersion, error) {
	var versions []models.PhaseVersion
	result := database.DB.Where("phase_id = ?", phaseID).Order("version_number DESC").Find(&versions)
	return versions, result.Error
}

// FindByPhaseAndNumber retrieves a single version snapshot
func (r *PhaseVersionRepository) FindByPhaseAndNumber(phaseID string, number int) (models.PhaseVersion, error) {
	var version models.PhaseVersion
	result := database.DB.Where("phase_id = ? AND version_number = ?", phaseID, number).First(&version)
	return version, result.Error
}
