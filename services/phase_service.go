package services

import (
	"fmt"

	"github.com/animatic-studio/models"
	"github.com/animatic-studio/repositories"
	"gorm.io/gorm"
)

// PhaseService implements the phase state machine: versioned content
// updates and the linear save-and-unlock progression across the five
// fixed phases.
//
// Precondition: one editor per phase at a time. Concurrent updates are
// not arbitrated; the unique (phase_id, version_number) index makes the
// losing writer fail instead of silently dropping a version row.
type PhaseService struct {
	phaseRepo   *repositories.PhaseRepository
	versionRepo *repositories.PhaseVersionRepository
	projectRepo *repositories.ProjectRepository
}

// NewPhaseService creates a new phase service instance
func NewPhaseService() *PhaseService {
	return &PhaseService{
		phaseRepo:   repositories.NewPhaseRepository(),
		versionRepo: repositories.NewPhaseVersionRepository(),
		projectRepo: repositories.NewProjectRepository(),
	}
}

// GetPhase retrieves a phase, enforcing project ownership
func (s *PhaseService) GetPhase(phaseID string, userID string, isAdmin bool) (models.Phase, error) {
	phase, err := s.phaseRepo.FindByID(phaseID)
	if err != nil {
		return models.Phase{}, err
	}

	if err := s.checkAccess(phase.ProjectID, userID, isAdmin); err != nil {
		return models.Phase{}, err
	}

	return phase, nil
}

// UpdatePhaseContent overwrites a phase's live content and appends an
// immutable version snapshot. Both writes run in one transaction: either
// the live content and its history row land together, or neither does.
func (s *PhaseService) UpdatePhaseContent(phaseID string, content []byte, description string, userID string, isAdmin bool) (models.Phase, error) {
	phase, err := s.phaseRepo.FindByID(phaseID)
	if err != nil {
		return models.Phase{}, err
	}

	if err := s.checkAccess(phase.ProjectID, userID, isAdmin); err != nil {
		return models.Phase{}, err
	}

	// Content must match the phase's expected shape before anything is written
	if err := models.ValidatePhaseContent(phase.PhaseName, content); err != nil {
		return models.Phase{}, fmt.Errorf("invalid content for phase %s: %w", phase.PhaseName, err)
	}

	if description == "" {
		description = fmt.Sprintf("Content update for %s", phase.PhaseName)
	}

	err = s.phaseRepo.DB().Transaction(func(tx *gorm.DB) error {
		// Re-read the version counter inside the transaction
		var current models.Phase
		if err := tx.First(&current, "id = ?", phaseID).Error; err != nil {
			return err
		}

		newVersion := current.CurrentVersion + 1

		updates := map[string]interface{}{
			"content":         content,
			"current_version": newVersion,
		}
		// A generation round-trip ends when its content lands
		if current.Status == models.PhaseStatusProcessing {
			updates["status"] = models.PhaseStatusPending
		}

		if err := tx.Model(&models.Phase{}).Where("id = ?", phaseID).Updates(updates).Error; err != nil {
			return err
		}

		version := models.PhaseVersion{
			PhaseID:           phaseID,
			VersionNumber:     newVersion,
			Content:           content,
			ChangeDescription: description,
		}
		return tx.Create(&version).Error
	})
	if err != nil {
		return models.Phase{}, err
	}

	return s.phaseRepo.FindByID(phaseID)
}

// SavePhaseAndUnlockNext marks a phase as saved and completed, and opens
// the gate on the next phase in the pipeline. No downstream effect past
// the last phase. Idempotent: saving a completed phase re-asserts the
// same flags.
func (s *PhaseService) SavePhaseAndUnlockNext(phaseID string, userID string, isAdmin bool) (models.Phase, error) {
	phase, err := s.phaseRepo.FindByID(phaseID)
	if err != nil {
		return models.Phase{}, err
	}

	if err := s.checkAccess(phase.ProjectID, userID, isAdmin); err != nil {
		return models.Phase{}, err
	}

	err = s.phaseRepo.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Phase{}).Where("id = ?", phaseID).Updates(map[string]interface{}{
			"user_saved": true,
			"status":     models.PhaseStatusCompleted,
		}).Error; err != nil {
			return err
		}

		// Unlock the next phase if there is one
		var next models.Phase
		err := tx.Where("project_id = ? AND phase_index = ?", phase.ProjectID, phase.PhaseIndex+1).First(&next).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil // last phase, nothing downstream
			}
			return err
		}

		updates := map[string]interface{}{
			"can_proceed": true,
		}
		if next.Status == models.PhaseStatusLocked {
			updates["status"] = models.PhaseStatusPending
		}
		return tx.Model(&models.Phase{}).Where("id = ?", next.ID).Updates(updates).Error
	})
	if err != nil {
		return models.Phase{}, err
	}

	return s.phaseRepo.FindByID(phaseID)
}

// ListVersions returns a phase's append-only version history, newest first
func (s *PhaseService) ListVersions(phaseID string, userID string, isAdmin bool) ([]models.PhaseVersion, error) {
	phase, err := s.phaseRepo.FindByID(phaseID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(phase.ProjectID, userID, isAdmin); err != nil {
		return nil, err
	}

	return s.versionRepo.FindByPhaseID(phaseID)
}

// RestoreVersion copies an old snapshot back as the live content. History
// is never rewritten: the restore lands as a fresh version on top.
func (s *PhaseService) RestoreVersion(phaseID string, versionNumber int, userID string, isAdmin bool) (models.Phase, error) {
	snapshot, err := s.versionRepo.FindByPhaseAndNumber(phaseID, versionNumber)
	if err != nil {
		return models.Phase{}, fmt.Errorf("version %d not found: %w", versionNumber, err)
	}

	description := fmt.Sprintf("Restored from version %d", versionNumber)
	return s.UpdatePhaseContent(phaseID, snapshot.Content, description, userID, isAdmin)
}

// checkAccess verifies that userID owns the phase's project (or is admin)
func (s *PhaseService) checkAccess(projectID string, userID string, isAdmin bool) error {
	if isAdmin {
		return nil
	}

	owner, err := s.projectRepo.GetOwnerID(projectID)
	if err != nil {
		return err
	}

	if owner != userID {
		return fmt.Errorf("unauthorized: you don't have permission to access this phase")
	}

	return nil
}
