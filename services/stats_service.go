package services

import (
	"github.com/animatic-studio/database"
	"github.com/animatic-studio/dto"
	"github.com/animatic-studio/models"
)

// StatsService aggregates platform-wide numbers for the admin dashboard
type StatsService struct{}

// NewStatsService creates a new stats service instance
func NewStatsService() *StatsService {
	return &StatsService{}
}

// GetPlatformStats collects user, project, phase and job counts
func (s *StatsService) GetPlatformStats() (dto.PlatformStatsResponse, error) {
	var stats dto.PlatformStatsResponse

	if err := database.DB.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return stats, err
	}

	stats.Projects.ByStatus = make(map[string]int64)
	if err := database.DB.Model(&models.Project{}).Count(&stats.Projects.Total).Error; err != nil {
		return stats, err
	}
	for _, status := range []models.ProjectStatus{
		models.ProjectStatusActive,
		models.ProjectStatusCompleted,
		models.ProjectStatusArchived,
	} {
		var count int64
		if err := database.DB.Model(&models.Project{}).Where("status = ?", status).Count(&count).Error; err != nil {
			return stats, err
		}
		stats.Projects.ByStatus[string(status)] = count
	}

	stats.Phases.ByStatus = make(map[string]int64)
	if err := database.DB.Model(&models.Phase{}).Count(&stats.Phases.Total).Error; err != nil {
		return stats, err
	}
	for _, status := range []string{
		models.PhaseStatusPending,
		models.PhaseStatusProcessing,
		models.PhaseStatusCompleted,
		models.PhaseStatusLocked,
	} {
		var count int64
		if err := database.DB.Model(&models.Phase{}).Where("status = ?", status).Count(&count).Error; err != nil {
			return stats, err
		}
		stats.Phases.ByStatus[status] = count
	}

	stats.Jobs.ByStatus = make(map[string]int64)
	if err := database.DB.Model(&models.GenerationJob{}).Count(&stats.Jobs.Total).Error; err != nil {
		return stats, err
	}
	for _, status := range []string{
		models.JobStatusPending,
		models.JobStatusCompleted,
		models.JobStatusFailed,
	} {
		var count int64
		if err := database.DB.Model(&models.GenerationJob{}).Where("status = ?", status).Count(&count).Error; err != nil {
			return stats, err
		}
		stats.Jobs.ByStatus[status] = count
	}

	if stats.Jobs.Total > 0 {
		stats.Jobs.SuccessRate = float64(stats.Jobs.ByStatus[models.JobStatusCompleted]) / float64(stats.Jobs.Total)
	}

	return stats, nil
}
