package services

import (
	"fmt"

	"github.com/animatic-studio/dto"
	"github.com/animatic-studio/models"
	"github.com/animatic-studio/repositories"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	phaseRepo   *repositories.PhaseRepository
}

// NewProjectService creates a new project service instance
func NewProjectService() *ProjectService {
	return &ProjectService{
		projectRepo: repositories.NewProjectRepository(),
		phaseRepo:   repositories.NewPhaseRepository(),
	}
}

// ListProjects retrieves projects with pagination, filtering and sorting
// Admin can see all projects, regular users only see their own
func (s *ProjectService) ListProjects(filter dto.ProjectFilter) (dto.ProjectListResponse, error) {
	var response dto.ProjectListResponse

	// Set defaults if not provided
	if filter.Page <= 0 {
		filter.Page = 1
	}

	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}

	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}

	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	// Validate sort order
	if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		filter.SortOrder = "desc"
	}

	// Valid sort columns (whitelist approach for security)
	validSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
		"status":     true,
	}

	if !validSortColumns[filter.SortBy] {
		filter.SortBy = "created_at"
	}

	projects, totalCount, err := s.projectRepo.FindWithPagination(
		filter.Page,
		filter.PageSize,
		filter.SortBy,
		filter.SortOrder,
		filter.UserID,
		filter.IsAdmin,
		filter.Search,
	)

	if err != nil {
		return response, err
	}

	// Calculate total pages
	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	response = dto.ProjectListResponse{
		Projects:   projects,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}

	return response, nil
}

// GetProjectDetail retrieves a project by ID with its five phases
// Access control: admin can view any project, regular users only their own
func (s *ProjectService) GetProjectDetail(projectID string, userID string, isAdmin bool) (models.Project, error) {
	project, err := s.projectRepo.WithPhases(projectID)
	if err != nil {
		return models.Project{}, err
	}

	// Access control - return error if not admin and not owner
	if !isAdmin && project.UserID != userID {
		return models.Project{}, fmt.Errorf("unauthorized: you don't have permission to access this project")
	}

	return project, nil
}

// CreateProject creates a new project together with its five fixed phases.
// Project and phase inserts run in one transaction: a failed phase insert
// rolls the project back, so a project without phases can never exist.
func (s *ProjectService) CreateProject(project models.Project) (models.Project, []models.Phase, error) {
	var phases []models.Phase

	db := s.projectRepo.DB().Begin()
	defer func() {
		if r := recover(); r != nil {
			db.Rollback()
		}
	}()

	// Create project
	if err := db.Create(&project).Error; err != nil {
		db.Rollback()
		return project, nil, err
	}

	// Create the five fixed phases; only index 1 starts unlocked
	phases = models.NewPhasesForProject(project.ID)
	if err := db.Create(&phases).Error; err != nil {
		db.Rollback()
		return project, nil, err
	}

	if err := db.Commit().Error; err != nil {
		return project, nil, err
	}

	return project, phases, nil
}

// UpdateProject updates an existing project's name, status and style
func (s *ProjectService) UpdateProject(project models.Project, userID string, isAdmin bool) (models.Project, error) {
	existingProject, err := s.projectRepo.FindByID(project.ID)
	if err != nil {
		return models.Project{}, err
	}

	// Access control - return error if not admin and not owner
	if !isAdmin && existingProject.UserID != userID {
		return models.Project{}, fmt.Errorf("unauthorized: you don't have permission to update this project")
	}

	// Preserve the user ID (it shouldn't be changed)
	project.UserID = existingProject.UserID
	project.CreatedAt = existingProject.CreatedAt

	if project.Status == "" {
		project.Status = existingProject.Status
	}
	if len(project.Metadata) == 0 {
		project.Metadata = existingProject.Metadata
	}
	if len(project.GlobalStyle) == 0 {
		project.GlobalStyle = existingProject.GlobalStyle
	}

	err = s.projectRepo.Update(project)
	if err != nil {
		return models.Project{}, err
	}

	return project, nil
}

// DeleteProject deletes a project and everything it owns: phases, version
// history and generation job records go with it
func (s *ProjectService) DeleteProject(projectID string, userID string, isAdmin bool) error {
	exists, err := s.projectRepo.Exists(projectID)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("project not found or already deleted")
	}

	if !isAdmin {
		owner, err := s.projectRepo.GetOwnerID(projectID)
		if err != nil {
			return err
		}

		if owner != userID {
			return fmt.Errorf("unauthorized: you don't have permission to delete this project")
		}
	}

	return s.projectRepo.Delete(projectID)
}

// GetProjectPhases returns the five phases of a project in pipeline order
func (s *ProjectService) GetProjectPhases(projectID string, userID string, isAdmin bool) ([]models.Phase, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && project.UserID != userID {
		return nil, fmt.Errorf("unauthorized: you don't have permission to access this project")
	}

	return s.phaseRepo.FindByProjectID(projectID)
}
