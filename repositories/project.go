package repositories

import (
	"github.com/animatic-studio/database"
	"github.com/animatic-studio/models"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct{}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(id string) (models.Project, error) {
	var project models.Project
	result := database.DB.First(&project, "id = ?", id)
	return project, result.Error
}

// WithPhases loads a project with its phases ordered by pipeline index
func (r *ProjectRepository) WithPhases(id string) (models.Project, error) {
	var project models.Project
	result := database.DB.Preload("Phases", func(db *gorm.DB) *gorm.DB {
		return db.Order("phase_index ASC")
	}).First(&project, "id = ?", id)
	return project, result.Error
}

// Update modifies an existing project
func (r *ProjectRepository) Update(project models.Project) error {
	result := database.DB.Save(&project)
	return result.Error
}

// Delete removes a project together with its phases, versions and jobs
// (soft delete, one transaction)
func (r *ProjectRepository) Delete(id string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		// Version history first: versions hang off the project's phases
		if err := tx.Where("phase_id IN (?)",
			tx.Model(&models.Phase{}).Select("id").Where("project_id = ?", id),
		).Delete(&models.PhaseVersion{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Phase{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.GenerationJob{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, "id = ?", id)
		return result.Error
	})
}

// Exists checks if a live (not soft-deleted) project exists
func (r *ProjectRepository) Exists(id string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetOwnerID returns the user ID who owns the project
func (r *ProjectRepository) GetOwnerID(id string) (string, error) {
	type ProjectOwner struct {
		UserID string
	}

	var owner ProjectOwner
	err := database.DB.Unscoped().Model(&models.Project{}).Select("user_id").Where("id = ?", id).First(&owner).Error
	return owner.UserID, err
}

// DB returns the database instance
func (r *ProjectRepository) DB() *gorm.DB {
	return database.DB
}

// FindWithPagination retrieves projects with pagination, filtering and sorting
func (r *ProjectRepository) FindWithPagination(
	page, pageSize int,
	sortBy, sortOrder string,
	userID string,
	isAdmin bool,
	search string) ([]models.Project, int64, error) {

	var projects []models.Project
	var totalCount int64

	db := database.DB.Model(&models.Project{})

	// Regular users only see their own projects
	if !isAdmin && userID != "" {
		db = db.Where("user_id = ?", userID)
	}

	// Search functionality
	if search != "" {
		searchPattern := "%" + search + "%"
		db = db.Where("name ILIKE ?", searchPattern)
	}

	// Count total records (with the same filter)
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	// Calculate offset for pagination
	offset := (page - 1) * pageSize

	orderString := sortBy + " " + sortOrder
	if err := db.Order(orderString).Limit(pageSize).Offset(offset).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, totalCount, nil
}
