package dto

import (
	"encoding/json"
	"time"

	"github.com/animatic-studio/models"
)

// ProjectFilter represents filter criteria for projects
type ProjectFilter struct {
	UserID    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
	IsAdmin   bool
}

// ProjectListResponse represents paginated project list response
type ProjectListResponse struct {
	Projects   []models.Project `json:"projects"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// CreateProjectRequest represents the request payload for creating a new project
type CreateProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	Metadata    json.RawMessage `json:"metadata"`
	GlobalStyle json.RawMessage `json:"globalStyle"`
}

// UpdateProjectRequest represents the request payload for updating an existing project
type UpdateProjectRequest struct {
	Name        string               `json:"name" binding:"required"`
	Status      models.ProjectStatus `json:"status"`
	Metadata    json.RawMessage      `json:"metadata"`
	GlobalStyle json.RawMessage      `json:"globalStyle"`
}

// ProjectResponse represents the standard response format for a project
type ProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Status      models.ProjectStatus `json:"status"`
	UserID      string               `json:"userId"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Phases      []models.Phase       `json:"phases,omitempty"`
}
