package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PhaseName identifies one of the five fixed production phases
type PhaseName string

const (
	PhaseScriptInterpretation PhaseName = "script_interpretation"
	PhaseElementImages        PhaseName = "element_images"
	PhaseSceneGeneration      PhaseName = "scene_generation"
	PhaseSceneVideos          PhaseName = "scene_videos"
	PhaseFinalAssembly        PhaseName = "final_assembly"
)

// PhaseOrder lists the five phases in pipeline order. Phase indices are
// 1-based: PhaseOrder[0] has index 1.
var PhaseOrder = []PhaseName{
	PhaseScriptInterpretation,
	PhaseElementImages,
	PhaseSceneGeneration,
	PhaseSceneVideos,
	PhaseFinalAssembly,
}

// Phase status values
const (
	PhaseStatusPending    = "pending"
	PhaseStatusProcessing = "processing"
	PhaseStatusCompleted  = "completed"
	PhaseStatusLocked     = "locked"
)

// Phase represents one stage of a project's production pipeline.
// Exactly one row exists per (project, phase_name) pair; only the phase
// whose predecessor was saved has CanProceed set.
type Phase struct {
	ID             string         `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID      string         `json:"projectId" gorm:"type:uuid;not null;uniqueIndex:idx_project_phase,priority:1"`
	PhaseName      PhaseName      `json:"phaseName" gorm:"type:varchar(32);not null;uniqueIndex:idx_project_phase,priority:2"`
	PhaseIndex     int            `json:"phaseIndex" gorm:"not null"`
	Status         string         `json:"status" gorm:"type:varchar(20);default:'locked'"`
	CanProceed     bool           `json:"canProceed" gorm:"default:false"`
	CurrentVersion int            `json:"currentVersion" gorm:"default:0"`
	Content        datatypes.JSON `json:"content" gorm:"type:jsonb"`
	UserSaved      bool           `json:"userSaved" gorm:"default:false"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Project  Project        `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Versions []PhaseVersion `json:"versions,omitempty" gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (p *Phase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TableName sets the table name for Phase model
func (Phase) TableName() string {
	return "project_phases"
}

// NewPhasesForProject builds the five fixed phase rows for a freshly
// created project. Only the first phase starts unlocked.
func NewPhasesForProject(projectID string) []Phase {
	phases := make([]Phase, 0, len(PhaseOrder))
	for i, name := range PhaseOrder {
		phase := Phase{
			ProjectID:      projectID,
			PhaseName:      name,
			PhaseIndex:     i + 1,
			Status:         PhaseStatusLocked,
			CanProceed:     false,
			CurrentVersion: 0,
		}
		if i == 0 {
			phase.Status = PhaseStatusPending
			phase.CanProceed = true
		}
		phases = append(phases, phase)
	}
	return phases
}

// ValidPhaseName reports whether name is one of the five fixed phases
func ValidPhaseName(name PhaseName) bool {
	for _, n := range PhaseOrder {
		if n == name {
			return true
		}
	}
	return false
}
