package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PhaseVersion stores an immutable snapshot of a phase's content.
// One row is appended on every content update; rows are never mutated.
// The unique index on (phase_id, version_number) rejects a concurrent
// writer that raced on the same version counter.
type PhaseVersion struct {
	ID                string         `json:"id" gorm:"primaryKey;type:uuid"`
	PhaseID           string         `json:"phaseId" gorm:"type:uuid;not null;uniqueIndex:idx_phase_version,priority:1"`
	VersionNumber     int            `json:"versionNumber" gorm:"not null;uniqueIndex:idx_phase_version,priority:2"`
	Content           datatypes.JSON `json:"content" gorm:"type:jsonb"`
	ChangeDescription string         `json:"changeDescription" gorm:"default:null"`
	CreatedAt         time.Time      `json:"createdAt"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Phase Phase `json:"phase,omitempty" gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key when none is set
func (v *PhaseVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// TableName sets the table name for PhaseVersion model
func (PhaseVersion) TableName() string {
	return "phase_versions"
}
