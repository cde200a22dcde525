package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Generation job status values
const (
	JobStatusPending   = "pending"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// GenerationJob records one invocation of the external generation
// workflow. Rows are written as an audit log: the state machine never
// reads them back, but the dashboard can inspect a job's status and
// payloads after the fact.
type GenerationJob struct {
	ID            string         `json:"id" gorm:"primaryKey;type:uuid"` // the workflow jobId, minted by us
	ProjectID     string         `json:"projectId" gorm:"type:uuid;not null;index"`
	PhaseName     PhaseName      `json:"phaseName" gorm:"type:varchar(32);not null"`
	Operation     string         `json:"operation" gorm:"not null"`
	Status        string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	InputPayload  datatypes.JSON `json:"inputPayload" gorm:"type:jsonb"`
	OutputPayload datatypes.JSON `json:"outputPayload" gorm:"type:jsonb"`
	Error         string         `json:"error" gorm:"default:null"`
	StartedAt     *time.Time     `json:"startedAt" gorm:"default:null"`
	FinishedAt    *time.Time     `json:"finishedAt" gorm:"default:null"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for GenerationJob model
func (GenerationJob) TableName() string {
	return "generation_jobs"
}

// Terminal reports whether the job has finished, successfully or not
func (j *GenerationJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
