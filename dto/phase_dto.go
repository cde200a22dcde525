package dto

import (
	"encoding/json"
)

// UpdatePhaseContentRequest represents a versioned content update
type UpdatePhaseContentRequest struct {
	Content     json.RawMessage `json:"content" binding:"required"`
	Description string          `json:"description"`
}

// GeneratePhaseRequest triggers the external generation workflow for a phase
type GeneratePhaseRequest struct {
	Operation string `json:"operation"`
}

// GenerationWebhookPayload is the body sent to the external workflow service
type GenerationWebhookPayload struct {
	Phase       string                `json:"phase"`
	Operation   string                `json:"operation"`
	JobID       string                `json:"jobId"`
	ProjectID   string                `json:"projectId"`
	ProjectName string                `json:"projectName"`
	Data        GenerationWebhookData `json:"data"`
}

// GenerationWebhookData carries the context block of the webhook payload
type GenerationWebhookData struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Phase       string `json:"phase"`
	Timestamp   string `json:"timestamp"`
}
