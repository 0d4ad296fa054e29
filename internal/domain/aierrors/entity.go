package aierrors

import "time"

// Phases of the analysis pipeline where a failure can be recorded.
const (
	PhaseCall     = "call"
	PhaseParse    = "parse"
	PhaseValidate = "validate"
)

// AIError is a persisted provider-integration failure, kept so broken
// envelopes can be diagnosed after the fact.
type AIError struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Provider    string    `json:"provider,omitempty"`
	Phase       string    `json:"phase,omitempty"`
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
