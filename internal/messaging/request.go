package messaging

import (
	"encoding/json"

	"github.com/jonathan/job-autofill/internal/types"
)

// Actions accepted by Handle.
const (
	ActionStructureResume = "structureResume"
	ActionGenerateAnswer  = "generateAnswer"
	ActionSaveFieldAnswer = "saveFieldAnswer"
	ActionGetFieldAnswer  = "getFieldAnswer"
	ActionLogAutofill     = "logAutofill"
	ActionGetMappings     = "getMappings"
	ActionSetMappings     = "setMappings"
	ActionGetLogs         = "getLogs"
	ActionClearLogs       = "clearLogs"
)

// IsAIAction reports whether action calls a model provider.
func IsAIAction(action string) bool {
	return action == ActionStructureResume || action == ActionGenerateAnswer
}

type envelope struct {
	Action string `json:"action" validate:"required"`
}

// StructureResumeRequest is the structureResume payload.
type StructureResumeRequest struct {
	ResumeText string `json:"resumeText" validate:"required"`
}

// GenerateAnswerRequest is the generateAnswer payload.
type GenerateAnswerRequest struct {
	FieldLabel string `json:"fieldLabel" validate:"required"`
	Company    string `json:"company,omitempty"`
	Role       string `json:"role,omitempty"`
}

// SaveFieldAnswerRequest is the saveFieldAnswer payload.
type SaveFieldAnswerRequest struct {
	FieldKey          string               `json:"fieldKey" validate:"required"`
	Answer            types.Value          `json:"answer"`
	GenericKey        string               `json:"genericKey,omitempty" validate:"omitempty,canonical_key"`
	RelatedExperience *types.ExperienceRef `json:"relatedExperience,omitempty"`
}

// GetFieldAnswerRequest is the getFieldAnswer payload.
type GetFieldAnswerRequest struct {
	FieldKey   string `json:"fieldKey" validate:"required"`
	GenericKey string `json:"genericKey,omitempty"`
}

// SetMappingsRequest is the setMappings payload. Mappings is checked
// against the mappings schema before it is decoded.
type SetMappingsRequest struct {
	Mappings json.RawMessage `json:"mappings"`
}
