package dossier

import (
	"time"
)

// AI analysis actions
const (
	ActionAnalyze     = "analyze"
	ActionSuggest     = "suggest"
	ActionReformulate = "reformulate"
)

// AnalysisActions lists the supported actions
var AnalysisActions = []string{ActionAnalyze, ActionSuggest, ActionReformulate}

// JSONMap is stored as a JSONB column
type JSONMap map[string]interface{}

// Analysis is one AI evaluation of an argument.
// Result holds the decoded JSON object returned by the model; its shape
// depends on Action (weight/reasoning/strengths/weaknesses, suggestions or reformulated).
type Analysis struct {
	ID         string    `json:"id" db:"id"`
	ArgumentID string    `json:"argument_id" db:"argument_id"`
	Action     string    `json:"action" db:"action"`
	Result     JSONMap   `json:"result" db:"result"`
	Model      string    `json:"model" db:"model"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
