// File path: internal/api/types.go
package api

import (
	"github.com/parkworks/parkpilot/internal/evidence"
)

// answerRequest is the /v1/answer body. Either the upstream collaborators'
// output arrives inline (nlu + state), or a raw text query is routed
// through the configured executor.
type answerRequest struct {
	NLU   *evidence.NLUResult    `json:"nlu,omitempty"`
	State *evidence.ExecState    `json:"state,omitempty"`
	Plan  *evidence.PlanMetadata `json:"plan,omitempty"`
	Text  string                 `json:"text,omitempty"`
}
