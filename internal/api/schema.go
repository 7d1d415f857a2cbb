// File path: internal/api/schema.go
package api

import (
	"github.com/kaptinlin/jsonschema"
)

// answerRequestSchema guards the /v1/answer body shape before decoding.
// Evidence keys stay open-ended on purpose: unknown templates and partial
// bundles are valid input to the composer.
const answerRequestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "nlu": {
      "type": "object",
      "properties": {
        "intent": {"type": "string"},
        "slots": {"type": "object"},
        "raw_query": {"type": "string"}
      },
      "required": ["intent"]
    },
    "state": {
      "type": "object",
      "properties": {
        "status": {"enum": ["OK", "UNSUPPORTED", "NEEDS_CLARIFICATION"]},
        "message": {"type": "string"},
        "clarifications": {"type": "array", "items": {"type": "string"}},
        "evidence": {"type": "object"},
        "plan": {"type": "array"},
        "slots": {"type": "object"},
        "logs": {"type": "array"}
      },
      "required": ["status"]
    },
    "plan": {
      "type": "object",
      "properties": {
        "template": {"type": "string"},
        "status": {"type": "string"}
      }
    },
    "text": {"type": "string", "minLength": 1}
  },
  "anyOf": [
    {"required": ["nlu", "state"]},
    {"required": ["text"]}
  ]
}`

func compileRequestSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	return compiler.Compile([]byte(answerRequestSchema))
}
