// File path: internal/evidence/types.go
package evidence

// Execution status values reported by the upstream plan executor.
const (
	StatusOK                 = "OK"
	StatusUnsupported        = "UNSUPPORTED"
	StatusNeedsClarification = "NEEDS_CLARIFICATION"
)

// NLUResult is the upstream intent/slot extraction output. The composer
// never derives intents itself; it dispatches on what arrives here.
type NLUResult struct {
	Intent   string                 `json:"intent"`
	Slots    map[string]interface{} `json:"slots,omitempty"`
	RawQuery string                 `json:"raw_query,omitempty"`
}

// ExecState is the executor's record of a finished retrieval plan: terminal
// status, gathered evidence, and any accumulated log lines.
type ExecState struct {
	Status         string                 `json:"status"`
	Message        string                 `json:"message,omitempty"`
	Clarifications []string               `json:"clarifications,omitempty"`
	Evidence       Bundle                 `json:"evidence"`
	Plan           []PlanStep             `json:"plan,omitempty"`
	Slots          map[string]interface{} `json:"slots,omitempty"`
	Logs           []interface{}          `json:"logs,omitempty"`
}

// Bundle groups the evidence kinds a plan may have produced. All fields are
// optional; the composer tolerates any subset.
type Bundle struct {
	SQL     *SQLResult `json:"sql,omitempty"`
	KBHits  []KBHit    `json:"kb_hits,omitempty"`
	CV      *CVResult  `json:"cv,omitempty"`
	SOP     *SOP       `json:"sop,omitempty"`
	Support []KBHit    `json:"support,omitempty"`
}

// SQLResult carries tabular evidence in retrieval order.
type SQLResult struct {
	Rows      []Row `json:"rows"`
	RowCount  int   `json:"rowcount"`
	ElapsedMS int   `json:"elapsed_ms"`
}

// KBHit is one knowledge-base excerpt.
type KBHit struct {
	Text   string `json:"text"`
	Page   string `json:"page,omitempty"`
	Source string `json:"source,omitempty"`
}

// CVResult is an image-assessment outcome.
type CVResult struct {
	Condition     string   `json:"condition"`
	Score         float64  `json:"score"`
	Labels        []string `json:"labels,omitempty"`
	Explanations  []string `json:"explanations,omitempty"`
	LowConfidence bool     `json:"low_confidence,omitempty"`
}

// SOP is a structured standard-operating-procedure document.
type SOP struct {
	Steps     []string `json:"steps,omitempty"`
	Materials []string `json:"materials,omitempty"`
	Tools     []string `json:"tools,omitempty"`
	Safety    []string `json:"safety,omitempty"`
}

// PlanStep is one executed tool invocation; the composer only reads the
// template argument off sql_query_rag steps.
type PlanStep struct {
	Tool string                 `json:"tool"`
	Args map[string]interface{} `json:"args,omitempty"`
}

// PlanMetadata is the planner's hint about which template shaped the rows.
type PlanMetadata struct {
	Template string `json:"template,omitempty"`
	Status   string `json:"status,omitempty"`
}

// TemplateHint extracts the template from plan metadata, falling back to
// the sql_query_rag step arguments like the executor's plan records carry.
func TemplateHint(meta PlanMetadata, plan []PlanStep) string {
	if meta.Template != "" {
		return meta.Template
	}
	for _, step := range plan {
		if step.Tool != "sql_query_rag" {
			continue
		}
		if tmpl, ok := step.Args["template"].(string); ok && tmpl != "" {
			return tmpl
		}
	}
	return ""
}
