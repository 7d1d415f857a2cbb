// File path: internal/evidence/catalog/executor.go
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/parkworks/parkpilot/internal/common"
	"github.com/parkworks/parkpilot/internal/compose"
	"github.com/parkworks/parkpilot/internal/evidence"
)

// Executor is a local stand-in for the real plan executor, serving the
// fixture catalog so the server answers end-to-end in demo deployments.
// It honors the same ExecState contract the composer expects upstream.
type Executor struct {
	store *Store
}

func NewExecutor(store *Store) *Executor {
	return &Executor{store: store}
}

// templateRoutes maps demo query keywords to templates, checked in order.
var templateRoutes = []struct {
	Keyword  string
	Template compose.Template
	Intent   compose.Intent
}{
	{"due", compose.TemplateDueWindow, compose.IntentTabular},
	{"overdue", compose.TemplateDueWindow, compose.IntentTabular},
	{"trend", compose.TemplateCostTrend, compose.IntentTabularRef},
	{"highest", compose.TemplateLaborCostTop, compose.IntentTabularRef},
	{"top", compose.TemplateLaborCostTop, compose.IntentTabularRef},
	{"breakdown", compose.TemplateCostBreakdown, compose.IntentTabular},
	{"last mow", compose.TemplateLastMowingDate, compose.IntentTabular},
	{"diamond", compose.TemplateFieldDiamond, compose.IntentDimensionLookup},
	{"rectang", compose.TemplateFieldRectangular, compose.IntentDimensionLookup},
	{"dimension", compose.TemplateFieldDiamond, compose.IntentDimensionLookup},
	{"cost", compose.TemplateCostByParkMonth, compose.IntentTabularRef},
}

// Execute resolves rows and reference snippets for a demo request. The
// template comes from the slots when the caller set one, otherwise from
// keyword routing over the raw query.
func (e *Executor) Execute(ctx context.Context, nlu evidence.NLUResult) (evidence.ExecState, evidence.PlanMetadata, error) {
	if e == nil || e.store == nil {
		return evidence.ExecState{}, evidence.PlanMetadata{}, fmt.Errorf("executor not initialised")
	}
	template, _ := routeRequest(nlu)
	if template == "" {
		return evidence.ExecState{
			Status:         evidence.StatusNeedsClarification,
			Clarifications: []string{"Which maintenance question should I answer? Try costs, last mowing dates, field dimensions, or due maintenance."},
			Logs:           []interface{}{"demo executor: no template matched"},
		}, evidence.PlanMetadata{}, nil
	}
	start := time.Now()
	rows, err := e.store.RowsForTemplate(ctx, template, nlu.Slots)
	if err != nil {
		return evidence.ExecState{}, evidence.PlanMetadata{}, fmt.Errorf("execute template %s: %w", template, err)
	}
	elapsed := int(time.Since(start).Milliseconds())
	hits, err := e.store.Snippets(ctx, snippetTopic(template), 3)
	if err != nil {
		common.Logger().Warn("catalog: snippet lookup failed", "error", err)
		hits = nil
	}
	state := evidence.ExecState{
		Status: evidence.StatusOK,
		Evidence: evidence.Bundle{
			SQL:    &evidence.SQLResult{Rows: rows, RowCount: len(rows), ElapsedMS: elapsed},
			KBHits: hits,
		},
		Plan: []evidence.PlanStep{{
			Tool: "sql_query_rag",
			Args: map[string]interface{}{"template": string(template)},
		}},
		Slots: map[string]interface{}{"text": nlu.RawQuery},
		Logs:  []interface{}{fmt.Sprintf("demo executor: template=%s rows=%d", template, len(rows))},
	}
	common.Logger().Debug("catalog: demo plan executed", "template", string(template), "rows", len(rows), "elapsed_ms", elapsed)
	return state, evidence.PlanMetadata{Template: string(template), Status: evidence.StatusOK}, nil
}

// RouteIntent returns the intent the demo router would dispatch for a
// query, used when the caller supplied no NLU result.
func (e *Executor) RouteIntent(nlu evidence.NLUResult) string {
	_, intent := routeRequest(nlu)
	return string(intent)
}

func routeRequest(nlu evidence.NLUResult) (compose.Template, compose.Intent) {
	if tmpl := slotTemplate(nlu.Slots); tmpl != "" {
		return tmpl, compose.IntentTabularRef
	}
	query := strings.ToLower(nlu.RawQuery)
	for _, route := range templateRoutes {
		if strings.Contains(query, route.Keyword) {
			return route.Template, route.Intent
		}
	}
	return "", ""
}

func slotTemplate(slots map[string]interface{}) compose.Template {
	if slots == nil {
		return ""
	}
	if v, ok := slots["template"].(string); ok && v != "" {
		return compose.Template(v)
	}
	return ""
}

func snippetTopic(template compose.Template) string {
	switch template {
	case compose.TemplateFieldRectangular, compose.TemplateFieldDiamond:
		return "field_dimension"
	default:
		return "mowing"
	}
}
