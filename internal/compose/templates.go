// File path: internal/compose/templates.go
package compose

// Template identifies the row shape and rendering rules for a tabular
// result. Unknown values are always valid input and take the generic path
// in every component.
type Template string

const (
	TemplateLaborCostTop     Template = "mowing.labor_cost_month_top1"
	TemplateCostTrend        Template = "mowing.cost_trend"
	TemplateCostByParkMonth  Template = "mowing.cost_by_park_month"
	TemplateLastMowingDate   Template = "mowing.last_mowing_date"
	TemplateCostBreakdown    Template = "mowing.cost_breakdown"
	TemplateFieldRectangular Template = "field_dimension.rectangular"
	TemplateFieldDiamond     Template = "field_dimension.diamond"
	TemplateDueWindow        Template = "activity.maintenance_due_window"
)

// Intent tags produced by the upstream NLU stage.
type Intent string

const (
	IntentReference       Intent = "RAG"
	IntentTabular         Intent = "SQL_tool"
	IntentTabularRef      Intent = "RAG+SQL_tool"
	IntentDimensionLookup Intent = "SQL_tool_2"
	IntentVision          Intent = "CV_tool"
	IntentVisionRef       Intent = "RAG+CV_tool"
)

// sectionFunc renders one answer section into the request state.
type sectionFunc func(c *Composer, rc *requestState)

// Each intent maps to an ordered section pipeline. Unrecognized intents
// resolve to a nil pipeline, which renders no sections and lets the
// orchestrator emit the fixed fallback sentence.
var intentPipelines = map[Intent][]sectionFunc{
	IntentReference:       {(*Composer).referenceSection},
	IntentTabular:         {(*Composer).tabularSection},
	IntentTabularRef:      {(*Composer).referenceSection, (*Composer).tabularSection, (*Composer).bridgeSection},
	IntentDimensionLookup: {(*Composer).tabularSection, (*Composer).bridgeSection},
	IntentVision:          {(*Composer).visionSection},
	IntentVisionRef:       {(*Composer).visionSection, (*Composer).visionReferenceSection},
}

// standalone reports whether reference material is the whole answer for
// this intent, which decides whether referenceSection may fall through to
// the summarization port on its own.
func (i Intent) standalone() bool {
	return i == IntentReference
}
