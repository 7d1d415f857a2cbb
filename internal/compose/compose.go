// File path: internal/compose/compose.go
package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/parkworks/parkpilot/internal/common"
	"github.com/parkworks/parkpilot/internal/evidence"
	"github.com/parkworks/parkpilot/internal/summarize"
)

const fallbackSentence = "I couldn't generate a response for this query."

// Composer assembles answer payloads from executor evidence. It holds no
// per-request state; each Compose call works on its own copies, so one
// Composer serves concurrent requests.
type Composer struct {
	summarizer summarize.Summarizer
}

// New builds a Composer around a summarization port. The port may be nil;
// every summarization then takes the deterministic fallback path.
func New(summarizer summarize.Summarizer) *Composer {
	return &Composer{summarizer: summarizer}
}

// requestState carries one request through the section pipeline.
type requestState struct {
	ctx        context.Context
	nlu        evidence.NLUResult
	state      evidence.ExecState
	template   Template
	intent     Intent
	query      string
	sqlSummary string
	sqlRows    []evidence.Row
	sections   []string
	lowConf    bool
	cited      map[string]bool
	payload    *AnswerPayload
}

func (rc *requestState) addSection(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	rc.sections = append(rc.sections, text)
}

// Citation group keys. Each evidence group is cited at most once per
// request, so the per-group cap holds even when several sections render
// from the same hits.
const (
	citeKBHits  = "kb_hits"
	citeSupport = "support"
)

// addCitations appends capped citations for one evidence group, first-seen
// order preserved. A group already cited by an earlier section is skipped.
func (rc *requestState) addCitations(group, title string, hits []evidence.KBHit, max int) {
	if rc.cited[group] {
		return
	}
	if rc.cited == nil {
		rc.cited = make(map[string]bool)
	}
	rc.cited[group] = true
	for i, hit := range hits {
		if i >= max {
			break
		}
		rc.payload.Citations = append(rc.payload.Citations, Citation{Title: title, Source: hit.Source})
	}
}

// Compose converts one request's evidence into the answer payload. It
// never returns an error: every internal failure degrades to a smaller
// answer, worst case the fixed fallback sentence.
func (c *Composer) Compose(ctx context.Context, nlu evidence.NLUResult, state evidence.ExecState, meta evidence.PlanMetadata) AnswerPayload {
	logger := common.Logger()
	payload := newPayload()
	if state.Logs != nil {
		payload.Logs = state.Logs
	}

	switch state.Status {
	case evidence.StatusUnsupported:
		message := strings.TrimSpace(state.Message)
		if message == "" {
			message = "This query isn't supported yet."
		}
		payload.AnswerMD = message
		return payload
	case evidence.StatusNeedsClarification:
		payload.AnswerMD = renderClarifications(state)
		return payload
	}

	rc := &requestState{
		ctx:      ctx,
		nlu:      nlu,
		state:    state,
		template: Template(evidence.TemplateHint(meta, state.Plan)),
		intent:   Intent(nlu.Intent),
		query:    userQuery(nlu, state),
		payload:  &payload,
	}
	pipeline, known := intentPipelines[rc.intent]
	if !known {
		logger.Warn("compose: unrecognized intent, using default path", "intent", nlu.Intent)
	}
	for _, section := range pipeline {
		section(c, rc)
	}

	payload.AnswerMD = strings.Join(rc.sections, "\n\n")
	if rc.lowConf && payload.AnswerMD != "" {
		payload.AnswerMD = "> ⚠️ Low confidence — consider another angle.\n\n" + payload.AnswerMD
	}
	if payload.AnswerMD == "" {
		payload.AnswerMD = fallbackSentence
	}
	logger.Debug("compose: payload assembled",
		"intent", nlu.Intent,
		"template", string(rc.template),
		"sections", len(rc.sections),
		"tables", len(payload.Tables),
		"charts", len(payload.Charts),
		"citations", len(payload.Citations),
	)
	return payload
}

// referenceSection renders structured reference material: SOP first, then
// extracted standards, then a maintenance-frequency reference, and for
// reference-only intents the summarized snippets.
func (c *Composer) referenceSection(rc *requestState) {
	ev := rc.state.Evidence
	if ev.SOP != nil {
		rc.addSection(renderSOP(ev.SOP))
		rc.addCitations(citeKBHits, "Mowing Standard/Manual", ev.KBHits, 3)
		return
	}
	if len(ev.KBHits) == 0 {
		return
	}
	limited := ev.KBHits
	if len(limited) > 3 {
		limited = limited[:3]
	}
	if standards := BuildStandards(limited); isStandardsText(limited) && len(standards) > 0 {
		rc.addSection(renderStandardsBlock(standards))
		rc.addCitations(citeKBHits, "Reference Document", limited, 3)
		return
	}
	if strings.EqualFold(slotString(rc.nlu.Slots, "domain"), "activity") {
		if actx := ResolveActivityContext(rc.nlu.Slots, limited); actx != nil {
			rc.addSection(renderFrequencyReference(actx))
			rc.addCitations(citeKBHits, "Reference Document", limited, 3)
			return
		}
	}
	if rc.intent.standalone() {
		text := c.summarizeOrFallback(rc.ctx, summarize.Request{
			Query:    rc.query,
			Snippets: limited,
			Mode:     summarize.ModeGeneric,
		})
		rc.addSection(text)
		rc.addCitations(citeKBHits, "Reference Document", limited, 3)
	}
}

// tabularSection renders chart, table, summary, optional due-window
// detail, and the query-performance footer.
func (c *Composer) tabularSection(rc *requestState) {
	sql := rc.state.Evidence.SQL
	if sql == nil {
		return
	}
	rows := sql.Rows
	if annotate, ok := rowAnnotators[rc.template]; ok {
		rows = annotate(rc, rows)
	}
	rc.sqlRows = rows

	if chart := BuildChart(rows, rc.template); chart != nil {
		rc.payload.Charts = append(rc.payload.Charts, chart)
		rc.addSection(ChartDescription(chart, rows))
	}
	if len(rows) > 0 {
		rc.payload.Tables = append(rc.payload.Tables, Table{
			Name:    TableName(rc.template, rc.nlu.Slots),
			Columns: rows[0].Columns(),
			Rows:    rows,
		})
	}
	summary := Summarize(rows, rc.template, rc.nlu.Slots)
	rc.sqlSummary = summary
	section := summary
	if rc.template == TemplateDueWindow {
		if detail := renderDueDetail(rows); detail != "" {
			section += "\n\n" + detail
		}
	}
	section += fmt.Sprintf("\n\n**Query Performance**: %d rows in %dms", sql.RowCount, sql.ElapsedMS)
	rc.addSection(section)
}

// bridgeSection ties tabular results back to the reference material with a
// separator plus either the dimension-comparison or generic summarizer.
func (c *Composer) bridgeSection(rc *requestState) {
	hits := rc.state.Evidence.KBHits
	if len(hits) == 0 {
		return
	}
	mode := summarize.ModeGeneric
	if rc.intent == IntentDimensionLookup || isDimensionQuery(rc.nlu.Slots) {
		mode = summarize.ModeDimension
	}
	text := c.summarizeOrFallback(rc.ctx, summarize.Request{
		Query:         rc.query,
		Snippets:      hits,
		ResultSummary: rc.sqlSummary,
		Rows:          rc.sqlRows,
		Mode:          mode,
	})
	if text == "" {
		return
	}
	rc.addSection("---\n\n" + text)
	rc.addCitations(citeKBHits, "Reference Document", hits, 3)
}

// visionSection renders the image-assessment block.
func (c *Composer) visionSection(rc *requestState) {
	cv := rc.state.Evidence.CV
	if cv == nil {
		return
	}
	condition := cv.Condition
	if condition == "" {
		condition = "unknown"
	}
	rc.addSection(fmt.Sprintf(
		"**Image Assessment**\n\nCondition: **%s** (score %.2f)\n\nLabels: %s\n\nNotes: %s",
		condition, cv.Score, strings.Join(cv.Labels, ", "), strings.Join(cv.Explanations, "; "),
	))
	rc.lowConf = cv.LowConfidence
	rc.addCitations(citeSupport, "Inspection Guidance", rc.state.Evidence.Support, 2)
}

// visionReferenceSection appends summarized reference context after an
// image assessment.
func (c *Composer) visionReferenceSection(rc *requestState) {
	hits := rc.state.Evidence.KBHits
	if len(hits) == 0 {
		return
	}
	text := c.summarizeOrFallback(rc.ctx, summarize.Request{
		Query:    rc.query,
		Snippets: hits,
		Mode:     summarize.ModeGeneric,
	})
	if text == "" {
		return
	}
	rc.addSection("---\n\n" + text)
}

// summarizeOrFallback calls the summarization port and degrades to the
// deterministic formatter on any failure. The failure is logged, never
// surfaced to the user.
func (c *Composer) summarizeOrFallback(ctx context.Context, req summarize.Request) string {
	if c.summarizer != nil {
		text, err := c.summarizer.Summarize(ctx, req)
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		if err != nil {
			common.Logger().Warn("compose: summarization failed, using deterministic fallback", "error", err)
		}
	}
	return summarize.FormatSnippets(req.Snippets)
}

// annotatorFunc applies template-specific row annotation before rendering.
type annotatorFunc func(rc *requestState, rows []evidence.Row) []evidence.Row

// Only the due-window template defines an annotator today.
var rowAnnotators = map[Template]annotatorFunc{
	TemplateDueWindow: annotateDueWindowRows,
}

func annotateDueWindowRows(rc *requestState, rows []evidence.Row) []evidence.Row {
	cycle := ResolveActivityContext(rc.nlu.Slots, rc.state.Evidence.KBHits)
	horizon, hasHorizon := ResolveHorizon(rows, rc.nlu.Slots)
	if cycle == nil {
		common.Logger().Debug("compose: no cycle resolved for due-window rows")
	}
	return AnnotateDueWindow(rows, cycle, horizon, hasHorizon)
}

func isDimensionQuery(slots map[string]interface{}) bool {
	if strings.EqualFold(slotString(slots, "domain"), "field_dimension") {
		return true
	}
	return strings.TrimSpace(slotString(slots, "sport")) != ""
}

func userQuery(nlu evidence.NLUResult, state evidence.ExecState) string {
	if q := slotString(nlu.Slots, "original_query"); q != "" {
		return q
	}
	if q := slotString(state.Slots, "text"); q != "" {
		return q
	}
	return nlu.RawQuery
}

func renderClarifications(state evidence.ExecState) string {
	if len(state.Clarifications) == 0 {
		if msg := strings.TrimSpace(state.Message); msg != "" {
			return msg
		}
		return "I need a bit more information to answer that."
	}
	var b strings.Builder
	b.WriteString("I need a bit more information:\n")
	for _, q := range state.Clarifications {
		fmt.Fprintf(&b, "\n- %s", q)
	}
	return b.String()
}

func renderSOP(sop *evidence.SOP) string {
	var b strings.Builder
	b.WriteString("**Mowing SOP (Standard Operating Procedures)**\n\n### Steps\n")
	for i, step := range sop.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	writeSOPList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n### %s\n", title)
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	writeSOPList("Materials", sop.Materials)
	writeSOPList("Tools", sop.Tools)
	writeSOPList("Safety", sop.Safety)
	return strings.TrimRight(b.String(), "\n")
}

func renderFrequencyReference(actx *ActivityContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### 🔁 Maintenance Frequency\n\nRecommended cadence: **%s** (≈ %.1f days per cycle).", actx.FrequencyText, actx.CycleDays)
	if actx.Snippet != "" {
		fmt.Fprintf(&b, "\n\n> %s", actx.Snippet)
	}
	return b.String()
}
