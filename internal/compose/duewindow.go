// File path: internal/compose/duewindow.go
package compose

import (
	"fmt"
	"math"
	"strings"

	"github.com/parkworks/parkpilot/internal/evidence"
)

// DueStatus classifies a maintenance record against its nominal cycle and
// the planning horizon. Exactly one status holds per row.
type DueStatus string

const (
	DueUnknown DueStatus = "unknown"
	DueRecent  DueStatus = "recent"
	DueSoon    DueStatus = "due_soon"
	DueOverdue DueStatus = "overdue"
)

var daysSinceAliases = []string{"days_since_last", "days_since_last_service", "days_since"}

var parkAliases = []string{"park", "park_name", "field", "name"}

// ResolveHorizon determines the request-wide planning window: an explicit
// horizon_days value on any row wins, then the weeks_ahead slot times
// seven, else no horizon.
func ResolveHorizon(rows []evidence.Row, slots map[string]interface{}) (float64, bool) {
	for _, row := range rows {
		if horizon, ok := row.Float("horizon_days"); ok {
			return horizon, true
		}
	}
	if weeks, ok := slotFloat(slots, "weeks_ahead"); ok && weeks > 0 {
		return weeks * 7, true
	}
	return 0, false
}

// AnnotateDueWindow classifies each row independently against the shared
// cycle length and horizon, returning annotated copies in source order.
// Rows missing the cycle or their elapsed days classify as unknown.
func AnnotateDueWindow(rows []evidence.Row, cycle *ActivityContext, horizon float64, hasHorizon bool) []evidence.Row {
	out := make([]evidence.Row, 0, len(rows))
	for _, row := range rows {
		annotated := row.Clone()
		daysSince, haveDays := annotated.Float(daysSinceAliases...)
		if cycle == nil || !haveDays {
			annotated.Set("due_status", string(DueUnknown))
			out = append(out, annotated)
			continue
		}
		annotated.Set("recommended_cycle_days", round2(cycle.CycleDays))
		if hasHorizon {
			annotated.Set("horizon_days", round1(horizon))
		}
		gap := cycle.CycleDays - daysSince
		switch {
		case gap <= 0:
			annotated.Set("due_status", string(DueOverdue))
			annotated.Set("days_overdue", round1(-gap))
			annotated.Set("days_until_due", 0.0)
		case hasHorizon && gap <= horizon:
			annotated.Set("due_status", string(DueSoon))
			annotated.Set("days_until_due", round1(gap))
		default:
			annotated.Set("due_status", string(DueRecent))
		}
		out = append(out, annotated)
	}
	return out
}

// RowStatus reads a row's due_status annotation.
func RowStatus(row evidence.Row) DueStatus {
	if s, ok := row.String("due_status"); ok {
		return DueStatus(s)
	}
	return DueUnknown
}

// GroupByStatus buckets annotated rows, preserving row order per bucket.
func GroupByStatus(rows []evidence.Row) map[DueStatus][]evidence.Row {
	groups := make(map[DueStatus][]evidence.Row)
	for _, row := range rows {
		status := RowStatus(row)
		groups[status] = append(groups[status], row)
	}
	return groups
}

// renderDueDetail lists overdue rows first, then due-soon rows. Recent and
// unknown rows are omitted from the detail.
func renderDueDetail(rows []evidence.Row) string {
	groups := GroupByStatus(rows)
	overdue := groups[DueOverdue]
	dueSoon := groups[DueSoon]
	if len(overdue) == 0 && len(dueSoon) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("### ⏰ Due Window Detail\n")
	if len(overdue) > 0 {
		fmt.Fprintf(&b, "\n**Overdue (%d):**\n", len(overdue))
		for _, row := range overdue {
			days, _ := row.Float("days_overdue")
			fmt.Fprintf(&b, "- %s — %.1f days overdue\n", rowParkLabel(row), days)
		}
	}
	if len(dueSoon) > 0 {
		fmt.Fprintf(&b, "\n**Due soon (%d):**\n", len(dueSoon))
		for _, row := range dueSoon {
			days, _ := row.Float("days_until_due")
			fmt.Fprintf(&b, "- %s — due in %.1f days\n", rowParkLabel(row), days)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func rowParkLabel(row evidence.Row) string {
	if name, ok := row.String(parkAliases...); ok && strings.TrimSpace(name) != "" {
		return name
	}
	return "Unnamed location"
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
