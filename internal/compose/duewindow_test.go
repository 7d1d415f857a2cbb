// File path: internal/compose/duewindow_test.go
package compose

import (
	"testing"

	"github.com/parkworks/parkpilot/internal/evidence"
)

func dueRow(park string, daysSince float64) evidence.Row {
	row := evidence.NewRow()
	row.Set("park", park)
	row.Set("days_since_last", daysSince)
	return row
}

func TestAnnotateDueWindowOverdue(t *testing.T) {
	cycle := &ActivityContext{CycleDays: 7, Source: "slots"}
	rows := AnnotateDueWindow([]evidence.Row{dueRow("Elm", 10)}, cycle, 14, true)

	if got := RowStatus(rows[0]); got != DueOverdue {
		t.Fatalf("status = %s, want overdue", got)
	}
	if v, _ := rows[0].Float("days_overdue"); v != 3.0 {
		t.Fatalf("days_overdue = %v, want 3.0", v)
	}
	if v, _ := rows[0].Float("days_until_due"); v != 0 {
		t.Fatalf("days_until_due = %v, want 0", v)
	}
}

func TestAnnotateDueWindowDueSoon(t *testing.T) {
	cycle := &ActivityContext{CycleDays: 10, Source: "slots"}
	rows := AnnotateDueWindow([]evidence.Row{dueRow("Oak", 3)}, cycle, 14, true)

	if got := RowStatus(rows[0]); got != DueSoon {
		t.Fatalf("status = %s, want due_soon", got)
	}
	if v, _ := rows[0].Float("days_until_due"); v != 7.0 {
		t.Fatalf("days_until_due = %v, want 7.0", v)
	}
}

func TestAnnotateDueWindowRecentOutsideHorizon(t *testing.T) {
	cycle := &ActivityContext{CycleDays: 10, Source: "slots"}
	rows := AnnotateDueWindow([]evidence.Row{dueRow("Oak", 3)}, cycle, 5, true)

	if got := RowStatus(rows[0]); got != DueRecent {
		t.Fatalf("status = %s, want recent", got)
	}
	if rows[0].HasColumn("days_until_due") {
		t.Fatal("recent rows must not carry days_until_due")
	}
}

func TestAnnotateDueWindowRecentWithoutHorizon(t *testing.T) {
	cycle := &ActivityContext{CycleDays: 10, Source: "slots"}
	rows := AnnotateDueWindow([]evidence.Row{dueRow("Oak", 3)}, cycle, 0, false)

	if got := RowStatus(rows[0]); got != DueRecent {
		t.Fatalf("status without horizon = %s, want recent", got)
	}
}

func TestAnnotateDueWindowUnknown(t *testing.T) {
	rows := AnnotateDueWindow([]evidence.Row{dueRow("Oak", 3)}, nil, 14, true)
	if got := RowStatus(rows[0]); got != DueUnknown {
		t.Fatalf("status with nil cycle = %s, want unknown", got)
	}

	noDays := evidence.NewRow()
	noDays.Set("park", "Elm")
	cycle := &ActivityContext{CycleDays: 7, Source: "slots"}
	rows = AnnotateDueWindow([]evidence.Row{noDays}, cycle, 14, true)
	if got := RowStatus(rows[0]); got != DueUnknown {
		t.Fatalf("status without elapsed days = %s, want unknown", got)
	}
}

func TestOverdueBoundaryIsInclusive(t *testing.T) {
	cycle := &ActivityContext{CycleDays: 7, Source: "slots"}
	rows := AnnotateDueWindow([]evidence.Row{dueRow("Elm", 7)}, cycle, 0, false)

	if got := RowStatus(rows[0]); got != DueOverdue {
		t.Fatalf("status at days_since == cycle = %s, want overdue", got)
	}
	if v, _ := rows[0].Float("days_overdue"); v != 0 {
		t.Fatalf("days_overdue at boundary = %v, want 0", v)
	}
}

func TestAnnotationRounding(t *testing.T) {
	cycle := &ActivityContext{CycleDays: 10.333, Source: "reference"}
	rows := AnnotateDueWindow([]evidence.Row{dueRow("Oak", 3.1)}, cycle, 14, true)

	if v, _ := rows[0].Float("days_until_due"); v != 7.2 {
		t.Fatalf("days_until_due = %v, want 7.2", v)
	}
	if v, _ := rows[0].Float("recommended_cycle_days"); v != 10.33 {
		t.Fatalf("recommended_cycle_days = %v, want 10.33", v)
	}
}

func TestResolveHorizon(t *testing.T) {
	explicit := evidence.NewRow()
	explicit.Set("horizon_days", 21)
	if horizon, ok := ResolveHorizon([]evidence.Row{explicit}, map[string]interface{}{"weeks_ahead": 2.0}); !ok || horizon != 21 {
		t.Fatalf("explicit horizon = %v, %v, want 21", horizon, ok)
	}

	if horizon, ok := ResolveHorizon([]evidence.Row{dueRow("Oak", 1)}, map[string]interface{}{"weeks_ahead": 2.0}); !ok || horizon != 14 {
		t.Fatalf("weeks_ahead horizon = %v, %v, want 14", horizon, ok)
	}

	if _, ok := ResolveHorizon([]evidence.Row{dueRow("Oak", 1)}, nil); ok {
		t.Fatal("no horizon source should report false")
	}
}

func TestGroupByStatusAndDetail(t *testing.T) {
	cycle := &ActivityContext{CycleDays: 7, Source: "slots"}
	rows := AnnotateDueWindow([]evidence.Row{
		dueRow("Elm", 10),
		dueRow("Oak", 2),
		dueRow("Stanley", 6.5),
	}, cycle, 1, true)

	groups := GroupByStatus(rows)
	if len(groups[DueOverdue]) != 1 || len(groups[DueSoon]) != 1 || len(groups[DueRecent]) != 1 {
		t.Fatalf("group sizes = overdue:%d due_soon:%d recent:%d",
			len(groups[DueOverdue]), len(groups[DueSoon]), len(groups[DueRecent]))
	}

	detail := renderDueDetail(rows)
	if !containsAll(detail, "Overdue (1)", "Elm — 3.0 days overdue", "Due soon (1)", "Stanley — due in 0.5 days") {
		t.Fatalf("detail missing expected lines:\n%s", detail)
	}
	if contains(detail, "Oak") {
		t.Fatalf("recent rows must be omitted from the detail:\n%s", detail)
	}
}
