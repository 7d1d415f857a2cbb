// File path: internal/compose/chart.go
package compose

import (
	"fmt"
	"sort"

	"github.com/parkworks/parkpilot/internal/evidence"
)

const maxChartSeries = 10

// Axis describes one chart axis in the declarative spec.
type Axis struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// SeriesPoint is one plotted value.
type SeriesPoint struct {
	X interface{} `json:"x"`
	Y float64     `json:"y"`
}

// Series is a named sequence of points in source row order.
type Series struct {
	Name string        `json:"name"`
	Data []SeriesPoint `json:"data"`
}

// TimelineEntry is one event on a timeline chart.
type TimelineEntry struct {
	Park     string  `json:"park"`
	Date     string  `json:"date"`
	Sessions float64 `json:"sessions"`
	Cost     float64 `json:"cost"`
}

// ChartSpec is a declarative rendering instruction for the frontend; the
// composer never rasterizes anything.
type ChartSpec struct {
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	XAxis     *Axis           `json:"x_axis,omitempty"`
	YAxis     *Axis           `json:"y_axis,omitempty"`
	Series    []Series        `json:"series,omitempty"`
	Data      []TimelineEntry `json:"data,omitempty"`
	Legend    bool            `json:"legend"`
	Grid      bool            `json:"grid"`
	Color     string          `json:"color,omitempty"`
	Note      string          `json:"note,omitempty"`
	SortBy    string          `json:"sort_by,omitempty"`
	SortOrder string          `json:"sort_order,omitempty"`
}

type chartBuilder func(rows []evidence.Row) *ChartSpec

// chartBuilders maps templates to their chart rule. Templates without an
// entry never chart.
var chartBuilders = map[Template]chartBuilder{
	TemplateCostTrend:       buildTrendChart,
	TemplateCostByParkMonth: buildCostBarChart,
	TemplateLaborCostTop:    buildCostBarChart,
	TemplateLastMowingDate:  buildTimelineChart,
}

// BuildChart maps rows and a template hint to a chart spec. It returns nil
// when the template has no chart rule, the rows are empty, or a required
// column is absent from the row schema.
func BuildChart(rows []evidence.Row, template Template) *ChartSpec {
	if len(rows) == 0 {
		return nil
	}
	builder, ok := chartBuilders[template]
	if !ok {
		return nil
	}
	return builder(rows)
}

func buildTrendChart(rows []evidence.Row) *ChartSpec {
	if !rows[0].HasColumn("month") || !rows[0].HasColumn("monthly_cost") {
		return nil
	}
	type seriesKey struct {
		name  string
		order int
		total float64
	}
	var keys []*seriesKey
	index := make(map[string]*seriesKey)
	for _, row := range rows {
		park, ok := row.String(parkAliases...)
		if !ok || park == "" {
			continue
		}
		key, seen := index[park]
		if !seen {
			key = &seriesKey{name: park, order: len(keys)}
			index[park] = key
			keys = append(keys, key)
		}
		if cost, ok := row.Float("monthly_cost"); ok {
			key.total += cost
		}
	}
	distinct := len(keys)
	if distinct == 0 {
		return nil
	}
	retained := keys
	var note string
	if distinct > maxChartSeries {
		// Top series by total cost, ties broken by first encounter.
		ranked := append([]*seriesKey(nil), keys...)
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].total != ranked[j].total {
				return ranked[i].total > ranked[j].total
			}
			return ranked[i].order < ranked[j].order
		})
		ranked = ranked[:maxChartSeries]
		// Selection done, series order stays the source encounter order.
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].order < ranked[j].order })
		retained = ranked
		note = fmt.Sprintf("Showing top %d parks by total cost", maxChartSeries)
	}
	series := make([]Series, 0, len(retained))
	for _, key := range retained {
		s := Series{Name: key.name}
		for _, row := range rows {
			park, _ := row.String(parkAliases...)
			if park != key.name {
				continue
			}
			month, _ := row.Lookup("month")
			cost, _ := row.Float("monthly_cost")
			s.Data = append(s.Data, SeriesPoint{X: month, Y: cost})
		}
		series = append(series, s)
	}
	return &ChartSpec{
		Type:   "line",
		Title:  "Mowing Cost Trend",
		XAxis:  &Axis{Field: "month", Label: "Month", Type: "category"},
		YAxis:  &Axis{Field: "monthly_cost", Label: "Cost ($)", Type: "value"},
		Series: series,
		Legend: true,
		Grid:   true,
		Note:   note,
	}
}

func buildCostBarChart(rows []evidence.Row) *ChartSpec {
	if !rows[0].HasColumn("park") || !rows[0].HasColumn("total_cost") {
		return nil
	}
	series := Series{Name: "Total Cost"}
	for _, row := range rows {
		park, _ := row.String("park")
		cost, _ := row.Float("total_cost")
		series.Data = append(series.Data, SeriesPoint{X: park, Y: cost})
	}
	return &ChartSpec{
		Type:   "bar",
		Title:  "Mowing Cost by Park",
		XAxis:  &Axis{Field: "park", Label: "Park", Type: "category"},
		YAxis:  &Axis{Field: "total_cost", Label: "Total Cost ($)", Type: "value"},
		Series: []Series{series},
		Legend: false,
		Grid:   true,
		Color:  "#4CAF50",
	}
}

func buildTimelineChart(rows []evidence.Row) *ChartSpec {
	if !rows[0].HasColumn("park") || !rows[0].HasColumn("last_mowing_date") {
		return nil
	}
	entries := make([]TimelineEntry, 0, len(rows))
	for _, row := range rows {
		park, _ := row.String("park")
		date, _ := row.String("last_mowing_date")
		sessions, _ := row.Float("total_sessions")
		cost, _ := row.Float("total_cost")
		entries = append(entries, TimelineEntry{Park: park, Date: date, Sessions: sessions, Cost: cost})
	}
	return &ChartSpec{
		Type:      "timeline",
		Title:     "Last Mowing Date by Park",
		Data:      entries,
		SortBy:    "date",
		SortOrder: "desc",
	}
}

// ChartDescription produces the one-line visualization note rendered above
// the tabular section.
func ChartDescription(spec *ChartSpec, rows []evidence.Row) string {
	if spec == nil || len(rows) == 0 {
		return ""
	}
	switch spec.Type {
	case "line":
		var minMonth, maxMonth string
		for _, row := range rows {
			month, ok := row.String("month")
			if !ok || month == "" {
				continue
			}
			if minMonth == "" || month < minMonth {
				minMonth = month
			}
			if month > maxMonth {
				maxMonth = month
			}
		}
		return fmt.Sprintf("📈 **Visualization**: Line chart comparing %d park(s) from month %s to %s", len(spec.Series), minMonth, maxMonth)
	case "bar":
		return fmt.Sprintf("📊 **Visualization**: Bar chart comparing %d park(s)", len(rows))
	case "timeline":
		return fmt.Sprintf("📅 **Visualization**: Timeline of last mowing dates for %d park(s)", len(rows))
	}
	return ""
}
