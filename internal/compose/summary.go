// File path: internal/compose/summary.go
package compose

import (
	"fmt"

	"github.com/parkworks/parkpilot/internal/evidence"
)

// noResultsSentence is rendered for an empty row set regardless of template.
const noResultsSentence = "❌ No results found."

type summaryRule func(rows []evidence.Row, slots map[string]interface{}) string

// summaryRules is the template → formatting lookup. Unrecognized templates
// fall back to the generic count sentence.
var summaryRules = map[Template]summaryRule{
	TemplateLaborCostTop: func(rows []evidence.Row, slots map[string]interface{}) string {
		park, ok := rows[0].String("park")
		if !ok || park == "" {
			park = "Unknown"
		}
		cost, _ := rows[0].Float("total_cost")
		month := slotString(slots, "month")
		year := slotString(slots, "year")
		return fmt.Sprintf("### 🏆 Results\n\n**%s** had the highest mowing cost of **$%s** in %s/%s.", park, formatMoney(cost), month, year)
	},
	TemplateCostTrend: func(rows []evidence.Row, slots map[string]interface{}) string {
		return fmt.Sprintf("### 📈 Trend Analysis\n\nCost trend data across **%d time periods**.", len(rows))
	},
	TemplateCostByParkMonth: func(rows []evidence.Row, slots map[string]interface{}) string {
		var total float64
		for _, row := range rows {
			if cost, ok := row.Float("total_cost"); ok {
				total += cost
			}
		}
		return fmt.Sprintf("### 📊 Cost Comparison\n\n**%d parks** with combined costs of **$%s**.", len(rows), formatMoney(total))
	},
	TemplateLastMowingDate: func(rows []evidence.Row, slots map[string]interface{}) string {
		return fmt.Sprintf("### 📅 Last Mowing Activity\n\nShowing data for **%d park(s)**.", len(rows))
	},
	TemplateCostBreakdown: func(rows []evidence.Row, slots map[string]interface{}) string {
		return fmt.Sprintf("### 💰 Detailed Breakdown\n\n**%d cost entries** by activity type.", len(rows))
	},
	TemplateFieldRectangular: func(rows []evidence.Row, slots map[string]interface{}) string {
		return fmt.Sprintf("### 📏 Field Dimensions\n\nDimension data for **%d rectangular field(s)**.", len(rows))
	},
	TemplateFieldDiamond: func(rows []evidence.Row, slots map[string]interface{}) string {
		return fmt.Sprintf("### 📏 Field Dimensions\n\nDimension data for **%d diamond field(s)**.", len(rows))
	},
	TemplateDueWindow: func(rows []evidence.Row, slots map[string]interface{}) string {
		groups := GroupByStatus(rows)
		return fmt.Sprintf(
			"### 🗓️ Maintenance Due Window\n\nAssessed **%d** maintenance record(s): %d overdue, %d due soon.",
			len(rows), len(groups[DueOverdue]), len(groups[DueSoon]),
		)
	},
}

// Summarize renders the per-template synopsis of tabular results.
func Summarize(rows []evidence.Row, template Template, slots map[string]interface{}) string {
	if len(rows) == 0 {
		return noResultsSentence
	}
	if rule, ok := summaryRules[template]; ok {
		return rule(rows, slots)
	}
	return fmt.Sprintf("### Results\n\nFound **%d records**.", len(rows))
}

// TableName titles the tabular artifact for a template.
func TableName(template Template, slots map[string]interface{}) string {
	switch template {
	case TemplateLaborCostTop:
		return fmt.Sprintf("Top Park by Mowing Cost (%s/%s)", slotString(slots, "month"), slotString(slots, "year"))
	case TemplateCostTrend:
		return "Mowing Cost Trend"
	case TemplateCostByParkMonth:
		return "Cost Comparison by Park"
	case TemplateLastMowingDate:
		return "Last Mowing Dates"
	case TemplateCostBreakdown:
		return "Detailed Cost Breakdown"
	case TemplateFieldRectangular:
		return "Rectangular Field Dimensions"
	case TemplateFieldDiamond:
		return "Diamond Field Dimensions"
	case TemplateDueWindow:
		return "Maintenance Due Window"
	}
	return "Query Result"
}
