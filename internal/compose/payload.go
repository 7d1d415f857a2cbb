// File path: internal/compose/payload.go
package compose

import (
	"github.com/parkworks/parkpilot/internal/evidence"
)

// Citation points a rendered claim back at its evidence source. At most
// three are kept per evidence group, in first-seen order.
type Citation struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

// Table is one tabular artifact in the payload. Columns follow the first
// row's column order; rows keep retrieval order.
type Table struct {
	Name    string         `json:"name"`
	Columns []string       `json:"columns"`
	Rows    []evidence.Row `json:"rows"`
}

// AnswerPayload is the sole output contract of the composer.
type AnswerPayload struct {
	AnswerMD  string        `json:"answer_md"`
	Tables    []Table       `json:"tables"`
	Charts    []*ChartSpec  `json:"charts"`
	MapLayer  interface{}   `json:"map_layer"`
	Citations []Citation    `json:"citations"`
	Logs      []interface{} `json:"logs"`
}

// newPayload returns a payload whose collection fields encode as empty
// arrays, never null.
func newPayload() AnswerPayload {
	return AnswerPayload{
		Tables:    []Table{},
		Charts:    []*ChartSpec{},
		Citations: []Citation{},
		Logs:      []interface{}{},
	}
}
