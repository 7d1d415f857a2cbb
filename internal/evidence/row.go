// File path: internal/evidence/row.go
package evidence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Row is an ordered mapping from column name to scalar value. Column order
// is the order in which columns were first set (for decoded rows, the JSON
// key order), so rendered tables mirror the executor's result shape.
// Lookups are resolved through an explicit alias list, case-insensitively,
// rather than by implicit case folding at call sites.
type Row struct {
	columns []string
	values  map[string]interface{}
}

// NewRow returns an empty row.
func NewRow() Row {
	return Row{values: make(map[string]interface{})}
}

// Set stores a value, appending the column to the order on first use.
func (r *Row) Set(column string, value interface{}) {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, exists := r.values[column]; !exists {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Columns returns the column names in insertion order.
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len reports the number of columns.
func (r Row) Len() int {
	return len(r.columns)
}

// HasColumn reports whether any alias resolves to a column, ignoring case.
func (r Row) HasColumn(aliases ...string) bool {
	_, ok := r.Lookup(aliases...)
	return ok
}

// Lookup returns the first value matching the alias list. Exact matches are
// tried before case-insensitive ones so that rows carrying both "Park" and
// "park" stay deterministic.
func (r Row) Lookup(aliases ...string) (interface{}, bool) {
	for _, alias := range aliases {
		if v, ok := r.values[alias]; ok {
			return v, true
		}
	}
	for _, alias := range aliases {
		for _, col := range r.columns {
			if strings.EqualFold(col, alias) {
				return r.values[col], true
			}
		}
	}
	return nil, false
}

// String returns the first alias match rendered as a string.
func (r Row) String(aliases ...string) (string, bool) {
	v, ok := r.Lookup(aliases...)
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}

// Float returns the first alias match coerced to a float64. Strings are
// parsed; non-numeric values report false.
func (r Row) Float(aliases ...string) (float64, bool) {
	v, ok := r.Lookup(aliases...)
	if !ok || v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Clone returns an independent copy, so annotators never mutate the
// executor's evidence.
func (r Row) Clone() Row {
	out := Row{
		columns: make([]string, len(r.columns)),
		values:  make(map[string]interface{}, len(r.values)),
	}
	copy(out.columns, r.columns)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}

// MarshalJSON renders the row as an object with columns in insertion order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object while preserving its key order.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}
	*r = NewRow()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("row: expected string key, got %v", keyTok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return err
		}
		r.Set(key, normalizeScalar(value))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// normalizeScalar converts json.Number values to float64 so downstream
// arithmetic and re-encoding behave like plain decoded JSON.
func normalizeScalar(v interface{}) interface{} {
	if num, ok := v.(json.Number); ok {
		if f, err := num.Float64(); err == nil {
			return f
		}
		return num.String()
	}
	return v
}
