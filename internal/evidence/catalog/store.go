// File path: internal/evidence/catalog/store.go
package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/parkworks/parkpilot/internal/common"
	"github.com/parkworks/parkpilot/internal/compose"
	"github.com/parkworks/parkpilot/internal/evidence"
)

// Store wraps a pooled sqlx.DB connection to the fixture catalog: the demo
// maintenance dataset and reference snippets served when no real executor
// is wired in. The composer itself never touches this store.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided
// path, migrating and seeding the schema on first use.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", abs)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := store.seed(ctx); err != nil {
		db.Close()
		return nil, err
	}
	common.Logger().Info("catalog: fixture catalog ready", "path", abs)
	return store, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS maintenance_activity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			park TEXT NOT NULL,
			activity TEXT NOT NULL,
			month TEXT NOT NULL,
			year INTEGER NOT NULL,
			monthly_cost REAL NOT NULL,
			total_cost REAL NOT NULL,
			total_sessions INTEGER NOT NULL,
			last_mowing_date TEXT,
			days_since_last REAL
		)`,
		`CREATE TABLE IF NOT EXISTS field_dimensions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			park TEXT NOT NULL,
			field TEXT NOT NULL,
			shape TEXT NOT NULL,
			home_to_pitchers_plate_m REAL,
			home_to_first_base_m REAL,
			length_m REAL,
			width_m REAL
		)`,
		`CREATE TABLE IF NOT EXISTS reference_snippets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic TEXT NOT NULL,
			page TEXT,
			source TEXT,
			body TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate catalog: %w", err)
		}
	}
	return nil
}

// RowsForTemplate runs the canned query for a template and returns rows in
// result order, preserving the result's column order.
func (s *Store) RowsForTemplate(ctx context.Context, template compose.Template, slots map[string]interface{}) ([]evidence.Row, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("catalog not initialised")
	}
	query, args := templateQuery(template, slots)
	if query == "" {
		return nil, nil
	}
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query template %s: %w", template, err)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	var out []evidence.Row
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := evidence.NewRow()
		for i, col := range columns {
			row.Set(col, normalizeDBValue(values[i]))
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Snippets returns reference snippets for a topic, most relevant first.
func (s *Store) Snippets(ctx context.Context, topic string, limit int) ([]evidence.KBHit, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("catalog not initialised")
	}
	if limit <= 0 {
		limit = 3
	}
	type snippetRecord struct {
		Body   string `db:"body"`
		Page   string `db:"page"`
		Source string `db:"source"`
	}
	records := []snippetRecord{}
	err := s.db.SelectContext(ctx, &records,
		`SELECT body, COALESCE(page, '') AS page, COALESCE(source, '') AS source
		 FROM reference_snippets WHERE topic = ? ORDER BY id LIMIT ?`, topic, limit)
	if err != nil {
		return nil, fmt.Errorf("select snippets: %w", err)
	}
	hits := make([]evidence.KBHit, 0, len(records))
	for _, rec := range records {
		hits = append(hits, evidence.KBHit{Text: rec.Body, Page: rec.Page, Source: rec.Source})
	}
	return hits, nil
}

func templateQuery(template compose.Template, slots map[string]interface{}) (string, []interface{}) {
	switch template {
	case compose.TemplateLaborCostTop:
		return `SELECT park, SUM(monthly_cost) AS total_cost
			FROM maintenance_activity WHERE month = ? AND year = ?
			GROUP BY park ORDER BY total_cost DESC LIMIT 1`,
			[]interface{}{slotText(slots, "month"), slotText(slots, "year")}
	case compose.TemplateCostTrend:
		return `SELECT park, month, monthly_cost
			FROM maintenance_activity ORDER BY id`, nil
	case compose.TemplateCostByParkMonth:
		return `SELECT park, SUM(monthly_cost) AS total_cost
			FROM maintenance_activity WHERE month = ?
			GROUP BY park ORDER BY total_cost DESC`,
			[]interface{}{slotText(slots, "month")}
	case compose.TemplateLastMowingDate:
		query := `SELECT park, MAX(last_mowing_date) AS last_mowing_date,
			SUM(total_sessions) AS total_sessions, SUM(total_cost) AS total_cost
			FROM maintenance_activity`
		var args []interface{}
		if word, ok := parkSlotWord(slots); ok {
			query += ` WHERE LOWER(park) = ?`
			args = append(args, word)
		}
		return query + ` GROUP BY park ORDER BY last_mowing_date DESC`, args
	case compose.TemplateCostBreakdown:
		query := `SELECT park, activity, month, monthly_cost
			FROM maintenance_activity`
		var args []interface{}
		if word, ok := parkSlotWord(slots); ok {
			query += ` WHERE LOWER(park) = ?`
			args = append(args, word)
		}
		return query + ` ORDER BY park, month`, args
	case compose.TemplateFieldRectangular:
		return `SELECT park, field, length_m, width_m
			FROM field_dimensions WHERE shape = 'rectangular' ORDER BY park, field`, nil
	case compose.TemplateFieldDiamond:
		return `SELECT park, field, home_to_pitchers_plate_m, home_to_first_base_m
			FROM field_dimensions WHERE shape = 'diamond' ORDER BY park, field`, nil
	case compose.TemplateDueWindow:
		query := `SELECT park, activity, last_mowing_date, days_since_last
			FROM maintenance_activity m
			WHERE days_since_last IS NOT NULL
			AND id = (SELECT MAX(id) FROM maintenance_activity WHERE park = m.park)`
		var args []interface{}
		if word, ok := parkSlotWord(slots); ok {
			query += ` AND LOWER(m.park) = ?`
			args = append(args, word)
		}
		return query + ` ORDER BY days_since_last DESC`, args
	}
	return "", nil
}

// parkSlotWord resolves a park slot to the lowercased first word the
// catalog stores, so "Alice Town Pk" still matches the "Alice" rows.
func parkSlotWord(slots map[string]interface{}) (string, bool) {
	if slots == nil {
		return "", false
	}
	raw, ok := slots["park"].(string)
	if !ok {
		return "", false
	}
	word := FirstWord(raw)
	return word, word != ""
}

func normalizeDBValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case int64:
		return float64(val)
	default:
		return val
	}
}

func slotText(slots map[string]interface{}, key string) interface{} {
	if slots == nil {
		return ""
	}
	if v, ok := slots[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
