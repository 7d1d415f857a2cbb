// File path: internal/evidence/catalog/seed.go
package catalog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type activityFixture struct {
	RawName      string
	Activity     string
	Month        string
	Year         int
	MonthlyCost  float64
	TotalCost    float64
	Sessions     int
	LastDate     string
	DaysSince    float64
	HasDaysSince bool
}

var activityFixtures = []activityFixture{
	{"RFT- Alice Town Pk PTurf Mow/Maint", "Turf Mowing", "05", 2024, 4210.50, 4210.50, 6, "2024-05-28", 10, true},
	{"RFT- Alice Town Pk PTurf Mow/Maint", "Turf Mowing", "06", 2024, 4788.25, 4788.25, 7, "2024-06-25", 10, true},
	{"Oak Glen Park Sports Field", "Turf Mowing", "05", 2024, 3150.00, 3150.00, 5, "2024-05-30", 3, true},
	{"Oak Glen Park Sports Field", "Turf Mowing", "06", 2024, 3390.75, 3390.75, 5, "2024-06-27", 3, true},
	{"STN- Stanley Pk South Mow", "Turf Mowing", "05", 2024, 6912.40, 6912.40, 9, "2024-05-26", 16, true},
	{"STN- Stanley Pk South Mow", "Turf Mowing", "06", 2024, 7234.10, 7234.10, 9, "2024-06-22", 16, true},
	{"Elm Commons", "Turf Mowing", "06", 2024, 2218.00, 2218.00, 4, "2024-06-20", 0, false},
	{"Elm Commons", "Line Marking", "06", 2024, 640.00, 640.00, 2, "", 0, false},
}

type dimensionFixture struct {
	RawName  string
	Field    string
	Shape    string
	HomePlnt float64
	HomeBase float64
	Length   float64
	Width    float64
}

var dimensionFixtures = []dimensionFixture{
	{"STN- Stanley Pk South Mow", "Diamond 1", "diamond", 13.1, 18.2, 0, 0},
	{"STN- Stanley Pk South Mow", "Diamond 2", "diamond", 12.7, 17.6, 0, 0},
	{"Oak Glen Park Sports Field", "Rect A", "rectangular", 0, 0, 100.2, 64.5},
	{"RFT- Alice Town Pk PTurf Mow/Maint", "Rect B", "rectangular", 0, 0, 96.0, 60.0},
}

type snippetFixture struct {
	Topic  string
	Page   string
	Source string
	Body   string
}

var snippetFixtures = []snippetFixture{
	{
		Topic:  "mowing",
		Page:   "4",
		Source: "turf_maintenance_standard.pdf",
		Body: "Sports turf maintenance standard: cutting height should be 5 cm for active play fields. " +
			"Mow every 2 weeks during the growing season, and mow when the grass reaches 8 cm between scheduled cuts.",
	},
	{
		Topic:  "mowing",
		Page:   "7",
		Source: "turf_maintenance_standard.pdf",
		Body: "Irrigation guideline: apply 25 mm per week in dry periods. Fertilize at 120 kg per ha " +
			"in early spring per the turf specification.",
	},
	{
		Topic:  "field_dimension",
		Page:   "1",
		Source: "softball_field_criteria.pdf",
		Body: "Criteria For Softball Female - U17: Dimension Home to Pitchers Plate should be greater than 12.9m " +
			"and less than 13.42m; Home to First Base Path should be greater than 17.988m and less than 18.588m.",
	},
	{
		Topic:  "inspection",
		Page:   "2",
		Source: "field_inspection_guide.pdf",
		Body: "Inspection guidance: photograph the full field from the sideline midpoint; flag bare patches " +
			"larger than one square metre and standing water for follow-up.",
	},
}

// seed populates the catalog once; reseeding an already populated database
// is a no-op so fixture IDs stay stable across restarts.
func (s *Store) seed(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM maintenance_activity`); err != nil {
		return fmt.Errorf("count fixtures: %w", err)
	}
	if count > 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()
	if err := seedActivities(ctx, tx); err != nil {
		return err
	}
	if err := seedDimensions(ctx, tx); err != nil {
		return err
	}
	if err := seedSnippets(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func seedActivities(ctx context.Context, tx *sqlx.Tx) error {
	for _, fx := range activityFixtures {
		var daysSince interface{}
		if fx.HasDaysSince {
			daysSince = fx.DaysSince
		}
		var lastDate interface{}
		if fx.LastDate != "" {
			lastDate = fx.LastDate
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO maintenance_activity
			 (park, activity, month, year, monthly_cost, total_cost, total_sessions, last_mowing_date, days_since_last)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			CleanParkName(fx.RawName), fx.Activity, fx.Month, fx.Year,
			fx.MonthlyCost, fx.TotalCost, fx.Sessions, lastDate, daysSince)
		if err != nil {
			return fmt.Errorf("seed activity: %w", err)
		}
	}
	return nil
}

func seedDimensions(ctx context.Context, tx *sqlx.Tx) error {
	for _, fx := range dimensionFixtures {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO field_dimensions
			 (park, field, shape, home_to_pitchers_plate_m, home_to_first_base_m, length_m, width_m)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			CleanParkName(fx.RawName), fx.Field, fx.Shape,
			nullableFloat(fx.HomePlnt), nullableFloat(fx.HomeBase),
			nullableFloat(fx.Length), nullableFloat(fx.Width))
		if err != nil {
			return fmt.Errorf("seed dimensions: %w", err)
		}
	}
	return nil
}

func seedSnippets(ctx context.Context, tx *sqlx.Tx) error {
	for _, fx := range snippetFixtures {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO reference_snippets (topic, page, source, body) VALUES (?, ?, ?, ?)`,
			fx.Topic, fx.Page, fx.Source, fx.Body)
		if err != nil {
			return fmt.Errorf("seed snippets: %w", err)
		}
	}
	return nil
}

func nullableFloat(v float64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}
