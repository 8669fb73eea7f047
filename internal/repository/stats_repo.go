package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brewlog/internal/models"
)

type StatsSQLite struct {
	db *sql.DB
}

func NewStatsSQLite(db *sql.DB) *StatsSQLite {
	return &StatsSQLite{db: db}
}

var _ StatsRepo = (*StatsSQLite)(nil)

const (
	usageStatsSQL = `
		SELECT
			(SELECT COUNT(*) FROM users WHERE is_guest = 0),
			(SELECT COUNT(*) FROM users WHERE is_guest = 1),
			(SELECT COUNT(*) FROM coffee_beans),
			(SELECT COUNT(*) FROM recipes),
			(SELECT COUNT(*) FROM brews),
			(SELECT COALESCE(AVG(rating), 0) FROM brews WHERE rating > 0)
	`
	brewsPerDaySQL = `
		SELECT date(brewed_at), COUNT(*)
		FROM brews
		WHERE brewed_at >= ?
		GROUP BY date(brewed_at)
		ORDER BY date(brewed_at)
	`
)

// Usage returns the admin panel's headline counters in one query.
func (r *StatsSQLite) Usage(ctx context.Context) (models.UsageStats, error) {
	var s models.UsageStats
	err := r.db.QueryRowContext(ctx, usageStatsSQL).
		Scan(&s.Users, &s.Guests, &s.Beans, &s.Recipes, &s.Brews, &s.AvgRating)
	if err != nil {
		return models.UsageStats{}, fmt.Errorf("usage stats: %w", err)
	}
	return s, nil
}

// BrewsPerDay returns daily brew counts since the given time.
func (r *StatsSQLite) BrewsPerDay(ctx context.Context, since time.Time) ([]models.DayCount, error) {
	rows, err := r.db.QueryContext(ctx, brewsPerDaySQL, since.UTC())
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) { _ = rows.Close() }(rows)

	out := make([]models.DayCount, 0, 31)
	for rows.Next() {
		var d models.DayCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
