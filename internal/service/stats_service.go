package service

import (
	"context"
	"time"

	"brewlog/internal/models"
	"brewlog/internal/repository"
)

const (
	defaultActivityDays = 30
	maxActivityDays     = 365
)

// StatsService backs the admin panel.
type StatsService struct {
	repo repository.StatsRepo
}

func NewStatsService(repo repository.StatsRepo) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) Usage(ctx context.Context) (models.UsageStats, error) {
	return s.repo.Usage(ctx)
}

// BrewsPerDay returns daily brew counts for the last `days` days,
// clamped to a sane window.
func (s *StatsService) BrewsPerDay(ctx context.Context, days int) ([]models.DayCount, error) {
	if days <= 0 {
		days = defaultActivityDays
	}
	if days > maxActivityDays {
		days = maxActivityDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.BrewsPerDay(ctx, since)
}
