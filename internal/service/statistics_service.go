package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/repository"
)

// ageGroups are the reporting brackets, in display order.
var ageGroups = []struct {
	label    string
	min, max int
}{
	{"Dưới 30", 0, 29},
	{"30-40", 30, 40},
	{"41-50", 41, 50},
	{"51-60", 51, 60},
	{"Trên 60", 61, 1 << 30},
}

// StatisticsService reports teacher head counts.
type StatisticsService struct {
	statsRepo *repository.StatisticsRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(statsRepo *repository.StatisticsRepository, log zerolog.Logger) *StatisticsService {
	return &StatisticsService{
		statsRepo: statsRepo,
		log:       log.With().Str("component", "statistics_service").Logger(),
		now:       time.Now,
	}
}

// ByDepartment counts teachers per department.
func (s *StatisticsService) ByDepartment(ctx context.Context) (*model.CountStatistics, error) {
	stats, err := s.statsRepo.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	return withPercentages(stats), nil
}

// ByDegree counts teachers per degree.
func (s *StatisticsService) ByDegree(ctx context.Context) (*model.CountStatistics, error) {
	stats, err := s.statsRepo.CountByDegree(ctx)
	if err != nil {
		return nil, err
	}
	return withPercentages(stats), nil
}

// ByAge counts teachers per age bracket.
func (s *StatisticsService) ByAge(ctx context.Context) (*model.AgeStatistics, error) {
	dates, err := s.statsRepo.BirthDates(ctx)
	if err != nil {
		return nil, err
	}
	return groupByAge(dates, s.now()), nil
}

func withPercentages(stats []model.CountStat) *model.CountStatistics {
	total := 0
	for _, st := range stats {
		total += st.Count
	}
	for i := range stats {
		stats[i].Percentage = percentage(stats[i].Count, total)
	}
	return &model.CountStatistics{TotalTeachers: total, Items: stats}
}

func groupByAge(dates []time.Time, now time.Time) *model.AgeStatistics {
	items := make([]model.AgeGroupStat, len(ageGroups))
	for i, g := range ageGroups {
		items[i].Label = g.label
	}

	for _, dob := range dates {
		age := ageAt(dob, now)
		for i, g := range ageGroups {
			if age >= g.min && age <= g.max {
				items[i].Count++
				break
			}
		}
	}

	for i := range items {
		items[i].Percentage = percentage(items[i].Count, len(dates))
	}
	return &model.AgeStatistics{TotalTeachers: len(dates), Items: items}
}

// ageAt returns completed years between dob and now.
func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func percentage(count, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(count)).Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).Round(2)
}
