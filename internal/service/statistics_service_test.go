package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/teachpay-backend/internal/model"
)

func date(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func TestAgeAt(t *testing.T) {
	now := date("2026-10-16")
	assert.Equal(t, 30, ageAt(date("1996-10-16"), now))
	assert.Equal(t, 29, ageAt(date("1996-10-17"), now))
	assert.Equal(t, 29, ageAt(date("1996-11-01"), now))
}

func TestGroupByAge(t *testing.T) {
	now := date("2026-10-16")
	dates := []time.Time{
		date("2000-01-01"), // 26
		date("1996-10-16"), // 30
		date("1986-01-01"), // 40
		date("1985-01-01"), // 41
		date("1966-01-01"), // 60
		date("1960-01-01"), // 66
	}

	stats := groupByAge(dates, now)
	require.Len(t, stats.Items, 5)
	assert.Equal(t, 6, stats.TotalTeachers)

	counts := map[string]int{}
	for _, item := range stats.Items {
		counts[item.Label] = item.Count
	}
	assert.Equal(t, map[string]int{"Dưới 30": 1, "30-40": 2, "41-50": 1, "51-60": 1, "Trên 60": 1}, counts)
	assert.Equal(t, "33.33", stats.Items[1].Percentage.StringFixed(2))
}

func TestGroupByAge_Empty(t *testing.T) {
	stats := groupByAge(nil, date("2026-10-16"))
	assert.Len(t, stats.Items, 5)
	for _, item := range stats.Items {
		assert.Zero(t, item.Count)
		assert.True(t, item.Percentage.IsZero())
	}
}

func TestWithPercentages(t *testing.T) {
	stats := withPercentages([]model.CountStat{{FullName: "A", Count: 1}, {FullName: "B", Count: 3}, {FullName: "C"}})
	assert.Equal(t, 4, stats.TotalTeachers)
	assert.Equal(t, "25", stats.Items[0].Percentage.String())
	assert.Equal(t, "75", stats.Items[1].Percentage.String())
	assert.True(t, stats.Items[2].Percentage.IsZero())
}
