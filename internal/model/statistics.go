package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CountStat is a teacher head count for one department or degree.
type CountStat struct {
	ID         uuid.UUID       `json:"id"`
	FullName   string          `json:"full_name"`
	ShortName  string          `json:"short_name"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AgeGroupStat is a teacher head count for one age bracket.
type AgeGroupStat struct {
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CountStatistics is a head-count breakdown with its total.
type CountStatistics struct {
	TotalTeachers int         `json:"total_teachers"`
	Items         []CountStat `json:"items"`
}

// AgeStatistics is the age-bracket breakdown with its total.
type AgeStatistics struct {
	TotalTeachers int            `json:"total_teachers"`
	Items         []AgeGroupStat `json:"items"`
}
