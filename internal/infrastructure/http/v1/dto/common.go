// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"strings"

	"erpreports/internal/domain/filter"
)

// DateQuery is the date part shared by every dated report.
type DateQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Year      string `form:"year"`
	Month     string `form:"month"`
}

// Range normalizes the date parameters. Nil means unbounded.
func (q DateQuery) Range() (*filter.DateRange, error) {
	return filter.ParseDateRange(filter.DateParams{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Year:      q.Year,
		Month:     q.Month,
	})
}

// YearValue parses year alone; empty yields zero.
func (q DateQuery) YearValue() (int, error) {
	if strings.TrimSpace(q.Year) == "" {
		return 0, nil
	}
	return filter.ParseYear(q.Year)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	OK bool `json:"ok"`
}
