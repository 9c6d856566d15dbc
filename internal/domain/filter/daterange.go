// Package filter turns raw query-string values into validated, typed report filters.
package filter

import (
	"strconv"
	"strings"
	"time"

	"erpreports/internal/core/apperror"
)

const (
	dateLayout = "2006-01-02"

	// the exclusive upper bound of 9998-12-31 is still a valid SQL Server date
	minYear = 1900
	maxYear = 9998
)

// DateRange is a half-open calendar window [From, To).
// Both bounds are midnights in UTC; To is exclusive so datetime columns keep
// every record of the last requested day.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// DateParams is the raw date part of a filter bag.
type DateParams struct {
	StartDate string
	EndDate   string
	Year      string
	Month     string
}

// ParseDateRange normalizes the date filters of a request.
//
// Explicit bounds take precedence: startDate/endDate (both required) map to
// [startDate, endDate+1d). Otherwise year with an optional month maps to the
// calendar month or year. A nil range means the query is not date bounded.
func ParseDateRange(p DateParams) (*DateRange, error) {
	start := strings.TrimSpace(p.StartDate)
	end := strings.TrimSpace(p.EndDate)

	// a malformed month is rejected even when it would not be used
	month, err := ParseMonth(p.Month)
	if err != nil {
		return nil, err
	}

	// a lone bound is not applied, but it must still be a valid date
	var from, to time.Time
	if start != "" {
		if from, err = parseDate("startDate", start); err != nil {
			return nil, err
		}
	}
	if end != "" {
		if to, err = parseDate("endDate", end); err != nil {
			return nil, err
		}
	}

	if start != "" && end != "" {
		if to.Before(from) {
			return nil, apperror.NewInvalidFilter("endDate", "endDate must not be before startDate").
				WithDetail("startDate", start).
				WithDetail("endDate", end)
		}
		return &DateRange{From: from, To: to.AddDate(0, 0, 1)}, nil
	}

	if strings.TrimSpace(p.Year) == "" {
		return nil, nil
	}

	year, err := ParseYear(p.Year)
	if err != nil {
		return nil, err
	}
	if month == 0 {
		r := YearRange(year)
		return &r, nil
	}

	r, err := MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// YearRange returns [Jan 1 year, Jan 1 year+1).
func YearRange(year int) DateRange {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(1, 0, 0)}
}

// MonthRange returns [first day of month, first day of next month).
// December rolls into January of the following year.
func MonthRange(year, month int) (DateRange, error) {
	if month < 1 || month > 12 {
		return DateRange{}, apperror.NewInvalidFilter("month", "month must be between 1 and 12").
			WithDetail("value", month)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 1, 0)}, nil
}

// ParseYear parses a four digit calendar year.
func ParseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year < minYear || year > maxYear {
		return 0, apperror.NewInvalidFilter("year", "year must be an integer between 1900 and 9998").
			WithDetail("value", raw)
	}
	return year, nil
}

// ParseMonth parses a 1-12 month. Empty and "all" mean no month (0).
func ParseMonth(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return 0, nil
	}
	month, err := strconv.Atoi(raw)
	if err != nil || month < 1 || month > 12 {
		return 0, apperror.NewInvalidFilter("month", "month must be between 1 and 12").
			WithDetail("value", raw)
	}
	return month, nil
}

func parseDate(param, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		rfc, rfcErr := time.Parse(time.RFC3339, raw)
		if rfcErr != nil {
			return time.Time{}, apperror.NewInvalidFilter(param, "invalid date, expected YYYY-MM-DD").
				WithDetail("value", raw)
		}
		y, m, d := rfc.Date()
		t = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if t.Year() < minYear || t.Year() > maxYear {
		return time.Time{}, apperror.NewInvalidFilter(param, "date year must be between 1900 and 9998").
			WithDetail("value", raw)
	}
	return t, nil
}
