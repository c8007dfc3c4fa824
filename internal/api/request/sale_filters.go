package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ndewijer/Stock-Lot-Ledger/internal/model"
)

// ParseSaleFilters extracts and validates sale history filters from query parameters.
// All parameters are optional.
//
// Validation rules:
//   - lot: Must be a valid UUID
//   - start_date/end_date: Must be valid date/datetime strings (YYYY-MM-DD or RFC3339)
//   - sort_dir: Must be "asc" or "desc" (defaults to "asc")
//
// A date-only end_date includes the whole day.
func ParseSaleFilters(lotParam, startDateParam, endDateParam, sortDirParam string) (*model.SaleFilter, error) {
	filters := &model.SaleFilter{}

	if lotParam != "" {
		if _, err := uuid.Parse(lotParam); err != nil {
			return nil, fmt.Errorf("invalid lot: %s", lotParam)
		}
		filters.LotID = lotParam
	}

	if startDateParam != "" {
		startTime, _, err := parseFilterTime(startDateParam)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date format: %w", err)
		}
		filters.StartDate = &startTime
	}

	if endDateParam != "" {
		endTime, dateOnly, err := parseFilterTime(endDateParam)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date format: %w", err)
		}
		if dateOnly {
			endTime = endTime.Add(24*time.Hour - time.Nanosecond)
		}
		filters.EndDate = &endTime
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, fmt.Errorf("invalid date range: end_date is before start_date")
	}

	if sortDirParam != "" {
		sortDir := strings.ToLower(sortDirParam)
		if sortDir != "asc" && sortDir != "desc" {
			return nil, fmt.Errorf("invalid sort_dir: must be 'asc' or 'desc'")
		}
		filters.SortDir = sortDir
	} else {
		filters.SortDir = "asc"
	}

	return filters, nil
}

// parseFilterTime parses date strings for filter parameters and reports
// whether the value carried a date only.
func parseFilterTime(str string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", str); err == nil {
		return t, true, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("cannot parse %q as a date or datetime", str)
}
