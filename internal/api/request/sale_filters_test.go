package request

import (
	"testing"
	"time"
)

func TestParseSaleFilters(t *testing.T) {
	t.Run("default values when no parameters provided", func(t *testing.T) {
		filters, err := ParseSaleFilters("", "", "", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if filters.SortDir != "asc" {
			t.Errorf("Expected default SortDir 'asc', got '%s'", filters.SortDir)
		}
		if filters.LotID != "" || filters.StartDate != nil || filters.EndDate != nil {
			t.Errorf("Expected empty filters, got %+v", filters)
		}
	})

	t.Run("lot filter", func(t *testing.T) {
		lotID := "550e8400-e29b-41d4-a716-446655440000"
		filters, err := ParseSaleFilters(lotID, "", "", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if filters.LotID != lotID {
			t.Errorf("Expected lot %s, got %s", lotID, filters.LotID)
		}
	})

	t.Run("invalid lot", func(t *testing.T) {
		if _, err := ParseSaleFilters("not-a-uuid", "", "", ""); err == nil {
			t.Error("Expected error for invalid lot")
		}
	})

	t.Run("date-only end date covers the whole day", func(t *testing.T) {
		filters, err := ParseSaleFilters("", "2024-01-01", "2024-01-31", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		if !filters.StartDate.Equal(wantStart) {
			t.Errorf("Expected start %v, got %v", wantStart, filters.StartDate)
		}

		wantEnd := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
		if !filters.EndDate.Equal(wantEnd) {
			t.Errorf("Expected end %v, got %v", wantEnd, filters.EndDate)
		}
	})

	t.Run("RFC3339 dates", func(t *testing.T) {
		filters, err := ParseSaleFilters("", "2024-01-01T10:00:00Z", "2024-01-01T12:00:00+02:00", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if filters.EndDate.Hour() != 10 {
			t.Errorf("Expected end date normalized to UTC 10:00, got %v", filters.EndDate)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		if _, err := ParseSaleFilters("", "01/02/2024", "", ""); err == nil {
			t.Error("Expected error for invalid start_date")
		}
		if _, err := ParseSaleFilters("", "", "yesterday", ""); err == nil {
			t.Error("Expected error for invalid end_date")
		}
	})

	t.Run("end before start", func(t *testing.T) {
		if _, err := ParseSaleFilters("", "2024-02-01", "2024-01-01", ""); err == nil {
			t.Error("Expected error for inverted range")
		}
	})

	t.Run("sort direction", func(t *testing.T) {
		filters, err := ParseSaleFilters("", "", "", "DESC")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if filters.SortDir != "desc" {
			t.Errorf("Expected 'desc', got '%s'", filters.SortDir)
		}

		if _, err := ParseSaleFilters("", "", "", "sideways"); err == nil {
			t.Error("Expected error for invalid sort_dir")
		}
	})
}
