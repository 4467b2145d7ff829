package timeutil

import (
	"testing"
	"time"
)

func TestParseInClinic(t *testing.T) {
	parsed, err := ParseInClinic(DateLayout, "2024-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2024 || parsed.Month() != time.June || parsed.Day() != 15 {
		t.Errorf("unexpected date: %v", parsed)
	}
	if parsed.Location() != Clinic {
		t.Errorf("expected clinic timezone, got %v", parsed.Location())
	}

	if _, err := ParseInClinic(DateLayout, "15/06/2024"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestDaysUntil(t *testing.T) {
	if got := DaysUntil(Today()); got != 0 {
		t.Errorf("today: expected 0, got %d", got)
	}
	if got := DaysUntil(Today().AddDate(0, 0, 10)); got != 10 {
		t.Errorf("ten days out: expected 10, got %d", got)
	}
	if got := DaysUntil(Today().AddDate(0, 0, -3)); got != -3 {
		t.Errorf("three days ago: expected -3, got %d", got)
	}
}

func TestFormatDisplay(t *testing.T) {
	d := time.Date(2021, time.December, 31, 12, 0, 0, 0, Clinic)
	if got := FormatDisplay(d); got != "December 31, 2021" {
		t.Errorf("expected \"December 31, 2021\", got %q", got)
	}
}
