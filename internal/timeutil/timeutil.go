package timeutil

import (
	"time"
)

// Clinic is the practice's local timezone (UTC+3, Saudi Arabia).
var Clinic *time.Location

func init() {
	var err error
	Clinic, err = time.LoadLocation("Asia/Riyadh")
	if err != nil {
		// Fallback: fixed zone if the tz database is unavailable
		Clinic = time.FixedZone("AST", 3*60*60)
	}
}

// Now returns the current time in the clinic timezone.
func Now() time.Time {
	return time.Now().In(Clinic)
}

// ToClinic converts any time to the clinic timezone.
func ToClinic(t time.Time) time.Time {
	return t.In(Clinic)
}

// ParseInClinic parses a time string in the clinic timezone.
func ParseInClinic(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Clinic)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Today returns the start of the current day in the clinic timezone.
func Today() time.Time {
	now := Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Clinic)
}

// DaysUntil returns whole days from today until the given date.
func DaysUntil(t time.Time) int {
	return int(t.In(Clinic).Sub(Today()).Hours() / 24)
}

// Common layouts for clinic formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "January 02, 2006"
)

// FormatDisplay renders a date the way reports show it (e.g. "December 31, 2021").
func FormatDisplay(t time.Time) string {
	return t.In(Clinic).Format(DisplayLayout)
}
