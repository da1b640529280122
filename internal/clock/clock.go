// Package clock injects time into the domain rules so they stay
// deterministic under test.
package clock

import "time"

const (
	// DateLayout is the layout of promo dates and coupon validity windows.
	DateLayout = "2006-01-02"
	// TimestampLayout is the layout of coupon scan timestamps.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Clock supplies the current date and instant.
type Clock interface {
	// Today returns the current date truncated to midnight UTC.
	Today() time.Time
	// TodayString returns Today in the DateLayout.
	TodayString() string
	// Now returns the current instant.
	Now() time.Time
}

// System reads the real time.
type System struct{}

func (System) Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s System) TodayString() string {
	return s.Today().Format(DateLayout)
}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant. Test helper.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Today() time.Time {
	return time.Date(f.Instant.Year(), f.Instant.Month(), f.Instant.Day(), 0, 0, 0, 0, time.UTC)
}

func (f Fixed) TodayString() string {
	return f.Today().Format(DateLayout)
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

// ParseDate parses a DateLayout date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatTimestamp renders an instant in the scan-timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
