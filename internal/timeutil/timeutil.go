// Package timeutil provides utility functions and types for working with
// time-related operations, most importantly the calendar day value used by
// the streak logic.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const (
	minutesInAnHour = 60
	HoursInADay     = 24
)

// nextDayGrace is the maximum gap between two watch days that still counts
// as consecutive. A value above 24h absorbs late-night sessions that
// straddle midnight.
const nextDayGrace = 36 * time.Hour

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period5Days     Period = "5days"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period5Days:     -4,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period5Days,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period365Days,
}

// Day is a calendar day at midnight in the local time zone. Using a
// normalized value instead of raw timestamps or date strings keeps day
// equality and next-day checks free of format and timezone drift.
type Day struct {
	t time.Time
}

// DayOf returns the calendar day containing t.
func DayOf(t time.Time) Day {
	return Day{t: RoundToStart(t)}
}

// ParseDay parses a day previously produced by String.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day value %q: %w", s, err)
	}

	return Day{t: t}, nil
}

func (d Day) String() string {
	return d.t.Format("2006-01-02")
}

// Format renders the day with an arbitrary date layout.
func (d Day) Format(layout string) string {
	return d.t.Format(layout)
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// Equal reports whether both values represent the same calendar day.
func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// IsNextDay reports whether other is the day immediately after d, within
// the grace tolerance.
func (d Day) IsNextDay(other Day) bool {
	if d.IsZero() || !d.t.Before(other.t) {
		return false
	}

	return other.t.Sub(d.t) <= nextDayGrace
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Day{}
		return nil
	}

	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	// older blobs stored a full RFC 3339 timestamp for the last watch day
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = DayOf(t.Local())
		return nil
	}

	day, err := ParseDay(s)
	if err != nil {
		return err
	}

	*d = day

	return nil
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// FormatDue expresses the distance to a deadline as a countdown, or as
// the span elapsed since it passed.
func FormatDue(until time.Duration) string {
	if until < 0 {
		return "overdue by " + formatSpan(-until)
	}

	return "due in " + formatSpan(until)
}

func formatSpan(d time.Duration) string {
	totalMins := Round(d.Minutes())

	minutesInADay := HoursInADay * minutesInAnHour
	days := totalMins / minutesInADay
	hrs, mins := MinsToHoursAndMins(totalMins % minutesInADay)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hrs)
	case hrs > 0:
		return fmt.Sprintf("%dh %dm", hrs, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// FormatSeconds expresses a seconds value as hours, minutes, and seconds.
func FormatSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}

	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}

	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}

	return fmt.Sprintf("%ds", s)
}
