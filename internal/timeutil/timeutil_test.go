package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDayEqual(t *testing.T) {
	morning := time.Date(2024, 3, 12, 6, 30, 0, 0, time.Local)
	night := time.Date(2024, 3, 12, 23, 59, 59, 0, time.Local)

	if !DayOf(morning).Equal(DayOf(night)) {
		t.Errorf(
			"expected %v and %v to be the same calendar day",
			morning,
			night,
		)
	}

	nextDay := time.Date(2024, 3, 13, 0, 0, 1, 0, time.Local)
	if DayOf(morning).Equal(DayOf(nextDay)) {
		t.Errorf(
			"expected %v and %v to be different calendar days",
			morning,
			nextDay,
		)
	}
}

func TestDayIsNextDay(t *testing.T) {
	cases := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			name: "consecutive days",
			a:    time.Date(2024, 3, 12, 22, 0, 0, 0, time.Local),
			b:    time.Date(2024, 3, 13, 1, 0, 0, 0, time.Local),
			want: true,
		},
		{
			name: "same day",
			a:    time.Date(2024, 3, 12, 8, 0, 0, 0, time.Local),
			b:    time.Date(2024, 3, 12, 20, 0, 0, 0, time.Local),
			want: false,
		},
		{
			name: "two day gap",
			a:    time.Date(2024, 3, 12, 8, 0, 0, 0, time.Local),
			b:    time.Date(2024, 3, 14, 8, 0, 0, 0, time.Local),
			want: false,
		},
		{
			name: "reversed order",
			a:    time.Date(2024, 3, 13, 8, 0, 0, 0, time.Local),
			b:    time.Date(2024, 3, 12, 8, 0, 0, 0, time.Local),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DayOf(tc.a).IsNextDay(DayOf(tc.b))
			if got != tc.want {
				t.Errorf("IsNextDay(%v -> %v) = %t, want %t", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDayJSONRoundTrip(t *testing.T) {
	day := DayOf(time.Date(2024, 3, 12, 15, 4, 5, 0, time.Local))

	b, err := json.Marshal(day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got Day

	err = json.Unmarshal(b, &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Equal(day) {
		t.Errorf("round trip produced %v, want %v", got, day)
	}
}

func TestDayJSONLegacyTimestamp(t *testing.T) {
	// earlier releases persisted last_day_watched as a full timestamp
	var got Day

	err := json.Unmarshal([]byte(`"2024-03-12T18:30:00Z"`), &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DayOf(time.Date(2024, 3, 12, 18, 30, 0, 0, time.UTC).Local())
	if !got.Equal(want) {
		t.Errorf("legacy timestamp parsed as %v, want %v", got, want)
	}
}

func TestFormatDue(t *testing.T) {
	cases := []struct {
		name  string
		until time.Duration
		want  string
	}{
		{
			name:  "days and hours",
			until: 49*time.Hour + 30*time.Minute,
			want:  "due in 2d 1h",
		},
		{
			name:  "hours and minutes",
			until: 5*time.Hour + 12*time.Minute,
			want:  "due in 5h 12m",
		},
		{
			name:  "minutes only",
			until: 42 * time.Minute,
			want:  "due in 42m",
		},
		{
			name:  "overdue",
			until: -(26*time.Hour + 15*time.Minute),
			want:  "overdue by 1d 2h",
		},
		{
			name:  "just overdue",
			until: -3 * time.Minute,
			want:  "overdue by 3m",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDue(tc.until); got != tc.want {
				t.Errorf("FormatDue(%v) = %q, want %q", tc.until, got, tc.want)
			}
		})
	}
}

func TestDayJSONNull(t *testing.T) {
	var got Day

	err := json.Unmarshal([]byte("null"), &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.IsZero() {
		t.Errorf("expected zero day, got %v", got)
	}
}
