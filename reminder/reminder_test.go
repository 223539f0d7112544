package reminder

import (
	"testing"
	"time"

	"github.com/ayoisaiah/studytrack/internal/models"
)

type notifierMock struct {
	fired []string
}

func (n *notifierMock) Notify(_, msg string) {
	n.fired = append(n.fired, msg)
}

func TestCheckFiresWithinThreshold(t *testing.T) {
	n := &notifierMock{}
	s := New([]models.Reminder{
		{Title: "Evening revision", TimeOfDay: "18:30"},
	}, n)

	// one second before the occurrence is inside the threshold
	now := time.Date(2024, 3, 12, 18, 29, 59, 0, time.Local)

	s.check(now)

	if len(n.fired) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(n.fired))
	}
}

func TestCheckDoesNotFireOutsideThreshold(t *testing.T) {
	n := &notifierMock{}
	s := New([]models.Reminder{
		{Title: "Evening revision", TimeOfDay: "18:30"},
	}, n)

	s.check(time.Date(2024, 3, 12, 18, 25, 0, 0, time.Local))
	s.check(time.Date(2024, 3, 12, 18, 30, 5, 0, time.Local))

	if len(n.fired) != 0 {
		t.Errorf("expected no notifications, got %v", n.fired)
	}
}

func TestCheckFiresOncePerDay(t *testing.T) {
	n := &notifierMock{}
	s := New([]models.Reminder{
		{Title: "Evening revision", TimeOfDay: "18:30"},
	}, n)

	// consecutive ticks landing inside the threshold fire only once
	s.check(time.Date(2024, 3, 12, 18, 29, 59, 0, time.Local))
	s.check(time.Date(2024, 3, 12, 18, 30, 0, 0, time.Local))
	s.check(time.Date(2024, 3, 12, 18, 30, 1, 0, time.Local))

	if len(n.fired) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(n.fired))
	}

	// the same reminder fires again the next day
	s.check(time.Date(2024, 3, 13, 18, 30, 0, 0, time.Local))

	if len(n.fired) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(n.fired))
	}
}

func TestCheckSkipsMalformedTime(t *testing.T) {
	n := &notifierMock{}
	s := New([]models.Reminder{
		{Title: "Broken", TimeOfDay: "25:99"},
		{Title: "Valid", TimeOfDay: "09:00"},
	}, n)

	s.check(time.Date(2024, 3, 12, 9, 0, 0, 0, time.Local))

	if len(n.fired) != 1 {
		t.Fatalf("expected only the valid reminder to fire, got %v", n.fired)
	}
}

func TestValidateTimeOfDay(t *testing.T) {
	if err := ValidateTimeOfDay("18:30"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateTimeOfDay("half past six"); err == nil {
		t.Error("expected error for malformed time of day")
	}
}
