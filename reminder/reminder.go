// Package reminder polls wall-clock time against scheduled reminder
// times and fires best-effort local notifications.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/timeutil"
)

// fireThreshold is how close to the scheduled time the tick must land
// for the reminder to fire.
const fireThreshold = time.Second

// Notifier delivers a reminder to the user, fire-and-forget.
type Notifier interface {
	Notify(title, msg string)
}

// Scheduler checks a fixed set of reminders once per second.
type Scheduler struct {
	notifier  Notifier
	reminders []models.Reminder
	// lastFired guards against the same reminder firing twice in one
	// day when consecutive ticks both land inside the threshold.
	lastFired map[string]timeutil.Day
}

// New returns a scheduler over the given reminders.
func New(reminders []models.Reminder, notifier Notifier) *Scheduler {
	return &Scheduler{
		notifier:  notifier,
		reminders: reminders,
		lastFired: make(map[string]timeutil.Day),
	}
}

// Run ticks once per second until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.check(now)
		}
	}
}

// check fires every reminder whose occurrence today is within the
// threshold of now and has not fired yet today.
func (s *Scheduler) check(now time.Time) {
	today := timeutil.DayOf(now)

	for _, r := range s.reminders {
		occurrence, err := occurrenceOn(r.TimeOfDay, now)
		if err != nil {
			continue
		}

		diff := now.Sub(occurrence)
		if diff < 0 {
			diff = -diff
		}

		if diff > fireThreshold {
			continue
		}

		k := key(r)
		if s.lastFired[k].Equal(today) {
			continue
		}

		s.lastFired[k] = today
		s.notifier.Notify(
			"Reminder",
			fmt.Sprintf("%s (%s)", r.Title, r.TimeOfDay),
		)
	}
}

func key(r models.Reminder) string {
	return r.TimeOfDay + "|" + r.Title
}

// occurrenceOn resolves a HH:MM time of day to its occurrence on the
// same day as now.
func occurrenceOn(timeOfDay string, now time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf(
			"invalid reminder time %q: %w",
			timeOfDay,
			err,
		)
	}

	return time.Date(
		now.Year(),
		now.Month(),
		now.Day(),
		t.Hour(),
		t.Minute(),
		0,
		0,
		now.Location(),
	), nil
}

// ValidateTimeOfDay reports whether a reminder time is well-formed.
func ValidateTimeOfDay(timeOfDay string) error {
	_, err := occurrenceOn(timeOfDay, time.Now())

	return err
}
