// Package ledger owns the incentive state: coin balance, streaks,
// per-video stats, notes, and the watch history. It is the sole mutator
// of the persisted application state, and every mutation is written back
// to the store before it returns.
package ledger

import (
	"log/slog"
	"time"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/timeutil"
	"github.com/ayoisaiah/studytrack/store"
)

// Accumulator collects the totals of the watch session in progress.
// It is ephemeral: at most one exists at a time, and it is discarded
// once the session is finalized.
type Accumulator struct {
	VideoID       string
	URL           string
	PlayedSeconds float64
	TabSwitches   int
	LastPosition  float64
	BonusAwarded  bool
}

// Ledger applies the deduction and reward rules to the application state.
type Ledger struct {
	db    store.DB
	opts  *config.TrackerConfig
	state *models.AppState
}

// New loads the persisted state and returns a ledger around it.
func New(db store.DB, opts *config.TrackerConfig) (*Ledger, error) {
	state, err := db.GetState()
	if err != nil {
		return nil, err
	}

	return &Ledger{
		db:    db,
		opts:  opts,
		state: state,
	}, nil
}

// State returns the current in-memory state. Callers must treat it as
// read-only; all mutation goes through ledger operations.
func (l *Ledger) State() *models.AppState {
	return l.state
}

// Coins returns the current coin balance.
func (l *Ledger) Coins() int {
	return l.state.Coins
}

func (l *Ledger) persist() error {
	return l.db.SaveState(l.state)
}

// ApplyTabSwitchPenalty deducts cost from the balance, clamping at zero.
// It never fails the penalty itself; only the persist can error.
func (l *Ledger) ApplyTabSwitchPenalty(cost int) (deducted int, err error) {
	deducted = cost
	if deducted > l.state.Coins {
		deducted = l.state.Coins
	}

	l.state.Coins -= deducted

	return deducted, l.persist()
}

// FinalizeSession closes the session represented by acc, appending it to
// the history and applying the daily and streak bonuses. A session with
// no played seconds and no tab switches is discarded without mutation.
func (l *Ledger) FinalizeSession(
	acc *Accumulator,
	notes, tag string,
	now time.Time,
) (*models.WatchSession, error) {
	secondsWatched := int(acc.PlayedSeconds)

	if secondsWatched <= 0 && acc.TabSwitches == 0 {
		return nil, nil
	}

	if notes == "" {
		notes = l.state.Notes[acc.VideoID]
	}

	sess := models.WatchSession{
		VideoID:     acc.VideoID,
		URL:         acc.URL,
		WatchedAt:   now,
		Seconds:     secondsWatched,
		TabSwitches: acc.TabSwitches,
		Notes:       notes,
		Tag:         tag,
	}

	l.state.History = append(l.state.History, sess)

	stats := l.state.Stats[acc.VideoID]
	stats.TotalSeconds += secondsWatched
	stats.TotalViews += acc.TabSwitches
	l.state.Stats[acc.VideoID] = stats

	if notes != "" {
		l.state.Notes[acc.VideoID] = notes
	}

	l.applyDailyBonus(now)

	slog.Info(
		"session finalized",
		slog.String("video_id", sess.VideoID),
		slog.Int("seconds", sess.Seconds),
		slog.Int("tab_switches", sess.TabSwitches),
		slog.Int("coins", l.state.Coins),
		slog.Int("streak", l.state.Streak),
	)

	return &sess, l.persist()
}

// applyDailyBonus awards the daily coin on the first finalized session of
// a calendar day, and extends or resets the streak. The streak bonus is
// paid at most once per day transition.
func (l *Ledger) applyDailyBonus(now time.Time) {
	today := timeutil.DayOf(now)

	if l.state.LastDayWatched.Equal(today) {
		return
	}

	l.state.Coins += l.opts.DailyBonus

	if l.state.LastDayWatched.IsNextDay(today) {
		l.state.Streak++

		if l.state.Streak >= 2 {
			l.state.Coins += l.opts.StreakBonus
		}
	} else {
		l.state.Streak = 1
	}

	l.state.LastDayWatched = today
}

// AwardCompletionBonus pays the flat completion bonus. The once-per-session
// guard is the caller's responsibility via acc.BonusAwarded.
func (l *Ledger) AwardCompletionBonus(videoID string) error {
	l.state.Coins += l.opts.CompletionBonus

	slog.Info(
		"completion bonus awarded",
		slog.String("video_id", videoID),
		slog.Int("coins", l.state.Coins),
	)

	return l.persist()
}

// PurchasePremium adds the premium coin pack to the balance. This is a
// stubbed monetization hook, not real payment processing.
func (l *Ledger) PurchasePremium() error {
	l.state.Coins += l.opts.PremiumBonus

	return l.persist()
}

// SaveNotes records free-text notes against a video. The latest write
// wins.
func (l *Ledger) SaveNotes(videoID, text string) error {
	if text == "" {
		return nil
	}

	l.state.Notes[videoID] = text

	return l.persist()
}

// AddReminder registers a daily reminder.
func (l *Ledger) AddReminder(r models.Reminder) error {
	l.state.Reminders = append(l.state.Reminders, r)

	return l.persist()
}

// RemoveReminder deletes the reminder at the given position in the list.
func (l *Ledger) RemoveReminder(index int) error {
	if index < 0 || index >= len(l.state.Reminders) {
		return errNoSuchReminder
	}

	l.state.Reminders = append(
		l.state.Reminders[:index],
		l.state.Reminders[index+1:]...,
	)

	return l.persist()
}

// AddAssignment registers an assignment or hackathon deadline to track.
func (l *Ledger) AddAssignment(a models.Assignment) error {
	if a.Kind == "" {
		a.Kind = models.KindAssignment
	}

	l.state.Assignments = append(l.state.Assignments, a)

	return l.persist()
}

// ToggleAssignment flips the assignment at the given position between
// pending and completed, returning its new value.
func (l *Ledger) ToggleAssignment(index int) (models.Assignment, error) {
	if index < 0 || index >= len(l.state.Assignments) {
		return models.Assignment{}, errNoSuchAssignment
	}

	l.state.Assignments[index].Done = !l.state.Assignments[index].Done

	return l.state.Assignments[index], l.persist()
}

// RemoveAssignment deletes the assignment at the given position in the
// list.
func (l *Ledger) RemoveAssignment(index int) error {
	if index < 0 || index >= len(l.state.Assignments) {
		return errNoSuchAssignment
	}

	l.state.Assignments = append(
		l.state.Assignments[:index],
		l.state.Assignments[index+1:]...,
	)

	return l.persist()
}

// Reset discards all history, stats, notes, reminders, and assignments,
// and restores the starting balance.
func (l *Ledger) Reset() error {
	l.state = models.NewAppState()
	l.state.Coins = l.opts.InitialCoins

	return l.persist()
}
