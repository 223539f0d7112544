// Package tracker coordinates the watch session lifecycle: it polls the
// playback source for watch time, monitors visibility transitions for
// tab switches, counts down the focus window, and hands the accumulated
// totals to the ledger on finalize.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/timeutil"
	"github.com/ayoisaiah/studytrack/ledger"
	"github.com/ayoisaiah/studytrack/player"
)

// State is the lifecycle state of the tracker.
type State int

const (
	StateIdle State = iota
	StateAwaitingFocus
	StateActive
	StateFinalizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingFocus:
		return "awaiting focus confirmation"
	case StateActive:
		return "active"
	case StateFinalizing:
		return "finalizing"
	}

	return "unknown"
}

// Visibility is a page/window visibility transition.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
)

// Status is a snapshot of the session in progress, safe to read from
// outside the tracker loop.
type Status struct {
	State          State
	VideoID        string
	Coins          int
	Streak         int
	CurrentTime    float64
	PlayedSeconds  float64
	TabSwitches    int
	FocusRemaining int
	FocusDuration  int
	FocusActive    bool
	IsPlaying      bool
	LastWarning    string
}

// Tracker is the session lifecycle state machine. All mutation happens
// on the Run loop goroutine; external callers communicate through
// channels and read state through Snapshot.
type Tracker struct {
	opts     *config.TrackerConfig
	ledger   *ledger.Ledger
	notifier Notifier
	policy   PenaltyPolicy

	mu          sync.Mutex
	state       State
	acc         *ledger.Accumulator
	focus       *FocusWindow
	sampler     *Sampler
	src         player.Source
	isPlaying   bool
	currentTime float64
	notes       string
	tag         string
	lastWarning string

	visc  chan Visibility
	stopc chan struct{}
}

// New returns an idle tracker.
func New(
	opts *config.TrackerConfig,
	ldg *ledger.Ledger,
	notifier Notifier,
) *Tracker {
	return &Tracker{
		opts:     opts,
		ledger:   ldg,
		notifier: notifier,
		policy:   newPenaltyPolicy(opts),
		state:    StateIdle,
		visc:     make(chan Visibility, 16),
		stopc:    make(chan struct{}),
	}
}

// Load registers a video and moves to awaiting focus confirmation. It is
// gated on a positive coin balance and a well-formed video reference;
// on failure nothing changes.
func (t *Tracker) Load(urlOrID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateActive || t.state == StateFinalizing {
		return errSessionActive
	}

	if t.ledger.Coins() <= 0 {
		return ErrInsufficientCoins
	}

	videoID, err := player.ParseVideoID(urlOrID)
	if err != nil {
		return err
	}

	t.acc = &ledger.Accumulator{
		VideoID: videoID,
		URL:     player.CanonicalURL(videoID),
	}
	t.state = StateAwaitingFocus

	return nil
}

// ConfirmFocus sets the focus window and arms the session. Pass zero
// minutes to watch without a focus window.
func (t *Tracker) ConfirmFocus(minutes int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateAwaitingFocus {
		return errNoPendingVideo
	}

	if minutes > 0 {
		t.focus = newFocusWindow(minutes)
	}

	return nil
}

// Cancel discards the pending video and returns to idle.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateAwaitingFocus {
		return
	}

	t.acc = nil
	t.focus = nil
	t.state = StateIdle
}

// Attach connects the playback source to the armed session.
func (t *Tracker) Attach(src player.Source) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.src = src
	t.sampler = NewSampler(t.opts.MaxPlausibleDelta.Seconds())
}

// ReportVisibility feeds a visibility transition into the session loop.
func (t *Tracker) ReportVisibility(v Visibility) {
	select {
	case t.visc <- v:
	default:
		// a stuck loop must not block the caller
	}
}

// Stop requests that the current session be finalized.
func (t *Tracker) Stop() {
	select {
	case <-t.stopc:
	default:
		close(t.stopc)
	}
}

// SetNotes updates the notes to attach to the session on finalize.
func (t *Tracker) SetNotes(notes string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.notes = notes
}

// SetTag updates the tag to attach to the session on finalize.
func (t *Tracker) SetTag(tag string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tag = tag
}

// Snapshot returns a copy of the current session status.
func (t *Tracker) Snapshot() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Status{
		State:       t.state,
		Coins:       t.ledger.Coins(),
		Streak:      t.ledger.State().Streak,
		CurrentTime: t.currentTime,
		IsPlaying:   t.isPlaying,
		LastWarning: t.lastWarning,
	}

	if t.acc != nil {
		s.VideoID = t.acc.VideoID
		s.PlayedSeconds = t.acc.PlayedSeconds
		s.TabSwitches = t.acc.TabSwitches
	}

	if t.focus != nil {
		s.FocusRemaining = t.focus.Remaining
		s.FocusDuration = t.focus.Duration
		s.FocusActive = t.focus.Active
	}

	return s
}

// Run drives the session until it is finalized: by an explicit stop, the
// source ending, or context cancellation (best-effort teardown). The
// poll ticker and the focus countdown are owned by this loop and cannot
// outlive it.
func (t *Tracker) Run(ctx context.Context) (*models.WatchSession, error) {
	t.mu.Lock()

	if t.state != StateAwaitingFocus || t.src == nil {
		t.mu.Unlock()
		return nil, errNoPendingVideo
	}

	t.state = StateActive
	src := t.src
	t.mu.Unlock()

	err := player.Connect(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			// unloaded before the source became ready
			return t.finalize()
		}

		return nil, err
	}

	sampleTicker := time.NewTicker(t.opts.PollInterval)
	defer sampleTicker.Stop()

	focusTicker := time.NewTicker(time.Second)
	defer focusTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return t.finalize()

		case <-t.stopc:
			return t.finalize()

		case ev, ok := <-src.Events():
			if !ok {
				return t.finalize()
			}

			if done := t.handleSourceEvent(ev); done {
				return t.finalize()
			}

		case <-sampleTicker.C:
			t.sample()

		case <-focusTicker.C:
			t.tickFocus()

		case v := <-t.visc:
			t.handleVisibility(v)
		}
	}
}

func (t *Tracker) handleSourceEvent(ev player.Event) (done bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.Kind {
	case player.Ready:
		t.sampler.Prime(t.src.Position())

	case player.Playing:
		t.isPlaying = true
		t.sampler.Prime(t.src.Position())

	case player.Paused:
		t.isPlaying = false

	case player.Ended:
		t.isPlaying = false
		t.maybeAwardCompletion()

		return true
	}

	return false
}

// sample reads the playback position and applies the forward-delta rule.
func (t *Tracker) sample() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isPlaying || t.src == nil {
		return
	}

	pos := t.src.Position()
	t.acc.PlayedSeconds += t.sampler.Observe(pos)
	t.acc.LastPosition = pos
	t.currentTime = pos
}

func (t *Tracker) tickFocus() {
	t.mu.Lock()
	defer t.mu.Unlock()

	wasInEffect := t.focus.InEffect()

	t.focus.Tick()

	if wasInEffect && !t.focus.InEffect() {
		t.lastWarning = "Focus window complete! Penalties no longer apply."
		t.notifier.Notify(
			"Focus complete",
			"Your focus window has ended. Keep watching penalty-free.",
		)
	}
}

// handleVisibility classifies a hidden transition during playback as a
// tab switch and applies the penalty policy while the focus window is
// in effect.
func (t *Tracker) handleVisibility(v Visibility) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v != Hidden || !t.isPlaying || t.acc == nil {
		return
	}

	t.acc.TabSwitches++

	if !t.focus.InEffect() {
		return
	}

	cost, warning := t.policy.OnTabSwitch(t.acc.TabSwitches)

	if cost > 0 {
		deducted, err := t.ledger.ApplyTabSwitchPenalty(cost)
		if err != nil {
			slog.Error(
				"failed to persist penalty",
				slog.Any("error", err),
			)
		}

		if deducted < cost {
			warning = fmt.Sprintf(
				"%s (only %d coins left to deduct)",
				warning,
				deducted,
			)
		}
	}

	t.lastWarning = warning
	t.notifier.Warn(warning)
}

// maybeAwardCompletion pays the completion bonus once per session when
// playback reached the end under the completion reward policy.
// Called with the lock held.
func (t *Tracker) maybeAwardCompletion() {
	if t.opts.RewardPolicy != config.RewardCompletion {
		return
	}

	if t.acc == nil || t.acc.BonusAwarded {
		return
	}

	duration := t.src.Duration()
	if duration <= 0 || t.src.Position() < duration {
		return
	}

	t.acc.BonusAwarded = true

	err := t.ledger.AwardCompletionBonus(t.acc.VideoID)
	if err != nil {
		slog.Error(
			"failed to persist completion bonus",
			slog.Any("error", err),
		)

		return
	}

	t.notifier.Notify(
		"Video complete",
		fmt.Sprintf("+%d coins for finishing the video!", t.opts.CompletionBonus),
	)
}

// finalize commits the accumulated totals to the ledger, runs the
// configured session command, and resets the tracker to idle. It always
// returns to idle even when persistence fails. The ledger write happens
// under t.mu: Snapshot reads the ledger through the same lock, so it
// never observes a half-finalized session.
func (t *Tracker) finalize() (*models.WatchSession, error) {
	t.mu.Lock()

	t.state = StateFinalizing

	tag := t.tag
	if tag == "" {
		tag = t.opts.Tag
	}

	var (
		sess *models.WatchSession
		err  error
	)

	if t.acc != nil {
		sess, err = t.ledger.FinalizeSession(t.acc, t.notes, tag, time.Now())
	}

	src := t.src

	t.acc = nil
	t.focus = nil
	t.src = nil
	t.sampler = nil
	t.isPlaying = false
	t.currentTime = 0
	t.notes = ""
	t.tag = ""
	t.state = StateIdle
	t.mu.Unlock()

	if src != nil {
		src.Destroy()
	}

	if sess != nil {
		t.notifier.Notify(
			"Session saved",
			fmt.Sprintf(
				"Watched %s with %d tab switches",
				timeutil.FormatSeconds(sess.Seconds),
				sess.TabSwitches,
			),
		)

		cmdErr := t.runSessionCmd(t.opts.SessionCmd)
		if cmdErr != nil {
			slog.Error(
				"session command failed",
				slog.Any("error", cmdErr),
			)
		}
	}

	return sess, err
}

// runSessionCmd executes the specified command after a session is saved.
func (t *Tracker) runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}
