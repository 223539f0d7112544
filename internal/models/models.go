// Package models defines the persisted data model for studytrack.
package models

import (
	"time"

	"github.com/ayoisaiah/studytrack/internal/timeutil"
)

// DefaultCoins is the balance granted to a fresh state.
const DefaultCoins = 50

// WatchSession is a single finalized watch session. It is immutable once
// appended to the history.
type WatchSession struct {
	WatchedAt   time.Time `json:"watched_at"`
	VideoID     string    `json:"video_id"`
	URL         string    `json:"url"`
	Notes       string    `json:"notes"`
	Tag         string    `json:"tag"`
	Seconds     int       `json:"seconds"`
	TabSwitches int       `json:"tab_switches"`
}

// VideoStats aggregates all finalized sessions for a single video.
type VideoStats struct {
	TotalSeconds int `json:"total_seconds"`
	TotalViews   int `json:"total_views"`
}

// Reminder is a daily reminder at a fixed time of day.
type Reminder struct {
	Title     string `json:"title"`
	TimeOfDay string `json:"time_of_day"` // HH:MM, local time
}

// AssignmentKind distinguishes coursework from hackathon entries.
type AssignmentKind string

const (
	KindAssignment AssignmentKind = "assignment"
	KindHackathon  AssignmentKind = "hackathon"
)

// Assignment is a tracked deadline: a piece of coursework or a
// hackathon. Platform and Link are only meaningful for hackathons.
type Assignment struct {
	Title    string         `json:"title"`
	Kind     AssignmentKind `json:"kind"`
	Platform string         `json:"platform,omitempty"`
	Link     string         `json:"link,omitempty"`
	Deadline time.Time      `json:"deadline"`
	Done     bool           `json:"done"`
}

// AppState is the single persisted aggregate. The ledger is its sole
// mutator; every mutation is followed by a full-state save.
type AppState struct {
	Stats          map[string]VideoStats `json:"stats"`
	Notes          map[string]string     `json:"notes"`
	History        []WatchSession        `json:"history"`
	Reminders      []Reminder            `json:"reminders"`
	Assignments    []Assignment          `json:"assignments"`
	Coins          int                   `json:"coins"`
	Streak         int                   `json:"streak"`
	LastDayWatched timeutil.Day          `json:"last_day_watched"`
}

// NewAppState returns the default state for a fresh install or an
// unreadable blob.
func NewAppState() *AppState {
	return &AppState{
		History:     []WatchSession{},
		Stats:       make(map[string]VideoStats),
		Notes:       make(map[string]string),
		Reminders:   []Reminder{},
		Assignments: []Assignment{},
		Coins:       DefaultCoins,
	}
}

// Normalise repairs a state loaded from storage so that all invariants
// hold regardless of what the blob contained. Each field degrades to its
// default independently.
func (s *AppState) Normalise() {
	if s.History == nil {
		s.History = []WatchSession{}
	}

	if s.Stats == nil {
		s.Stats = make(map[string]VideoStats)
	}

	if s.Notes == nil {
		s.Notes = make(map[string]string)
	}

	if s.Reminders == nil {
		s.Reminders = []Reminder{}
	}

	if s.Assignments == nil {
		s.Assignments = []Assignment{}
	}

	// blobs from before deadline tracking have no kind on record
	for i := range s.Assignments {
		if s.Assignments[i].Kind == "" {
			s.Assignments[i].Kind = KindAssignment
		}
	}

	if s.Coins < 0 {
		s.Coins = 0
	}

	if s.Streak < 0 {
		s.Streak = 0
	}
}
