package stats

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/models"
)

type dbMock struct {
	state *models.AppState
}

func (d *dbMock) GetState() (*models.AppState, error) {
	return d.state, nil
}

func (d *dbMock) SaveState(state *models.AppState) error {
	d.state = state
	return nil
}

func (d *dbMock) Close() error { return nil }

func (d *dbMock) Open() error { return nil }

func TestMain(m *testing.M) {
	pterm.DisableOutput()

	code := m.Run()

	pterm.EnableOutput()

	os.Exit(code)
}

func day(yr int, mo time.Month, d, hr int) time.Time {
	return time.Date(yr, mo, d, hr, 0, 0, 0, time.Local)
}

func testState() *models.AppState {
	state := models.NewAppState()

	state.History = []models.WatchSession{
		{
			WatchedAt:   day(2024, time.March, 11, 9),
			VideoID:     "dQw4w9WgXcQ",
			Seconds:     600,
			TabSwitches: 2,
			Tag:         "math",
		},
		{
			WatchedAt:   day(2024, time.March, 12, 14),
			VideoID:     "abcdefghijk",
			Seconds:     300,
			TabSwitches: 0,
			Tag:         "physics",
		},
		{
			WatchedAt:   day(2024, time.March, 14, 20),
			VideoID:     "dQw4w9WgXcQ",
			Seconds:     900,
			TabSwitches: 1,
			Tag:         "math",
		},
	}

	state.Stats = map[string]models.VideoStats{
		"dQw4w9WgXcQ": {TotalSeconds: 1500, TotalViews: 3},
		"abcdefghijk": {TotalSeconds: 300, TotalViews: 0},
	}

	state.Coins = 72
	state.Streak = 3

	return state
}

func testFilter(start, end time.Time) *config.FilterConfig {
	return &config.FilterConfig{
		StartTime: start,
		EndTime:   end,
		Stdout:    &bytes.Buffer{},
	}
}

func TestFilterSessions(t *testing.T) {
	state := testState()

	Init(&dbMock{state: state}, testFilter(
		day(2024, time.March, 12, 0),
		day(2024, time.March, 15, 0),
	))

	got := filterSessions(state)

	if len(got) != 2 {
		t.Fatalf("expected 2 sessions in range, got %d", len(got))
	}

	opts.Tag = "math"

	got = filterSessions(state)

	if len(got) != 1 || got[0].VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected only the tagged session, got %v", got)
	}
}

func TestComputeTotals(t *testing.T) {
	state := testState()

	Init(&dbMock{state: state}, testFilter(
		day(2024, time.March, 11, 0),
		day(2024, time.March, 15, 0),
	))

	totals := computeTotals(filterSessions(state))

	if got := int(totals.totalTime.Seconds()); got != 1800 {
		t.Errorf("total time: got %d seconds, want 1800", got)
	}

	if totals.sessions != 3 {
		t.Errorf("sessions: got %d, want 3", totals.sessions)
	}

	if totals.tabSwitches != 3 {
		t.Errorf("tab switches: got %d, want 3", totals.tabSwitches)
	}

	if len(totals.videos) != 2 {
		t.Errorf("videos: got %d, want 2", len(totals.videos))
	}
}

func TestComputeAggregatesIncludesEmptyDays(t *testing.T) {
	state := testState()

	Init(&dbMock{state: state}, testFilter(
		day(2024, time.March, 11, 0),
		day(2024, time.March, 15, 0),
	))

	aggr := computeAggregates(filterSessions(state))

	// 4 calendar days in range, including the empty March 13
	if len(aggr.daily) != 4 {
		t.Fatalf("expected 4 daily buckets, got %d", len(aggr.daily))
	}

	if got := aggr.daily["2024-03-13"]; got != 0 {
		t.Errorf("March 13 should be empty, got %v", got)
	}

	if got := aggr.daily["2024-03-11"]; got != 10*time.Minute {
		t.Errorf("March 11: got %v, want 10m", got)
	}

	monday := int(time.Monday)
	if got := aggr.weekday[monday]; got != 10*time.Minute {
		t.Errorf("Monday total: got %v, want 10m", got)
	}
}

func TestShowJSON(t *testing.T) {
	var buf bytes.Buffer

	state := testState()

	cfg := testFilter(
		day(2024, time.March, 11, 0),
		day(2024, time.March, 15, 0),
	)
	cfg.JSON = true
	cfg.Stdout = &buf

	Init(&dbMock{state: state}, cfg)

	if err := Show(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var report jsonReport

	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if report.TotalSeconds != 1800 {
		t.Errorf("total seconds: got %d, want 1800", report.TotalSeconds)
	}

	if report.Coins != 72 || report.Streak != 3 {
		t.Errorf(
			"coins/streak: got %d/%d, want 72/3",
			report.Coins,
			report.Streak,
		)
	}

	if len(report.Videos) != 2 {
		t.Errorf("videos: got %d, want 2", len(report.Videos))
	}

	if report.Videos["dQw4w9WgXcQ"].TotalViews != 3 {
		t.Errorf(
			"video views: got %d, want 3",
			report.Videos["dQw4w9WgXcQ"].TotalViews,
		)
	}
}

func TestListPrintsHistory(t *testing.T) {
	var buf bytes.Buffer

	state := testState()

	cfg := testFilter(
		day(2024, time.March, 11, 0),
		day(2024, time.March, 15, 0),
	)
	cfg.Stdout = &buf

	Init(&dbMock{state: state}, cfg)

	if err := List(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()

	if !bytes.Contains(buf.Bytes(), []byte("dQw4w9WgXcQ")) {
		t.Errorf("expected video id in output, got:\n%s", out)
	}
}
