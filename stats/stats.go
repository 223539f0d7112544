// Package stats reports watch history statistics
package stats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/timeutil"
	"github.com/ayoisaiah/studytrack/internal/ui"
	"github.com/ayoisaiah/studytrack/store"
)

var (
	opts *config.FilterConfig
	db   store.DB
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No watch sessions found for the specified time range"

	// recentSessions caps the history table appended to the report.
	recentSessions = 5
)

type summary struct {
	videos        map[string]time.Duration
	totalTime     time.Duration
	sessions      int
	tabSwitches   int
	avgTime       time.Duration
	avgTabSwitch  int
	reportingDays int
}

type aggregates struct {
	daily   map[string]time.Duration
	weekday map[int]time.Duration
}

// filterSessions returns the sessions that fall inside the reporting
// period and match the tag filter.
func filterSessions(state *models.AppState) []models.WatchSession {
	filtered := make([]models.WatchSession, 0, len(state.History))

	for i := range state.History {
		sess := state.History[i]

		if sess.WatchedAt.Before(opts.StartTime) {
			continue
		}

		if sess.WatchedAt.After(opts.EndTime) {
			continue
		}

		if opts.Tag != "" && sess.Tag != opts.Tag {
			continue
		}

		filtered = append(filtered, sess)
	}

	return filtered
}

// computeTotals calculates the total watch time, session count, and tab
// switches for the current time period.
func computeTotals(sessions []models.WatchSession) summary {
	var totals summary

	totals.videos = make(map[string]time.Duration)

	for i := range sessions {
		sess := sessions[i]

		duration := time.Duration(sess.Seconds) * time.Second

		totals.totalTime += duration
		totals.tabSwitches += sess.TabSwitches
		totals.videos[sess.VideoID] += duration
	}

	totals.sessions = len(sessions)

	hoursDiff := timeutil.Round(opts.EndTime.Sub(opts.StartTime).Hours())

	numberOfDays := hoursDiff / timeutil.HoursInADay
	if numberOfDays < 1 {
		numberOfDays = 1
	}

	totals.reportingDays = numberOfDays

	totals.avgTime = time.Duration(
		float64(totals.totalTime) / float64(numberOfDays),
	)
	totals.avgTabSwitch = timeutil.Round(
		float64(totals.tabSwitches) / float64(numberOfDays),
	)

	return totals
}

// computeAggregates groups watch time by calendar day and by weekday.
// Each day in the reporting period is present even when empty so the
// charts keep a stable shape.
func computeAggregates(sessions []models.WatchSession) aggregates {
	var totals aggregates

	totals.daily = make(map[string]time.Duration)
	totals.weekday = make(map[int]time.Duration)

	start := timeutil.RoundToStart(opts.StartTime)
	for date := start; date.Before(opts.EndTime); date = date.AddDate(0, 0, 1) {
		totals.daily[timeutil.DayOf(date).String()] = time.Duration(0)
	}

	for i := 0; i < 7; i++ {
		totals.weekday[i] = time.Duration(0)
	}

	for i := range sessions {
		sess := sessions[i]

		duration := time.Duration(sess.Seconds) * time.Second

		totals.daily[timeutil.DayOf(sess.WatchedAt).String()] += duration
		totals.weekday[int(sess.WatchedAt.Weekday())] += duration
	}

	return totals
}

func getDailyBarChart(data map[string]time.Duration) string {
	if len(data) == 0 {
		return ""
	}

	header := ui.Blue("\nDaily breakdown (minutes)")

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var bars pterm.Bars

	for _, k := range keys {
		day, err := timeutil.ParseDay(k)
		if err != nil {
			continue
		}

		bars = append(bars, pterm.Bar{
			Value: timeutil.Round(data[k].Minutes()),
			Label: day.Format("Jan 02, 2006"),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

func getWeekdayBarChart(data map[int]time.Duration) string {
	if len(data) == 0 {
		return ""
	}

	header := ui.Blue("\nWeekday breakdown (minutes)")

	var bars pterm.Bars

	for i := 0; i < 7; i++ {
		bars = append(bars, pterm.Bar{
			Value: timeutil.Round(data[i].Minutes()),
			Label: time.Weekday(i).String(),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

func getAverages(totals summary) string {
	header := fmt.Sprintf("\n%s\n", ui.Blue("Averages"))

	duration := durafmt.Parse(totals.avgTime)

	timeWatched := fmt.Sprintf(
		"Time watched: %s\n",
		//nolint:gomnd // limit to first 2 units
		ui.Green(duration.LimitToUnit("hours").LimitFirstN(2)),
	)

	tabSwitches := fmt.Sprintln(
		"Tab switches:",
		ui.Green(totals.avgTabSwitch),
	)

	return header + timeWatched + tabSwitches
}

// getSummary retrieves the watch summary for the current time period.
func getSummary(totals summary, state *models.AppState) string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	duration := durafmt.Parse(totals.totalTime)

	timeWatched := fmt.Sprintf(
		"Time watched: %s\n",
		//nolint:gomnd // limit to first 2 units
		ui.Green(duration.LimitToUnit("hours").LimitFirstN(2)),
	)

	sessions := fmt.Sprintln("Watch sessions:", ui.Green(totals.sessions))

	videos := fmt.Sprintln("Videos watched:", ui.Green(len(totals.videos)))

	tabSwitches := fmt.Sprintln(
		"Tab switches:",
		ui.Green(totals.tabSwitches),
	)

	coins := fmt.Sprintln("Coin balance:", ui.Yellow(state.Coins))

	streak := fmt.Sprintln("Current streak:", ui.Yellow(state.Streak))

	return header + timeWatched + sessions + videos + tabSwitches +
		coins + streak
}

// Video is the per-video entry in the JSON report. It merges all-time
// totals with the watch time observed in the reporting period.
type Video struct {
	Notes         string `json:"notes,omitempty"`
	TotalSeconds  int    `json:"total_seconds"`
	TotalViews    int    `json:"total_views"`
	PeriodSeconds int    `json:"period_seconds"`
}

type jsonReport struct {
	StartTime    time.Time             `json:"start_time"`
	EndTime      time.Time             `json:"end_time"`
	Daily        map[string]float64    `json:"daily_minutes"`
	Videos       map[string]Video      `json:"videos"`
	History      []models.WatchSession `json:"history"`
	TotalSeconds int                   `json:"total_seconds"`
	Sessions     int                   `json:"sessions"`
	TabSwitches  int                   `json:"tab_switches"`
	Coins        int                   `json:"coins"`
	Streak       int                   `json:"streak"`
}

func showJSON(
	state *models.AppState,
	sessions []models.WatchSession,
	totals summary,
	aggr aggregates,
) error {
	report := jsonReport{
		StartTime:    opts.StartTime,
		EndTime:      opts.EndTime,
		Daily:        make(map[string]float64),
		Videos:       videoSummaries(state, totals),
		TotalSeconds: int(totals.totalTime.Seconds()),
		Sessions:     totals.sessions,
		TabSwitches:  totals.tabSwitches,
		Coins:        state.Coins,
		Streak:       state.Streak,
		History:      sessions,
	}

	for k, v := range aggr.daily {
		report.Daily[k] = v.Minutes()
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(opts.Stdout, string(b))

	return nil
}

// videoSummaries merges all-time per-video stats with the watch time
// observed in the current reporting period.
func videoSummaries(
	state *models.AppState,
	totals summary,
) map[string]Video {
	videos := make(map[string]Video)

	for id, vs := range state.Stats {
		if _, ok := totals.videos[id]; !ok && opts.Tag != "" {
			continue
		}

		videos[id] = Video{
			TotalSeconds:  vs.TotalSeconds,
			TotalViews:    vs.TotalViews,
			PeriodSeconds: int(totals.videos[id].Seconds()),
			Notes:         state.Notes[id],
		}
	}

	return videos
}

// Show displays the relevant statistics for the set time period after
// making the necessary calculations.
func Show() error {
	defer db.Close()

	state, err := db.GetState()
	if err != nil {
		return err
	}

	// for all-time, set start time to the date of the first session
	if opts.StartTime.IsZero() && len(state.History) > 0 {
		opts.StartTime = timeutil.RoundToStart(state.History[0].WatchedAt)
	}

	if opts.StartTime.IsZero() {
		opts.StartTime = timeutil.RoundToStart(time.Now())
	}

	sessions := filterSessions(state)

	totals := computeTotals(sessions)
	aggr := computeAggregates(sessions)

	if opts.JSON {
		return showJSON(state, sessions, totals, aggr)
	}

	reportingStart := opts.StartTime.Format("January 02, 2006")
	reportingEnd := opts.EndTime.Format("January 02, 2006")
	timePeriod := "Reporting period: " + reportingStart + " - " + reportingEnd

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", timePeriod)

	output := fmt.Sprint(
		header,
		getSummary(totals, state),
		getAverages(totals),
		getDailyBarChart(aggr.daily),
		getWeekdayBarChart(aggr.weekday),
	)

	fmt.Fprintln(
		opts.Stdout,
		strings.TrimSpace(output),
	)

	recent := sessions
	if len(recent) > recentSessions {
		recent = recent[len(recent)-recentSessions:]
	}

	if len(recent) > 0 {
		fmt.Fprintln(opts.Stdout, ui.Blue("\nRecent sessions"))
		printHistoryTable(opts.Stdout, recent)
	}

	return nil
}

func Init(dbClient store.DB, cfg *config.FilterConfig) {
	db = dbClient
	opts = cfg
}
