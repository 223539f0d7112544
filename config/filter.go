package config

import (
	"errors"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studytrack/internal/timeutil"
)

var (
	errInvalidDateRange = errors.New(
		"the start time must be earlier than the end time",
	)

	errInvalidPeriod = errors.New(
		"please provide a valid time period",
	)

	errInvalidStartDate = errors.New(
		"please provide a valid start date",
	)
)

// FilterConfig represents a configuration to filter watch history
// by time range and tag.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
	Tag       string
	JSON      bool
	Stdout    io.Writer
}

// getTimeRange returns the start and end time according to the
// specified time period.
func getTimeRange(period timeutil.Period) (start, end time.Time) {
	now := time.Now()

	start = timeutil.RoundToStart(now)

	end = timeutil.RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case timeutil.PeriodToday:
		return
	case timeutil.PeriodYesterday:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
		end = timeutil.RoundToEnd(start)

		return
	case timeutil.PeriodAllTime:
		start = time.Time{}
		return
	default:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
	}

	return
}

// setFilterConfig updates the filter configuration from command-line
// arguments.
func setFilterConfig(ctx *cli.Context) (*FilterConfig, error) {
	filterCfg := &FilterConfig{
		Tag:    strings.TrimSpace(ctx.String("tag")),
		JSON:   ctx.Bool("json"),
		Stdout: Stdout,
	}

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(period)

		return filterCfg, nil
	}

	start := ctx.String("start")
	if start != "" {
		d, err := dateparser.Parse(nil, start)
		if err != nil {
			return nil, err
		}

		filterCfg.StartTime = d.Time
	}

	now := time.Now()

	if now.After(filterCfg.StartTime) {
		filterCfg.EndTime = now
	} else {
		filterCfg.EndTime = timeutil.RoundToEnd(filterCfg.StartTime)
	}

	end := ctx.String("end")
	if end != "" {
		d, err := dateparser.Parse(nil, end)
		if err != nil {
			return nil, err
		}

		filterCfg.EndTime = d.Time
	}

	if filterCfg.StartTime.IsZero() {
		return nil, errInvalidStartDate
	}

	if filterCfg.EndTime.Before(filterCfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}

// Filter initializes and returns a configuration to filter watch history
// from command-line arguments. The default reporting period is 7 days.
func Filter(ctx *cli.Context) *FilterConfig {
	if ctx.String("period") == "" && ctx.String("start") == "" {
		filterCfg := &FilterConfig{
			Tag:    strings.TrimSpace(ctx.String("tag")),
			JSON:   ctx.Bool("json"),
			Stdout: Stdout,
		}
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(
			timeutil.Period7Days,
		)

		return filterCfg
	}

	cfg, err := setFilterConfig(ctx)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	return cfg
}
