package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/timeutil"
	"github.com/ayoisaiah/studytrack/internal/ui"
)

func printHistoryTable(w io.Writer, sessions []models.WatchSession) {
	data := [][]string{
		{"#", "WATCHED AT", "VIDEO", "TAG", "DURATION", "TAB SWITCHES"},
	}

	for i := range sessions {
		sess := sessions[i]

		switches := fmt.Sprintf("%d", sess.TabSwitches)
		if sess.TabSwitches > 0 {
			switches = ui.Red(switches)
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			sess.WatchedAt.Format("January 02, 2006 03:04 PM"),
			sess.VideoID,
			sess.Tag,
			timeutil.FormatSeconds(sess.Seconds),
			switches,
		}

		data = append(data, row)
	}

	ui.PrintTable(data, w)
}

func printVideosTable(w io.Writer, videos map[string]Video) {
	data := [][]string{
		{"VIDEO", "TOTAL TIME", "VIEWS", "NOTES"},
	}

	ids := make([]string, 0, len(videos))
	for id := range videos {
		ids = append(ids, id)
	}

	sort.Sort(natural.StringSlice(ids))

	for _, id := range ids {
		v := videos[id]

		notes := v.Notes
		//nolint:gomnd // trim long notes for the table
		if len(notes) > 40 {
			notes = notes[:37] + "..."
		}

		row := []string{
			id,
			timeutil.FormatSeconds(v.TotalSeconds),
			fmt.Sprintf("%d", v.TotalViews),
			notes,
		}

		data = append(data, row)
	}

	ui.PrintTable(data, w)
}

// List prints out a table of the watch sessions that were recorded
// within the specified time range.
func List() error {
	defer db.Close()

	state, err := db.GetState()
	if err != nil {
		return err
	}

	sessions := filterSessions(state)

	if opts.JSON {
		b, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(opts.Stdout, string(b))

		return nil
	}

	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printHistoryTable(opts.Stdout, sessions)

	return nil
}

// Videos prints out the all-time per-video summary.
func Videos() error {
	defer db.Close()

	state, err := db.GetState()
	if err != nil {
		return err
	}

	totals := computeTotals(filterSessions(state))

	videos := videoSummaries(state, totals)

	if opts.JSON {
		b, err := json.MarshalIndent(videos, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(opts.Stdout, string(b))

		return nil
	}

	if len(videos) == 0 {
		pterm.Info.Println("No videos watched yet")
		return nil
	}

	printVideosTable(opts.Stdout, videos)

	return nil
}
