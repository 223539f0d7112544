package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/timeutil"
	"github.com/ayoisaiah/studytrack/internal/ui"
	"github.com/ayoisaiah/studytrack/ledger"
	"github.com/ayoisaiah/studytrack/player"
	"github.com/ayoisaiah/studytrack/reminder"
	"github.com/ayoisaiah/studytrack/stats"
	"github.com/ayoisaiah/studytrack/store"
	"github.com/ayoisaiah/studytrack/tracker"
)

const (
	envUpdateNotifier = "STUDYTRACK_UPDATE_NOTIFIER"
	envNoColor        = "NO_COLOR"
	envAppNoColor     = "STUDYTRACK_NO_COLOR"
	envDebug          = "STUDYTRACK_DEBUG"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// checkForUpdates alerts the user if there is
// an updated version of studytrack from the one currently installed.
func checkForUpdates(app *cli.App) {
	spinner, _ := pterm.DefaultSpinner.Start("Checking for updates...")
	c := http.Client{Timeout: 10 * time.Second}

	resp, err := c.Get(
		"https://github.com/ayoisaiah/studytrack/releases/latest",
	)
	if err != nil {
		pterm.Error.Println("HTTP Error: Failed to check for update")
		return
	}

	defer resp.Body.Close()

	var version string

	_, err = fmt.Sscanf(
		resp.Request.URL.String(),
		"https://github.com/ayoisaiah/studytrack/releases/tag/%s",
		&version,
	)
	if err != nil {
		pterm.Error.Println("Failed to get latest version")
		return
	}

	if version == app.Version {
		text := pterm.Sprintf(
			"Congratulations, you are using the latest version of %s",
			app.Name,
		)
		spinner.Success(text)
	} else {
		pterm.Warning.Prefix = pterm.Prefix{
			Text:  "UPDATE AVAILABLE",
			Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
		}
		pterm.Warning.Printfln(
			"A new release of studytrack is available: %s at %s",
			version,
			resp.Request.URL.String(),
		)
	}
}

// initLogging routes the default slog logger to a rotating log file.
func initLogging() {
	level := slog.LevelInfo
	if _, found := os.LookupEnv(envDebug); found {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   config.LogFilePath(),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}, &slog.HandlerOptions{Level: level}))

	slog.SetDefault(logger)
}

// ledgerHelper connects to the store and loads the incentive state.
func ledgerHelper(ctx *cli.Context) (*ledger.Ledger, store.DB, error) {
	cfg := config.Tracker(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return nil, nil, err
	}

	db.SetInitialCoins(cfg.InitialCoins)

	ldg, err := ledger.New(db, cfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return ldg, db, nil
}

// confirmFocus asks the user for the focus window length in minutes,
// returning zero for no window. The --focus flag skips the prompt.
func confirmFocus(ctx *cli.Context, cfg *config.TrackerConfig) int {
	if cfg.NoFocus {
		return 0
	}

	if ctx.Uint("focus") > 0 {
		return cfg.FocusMinutes
	}

	minutes := strconv.Itoa(cfg.FocusMinutes)

	err := huh.NewInput().
		Title("Focus window length in minutes (0 to watch without one)").
		Description("Tab switches cost coins while the window is active.").
		Validate(func(s string) error {
			n, convErr := strconv.Atoi(strings.TrimSpace(s))
			if convErr != nil {
				return errFocusMinutes
			}

			if n != 0 &&
				(n < config.MinFocusMinutes || n > config.MaxFocusMinutes) {
				return errFocusMinutes
			}

			return nil
		}).
		Value(&minutes).
		Run()
	if err != nil {
		return cfg.FocusMinutes
	}

	n, err := strconv.Atoi(strings.TrimSpace(minutes))
	if err != nil {
		return cfg.FocusMinutes
	}

	return n
}

// defaultAction starts a watch session for the video given as the first
// argument.
func defaultAction(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return cli.ShowAppHelp(ctx)
	}

	cfg := config.Tracker(ctx)

	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	notifier := &tracker.DesktopNotifier{Enabled: cfg.Notify}

	t := tracker.New(cfg, ldg, notifier)

	err = t.Load(ctx.Args().First())
	if err != nil {
		return err
	}

	err = t.ConfirmFocus(confirmFocus(ctx, cfg))
	if err != nil {
		return err
	}

	src := player.NewSimulated(ctx.Float64("duration"))

	t.Attach(src)

	schedCtx, cancel := context.WithCancel(ctx.Context)
	defer cancel()

	sched := reminder.New(ldg.State().Reminders, notifier)

	go sched.Run(schedCtx)

	sess, err := tracker.RunUI(ctx.Context, t, src, src)
	if err != nil {
		return err
	}

	if sess == nil {
		pterm.Info.Println("Nothing to save: no watch time was recorded")
		return nil
	}

	pterm.Success.Printfln(
		"Session saved: %s watched with %d tab switches. Balance: %s coins",
		sess.VideoID,
		sess.TabSwitches,
		ui.Yellow(ldg.Coins()),
	)

	for _, b := range ldg.Badges() {
		pterm.Printfln("🏅 %s: %s", ui.Green(b.Name), b.Description)
	}

	return nil
}

// statsHelper connects to the store for the read-only reporting commands.
func statsHelper(ctx *cli.Context) error {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	stats.Init(db, config.Filter(ctx))

	return nil
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context) error {
	if err := statsHelper(ctx); err != nil {
		return err
	}

	return stats.Show()
}

// historyAction prints a table of the watch sessions recorded within a
// time period.
func historyAction(ctx *cli.Context) error {
	if err := statsHelper(ctx); err != nil {
		return err
	}

	return stats.List()
}

// videosAction prints the all-time per-video summary.
func videosAction(ctx *cli.Context) error {
	if err := statsHelper(ctx); err != nil {
		return err
	}

	return stats.Videos()
}

// notesAction shows or updates the notes attached to a video.
func notesAction(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	if len(args) == 0 {
		return errNoVideo
	}

	videoID, err := player.ParseVideoID(args[0])
	if err != nil {
		return err
	}

	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	if len(args) == 1 {
		notes := ldg.State().Notes[videoID]
		if notes == "" {
			pterm.Info.Printfln("No notes for %s", videoID)
			return nil
		}

		pterm.Printfln("%s\n%s", ui.Highlight(videoID), notes)

		return nil
	}

	err = ldg.SaveNotes(videoID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Notes saved for %s", videoID)

	return nil
}

// remindAddAction registers a daily reminder.
func remindAddAction(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	//nolint:gomnd // a time and a title
	if len(args) < 2 {
		return errReminderArgs
	}

	timeOfDay := args[0]

	err := reminder.ValidateTimeOfDay(timeOfDay)
	if err != nil {
		return err
	}

	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	r := models.Reminder{
		Title:     strings.Join(args[1:], " "),
		TimeOfDay: timeOfDay,
	}

	err = ldg.AddReminder(r)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Reminder set for %s every day", timeOfDay)

	return nil
}

// remindRemoveAction deletes a reminder by its 1-based position.
func remindRemoveAction(ctx *cli.Context) error {
	num, err := strconv.Atoi(ctx.Args().First())
	if err != nil {
		return errReminderNumber
	}

	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	err = ldg.RemoveReminder(num - 1)
	if err != nil {
		return err
	}

	pterm.Success.Println("Reminder removed")

	return nil
}

// remindListAction prints a table of all reminders.
func remindListAction(ctx *cli.Context) error {
	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	reminders := ldg.State().Reminders
	if len(reminders) == 0 {
		pterm.Info.Println("No reminders set")
		return nil
	}

	data := [][]string{{"#", "TIME", "TITLE"}}

	for i, r := range reminders {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			r.TimeOfDay,
			r.Title,
		})
	}

	ui.PrintTable(data, config.Stdout)

	return nil
}

// assignAddAction registers an assignment or hackathon deadline.
func assignAddAction(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	if len(args) == 0 {
		return errAssignmentTitle
	}

	due := ctx.String("due")

	d, err := dateparser.Parse(nil, due)
	if err != nil {
		return fmt.Errorf("unable to parse deadline %q: %w", due, err)
	}

	a := models.Assignment{
		Title:    strings.Join(args, " "),
		Kind:     models.KindAssignment,
		Deadline: d.Time,
	}

	if ctx.Bool("hackathon") {
		a.Kind = models.KindHackathon
		a.Platform = ctx.String("platform")
		a.Link = ctx.String("link")
	}

	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	err = ldg.AddAssignment(a)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"%s %q is %s",
		a.Kind,
		a.Title,
		timeutil.FormatDue(time.Until(a.Deadline)),
	)

	return nil
}

// assignDoneAction toggles an assignment between pending and completed
// by its 1-based position.
func assignDoneAction(ctx *cli.Context) error {
	num, err := strconv.Atoi(ctx.Args().First())
	if err != nil {
		return errAssignmentNumber
	}

	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	a, err := ldg.ToggleAssignment(num - 1)
	if err != nil {
		return err
	}

	if a.Done {
		pterm.Success.Printfln("Marked %q as completed", a.Title)
	} else {
		pterm.Info.Printfln("Marked %q as pending", a.Title)
	}

	return nil
}

// assignRemoveAction deletes an assignment by its 1-based position.
func assignRemoveAction(ctx *cli.Context) error {
	num, err := strconv.Atoi(ctx.Args().First())
	if err != nil {
		return errAssignmentNumber
	}

	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	err = ldg.RemoveAssignment(num - 1)
	if err != nil {
		return err
	}

	pterm.Success.Println("Assignment removed")

	return nil
}

// assignListAction prints a table of tracked deadlines with a countdown
// for each pending entry, followed by the completed and pending counts
// per kind.
func assignListAction(ctx *cli.Context) error {
	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	assignments := ldg.State().Assignments
	if len(assignments) == 0 {
		pterm.Info.Println("No assignments tracked")
		return nil
	}

	data := [][]string{{"#", "TITLE", "KIND", "PLATFORM", "DEADLINE", "STATUS"}}

	now := time.Now()

	for i, a := range assignments {
		if ctx.Bool("pending") && a.Done {
			continue
		}

		if ctx.Bool("completed") && !a.Done {
			continue
		}

		status := ui.Green("completed")

		if !a.Done {
			countdown := timeutil.FormatDue(a.Deadline.Sub(now))
			if now.After(a.Deadline) {
				status = ui.Red(countdown)
			} else {
				status = ui.Yellow(countdown)
			}
		}

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			a.Title,
			string(a.Kind),
			a.Platform,
			a.Deadline.Format("Jan 2, 2006 15:04"),
			status,
		})
	}

	ui.PrintTable(data, config.Stdout)

	for _, kind := range []models.AssignmentKind{
		models.KindAssignment,
		models.KindHackathon,
	} {
		var completed, pending int

		for _, a := range assignments {
			if a.Kind != kind {
				continue
			}

			if a.Done {
				completed++
			} else {
				pending++
			}
		}

		if completed+pending == 0 {
			continue
		}

		pterm.Printfln(
			"%ss: %s completed, %s pending",
			kind,
			ui.Green(completed),
			ui.Yellow(pending),
		)
	}

	return nil
}

// premiumAction adds the premium coin pack to the balance.
func premiumAction(ctx *cli.Context) error {
	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	err = ldg.PurchasePremium()
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Premium pack added. Balance: %s coins",
		ui.Yellow(ldg.Coins()),
	)

	return nil
}

// resetAction erases all progress after confirmation.
func resetAction(ctx *cli.Context) error {
	confirmed := false

	err := huh.NewConfirm().
		Title("Erase all history, stats, notes, and reminders?").
		Affirmative("Yes, start over").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if err != nil {
		return err
	}

	if !confirmed {
		return nil
	}

	ldg, db, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	err = ldg.Reset()
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Progress erased. Balance restored to %s coins",
		ui.Yellow(ldg.Coins()),
	)

	return nil
}

// editConfigAction handles the edit-config command which opens the
// studytrack config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/studytrack/releases/%s\n",
			c.App.Version,
		)

		if _, found := os.LookupEnv(envUpdateNotifier); found {
			checkForUpdates(c.App)
		}
	}

	initLogging()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if STUDYTRACK_NO_COLOR is set
	if _, exists := os.LookupEnv(envAppNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}
