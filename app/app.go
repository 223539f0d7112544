// Package app defines the command-line interface for studytrack.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studytrack/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the studytrack app instance.
func Get() *cli.App {
	studytrackApp := &cli.App{
		Name: "studytrack",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Studytrack is a study session tracker for the command-line. It counts
		the time you actually spend watching a video, charges coins for tab
		switches during a focus window, and rewards daily study streaks.`,
		UsageText:            "[COMMAND] [OPTIONS] <video>",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name: "stats",
				Usage: `
				Track your progress with detailed statistics reporting. Defaults to a
				reporting period of 7 days`,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					filterTagFlag,
					jsonFlag,
				},
				Action: statsAction,
			},
			{
				Name:  "history",
				Usage: "Print a table of watch sessions within a time period",
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					filterTagFlag,
					jsonFlag,
				},
				Action: historyAction,
			},
			{
				Name:   "videos",
				Usage:  "Print the all-time watch summary for each video",
				Flags:  []cli.Flag{filterTagFlag, jsonFlag},
				Action: videosAction,
			},
			{
				Name:      "notes",
				Usage:     "Show or update the notes attached to a video",
				UsageText: "notes <video> [text]",
				Action:    notesAction,
			},
			{
				Name:  "remind",
				Usage: "Manage daily study reminders",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a daily reminder",
						UsageText: "remind add <HH:MM> <title>",
						Action:    remindAddAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove a reminder by its position in the list",
						UsageText: "remind remove <number>",
						Action:    remindRemoveAction,
					},
					{
						Name:   "list",
						Usage:  "List all reminders",
						Action: remindListAction,
					},
				},
			},
			{
				Name:  "assign",
				Usage: "Track assignment and hackathon deadlines",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add an assignment or hackathon deadline",
						UsageText: "assign add --due <date> [--hackathon] <title>",
						Flags: []cli.Flag{
							dueFlag,
							hackathonFlag,
							platformFlag,
							linkFlag,
						},
						Action: assignAddAction,
					},
					{
						Name:      "done",
						Usage:     "Toggle an assignment between pending and completed",
						UsageText: "assign done <number>",
						Action:    assignDoneAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove an assignment by its position in the list",
						UsageText: "assign remove <number>",
						Action:    assignRemoveAction,
					},
					{
						Name:   "list",
						Usage:  "List tracked deadlines with a countdown",
						Flags:  []cli.Flag{pendingFlag, completedFlag},
						Action: assignListAction,
					},
				},
			},
			{
				Name:   "premium",
				Usage:  "Add the premium coin pack to your balance",
				Action: premiumAction,
			},
			{
				Name:   "reset",
				Usage:  "Erase all progress and restore the starting balance",
				Action: resetAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			focusFlag,
			noFocusFlag,
			policyFlag,
			tagFlag,
			durationFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return studytrackApp
}
