package app

import "github.com/urfave/cli/v2"

var (
	focusFlag = &cli.UintFlag{
		Name:    "focus",
		Aliases: []string{"f"},
		Usage:   "Focus window duration in minutes (default: 25)",
	}

	noFocusFlag = &cli.BoolFlag{
		Name:  "no-focus",
		Usage: "Watch without a focus window. Tab switches are counted but never charged",
	}

	policyFlag = &cli.StringFlag{
		Name:    "policy",
		Aliases: []string{"p"},
		Usage:   "Tab switch penalty policy: 'strict' charges every switch, 'quota' grants a number of free switches first",
	}

	tagFlag = &cli.StringFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Add a tag to the watch session",
	}

	durationFlag = &cli.Float64Flag{
		Name:  "duration",
		Usage: "Video duration in seconds for the built-in playback source",
		Value: 600,
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is saved",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	periodFlag = &cli.StringFlag{
		Name:  "period",
		Usage: "Specify a reporting period: today, yesterday, 5days, 7days, 14days, 30days, 90days, 365days, or all-time",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Specify a start date for the reporting period (e.g. '3 days ago')",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Specify an end date for the reporting period. Defaults to now",
	}

	filterTagFlag = &cli.StringFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Only include sessions with this tag",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Output the report as JSON",
	}

	dueFlag = &cli.StringFlag{
		Name:     "due",
		Usage:    "The deadline (e.g. '2026-09-15 18:00' or 'next friday')",
		Required: true,
	}

	hackathonFlag = &cli.BoolFlag{
		Name:  "hackathon",
		Usage: "Track a hackathon instead of an assignment",
	}

	platformFlag = &cli.StringFlag{
		Name:  "platform",
		Usage: "The platform hosting the hackathon (e.g. Devpost)",
	}

	linkFlag = &cli.StringFlag{
		Name:  "link",
		Usage: "A link to the hackathon page",
	}

	pendingFlag = &cli.BoolFlag{
		Name:  "pending",
		Usage: "Only show pending entries",
	}

	completedFlag = &cli.BoolFlag{
		Name:  "completed",
		Usage: "Only show completed entries",
	}
)
