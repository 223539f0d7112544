package app

import "errors"

var (
	errNoVideo = errors.New(
		"please provide a YouTube video URL or ID",
	)

	errReminderArgs = errors.New(
		"please provide a time of day (HH:MM) and a title",
	)

	errReminderNumber = errors.New(
		"please provide the number of the reminder to remove",
	)

	errFocusMinutes = errors.New(
		"enter a number of minutes between 1 and 180, or 0",
	)

	errAssignmentTitle = errors.New(
		"please provide a title for the assignment",
	)

	errAssignmentNumber = errors.New(
		"please provide the number of the assignment",
	)
)
