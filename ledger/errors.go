package ledger

import "errors"

var (
	errNoSuchReminder = errors.New(
		"reminder not found: run 'studytrack remind list' to list reminders",
	)

	errNoSuchAssignment = errors.New(
		"assignment not found: run 'studytrack assign list' to list assignments",
	)
)
