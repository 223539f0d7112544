package config

import (
	"errors"
	"fmt"
)

var (
	errInitFailed = errors.New(
		"unable to initialise studytrack settings from the configuration file",
	)

	errInvalidFocusDuration = fmt.Errorf(
		"focus duration must be between %d and %d minutes",
		MinFocusMinutes,
		MaxFocusMinutes,
	)

	errInvalidPenaltyPolicy = errors.New(
		"penalty_policy must be one of: quota, strict",
	)

	errInvalidRewardPolicy = errors.New(
		"reward_policy must be one of: streak, completion",
	)

	errInvalidInterval = errors.New(
		"poll_interval_ms and max_plausible_delta_secs must be greater than zero",
	)
)
