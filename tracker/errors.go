package tracker

import "errors"

var (
	// ErrInsufficientCoins blocks loading a video on an empty balance.
	ErrInsufficientCoins = errors.New(
		"you have 0 coins: purchase premium to continue watching videos",
	)

	errNoPendingVideo = errors.New(
		"no video is pending confirmation",
	)

	errSessionActive = errors.New(
		"a session is already active: stop it before loading another video",
	)
)
