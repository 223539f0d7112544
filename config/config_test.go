package config

import (
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pterm/pterm"
)

func init() {
	//nolint:dogsled // necessary for testing setup
	_, filename, _, _ := runtime.Caller(0)

	dir := path.Join(path.Dir(filename), "..")

	err := os.Chdir(dir)
	if err != nil {
		log.Fatal(err)
	}
}

func TestMain(m *testing.M) {
	// replace studytrack directory to avoid overriding configuration
	configDir = "studytrack_test"

	InitializePaths()

	pterm.DisableOutput()

	code := m.Run()

	err := os.RemoveAll(filepath.Dir(configFilePath))
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(code)
}

func TestValidateTrackerConfig(t *testing.T) {
	base := func() *TrackerConfig {
		return &TrackerConfig{
			FocusMinutes:      25,
			PenaltyPolicy:     PolicyStrict,
			RewardPolicy:      RewardStreak,
			PollInterval:      800 * time.Millisecond,
			MaxPlausibleDelta: 60 * time.Second,
		}
	}

	cases := []struct {
		name    string
		mutate  func(*TrackerConfig)
		wantErr error
	}{
		{
			name:   "valid defaults",
			mutate: func(*TrackerConfig) {},
		},
		{
			name: "focus duration too short",
			mutate: func(c *TrackerConfig) {
				c.FocusMinutes = 0
			},
			wantErr: errInvalidFocusDuration,
		},
		{
			name: "focus duration too long",
			mutate: func(c *TrackerConfig) {
				c.FocusMinutes = 240
			},
			wantErr: errInvalidFocusDuration,
		},
		{
			name: "unknown penalty policy",
			mutate: func(c *TrackerConfig) {
				c.PenaltyPolicy = "lenient"
			},
			wantErr: errInvalidPenaltyPolicy,
		},
		{
			name: "unknown reward policy",
			mutate: func(c *TrackerConfig) {
				c.RewardPolicy = "badges"
			},
			wantErr: errInvalidRewardPolicy,
		},
		{
			name: "zero poll interval",
			mutate: func(c *TrackerConfig) {
				c.PollInterval = 0
			},
			wantErr: errInvalidInterval,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)

			err := validateTrackerConfig(cfg)
			if err != tc.wantErr {
				t.Errorf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}
