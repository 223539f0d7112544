package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// PenaltyPolicy selects how tab switches are charged while a focus window
// is active.
type PenaltyPolicy string

const (
	// PolicyQuota grants a number of free switches before each further
	// switch costs coins.
	PolicyQuota PenaltyPolicy = "quota"
	// PolicyStrict charges every switch for as long as the focus window
	// is active.
	PolicyStrict PenaltyPolicy = "strict"
)

// RewardPolicy selects how engagement is rewarded on finalize.
type RewardPolicy string

const (
	// RewardStreak awards a daily coin plus a streak bonus for
	// consecutive watch days.
	RewardStreak RewardPolicy = "streak"
	// RewardCompletion awards a flat bonus when a video is watched to
	// the end, in addition to the daily/streak coins.
	RewardCompletion RewardPolicy = "completion"
)

const (
	defaultFocusMinutes    = 25
	defaultInitialCoins    = 50
	defaultTabSwitchCost   = 5
	defaultFreeSwitches    = 5
	defaultQuotaCost       = 10
	defaultDailyBonus      = 1
	defaultStreakBonus     = 5
	defaultCompletionBonus = 50
	defaultPremiumBonus    = 100
)

const (
	// MinFocusMinutes and MaxFocusMinutes bound the focus window duration.
	MinFocusMinutes = 1
	MaxFocusMinutes = 180
)

const (
	configFocusMinutes    = "focus_mins"
	configInitialCoins    = "initial_coins"
	configPenaltyPolicy   = "penalty_policy"
	configTabSwitchCost   = "tab_switch_cost"
	configFreeSwitches    = "free_switches"
	configQuotaCost       = "quota_cost"
	configRewardPolicy    = "reward_policy"
	configDailyBonus      = "daily_bonus"
	configStreakBonus     = "streak_bonus"
	configCompletionBonus = "completion_bonus"
	configPremiumBonus    = "premium_bonus"
	configNotify          = "notify"
	configSessionCmd      = "session_cmd"
	configPollIntervalMS  = "poll_interval_ms"
	configMaxDeltaSecs    = "max_plausible_delta_secs"
)

// TrackerConfig represents the program configuration derived from the
// config file and command-line arguments.
type TrackerConfig struct {
	PathToConfig      string          `json:"path_to_config"`
	PathToDB          string          `json:"path_to_db"`
	SessionCmd        string          `json:"session_cmd"`
	PenaltyPolicy     PenaltyPolicy   `json:"penalty_policy"`
	RewardPolicy      RewardPolicy    `json:"reward_policy"`
	Tag               string          `json:"tag"`
	FocusMinutes      int             `json:"focus_mins"`
	InitialCoins      int             `json:"initial_coins"`
	TabSwitchCost     int             `json:"tab_switch_cost"`
	FreeSwitches      int             `json:"free_switches"`
	QuotaCost         int             `json:"quota_cost"`
	DailyBonus        int             `json:"daily_bonus"`
	StreakBonus       int             `json:"streak_bonus"`
	CompletionBonus   int             `json:"completion_bonus"`
	PremiumBonus      int             `json:"premium_bonus"`
	PollInterval      time.Duration   `json:"poll_interval"`
	MaxPlausibleDelta time.Duration   `json:"max_plausible_delta"`
	Notify            bool            `json:"notify"`
	NoFocus           bool            `json:"no_focus"`
}

var trackerCfg = &TrackerConfig{}

var once sync.Once

func setDefaults() {
	viper.SetDefault(configFocusMinutes, defaultFocusMinutes)
	viper.SetDefault(configInitialCoins, defaultInitialCoins)
	viper.SetDefault(configPenaltyPolicy, string(PolicyStrict))
	viper.SetDefault(configTabSwitchCost, defaultTabSwitchCost)
	viper.SetDefault(configFreeSwitches, defaultFreeSwitches)
	viper.SetDefault(configQuotaCost, defaultQuotaCost)
	viper.SetDefault(configRewardPolicy, string(RewardStreak))
	viper.SetDefault(configDailyBonus, defaultDailyBonus)
	viper.SetDefault(configStreakBonus, defaultStreakBonus)
	viper.SetDefault(configCompletionBonus, defaultCompletionBonus)
	viper.SetDefault(configPremiumBonus, defaultPremiumBonus)
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configSessionCmd, "")
	viper.SetDefault(configPollIntervalMS, 800)
	viper.SetDefault(configMaxDeltaSecs, 60)
}

// initTrackerConfig initialises the application configuration. If the
// config file does not exist, it prompts the user and saves the inputted
// preferences and defaults in a config file.
func initTrackerConfig() error {
	viper.SetConfigName(strings.TrimSuffix(configFileName, ".yml"))
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Dir(configFilePath))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return createTrackerConfig()
		}

		return err
	}

	return nil
}

func createTrackerConfig() error {
	prompt()

	return viper.WriteConfigAs(configFilePath)
}

func setTrackerConfig(ctx *cli.Context) {
	trackerCfg.PathToConfig = configFilePath
	trackerCfg.PathToDB = dbFilePath

	// set from the config file
	trackerCfg.FocusMinutes = viper.GetInt(configFocusMinutes)
	trackerCfg.InitialCoins = viper.GetInt(configInitialCoins)
	trackerCfg.PenaltyPolicy = PenaltyPolicy(
		viper.GetString(configPenaltyPolicy),
	)
	trackerCfg.TabSwitchCost = viper.GetInt(configTabSwitchCost)
	trackerCfg.FreeSwitches = viper.GetInt(configFreeSwitches)
	trackerCfg.QuotaCost = viper.GetInt(configQuotaCost)
	trackerCfg.RewardPolicy = RewardPolicy(viper.GetString(configRewardPolicy))
	trackerCfg.DailyBonus = viper.GetInt(configDailyBonus)
	trackerCfg.StreakBonus = viper.GetInt(configStreakBonus)
	trackerCfg.CompletionBonus = viper.GetInt(configCompletionBonus)
	trackerCfg.PremiumBonus = viper.GetInt(configPremiumBonus)
	trackerCfg.Notify = viper.GetBool(configNotify)
	trackerCfg.SessionCmd = viper.GetString(configSessionCmd)
	trackerCfg.PollInterval = time.Duration(
		viper.GetInt(configPollIntervalMS),
	) * time.Millisecond
	trackerCfg.MaxPlausibleDelta = time.Duration(
		viper.GetInt(configMaxDeltaSecs),
	) * time.Second

	// set from command-line arguments
	if ctx.Uint("focus") > 0 {
		trackerCfg.FocusMinutes = int(ctx.Uint("focus"))
	}

	if ctx.Bool("no-focus") {
		trackerCfg.NoFocus = true
	}

	if ctx.String("policy") != "" {
		trackerCfg.PenaltyPolicy = PenaltyPolicy(ctx.String("policy"))
	}

	if ctx.String("tag") != "" {
		trackerCfg.Tag = strings.TrimSpace(ctx.String("tag"))
	}

	if ctx.Bool("disable-notification") {
		trackerCfg.Notify = false
	}

	if ctx.String("session-cmd") != "" {
		trackerCfg.SessionCmd = ctx.String("session-cmd")
	}

	if err := validateTrackerConfig(trackerCfg); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func validateTrackerConfig(cfg *TrackerConfig) error {
	if cfg.FocusMinutes < MinFocusMinutes ||
		cfg.FocusMinutes > MaxFocusMinutes {
		return errInvalidFocusDuration
	}

	switch cfg.PenaltyPolicy {
	case PolicyQuota, PolicyStrict:
	default:
		return errInvalidPenaltyPolicy
	}

	switch cfg.RewardPolicy {
	case RewardStreak, RewardCompletion:
	default:
		return errInvalidRewardPolicy
	}

	if cfg.PollInterval <= 0 || cfg.MaxPlausibleDelta <= 0 {
		return errInvalidInterval
	}

	return nil
}

// Tracker initialises and returns the tracker configuration.
func Tracker(ctx *cli.Context) *TrackerConfig {
	once.Do(func() {
		err := initTrackerConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		setTrackerConfig(ctx)
	})

	return trackerCfg
}
