package config

import (
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
)

const ascii = `
███████╗████████╗██╗   ██╗██████╗ ██╗   ██╗
██╔════╝╚══██╔══╝██║   ██║██╔══██╗╚██╗ ██╔╝
███████╗   ██║   ██║   ██║██║  ██║ ╚████╔╝
╚════██║   ██║   ██║   ██║██║  ██║  ╚██╔╝
███████║   ██║   ╚██████╔╝██████╔╝   ██║
╚══════╝   ╚═╝    ╚═════╝ ╚═════╝    ╚═╝`

// prompt allows the user to state their preferred values for the most
// important tracker settings. It is run only when a configuration file
// is not already present (e.g on first run).
func prompt() {
	pterm.Println(ascii)

	pterm.Info.Printfln(
		"Your preferences will be saved to: %s\n",
		configFilePath,
	)

	_ = pterm.NewBulletListFromString(`Follow the prompts below to configure studytrack for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the configuration file (studytrack edit-config) to change any settings, or use command line arguments (see the --help flag)`, " ").
		Render()

	focusMins := defaultFocusMinutes
	penalty := string(PolicyStrict)
	reward := string(RewardStreak)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default focus window length").
				Options(
					huh.NewOption("25 minutes", 25).Selected(true),
					huh.NewOption("35 minutes", 35),
					huh.NewOption("50 minutes", 50),
					huh.NewOption("60 minutes", 60),
					huh.NewOption("90 minutes", 90),
				).
				Value(&focusMins),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Tab-switch penalty policy").
				Options(
					huh.NewOption(
						"Strict: every switch costs coins while focused",
						string(PolicyStrict),
					).Selected(true),
					huh.NewOption(
						"Quota: 5 free switches, then each costs coins",
						string(PolicyQuota),
					),
				).
				Value(&penalty),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Reward policy").
				Options(
					huh.NewOption(
						"Streak: daily coin plus streak bonus",
						string(RewardStreak),
					).Selected(true),
					huh.NewOption(
						"Completion: flat bonus for finishing a video",
						string(RewardCompletion),
					),
				).
				Value(&reward),
		),
	)

	err := form.Run()
	if err != nil {
		pterm.Warning.Printfln(
			"prompt aborted, using defaults: %v",
			err,
		)

		return
	}

	viper.Set(configFocusMinutes, focusMins)
	viper.Set(configPenaltyPolicy, penalty)
	viper.Set(configRewardPolicy, reward)
}
