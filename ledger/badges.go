package ledger

// Badge is an achievement derived from the cumulative state. Badges are
// pure predicates: nothing about them is stored, so they can never drift
// out of sync with the balance or the history.
type Badge struct {
	Name        string
	Description string
}

const (
	coinBadgeThreshold  = 200
	videoBadgeThreshold = 10
)

// Badges returns the set of badges currently unlocked.
func (l *Ledger) Badges() []Badge {
	var badges []Badge

	if l.state.Coins >= coinBadgeThreshold {
		badges = append(badges, Badge{
			Name:        "Coin Collector",
			Description: "Hold 200 or more coins",
		})
	}

	if len(l.state.Stats) >= videoBadgeThreshold {
		badges = append(badges, Badge{
			Name:        "Dedicated Learner",
			Description: "Watch 10 or more different videos",
		})
	}

	if l.state.Streak >= 7 {
		badges = append(badges, Badge{
			Name:        "Week of Focus",
			Description: "Maintain a 7-day watch streak",
		})
	}

	return badges
}
