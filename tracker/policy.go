package tracker

import (
	"fmt"

	"github.com/ayoisaiah/studytrack/config"
)

// PenaltyPolicy decides what a tab switch costs. Implementations are
// pure: the tracker applies the returned cost through the ledger and
// surfaces the warning, so both policy variants share one code path.
type PenaltyPolicy interface {
	// OnTabSwitch is called with the 1-based count of switches so far
	// in the session while a focus window is active. It returns the
	// coins to deduct and a user-visible warning.
	OnTabSwitch(count int) (cost int, warning string)
}

// quotaPolicy grants a number of free switches before charging.
type quotaPolicy struct {
	freeSwitches int
	cost         int
}

func (p quotaPolicy) OnTabSwitch(count int) (int, string) {
	if count <= p.freeSwitches {
		remaining := p.freeSwitches - count

		return 0, fmt.Sprintf(
			"Tab switched! (%d/%d free, %d remaining)",
			count,
			p.freeSwitches,
			remaining,
		)
	}

	return p.cost, fmt.Sprintf(
		"Tab switched beyond quota! -%d coins",
		p.cost,
	)
}

// strictPolicy charges every switch while a focus window is active.
type strictPolicy struct {
	cost int
}

func (p strictPolicy) OnTabSwitch(_ int) (int, string) {
	return p.cost, fmt.Sprintf("Tab switched! -%d coins", p.cost)
}

// newPenaltyPolicy selects the configured policy variant.
func newPenaltyPolicy(opts *config.TrackerConfig) PenaltyPolicy {
	if opts.PenaltyPolicy == config.PolicyQuota {
		return quotaPolicy{
			freeSwitches: opts.FreeSwitches,
			cost:         opts.QuotaCost,
		}
	}

	return strictPolicy{cost: opts.TabSwitchCost}
}
