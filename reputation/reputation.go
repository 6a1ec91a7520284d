/*
Package reputation is a thin threshold heuristic over completions and
retractions. The cutoffs are tunable config values, not protocol rules; the
escrow and consensus logic never depend on them.
*/
package reputation

import (
	"bountyninja/bountyninja"
	"bountyninja/projection"
)

type Tier string

const (
	Established Tier = "established"
	Trusted     Tier = "trusted"
	Neutral     Tier = "neutral"
	Flagged     Tier = "flagged"
)

type Standing struct {
	Account     bountyninja.Account
	Completions int64
	Retractions int64
	Tier        Tier
}

// TierFor applies the configured cutoffs. Defaults: flagged when retractions
// reach 3 or outnumber completions; established at 10 clean completions;
// trusted at 3.
func TierFor(completions, retractions int64) Tier {
	conf := bountyninja.MakeOrGetConfig()
	flaggedAt := int64(3)
	establishedAt := int64(10)
	trustedAt := int64(3)
	if conf != nil {
		if v := conf.GetInt64("tierFlaggedRetractions"); v > 0 {
			flaggedAt = v
		}
		if v := conf.GetInt64("tierEstablishedCompletions"); v > 0 {
			establishedAt = v
		}
		if v := conf.GetInt64("tierTrustedCompletions"); v > 0 {
			trustedAt = v
		}
	}
	if retractions >= flaggedAt || (retractions > 0 && retractions > completions) {
		return Flagged
	}
	if completions >= establishedAt && retractions == 0 {
		return Established
	}
	if completions >= trustedAt {
		return Trusted
	}
	return Neutral
}

// StandingFor aggregates one account's completions (payouts received) and
// reputation records across a set of task views.
func StandingFor(account bountyninja.Account, views []projection.TaskView, reputations []projection.ReputationRecord) Standing {
	s := Standing{Account: account}
	for _, view := range views {
		for _, payout := range view.Payouts {
			if payout.Recipient == account {
				s.Completions++
				break
			}
		}
	}
	for _, rep := range reputations {
		if rep.Offender == account {
			s.Retractions++
		}
	}
	s.Tier = TierFor(s.Completions, s.Retractions)
	return s
}
