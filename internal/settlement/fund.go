package settlement

// allocateFund consumes up to the fund cap against what fund-eligible
// participants owe, then rewrites each eligible participant's obligation
// as an equal share of the residual. The fund smooths out the bill for
// eligible members: once it absorbs part of the cost, what is left is a
// fresh equal split among the people allowed to benefit, not a
// proportional reduction of the original shares.
//
// Returns the realized fundUsed and the unused remainder of the cap.
// Never fails: the cap is clamped so the fund can never be over-consumed
// beyond what eligible participants actually owe.
func allocateFund(contributions map[string]*contribution, participants []Participant, cfg FundConfig) (fundUsed, fundLeft float64) {
	if !cfg.Enabled {
		return 0, 0
	}
	if cfg.CapAmount <= 0 {
		return 0, 0
	}

	excluded := make(map[string]bool, len(cfg.ExcludedParticipantIDs))
	for _, id := range cfg.ExcludedParticipantIDs {
		excluded[id] = true
	}

	var eligible []string
	for _, p := range participants {
		if !excluded[p.ID] {
			eligible = append(eligible, p.ID)
		}
	}
	if len(eligible) == 0 {
		return 0, cfg.CapAmount
	}

	// The fund offsets what eligible participants owe, never what they
	// are owed, so the pool is summed from pre-fund obligations rather
	// than net balances.
	var eligibleObligationTotal float64
	for _, id := range eligible {
		eligibleObligationTotal += contributions[id].owedAmount
	}

	fundUsed = cfg.CapAmount
	if eligibleObligationTotal < fundUsed {
		fundUsed = eligibleObligationTotal
	}
	fundLeft = cfg.CapAmount - fundUsed

	residualPerEligible := (eligibleObligationTotal - fundUsed) / float64(len(eligible))
	for _, id := range eligible {
		contributions[id].owedAmount = residualPerEligible
	}

	return fundUsed, fundLeft
}
