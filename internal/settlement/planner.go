package settlement

import "sort"

// balanceEntry carries one participant's working balance through the
// payout and transfer phases.
type balanceEntry struct {
	participantID string
	balance       float64
}

// planSettlement nets every participant's balance, pays the fund out to the
// largest creditors first, then greedily matches remaining debtors against
// creditors. The greedy matching yields at most participantCount-1
// transfers; after all payouts and transfers every balance is within the
// settle tolerance of zero.
func planSettlement(contributions map[string]*contribution, participants []Participant, fundUsed float64) ([]FundPayout, []Transfer, map[string]Balance) {
	perParticipant := make(map[string]Balance, len(participants))
	entries := make([]balanceEntry, 0, len(participants))

	for _, p := range participants {
		c := contributions[p.ID]
		net := roundToTwoDecimals(c.totalPaid - c.owedAmount)
		perParticipant[p.ID] = Balance{
			TotalPaid:  roundToTwoDecimals(c.totalPaid),
			OwedAmount: roundToTwoDecimals(c.owedAmount),
			NetBalance: net,
		}
		entries = append(entries, balanceEntry{participantID: p.ID, balance: net})
	}

	// Largest creditor first; ties keep input order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].balance > entries[j].balance
	})

	// Fund payout phase: exhaust the fund against the largest creditors.
	// The fund is not distributed proportionally.
	var payouts []FundPayout
	fundRemaining := fundUsed
	for i := range entries {
		if fundRemaining <= settleTolerance {
			break
		}
		if entries[i].balance <= settleTolerance {
			break
		}
		payout := entries[i].balance
		if fundRemaining < payout {
			payout = fundRemaining
		}
		payout = roundToTwoDecimals(payout)
		payouts = append(payouts, FundPayout{
			ParticipantID: entries[i].participantID,
			Amount:        payout,
		})
		entries[i].balance = roundToTwoDecimals(entries[i].balance - payout)
		fundRemaining = roundToTwoDecimals(fundRemaining - payout)
	}

	// Peer transfer phase: two-pointer greedy matching of the most
	// negative sender against the largest receiver.
	var receivers, senders []balanceEntry
	for _, e := range entries {
		switch {
		case e.balance > settleTolerance:
			receivers = append(receivers, e)
		case e.balance < -settleTolerance:
			senders = append(senders, e)
		}
	}
	sort.SliceStable(receivers, func(i, j int) bool {
		return receivers[i].balance > receivers[j].balance
	})
	sort.SliceStable(senders, func(i, j int) bool {
		return senders[i].balance < senders[j].balance
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(senders) && j < len(receivers) {
		owed := -senders[i].balance
		due := receivers[j].balance

		amount := owed
		if due < amount {
			amount = due
		}
		amount = roundToTwoDecimals(amount)

		transfers = append(transfers, Transfer{
			FromParticipantID: senders[i].participantID,
			ToParticipantID:   receivers[j].participantID,
			Amount:            amount,
		})

		senders[i].balance = roundToTwoDecimals(senders[i].balance + amount)
		receivers[j].balance = roundToTwoDecimals(receivers[j].balance - amount)

		if senders[i].balance >= -settleTolerance {
			i++
		}
		if receivers[j].balance <= settleTolerance {
			j++
		}
	}

	return payouts, transfers, perParticipant
}
