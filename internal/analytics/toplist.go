package analytics

import (
	"sort"

	"doacoes/internal/core"
)

// ComputeTopDonors ranks donors by lifetime total, refunds included,
// descending. Ties break ascending by donor id so the ranking is stable
// across runs. At most limit entries are returned.
func ComputeTopDonors(ledger core.Ledger, limit int) []TopDonor {
	totals := make(map[string]*TopDonor)
	for _, d := range ledger {
		entry, ok := totals[d.DonorID]
		if !ok {
			entry = &TopDonor{DonorID: d.DonorID}
			totals[d.DonorID] = entry
		}
		entry.Total.Cents += d.Amount.Cents
		entry.Donations++
	}

	ranked := make([]TopDonor, 0, len(totals))
	for _, entry := range totals {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total.Cents != ranked[j].Total.Cents {
			return ranked[i].Total.Cents > ranked[j].Total.Cents
		}
		return ranked[i].DonorID < ranked[j].DonorID
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ComputeRecentDonations returns the last limit donations, most recent
// first. Same-date rows keep ledger order, so the later source row wins.
func ComputeRecentDonations(ledger core.Ledger, limit int) []RecentDonation {
	recent := make([]RecentDonation, 0, limit)
	for i := len(ledger) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, RecentDonation{
			DonorID: ledger[i].DonorID,
			Amount:  ledger[i].Amount,
			Date:    ledger[i].Date,
		})
	}
	return recent
}
