package analytics

import "doacoes/internal/core"

// firstDonationDates maps each donor to the date of their first-ever
// donation across the whole ledger.
func firstDonationDates(ledger core.Ledger) map[string]core.Date {
	first := make(map[string]core.Date)
	for _, d := range ledger {
		if _, seen := first[d.DonorID]; !seen {
			first[d.DonorID] = d.Date
		}
	}
	return first
}

// newDonorCount counts donors whose first-ever donation falls inside the
// bucket's date range.
func newDonorCount(g periodGroup, first map[string]core.Date) int {
	count := 0
	for donor := range g.active {
		d := first[donor]
		if !d.Before(g.start) && !d.After(g.end) {
			count++
		}
	}
	return count
}

// churnedDonorCount counts donors who started donating before the bucket
// yet have no donation inside the trailing window of windowMonths months
// ending at the bucket's end. The windowing policy is deliberate: churn is
// judged against the window, not against bucket membership, so a donor can
// be inactive in the bucket itself without counting as churned.
func churnedDonorCount(g periodGroup, ledger core.Ledger, first map[string]core.Date, windowMonths int) int {
	// windowStart is the first day inside the window. Stepping to the day
	// after the bucket end before subtracting months keeps month-end
	// buckets exact: Dec 31 minus 3 months would land on the invalid
	// "Sep 31" and roll forward into October.
	windowStart := g.end.AddDays(1).AddMonths(-windowMonths)

	lastInWindow := make(map[string]bool, len(first))
	for _, d := range ledger {
		if !d.Date.Before(windowStart) && !d.Date.After(g.end) {
			lastInWindow[d.DonorID] = true
		}
	}

	count := 0
	for donor, firstDate := range first {
		if !firstDate.Before(g.start) {
			continue // not a prior donor yet
		}
		if !lastInWindow[donor] {
			count++
		}
	}
	return count
}

// retentionRate returns the percentage of the previous observed bucket's
// active donors who are also active in the current bucket. It is nil -
// undefined, not zero - when there is no previous bucket or the previous
// bucket had no active donors.
func retentionRate(current, previous *periodGroup) *float64 {
	if previous == nil || len(previous.active) == 0 {
		return nil
	}
	retained := 0
	for donor := range current.active {
		if _, ok := previous.active[donor]; ok {
			retained++
		}
	}
	rate := float64(retained) / float64(len(previous.active)) * 100
	return &rate
}
