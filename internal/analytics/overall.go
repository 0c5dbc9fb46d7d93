package analytics

import "doacoes/internal/core"

// ComputeOverall returns lifetime aggregates for the ledger.
// An empty ledger is a valid degenerate case: every field is zero and the
// mean-based fields are defined as zero instead of failing.
func ComputeOverall(ledger core.Ledger) OverallMetrics {
	var metrics OverallMetrics
	metrics.TotalDonations = len(ledger)

	perDonor := make(map[string]int64)
	for _, d := range ledger {
		metrics.TotalRaised.Cents += d.Amount.Cents
		if d.Amount.IsRefund() {
			metrics.TotalRefunded.Cents += d.Amount.Cents
		}
		perDonor[d.DonorID] += d.Amount.Cents
	}
	metrics.UniqueDonors = len(perDonor)

	if len(ledger) > 0 {
		metrics.AvgTicket = metrics.TotalRaised.Reais() / float64(len(ledger))
	}
	if len(perDonor) > 0 {
		var sum int64
		for _, cents := range perDonor {
			sum += cents
		}
		metrics.LTV = core.Money{Cents: sum}.Reais() / float64(len(perDonor))
	}
	return metrics
}
