package analytics

import (
	"testing"

	"doacoes/internal/core"
)

func scenarioLedger(t *testing.T) core.Ledger {
	t.Helper()
	ledger, err := core.NormalizeLedger([]core.RawRow{
		{DonorID: "A", Amount: "100", Date: "2023-01-05"},
		{DonorID: "B", Amount: "50", Date: "2023-01-20"},
		{DonorID: "A", Amount: "-20", Date: "2023-02-01"},
		{DonorID: "A", Amount: "200", Date: "2024-01-10"},
	})
	if err != nil {
		t.Fatalf("normalize scenario ledger: %v", err)
	}
	return ledger
}

func TestComputeOverall(t *testing.T) {
	got := ComputeOverall(scenarioLedger(t))

	if got.TotalRaised.Cents != 33000 {
		t.Fatalf("total_raised = %d cents, want 33000", got.TotalRaised.Cents)
	}
	if got.TotalRefunded.Cents != -2000 {
		t.Fatalf("total_refunded = %d cents, want -2000", got.TotalRefunded.Cents)
	}
	if got.UniqueDonors != 2 {
		t.Fatalf("unique_donors = %d, want 2", got.UniqueDonors)
	}
	if got.TotalDonations != 4 {
		t.Fatalf("total_donations = %d, want 4", got.TotalDonations)
	}
	if got.AvgTicket != 82.5 {
		t.Fatalf("avg_ticket = %v, want 82.5", got.AvgTicket)
	}
	// per-donor totals: A=280, B=50 -> mean 165
	if got.LTV != 165 {
		t.Fatalf("ltv = %v, want 165", got.LTV)
	}
}

func TestComputeOverallRaisedMinusRefunded(t *testing.T) {
	ledger := scenarioLedger(t)
	got := ComputeOverall(ledger)

	var positive int64
	for _, d := range ledger {
		if d.Amount.Cents > 0 {
			positive += d.Amount.Cents
		}
	}
	if got.TotalRaised.Cents-got.TotalRefunded.Cents != positive {
		t.Fatalf("raised - refunded = %d, want sum of positive amounts %d",
			got.TotalRaised.Cents-got.TotalRefunded.Cents, positive)
	}
}

func TestComputeOverallEmptyLedger(t *testing.T) {
	got := ComputeOverall(core.Ledger{})
	if got != (OverallMetrics{}) {
		t.Fatalf("empty ledger must yield zero metrics, got %+v", got)
	}
}
