package analytics

import (
	"testing"

	"doacoes/internal/core"
)

func TestNewDonorCount(t *testing.T) {
	ledger := scenarioLedger(t)
	first := firstDonationDates(ledger)
	monthly := groupMonthly(ledger)

	want := []int{2, 0, 0} // both donors start in 2023-01
	for i, w := range want {
		if got := newDonorCount(monthly[i], first); got != w {
			t.Fatalf("bucket %d-%02d new donors = %d, want %d",
				monthly[i].year, monthly[i].month, got, w)
		}
	}
}

func TestChurnedDonorCount(t *testing.T) {
	ledger := scenarioLedger(t)
	first := firstDonationDates(ledger)

	annual := groupAnnual(ledger)
	// 2023: nobody donated before the year started
	if got := churnedDonorCount(annual[0], ledger, first, 12); got != 0 {
		t.Fatalf("2023 churned = %d, want 0", got)
	}
	// 2024: B is a prior donor with nothing in the trailing 12 months
	if got := churnedDonorCount(annual[1], ledger, first, 12); got != 1 {
		t.Fatalf("2024 churned = %d, want 1", got)
	}

	monthly := groupMonthly(ledger)
	// 2024-01 with a 3-month window: only A donated inside it, B churned
	last := monthly[len(monthly)-1]
	if got := churnedDonorCount(last, ledger, first, 3); got != 1 {
		t.Fatalf("2024-01 churned = %d, want 1", got)
	}
}

func TestChurnIgnoresBucketInactivity(t *testing.T) {
	// donor b is inactive in the last bucket but donated inside the
	// trailing window, so b is not churned
	ledger, err := core.NormalizeLedger([]core.RawRow{
		{DonorID: "a", Amount: "10", Date: "2023-01-10"},
		{DonorID: "b", Amount: "10", Date: "2023-01-10"},
		{DonorID: "b", Amount: "10", Date: "2023-11-10"},
		{DonorID: "a", Amount: "10", Date: "2023-12-10"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	first := firstDonationDates(ledger)
	monthly := groupMonthly(ledger)
	dec := monthly[len(monthly)-1]
	if got := churnedDonorCount(dec, ledger, first, 3); got != 0 {
		t.Fatalf("churned = %d, want 0 (b active inside the window)", got)
	}
}

func TestChurnWindowCoversWholeFirstMonth(t *testing.T) {
	// a December bucket with a 3-month window must reach back to Oct 1,
	// so b's donation on that exact day keeps b out of the churn count
	ledger, err := core.NormalizeLedger([]core.RawRow{
		{DonorID: "a", Amount: "10", Date: "2023-01-10"},
		{DonorID: "b", Amount: "10", Date: "2023-01-10"},
		{DonorID: "b", Amount: "10", Date: "2023-10-01"},
		{DonorID: "a", Amount: "10", Date: "2023-12-10"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	first := firstDonationDates(ledger)
	monthly := groupMonthly(ledger)
	dec := monthly[len(monthly)-1]
	if dec.month != 12 {
		t.Fatalf("last bucket month = %d, want 12", dec.month)
	}
	if got := churnedDonorCount(dec, ledger, first, 3); got != 0 {
		t.Fatalf("churned = %d, want 0 (b donated on the window's first day)", got)
	}
}

func TestRetentionRate(t *testing.T) {
	ledger := scenarioLedger(t)
	monthly := groupMonthly(ledger)

	if rate := retentionRate(&monthly[0], nil); rate != nil {
		t.Fatalf("first bucket retention must be absent, got %v", *rate)
	}
	// 2023-02: active {A} of prior {A, B} -> 50%
	rate := retentionRate(&monthly[1], &monthly[0])
	if rate == nil || *rate != 50 {
		t.Fatalf("2023-02 retention = %v, want 50", rate)
	}
	// 2024-01 vs prior observed bucket 2023-02: {A} of {A} -> 100%
	rate = retentionRate(&monthly[2], &monthly[1])
	if rate == nil || *rate != 100 {
		t.Fatalf("2024-01 retention = %v, want 100", rate)
	}
}

func TestRetentionRateEmptyPrior(t *testing.T) {
	empty := periodGroup{active: map[string]struct{}{}}
	current := periodGroup{active: map[string]struct{}{"a": {}}}
	if rate := retentionRate(&current, &empty); rate != nil {
		t.Fatalf("retention vs empty prior population must be absent, got %v", *rate)
	}
}
