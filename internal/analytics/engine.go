package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"doacoes/internal/core"
)

// Config carries the engine tunables. Zero values are not usable; start
// from DefaultConfig.
type Config struct {
	// SnapshotOffsetDays is added to the ledger's max date to obtain the
	// recency reference date.
	SnapshotOffsetDays int
	// AnnualChurnWindowMonths is the trailing window for annual churn.
	AnnualChurnWindowMonths int
	// MonthlyChurnWindowMonths is the trailing window for monthly churn.
	MonthlyChurnWindowMonths int
	// TopDonorsLimit caps the top-donor ranking.
	TopDonorsLimit int
	// RecentDonationsLimit caps the recent-donations list.
	RecentDonationsLimit int
	// MovingAvgWindowMonths is the trailing window of the monthly
	// moving average.
	MovingAvgWindowMonths int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		SnapshotOffsetDays:       1,
		AnnualChurnWindowMonths:  12,
		MonthlyChurnWindowMonths: 3,
		TopDonorsLimit:           10,
		RecentDonationsLimit:     10,
		MovingAvgWindowMonths:    6,
	}
}

// Analyze runs every calculator over the ledger and joins the outputs into
// a single Result. The calculators only read the ledger, so they run as
// independent parallel tasks; the only error that can surface here is
// context cancellation. An empty ledger yields a zero-valued Result.
func Analyze(ctx context.Context, ledger core.Ledger, cfg Config) (Result, error) {
	result := Result{
		Monthly:         []MonthlyBucket{},
		Annual:          []AnnualBucket{},
		Segments:        []SegmentSummary{},
		TopDonors:       []TopDonor{},
		RecentDonations: []RecentDonation{},
	}

	first := firstDonationDates(ledger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Overall = ComputeOverall(ledger)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if monthly := buildMonthly(ledger, first, cfg); len(monthly) > 0 {
			result.Monthly = monthly
		}
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if annual := buildAnnual(ledger, first, cfg); len(annual) > 0 {
			result.Annual = annual
		}
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if segments := ComputeRFM(ledger, cfg.SnapshotOffsetDays); len(segments) > 0 {
			result.Segments = segments
		}
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if top := ComputeTopDonors(ledger, cfg.TopDonorsLimit); len(top) > 0 {
			result.TopDonors = top
		}
		if recent := ComputeRecentDonations(ledger, cfg.RecentDonationsLimit); len(recent) > 0 {
			result.RecentDonations = recent
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return result, nil
}

func buildMonthly(ledger core.Ledger, first map[string]core.Date, cfg Config) []MonthlyBucket {
	groups := groupMonthly(ledger)

	totals := make([]core.Money, len(groups))
	for i, g := range groups {
		totals[i] = g.total()
	}

	buckets := make([]MonthlyBucket, len(groups))
	for i := range groups {
		g := &groups[i]
		var prev *periodGroup
		if i > 0 {
			prev = &groups[i-1]
		}
		buckets[i] = MonthlyBucket{
			Year:          g.year,
			Month:         g.month,
			Total:         totals[i],
			UniqueDonors:  len(g.active),
			AvgTicket:     g.avgTicket(),
			NewDonors:     newDonorCount(*g, first),
			ChurnedDonors: churnedDonorCount(*g, ledger, first, cfg.MonthlyChurnWindowMonths),
			RetentionRate: retentionRate(g, prev),
			MovingAvg:     movingAverage(totals, i, cfg.MovingAvgWindowMonths),
		}
	}
	return buckets
}

func buildAnnual(ledger core.Ledger, first map[string]core.Date, cfg Config) []AnnualBucket {
	groups := groupAnnual(ledger)

	buckets := make([]AnnualBucket, len(groups))
	for i := range groups {
		g := &groups[i]
		var prev *periodGroup
		var prevTotal *core.Money
		if i > 0 {
			prev = &groups[i-1]
			t := prev.total()
			prevTotal = &t
		}
		buckets[i] = AnnualBucket{
			Year:          g.year,
			Total:         g.total(),
			UniqueDonors:  len(g.active),
			AvgTicket:     g.avgTicket(),
			NewDonors:     newDonorCount(*g, first),
			ChurnedDonors: churnedDonorCount(*g, ledger, first, cfg.AnnualChurnWindowMonths),
			RetentionRate: retentionRate(g, prev),
			GrowthRate:    growthRate(g.total(), prevTotal),
		}
	}
	return buckets
}
