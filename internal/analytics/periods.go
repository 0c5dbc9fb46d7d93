package analytics

import "doacoes/internal/core"

// periodGroup is one observed bucket of the ledger. month is 0 for annual
// groups. Gaps between observed periods are never filled in.
type periodGroup struct {
	year      int
	month     int
	start     core.Date // first day of the period
	end       core.Date // last day of the period, inclusive
	donations []core.Donation
	active    map[string]struct{}
}

// groupMonthly buckets the ledger by (year, month), chronologically
// ascending. The ledger is already date-sorted, so groups come out ordered.
func groupMonthly(ledger core.Ledger) []periodGroup {
	var groups []periodGroup
	for _, d := range ledger {
		y, m := d.Date.Year(), d.Date.Month()
		if len(groups) == 0 || groups[len(groups)-1].year != y || groups[len(groups)-1].month != m {
			start := core.NewDate(y, m, 1)
			groups = append(groups, periodGroup{
				year:   y,
				month:  m,
				start:  start,
				end:    start.AddMonths(1).AddDays(-1),
				active: make(map[string]struct{}),
			})
		}
		g := &groups[len(groups)-1]
		g.donations = append(g.donations, d)
		g.active[d.DonorID] = struct{}{}
	}
	return groups
}

// groupAnnual buckets the ledger by year, chronologically ascending.
func groupAnnual(ledger core.Ledger) []periodGroup {
	var groups []periodGroup
	for _, d := range ledger {
		y := d.Date.Year()
		if len(groups) == 0 || groups[len(groups)-1].year != y {
			groups = append(groups, periodGroup{
				year:   y,
				start:  core.NewDate(y, 1, 1),
				end:    core.NewDate(y, 12, 31),
				active: make(map[string]struct{}),
			})
		}
		g := &groups[len(groups)-1]
		g.donations = append(g.donations, d)
		g.active[d.DonorID] = struct{}{}
	}
	return groups
}

func (g periodGroup) total() core.Money {
	var sum int64
	for _, d := range g.donations {
		sum += d.Amount.Cents
	}
	return core.Money{Cents: sum}
}

func (g periodGroup) avgTicket() float64 {
	if len(g.donations) == 0 {
		return 0
	}
	return g.total().Reais() / float64(len(g.donations))
}
