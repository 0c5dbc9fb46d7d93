package analytics

import (
	"fmt"
	"sort"

	"doacoes/internal/core"
)

// QuantileCount is the number of equal-population bins per RFM dimension.
const QuantileCount = 3

// Segment names, as rendered in the report.
const (
	SegmentInativo   = "inativo"
	SegmentEmRisco   = "em risco"
	SegmentPotencial = "potencial"
	SegmentLeal      = "leal"
)

// segmentOrder fixes the output ordering of segment summaries.
var segmentOrder = []string{SegmentInativo, SegmentEmRisco, SegmentPotencial, SegmentLeal}

// segmentTable maps every RFM score to a segment. It is total over
// {1,2,3}^3; TestSegmentTableIsTotal proves it stays that way.
var segmentTable = map[string]string{
	"111": SegmentInativo, "112": SegmentInativo, "113": SegmentInativo,
	"121": SegmentInativo, "122": SegmentInativo, "123": SegmentInativo,
	"131": SegmentEmRisco, "132": SegmentEmRisco, "133": SegmentEmRisco,

	"211": SegmentEmRisco, "212": SegmentEmRisco, "213": SegmentEmRisco,
	"221": SegmentPotencial, "222": SegmentPotencial, "223": SegmentPotencial,
	"231": SegmentLeal, "232": SegmentLeal, "233": SegmentLeal,

	"311": SegmentPotencial, "312": SegmentPotencial, "313": SegmentPotencial,
	"321": SegmentLeal, "322": SegmentLeal, "323": SegmentLeal,
	"331": SegmentLeal, "332": SegmentLeal, "333": SegmentLeal,
}

// DonorProfile holds the three RFM values for one donor.
type DonorProfile struct {
	DonorID     string
	RecencyDays int
	Frequency   int
	Monetary    core.Money
}

type scoredProfile struct {
	DonorProfile
	Recency int // 3 = most recent third
	Freq    int
	Money   int
	Score   string
	Segment string
}

// ComputeProfiles derives per-donor recency, frequency and monetary values.
// Recency is measured in days from the donor's last donation to the
// snapshot date (ledger max date plus snapshotOffsetDays). Profiles come
// back sorted by donor id so downstream binning is reproducible.
func ComputeProfiles(ledger core.Ledger, snapshotOffsetDays int) []DonorProfile {
	maxDate, ok := ledger.MaxDate()
	if !ok {
		return []DonorProfile{}
	}
	snapshot := maxDate.AddDays(snapshotOffsetDays)

	byDonor := make(map[string]*DonorProfile)
	for _, d := range ledger {
		p, exists := byDonor[d.DonorID]
		if !exists {
			p = &DonorProfile{DonorID: d.DonorID}
			byDonor[d.DonorID] = p
		}
		p.Frequency++
		p.Monetary.Cents += d.Amount.Cents
		// ledger is date-sorted, so the last row seen is the latest
		p.RecencyDays = d.Date.DaysUntil(snapshot)
	}

	profiles := make([]DonorProfile, 0, len(byDonor))
	for _, p := range byDonor {
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].DonorID < profiles[j].DonorID
	})
	return profiles
}

// tertileCuts returns the two cut points splitting values into three
// equal-population bins, using the nearest-rank quantile of the sorted
// values. With fewer values than bins the population is degenerate and
// the second result is false.
func tertileCuts(values []float64) ([2]float64, bool) {
	n := len(values)
	if n < QuantileCount {
		return [2]float64{}, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	// nearest-rank: q(p) = sorted[ceil(p*n)-1]
	q1 := sorted[(n+QuantileCount-1)/QuantileCount-1]
	q2 := sorted[(2*n+QuantileCount-1)/QuantileCount-1]
	return [2]float64{q1, q2}, true
}

// binOf places a value into bin 1, 2 or 3 against the cut points.
// Equal values always land in the same bin, whatever their donor.
func binOf(v float64, cuts [2]float64) int {
	switch {
	case v <= cuts[0]:
		return 1
	case v <= cuts[1]:
		return 2
	default:
		return 3
	}
}

// scoreProfiles bins each dimension into tertiles and resolves the segment.
// Recency scores inversely: the most recent third gets 3. With fewer
// donors than bins, every donor scores 2 on every dimension.
func scoreProfiles(profiles []DonorProfile) []scoredProfile {
	recency := make([]float64, len(profiles))
	freq := make([]float64, len(profiles))
	money := make([]float64, len(profiles))
	for i, p := range profiles {
		recency[i] = float64(p.RecencyDays)
		freq[i] = float64(p.Frequency)
		money[i] = float64(p.Monetary.Cents)
	}

	rCuts, rOK := tertileCuts(recency)
	fCuts, fOK := tertileCuts(freq)
	mCuts, mOK := tertileCuts(money)

	scored := make([]scoredProfile, len(profiles))
	for i, p := range profiles {
		r, f, m := 2, 2, 2
		if rOK {
			r = QuantileCount + 1 - binOf(recency[i], rCuts)
		}
		if fOK {
			f = binOf(freq[i], fCuts)
		}
		if mOK {
			m = binOf(money[i], mCuts)
		}
		score := fmt.Sprintf("%d%d%d", r, f, m)
		scored[i] = scoredProfile{
			DonorProfile: p,
			Recency:      r,
			Freq:         f,
			Money:        m,
			Score:        score,
			Segment:      segmentTable[score],
		}
	}
	return scored
}

// ComputeRFM returns one summary per segment that has at least one donor,
// in fixed segment order.
func ComputeRFM(ledger core.Ledger, snapshotOffsetDays int) []SegmentSummary {
	profiles := ComputeProfiles(ledger, snapshotOffsetDays)
	scored := scoreProfiles(profiles)

	type acc struct {
		count     int
		recency   float64
		frequency float64
		monetary  int64
	}
	bySegment := make(map[string]*acc)
	for _, s := range scored {
		a, ok := bySegment[s.Segment]
		if !ok {
			a = &acc{}
			bySegment[s.Segment] = a
		}
		a.count++
		a.recency += float64(s.RecencyDays)
		a.frequency += float64(s.Frequency)
		a.monetary += s.Monetary.Cents
	}

	summaries := make([]SegmentSummary, 0, len(bySegment))
	for _, segment := range segmentOrder {
		a, ok := bySegment[segment]
		if !ok {
			continue
		}
		n := float64(a.count)
		summaries = append(summaries, SegmentSummary{
			Segment:      segment,
			Count:        a.count,
			AvgRecency:   a.recency / n,
			AvgFrequency: a.frequency / n,
			AvgMonetary:  core.Money{Cents: a.monetary}.Reais() / n,
		})
	}
	return summaries
}
