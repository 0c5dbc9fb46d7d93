package analytics

import "doacoes/internal/core"

// growthRate returns the period-over-period percentage change from the
// previous total to the current one. It is nil when there is no previous
// bucket or the previous total is zero (the ratio is undefined; it must
// never be coerced to zero or an arbitrary large number).
func growthRate(current core.Money, previous *core.Money) *float64 {
	if previous == nil || previous.Cents == 0 {
		return nil
	}
	rate := float64(current.Cents-previous.Cents) / float64(previous.Cents) * 100
	return &rate
}

// movingAverage returns the mean of the trailing window of totals ending at
// index i, inclusive, or nil while fewer than window values exist. Totals
// are trailing observed buckets; calendar gaps are not interpolated.
func movingAverage(totals []core.Money, i, window int) *float64 {
	if window <= 0 || i+1 < window {
		return nil
	}
	var sum int64
	for _, t := range totals[i+1-window : i+1] {
		sum += t.Cents
	}
	avg := core.Money{Cents: sum}.Reais() / float64(window)
	return &avg
}
