package analytics

import (
	"math"
	"testing"

	"doacoes/internal/core"
)

func TestGrowthRate(t *testing.T) {
	prev := core.Money{Cents: 13000}
	rate := growthRate(core.Money{Cents: 20000}, &prev)
	if rate == nil {
		t.Fatalf("expected a growth rate")
	}
	want := (20000.0 - 13000.0) / 13000.0 * 100
	if math.Abs(*rate-want) > 1e-9 {
		t.Fatalf("growth = %v, want %v", *rate, want)
	}
}

func TestGrowthRateAbsentCases(t *testing.T) {
	if rate := growthRate(core.Money{Cents: 100}, nil); rate != nil {
		t.Fatalf("first bucket growth must be absent, got %v", *rate)
	}
	zero := core.Money{Cents: 0}
	if rate := growthRate(core.Money{Cents: 100}, &zero); rate != nil {
		t.Fatalf("growth over a zero base must be absent, got %v", *rate)
	}
}

func TestGrowthRateNegative(t *testing.T) {
	prev := core.Money{Cents: 20000}
	rate := growthRate(core.Money{Cents: 10000}, &prev)
	if rate == nil || *rate != -50 {
		t.Fatalf("growth = %v, want -50", rate)
	}
}

func TestMovingAverage(t *testing.T) {
	totals := []core.Money{
		{Cents: 100}, {Cents: 200}, {Cents: 300},
		{Cents: 400}, {Cents: 500}, {Cents: 600}, {Cents: 700},
	}
	for i := 0; i < 5; i++ {
		if avg := movingAverage(totals, i, 6); avg != nil {
			t.Fatalf("index %d: expected absent moving average, got %v", i, *avg)
		}
	}
	avg := movingAverage(totals, 5, 6)
	if avg == nil || *avg != 3.5 { // (1+2+3+4+5+6)/6 in currency units
		t.Fatalf("index 5 moving average = %v, want 3.5", avg)
	}
	avg = movingAverage(totals, 6, 6)
	if avg == nil || *avg != 4.5 {
		t.Fatalf("index 6 moving average = %v, want 4.5", avg)
	}
}
