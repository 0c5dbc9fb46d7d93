package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", -100, true},
		{"-20", -2000, true},
		{"-0.50", -50, true},
		{"+3", 300, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyIsRefund(t *testing.T) {
	if (Money{Cents: 100}).IsRefund() {
		t.Fatalf("positive amount flagged as refund")
	}
	if !(Money{Cents: -2000}).IsRefund() {
		t.Fatalf("negative amount not flagged as refund")
	}
	if (Money{Cents: 0}).IsRefund() {
		t.Fatalf("zero amount flagged as refund")
	}
}
