package core

import (
	"errors"
	"fmt"
	"sort"
)

// RawRow is a donation row as delivered by a ledger source, before any
// type coercion. Field coercion happens in NormalizeLedger only.
type RawRow struct {
	DonorID string
	Amount  string
	Date    string
}

// Ledger is the full donation history under analysis, sorted ascending by
// date. Rows with equal dates keep their source order. A Ledger is built
// once per analytics run and never mutated afterwards.
type Ledger []Donation

// MalformedLedgerError reports the first source row that failed coercion.
// The whole normalization fails; no partial ledger is ever produced.
type MalformedLedgerError struct {
	Row   int    // zero-based index into the source rows
	Field string // "donor_id", "amount" or "date"
	Value string
	Err   error
}

func (e *MalformedLedgerError) Error() string {
	return fmt.Sprintf("malformed ledger row %d: field %s value %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *MalformedLedgerError) Unwrap() error {
	return e.Err
}

// NormalizeLedger validates and coerces raw rows into a Ledger.
// Every row must carry a donor id, a numeric amount and a parseable date;
// the first failing row aborts with a MalformedLedgerError naming it.
// The returned ledger is stably sorted ascending by date.
func NormalizeLedger(rows []RawRow) (Ledger, error) {
	ledger := make(Ledger, 0, len(rows))
	for i, row := range rows {
		donation, err := normalizeRow(row)
		if err != nil {
			return nil, err.withRow(i)
		}
		ledger = append(ledger, donation)
	}
	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Date.Before(ledger[j].Date)
	})
	return ledger, nil
}

func normalizeRow(row RawRow) (Donation, *MalformedLedgerError) {
	cents, err := ParseDecimalToCents(row.Amount)
	if err != nil {
		return Donation{}, &MalformedLedgerError{Field: "amount", Value: row.Amount, Err: err}
	}
	date, err := ParseDate(row.Date)
	if err != nil {
		return Donation{}, &MalformedLedgerError{Field: "date", Value: row.Date, Err: err}
	}
	donation := Donation{
		DonorID: row.DonorID,
		Amount:  Money{Cents: cents},
		Date:    date,
	}
	if err := donation.Validate(); err != nil {
		// Validate covers both the donor id and the date range; name the
		// field that actually failed.
		if errors.Is(err, ErrEmptyDonorID) {
			return Donation{}, &MalformedLedgerError{Field: "donor_id", Value: row.DonorID, Err: err}
		}
		return Donation{}, &MalformedLedgerError{Field: "date", Value: row.Date, Err: err}
	}
	return donation, nil
}

func (e *MalformedLedgerError) withRow(i int) *MalformedLedgerError {
	e.Row = i
	return e
}

// MaxDate returns the latest donation date in the ledger.
// The second result is false for an empty ledger.
func (l Ledger) MaxDate() (Date, bool) {
	if len(l) == 0 {
		return Date{}, false
	}
	// ledger is sorted ascending by date
	return l[len(l)-1].Date, true
}
