package memory

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"doacoes/internal/core"
)

// Store is an in-memory ledger source, seedable from a plain-text file.
// Meant for local runs and tests.
type Store struct {
	mu   sync.Mutex
	rows []core.RawRow
}

func New(rows []core.RawRow) *Store {
	return &Store{rows: append([]core.RawRow(nil), rows...)}
}

// NewFromFile seeds the store from a file of "donor;amount;date" lines.
// Blank lines and lines starting with # are skipped; a missing file just
// yields an empty store.
func NewFromFile(path string) *Store {
	return New(readRows(path))
}

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row core.RawRow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// ReadRows returns a copy of the stored rows in insertion order.
func (s *Store) ReadRows(_ context.Context) ([]core.RawRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RawRow(nil), s.rows...), nil
}

func readRows(path string) []core.RawRow {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []core.RawRow
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ";", 3)
		row := core.RawRow{DonorID: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			row.Amount = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			row.Date = strings.TrimSpace(parts[2])
		}
		out = append(out, row)
	}
	return out
}
