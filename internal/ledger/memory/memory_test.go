package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"doacoes/internal/core"
)

func TestMemoryStoreAppendAndRead(t *testing.T) {
	s := New([]core.RawRow{{DonorID: "a", Amount: "10", Date: "2023-01-05"}})

	ref, err := s.Append(context.Background(), core.RawRow{DonorID: "b", Amount: "20", Date: "2023-01-06"})
	if err != nil || ref != "mem:2" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	rows, err := s.ReadRows(context.Background())
	if err != nil || len(rows) != 2 {
		t.Fatalf("unexpected read: rows=%v err=%v", rows, err)
	}
	if rows[0].DonorID != "a" || rows[1].DonorID != "b" {
		t.Fatalf("insertion order lost: %v", rows)
	}

	// the returned slice is a copy
	rows[0].DonorID = "mutated"
	again, _ := s.ReadRows(context.Background())
	if again[0].DonorID != "a" {
		t.Fatalf("ReadRows must return a copy")
	}
}

func TestNewFromFileSeeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed_donations.txt")
	content := "# donor;amount;date\na;100;2023-01-05\n\nb;50,25;05/01/2023\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	s := NewFromFile(path)
	rows, err := s.ReadRows(context.Background())
	if err != nil || len(rows) != 2 {
		t.Fatalf("unexpected rows: %v err=%v", rows, err)
	}
	if rows[1].DonorID != "b" || rows[1].Amount != "50,25" || rows[1].Date != "05/01/2023" {
		t.Fatalf("row parsed wrong: %+v", rows[1])
	}
}

func TestNewFromFileMissing(t *testing.T) {
	s := NewFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	rows, err := s.ReadRows(context.Background())
	if err != nil || len(rows) != 0 {
		t.Fatalf("missing file must yield empty store: rows=%v err=%v", rows, err)
	}
}
