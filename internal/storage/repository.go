package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"doacoes/internal/core"
	"doacoes/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores the raw donation ledger. Rows keep their source
// form (amount and date as text); coercion is the normalizer's job, so a
// bad import surfaces as a MalformedLedgerError at analysis time, not as
// silently dropped rows.
type SQLiteRepository struct {
	db *sql.DB
}

// Interface conformance for the ledger ports.
var (
	_ ledger.Reader = (*SQLiteRepository)(nil)
	_ ledger.Writer = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.Writer.
func (r *SQLiteRepository) Append(ctx context.Context, row core.RawRow) (string, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO donations (donor_id, amount, donated_on) VALUES (?, ?, ?)`,
		row.DonorID, row.Amount, row.Date)
	if err != nil {
		return "", fmt.Errorf("insert donation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("donation id: %w", err)
	}

	slog.DebugContext(ctx, "Donation row saved to SQLite",
		"id", id,
		"donor_id", row.DonorID,
		"donated_on", row.Date)

	return strconv.FormatInt(id, 10), nil
}

// ReplaceAll swaps the stored ledger for the given snapshot in a single
// transaction: either every row lands or the previous snapshot stays
// untouched. Inserts are chunked into multi-row statements of at most
// batchSize rows to stay under SQLite's bind-variable limit.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, rows []core.RawRow, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = len(rows)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin snapshot replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM donations`); err != nil {
		return 0, fmt.Errorf("clear donations: %w", err)
	}

	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("(?, ?, ?), ", len(chunk)), ", ")
		args := make([]any, 0, len(chunk)*3)
		for _, row := range chunk {
			args = append(args, row.DonorID, row.Amount, row.Date)
		}
		query := `INSERT INTO donations (donor_id, amount, donated_on) VALUES ` + placeholders
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("insert donation chunk at row %d: %w", start, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot replace: %w", err)
	}

	slog.InfoContext(ctx, "Donation snapshot replaced", "row_count", len(rows))
	return len(rows), nil
}

// ReadRows implements ledger.Reader. Rows come back in insertion order;
// the normalizer owns date sorting.
func (r *SQLiteRepository) ReadRows(ctx context.Context) ([]core.RawRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT donor_id, amount, donated_on FROM donations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select donations: %w", err)
	}
	defer rows.Close()

	var out []core.RawRow
	for rows.Next() {
		var row core.RawRow
		if err := rows.Scan(&row.DonorID, &row.Amount, &row.Date); err != nil {
			return nil, fmt.Errorf("scan donation row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return out, nil
}

// CountRows returns the number of stored donation rows.
func (r *SQLiteRepository) CountRows(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM donations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count donations: %w", err)
	}
	return count, nil
}
