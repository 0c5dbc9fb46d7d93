package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"doacoes/internal/analytics"
	"doacoes/internal/core"
	"doacoes/internal/ledger"
	"doacoes/internal/log"
)

// ReportService runs one analytics pass: read the raw ledger from its
// source, normalize it, analyze it. The engine is pure; everything that
// can touch I/O or log lives here.
type ReportService struct {
	source ledger.Reader
	engine analytics.Config
}

func NewReportService(source ledger.Reader, engine analytics.Config) *ReportService {
	return &ReportService{
		source: source,
		engine: engine,
	}
}

// Generate produces the analytics result for the current ledger.
// Structural failures (unreadable source, malformed rows) abort the run;
// there is no partial result.
func (s *ReportService) Generate(ctx context.Context) (analytics.Result, error) {
	started := time.Now()

	rows, err := s.source.ReadRows(ctx)
	if err != nil {
		return analytics.Result{}, fmt.Errorf("read ledger rows: %w", err)
	}

	normalized, err := core.NormalizeLedger(rows)
	if err != nil {
		return analytics.Result{}, fmt.Errorf("normalize ledger: %w", err)
	}

	result, err := analytics.Analyze(ctx, normalized, s.engine)
	if err != nil {
		return analytics.Result{}, fmt.Errorf("analyze ledger: %w", err)
	}

	slog.InfoContext(ctx, "Analytics report generated",
		log.FieldComponent, log.ComponentReport,
		log.FieldRowCount, len(normalized),
		"unique_donors", result.Overall.UniqueDonors,
		"monthly_buckets", len(result.Monthly),
		"annual_buckets", len(result.Annual),
		log.FieldDuration, time.Since(started).Milliseconds())

	return result, nil
}

// RowCount returns the current number of rows in the ledger source.
func (s *ReportService) RowCount(ctx context.Context) (int, error) {
	rows, err := s.source.ReadRows(ctx)
	if err != nil {
		return 0, fmt.Errorf("read ledger rows: %w", err)
	}
	return len(rows), nil
}
