package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"doacoes/internal/ledger"
	"doacoes/internal/log"
	"doacoes/internal/storage"
)

// ReportRequestPublisher announces that the stored ledger changed and a
// fresh report should be generated. *amqp.Client satisfies it; tests use
// a stub.
type ReportRequestPublisher interface {
	PublishReportRequest(ctx context.Context, requestID string) error
}

// ImportServiceConfig holds configuration for the periodic importer.
type ImportServiceConfig struct {
	// PollInterval is how often to re-import the source ledger (default: 1h)
	PollInterval time.Duration

	// BatchSize is the max number of rows per insert statement inside the
	// snapshot-replace transaction (default: 500)
	BatchSize int
}

// DefaultImportServiceConfig returns sensible defaults
func DefaultImportServiceConfig() ImportServiceConfig {
	return ImportServiceConfig{
		PollInterval: 1 * time.Hour,
		BatchSize:    500,
	}
}

// ImportService copies the donation ledger from an external source (the
// shared Google Sheet) into local SQLite, then asks for a report refresh.
// Each run is a full snapshot replace: either the new snapshot lands
// completely or the old one stays.
type ImportService struct {
	source    ledger.Reader
	store     *storage.SQLiteRepository
	publisher ReportRequestPublisher
	config    ImportServiceConfig

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewImportService creates a new import service. The publisher may be nil
// when no broker is configured; imports then run without announcements.
func NewImportService(
	source ledger.Reader,
	store *storage.SQLiteRepository,
	publisher ReportRequestPublisher,
	config ImportServiceConfig,
) *ImportService {
	return &ImportService{
		source:    source,
		store:     store,
		publisher: publisher,
		config:    config,
	}
}

// Start begins the periodic import loop. Returns an error if already running.
func (s *ImportService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("import service is already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.runLoop(ctx)

	slog.InfoContext(ctx, "Import service started",
		"poll_interval", s.config.PollInterval,
		"batch_size", s.config.BatchSize)

	return nil
}

// Stop gracefully stops the loop and waits for completion.
func (s *ImportService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	close(s.stopCh)

	select {
	case <-s.doneCh:
		slog.InfoContext(ctx, "Import service stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Import service stop timed out")
		return ctx.Err()
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return nil
}

// IsRunning returns whether the loop is currently running
func (s *ImportService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ImportService) runLoop(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	// Import immediately on startup
	if _, err := s.RunOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Initial ledger import failed", "error", err)
	}

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Ledger import failed", "error", err)
			}
		}
	}
}

// RunOnce performs a single full import and returns the number of rows
// written. When the row count changes a report request is published.
func (s *ImportService) RunOnce(ctx context.Context) (int, error) {
	started := time.Now()

	rows, err := s.source.ReadRows(ctx)
	if err != nil {
		return 0, fmt.Errorf("read source ledger: %w", err)
	}

	previous, err := s.store.CountRows(ctx)
	if err != nil {
		return 0, fmt.Errorf("count stored rows: %w", err)
	}

	written, err := s.store.ReplaceAll(ctx, rows, s.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("replace stored ledger: %w", err)
	}

	slog.InfoContext(ctx, "Ledger imported",
		log.FieldComponent, log.ComponentImport,
		log.FieldRowCount, written,
		"previous_count", previous,
		log.FieldDuration, time.Since(started).Milliseconds())

	if s.publisher != nil && int64(written) != previous {
		requestID := uuid.New().String()
		if err := s.publisher.PublishReportRequest(ctx, requestID); err != nil {
			// The snapshot is already stored; the next poll will announce it.
			slog.WarnContext(ctx, "Failed to publish report request",
				log.NewFields().WithRequestID(requestID).WithError(err).ToSlice()...)
		}
	}

	return written, nil
}
