package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"doacoes/internal/amqp"
	"doacoes/internal/log"
	"doacoes/internal/services"
)

// ReportWorker turns report requests from the broker into published
// reports. It is stateless across requests; every request triggers a
// full recompute from the current stored ledger.
type ReportWorker struct {
	reports   *services.ReportService
	publisher *amqp.Client
}

func NewReportWorker(reports *services.ReportService, publisher *amqp.Client) *ReportWorker {
	return &ReportWorker{
		reports:   reports,
		publisher: publisher,
	}
}

// HandleReportRequest processes a single report request message from AMQP.
// Returning an error nacks the message for redelivery; requests are
// idempotent so a duplicate delivery just recomputes the same report.
func (w *ReportWorker) HandleReportRequest(ctx context.Context, msg *amqp.ReportRequestMessage) error {
	started := time.Now()

	slog.InfoContext(ctx, "Processing report request",
		log.FieldComponent, log.ComponentWorker,
		log.FieldRequestID, msg.RequestID,
		"requested_at", msg.Timestamp)

	result, err := w.reports.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate report for request %s: %w", msg.RequestID, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal report for request %s: %w", msg.RequestID, err)
	}

	if err := w.publisher.PublishReportReady(ctx, msg.RequestID, result.Overall.TotalDonations, payload); err != nil {
		return fmt.Errorf("publish report for request %s: %w", msg.RequestID, err)
	}

	slog.InfoContext(ctx, "Report published",
		log.FieldComponent, log.ComponentWorker,
		log.FieldRequestID, msg.RequestID,
		log.FieldRowCount, result.Overall.TotalDonations,
		log.FieldDuration, time.Since(started).Milliseconds())

	return nil
}
