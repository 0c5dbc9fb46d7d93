package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doacoes/internal/amqp"
	"doacoes/internal/cli"
	"doacoes/internal/services"
	gsheet "doacoes/internal/sheets/google"
	"doacoes/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting doacoes-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The worker always reads from local SQLite; the importer keeps it in
	// sync with the shared sheet when one is configured.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var importer *services.ImportService
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

		publisher, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRequestQueue, cfg.AMQPResultQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP publisher", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()

		importer = services.NewImportService(sheetsClient, repo, publisher, services.ImportServiceConfig{
			PollInterval: cfg.ImportInterval,
			BatchSize:    cfg.ImportBatchSize,
		})
		if err := importer.Start(ctx); err != nil {
			logger.Error("Failed to start import service", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("Google Sheets import disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	reports := services.NewReportService(repo, cfg.Engine())

	// Consume report requests until shutdown, redialing on broker drops.
	consumeErr := make(chan error, 1)
	go func() {
		consumeErr <- amqp.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange,
			cfg.AMQPRequestQueue, cfg.AMQPResultQueue,
			func(client *amqp.Client) func(*amqp.ReportRequestMessage) error {
				w := worker.NewReportWorker(reports, client)
				return func(msg *amqp.ReportRequestMessage) error {
					return w.HandleReportRequest(ctx, msg)
				}
			})
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case err := <-consumeErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if importer != nil {
		if err := importer.Stop(shutdownCtx); err != nil {
			logger.Warn("Import service stop failed", "error", err)
		}
	}

	logger.Info("Worker shutdown complete")
}
