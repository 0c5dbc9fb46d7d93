package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"doacoes/internal/backend"
	"doacoes/internal/cli"
	"doacoes/internal/services"
)

func main() {
	outputPath := flag.String("output", "", "write the report to this file instead of stdout")
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to create ledger backend", "error", err, "backend", backendCfg.Type)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	reports := services.NewReportService(result.Backend, cfg.Engine())

	report, err := reports.Generate(ctx)
	if err != nil {
		logger.Error("Report generation failed", "error", err)
		os.Exit(1)
	}

	var payload []byte
	if *pretty {
		payload, err = json.MarshalIndent(report, "", "  ")
	} else {
		payload, err = json.Marshal(report)
	}
	if err != nil {
		logger.Error("Failed to encode report", "error", err)
		os.Exit(1)
	}

	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, append(payload, '\n'), 0644); err != nil {
			logger.Error("Failed to write report file", "error", err, "path", *outputPath)
			os.Exit(1)
		}
		logger.Info("Report written", "path", *outputPath, "bytes", len(payload))
		return
	}

	fmt.Println(string(payload))
}
