package main

import (
	"encoding/json"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/rawblock/washtrade-engine/internal/config"
	"github.com/rawblock/washtrade-engine/internal/engine"
	"github.com/rawblock/washtrade-engine/internal/logger"
	"github.com/rawblock/washtrade-engine/internal/metrics"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Batch entrypoint: load a transfer batch from a JSON file, run one
// analysis, write the report to stdout. Alerting, severity triage, and
// persistence live in the downstream reporting services.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	batchPath := cfg.App.BatchPath
	if len(os.Args) > 1 {
		batchPath = os.Args[1]
	} else if env := os.Getenv("BATCH_FILE"); env != "" {
		batchPath = env
	}

	records, err := loadBatch(batchPath)
	if err != nil {
		zlog.Fatal("failed to load transfer batch", zap.String("path", batchPath), zap.Error(err))
	}
	zlog.Info("transfer batch loaded", zap.String("path", batchPath), zap.Int("records", len(records)))

	analyzer := engine.New(cfg, zlog, metrics.NewTracker())
	report, err := analyzer.Analyze(records)
	if err != nil {
		zlog.Fatal("analysis failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		zlog.Fatal("failed to write report", zap.Error(err))
	}
}

// loadBatch reads a JSON array of transfer records.
func loadBatch(path string) ([]models.TransferRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []models.TransferRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
