// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and is shared by the CLI commands and the batch
// conversion service.
//
// # Run Correlation
//
// Batch runs are identified by a run ID. The WithRun helper attaches the ID
// to the log entry, ensuring that all logs related to one run can be
// correlated even when several input files are processed concurrently.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("catalog written")
//
//	// In a batch worker:
//	l := logger.WithRun(log, runID)
//	l.Error("parse failed", zap.Error(err))
package logger
