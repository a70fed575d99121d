// Package logging provides structured logging configuration for dsynth.
//
// This package wraps log/slog so the engine, the stores, the HTTP API and
// the CLI all log the same way. It supports configurable log levels and
// output formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "addr", ":8000")
//	logger.Debug("field fallback", "field", "age", "error", err)
//
// # Log Levels
//
//   - Debug: expected fallbacks (failed expressions, unknown custom types)
//   - Info: general operational information
//   - Warn: recovered panics and conditions that should be addressed
//   - Error: operations that failed for the caller
//
// # Output Formats
//
//   - Text: Human-readable format for development
//   - JSON: Structured format for log aggregation systems
//
// # Integration
//
// Components accept a *slog.Logger through an option or setter. If no
// logger is provided they use logging.Nop().
package logging
