// Package logging provides structured logging for the Gray Logic demos.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across both demo programs.
//
// # Features
//
//   - JSON or text output
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Size-based rotation when writing to a file (lumberjack)
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # json, text
//	  output: "stderr"   # stdout, stderr, file
//	  file:
//	    path: "./logs/graylogic-demos.log"
//	    max_size: 10
//	    max_backups: 3
//	    max_age: 28
//	    compress: true
//
// Stdout carries the demo output, so logs default to stderr.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "smarthouse", "1.0.0")
//	defer logger.Close()
//	logger.Info("device added", "name", "Device1")
package logging
