// Package logger provides a structured logging facility based on Zap.
//
// Batch runs log one line per created link and a summary per feature type,
// so the output format matters: json for schedulers that ship logs, console
// for operators running the CLI by hand.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Linking started", zap.String("kind", "osm"))
//
//	// In a request handler:
//	l := logger.WithRequestID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
