// Package logger provides structured logging using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers. Loggers pick up the dispatch id and the active
// trace from a context:
//
//	log := logger.Get("session").WithContext(ctx)
//	log.Info("dispatch completed", logger.Fields(logger.FieldStatusCode, 200))
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
package logger
