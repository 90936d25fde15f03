// Package logger provides structured logging helpers built on Go's standard slog package.
//
// Helpers follow the empty Attr pattern: passing a nil error or an empty
// identifier yields slog.Attr{}, which slog silently drops. Call sites never
// need nil checks.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/beacon/core/logger"
//
//	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//
//	log.Debug("subscriber reclaimed",
//		logger.Component("broadcast"),
//		logger.Slot(3),
//		logger.Observers(7),
//	)
//
//	log.Warn("slow consumer",
//		logger.ChannelKind("bounded"),
//		logger.Capacity(16),
//		logger.Error(err),
//	)
//
// # Disabling Logging
//
// Components in this module default to a discarding logger:
//
//	b := broadcast.New[Event](broadcast.WithLogger(logger.Discard()))
package logger
