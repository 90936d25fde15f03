package logger

import (
	"io"
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Debug("msg", logger.Error(err)) without explicit nil checks.

// Discard returns a logger that drops every record.
// Components use it as their default so logging stays opt-in.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ============================================================================
// Error Handling
// ============================================================================

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// ============================================================================
// Broadcasting
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// BroadcasterID identifies a broadcaster instance across log lines.
func BroadcasterID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("broadcaster_id", id)
}

// Name creates an attribute for a human readable broadcaster name.
func Name(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("name", name)
}

// Slot creates an attribute for a subscriber slot index.
func Slot(index int) slog.Attr {
	return slog.Int("slot", index)
}

// Observers creates an attribute for the number of active subscribers.
func Observers(n int) slog.Attr {
	return slog.Int("observers", n)
}

// ChannelKind creates an attribute for the subscriber channel kind ("bounded" or "unbounded").
func ChannelKind(kind string) slog.Attr {
	return slog.String("channel", kind)
}

// Capacity creates an attribute for a bounded channel capacity.
// Zero means unbounded and yields an empty Attr.
func Capacity(n int) slog.Attr {
	if n <= 0 {
		return slog.Attr{}
	}
	return slog.Int("capacity", n)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
