// Package oteladapters provides OpenTelemetry adapters for the aliasing sink interface.
// These adapters enable seamless integration with OpenTelemetry for users who want
// plug-and-play deprecation reporting without implementing the interfaces themselves.
package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/forgeworks/name-transition-go/aliasing"
)

const (
	attrCategory = "category"
	attrFile     = "file"
	attrLine     = "line"
)

// SlogSink implements aliasing.Sink using the OpenTelemetry slog bridge.
// This is the recommended implementation as it provides automatic trace correlation
// and works seamlessly with Go's standard log/slog package. Events are logged at
// warning level with category and call-site attributes.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a new sink using the OpenTelemetry slog bridge.
// It creates an OpenTelemetry-enabled logger with automatic trace correlation.
// The logger uses the global OpenTelemetry LoggerProvider.
func NewSlogSink(name string) *SlogSink {
	// Create OpenTelemetry slog handler with automatic trace correlation
	logger := otelslog.NewLogger(name)
	return &SlogSink{logger: logger}
}

// NewSlogSinkWithHandler creates a new sink using the provided slog.Handler.
// Note: This does NOT add OpenTelemetry trace correlation - it uses the handler as-is.
// For trace correlation, use NewSlogSink() instead.
// This function is provided for compatibility when you need to use a specific slog.Handler.
func NewSlogSinkWithHandler(handler slog.Handler) *SlogSink {
	// Use the provided handler directly - no OpenTelemetry integration
	logger := slog.New(handler)
	return &SlogSink{logger: logger}
}

// Notify logs the Deprecation Event at warning level.
func (s *SlogSink) Notify(event aliasing.Event) {
	args := []any{slog.String(attrCategory, event.Category.String())}

	if event.HasLocation {
		args = append(args,
			slog.String(attrFile, event.Location.File),
			slog.Int(attrLine, event.Location.Line),
		)
	}

	s.logger.Warn(event.Message, args...)
}

// NotifyContext logs the Deprecation Event at warning level with context,
// so the slog bridge can attach trace correlation from an active span.
func (s *SlogSink) NotifyContext(ctx context.Context, event aliasing.Event) {
	args := []any{slog.String(attrCategory, event.Category.String())}

	if event.HasLocation {
		args = append(args,
			slog.String(attrFile, event.Location.File),
			slog.Int(attrLine, event.Location.Line),
		)
	}

	s.logger.WarnContext(ctx, event.Message, args...)
}

// Ensure SlogSink implements aliasing.Sink.
var _ aliasing.Sink = (*SlogSink)(nil)
