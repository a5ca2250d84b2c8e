package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/log"

	"github.com/forgeworks/name-transition-go/aliasing"
)

// OTelLogSink implements aliasing.Sink using the OpenTelemetry logging API directly.
// This provides more control over the logging implementation but requires more setup.
// Use this if you need direct control over OpenTelemetry log records.
type OTelLogSink struct {
	logger log.Logger
}

// NewOTelLogSink creates a new sink using the OpenTelemetry logging API directly.
// This gives you more control over log record creation but requires manual setup of the logger.
func NewOTelLogSink(logger log.Logger) *OTelLogSink {
	return &OTelLogSink{logger: logger}
}

// Notify emits the Deprecation Event as an OpenTelemetry log record at warning severity.
func (s *OTelLogSink) Notify(event aliasing.Event) {
	s.NotifyContext(context.Background(), event)
}

// NotifyContext emits the Deprecation Event as an OpenTelemetry log record at warning
// severity, carrying the given context for trace correlation.
func (s *OTelLogSink) NotifyContext(ctx context.Context, event aliasing.Event) {
	record := log.Record{}
	record.SetSeverity(log.SeverityWarn)
	record.SetBody(log.StringValue(event.Message))
	record.AddAttributes(log.String(attrCategory, event.Category.String()))

	if event.HasLocation {
		record.AddAttributes(
			log.String(attrFile, event.Location.File),
			log.Int(attrLine, event.Location.Line),
		)
	}

	s.logger.Emit(ctx, record)
}

// Ensure OTelLogSink implements aliasing.Sink.
var _ aliasing.Sink = (*OTelLogSink)(nil)
