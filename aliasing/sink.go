package aliasing

import (
	"log"
	"sync/atomic"
)

const (
	logAttrCategory = "category"
	logAttrFile     = "file"
	logAttrLine     = "line"
)

// Logger interface for deprecation reporting and operational warnings.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Sink receives Deprecation Events and decides how to surface them: log them,
// ignore them, or escalate to a hard failure. That decision is external policy;
// this package only guarantees that exactly one sink is active at a time and that
// every legacy-name use reaches it synchronously. A sink that blocks or panics
// does so in the caller of the aliased symbol.
type Sink interface {
	Notify(event Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Notify(Event) {}

type sinkBox struct {
	sink Sink
}

var currentSink atomic.Value // holds sinkBox

func init() {
	SetSink(NewLoggerSink(standardLogger{}))
}

// SetSink installs the process-wide notification sink, fully replacing the previous
// one. There is no chaining: a sink that wants to delegate to its predecessor must
// capture CurrentSink() before calling SetSink. Passing nil installs a NopSink.
// Safe to call repeatedly and from any goroutine.
func SetSink(sink Sink) {
	if sink == nil {
		sink = NopSink{}
	}

	currentSink.Store(sinkBox{sink: sink})
}

// CurrentSink returns the currently installed sink.
func CurrentSink() Sink {
	return currentSink.Load().(sinkBox).sink
}

// LoggerSink surfaces Deprecation Events through a Logger at warning level.
// It is the default sink: deprecation notifications must be visible out of the box,
// not silently dropped until someone opts in.
type LoggerSink struct {
	logger Logger
}

// NewLoggerSink creates a LoggerSink for the given Logger.
func NewLoggerSink(logger Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Notify implements the Sink interface.
func (s *LoggerSink) Notify(event Event) {
	args := []any{logAttrCategory, event.Category.String()}

	if event.HasLocation {
		args = append(args, logAttrFile, event.Location.File, logAttrLine, event.Location.Line)
	}

	s.logger.Warn(event.Message, args...)
}

// standardLogger backs the default sink with the standard library logger, keeping
// the core free of third-party imports. Structured logging backends plug in through
// the Logger interface or the adapters in the oteladapters package.
type standardLogger struct{}

func (standardLogger) Debug(msg string, args ...any) { logPrint("DEBUG", msg, args) }
func (standardLogger) Info(msg string, args ...any)  { logPrint("INFO", msg, args) }
func (standardLogger) Warn(msg string, args ...any)  { logPrint("WARN", msg, args) }
func (standardLogger) Error(msg string, args ...any) { logPrint("ERROR", msg, args) }

func logPrint(level string, msg string, args []any) {
	if len(args) == 0 {
		log.Printf("%s %s", level, msg)
		return
	}

	log.Printf("%s %s %v", level, msg, args)
}
