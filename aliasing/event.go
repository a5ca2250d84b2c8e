package aliasing

import (
	"runtime"
)

// Category distinguishes the two classes of deprecation notifications.
//
// Module-level bindings fire at most once per process (on first access), so it is
// hard to predict in tests exactly where such a notification is raised. Usage of
// other legacy identifiers fires on every access. Keeping the categories separate
// lets tests and sink policies assert on each independently.
type Category int

const (
	// CategoryName marks usage of a legacy function, method, attribute or type name.
	CategoryName Category = iota + 1

	// CategoryModule marks the first pickup of a legacy module-level binding.
	CategoryModule
)

func (c Category) String() string {
	switch c {
	case CategoryName:
		return "name"
	case CategoryModule:
		return "module"
	default:
		return "unknown"
	}
}

// Location is a source-location hint attributing a deprecation notification to the
// call site that used the legacy name.
type Location struct {
	File string
	Line int
}

// Event is an ephemeral deprecation notification. It is handed to the process-wide
// Sink immediately and is not retained by this package.
type Event struct {
	Message     string
	Category    Category
	Location    Location
	HasLocation bool
}

// EmitNameUsage notifies the current sink about usage of a legacy name.
// The call site is attributed callerSkip frames above the caller of EmitNameUsage
// (0 means the immediate caller), falling back to an unlocated event when the
// runtime cannot resolve the frame.
func EmitNameUsage(message string, callerSkip int) {
	emit(Event{Message: message, Category: CategoryName}, callerSkip+1)
}

// EmitNameUsageAt notifies the current sink about usage of a legacy name with an
// explicit source location, for call sites that cannot be inferred from the stack.
func EmitNameUsageAt(message string, location Location) {
	CurrentSink().Notify(Event{
		Message:     message,
		Category:    CategoryName,
		Location:    location,
		HasLocation: location != Location{},
	})
}

// EmitModuleUsage notifies the current sink about the pickup of a legacy
// module-level binding, with an explicit source location (module bindings are
// typically announced from their registration site).
func EmitModuleUsage(message string, location Location) {
	CurrentSink().Notify(Event{
		Message:     message,
		Category:    CategoryModule,
		Location:    location,
		HasLocation: location != Location{},
	})
}

func emit(event Event, callerSkip int) {
	if _, file, line, ok := runtime.Caller(callerSkip + 1); ok {
		event.Location = Location{File: file, Line: line}
		event.HasLocation = true
	}

	CurrentSink().Notify(event)
}

// callerLocation resolves the source location callerSkip frames above the caller,
// returning a zero Location when the runtime cannot resolve the frame.
func callerLocation(callerSkip int) Location {
	if _, file, line, ok := runtime.Caller(callerSkip + 1); ok {
		return Location{File: file, Line: line}
	}

	return Location{}
}
