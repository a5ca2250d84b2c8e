package testdoubles

import (
	"sync"

	"github.com/forgeworks/name-transition-go/aliasing"
)

// SinkSpy is a Sink implementation that captures Deprecation Events for testing.
// It records every notification in order and offers per-category queries so tests
// can assert independently on name-usage and module-usage notifications.
type SinkSpy struct {
	mu     sync.Mutex
	events []aliasing.Event
}

// NewSinkSpy creates a new SinkSpy instance.
func NewSinkSpy() *SinkSpy {
	return &SinkSpy{}
}

// Notify implements the Sink interface for testing.
func (s *SinkSpy) Notify(event aliasing.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
}

// Events returns a copy of all recorded events in notification order.
func (s *SinkSpy) Events() []aliasing.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]aliasing.Event(nil), s.events...)
}

// EventsByCategory returns a copy of the recorded events of the given category.
func (s *SinkSpy) EventsByCategory(category aliasing.Category) []aliasing.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filtered []aliasing.Event
	for _, event := range s.events {
		if event.Category == category {
			filtered = append(filtered, event)
		}
	}

	return filtered
}

// CountByCategory returns the number of recorded events of the given category.
func (s *SinkSpy) CountByCategory(category aliasing.Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, event := range s.events {
		if event.Category == category {
			count++
		}
	}

	return count
}

// TotalCount returns the number of recorded events across all categories.
func (s *SinkSpy) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.events)
}

// HasMessage checks if an event with the given message was recorded.
func (s *SinkSpy) HasMessage(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range s.events {
		if event.Message == message {
			return true
		}
	}

	return false
}

// LastEvent returns the most recently recorded event, if any.
func (s *SinkSpy) LastEvent() (aliasing.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) == 0 {
		return aliasing.Event{}, false
	}

	return s.events[len(s.events)-1], true
}

// Reset clears all recorded events.
func (s *SinkSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = s.events[:0]
}

// Compile-time check to ensure SinkSpy implements the Sink interface.
var _ aliasing.Sink = (*SinkSpy)(nil)
