package webhook

import "strings"

// EventClass is the routing decision for an inbound provider event.
type EventClass int

const (
	// EventIrrelevant covers everything the pipeline ignores (call_started,
	// pings, unknown types). Irrelevant events are acknowledged, never errors.
	EventIrrelevant EventClass = iota
	// EventAnalyzed carries post-call analysis (sentiment, success, custom data).
	EventAnalyzed
	// EventFinal signals the call ended, without necessarily carrying analysis.
	EventFinal
)

func (c EventClass) String() string {
	switch c {
	case EventAnalyzed:
		return "analyzed"
	case EventFinal:
		return "final"
	default:
		return "irrelevant"
	}
}

// The provider has renamed its event types across API versions; both the
// snake_case and dotted spellings are live in the wild.
var (
	analyzedEvents = map[string]struct{}{
		"call_analyzed": {},
		"call.analyzed": {},
	}
	finalEvents = map[string]struct{}{
		"call_completed": {},
		"call.completed": {},
		"call_ended":     {},
		"call.ended":     {},
	}
)

// Classify maps a raw provider event-type string to an EventClass.
// Matching is case-insensitive and tolerant of surrounding whitespace.
// Classify never fails: anything unrecognized is EventIrrelevant.
func Classify(eventType string) EventClass {
	ev := strings.ToLower(strings.TrimSpace(eventType))
	if _, ok := analyzedEvents[ev]; ok {
		return EventAnalyzed
	}
	if _, ok := finalEvents[ev]; ok {
		return EventFinal
	}
	return EventIrrelevant
}
