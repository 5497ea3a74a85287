package progress

import (
	"fmt"
	"strings"
	"time"
)

// Class is the display classification of one event.
type Class string

const (
	ClassInfo    Class = "info"
	ClassSuccess Class = "success"
	ClassError   Class = "error"
)

// Event is one entry in the run log. The external display surface paces and
// animates presentation; no timing semantics live here.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Class     Class     `json:"class"`
}

// Classify derives the class from the message text alone. Callers are
// expected to pass already-correct wording.
func Classify(msg string) Class {
	l := strings.ToLower(msg)
	switch {
	case strings.Contains(l, "error"):
		return ClassError
	case strings.Contains(l, "success"):
		return ClassSuccess
	default:
		return ClassInfo
	}
}

// Log is an append-only ordered event log for one pipeline run.
type Log struct {
	events []Event
}

// Append records a message, classifying it from its text.
func (l *Log) Append(msg string) {
	l.events = append(l.events, Event{
		Timestamp: time.Now().UTC(),
		Message:   msg,
		Class:     Classify(msg),
	})
}

// Appendf is Append with fmt formatting.
func (l *Log) Appendf(format string, args ...interface{}) {
	l.Append(fmt.Sprintf(format, args...))
}

// Events returns the log in append order.
func (l *Log) Events() []Event {
	return l.events
}
