package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is anything an aggregate records for the outbox. GetStreamName maps
// the event onto its per-aggregate outbox stream.
type Event interface {
	GetEventHeader() Header
	GetStreamName() string
}

// Header carries the identity and metadata shared by every event. Metadata
// holds the trace context injected at publish time.
type Header struct {
	ID        uuid.UUID
	Timestamp time.Time
	Metadata  map[string]string
}

func (e *Header) GetEventHeader() Header {
	return *e
}

func NewEventHeader() Header {
	return Header{ID: uuid.New(), Timestamp: time.Now()}
}

// Recorder collects domain events on an aggregate until the repository
// publishes them in the same transaction as the aggregate write.
type Recorder struct {
	events []Event
}

func (e *Recorder) AddEvent(events ...Event) {
	if e == nil {
		return
	}
	e.events = append(e.events, events...)
}

func (e *Recorder) GetUncommittedEvents() []Event {
	if e == nil {
		return nil
	}
	return e.events
}

func (e *Recorder) MarkEventsAsCommitted() {
	if e == nil {
		return
	}
	e.events = []Event{}
}
