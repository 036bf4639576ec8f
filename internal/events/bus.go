package events

// EventKind represents the type of change notification produced after a
// successful entry mutation.
type EventKind string

const (
	EventEntrySaved   EventKind = "entry_saved"
	EventEntryDeleted EventKind = "entry_deleted"
)

// Event signals that an actor's entry set changed. Consumers (the dashboard,
// any cached view) must re-fetch; only identifiers are carried.
type Event struct {
	Kind    EventKind
	ActorID string
	EntryID string
	Date    string // set for saves, empty for deletes
}

// Bus is a lightweight in-process pub-sub implementation backed by a buffered channel.
type Bus struct {
	ch chan Event
}

// NewBus creates a bus with the given buffer size.
func NewBus(buffer int) *Bus {
	return &Bus{ch: make(chan Event, buffer)}
}

// Publish attempts to enqueue the event without blocking.
// Returns true if published, false if the buffer is full. A dropped
// notification is tolerable: the next read is a full recompute anyway.
func (b *Bus) Publish(evt Event) bool {
	if b == nil {
		return false
	}
	select {
	case b.ch <- evt:
		return true
	default:
		return false
	}
}

// Subscribe returns a read-only channel for consumers.
func (b *Bus) Subscribe() <-chan Event {
	return b.ch
}
