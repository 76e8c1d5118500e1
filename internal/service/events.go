package service

// EventType defines the type of event
type EventType string

const (
	EventRecordCreated   EventType = "record_created"
	EventRecordUpdated   EventType = "record_updated"
	EventRecordDeleted   EventType = "record_deleted"
	EventRecordsImported EventType = "records_imported"
	EventSettingsUpdated EventType = "settings_updated"
)

// Event is one store mutation. Payload is a RecordEvent for the record_*
// types, an ImportResult for records_imported and a SettingsEvent for
// settings_updated.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// RecordEvent identifies the record a mutation touched. Changes is set
// only for record_updated.
type RecordEvent struct {
	AID     string        `json:"aid"`
	Name    string        `json:"name"`
	Changes []FieldChange `json:"changes,omitempty"`
}

// SettingsEvent names the setting that changed; values are not carried.
type SettingsEvent struct {
	Key string `json:"key"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.subscribers = append(eb.subscribers, ch)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	if eb == nil {
		return
	}
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}
