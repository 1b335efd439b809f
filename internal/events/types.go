package events

import (
	"time"
)

type EventType string

const (
	MetadataUpdated EventType = "metadata.updated"
	ConfigReload    EventType = "config.reload"
)

type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Languages []string    `json:"languages,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType EventType) bool
}

type EventBus interface {
	Publish(event Event) error
	Subscribe(handler EventHandler) error
	Unsubscribe(handler EventHandler) error
	Start() error
	Stop() error
}
