package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"langsync/internal/events"
)

// ActivityMonitor subscribes to the event bus and keeps counters over the
// metadata activity since start. The health endpoint reads it.
type ActivityMonitor struct {
	mu sync.RWMutex

	pushes        int
	lastLanguages []string
	lastPush      time.Time
	configReloads int
}

func NewActivityMonitor() *ActivityMonitor {
	return &ActivityMonitor{}
}

func (m *ActivityMonitor) CanHandle(eventType events.EventType) bool {
	return eventType == events.MetadataUpdated || eventType == events.ConfigReload
}

func (m *ActivityMonitor) Handle(event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch event.Type {
	case events.MetadataUpdated:
		m.pushes++
		m.lastLanguages = event.Languages
		m.lastPush = event.Timestamp
		log.Debug("Metadata push recorded",
			"pushes", m.pushes,
			"languages", len(event.Languages))
	case events.ConfigReload:
		m.configReloads++
		log.Debug("Config reload recorded", "reloads", m.configReloads)
	}

	return nil
}

// Pushes returns how many changed metadata pushes have been accepted since
// start.
func (m *ActivityMonitor) Pushes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pushes
}

// LastLanguages returns the language codes of the most recent accepted push.
func (m *ActivityMonitor) LastLanguages() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.lastLanguages))
	copy(out, m.lastLanguages)
	return out
}

// ConfigReloads returns how many config reloads have been applied since
// start.
func (m *ActivityMonitor) ConfigReloads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.configReloads
}
