package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/starskey-io/starskey"

	"langsync/internal/events"
)

const (
	storageKey     = "frontend_translations.storage"
	storageVersion = 1
)

// persistedState is the on-disk value kept under storageKey.
type persistedState struct {
	Version    int   `json:"version"`
	Metadata   Blob  `json:"metadata"`
	LastUpdate int64 `json:"last_update"`
}

// Store holds the latest pushed metadata blob. There is exactly one live
// blob per store; Replace swaps it wholesale (last write wins) and the two
// read operations serve it back. All methods are safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	blob       Blob
	lastUpdate time.Time

	db  *starskey.Starskey // nil when running in memory only
	bus events.EventBus    // nil when nobody listens
}

// NewInMemory creates a store with no persistence. Used by tests and by
// callers that do not care about surviving restarts.
func NewInMemory(bus events.EventBus) *Store {
	return &Store{
		blob: Blob{},
		bus:  bus,
	}
}

// Open creates a store backed by a Starskey database under dataDir and
// loads any previously persisted blob.
func Open(dataDir string, bus events.EventBus) (*Store, error) {
	dbPath := filepath.Join(dataDir, "metadata")

	db, err := starskey.Open(&starskey.Config{
		Permission:        0755,
		Directory:         dbPath,
		FlushThreshold:    1024 * 1024,
		MaxLevel:          3,
		SizeFactor:        10,
		BloomFilter:       true,
		SuRF:              false,
		Logging:           false,
		Compression:       true,
		CompressionOption: starskey.SnappyCompression,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata store: %w", err)
	}

	s := &Store{
		blob: Blob{},
		db:   db,
		bus:  bus,
	}

	if err := s.load(); err != nil {
		// Corrupted or incompatible state starts the store empty; the next
		// push repopulates it.
		log.Warn("Failed to load persisted metadata, starting empty", "error", err)
	}

	log.Info("Metadata store opened", "path", dbPath, "languages", len(s.blob))

	return s, nil
}

func (s *Store) load() error {
	value, err := s.db.Get([]byte(storageKey))
	if err != nil {
		return err
	}
	if value == nil {
		return nil
	}

	var state persistedState
	if err := json.Unmarshal(value, &state); err != nil {
		return fmt.Errorf("failed to decode persisted state: %w", err)
	}

	if state.Version != storageVersion {
		return fmt.Errorf("unsupported storage version %d", state.Version)
	}

	s.blob = state.Metadata
	if s.blob == nil {
		s.blob = Blob{}
	}
	if state.LastUpdate > 0 {
		s.lastUpdate = time.Unix(state.LastUpdate, 0)
	}

	return nil
}

// Replace stores a newly pushed blob. The previous blob is discarded
// unconditionally; no merging, no conflict resolution. It reports whether
// the blob differed from the one already held. An unchanged push is a no-op
// and skips the persistence write.
func (s *Store) Replace(blob Blob) (bool, error) {
	if blob == nil {
		blob = Blob{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !Changed(s.blob, blob) {
		log.Debug("Translation metadata unchanged, skipping update")
		return false, nil
	}

	s.blob = blob
	s.lastUpdate = time.Now()

	if s.db != nil {
		state := persistedState{
			Version:    storageVersion,
			Metadata:   blob,
			LastUpdate: s.lastUpdate.Unix(),
		}
		data, err := json.Marshal(state)
		if err != nil {
			return true, fmt.Errorf("failed to encode metadata: %w", err)
		}
		if err := s.db.Put([]byte(storageKey), data); err != nil {
			return true, fmt.Errorf("failed to persist metadata: %w", err)
		}
	}

	log.Info("Translation metadata updated", "languages", len(blob))

	if s.bus != nil {
		err := s.bus.Publish(events.Event{
			Type:      events.MetadataUpdated,
			Languages: s.languageCodes(),
		})
		if err != nil {
			log.Debug("Failed to publish metadata event", "error", err)
		}
	}

	return true, nil
}

// All returns a copy of the full current blob, or an empty mapping when
// nothing has been pushed yet. Mutating the copy does not touch the store.
func (s *Store) All() Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(Blob, len(s.blob))
	for lang, entry := range s.blob {
		cp := make(LanguageEntry, len(entry))
		for k, v := range entry {
			cp[k] = v
		}
		out[lang] = cp
	}
	return out
}

// Language looks up a single language entry. The second return value is
// false when the language is absent or nothing has been pushed yet. The
// returned entry is a copy.
func (s *Store) Language(code string) (LanguageEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.blob[code]
	if !ok {
		return nil, false
	}

	cp := make(LanguageEntry, len(entry))
	for k, v := range entry {
		cp[k] = v
	}
	return cp, true
}

// LastUpdate returns when the blob was last replaced. The zero time means
// no push has ever been accepted.
func (s *Store) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// languageCodes must be called with the lock held.
func (s *Store) languageCodes() []string {
	codes := make([]string, 0, len(s.blob))
	for lang := range s.blob {
		codes = append(codes, lang)
	}
	return codes
}

// Close releases the underlying database, if any.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	log.Debug("Closing metadata store")
	return s.db.Close()
}
