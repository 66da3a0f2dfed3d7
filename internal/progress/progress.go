// Package progress keeps the player's collection and learning progress.
// The record is persisted as one JSON blob through a key-value Backend and is
// merged over the default shape on load, so older saves pick up new fields.
package progress

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// StorageKey is the backend key the progress blob is stored under.
const StorageKey = "pixelIsland.gameState.v1"

// Backend is a key-value store of opaque blobs.
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
}

// FishRecord is the collection entry for one fish type.
type FishRecord struct {
	Seen   bool `json:"seen"`
	Caught bool `json:"caught"`
	Count  int  `json:"count"`
}

// Data is the persisted progress record.
type Data struct {
	FishCaught       int                   `json:"fishCaught"`
	FishCollection   map[string]FishRecord `json:"fishCollection"`
	CountingProgress int                   `json:"countingProgress"`
	LetterProgress   int                   `json:"letterProgress"`
	TotalPlayTime    float64               `json:"totalPlayTime"` // seconds
}

// Default returns the empty progress record.
func Default() Data {
	return Data{
		FishCollection: make(map[string]FishRecord),
	}
}

// FishStats summarizes the fish collection.
type FishStats struct {
	TotalTypes  int
	CaughtTypes int
	TotalCaught int
}

// Store is the in-memory progress record backed by a Backend.
// Backend failures are logged and ignored: progress keeps working in memory
// for the rest of the session even if it can no longer be saved.
// A Store is safe for concurrent use; sessions sharing a profile share one
// Store so their saves never overwrite each other.
type Store struct {
	backend Backend
	logger  *log.Logger

	mu   sync.Mutex
	data Data
}

// NewStore loads the record from backend, falling back to defaults when the
// key is missing or unreadable. A nil backend keeps progress in memory only.
func NewStore(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{backend: backend, logger: logger}
	s.data = s.load()
	return s
}

// load reads the blob and merges it over the default record.
func (s *Store) load() Data {
	data := Default()
	if s.backend == nil {
		return data
	}

	raw, ok, err := s.backend.Get(StorageKey)
	if err != nil {
		s.logger.Warn("failed to load game state", "error", err)
		return data
	}
	if !ok {
		return data
	}

	// Unmarshalling into the populated default keeps fields the blob lacks.
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn("failed to load game state", "error", fmt.Errorf("progress: decode: %w", err))
		return Default()
	}
	if data.FishCollection == nil {
		data.FishCollection = make(map[string]FishRecord)
	}
	return data
}

// save writes the current record. Errors are logged, never returned.
// The caller holds s.mu.
func (s *Store) save() {
	if s.backend == nil {
		return
	}
	raw, err := json.Marshal(s.data)
	if err != nil {
		s.logger.Warn("failed to save game state", "error", fmt.Errorf("progress: encode: %w", err))
		return
	}
	if err := s.backend.Set(StorageKey, raw); err != nil {
		s.logger.Warn("failed to save game state", "error", err)
	}
}

// AddFish records one catch of the given fish type.
func (s *Store) AddFish(typeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.data.FishCollection[typeID]
	rec.Seen = true
	rec.Caught = true
	rec.Count++
	s.data.FishCollection[typeID] = rec
	s.data.FishCaught++
	s.save()
}

// MarkFishSeen flags a fish type as encountered without counting a catch.
func (s *Store) MarkFishSeen(typeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.data.FishCollection[typeID]
	if rec.Seen {
		return
	}
	rec.Seen = true
	s.data.FishCollection[typeID] = rec
	s.save()
}

// IncrementCounting records one solved counting challenge.
func (s *Store) IncrementCounting() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.CountingProgress++
	s.save()
}

// IncrementLetter records one solved letter challenge.
func (s *Store) IncrementLetter() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.LetterProgress++
	s.save()
}

// AddPlayTime adds played seconds to the running total.
func (s *Store) AddPlayTime(seconds float64) {
	if seconds <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.TotalPlayTime += seconds
	s.save()
}

// FishStats returns a summary of the fish collection.
func (s *Store) FishStats() FishStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := FishStats{
		TotalTypes:  len(s.data.FishCollection),
		TotalCaught: s.data.FishCaught,
	}
	for _, rec := range s.data.FishCollection {
		if rec.Caught {
			stats.CaughtTypes++
		}
	}
	return stats
}

// CountingProgress returns the number of solved counting challenges.
func (s *Store) CountingProgress() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.CountingProgress
}

// LetterProgress returns the number of solved letter challenges.
func (s *Store) LetterProgress() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.LetterProgress
}

// CollectionEntry pairs a fish type with its record.
type CollectionEntry struct {
	TypeID string
	FishRecord
}

// Collection returns the fish collection sorted by type ID.
func (s *Store) Collection() []CollectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]CollectionEntry, 0, len(s.data.FishCollection))
	for id, rec := range s.data.FishCollection {
		entries = append(entries, CollectionEntry{TypeID: id, FishRecord: rec})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TypeID < entries[j].TypeID
	})
	return entries
}

// Snapshot returns a deep copy of the current record.
func (s *Store) Snapshot() Data {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.data
	out.FishCollection = make(map[string]FishRecord, len(s.data.FishCollection))
	for k, v := range s.data.FishCollection {
		out.FishCollection[k] = v
	}
	return out
}

// Reset replaces the record with defaults and saves it.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = Default()
	s.save()
}
