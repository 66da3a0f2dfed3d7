package progress

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestStoreDefaults(t *testing.T) {
	s := NewStore(NewMemoryBackend(), quietLogger())

	stats := s.FishStats()
	if stats != (FishStats{}) {
		t.Errorf("FishStats() on empty store = %+v, expected zero", stats)
	}
	if s.CountingProgress() != 0 || s.LetterProgress() != 0 {
		t.Error("new store should have no challenge progress")
	}
}

func TestStoreAddFish(t *testing.T) {
	s := NewStore(NewMemoryBackend(), quietLogger())

	s.AddFish("fish_blue")
	s.AddFish("fish_blue")
	s.AddFish("angelfish")

	stats := s.FishStats()
	if stats.TotalCaught != 3 {
		t.Errorf("TotalCaught = %d, expected 3", stats.TotalCaught)
	}
	if stats.TotalTypes != 2 || stats.CaughtTypes != 2 {
		t.Errorf("types = %d/%d, expected 2/2", stats.CaughtTypes, stats.TotalTypes)
	}

	col := s.Collection()
	if len(col) != 2 || col[0].TypeID != "angelfish" || col[1].TypeID != "fish_blue" {
		t.Fatalf("Collection() = %+v, expected angelfish then fish_blue", col)
	}
	if col[1].Count != 2 || !col[1].Caught || !col[1].Seen {
		t.Errorf("fish_blue record = %+v, expected seen+caught with count 2", col[1].FishRecord)
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	backend := NewMemoryBackend()

	s1 := NewStore(backend, quietLogger())
	s1.AddFish("fish_red")
	s1.IncrementCounting()
	s1.IncrementLetter()
	s1.IncrementLetter()
	s1.AddPlayTime(12.5)

	s2 := NewStore(backend, quietLogger())
	if got := s2.FishStats().TotalCaught; got != 1 {
		t.Errorf("reloaded TotalCaught = %d, expected 1", got)
	}
	if s2.CountingProgress() != 1 || s2.LetterProgress() != 2 {
		t.Errorf("reloaded challenge progress = %d/%d, expected 1/2", s2.CountingProgress(), s2.LetterProgress())
	}
	if got := s2.Snapshot().TotalPlayTime; got != 12.5 {
		t.Errorf("reloaded TotalPlayTime = %v, expected 12.5", got)
	}
}

func TestStoreConcurrentWriters(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend, quietLogger())

	const writers, catches = 4, 25
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range catches {
				s.AddFish("fish_green")
				s.IncrementCounting()
			}
		}()
	}
	wg.Wait()

	reloaded := NewStore(backend, quietLogger())
	if got := reloaded.FishStats().TotalCaught; got != writers*catches {
		t.Errorf("reloaded TotalCaught = %d, expected %d", got, writers*catches)
	}
	if got := reloaded.CountingProgress(); got != writers*catches {
		t.Errorf("reloaded CountingProgress = %d, expected %d", got, writers*catches)
	}
}

func TestStoreMergesOverDefaults(t *testing.T) {
	backend := NewMemoryBackend()
	// An old save without the collection map or letter progress
	if err := backend.Set(StorageKey, []byte(`{"fishCaught": 4, "countingProgress": 2}`)); err != nil {
		t.Fatal(err)
	}

	s := NewStore(backend, quietLogger())

	if got := s.FishStats().TotalCaught; got != 4 {
		t.Errorf("TotalCaught = %d, expected 4", got)
	}
	if s.CountingProgress() != 2 {
		t.Errorf("CountingProgress = %d, expected 2", s.CountingProgress())
	}

	// Missing map must be usable
	s.AddFish("crab_blue")
	if got := s.FishStats().TotalCaught; got != 5 {
		t.Errorf("TotalCaught after AddFish = %d, expected 5", got)
	}
}

func TestStoreCorruptBlobFallsBackToDefaults(t *testing.T) {
	backend := NewMemoryBackend()
	if err := backend.Set(StorageKey, []byte(`{not json`)); err != nil {
		t.Fatal(err)
	}

	s := NewStore(backend, quietLogger())
	if s.FishStats() != (FishStats{}) {
		t.Error("corrupt blob should load as defaults")
	}
}

type failingBackend struct{ sets int }

func (f *failingBackend) Get(string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func (f *failingBackend) Set(string, []byte) error {
	f.sets++
	return errors.New("disk on fire")
}

func TestStoreSurvivesBackendFailures(t *testing.T) {
	backend := &failingBackend{}
	s := NewStore(backend, quietLogger())

	s.AddFish("fish_green")
	s.IncrementCounting()

	if backend.sets != 2 {
		t.Errorf("expected 2 save attempts, got %d", backend.sets)
	}
	if s.FishStats().TotalCaught != 1 || s.CountingProgress() != 1 {
		t.Error("in-memory progress should keep working when saves fail")
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := NewStore(nil, quietLogger())
	s.AddFish("fish_blue")

	snap := s.Snapshot()
	snap.FishCollection["fish_blue"] = FishRecord{Count: 100}

	if s.Collection()[0].Count != 1 {
		t.Error("mutating a snapshot must not change the store")
	}
}

func TestStoreReset(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend, quietLogger())
	s.AddFish("fish_blue")
	s.IncrementLetter()

	s.Reset()

	raw, ok, err := backend.Get(StorageKey)
	if err != nil || !ok {
		t.Fatalf("Get after Reset: ok=%v err=%v", ok, err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	if data.FishCaught != 0 || data.LetterProgress != 0 || len(data.FishCollection) != 0 {
		t.Errorf("saved blob after Reset = %+v, expected defaults", data)
	}
}

func TestStoreMarkFishSeen(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend, quietLogger())

	s.MarkFishSeen("angelfish")
	s.MarkFishSeen("angelfish")

	stats := s.FishStats()
	if stats.TotalTypes != 1 || stats.CaughtTypes != 0 || stats.TotalCaught != 0 {
		t.Errorf("FishStats after MarkFishSeen = %+v", stats)
	}
	if backend.Writes() != 1 {
		t.Errorf("second MarkFishSeen should not save again, writes = %d", backend.Writes())
	}

	s.AddFish("angelfish")
	if got := s.FishStats().CaughtTypes; got != 1 {
		t.Errorf("CaughtTypes after catching a seen fish = %d, expected 1", got)
	}
}
