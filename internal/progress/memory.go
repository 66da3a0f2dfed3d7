package progress

// MemoryBackend is a Backend kept in a map. Used for tests and for sessions
// that run without a database.
type MemoryBackend struct {
	values map[string][]byte
	writes int
}

// NewMemoryBackend creates an empty memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Get implements Backend.
func (m *MemoryBackend) Get(key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements Backend.
func (m *MemoryBackend) Set(key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Writes returns how many Set calls succeeded.
func (m *MemoryBackend) Writes() int {
	return m.writes
}
