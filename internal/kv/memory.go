package kv

import "fmt"

// MemoryStore is an in-process Store, used by tests and dry runs.
type MemoryStore struct {
	data map[string][]byte

	// SaveErr, when set, is returned by every Save and nothing is stored.
	SaveErr error
	// Saves counts successful Save calls per key.
	Saves map[string]int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string][]byte),
		Saves: make(map[string]int),
	}
}

// Load returns a copy of the stored value.
func (m *MemoryStore) Load(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save stores a copy of data.
func (m *MemoryStore) Save(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if m.SaveErr != nil {
		return fmt.Errorf("save %s: %w", key, m.SaveErr)
	}
	m.data[key] = append([]byte(nil), data...)
	m.Saves[key]++
	return nil
}

// Set stores raw bytes without validation, for seeding malformed data.
func (m *MemoryStore) Set(key string, data []byte) {
	m.data[key] = data
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
