package storage

import "sync"

// Memory is a settings store that lives as long as the process
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// ReadSettings implements hmi.SettingsStore. An empty store reads as
// erased flash.
func (m *Memory) ReadSettings(buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := copy(buf, m.data)
	for i := n; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return nil
}

// WriteSettings implements hmi.SettingsStore
func (m *Memory) WriteSettings(buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append(m.data[:0], buf...)
	return nil
}
