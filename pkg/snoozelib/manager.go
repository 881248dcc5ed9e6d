package snoozelib

import (
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/spf13/afero"
)

// Manager owns the persisted alarm store: the snooze record set plus the
// dont-show confirmation preference. Every mutation is flushed to disk
// before the call returns, so a crash immediately after a resolved Save
// cannot lose the record.
type Manager struct {
	data userdata
	fs   afero.Fs
	f    afero.File
	mu   *sync.RWMutex
}

// userdata is the on-disk shape of the alarm store.
type userdata struct {
	Records  RecordsMap
	DontShow bool
}

// InitManager opens the alarm store in the configuration directory on the
// host filesystem.
func InitManager() (*Manager, error) {
	return InitManagerFs(afero.NewOsFs(), userdataFileName)
}

// InitManagerFs opens (creating if needed) the alarm store at path on fs.
// An empty or corrupt store file starts fresh with a logged warning rather
// than failing.
func InitManagerFs(fs afero.Fs, path string) (m *Manager, err error) {
	m = &Manager{
		data: userdata{Records: make(RecordsMap)},
		fs:   fs,
		mu:   new(sync.RWMutex),
	}
	m.f, err = fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	if decErr := gob.NewDecoder(m.f).Decode(&m.data); decErr != nil {
		if decErr != io.EOF {
			log.Printf("snoozelib: warning: failed to decode userdata, starting fresh: %v", decErr)
		}
		m.data = userdata{Records: make(RecordsMap)}
	}
	if m.data.Records == nil {
		m.data.Records = make(RecordsMap)
	}
	return m, nil
}

// GetAll returns a copy of the current record set. Mutating the returned
// map does not affect the store.
func (m *Manager) GetAll() RecordsMap {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(RecordsMap, len(m.data.Records))
	for k, r := range m.data.Records {
		out[k] = r
	}
	return out
}

// Get returns the record for key, or nil.
func (m *Manager) Get(key string) *SnoozeRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Records[key]
}

// Save merges the given records into the store, overwriting existing keys
// and never removing keys absent from the argument. The merge is applied
// and persisted atomically under the store lock; concurrent Save and Remove
// calls settle last-writer-wins per key.
func (m *Manager) Save(partial RecordsMap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, r := range partial {
		m.data.Records[k] = r
	}
	return m.flush()
}

// Remove deletes the given keys. Removing an absent key is a no-op.
func (m *Manager) Remove(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data.Records, k)
	}
	return m.flush()
}

// DontShow reports the persisted confirmation-suppression preference.
func (m *Manager) DontShow() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.DontShow
}

// SetDontShow persists the confirmation-suppression preference.
func (m *Manager) SetDontShow(dontShow bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.DontShow = dontShow
	return m.flush()
}

// flush rewrites the store file. Callers must hold the write lock.
func (m *Manager) flush() error {
	if err := m.f.Truncate(0); err != nil {
		return fmt.Errorf("truncate userdata: %w", err)
	}
	if _, err := m.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek userdata: %w", err)
	}
	if err := gob.NewEncoder(m.f).Encode(&m.data); err != nil {
		return fmt.Errorf("encode userdata: %w", err)
	}
	if err := m.f.Sync(); err != nil {
		return fmt.Errorf("sync userdata: %w", err)
	}
	return nil
}

// Close flushes and closes the store file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.flush(); err != nil {
		return err
	}
	return m.f.Close()
}
