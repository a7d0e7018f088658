// Package state persists the trainer session and the completion history in
// sqlite.
package state

import (
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/hifdh/internal/db"
)

const saveDebounce = 500 * time.Millisecond

// Manager is the sqlite-backed Interface.
type Manager struct {
	db *sql.DB

	mu      sync.Mutex
	timer   *time.Timer
	pending *Session
	saveErr error

	writeMu sync.Mutex // serializes session writes with Close
}

// Open opens $XDG_DATA_HOME/hifdh/hifdh.db.
func Open() (*Manager, error) {
	path, err := xdg.DataFile(filepath.Join("hifdh", "hifdh.db"))
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens or creates the database at path; db.Memory is accepted.
func OpenPath(path string) (*Manager, error) {
	sqlDB, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(sqlDB, migrations); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &Manager{db: sqlDB}, nil
}

// Close writes a pending session and closes the database. The first failed
// background save is reported here, even if later saves succeeded.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()

	m.flush()

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	m.mu.Lock()
	saveErr := m.saveErr
	m.mu.Unlock()
	return errors.Join(saveErr, m.db.Close())
}

func (m *Manager) GetSession() (*Session, error) {
	return getSession(m.db)
}

// SaveSession writes s once no newer session arrived for saveDebounce, so a
// burst of position updates costs a single write.
func (m *Manager) SaveSession(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = &s
	if m.timer == nil {
		m.timer = time.AfterFunc(saveDebounce, m.flush)
		return
	}
	m.timer.Reset(saveDebounce)
}

func (m *Manager) flush() {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	s := m.pending
	m.pending = nil
	m.mu.Unlock()
	if s == nil {
		return
	}

	err := saveSession(m.db, *s)
	if err == nil {
		return
	}
	m.mu.Lock()
	if m.saveErr == nil {
		m.saveErr = err
	}
	m.mu.Unlock()
}
