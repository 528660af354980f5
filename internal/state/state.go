package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "refrain"
	dbFileName   = "refrain.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager persists the playback session across runs. Session saves are
// debounced so rapid queue edits collapse into one write; Close flushes
// anything still pending.
type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Session
}

func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = saveSession(m.db, *pending)
	}

	return m.db.Close()
}

// GetSession returns the saved session, or nil when none was saved yet.
func (m *Manager) GetSession() (*Session, error) {
	return getSession(m.db)
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// SaveSession schedules a debounced write of the session.
func (m *Manager) SaveSession(s Session) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveSession(m.db, *pending)
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
