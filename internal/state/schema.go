package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_index INTEGER NOT NULL DEFAULT -1,
			mode TEXT NOT NULL DEFAULT 'sequential',
			volume REAL NOT NULL DEFAULT 0.5,
			elapsed_ms INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS session_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			album TEXT,
			track_number INTEGER,
			duration_ms INTEGER,
			UNIQUE(position)
		);

		CREATE INDEX IF NOT EXISTS idx_session_tracks_position ON session_tracks(position);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
