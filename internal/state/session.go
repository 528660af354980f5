package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/mlevasseur/refrain/internal/db"
)

// Track represents a track in the saved session queue.
type Track struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

// Session represents the saved playback session.
type Session struct {
	CurrentIndex int
	Mode         string
	Volume       float64
	Elapsed      time.Duration
	Tracks       []Track
}

func getSession(db *sql.DB) (*Session, error) {
	var s Session
	var elapsedMs int64

	row := db.QueryRow(`SELECT current_index, mode, volume, elapsed_ms FROM session_state WHERE id = 1`)
	err := row.Scan(&s.CurrentIndex, &s.Mode, &s.Volume, &elapsedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.Elapsed = time.Duration(elapsedMs) * time.Millisecond

	rows, err := db.Query(`
		SELECT path, title, artist, album, track_number, duration_ms
		FROM session_tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var t Track
		var artist, album sql.NullString
		var trackNumber, durationMs sql.NullInt64

		if err := rows.Scan(&t.Path, &t.Title, &artist, &album, &trackNumber, &durationMs); err != nil {
			return nil, err
		}

		t.Artist = dbutil.NullStringValue(artist)
		t.Album = dbutil.NullStringValue(album)
		t.TrackNumber = int(dbutil.NullInt64Value(trackNumber))
		t.Duration = time.Duration(dbutil.NullInt64Value(durationMs)) * time.Millisecond
		s.Tracks = append(s.Tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &s, nil
}

func saveSession(sqlDB *sql.DB, s Session) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		// Clear existing queue
		if _, err := tx.Exec(`DELETE FROM session_tracks`); err != nil {
			return err
		}

		// Save session state
		_, err := tx.Exec(`
			INSERT INTO session_state (id, current_index, mode, volume, elapsed_ms)
			VALUES (1, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				mode = excluded.mode,
				volume = excluded.volume,
				elapsed_ms = excluded.elapsed_ms
		`, s.CurrentIndex, s.Mode, s.Volume, s.Elapsed.Milliseconds())
		if err != nil {
			return err
		}

		// Insert tracks
		stmt, err := tx.Prepare(`
			INSERT INTO session_tracks (position, path, title, artist, album, track_number, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range s.Tracks {
			_, err = stmt.Exec(i, t.Path, t.Title, t.Artist, t.Album, t.TrackNumber, t.Duration.Milliseconds())
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveVolume persists the volume level immediately, without touching the
// rest of the session.
func (m *Manager) SaveVolume(volume float64) error {
	_, err := m.db.Exec(`
		INSERT INTO session_state (id, current_index, mode, volume, elapsed_ms)
		VALUES (1, -1, 'sequential', ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume
	`, volume)
	return err
}
