package playback

import (
	"path/filepath"
	"time"

	"github.com/mlevasseur/refrain/internal/playlist"
)

// Track represents a track in the queue.
// This is a copy of the data, not a reference to playlist.Track.
type Track struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

// DisplayTitle returns the tag title, falling back to the file name.
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return filepath.Base(t.Path)
}

func fromPlaylist(t playlist.Track) Track {
	return Track{
		Path:        t.Path,
		Title:       t.Title,
		Artist:      t.Artist,
		Album:       t.Album,
		TrackNumber: t.TrackNumber,
		Duration:    t.Duration,
	}
}

func toPlaylist(t Track) playlist.Track {
	return playlist.Track{
		Path:        t.Path,
		Title:       t.Title,
		Artist:      t.Artist,
		Album:       t.Album,
		TrackNumber: t.TrackNumber,
		Duration:    t.Duration,
	}
}
