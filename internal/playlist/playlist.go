package playlist

import (
	"path/filepath"
	"time"
)

// Track references a playable file. The path is the identity: two tracks
// with the same path are the same track, and a playlist may hold the same
// path more than once.
type Track struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
}

// DisplayTitle returns the tagged title, falling back to the file name.
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return filepath.Base(t.Path)
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.tracks = append(p.tracks[:index], p.tracks[index+1:]...)
	return true
}

// Swap exchanges the tracks at the two indices.
// Returns false if either index is out of bounds.
func (p *Playlist) Swap(i, j int) bool {
	if i < 0 || i >= len(p.tracks) || j < 0 || j >= len(p.tracks) {
		return false
	}
	p.tracks[i], p.tracks[j] = p.tracks[j], p.tracks[i]
	return true
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}
