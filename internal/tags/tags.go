// Package tags provides read-only metadata and audio stream probing for
// music files. It covers the formats the playback sink decodes: MP3, FLAC,
// WAV and Ogg Vorbis.
package tags

import (
	"path/filepath"
	"strings"
	"time"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Tag contains the music file tag metadata exposed to the rest of the
// application.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
}

// AudioInfo contains audio stream properties (not tags).
type AudioInfo struct {
	Duration   time.Duration
	Format     string // MP3, FLAC, WAV, VORBIS
	SampleRate int
	BitDepth   int
}

// FileInfo combines Tag and AudioInfo for a complete file description.
type FileInfo struct {
	Tag
	AudioInfo
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtWAV, ExtOGG, ExtOGA:
		return true
	}
	return false
}
