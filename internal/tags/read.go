package tags

import (
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from a music file.
// It returns only tag metadata, not audio stream properties.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	track, _ := m.Track()

	return &Tag{
		Path:        path,
		Title:       title,
		Artist:      m.Artist(),
		Album:       m.Album(),
		TrackNumber: track,
	}, nil
}

// ReadWithAudio reads both tag metadata and audio stream properties.
// A tag read failure degrades to the base filename as title; an audio probe
// failure is returned.
func ReadWithAudio(path string) (*FileInfo, error) {
	t, err := Read(path)
	if err != nil {
		// WAV carries no tags and some files have broken ones
		t = &Tag{
			Path:  path,
			Title: filepath.Base(path),
		}
	}

	audio, err := ReadAudioInfo(path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Tag:       *t,
		AudioInfo: *audio,
	}, nil
}
