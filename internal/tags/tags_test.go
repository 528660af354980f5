package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMusicFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/music/song.mp3", true},
		{"/music/SONG.MP3", true},
		{"song.flac", true},
		{"song.wav", true},
		{"song.ogg", true},
		{"song.oga", true},
		{"song.opus", false},
		{"song.m4a", false},
		{"notes.txt", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMusicFile(tt.path), "IsMusicFile(%q)", tt.path)
	}
}
