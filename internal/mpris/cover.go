//go:build linux

package mpris

import (
	"os"
	"path/filepath"
)

// Album art lookup tries each base name in priority order, and for each
// base every common image extension.
var (
	coverBases = []string{"cover", "folder", "album", "front"}
	coverExts  = []string{".jpg", ".png", ".jpeg"}
)

// FindAlbumArt looks for album art in the same directory as the track.
// Returns the path to the art file, or empty string if not found.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, base := range coverBases {
		for _, ext := range coverExts {
			path := filepath.Join(dir, base+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
