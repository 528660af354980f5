//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	zlog "github.com/rs/zerolog/log"

	"github.com/mlevasseur/refrain/internal/playback"
	"github.com/mlevasseur/refrain/internal/playlist"
)

// Adapter exposes the playback service as an org.mpris.MediaPlayer2
// player on the session bus, so media keys and desktop applets can drive
// a process that otherwise runs headless.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("refrain", &rootAdapter{}, &playerAdapter{service: service}),
	}

	// Listen blocks until Stop; failures (no session bus, name taken)
	// surface here rather than at construction.
	go func() {
		if err := a.server.Listen(); err != nil {
			zlog.Debug().Err(err).Msg("mpris: listen ended")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // No window to raise
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil // Track list interface not implemented
}

func (r *rootAdapter) Identity() (string, error) {
	return "Refrain", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3", "audio/flac", "audio/ogg", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// optional Shuffle interface.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	return p.service.Next()
}

func (p *playerAdapter) Previous() error {
	return p.service.Previous()
}

func (p *playerAdapter) Pause() error {
	return p.service.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.service.Toggle()
}

func (p *playerAdapter) Stop() error {
	p.service.Stop()
	return nil
}

// Play starts the queue when stopped and resumes when paused. Unlike
// PlayPause it never pauses a playing track.
func (p *playerAdapter) Play() error {
	switch p.service.State() {
	case playback.StateStopped:
		return p.service.Play()
	case playback.StatePaused:
		return p.service.Resume()
	default:
		return nil
	}
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.service.Seek(time.Duration(offset) * time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.service.SeekTo(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.service.CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(track.Path)),
		Length:      types.Microseconds(track.Duration.Microseconds()),
		Title:       track.Title,
		Artist:      []string{track.Artist},
		Album:       track.Album,
		TrackNumber: track.TrackNumber,
	}

	if artPath := FindAlbumArt(track.Path); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.service.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.service.SetVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

// CanGoNext reports whether Next would start a track. Shuffle always has
// a next pick on a non-empty queue; sequential runs out at the tail.
func (p *playerAdapter) CanGoNext() (bool, error) {
	if p.service.QueueIsEmpty() {
		return false, nil
	}
	if p.service.Mode() == playlist.Shuffle {
		return true, nil
	}
	return p.service.CurrentIndex()+1 < p.service.QueueLen(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.service.CurrentIndex() > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return !p.service.QueueIsEmpty(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.service.Mode() == playlist.Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if shuffle {
		p.service.SetMode(playlist.Shuffle)
	} else {
		p.service.SetMode(playlist.Sequential)
	}
	return nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
