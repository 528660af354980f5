// Package main provides the refrain entry point: a headless audio player
// that queues the tracks given on the command line (or the previous
// session), plays them through the default output device and advances the
// queue until it is exhausted. Desktop integration happens over MPRIS.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	zlog "github.com/rs/zerolog/log"

	"github.com/mlevasseur/refrain/internal/config"
	"github.com/mlevasseur/refrain/internal/logger"
	"github.com/mlevasseur/refrain/internal/mpris"
	"github.com/mlevasseur/refrain/internal/notify"
	"github.com/mlevasseur/refrain/internal/playback"
	"github.com/mlevasseur/refrain/internal/player"
	"github.com/mlevasseur/refrain/internal/playlist"
	"github.com/mlevasseur/refrain/internal/state"
	"github.com/mlevasseur/refrain/internal/tags"
)

var (
	app        = kingpin.New("refrain", "Headless audio player with playlist navigation")
	configPath = app.Flag("config", "Path to config file").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()
	volume     = app.Flag("volume", "Playback volume, 0.0 to 1.0").Default("-1").Float64()
	shuffle    = app.Flag("shuffle", "Pick the next track at random").Short('s').Bool()
	trackArgs  = app.Arg("tracks", "Audio files to queue").ExistingFiles()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "refrain: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.Config{Level: cfg.Log.Level, File: cfg.Log.File}
	if *verbose {
		logCfg.Level = "debug"
	}
	if *logfile != "" {
		logCfg.File = *logfile
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "refrain: initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("%v", err)
		os.Exit(1)
	}
}

// run wires the engine, the queue and the session store together and
// drives the headless playback loop. Using a separate function ensures
// defer statements run even when returning with an error.
func run(cfg *config.Config) error {
	engine := player.New(player.NewBeepSink())
	defer engine.Close()

	svc := playback.New(engine, playlist.NewNavigator(), cfg.PollInterval())
	defer svc.Close()

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer stateMgr.Close()

	sess, err := stateMgr.GetSession()
	if err != nil {
		zlog.Warn().Err(err).Msg("could not read saved session")
		sess = nil
	}

	// Command-line tracks build a fresh queue; without them the previous
	// session's queue is restored when enabled.
	restore := len(*trackArgs) == 0 && cfg.RestoreSession && sess != nil && len(sess.Tracks) > 0
	switch {
	case len(*trackArgs) > 0:
		enqueuePaths(svc, *trackArgs)
	case restore:
		enqueueSession(svc, sess)
		zlog.Info().Msgf("restored session: %d tracks", len(sess.Tracks))
	}
	if svc.QueueIsEmpty() {
		return fmt.Errorf("nothing to play: pass track paths or enable restore_session")
	}

	svc.SetMode(resolveMode(cfg, sess, restore))
	applyVolume(svc, stateMgr, cfg, sess)

	if adapter, err := mpris.New(svc); err != nil {
		zlog.Warn().Err(err).Msg("mpris unavailable")
	} else {
		defer adapter.Close()
	}

	np := &nowPlaying{cfg: cfg.Notifications}
	if cfg.Notifications.Enabled {
		if notifier, err := notify.New(); err != nil {
			zlog.Warn().Err(err).Msg("notifications unavailable")
		} else {
			np.notifier = notifier
		}
	}

	sub := svc.Subscribe()
	printQueue(svc)

	if restore && sess.CurrentIndex >= 0 && sess.CurrentIndex < svc.QueueLen() {
		if err := svc.PlayIndex(sess.CurrentIndex); err != nil {
			return err
		}
		if sess.Elapsed > 0 {
			if err := svc.SeekTo(sess.Elapsed); err != nil {
				zlog.Warn().Err(err).Msg("could not seek to saved position")
			}
		}
	} else if err := svc.Play(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sigCh:
			zlog.Info().Msg("shutting down")
			svc.Stop()
			saveSession(stateMgr, svc)
			return nil
		case e := <-sub.TrackChanged:
			printNowPlaying(svc, e)
			np.send(e.Current)
			saveSession(stateMgr, svc)
		case <-sub.QueueChanged:
			saveSession(stateMgr, svc)
		case e := <-sub.StateChanged:
			if e.Current == playback.StateStopped && svc.CurrentIndex() == -1 {
				fmt.Println("queue finished")
				saveSession(stateMgr, svc)
				return nil
			}
		case e := <-sub.Error:
			saveSession(stateMgr, svc)
			return fmt.Errorf("%s %s: %w", e.Operation, e.Path, e.Err)
		}
	}
}

// enqueuePaths appends the given files to the queue, probing each one for
// tag metadata and duration. Unsupported files are skipped with a warning.
func enqueuePaths(svc playback.Service, paths []string) {
	tracks := make([]playback.Track, 0, len(paths))
	for _, path := range paths {
		if !tags.IsMusicFile(path) {
			zlog.Warn().Msgf("skipping %s: unsupported file type", path)
			continue
		}
		tracks = append(tracks, buildTrack(path))
	}
	svc.Append(tracks...)
}

// buildTrack probes path for metadata. Tag and duration probes degrade
// independently: a bare track with the file name as title still plays.
func buildTrack(path string) playback.Track {
	t := playback.Track{Path: path, Title: filepath.Base(path)}
	if tag, err := tags.Read(path); err == nil {
		t.Title = tag.Title
		t.Artist = tag.Artist
		t.Album = tag.Album
		t.TrackNumber = tag.TrackNumber
	}
	if info, err := tags.ReadAudioInfo(path); err == nil {
		t.Duration = info.Duration
	}
	return t
}

func enqueueSession(svc playback.Service, sess *state.Session) {
	tracks := make([]playback.Track, len(sess.Tracks))
	for i, t := range sess.Tracks {
		tracks[i] = playback.Track{
			Path:        t.Path,
			Title:       t.Title,
			Artist:      t.Artist,
			Album:       t.Album,
			TrackNumber: t.TrackNumber,
			Duration:    t.Duration,
		}
	}
	svc.Append(tracks...)
}

// resolveMode picks the advance mode: config first, the restored session
// overrides it, the --shuffle flag overrides both.
func resolveMode(cfg *config.Config, sess *state.Session, restore bool) playlist.Mode {
	mode, err := playlist.ParseMode(cfg.Mode)
	if err != nil {
		zlog.Warn().Msgf("config: %v, using sequential", err)
		mode = playlist.Sequential
	}
	if restore {
		if m, err := playlist.ParseMode(sess.Mode); err == nil {
			mode = m
		}
	}
	if *shuffle {
		mode = playlist.Shuffle
	}
	return mode
}

// applyVolume picks the level: config first, the saved session overrides
// it, the --volume flag overrides both and is persisted immediately.
func applyVolume(svc playback.Service, mgr *state.Manager, cfg *config.Config, sess *state.Session) {
	level := cfg.Volume
	if sess != nil {
		level = sess.Volume
	}
	if *volume >= 0 {
		level = *volume
		if err := mgr.SaveVolume(level); err != nil {
			zlog.Warn().Err(err).Msg("could not persist volume")
		}
	}
	svc.SetVolume(level)
}

// saveSession snapshots the queue and transport so the next run can pick
// up where this one left off. Writes are debounced by the state manager.
func saveSession(mgr *state.Manager, svc playback.Service) {
	tracks := svc.QueueTracks()
	sess := state.Session{
		CurrentIndex: svc.CurrentIndex(),
		Mode:         svc.Mode().String(),
		Volume:       svc.Volume(),
		Elapsed:      svc.Position(),
		Tracks:       make([]state.Track, len(tracks)),
	}
	for i, t := range tracks {
		sess.Tracks[i] = state.Track{
			Path:        t.Path,
			Title:       t.Title,
			Artist:      t.Artist,
			Album:       t.Album,
			TrackNumber: t.TrackNumber,
			Duration:    t.Duration,
		}
	}
	mgr.SaveSession(sess)
}

func printQueue(svc playback.Service) {
	tracks := svc.QueueTracks()
	fmt.Printf("queue (%d tracks):\n", len(tracks))
	for i, t := range tracks {
		label := t.DisplayTitle()
		if t.Artist != "" {
			label = t.Artist + " - " + label
		}

		var meta []string
		if t.Duration > 0 {
			meta = append(meta, formatDuration(t.Duration))
		}
		if fi, err := os.Stat(t.Path); err == nil {
			meta = append(meta, formatSize(fi.Size()))
		}

		if len(meta) > 0 {
			fmt.Printf("%3d. %s (%s)\n", i+1, label, strings.Join(meta, ", "))
		} else {
			fmt.Printf("%3d. %s\n", i+1, label)
		}
	}
}

func printNowPlaying(svc playback.Service, e playback.TrackChange) {
	if e.Current == nil {
		return
	}
	label := e.Current.DisplayTitle()
	if e.Current.Artist != "" {
		label = e.Current.Artist + " - " + label
	}
	fmt.Printf("▶ %d/%d  %s\n", e.Index+1, svc.QueueLen(), label)
}

// nowPlaying sends a desktop notification per track change, replacing the
// previous one so skipping through the queue does not pile them up.
type nowPlaying struct {
	notifier notify.Notifier
	cfg      config.NotificationsConfig
	lastID   uint32
}

func (n *nowPlaying) send(track *playback.Track) {
	if n.notifier == nil || !n.cfg.Enabled || track == nil {
		return
	}

	body := track.Artist
	if track.Album != "" {
		if body != "" {
			body += " · "
		}
		body += track.Album
	}

	notif := notify.Notification{
		Title:      track.DisplayTitle(),
		Body:       body,
		Timeout:    n.cfg.TimeoutMs,
		ReplacesID: n.lastID,
		Urgency:    notify.UrgencyLow,
	}
	if n.cfg.ShowAlbumArt {
		notif.Icon = notify.FindAlbumArtPath(track.Path)
	}

	id, err := n.notifier.Notify(notif)
	if err != nil {
		zlog.Debug().Err(err).Msg("notification failed")
		return
	}
	n.lastID = id
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatSize formats a file size in human-readable form.
// Uses binary calculation (1024) with SI notation (KB, MB, GB).
func formatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	s := humanize.IBytes(uint64(bytes)) //nolint:gosec // bytes is guaranteed non-negative above
	return strings.ReplaceAll(s, "iB", "B")
}
