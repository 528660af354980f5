package main

import (
	"testing"
	"time"

	"github.com/mlevasseur/refrain/internal/config"
	"github.com/mlevasseur/refrain/internal/notify"
	"github.com/mlevasseur/refrain/internal/playback"
)

// mockNotifier records notifications for testing.
type mockNotifier struct {
	notifications []notify.Notification
	lastID        uint32
}

func (m *mockNotifier) Notify(n notify.Notification) (uint32, error) {
	m.lastID++
	m.notifications = append(m.notifications, n)
	return m.lastID, nil
}

func (m *mockNotifier) Close(_ uint32) error {
	return nil
}

func TestNowPlayingNotification(t *testing.T) {
	mock := &mockNotifier{}
	np := &nowPlaying{
		notifier: mock,
		cfg: config.NotificationsConfig{
			Enabled:   true,
			TimeoutMs: 5000,
		},
	}

	np.send(&playback.Track{
		Path:   "/music/artist/album/song.mp3",
		Title:  "Test Song",
		Artist: "Test Artist",
		Album:  "Test Album",
	})

	if len(mock.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(mock.notifications))
	}

	n := mock.notifications[0]
	if n.Title != "Test Song" {
		t.Errorf("Title = %q, want %q", n.Title, "Test Song")
	}
	if n.Body != "Test Artist · Test Album" {
		t.Errorf("Body = %q, want %q", n.Body, "Test Artist · Test Album")
	}
	if n.Urgency != notify.UrgencyLow {
		t.Errorf("Urgency = %d, want UrgencyLow", n.Urgency)
	}
}

func TestNowPlayingNotificationDisabled(t *testing.T) {
	mock := &mockNotifier{}
	np := &nowPlaying{
		notifier: mock,
		cfg:      config.NotificationsConfig{Enabled: false},
	}

	np.send(&playback.Track{Title: "Test", Artist: "Test"})

	if len(mock.notifications) != 0 {
		t.Errorf("expected 0 notifications when disabled, got %d", len(mock.notifications))
	}
}

func TestNowPlayingNotificationNilNotifier(_ *testing.T) {
	np := &nowPlaying{cfg: config.NotificationsConfig{Enabled: true}}

	// Should not panic
	np.send(&playback.Track{})
}

func TestNowPlayingNotificationReplacesID(t *testing.T) {
	mock := &mockNotifier{}
	np := &nowPlaying{
		notifier: mock,
		cfg:      config.NotificationsConfig{Enabled: true, TimeoutMs: 5000},
		lastID:   42, // previous notification
	}

	np.send(&playback.Track{Title: "Song", Artist: "Artist", Album: "Album"})

	if len(mock.notifications) != 1 {
		t.Fatal("expected 1 notification")
	}
	if mock.notifications[0].ReplacesID != 42 {
		t.Errorf("ReplacesID = %d, want 42", mock.notifications[0].ReplacesID)
	}
	if np.lastID != 1 {
		t.Errorf("lastID = %d, want 1", np.lastID)
	}
}

func TestNowPlayingNotificationTitleOnly(t *testing.T) {
	mock := &mockNotifier{}
	np := &nowPlaying{
		notifier: mock,
		cfg:      config.NotificationsConfig{Enabled: true},
	}

	np.send(&playback.Track{Path: "/music/untagged.mp3"})

	if len(mock.notifications) != 1 {
		t.Fatal("expected 1 notification")
	}
	n := mock.notifications[0]
	if n.Title != "untagged.mp3" {
		t.Errorf("Title = %q, want file name fallback", n.Title)
	}
	if n.Body != "" {
		t.Errorf("Body = %q, want empty for untagged track", n.Body)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{time.Minute, "1:00"},
		{3*time.Minute + 7*time.Second, "3:07"},
		{61 * time.Minute, "61:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{-1, "0 B"},
		{1024, "1.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.bytes); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
