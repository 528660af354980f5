package playlist

import "math/rand/v2"

// Navigator wraps a Playlist with a current index (the track considered
// active for playback) and a selected index (the row targeted by the next
// destructive edit). Both use -1 as the unset sentinel.
//
// The current index survives structural edits: removals and swaps rewrite
// it so that it keeps naming the element the triggering operation intended,
// never an out-of-range offset.
type Navigator struct {
	playlist *Playlist
	current  int
	selected int
	mode     Mode
}

// NewNavigator creates an empty navigator in sequential mode.
func NewNavigator() *Navigator {
	return &Navigator{
		playlist: NewPlaylist(),
		current:  -1,
		selected: -1,
		mode:     Sequential,
	}
}

// Append adds tracks to the end of the playlist. The current index is never
// touched: selecting the first track of a previously empty playlist is the
// caller's decision, made when playback is actually requested.
func (n *Navigator) Append(tracks ...Track) {
	n.playlist.Add(tracks...)
}

// Current returns the track at the current index, or nil if none.
// The lookup is bounds-checked so a stale index reads as "no track".
func (n *Navigator) Current() *Track {
	return n.playlist.Track(n.current)
}

// CurrentIndex returns the current index (-1 if none).
func (n *Navigator) CurrentIndex() int {
	return n.current
}

// SetCurrent moves the current index to index, or unsets it for -1.
// Returns false for any other out-of-range value.
func (n *Navigator) SetCurrent(index int) bool {
	if index == -1 {
		n.current = -1
		return true
	}
	if index < 0 || index >= n.playlist.Len() {
		return false
	}
	n.current = index
	return true
}

// JumpTo sets the current index and returns the track there,
// or nil if the index is invalid.
func (n *Navigator) JumpTo(index int) *Track {
	if index < 0 || index >= n.playlist.Len() {
		return nil
	}
	n.current = index
	return n.Current()
}

// SelectedIndex returns the selected index (-1 if none).
func (n *Navigator) SelectedIndex() int {
	return n.selected
}

// Select marks the track at index as selected.
// Returns false if the index is out of bounds.
func (n *Navigator) Select(index int) bool {
	if index < 0 || index >= n.playlist.Len() {
		return false
	}
	n.selected = index
	return true
}

// ClearSelection unsets the selected index.
func (n *Navigator) ClearSelection() {
	n.selected = -1
}

// RemoveAt removes the track at index. Returns false if out of bounds.
//
// The current index is rewritten before the element is removed:
//   - unset stays unset
//   - removing the current tail of a multi-track list moves it back by one
//   - removing the only track unsets it
//   - removing the current track with a successor keeps the same numeric
//     value, which after the shift names the following track, so removing
//     the playing track auto-advances
//   - removing an earlier track shifts it down by one
//   - removing a later track leaves it alone
//
// The selected index follows the removed slot: the item that slides in
// takes the selection, the new tail does when the old tail was removed,
// and it unsets when the playlist empties.
func (n *Navigator) RemoveAt(index int) bool {
	length := n.playlist.Len()
	if index < 0 || index >= length {
		return false
	}

	switch {
	case n.current < 0:
		// stays unset
	case index == n.current:
		if length == 1 {
			n.current = -1
		} else if index == length-1 {
			n.current--
		}
	case index < n.current:
		n.current--
	}

	switch {
	case n.selected < 0:
		// nothing selected
	case length == 1:
		n.selected = -1
	case n.selected == index:
		if index == length-1 {
			n.selected = index - 1
		}
	case n.selected > index:
		n.selected--
	}

	n.playlist.Remove(index)
	return true
}

// MoveUp swaps the track at index with its predecessor.
// Returns false at the top boundary or for an invalid index.
func (n *Navigator) MoveUp(index int) bool {
	if index <= 0 || index >= n.playlist.Len() {
		return false
	}
	n.playlist.Swap(index, index-1)
	n.trackSwap(index, index-1)
	return true
}

// MoveDown swaps the track at index with its successor.
// Returns false at the bottom boundary or for an invalid index.
func (n *Navigator) MoveDown(index int) bool {
	if index < 0 || index >= n.playlist.Len()-1 {
		return false
	}
	n.playlist.Swap(index, index+1)
	n.trackSwap(index, index+1)
	return true
}

// trackSwap keeps the current and selected indices pointing at the same
// logical tracks after the elements at a and b traded places.
func (n *Navigator) trackSwap(a, b int) {
	switch n.current {
	case a:
		n.current = b
	case b:
		n.current = a
	}
	switch n.selected {
	case a:
		n.selected = b
	case b:
		n.selected = a
	}
}

// Advance moves the current index to the next track per the configured
// mode and returns it, or nil when the playlist is empty or, in sequential
// mode, exhausted.
//
// Sequential starts at 0 when nothing is current, otherwise steps forward,
// and unsets the index at the end of the list. There is no wraparound.
//
// Shuffle draws a uniformly random index and redraws until it differs from
// the current one. A single-track playlist plays that track again.
func (n *Navigator) Advance() *Track {
	length := n.playlist.Len()
	if length == 0 {
		n.current = -1
		return nil
	}

	switch n.mode {
	case Shuffle:
		if length == 1 {
			n.current = 0
			break
		}
		next := rand.IntN(length)
		for next == n.current {
			next = rand.IntN(length)
		}
		n.current = next
	default:
		switch {
		case n.current < 0:
			n.current = 0
		case n.current+1 < length:
			n.current++
		default:
			n.current = -1
			return nil
		}
	}

	return n.Current()
}

// Previous steps the current index back by one and returns the track there.
// Returns nil when nothing is current or the index is already at the head.
func (n *Navigator) Previous() *Track {
	if n.current <= 0 {
		return nil
	}
	n.current--
	return n.Current()
}

// Mode returns the advance mode.
func (n *Navigator) Mode() Mode {
	return n.mode
}

// SetMode sets the advance mode.
func (n *Navigator) SetMode(m Mode) {
	n.mode = m
}

// Track returns the track at index, or nil if out of bounds.
func (n *Navigator) Track(index int) *Track {
	return n.playlist.Track(index)
}

// Tracks returns a copy of all tracks.
func (n *Navigator) Tracks() []Track {
	return n.playlist.Tracks()
}

// Len returns the number of tracks.
func (n *Navigator) Len() int {
	return n.playlist.Len()
}

// IsEmpty returns true if the playlist has no tracks.
func (n *Navigator) IsEmpty() bool {
	return n.playlist.Len() == 0
}

// Clear removes all tracks and unsets both indices.
func (n *Navigator) Clear() {
	n.playlist.Clear()
	n.current = -1
	n.selected = -1
}
