//nolint:goconst // test file with repeated string literals
package playlist

import "testing"

func newNavigatorWith(paths ...string) *Navigator {
	n := NewNavigator()
	for _, p := range paths {
		n.Append(Track{Path: p})
	}
	return n
}

func TestNewNavigator(t *testing.T) {
	n := NewNavigator()

	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", n.CurrentIndex())
	}
	if n.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex() = %d, want -1", n.SelectedIndex())
	}
	if n.Current() != nil {
		t.Error("Current() should be nil for empty navigator")
	}
	if n.Mode() != Sequential {
		t.Errorf("Mode() = %v, want Sequential", n.Mode())
	}
}

func TestNavigator_Append_DoesNotSelect(t *testing.T) {
	n := NewNavigator()

	n.Append(Track{Path: "/a.mp3"})

	// Selecting the first track is the caller's call, not Append's.
	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1 (append never selects)", n.CurrentIndex())
	}

	n.Append(Track{Path: "/b.mp3"})
	if n.Len() != 2 {
		t.Errorf("Len() = %d, want 2", n.Len())
	}
	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", n.CurrentIndex())
	}
}

func TestNavigator_JumpTo(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")

	track := n.JumpTo(1)

	if n.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", n.CurrentIndex())
	}
	if track == nil || track.Path != "/b.mp3" {
		t.Errorf("JumpTo returned %v, want /b.mp3", track)
	}
}

func TestNavigator_JumpTo_Invalid(t *testing.T) {
	n := newNavigatorWith("/a.mp3")

	if n.JumpTo(5) != nil {
		t.Error("JumpTo with invalid index should return nil")
	}
	if n.JumpTo(-1) != nil {
		t.Error("JumpTo(-1) should return nil")
	}
	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1 (unchanged)", n.CurrentIndex())
	}
}

func TestNavigator_SetCurrent(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3")

	if !n.SetCurrent(1) {
		t.Error("SetCurrent(1) should succeed")
	}
	if n.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", n.CurrentIndex())
	}

	// -1 explicitly unsets
	if !n.SetCurrent(-1) {
		t.Error("SetCurrent(-1) should succeed")
	}
	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", n.CurrentIndex())
	}

	if n.SetCurrent(2) {
		t.Error("SetCurrent past the end should fail")
	}
	if n.SetCurrent(-2) {
		t.Error("SetCurrent(-2) should fail")
	}
}

func TestNavigator_RemoveAt_BeforeCurrent(t *testing.T) {
	// Playlist [A,B,C], current 1 (B). Removing A shifts current to 0
	// and the current track is still B.
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
	n.JumpTo(1)

	ok := n.RemoveAt(0)

	if !ok {
		t.Error("RemoveAt should return true")
	}
	if n.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", n.CurrentIndex())
	}
	if cur := n.Current(); cur == nil || cur.Path != "/b.mp3" {
		t.Errorf("Current() = %v, want /b.mp3", cur)
	}
	tracks := n.Tracks()
	if len(tracks) != 2 || tracks[0].Path != "/b.mp3" || tracks[1].Path != "/c.mp3" {
		t.Errorf("Tracks() = %v, want [/b.mp3 /c.mp3]", tracks)
	}
}

func TestNavigator_RemoveAt_CurrentAdvancesToNext(t *testing.T) {
	// Removing the current non-tail track keeps the same numeric index,
	// which after the shift names the original following track.
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
	n.JumpTo(1)

	n.RemoveAt(1)

	if n.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", n.CurrentIndex())
	}
	if cur := n.Current(); cur == nil || cur.Path != "/c.mp3" {
		t.Errorf("Current() = %v, want /c.mp3 (auto-advance)", cur)
	}
}

func TestNavigator_RemoveAt_CurrentAtTail(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
	n.JumpTo(2)

	n.RemoveAt(2)

	if n.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 (moved back from tail)", n.CurrentIndex())
	}
	if cur := n.Current(); cur == nil || cur.Path != "/b.mp3" {
		t.Errorf("Current() = %v, want /b.mp3", cur)
	}
}

func TestNavigator_RemoveAt_OnlyTrack(t *testing.T) {
	n := newNavigatorWith("/a.mp3")
	n.JumpTo(0)

	n.RemoveAt(0)

	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", n.CurrentIndex())
	}
	if n.Current() != nil {
		t.Error("Current() should be nil after removing the only track")
	}
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
}

func TestNavigator_RemoveAt_AfterCurrent(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
	n.JumpTo(0)

	n.RemoveAt(2)

	if n.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (unchanged)", n.CurrentIndex())
	}
}

func TestNavigator_RemoveAt_NoCurrent(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3")

	n.RemoveAt(0)

	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1 (stays unset)", n.CurrentIndex())
	}
}

func TestNavigator_RemoveAt_Invalid(t *testing.T) {
	n := newNavigatorWith("/a.mp3")

	if n.RemoveAt(-1) {
		t.Error("RemoveAt(-1) should return false")
	}
	if n.RemoveAt(1) {
		t.Error("RemoveAt past the end should return false")
	}
	if n.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (unchanged)", n.Len())
	}
}

func TestNavigator_RemoveAt_SelectionFollowsSlot(t *testing.T) {
	t.Run("next item slides into the slot", func(t *testing.T) {
		n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
		n.Select(1)

		n.RemoveAt(1)

		if n.SelectedIndex() != 1 {
			t.Errorf("SelectedIndex() = %d, want 1", n.SelectedIndex())
		}
		if tr := n.Track(n.SelectedIndex()); tr == nil || tr.Path != "/c.mp3" {
			t.Errorf("selected track = %v, want /c.mp3", tr)
		}
	})

	t.Run("tail removal selects the new last item", func(t *testing.T) {
		n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
		n.Select(2)

		n.RemoveAt(2)

		if n.SelectedIndex() != 1 {
			t.Errorf("SelectedIndex() = %d, want 1", n.SelectedIndex())
		}
	})

	t.Run("emptied playlist clears the selection", func(t *testing.T) {
		n := newNavigatorWith("/a.mp3")
		n.Select(0)

		n.RemoveAt(0)

		if n.SelectedIndex() != -1 {
			t.Errorf("SelectedIndex() = %d, want -1", n.SelectedIndex())
		}
	})

	t.Run("selection before the removed slot is untouched", func(t *testing.T) {
		n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
		n.Select(0)

		n.RemoveAt(2)

		if n.SelectedIndex() != 0 {
			t.Errorf("SelectedIndex() = %d, want 0", n.SelectedIndex())
		}
	})

	t.Run("selection after the removed slot shifts down", func(t *testing.T) {
		n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
		n.Select(2)

		n.RemoveAt(0)

		if n.SelectedIndex() != 1 {
			t.Errorf("SelectedIndex() = %d, want 1", n.SelectedIndex())
		}
	})
}

func TestNavigator_MoveUp(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")

	ok := n.MoveUp(1)

	if !ok {
		t.Error("MoveUp(1) should succeed")
	}
	tracks := n.Tracks()
	if tracks[0].Path != "/b.mp3" || tracks[1].Path != "/a.mp3" {
		t.Errorf("Tracks() = %v, want b before a", tracks)
	}
}

func TestNavigator_MoveDown(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")

	ok := n.MoveDown(0)

	if !ok {
		t.Error("MoveDown(0) should succeed")
	}
	tracks := n.Tracks()
	if tracks[0].Path != "/b.mp3" || tracks[1].Path != "/a.mp3" {
		t.Errorf("Tracks() = %v, want b before a", tracks)
	}
}

func TestNavigator_Move_BoundaryIsNoOp(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
	n.JumpTo(1)

	if n.MoveUp(0) {
		t.Error("MoveUp(0) should fail at the boundary")
	}
	if n.MoveDown(2) {
		t.Error("MoveDown(2) should fail at the boundary")
	}

	// Playlist and current index must be untouched.
	tracks := n.Tracks()
	if tracks[0].Path != "/a.mp3" || tracks[1].Path != "/b.mp3" || tracks[2].Path != "/c.mp3" {
		t.Errorf("Tracks() = %v, want original order", tracks)
	}
	if n.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 (unchanged)", n.CurrentIndex())
	}
}

func TestNavigator_Move_Invalid(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3")

	if n.MoveUp(5) {
		t.Error("MoveUp out of bounds should fail")
	}
	if n.MoveDown(-1) {
		t.Error("MoveDown(-1) should fail")
	}
}

func TestNavigator_Move_CurrentFollowsTrack(t *testing.T) {
	t.Run("moving the current track", func(t *testing.T) {
		n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
		n.JumpTo(1)

		n.MoveUp(1)

		if n.CurrentIndex() != 0 {
			t.Errorf("CurrentIndex() = %d, want 0", n.CurrentIndex())
		}
		if cur := n.Current(); cur == nil || cur.Path != "/b.mp3" {
			t.Errorf("Current() = %v, want /b.mp3", cur)
		}
	})

	t.Run("moving the neighbor over the current track", func(t *testing.T) {
		n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
		n.JumpTo(0)

		n.MoveUp(1)

		if n.CurrentIndex() != 1 {
			t.Errorf("CurrentIndex() = %d, want 1", n.CurrentIndex())
		}
		if cur := n.Current(); cur == nil || cur.Path != "/a.mp3" {
			t.Errorf("Current() = %v, want /a.mp3", cur)
		}
	})

	t.Run("selection follows the moved track", func(t *testing.T) {
		n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
		n.Select(1)

		n.MoveDown(1)

		if n.SelectedIndex() != 2 {
			t.Errorf("SelectedIndex() = %d, want 2", n.SelectedIndex())
		}
	})
}

func TestNavigator_Advance_Sequential(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")

	// From unset, each call returns the next element in order.
	want := []string{"/a.mp3", "/b.mp3", "/c.mp3"}
	for i, w := range want {
		track := n.Advance()
		if track == nil || track.Path != w {
			t.Fatalf("Advance() #%d = %v, want %s", i+1, track, w)
		}
		if n.CurrentIndex() != i {
			t.Errorf("CurrentIndex() = %d, want %d", n.CurrentIndex(), i)
		}
	}

	// End of the list: no wraparound.
	if track := n.Advance(); track != nil {
		t.Errorf("Advance() past the end = %v, want nil", track)
	}
	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1 after exhaustion", n.CurrentIndex())
	}
}

func TestNavigator_Advance_Empty(t *testing.T) {
	n := NewNavigator()

	if n.Advance() != nil {
		t.Error("Advance() on empty navigator should return nil")
	}
	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", n.CurrentIndex())
	}
}

func TestNavigator_Advance_Shuffle_NeverRepeatsCurrent(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3")
	n.SetMode(Shuffle)
	n.JumpTo(0)

	// On a 2-element playlist shuffle must alternate: the draw is redrawn
	// until it differs from the current index.
	prev := n.CurrentIndex()
	for i := 0; i < 1000; i++ {
		track := n.Advance()
		if track == nil {
			t.Fatalf("Advance() #%d returned nil", i+1)
		}
		if n.CurrentIndex() == prev {
			t.Fatalf("Advance() #%d stayed on index %d", i+1, prev)
		}
		prev = n.CurrentIndex()
	}
}

func TestNavigator_Advance_Shuffle_SingleTrackPlaysItself(t *testing.T) {
	n := newNavigatorWith("/a.mp3")
	n.SetMode(Shuffle)
	n.JumpTo(0)

	track := n.Advance()

	if track == nil || track.Path != "/a.mp3" {
		t.Errorf("Advance() = %v, want /a.mp3 (single track plays itself)", track)
	}
	if n.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", n.CurrentIndex())
	}
}

func TestNavigator_Advance_Shuffle_Empty(t *testing.T) {
	n := NewNavigator()
	n.SetMode(Shuffle)

	if n.Advance() != nil {
		t.Error("Advance() on empty navigator should return nil")
	}
	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", n.CurrentIndex())
	}
}

func TestNavigator_Advance_Shuffle_CoversAllOtherIndices(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3", "/d.mp3")
	n.SetMode(Shuffle)
	n.JumpTo(0)

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		prev := n.CurrentIndex()
		n.Advance()
		if n.CurrentIndex() == prev {
			t.Fatalf("Advance() repeated index %d", prev)
		}
		seen[n.CurrentIndex()] = true
	}

	// With 1000 draws over 4 slots every index shows up.
	for i := 0; i < 4; i++ {
		if !seen[i] {
			t.Errorf("index %d never drawn", i)
		}
	}
}

func TestNavigator_Previous(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3", "/c.mp3")
	n.JumpTo(2)

	track := n.Previous()

	if track == nil || track.Path != "/b.mp3" {
		t.Errorf("Previous() = %v, want /b.mp3", track)
	}
	if n.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", n.CurrentIndex())
	}
}

func TestNavigator_Previous_AtHead(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3")
	n.JumpTo(0)

	if n.Previous() != nil {
		t.Error("Previous() at the head should return nil")
	}
	if n.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (unchanged)", n.CurrentIndex())
	}
}

func TestNavigator_Previous_NoCurrent(t *testing.T) {
	n := newNavigatorWith("/a.mp3")

	if n.Previous() != nil {
		t.Error("Previous() without a current track should return nil")
	}
}

func TestNavigator_Current_StaleIndexIsSafe(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3")
	n.JumpTo(1)

	// Mutate the underlying playlist behind the navigator's back.
	n.playlist.Remove(1)

	if n.Current() != nil {
		t.Error("Current() with a stale index should return nil, not panic")
	}
}

func TestNavigator_Clear(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3")
	n.JumpTo(1)
	n.Select(0)

	n.Clear()

	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
	if n.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", n.CurrentIndex())
	}
	if n.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex() = %d, want -1", n.SelectedIndex())
	}
}

func TestNavigator_Select(t *testing.T) {
	n := newNavigatorWith("/a.mp3", "/b.mp3")

	if !n.Select(1) {
		t.Error("Select(1) should succeed")
	}
	if n.SelectedIndex() != 1 {
		t.Errorf("SelectedIndex() = %d, want 1", n.SelectedIndex())
	}

	if n.Select(5) {
		t.Error("Select out of bounds should fail")
	}

	n.ClearSelection()
	if n.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex() = %d, want -1 after ClearSelection", n.SelectedIndex())
	}
}
