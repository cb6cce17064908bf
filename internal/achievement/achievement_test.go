package achievement

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"strings"
	"testing"
)

func TestCatalogue(t *testing.T) {
	if Count != 11 {
		t.Fatalf("Expected 11 achievement kinds, got %d", Count)
	}
	for _, k := range All() {
		if k.Name() == "" || k.Description() == "" {
			t.Errorf("Kind %d is missing a name or description", k)
		}
		if k.Required() == 0 {
			t.Errorf("Kind %s has no required progress", k.Name())
		}
	}
	if Count.Name() != "Unknown Achievement" {
		t.Errorf("Expected sentinel to be unknown, got %q", Count.Name())
	}
	if Explorer.Required() != uint32(len(BasicCommands)) {
		t.Errorf("Explorer should require every basic command, got %d", Explorer.Required())
	}
	if Playful.Required() != 5 || Dedicated.Required() != 7 || Survivor.Required() != 30 {
		t.Error("Multi-step requirements do not match the catalogue")
	}
}

func TestUnlock(t *testing.T) {
	tr := NewTracker()

	if !tr.Unlock(WellFed) {
		t.Error("First unlock should report a fresh unlock")
	}
	if tr.Unlock(WellFed) {
		t.Error("Second unlock should not report a fresh unlock")
	}
	if !tr.IsUnlocked(WellFed) {
		t.Error("WellFed should be unlocked")
	}
	if tr.Unlock(Count) {
		t.Error("The sentinel kind must never unlock")
	}
	if tr.IsUnlocked(Count) {
		t.Error("The sentinel kind must never read as unlocked")
	}
}

func TestNewlyUnlockedIsOneShot(t *testing.T) {
	tr := NewTracker()
	tr.Unlock(Evolution)
	tr.Unlock(WellFed)

	got := tr.NewlyUnlocked()
	want := []Kind{WellFed, Evolution}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v in enumeration order, got %v", want, got)
	}

	tr.ClearNewlyUnlocked()
	if len(tr.NewlyUnlocked()) != 0 {
		t.Error("Newly unlocked should be empty after clearing")
	}

	// Re-triggering an unlocked kind must not queue it again
	tr.Unlock(WellFed)
	if len(tr.NewlyUnlocked()) != 0 {
		t.Error("Already unlocked kind was queued again")
	}
	if !tr.IsUnlocked(WellFed) || !tr.IsUnlocked(Evolution) {
		t.Error("Clearing the channel must not clear unlocks")
	}
}

func TestAnnounceFiltersFirstSteps(t *testing.T) {
	tr := NewTracker()
	tr.Unlock(FirstSteps)
	tr.Unlock(Playful)

	announced := tr.Announce()
	if !reflect.DeepEqual(announced, []Kind{Playful}) {
		t.Errorf("Expected only Playful to be announced, got %v", announced)
	}
	if len(tr.NewlyUnlocked()) != 0 {
		t.Error("Announce should clear the channel")
	}
	if len(tr.Announce()) != 0 {
		t.Error("Second sweep should be empty")
	}
}

func TestProgress(t *testing.T) {
	t.Run("increment unlocks at requirement", func(t *testing.T) {
		tr := NewTracker()
		for i := 0; i < 4; i++ {
			tr.IncrementProgress(Playful, 1)
		}
		if tr.IsUnlocked(Playful) {
			t.Fatal("Playful unlocked too early")
		}
		if tr.Progress(Playful) != 4 {
			t.Errorf("Expected progress 4, got %d", tr.Progress(Playful))
		}
		tr.IncrementProgress(Playful, 1)
		if !tr.IsUnlocked(Playful) {
			t.Error("Playful should unlock on the fifth play")
		}
	})

	t.Run("progress frozen once unlocked", func(t *testing.T) {
		tr := NewTracker()
		tr.SetProgress(Survivor, 30)
		if !tr.IsUnlocked(Survivor) {
			t.Fatal("Survivor should unlock at 30")
		}
		tr.SetProgress(Survivor, 2)
		tr.IncrementProgress(Survivor, 5)
		if got := tr.Progress(Survivor); got != Survivor.Required() {
			t.Errorf("Expected stable progress %d, got %d", Survivor.Required(), got)
		}
	})

	t.Run("set progress can lower a locked counter", func(t *testing.T) {
		tr := NewTracker()
		tr.SetProgress(Dedicated, 5)
		tr.SetProgress(Dedicated, 1)
		if got := tr.Progress(Dedicated); got != 1 {
			t.Errorf("Expected progress 1, got %d", got)
		}
	})

	t.Run("unlock without progress reads as complete", func(t *testing.T) {
		tr := NewTracker()
		tr.Unlock(HappyDays)
		if got := tr.Progress(HappyDays); got != 100 {
			t.Errorf("Expected 100, got %d", got)
		}
	})
}

func TestTrackCommand(t *testing.T) {
	tr := NewTracker()

	tr.TrackCommand("dance")
	tr.TrackCommand("interactive")
	if tr.Progress(Explorer) != 0 {
		t.Errorf("Unknown commands must not count, got %d", tr.Progress(Explorer))
	}

	for i, name := range BasicCommands {
		tr.TrackCommand(name)
		tr.TrackCommand(name) // duplicates do not count
		unlocked := tr.IsUnlocked(Explorer)
		last := i == len(BasicCommands)-1
		if unlocked != last {
			t.Fatalf("After %d commands Explorer unlocked=%v", i+1, unlocked)
		}
	}
	if got := len(tr.UsedCommands()); got != len(BasicCommands) {
		t.Errorf("Expected %d used commands, got %d", len(BasicCommands), got)
	}
}

func TestTrackCommandIgnoredAfterExplorer(t *testing.T) {
	tr := NewTracker()
	tr.Unlock(Explorer)
	tr.TrackCommand("feed")
	if len(tr.UsedCommands()) != 0 {
		t.Error("Commands should not be recorded once Explorer is unlocked")
	}
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	tr.Unlock(Master)
	tr.IncrementProgress(Playful, 3)
	tr.TrackCommand("feed")

	tr.Reset()

	if len(tr.Unlocked()) != 0 || len(tr.NewlyUnlocked()) != 0 {
		t.Error("Reset should clear all bits")
	}
	if tr.Progress(Playful) != 0 {
		t.Error("Reset should clear progress")
	}
	if len(tr.UsedCommands()) != 0 {
		t.Error("Reset should clear used commands")
	}
}

func TestZeroValueTracker(t *testing.T) {
	var tr Tracker
	tr.TrackCommand("play")
	if got := tr.UsedCommands(); !reflect.DeepEqual(got, []string{"play"}) {
		t.Errorf("Zero value tracker should accept commands, got %v", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	tr := NewTracker()
	tr.Unlock(FirstSteps)
	tr.Unlock(Evolution)
	tr.ClearNewlyUnlocked()
	tr.Unlock(WellFed)
	tr.IncrementProgress(Playful, 3)
	tr.SetProgress(Dedicated, 2)
	tr.TrackCommand("feed")
	tr.TrackCommand("status")

	var buf bytes.Buffer
	if err := tr.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got := NewTracker()
	if err := got.Decode(&buf, 4); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !reflect.DeepEqual(got.Unlocked(), tr.Unlocked()) {
		t.Errorf("Unlocked mismatch: %v vs %v", got.Unlocked(), tr.Unlocked())
	}
	if !reflect.DeepEqual(got.NewlyUnlocked(), []Kind{WellFed}) {
		t.Errorf("Newly unlocked mismatch: %v", got.NewlyUnlocked())
	}
	for _, k := range All() {
		if got.Progress(k) != tr.Progress(k) {
			t.Errorf("Progress mismatch for %s: %d vs %d", k, got.Progress(k), tr.Progress(k))
		}
	}
	if !reflect.DeepEqual(got.UsedCommands(), []string{"feed", "status"}) {
		t.Errorf("Used commands mismatch: %v", got.UsedCommands())
	}
}

// encodeBlock builds an achievement block by hand for format tests.
func encodeBlock(t *testing.T, version uint8, unlocked, newly uint64, commands []string, lengths []uint32) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	write := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	write(unlocked)
	if version >= 4 {
		write(newly)
	}
	write([Count]uint32{})
	write(uint32(len(commands)))
	for i, c := range commands {
		length := uint32(len(c))
		if lengths != nil {
			length = lengths[i]
		}
		write(length)
		buf.WriteString(c)
	}
	return &buf
}

func TestDecodeOlderVersionHasNoNewlyMask(t *testing.T) {
	buf := encodeBlock(t, 3, 1<<uint(Master), 0, []string{"play"}, nil)

	tr := NewTracker()
	if err := tr.Decode(buf, 3); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !tr.IsUnlocked(Master) {
		t.Error("Master should be unlocked")
	}
	if len(tr.NewlyUnlocked()) != 0 {
		t.Error("Version 3 blocks carry no newly unlocked mask")
	}
	if !reflect.DeepEqual(tr.UsedCommands(), []string{"play"}) {
		t.Errorf("Expected [play], got %v", tr.UsedCommands())
	}
}

func TestDecodeSkipsOversizedAndUnknownNames(t *testing.T) {
	long := strings.Repeat("x", MaxStoredNameBytes+1)
	buf := encodeBlock(t, 4, 0, 0, []string{"feed", long, "dance", "help"}, nil)

	tr := NewTracker()
	if err := tr.Decode(buf, 4); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !reflect.DeepEqual(tr.UsedCommands(), []string{"feed", "help"}) {
		t.Errorf("Expected [feed help], got %v", tr.UsedCommands())
	}
}

func TestDecodeToleratesTruncatedCommandList(t *testing.T) {
	// Claims a 40 byte name but the file ends after 4 bytes
	buf := encodeBlock(t, 4, 1<<uint(Playful), 0, []string{"play", "feed"}, []uint32{4, 40})

	tr := NewTracker()
	if err := tr.Decode(buf, 4); err != nil {
		t.Fatalf("A damaged command list should not fail the load: %v", err)
	}
	if !tr.IsUnlocked(Playful) {
		t.Error("Unlock bits should survive a damaged command list")
	}
	if !reflect.DeepEqual(tr.UsedCommands(), []string{"play"}) {
		t.Errorf("Expected [play], got %v", tr.UsedCommands())
	}
}

func TestDecodeCapsCommandCount(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint64(0))
	binary.Write(&buf, binary.LittleEndian, uint64(0))
	binary.Write(&buf, binary.LittleEndian, [Count]uint32{})
	binary.Write(&buf, binary.LittleEndian, uint32(1_000_000))
	for i := 0; i < MaxStoredCommands+5; i++ {
		binary.Write(&buf, binary.LittleEndian, uint32(4))
		buf.WriteString("feed")
	}

	tr := NewTracker()
	if err := tr.Decode(&buf, 4); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	// Only MaxStoredCommands entries are consumed
	if rest := buf.Len(); rest != 5*8 {
		t.Errorf("Expected 5 unread entries (40 bytes), got %d bytes", rest)
	}
}

func TestDecodeFailureLeavesTrackerUntouched(t *testing.T) {
	tr := NewTracker()
	tr.Unlock(Evolution)

	if err := tr.Decode(bytes.NewReader([]byte{1, 2, 3}), 4); err == nil {
		t.Fatal("Expected error for a truncated block")
	}
	if !tr.IsUnlocked(Evolution) {
		t.Error("Failed decode must not modify the tracker")
	}
}
