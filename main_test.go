package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"evopet/internal/achievement"
	"evopet/internal/config"
	"evopet/internal/pet"
	"evopet/internal/ui"
)

// mockTimeNow sets a fixed time for deterministic tests and auto-restores after test
func mockTimeNow(t *testing.T) time.Time {
	originalTimeNow := pet.TimeNow
	currentTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	pet.TimeNow = func() time.Time { return currentTime }
	t.Cleanup(func() { pet.TimeNow = originalTimeNow })
	return currentTime
}

// advanceTime moves the mocked clock forward.
func advanceTime(d time.Duration) {
	now := pet.TimeNow().Add(d)
	pet.TimeNow = func() time.Time { return now }
}

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	return config.Settings{SavePath: filepath.Join(t.TempDir(), "state.dat")}
}

// stubInteractive replaces the UI and records the notice it was given.
func stubInteractive(t *testing.T) *string {
	t.Helper()
	saved := startInteractive
	var notice string
	startInteractive = func(p *pet.State, r ui.Runner, n string) error {
		notice = n
		return nil
	}
	t.Cleanup(func() { startInteractive = saved })
	return &notice
}

func runWith(t *testing.T, s config.Settings, input string, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	code := run(args, s, strings.NewReader(input), &out)
	return code, out.String()
}

func loadPet(t *testing.T, s config.Settings) *pet.State {
	t.Helper()
	p := pet.New(config.Default(), s.SavePath)
	if err := p.LoadFile(); err != nil {
		t.Fatalf("Loading saved pet failed: %v", err)
	}
	return p
}

func TestHelpNeedsNoPet(t *testing.T) {
	mockTimeNow(t)
	s := testSettings(t)

	code, out := runWith(t, s, "", "help")
	if code != 0 {
		t.Errorf("Expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Usage: evopet") {
		t.Errorf("Expected usage text:\n%s", out)
	}
	if pet.New(config.Default(), s.SavePath).SaveFileExists() {
		t.Error("help must not create a pet")
	}
}

func TestUnknownCommandExitsWithHelp(t *testing.T) {
	mockTimeNow(t)

	code, out := runWith(t, testSettings(t), "", "dance")
	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(out, "Unknown command: dance") || !strings.Contains(out, "Commands:") {
		t.Errorf("Expected help after unknown command:\n%s", out)
	}
}

func TestBadPresetFails(t *testing.T) {
	mockTimeNow(t)
	s := testSettings(t)
	s.Preset = "nightmare"

	code, out := runWith(t, s, "", "status")
	if code != 1 || !strings.Contains(out, "Error loading configuration") {
		t.Errorf("Expected a configuration error, got %d:\n%s", code, out)
	}
}

func TestMissingPetDeclined(t *testing.T) {
	mockTimeNow(t)
	s := testSettings(t)

	code, out := runWith(t, s, "no\n", "feed")
	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(out, "Exiting without creating a new pet.") {
		t.Errorf("Expected the exit message:\n%s", out)
	}
	if pet.New(config.Default(), s.SavePath).SaveFileExists() {
		t.Error("No pet should be saved")
	}
}

func TestMissingPetCreatedThenCommandRuns(t *testing.T) {
	mockTimeNow(t)
	s := testSettings(t)

	code, out := runWith(t, s, "y\nRex\n", "feed")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d:\n%s", code, out)
	}
	for _, want := range []string{
		"Created a new pet named 'Rex'!",
		"Your pet enjoys the food and feels less hungry.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}

	p := loadPet(t, s)
	if p.Name() != "Rex" || p.Hunger() != 42 || p.XP() != 10 {
		t.Errorf("Unexpected saved pet %q hunger %v xp %d", p.Name(), p.Hunger(), p.XP())
	}
}

func TestNewCommandSkipsLoadPrompt(t *testing.T) {
	mockTimeNow(t)
	s := testSettings(t)

	code, out := runWith(t, s, "Buddy\n", "new")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d:\n%s", code, out)
	}
	if strings.Contains(out, "Failed to load pet state") {
		t.Errorf("new should not ask to create a pet first:\n%s", out)
	}
	if loadPet(t, s).Name() != "Buddy" {
		t.Error("Expected Buddy to be saved")
	}
}

func TestTimeAwayIsReported(t *testing.T) {
	mockTimeNow(t)
	s := testSettings(t)

	if code, out := runWith(t, s, "y\nRex\n", "status"); code != 0 {
		t.Fatalf("Setup failed with %d:\n%s", code, out)
	}

	advanceTime(3 * time.Hour)
	code, out := runWith(t, s, "", "status")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "3.0 hours have passed since your last visit.") {
		t.Errorf("Expected the time-away notice:\n%s", out)
	}
	if p := loadPet(t, s); p.Hunger() != 15 {
		t.Errorf("Expected decayed hunger 15 to be saved, got %v", p.Hunger())
	}
}

func TestInteractiveMode(t *testing.T) {
	mockTimeNow(t)
	notice := stubInteractive(t)
	s := testSettings(t)

	if code, out := runWith(t, s, "y\nRex\n"); code != 0 {
		t.Fatalf("Expected exit 0, got %d:\n%s", code, out)
	}

	advanceTime(48 * time.Hour)
	if code, _ := runWith(t, s, "", "interactive"); code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if !strings.Contains(*notice, "2.0 days have passed") {
		t.Errorf("Expected the notice to reach the UI, got %q", *notice)
	}
}

func TestInteractiveModeError(t *testing.T) {
	mockTimeNow(t)
	s := testSettings(t)
	saved := startInteractive
	startInteractive = func(*pet.State, ui.Runner, string) error { return errors.New("no tty") }
	t.Cleanup(func() { startInteractive = saved })

	code, out := runWith(t, s, "yes\nRex\n")
	if code != 1 || !strings.Contains(out, "no tty") {
		t.Errorf("Expected the UI error, got %d:\n%s", code, out)
	}
}

func TestExplorerAcrossInvocations(t *testing.T) {
	mockTimeNow(t)
	s := testSettings(t)

	if code, out := runWith(t, s, "Rex\n", "new", "-f"); code != 0 {
		t.Fatalf("new failed with %d:\n%s", code, out)
	}
	for _, name := range []string{"status", "feed", "play", "evolve", "achievements"} {
		if code, out := runWith(t, s, "", name); code != 0 {
			t.Fatalf("%s failed with %d:\n%s", name, code, out)
		}
	}
	if p := loadPet(t, s); p.Achievements().IsUnlocked(achievement.Explorer) {
		t.Fatal("Explorer should still need help")
	}

	code, out := runWith(t, s, "", "help")
	if code != 0 {
		t.Fatalf("help failed with %d", code)
	}
	if !strings.Contains(out, "Achievement unlocked: Explorer!") {
		t.Errorf("Expected the Explorer announcement:\n%s", out)
	}

	p := loadPet(t, s)
	tracker := p.Achievements()
	if !tracker.IsUnlocked(achievement.Explorer) {
		t.Errorf("Explorer should be saved, used %v progress %d",
			tracker.UsedCommands(), tracker.Progress(achievement.Explorer))
	}
	if p.Name() != "Rex" || p.XP() != 25 {
		t.Errorf("help should keep the saved pet, got %q with %d xp", p.Name(), p.XP())
	}
}

func TestHelpLeavesUnreadableSaveAlone(t *testing.T) {
	mockTimeNow(t)
	s := testSettings(t)
	garbage := []byte{99, 1, 2, 3}
	if err := os.WriteFile(s.SavePath, garbage, 0644); err != nil {
		t.Fatal(err)
	}

	if code, _ := runWith(t, s, "", "help"); code != 0 {
		t.Errorf("Expected exit 0, got %d", code)
	}
	data, err := os.ReadFile(s.SavePath)
	if err != nil || !bytes.Equal(data, garbage) {
		t.Errorf("help must not overwrite a save it could not read, got %v %v", data, err)
	}
}
