package pet

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"time"
	"unicode/utf8"

	"evopet/internal/achievement"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported save format version")
	ErrNoSave             = errors.New("no saved pet")
)

var byteOrder = binary.LittleEndian

// DefaultSavePath returns %APPDATA%\pet\state.dat on Windows and ~/.pet_state
// elsewhere.
func DefaultSavePath() string {
	if runtime.GOOS == "windows" {
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, "pet", "state.dat")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Error getting home directory: %v", err)
		return ".pet_state"
	}
	return filepath.Join(home, ".pet_state")
}

// SaveFileExists reports whether there is a save file at the save path.
func (s *State) SaveFileExists() bool {
	_, err := os.Stat(s.savePath)
	return err == nil
}

// Load replaces s with the saved pet. It returns false when there is no save
// or it cannot be read; s is unchanged in that case.
func (s *State) Load() bool {
	if err := s.LoadFile(); err != nil {
		if !errors.Is(err, ErrNoSave) {
			log.Printf("Error loading state: %v", err)
		}
		return false
	}
	return true
}

// LoadFile is Load with the reason for a failure.
func (s *State) LoadFile() error {
	f, err := os.Open(s.savePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w at %s", ErrNoSave, s.savePath)
		}
		return fmt.Errorf("opening save file: %w", err)
	}
	defer f.Close()

	if err := s.Decode(bufio.NewReader(f)); err != nil {
		return fmt.Errorf("reading %s: %w", s.savePath, err)
	}
	log.Printf("Loaded %s (%s, xp %d) from %s", s.name, s.level, s.xp, s.savePath)
	return nil
}

// Save writes s to the save path, creating its directory when needed.
func (s *State) Save() bool {
	if err := s.SaveFile(); err != nil {
		log.Printf("Error writing state: %v", err)
		return false
	}
	return true
}

// SaveFile is Save with the reason for a failure.
func (s *State) SaveFile() error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.savePath), 0755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	if err := os.WriteFile(s.savePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}
	return nil
}

// Encode writes s in the current save format.
func (s *State) Encode(w io.Writer) error {
	name := truncateName(s.name, maxNameBytes)

	fields := []any{
		uint8(SaveFormatVersion),
		uint16(len(name)),
		[]byte(name),
		uint8(s.level),
		s.xp,
		[3]float32{s.hunger, s.happiness, s.energy},
		unixSeconds(s.lastInteraction),
		unixSeconds(s.birth),
	}
	for _, v := range fields {
		if err := binary.Write(w, byteOrder, v); err != nil {
			return fmt.Errorf("writing pet state: %w", err)
		}
	}
	if err := s.achievements.Encode(w); err != nil {
		return fmt.Errorf("writing achievements: %w", err)
	}
	return nil
}

// Decode replaces s with a pet read from r. Every format version from 1 to
// SaveFormatVersion is accepted. On error s is left untouched.
func (s *State) Decode(r io.Reader) error {
	var version uint8
	if err := binary.Read(r, byteOrder, &version); err != nil {
		return fmt.Errorf("reading version: %w", err)
	}
	if version == 0 || version > SaveFormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	next := State{
		balance:      s.balance,
		savePath:     s.savePath,
		achievements: achievement.NewTracker(),
	}

	var nameLen uint16
	if err := binary.Read(r, byteOrder, &nameLen); err != nil {
		return fmt.Errorf("reading name length: %w", err)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return fmt.Errorf("reading name: %w", err)
	}
	next.name = string(name)

	var level uint8
	if err := binary.Read(r, byteOrder, &level); err != nil {
		return fmt.Errorf("reading evolution level: %w", err)
	}
	if EvolutionLevel(level) > Ancient {
		return fmt.Errorf("invalid evolution level %d", level)
	}
	next.level = EvolutionLevel(level)

	if err := binary.Read(r, byteOrder, &next.xp); err != nil {
		return fmt.Errorf("reading xp: %w", err)
	}

	ceiling := next.MaxStat()
	switch version {
	case 1, 2:
		// Stats were stored as a percentage of the level's ceiling
		var pct [3]uint8
		if err := binary.Read(r, byteOrder, &pct); err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}
		next.hunger = fromPercent(pct[0], ceiling)
		next.happiness = fromPercent(pct[1], ceiling)
		next.energy = fromPercent(pct[2], ceiling)
	default:
		var stats [3]float32
		if err := binary.Read(r, byteOrder, &stats); err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}
		next.hunger = clampStat(stats[0], ceiling)
		next.happiness = clampStat(stats[1], ceiling)
		next.energy = clampStat(stats[2], ceiling)
	}

	var last int64
	if err := binary.Read(r, byteOrder, &last); err != nil {
		return fmt.Errorf("reading last interaction: %w", err)
	}
	next.lastInteraction = fromUnixSeconds(last)

	if version >= 2 {
		var birth int64
		if err := binary.Read(r, byteOrder, &birth); err != nil {
			return fmt.Errorf("reading birth date: %w", err)
		}
		next.birth = fromUnixSeconds(birth)

		if err := next.achievements.Decode(r, version); err != nil {
			return fmt.Errorf("reading achievements: %w", err)
		}
	} else {
		next.birth = TimeNow()
	}

	// Keep the tracker pointer stable for anyone holding it
	tracker := s.achievements
	if tracker == nil {
		tracker = achievement.NewTracker()
	}
	*tracker = *next.achievements
	next.achievements = tracker
	*s = next
	return nil
}

// truncateName cuts name to at most n bytes without splitting a rune.
func truncateName(name string, n int) string {
	if len(name) <= n {
		return name
	}
	for n > 0 && !utf8.RuneStart(name[n]) {
		n--
	}
	return name[:n]
}

func unixSeconds(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnixSeconds(secs int64) time.Time {
	if secs == 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}

func fromPercent(pct uint8, ceiling float32) float32 {
	return float32(min(pct, 100)) / 100 * ceiling
}

func clampStat(v, ceiling float32) float32 {
	if math.IsNaN(float64(v)) {
		return MinStat
	}
	return min(max(v, MinStat), ceiling)
}
