// Package achievement tracks which accomplishments a pet has unlocked and the
// progress toward the multi-step ones.
package achievement

import (
	"log"
	"sort"
)

// Kind identifies one entry in the fixed achievement catalogue. The numeric
// value is the bit index in the save file, so kinds are only ever appended.
type Kind uint8

const (
	FirstSteps  Kind = iota // Feed the pet for the first time
	WellFed                 // Reach max hunger
	HappyDays               // Reach max happiness
	FullyRested             // Reach max energy
	Evolution               // Evolve to the next stage
	Master                  // Reach the Master level
	Playful                 // Play 5 times
	Dedicated               // Interact on 7 consecutive days
	Explorer                // Try every basic command
	Survivor                // Keep the pet for 30 days
	Eternal                 // Reach the Ancient level

	Count // sentinel, not an achievement
)

// MaskBits is the capacity of the on-disk unlock masks.
const MaskBits = 64

// BasicCommands are the commands that count toward Explorer.
var BasicCommands = []string{"status", "feed", "play", "evolve", "achievements", "new", "help"}

type definition struct {
	name        string
	description string
	required    uint32
}

var catalogue = [Count]definition{
	FirstSteps:  {"First Steps", "Feed your pet for the first time", 1},
	WellFed:     {"Well Fed", "Fill your pet's hunger to the maximum", 100},
	HappyDays:   {"Happy Days", "Fill your pet's happiness to the maximum", 100},
	FullyRested: {"Fully Rested", "Fill your pet's energy to the maximum", 100},
	Evolution:   {"Evolution", "Evolve your pet to the next stage", 1},
	Master:      {"Master", "Raise your pet to the Master level", 1},
	Playful:     {"Playful", "Play with your pet 5 times", 5},
	Dedicated:   {"Dedicated", "Interact with your pet for 7 consecutive days", 7},
	Explorer:    {"Explorer", "Try all available commands", uint32(len(BasicCommands))},
	Survivor:    {"Survivor", "Keep your pet alive for 30 days", 30},
	Eternal:     {"Eternal", "Raise your pet to the Ancient level", 1},
}

func (k Kind) valid() bool {
	return k < Count
}

// Name returns the display name of an achievement.
func (k Kind) Name() string {
	if !k.valid() {
		return "Unknown Achievement"
	}
	return catalogue[k].name
}

// Description returns what the player has to do to unlock k.
func (k Kind) Description() string {
	if !k.valid() {
		return "Unknown Achievement Description"
	}
	return catalogue[k].description
}

// Required returns the progress value at which k unlocks.
func (k Kind) Required() uint32 {
	if !k.valid() {
		return 0
	}
	return catalogue[k].required
}

func (k Kind) String() string {
	return k.Name()
}

// All returns every kind in enumeration order.
func All() []Kind {
	kinds := make([]Kind, 0, Count)
	for k := Kind(0); k < Count; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsBasicCommand reports whether name counts toward Explorer.
func IsBasicCommand(name string) bool {
	for _, c := range BasicCommands {
		if c == name {
			return true
		}
	}
	return false
}

// Tracker owns the unlock bits, the progress counters and the set of basic
// commands seen so far. The zero value is an empty tracker.
type Tracker struct {
	unlocked     uint64
	newly        uint64
	progress     [Count]uint32
	usedCommands map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{usedCommands: make(map[string]struct{})}
}

// IsUnlocked reports whether k has been unlocked.
func (t *Tracker) IsUnlocked(k Kind) bool {
	if !k.valid() {
		return false
	}
	return t.unlocked&(1<<k) != 0
}

// Unlock marks k as unlocked. It returns true only when this call performed
// the unlock; the kind is then also queued in the newly-unlocked channel.
func (t *Tracker) Unlock(k Kind) bool {
	if !k.valid() || t.IsUnlocked(k) {
		return false
	}
	t.unlocked |= 1 << k
	t.newly |= 1 << k
	log.Printf("Achievement unlocked: %s", k.Name())
	return true
}

// IncrementProgress adds amount to k's counter and unlocks k when the counter
// reaches the required value. No-op once k is unlocked.
func (t *Tracker) IncrementProgress(k Kind, amount uint32) {
	if !k.valid() || t.IsUnlocked(k) {
		return
	}
	t.progress[k] += amount
	if t.progress[k] >= k.Required() {
		t.Unlock(k)
	}
}

// SetProgress overwrites k's counter and unlocks k when the value reaches the
// required value. No-op once k is unlocked.
func (t *Tracker) SetProgress(k Kind, value uint32) {
	if !k.valid() || t.IsUnlocked(k) {
		return
	}
	t.progress[k] = value
	if value >= k.Required() {
		t.Unlock(k)
	}
}

// Progress returns the live counter for k, or the required value once k is
// unlocked so that displays stay stable.
func (t *Tracker) Progress(k Kind) uint32 {
	if !k.valid() {
		return 0
	}
	if t.IsUnlocked(k) {
		return k.Required()
	}
	return t.progress[k]
}

// Unlocked returns the unlocked kinds in enumeration order.
func (t *Tracker) Unlocked() []Kind {
	return kindsIn(t.unlocked)
}

// NewlyUnlocked returns the kinds unlocked since the last ClearNewlyUnlocked.
func (t *Tracker) NewlyUnlocked() []Kind {
	return kindsIn(t.newly)
}

// ClearNewlyUnlocked empties the newly-unlocked channel.
func (t *Tracker) ClearNewlyUnlocked() {
	t.newly = 0
}

// Announce is the newly-unlocked sweep: it returns the pending kinds and
// clears the channel. FirstSteps is left out because feeding announces it
// inline at the moment it happens.
func (t *Tracker) Announce() []Kind {
	pending := t.NewlyUnlocked()
	t.ClearNewlyUnlocked()

	out := pending[:0]
	for _, k := range pending {
		if k != FirstSteps {
			out = append(out, k)
		}
	}
	return out
}

// TrackCommand records a basic command for Explorer. Unknown names and calls
// made after Explorer is unlocked are ignored.
func (t *Tracker) TrackCommand(name string) {
	if !IsBasicCommand(name) || t.IsUnlocked(Explorer) {
		return
	}
	if t.usedCommands == nil {
		t.usedCommands = make(map[string]struct{})
	}
	t.usedCommands[name] = struct{}{}
	t.SetProgress(Explorer, uint32(len(t.usedCommands)))
}

// UsedCommands returns the distinct basic commands seen, sorted.
func (t *Tracker) UsedCommands() []string {
	names := make([]string, 0, len(t.usedCommands))
	for name := range t.usedCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset empties the tracker. Used only when a new pet is created.
func (t *Tracker) Reset() {
	t.unlocked = 0
	t.newly = 0
	t.progress = [Count]uint32{}
	t.usedCommands = make(map[string]struct{})
}

func kindsIn(mask uint64) []Kind {
	var kinds []Kind
	for k := Kind(0); k < Count; k++ {
		if mask&(1<<k) != 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
