package pet

// Game constants
const (
	DefaultPetName = "Unnamed Pet"
	MinStat        = 0

	// Save format
	SaveFormatVersion = 4 // Version written by Save
	maxNameBytes      = 1<<16 - 1

	// Status emojis
	StatusEmojiHappy   = "😸" // Content
	StatusEmojiHungry  = "🙀" // Below the hunger warning
	StatusEmojiSad     = "😿" // Below the happiness warning
	StatusEmojiTired   = "😾" // Low energy
	StatusEmojiExcited = "😻" // Everything at max
)

// EvolutionLevel is the growth stage of the pet. Levels only go up, one step
// at a time.
type EvolutionLevel uint8

const (
	Egg EvolutionLevel = iota
	Baby
	Child
	Teen
	Adult
	Master
	Ancient
)

var levelNames = [...]string{"Egg", "Baby", "Child", "Teen", "Adult", "Master", "Ancient"}

var levelDescriptions = [...]string{
	"A mysterious egg. It seems to be moving slightly...",
	"A tiny, adorable creature has hatched! It looks at you with curious eyes.",
	"Your pet has grown a bit. It's playful and full of energy!",
	"Your pet is now a teenager. It's becoming more independent but still needs your care.",
	"Your pet has reached adulthood. It's strong, confident, and loyal to you.",
	"Your pet has reached its final form! It's magnificent and powerful.",
	"Your pet has reached the ancient level! It's a legendary creature with immense power.",
}

var levelStatus = [...]string{
	"A mysterious egg. It seems to be moving slightly...",
	"A tiny, adorable creature has hatched! It looks at you with curious eyes.",
	"Your pet is growing and developing. It's very curious and playful, and enjoys your attention.",
	"The teenage period is a time of change. Your pet is becoming more independent but still needs your care.",
	"An adult pet is full of strength and energy. It's loyal to you and ready for new adventures.",
	"Your pet has achieved mastery! Its abilities and wisdom are impressive, it has become a true legend.",
	"The ancient form of your pet is the embodiment of power and wisdom. It has come a long way under your guidance.",
}

func (l EvolutionLevel) valid() bool {
	return int(l) < len(levelNames)
}

func (l EvolutionLevel) String() string {
	if !l.valid() {
		return "Unknown"
	}
	return levelNames[l]
}

// Terminal reports whether l is the last level.
func (l EvolutionLevel) Terminal() bool {
	return l >= Ancient
}

// Next returns the following level, or l itself when l is terminal.
func (l EvolutionLevel) Next() EvolutionLevel {
	if l.Terminal() {
		return l
	}
	return l + 1
}

// Description is the short text shown when the pet reaches l.
func (l EvolutionLevel) Description() string {
	if !l.valid() {
		return "Unknown evolution level"
	}
	return levelDescriptions[l]
}

// StatusDescription is the longer text shown on the status screen.
func (l EvolutionLevel) StatusDescription() string {
	if !l.valid() {
		return "Unknown pet status"
	}
	return levelStatus[l]
}

// Levels returns every level from Egg to Ancient.
func Levels() []EvolutionLevel {
	levels := make([]EvolutionLevel, len(levelNames))
	for i := range levels {
		levels[i] = EvolutionLevel(i)
	}
	return levels
}
