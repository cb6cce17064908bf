package pet

// Mood labels, from most to least urgent.
const (
	MoodStarving = "Starving"
	MoodSad      = "Sad"
	MoodTired    = "Tired"
	MoodContent  = "Content"
	MoodThriving = "Thriving"
)

// tiredPercent is the energy level, in percent of the ceiling, below which
// the pet counts as tired.
const tiredPercent = 20

// Mood returns the most pressing feeling of the pet, judged against the
// warning thresholds.
func (s *State) Mood() string {
	switch {
	case s.hunger < s.balance.HungerWarning:
		return MoodStarving
	case s.happiness < s.balance.HappinessWarning:
		return MoodSad
	case s.EnergyPercent() < tiredPercent:
		return MoodTired
	case s.hunger >= s.MaxStat() && s.happiness >= s.MaxStat() && s.energy >= s.MaxStat():
		return MoodThriving
	default:
		return MoodContent
	}
}

// MoodEmoji is the face shown next to the mood label.
func (s *State) MoodEmoji() string {
	switch s.Mood() {
	case MoodStarving:
		return StatusEmojiHungry
	case MoodSad:
		return StatusEmojiSad
	case MoodTired:
		return StatusEmojiTired
	case MoodThriving:
		return StatusEmojiExcited
	default:
		return StatusEmojiHappy
	}
}

// StatusWithLabel returns the mood emoji followed by its label.
func (s *State) StatusWithLabel() string {
	return s.MoodEmoji() + " " + s.Mood()
}
