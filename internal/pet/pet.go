package pet

import (
	"log"
	"strings"
	"time"

	"evopet/internal/achievement"
	"evopet/internal/config"
)

// Testable time function
var TimeNow = func() time.Time { return time.Now().UTC() }

// State is the pet: identity, stats, experience, timestamps and the
// achievements it owns. A zero lastInteraction means the pet has never been
// interacted with.
type State struct {
	name            string
	level           EvolutionLevel
	xp              uint32
	hunger          float32
	happiness       float32
	energy          float32
	lastInteraction time.Time
	birth           time.Time

	achievements *achievement.Tracker
	balance      config.Balance
	savePath     string
}

// New returns a pet with default values that has not been initialized yet.
// An empty savePath selects DefaultSavePath.
func New(balance config.Balance, savePath string) *State {
	if savePath == "" {
		savePath = DefaultSavePath()
	}
	return &State{
		name:         DefaultPetName,
		hunger:       balance.InitialHunger,
		happiness:    balance.InitialHappiness,
		energy:       balance.InitialEnergy,
		achievements: achievement.NewTracker(),
		balance:      balance,
		savePath:     savePath,
	}
}

// Initialize turns s into a brand-new pet called name.
func (s *State) Initialize(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPetName
	}
	now := TimeNow()

	s.name = name
	s.level = Egg
	s.xp = 0
	s.hunger = s.balance.InitialHunger
	s.happiness = s.balance.InitialHappiness
	s.energy = s.balance.InitialEnergy
	s.lastInteraction = now
	s.birth = now
	s.achievements.Reset()

	log.Printf("Created new pet: %s", s.name)
}

func (s *State) Name() string                       { return s.name }
func (s *State) Level() EvolutionLevel              { return s.level }
func (s *State) XP() uint32                         { return s.xp }
func (s *State) Hunger() float32                    { return s.hunger }
func (s *State) Happiness() float32                 { return s.happiness }
func (s *State) Energy() float32                    { return s.energy }
func (s *State) LastInteraction() time.Time         { return s.lastInteraction }
func (s *State) BirthDate() time.Time               { return s.birth }
func (s *State) Achievements() *achievement.Tracker { return s.achievements }
func (s *State) Balance() config.Balance            { return s.balance }
func (s *State) SavePath() string                   { return s.savePath }
func (s *State) Description() string                { return s.level.Description() }
func (s *State) StatusDescription() string          { return s.level.StatusDescription() }

// MaxStat is the ceiling for every stat at the current level.
func (s *State) MaxStat() float32 {
	return s.balance.MaxStatFor(uint8(s.level))
}

func (s *State) HungerPercent() float32    { return s.percent(s.hunger) }
func (s *State) HappinessPercent() float32 { return s.percent(s.happiness) }
func (s *State) EnergyPercent() float32    { return s.percent(s.energy) }

func (s *State) percent(v float32) float32 {
	ceiling := s.MaxStat()
	if ceiling <= 0 {
		return 0
	}
	return v / ceiling * 100
}

// XPForNextLevel is the absolute XP needed to leave the current level, or 0
// at Ancient.
func (s *State) XPForNextLevel() uint32 {
	return s.balance.XPThreshold(uint8(s.level))
}

// Age is the time since the pet was born.
func (s *State) Age(now time.Time) time.Duration {
	if s.birth.IsZero() || now.Before(s.birth) {
		return 0
	}
	return now.Sub(s.birth)
}

// AddXP adds amount and evolves at most one level when the cumulative XP
// reaches the threshold of the current level.
func (s *State) AddXP(amount uint32) bool {
	s.xp += amount

	threshold := s.XPForNextLevel()
	if s.level.Terminal() || threshold == 0 || s.xp < threshold {
		return false
	}

	s.level = s.level.Next()
	log.Printf("Pet evolved to %s (xp %d)", s.level, s.xp)

	s.achievements.Unlock(achievement.Evolution)
	switch s.level {
	case Master:
		s.achievements.Unlock(achievement.Master)
	case Ancient:
		s.achievements.Unlock(achievement.Eternal)
	}
	return true
}

func (s *State) IncreaseHunger(amount float32) {
	s.hunger = s.raise(s.hunger, amount, achievement.WellFed)
}

func (s *State) DecreaseHunger(amount float32) {
	s.hunger = s.lower(s.hunger, amount, achievement.WellFed)
}

func (s *State) IncreaseHappiness(amount float32) {
	s.happiness = s.raise(s.happiness, amount, achievement.HappyDays)
}

func (s *State) DecreaseHappiness(amount float32) {
	s.happiness = s.lower(s.happiness, amount, achievement.HappyDays)
}

func (s *State) IncreaseEnergy(amount float32) {
	s.energy = s.raise(s.energy, amount, achievement.FullyRested)
}

func (s *State) DecreaseEnergy(amount float32) {
	s.energy = s.lower(s.energy, amount, achievement.FullyRested)
}

// raise clamps v+amount to the ceiling. Touching the ceiling unlocks kind.
func (s *State) raise(v, amount float32, kind achievement.Kind) float32 {
	ceiling := s.MaxStat()
	v = min(max(v+amount, MinStat), ceiling)
	s.mirror(v, kind)
	if v >= ceiling {
		s.achievements.Unlock(kind)
	}
	return v
}

func (s *State) lower(v, amount float32, kind achievement.Kind) float32 {
	v = min(max(v-amount, MinStat), s.MaxStat())
	s.mirror(v, kind)
	return v
}

// mirror keeps the percent-of-max progress of the stat achievements current
// for display.
func (s *State) mirror(v float32, kind achievement.Kind) {
	pct := s.percent(v)
	if pct >= 100 {
		// Unlocking is left to raise so that lowering never unlocks
		pct = float32(kind.Required() - 1)
	}
	s.achievements.SetProgress(kind, uint32(pct))
}

// TrackCommand records a command for the Explorer achievement.
func (s *State) TrackCommand(name string) {
	s.achievements.TrackCommand(name)
}
