package pet

import (
	"fmt"
	"log"
	"time"

	"evopet/internal/achievement"
)

const day = 24 * time.Hour

// FeedResult tells the caller which message to show after feeding.
type FeedResult struct {
	WasFull   bool // hunger was already at the ceiling
	NowFull   bool
	Evolved   bool
	FirstFeed bool // FirstSteps was unlocked by this feeding
}

// PlayResult tells the caller which message to show after playing.
type PlayResult struct {
	WasMax  bool // happiness was already at the ceiling
	Evolved bool
}

// ApplyTimeEffects catches the pet up with the time elapsed since the last
// interaction. It does nothing for a pet that was never interacted with, or
// when less than the configured minimum has passed. The returned message is
// only set when a significant amount of time has passed.
func (s *State) ApplyTimeEffects(now time.Time) (string, bool) {
	if s.lastInteraction.IsZero() {
		return "", false
	}

	hours := now.Sub(s.lastInteraction).Hours()
	if hours < s.balance.MinElapsedHours {
		return "", false
	}

	ceiling := float64(s.MaxStat())
	hungerLoss := min(s.balance.HungerDecreaseRate*hours, ceiling)
	happinessLoss := min(s.balance.HappinessDecreaseRate*hours, ceiling)
	energyGain := min(s.balance.EnergyIncreaseRate*hours, ceiling)

	// Pet rests while away
	s.IncreaseEnergy(float32(energyGain))
	s.DecreaseHunger(float32(hungerLoss))
	s.DecreaseHappiness(float32(happinessLoss))
	s.touch(now)

	log.Printf("Applied %.2f hours of decay: hunger -%.1f, happiness -%.1f, energy +%.1f",
		hours, hungerLoss, happinessLoss, energyGain)

	if hours <= s.balance.SignificantElapsedHours {
		return "", false
	}

	var msg string
	if hours < 24 {
		msg = fmt.Sprintf("%.1f hours have passed since your last visit.", hours)
	} else {
		msg = fmt.Sprintf("%.1f days have passed since your last visit.", hours/24)
	}
	if s.hunger < s.balance.HungerWarning {
		msg += "\nYour pet is very hungry!"
	}
	if s.happiness < s.balance.HappinessWarning {
		msg += "\nYour pet is sad and needs attention!"
	}
	return msg, true
}

// Feed raises hunger and grants XP. The first feeding ever unlocks FirstSteps.
func (s *State) Feed(now time.Time) FeedResult {
	var res FeedResult
	res.WasFull = s.hunger >= s.MaxStat()

	s.IncreaseHunger(s.balance.FeedHungerIncrease)
	res.Evolved = s.AddXP(s.balance.FeedXP)
	res.FirstFeed = s.achievements.Unlock(achievement.FirstSteps)
	res.NowFull = s.hunger >= s.MaxStat()
	s.touch(now)

	log.Printf("Fed pet. Hunger: %.1f/%.0f, XP: %d", s.hunger, s.MaxStat(), s.xp)
	return res
}

// Play raises happiness, costs energy and grants XP.
func (s *State) Play(now time.Time) PlayResult {
	var res PlayResult
	res.WasMax = s.happiness >= s.MaxStat()

	s.IncreaseHappiness(s.balance.PlayHappinessIncrease)
	s.DecreaseEnergy(s.balance.PlayEnergyDecrease)
	res.Evolved = s.AddXP(s.balance.PlayXP)
	s.achievements.IncrementProgress(achievement.Playful, 1)
	s.touch(now)

	log.Printf("Played with pet. Happiness: %.1f, Energy: %.1f, XP: %d", s.happiness, s.energy, s.xp)
	return res
}

// touch records an interaction at now. It keeps the Dedicated streak of
// consecutive days and the Survivor day count current, then advances the last
// interaction time.
func (s *State) touch(now time.Time) {
	if s.lastInteraction.IsZero() {
		s.startStreak()
	} else {
		switch gap := calendarDays(s.lastInteraction, now); {
		case gap <= 0:
			s.startStreak()
		case gap == 1:
			s.achievements.IncrementProgress(achievement.Dedicated, 1)
		default:
			s.achievements.SetProgress(achievement.Dedicated, 1)
		}
	}

	if !s.birth.IsZero() && now.After(s.birth) {
		s.achievements.SetProgress(achievement.Survivor, uint32(now.Sub(s.birth)/day))
	}

	s.lastInteraction = now
}

// startStreak counts today as the first day when no streak is running yet.
func (s *State) startStreak() {
	if s.achievements.Progress(achievement.Dedicated) == 0 {
		s.achievements.SetProgress(achievement.Dedicated, 1)
	}
}

// calendarDays is the number of UTC midnights between from and to.
func calendarDays(from, to time.Time) int {
	a := from.UTC().Truncate(day)
	b := to.UTC().Truncate(day)
	return int(b.Sub(a) / day)
}

// FormatSinceLastInteraction renders the last interaction time and how long
// ago it was, e.g. "02 Jan 2024 15:04 (1d 2h 5m)".
func (s *State) FormatSinceLastInteraction(now time.Time) string {
	if s.lastInteraction.IsZero() {
		return "never"
	}
	since := now.Sub(s.lastInteraction)
	if since < 0 {
		since = 0
	}
	days := int(since / day)
	hours := int(since%day) / int(time.Hour)
	minutes := int(since%time.Hour) / int(time.Minute)

	var ago string
	if days > 0 {
		ago += fmt.Sprintf("%dd ", days)
	}
	if hours > 0 || days > 0 {
		ago += fmt.Sprintf("%dh ", hours)
	}
	ago += fmt.Sprintf("%dm", minutes)

	return fmt.Sprintf("%s (%s)", s.lastInteraction.Local().Format("02 Jan 2006 15:04"), ago)
}

// FormatAge renders the birth date and the age, e.g. "02 Jan 2024 (1y 3d)".
// Pets younger than a day show their age in hours.
func (s *State) FormatAge(now time.Time) string {
	age := s.Age(now)
	const year = 365 * day
	years := int(age / year)
	days := int(age%year) / int(day)

	var out string
	if years > 0 {
		out += fmt.Sprintf("%dy ", years)
	}
	if days > 0 || years > 0 {
		out += fmt.Sprintf("%dd", days)
	} else {
		out += fmt.Sprintf("%dh", int(age/time.Hour))
	}
	return fmt.Sprintf("%s (%s)", s.birth.Local().Format("02 Jan 2006"), out)
}
