package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"evopet/internal/achievement"
	"evopet/internal/pet"
)

var gameStyles = struct {
	title   lipgloss.Style
	status  lipgloss.Style
	menu    lipgloss.Style
	menuBox lipgloss.Style
	stats   lipgloss.Style
	heading lipgloss.Style
	unlock  lipgloss.Style
	warning lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	menu: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	heading: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFD700")),

	unlock: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7CFC00")),

	warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F5F")),
}

var artStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))

// makeBar draws a bar of width cells filled to pct percent.
func makeBar(pct float32, width int) string {
	filled := int(math.Floor(float64(pct) / 100 * float64(width)))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// LevelLabel is the level name with its number, e.g. "Teen (Level 3)".
// Ancient is shown without a number.
func LevelLabel(level pet.EvolutionLevel) string {
	if level.Terminal() {
		return level.String()
	}
	return fmt.Sprintf("%s (Level %d)", level, level)
}

func xpLine(p *pet.State) string {
	if p.Level().Terminal() {
		return fmt.Sprintf("XP: %d", p.XP())
	}
	return fmt.Sprintf("XP: %d / %d for next level", p.XP(), p.XPForNextLevel())
}

// RenderHeader is the drawing, name, level and stat bars of the pet.
func RenderHeader(p *pet.State) string {
	ceiling := p.MaxStat()
	stat := func(name string, v, pct float32) string {
		return fmt.Sprintf("  %-10s [%s] %3d / %d", name+":", makeBar(pct, 10), int(math.Floor(float64(v))), int(ceiling))
	}

	lines := []string{
		gameStyles.title.Render(p.Name()),
		fmt.Sprintf("Evolution: %s", LevelLabel(p.Level())),
		fmt.Sprintf("Status:    %s", p.StatusWithLabel()),
		"",
		gameStyles.heading.Render("Stats:"),
		stat("Hunger", p.Hunger(), p.HungerPercent()),
		stat("Happiness", p.Happiness(), p.HappinessPercent()),
		stat("Energy", p.Energy(), p.EnergyPercent()),
		"  " + xpLine(p),
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderArt(p.Level()),
		gameStyles.stats.Render(strings.Join(lines, "\n")),
	)
}

// RenderStatus is the full status screen.
func RenderStatus(p *pet.State, now time.Time) string {
	lines := []string{
		"Birth date:       " + p.FormatAge(now),
		"Last interaction: " + p.FormatSinceLastInteraction(now),
		"",
		p.StatusDescription(),
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHeader(p),
		"",
		gameStyles.status.Render(strings.Join(lines, "\n")),
	)
}

// RenderEvolution shows the progress toward the next level.
func RenderEvolution(p *pet.State) string {
	level := p.Level()
	lines := []string{
		"Current evolution: " + LevelLabel(level),
		"Description: " + level.Description(),
		"",
	}

	if level.Terminal() {
		lines = append(lines, "Your pet has reached the highest evolution level!")
	} else {
		required := p.XPForNextLevel()
		pct := float32(0)
		if required > 0 {
			pct = float32(p.XP()) / float32(required) * 100
		}
		lines = append(lines,
			"Progress to next evolution:",
			fmt.Sprintf("XP: %d / %d (%d%%)", p.XP(), required, int(pct)),
			fmt.Sprintf("[%s] %d%%", progressBar(pct, 20), int(pct)),
			"",
			"Next evolution: "+LevelLabel(level.Next()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderArt(level),
		gameStyles.stats.Render(strings.Join(lines, "\n")),
	)
}

// progressBar draws "=====>    " style bars.
func progressBar(pct float32, width int) string {
	pos := int(float32(width) * pct / 100)
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i < pos:
			b.WriteByte('=')
		case i == pos:
			b.WriteByte('>')
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// lockedProgress is the "(n/m)" hint shown next to a locked achievement.
func lockedProgress(p *pet.State, k achievement.Kind) string {
	level := int(p.Level())
	switch k {
	case achievement.Evolution, achievement.Eternal:
		return fmt.Sprintf("(Level %d/%d)", level, int(pet.Ancient))
	case achievement.Master:
		return fmt.Sprintf("(Level %d/%d)", level, int(pet.Master))
	case achievement.FirstSteps:
		return ""
	default:
		tracker := p.Achievements()
		return fmt.Sprintf("(%d/%d)", tracker.Progress(k), k.Required())
	}
}

// RenderAchievements lists locked achievements with their progress, then the
// unlocked ones.
func RenderAchievements(p *pet.State) string {
	tracker := p.Achievements()

	var locked []string
	for _, k := range achievement.All() {
		if tracker.IsUnlocked(k) {
			continue
		}
		line := fmt.Sprintf("  - %s: %s", k.Name(), k.Description())
		if hint := lockedProgress(p, k); hint != "" {
			line += " " + hint
		}
		locked = append(locked, line)
	}
	if len(locked) == 0 {
		locked = append(locked, "  None - You've unlocked all achievements!")
	}

	var unlocked []string
	for _, k := range tracker.Unlocked() {
		unlocked = append(unlocked, gameStyles.unlock.Render(fmt.Sprintf("  - %s: %s", k.Name(), k.Description())))
	}
	if len(unlocked) == 0 {
		unlocked = append(unlocked, "  None yet. Keep playing!")
	}

	sections := []string{
		gameStyles.heading.Render("===== ACHIEVEMENTS ====="),
		"",
		"LOCKED ACHIEVEMENTS:",
	}
	sections = append(sections, locked...)
	sections = append(sections, "", "UNLOCKED ACHIEVEMENTS:")
	sections = append(sections, unlocked...)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderUnlock is the one-line announcement for a fresh unlock.
func RenderUnlock(k achievement.Kind) string {
	return gameStyles.unlock.Render(fmt.Sprintf("Achievement unlocked: %s!", k.Name()))
}

// RenderEvolved is shown when an interaction made the pet evolve.
func RenderEvolved(p *pet.State) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		gameStyles.heading.Render(fmt.Sprintf("Your pet %s has evolved to %s!", p.Name(), p.Level())),
		RenderArt(p.Level()),
		p.Description(),
	)
}

// RenderMessage styles a plain message.
func RenderMessage(msg string) string {
	return gameStyles.status.Render(msg)
}

// RenderWarning styles an error or warning.
func RenderWarning(msg string) string {
	return gameStyles.warning.Render(msg)
}
