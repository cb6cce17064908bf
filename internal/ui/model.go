package ui

import (
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"evopet/internal/pet"
)

// DecayInterval is how often interactive mode catches the pet up with time.
const DecayInterval = 5 * time.Minute

// Runner executes a command line and returns its output. The command
// dispatcher implements it.
type Runner interface {
	Capture(line string) (string, error)
}

type menuItem struct {
	label   string
	command string // empty for Quit
}

var menuItems = []menuItem{
	{"Status", "status"},
	{"Feed", "feed"},
	{"Play", "play"},
	{"Evolve", "evolve"},
	{"Achievements", "achievements"},
	{"Help", "help"},
	{"New Pet", "new"},
	{"Quit", ""},
}

// shortcuts select a menu entry directly.
var shortcuts = map[string]int{"s": 0, "f": 1, "p": 2, "e": 3, "a": 4, "h": 5, "n": 6}

// Model represents the interactive session
type Model struct {
	Pet            *pet.State
	Runner         Runner
	Choice         int
	Quitting       bool
	Output         string // output of the last command
	Message        string
	MessageExpires time.Time
	Animation      Animation
	Naming         bool // typing the name of a new pet
	NameInput      string
}

type tickMsg time.Time
type animTickMsg struct {
	started time.Time
}

// NewModel creates the interactive model. notice is shown on the first screen,
// typically the time-away message.
func NewModel(p *pet.State, r Runner, notice string) Model {
	m := Model{Pet: p, Runner: r}
	if notice != "" {
		m.setMessage(notice)
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(DecayInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Naming {
			return m.typeName(msg)
		}

		// While an animation is playing, ignore inputs except quit keys
		if m.Animation.Type != AnimNone {
			switch msg.String() {
			case "ctrl+c", "q":
				return m.quit()
			default:
				return m, nil
			}
		}

		switch key := msg.String(); key {
		case "ctrl+c", "q", "esc":
			return m.quit()
		case "up", "k":
			if m.Choice > 0 {
				m.Choice--
			}
		case "down", "j":
			if m.Choice < len(menuItems)-1 {
				m.Choice++
			}
		case "enter", " ":
			return m.choose(m.Choice)
		default:
			if i, ok := shortcuts[key]; ok {
				m.Choice = i
				return m.choose(i)
			}
		}

	case tickMsg:
		m.applyTime(time.Time(msg))
		return m, tick()

	case animTickMsg:
		// Drop ticks that belong to an older animation (e.g., if a new action started)
		if m.Animation.Type == AnimNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}

		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	m.Pet.Save()
	return m, tea.Quit
}

// choose runs the menu entry at i.
func (m Model) choose(i int) (tea.Model, tea.Cmd) {
	item := menuItems[i]
	if item.command == "" {
		return m.quit()
	}

	if item.command == "new" {
		m.Naming = true
		m.NameInput = ""
		return m, nil
	}
	return m.run(item.command, item.command)
}

// typeName edits the name of the new pet until it is confirmed or cancelled.
func (m Model) typeName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		m.Naming = false
		m.Output = RenderMessage("Pet creation cancelled.")
	case tea.KeyEnter:
		m.Naming = false
		return m.run(newPetLine(m.NameInput), "new")
	case tea.KeyBackspace:
		if r := []rune(m.NameInput); len(r) > 0 {
			m.NameInput = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.NameInput += " "
	case tea.KeyRunes:
		m.NameInput += string(msg.Runes)
	}
	return m, nil
}

// newPetLine is the command line creating a pet called name. Confirming the
// name is the overwrite confirmation, hence -f.
func newPetLine(name string) string {
	return `new -f "` + strings.ReplaceAll(name, `"`, "") + `"`
}

// run executes line, keeps its output, saves and starts the animation for
// command.
func (m Model) run(line, command string) (tea.Model, tea.Cmd) {
	levelBefore := m.Pet.Level()
	out, err := m.Runner.Capture(line)
	if err != nil {
		log.Printf("Command %s failed: %v", command, err)
		m.Output = RenderWarning(err.Error())
		return m, nil
	}
	m.Output = out
	m.Pet.Save()

	anim := AnimationFor(command)
	if m.Pet.Level() > levelBefore {
		anim = AnimEvolve
	}
	if anim == AnimNone {
		return m, nil
	}
	m.startAnimation(anim)
	return m, animTick(m.Animation.StartTime)
}

// applyTime catches the pet up with the clock and saves it.
func (m *Model) applyTime(now time.Time) {
	notice, ok := m.Pet.ApplyTimeEffects(now)

	var lines []string
	if ok {
		lines = append(lines, notice)
	}
	for _, k := range m.Pet.Achievements().Announce() {
		lines = append(lines, RenderUnlock(k))
	}
	if len(lines) > 0 {
		m.setMessage(strings.Join(lines, "\n"))
	}
	m.Pet.Save()
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = pet.TimeNow().Add(10 * time.Second)
}

func (m *Model) startAnimation(animType AnimationType) {
	m.Animation = Animation{
		Type:      animType,
		Frame:     0,
		StartTime: pet.TimeNow(),
	}
}

// Run starts interactive mode on the terminal.
func Run(p *pet.State, r Runner, notice string) error {
	_, err := tea.NewProgram(NewModel(p, r, notice), tea.WithAltScreen()).Run()
	return err
}
