package command

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"evopet/internal/achievement"
	"evopet/internal/pet"
	"evopet/internal/ui"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is one entry of the command table.
type Command struct {
	Name     string
	Usage    string
	Help     string
	NeedsPet bool // false only for commands that work before a pet exists
	run      func(d *Dispatcher, inv Invocation) error
}

// Dispatcher maps command names to handlers over the pet.
type Dispatcher struct {
	pet      *pet.State
	in       *bufio.Reader
	out      io.Writer
	commands map[string]*Command
	order    []*Command
}

// NewDispatcher returns a dispatcher for p. Prompts read from in and all
// output goes to out.
func NewDispatcher(p *pet.State, in io.Reader, out io.Writer) *Dispatcher {
	d := &Dispatcher{
		pet:      p,
		in:       bufio.NewReader(in),
		out:      out,
		commands: make(map[string]*Command),
	}
	for _, c := range builtins() {
		d.register(c)
	}
	return d
}

func (d *Dispatcher) register(c *Command) {
	d.commands[c.Name] = c
	d.order = append(d.order, c)
}

// Lookup returns the command called name.
func (d *Dispatcher) Lookup(name string) (*Command, bool) {
	c, ok := d.commands[strings.ToLower(name)]
	return c, ok
}

// Commands returns the command table in help order.
func (d *Dispatcher) Commands() []*Command {
	return d.order
}

// Exec parses and runs a typed command line. Blank lines do nothing.
func (d *Dispatcher) Exec(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	inv, err := Parse(line)
	if err != nil {
		return err
	}
	return d.Dispatch(inv)
}

// Dispatch runs inv. The command is recorded for Explorer once it has run and
// any achievements it unlocked are announced.
func (d *Dispatcher) Dispatch(inv Invocation) error {
	c, ok := d.Lookup(inv.Name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, inv.Name)
	}

	log.Printf("Running command %q", c.Name)
	err := c.run(d, inv)

	// After running so that "new" counts for the pet it created
	d.pet.TrackCommand(c.Name)
	d.announce()
	return err
}

// Capture runs a command line and returns what it printed.
func (d *Dispatcher) Capture(line string) (string, error) {
	var buf bytes.Buffer
	out := d.out
	d.out = &buf
	defer func() { d.out = out }()

	err := d.Exec(line)
	return strings.TrimRight(buf.String(), "\n"), err
}

// announce is the newly-unlocked sweep.
func (d *Dispatcher) announce() {
	for _, k := range d.pet.Achievements().Announce() {
		d.println("")
		d.println(ui.RenderUnlock(k))
	}
}

func (d *Dispatcher) println(s string) {
	fmt.Fprintln(d.out, s)
}

func (d *Dispatcher) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

// prompt prints question and reads one trimmed line of input. EOF counts as
// an empty answer.
func (d *Dispatcher) prompt(question string) (string, error) {
	d.printf("%s", question)
	answer, err := d.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a yes/no question. Only "yes" or "y" count as yes.
func (d *Dispatcher) Confirm(question string) (bool, error) {
	answer, err := d.prompt(question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true, nil
	}
	return false, nil
}

// Help is the usage text listing every command.
func (d *Dispatcher) Help() string {
	var b strings.Builder
	b.WriteString("Virtual Pet Application\n")
	b.WriteString("-----------------------\n")
	b.WriteString("Usage: evopet [command] [options]\n\n")
	b.WriteString("Commands:\n")
	for _, c := range d.order {
		fmt.Fprintf(&b, "  %-18s - %s\n", c.Usage, c.Help)
	}
	fmt.Fprintf(&b, "  %-18s - %s\n", "interactive", "Start interactive mode (default without a command)")
	return strings.TrimRight(b.String(), "\n")
}

// showStat prints "Name: value / max" for a stat.
func (d *Dispatcher) showStat(name string, v float32) {
	d.printf("%s: %d / %d\n", name, int(v), int(d.pet.MaxStat()))
}

func (d *Dispatcher) showXP() {
	p := d.pet
	if p.Level().Terminal() {
		d.printf("XP: %d\n", p.XP())
		return
	}
	d.printf("XP: %d / %d for next level\n", p.XP(), p.XPForNextLevel())
}

func firstStepsNotice() string {
	return ui.RenderUnlock(achievement.FirstSteps)
}
