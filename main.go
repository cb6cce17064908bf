package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"evopet/internal/command"
	"evopet/internal/config"
	"evopet/internal/pet"
	"evopet/internal/ui"
)

// startInteractive runs the full-screen UI. Tests replace it.
var startInteractive = ui.Run

func main() {
	settings := config.LoadSettings()
	closeLog := setupLogging(settings.LogPath)

	code := run(os.Args[1:], settings, os.Stdin, os.Stdout)
	closeLog()
	os.Exit(code)
}

// setupLogging sends log output to path, or discards it when path is empty.
func setupLogging(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := tea.LogToFile(path, "evopet")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() { f.Close() }
}

// run executes one invocation of the program and returns its exit code.
func run(args []string, settings config.Settings, in io.Reader, out io.Writer) int {
	balance, err := settings.Balance()
	if err != nil {
		fmt.Fprintf(out, "Error loading configuration: %v\n", err)
		return 1
	}

	p := pet.New(balance, settings.SavePath)
	d := command.NewDispatcher(p, in, out)

	inv := command.FromArgs(args)
	interactive := inv.Name == "" || inv.Name == "interactive"

	if !interactive {
		c, ok := d.Lookup(inv.Name)
		if !ok {
			fmt.Fprintf(out, "Unknown command: %s\n\n", inv.Name)
			fmt.Fprintln(out, d.Help())
			return 1
		}
		if !c.NeedsPet {
			return runWithoutPet(p, d, inv, out)
		}
	}

	if !p.Load() {
		ok, err := d.Confirm("Failed to load pet state. Would you like to create a new pet? (yes/no): ")
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
		if !ok {
			fmt.Fprintln(out, "Exiting without creating a new pet.")
			return 1
		}
		if err := d.Dispatch(command.Invocation{Name: "new", Flags: []string{"-f"}}); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
	}

	notice := catchUp(p)

	if interactive {
		log.Printf("Starting interactive mode for %s", p.Name())
		if err := startInteractive(p, d, notice); err != nil {
			fmt.Fprintf(out, "Alas, there's been an error: %v\n", err)
			return 1
		}
		return 0
	}

	if notice != "" {
		fmt.Fprintln(out, notice)
		fmt.Fprintln(out)
	}
	code := exitCode(out, d.Dispatch(inv))
	if !p.Save() {
		fmt.Fprintf(out, "Warning: could not save pet to %s\n", p.SavePath())
	}
	return code
}

// runWithoutPet runs a command that works before a pet exists. An existing
// pet is loaded first and saved afterwards so that the command still counts
// toward its achievements, as does a pet the command created.
func runWithoutPet(p *pet.State, d *command.Dispatcher, inv command.Invocation, out io.Writer) int {
	loaded := p.SaveFileExists() && p.Load()
	code := exitCode(out, d.Dispatch(inv))

	created := !loaded && !p.BirthDate().IsZero()
	if (loaded || created) && !p.Save() {
		fmt.Fprintf(out, "Warning: could not save pet to %s\n", p.SavePath())
	}
	return code
}

// catchUp applies the time spent away and returns what the player should be
// told about it.
func catchUp(p *pet.State) string {
	var lines []string
	if msg, ok := p.ApplyTimeEffects(pet.TimeNow()); ok {
		lines = append(lines, msg)
	}
	for _, k := range p.Achievements().Announce() {
		lines = append(lines, ui.RenderUnlock(k))
	}
	return strings.Join(lines, "\n")
}

func exitCode(out io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, command.ErrUnknownCommand) {
		fmt.Fprintln(out, "Unknown command. Type 'help' for usage information.")
		return 1
	}
	fmt.Fprintf(out, "Error: %v\n", err)
	return 1
}
