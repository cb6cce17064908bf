package command

import (
	"fmt"

	"evopet/internal/pet"
	"evopet/internal/report"
	"evopet/internal/ui"
)

func builtins() []*Command {
	return []*Command{
		{Name: "status", Usage: "status", Help: "Show pet status", NeedsPet: true, run: runStatus},
		{Name: "feed", Usage: "feed", Help: "Feed your pet", NeedsPet: true, run: runFeed},
		{Name: "play", Usage: "play", Help: "Play with your pet", NeedsPet: true, run: runPlay},
		{Name: "evolve", Usage: "evolve", Help: "Show evolution progress", NeedsPet: true, run: runEvolve},
		{Name: "achievements", Usage: "achievements", Help: "Show all achievements and progress", NeedsPet: true, run: runAchievements},
		{Name: "export", Usage: "export [file.csv]", Help: "Export achievement progress as CSV", NeedsPet: true, run: runExport},
		{Name: "new", Usage: "new [-f] [name]", Help: "Create a new pet (use -f to force overwrite)", run: runNew},
		{Name: "help", Usage: "help", Help: "Show this help message", run: runHelp},
	}
}

func runStatus(d *Dispatcher, _ Invocation) error {
	d.println(ui.RenderStatus(d.pet, pet.TimeNow()))
	return nil
}

func runFeed(d *Dispatcher, _ Invocation) error {
	res := d.pet.Feed(pet.TimeNow())

	// FirstSteps is announced here rather than by the sweep
	if res.FirstFeed {
		d.println(firstStepsNotice())
	}

	switch {
	case res.Evolved:
		d.println(ui.RenderEvolved(d.pet))
	case res.WasFull && res.NowFull:
		d.println(ui.RenderMessage("Your pet is already full! It doesn't want to eat more."))
	case res.NowFull:
		d.println(ui.RenderMessage("Your pet is now full and very satisfied!"))
	default:
		d.println(ui.RenderMessage("Your pet enjoys the food and feels less hungry."))
	}

	d.showStat("Hunger", d.pet.Hunger())
	d.showXP()
	return nil
}

func runPlay(d *Dispatcher, _ Invocation) error {
	res := d.pet.Play(pet.TimeNow())

	switch {
	case res.Evolved:
		d.println(ui.RenderEvolved(d.pet))
	case res.WasMax && d.pet.Happiness() >= d.pet.MaxStat():
		d.println(ui.RenderMessage("Your pet is already extremely happy! It's having the time of its life!"))
	default:
		d.println(ui.RenderMessage("Your pet jumps around playfully. It's having fun!"))
	}

	d.showStat("Happiness", d.pet.Happiness())
	d.showStat("Energy", d.pet.Energy())
	d.showXP()
	return nil
}

func runEvolve(d *Dispatcher, _ Invocation) error {
	d.println(ui.RenderEvolution(d.pet))
	return nil
}

func runAchievements(d *Dispatcher, _ Invocation) error {
	d.println(ui.RenderAchievements(d.pet))
	return nil
}

func runExport(d *Dispatcher, inv Invocation) error {
	path := inv.Arg(0, report.DefaultPath)
	if err := report.ExportAchievements(path, d.pet.Achievements()); err != nil {
		return err
	}
	d.printf("Exported achievement progress to %s\n", path)
	return nil
}

func runNew(d *Dispatcher, inv Invocation) error {
	force := inv.HasFlag("-f", "--force")
	if d.pet.SaveFileExists() && !force {
		ok, err := d.Confirm("A pet already exists. Do you want to overwrite it? (yes/no): ")
		if err != nil {
			return err
		}
		if !ok {
			d.println("Pet creation cancelled.")
			return nil
		}
	}

	var name string
	if len(inv.Args) > 0 {
		name = inv.Args[0]
	} else {
		answer, err := d.prompt("Enter a name for your new pet: ")
		if err != nil {
			return err
		}
		name = answer
	}
	d.pet.Initialize(name)
	if !d.pet.Save() {
		return fmt.Errorf("saving new pet to %s failed", d.pet.SavePath())
	}

	d.printf("\nCreated a new pet named '%s'!\n", d.pet.Name())
	d.println(ui.RenderStatus(d.pet, pet.TimeNow()))
	return nil
}

func runHelp(d *Dispatcher, _ Invocation) error {
	d.println(d.Help())
	return nil
}
