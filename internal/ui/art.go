package ui

import (
	"strings"

	"evopet/internal/pet"
)

// levelArt holds one drawing per evolution level, line by line. Some drawings
// use backquotes, so they are not raw strings.
var levelArt = map[pet.EvolutionLevel][]string{
	pet.Egg: {
		"  .-.",
		" /   \\",
		" \\   /",
		"  '-'",
	},
	pet.Baby: {
		" |\\_/|",
		" `o.o'",
		" =(_)=",
	},
	pet.Child: {
		"  ^__^",
		" (o.o)",
		" (___)",
	},
	pet.Teen: {
		"  /\\_/\\",
		" ( o.o )",
		"  > ^ <",
	},
	pet.Adult: {
		"  /\\_/\\",
		" ( ^.^ )",
		" (>   <)",
		"   ---",
	},
	pet.Master: {
		"  .       .",
		"  \\`-\"'\"-'/",
		"   } 6 6 {",
		"  =.  Y  ,=",
		"    /^^^\\  .",
		"   /     \\  )",
		"  (  )-(  )/",
		"   \"\"   \"\"",
	},
	pet.Ancient: {
		"        .     .",
		"        |\\-=-/|",
		"     /| |O _ O| |\\",
		"   /' \\ \\_^-^_/ / `\\",
		" /'    \\-/ ~ \\-/    `\\",
		" |      /\\\\ //\\      |",
		"  \\|\\|\\/-\"\"-\"\"-\\/|/|/",
	},
}

// RenderArt returns the drawing for level.
func RenderArt(level pet.EvolutionLevel) string {
	lines, ok := levelArt[level]
	if !ok {
		return "Unknown evolution level"
	}
	return artStyle.Render(strings.Join(lines, "\n"))
}
