// Package command parses command lines and runs them against the pet.
package command

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Line is one command line: a command name followed by flags and arguments.
type Line struct {
	Name string `@Word`
	Args []*Arg `@@*`
}

// Arg is a flag such as -f, a quoted string or a bare word.
type Arg struct {
	Flag   *string `  @Flag`
	Quoted *string `| @String`
	Word   *string `| @Word`
}

var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Flag", Pattern: `--?[A-Za-z][A-Za-z0-9-]*`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Word", Pattern: `[^\s"]+`},
})

var lineParser = participle.MustBuild[Line](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace"),
)

// Invocation is a parsed command ready to dispatch.
type Invocation struct {
	Name  string   // lower-cased
	Flags []string // with their leading dashes
	Args  []string
}

// HasFlag reports whether any of names was given.
func (inv Invocation) HasFlag(names ...string) bool {
	for _, f := range inv.Flags {
		for _, n := range names {
			if f == n {
				return true
			}
		}
	}
	return false
}

// Arg returns the i-th positional argument, or def when there is none.
func (inv Invocation) Arg(i int, def string) string {
	if i < len(inv.Args) {
		return inv.Args[i]
	}
	return def
}

// Parse turns a typed command line into an Invocation.
func Parse(line string) (Invocation, error) {
	ast, err := lineParser.ParseString("", line)
	if err != nil {
		return Invocation{}, fmt.Errorf("parsing %q: %w", line, err)
	}

	inv := Invocation{Name: strings.ToLower(ast.Name)}
	for _, a := range ast.Args {
		switch {
		case a.Flag != nil:
			inv.Flags = append(inv.Flags, *a.Flag)
		case a.Quoted != nil:
			inv.Args = append(inv.Args, strings.Trim(*a.Quoted, `"`))
		case a.Word != nil:
			inv.Args = append(inv.Args, *a.Word)
		}
	}
	return inv, nil
}

// FromArgs builds an Invocation from already split process arguments.
func FromArgs(args []string) Invocation {
	if len(args) == 0 {
		return Invocation{}
	}
	inv := Invocation{Name: strings.ToLower(args[0])}
	for _, a := range args[1:] {
		if len(a) > 1 && a[0] == '-' {
			inv.Flags = append(inv.Flags, a)
		} else {
			inv.Args = append(inv.Args, a)
		}
	}
	return inv
}
