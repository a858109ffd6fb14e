package stakk

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mfridman/stakk/pkg/textutil"
)

const helpWidth = 80

// DefaultUsage returns the help text of c. The root command lists the available commands; a
// function command shows its signature, documentation, arguments and flags.
func DefaultUsage(c *Command) string {
	if c == nil {
		return ""
	}

	var b strings.Builder

	if c.Description != "" {
		for _, para := range strings.Split(c.Description, "\n\n") {
			for _, line := range textutil.Wrap(para, helpWidth) {
				b.WriteString(line)
				b.WriteRune('\n')
			}
			b.WriteRune('\n')
		}
	}

	b.WriteString("Usage:\n  ")
	b.WriteString(UsageLine(c))
	b.WriteString("\n\n")

	if len(c.SubCommands) > 0 {
		rows := make([]row, 0, len(c.SubCommands))
		for _, sub := range c.SubCommands {
			rows = append(rows, row{name: sub.Name, usage: sub.ShortHelp})
		}
		b.WriteString("Commands:\n")
		writeSection(&b, rows)
		b.WriteRune('\n')
	}

	var positionals, flags []row
	for _, a := range c.Arguments {
		if a.Optional {
			flags = append(flags, row{name: flagLabel(a), usage: a.Usage})
			continue
		}
		if a.Variadic {
			positionals = append(positionals,
				row{name: ArgsName, usage: "any number of values"},
				row{name: KwargsName, usage: "key=value pairs passed by keyword"},
			)
			continue
		}
		positionals = append(positionals, row{name: a.Metavar, usage: a.Usage})
	}
	if len(positionals) > 0 {
		b.WriteString("Arguments:\n")
		writeSection(&b, positionals)
		b.WriteRune('\n')
	}
	if len(flags) > 0 {
		b.WriteString("Flags:\n")
		writeSection(&b, flags)
		b.WriteRune('\n')
	}

	if len(c.SubCommands) > 0 {
		fmt.Fprintf(&b, "Use \"%s <command> --help\" for more information about a command.\n", c.Path())
	}

	return strings.TrimRight(b.String(), "\n")
}

// UsageLine returns the one-line usage pattern of c.
//
// Example: "calc add [flags] <x> <y>"
func UsageLine(c *Command) string {
	parts := []string{c.Path()}
	if len(c.SubCommands) > 0 {
		parts = append(parts, "<command>")
	}
	hasFlags := false
	for _, a := range c.Arguments {
		if a.Optional && !a.Help {
			hasFlags = true
		}
	}
	if hasFlags {
		parts = append(parts, "[flags]")
	}
	for _, a := range c.positionals() {
		if a.Variadic {
			parts = append(parts, "[args ...]", "[key=value ...]")
			continue
		}
		parts = append(parts, "<"+a.Metavar+">")
	}
	return strings.Join(parts, " ")
}

func flagLabel(a *Argument) string {
	label := strings.Join(a.flagNames(), ", ")
	if a.Metavar != "" {
		label += " " + a.Metavar
	}
	return label
}

type row struct {
	name  string
	usage string
}

// writeSection writes rows as two aligned columns, wrapping the usage column.
func writeSection(b *strings.Builder, rows []row) {
	maxLen := 0
	for _, r := range rows {
		maxLen = max(maxLen, runewidth.StringWidth(r.name))
	}
	nameWidth := maxLen + 4
	wrapWidth := helpWidth - nameWidth

	for _, r := range rows {
		lines := textutil.Wrap(r.usage, wrapWidth)
		if len(lines) == 0 {
			fmt.Fprintf(b, "  %s\n", r.name)
			continue
		}
		fmt.Fprintf(b, "  %s%s\n", runewidth.FillRight(r.name, nameWidth), lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", indentPadding, line)
		}
	}
}
