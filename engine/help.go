package engine

import (
	"fmt"
	"io"
	"strings"
)

const helpText = "Print the summary of all registered commands if no arguments are given,\n" +
	"otherwise print summary of given command."

// RegisterHelp adds the "help [<string>]" command.
func (e *Engine) RegisterHelp() error {
	return e.Register(Command{
		Name: "help",
		Help: helpText,
		Hint: "[<string>]",
		Func: e.help,
		Glossary: func(w io.Writer) {
			fmt.Fprintf(w, "  %-20s %s\n", "<string>", "Name of command")
		},
	})
}

func (e *Engine) help(args []string) int {
	switch len(args) {
	case 1:
		for _, cmd := range e.Commands() {
			printCommand(e.out, cmd)
		}
		return 0

	case 2:
		cmd, ok := e.Lookup(args[1])
		if !ok {
			fmt.Fprintf(e.out, "help: Unrecognized option '%s'. Please use correct command.\n", args[1])
			return 1
		}
		printCommand(e.out, cmd)
		return 0

	default:
		fmt.Fprintf(e.out, "help: too many arguments\n")
		return 1
	}
}

func printCommand(w io.Writer, cmd Command) {
	if cmd.Hint != "" {
		fmt.Fprintf(w, "%s  %s\n", cmd.Name, cmd.Hint)
	} else {
		fmt.Fprintf(w, "%s\n", cmd.Name)
	}

	if cmd.Help != "" {
		for _, line := range strings.Split(cmd.Help, "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	if cmd.Glossary != nil {
		cmd.Glossary(w)
	}
	fmt.Fprintln(w)
}
