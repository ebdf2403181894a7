package builtin

import (
	"fmt"
	"strings"

	"github.com/mwantia/console"
)

const (
	echoMsg = iota
	echoRepeat
	echoUppercase
)

func (b *Builtins) echoCommand() console.Command {
	return console.Command{
		Name:        "echo",
		Description: "Repeats a message N times",
		Callback:    b.echo,
		Args: []console.Arg{
			{Short: "m", Long: "msg", DataType: "<text>", Description: "Message to be displayed", Kind: console.ArgString, Required: true},
			{Short: "n", Long: "repeat", DataType: "<N>", Description: "Number of repetitions (default: 1)", Kind: console.ArgInt},
			{Short: "u", Long: "uppercase", Description: "Converts to uppercase", Kind: console.ArgFlag},
		},
	}
}

func (b *Builtins) echo(ctx *console.Context) int {
	msg := ctx.Str(echoMsg)

	repeat := 1
	if ctx.Has(echoRepeat) {
		repeat = ctx.Int(echoRepeat)
	}
	if ctx.Flag(echoUppercase) {
		msg = strings.ToUpper(msg)
	}

	for i := 0; i < repeat; i++ {
		fmt.Fprintln(ctx.Out, msg)
	}
	return 0
}
