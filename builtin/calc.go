package builtin

import (
	"fmt"

	"github.com/mwantia/console"
	"github.com/shopspring/decimal"
)

func (b *Builtins) calcCommand() console.Command {
	return console.Command{
		Name:        "calc",
		Description: "Simple calculator (addition, subtraction, multiplication, division)",
		Callback:    b.calc,
		Args: []console.Arg{
			{Short: "a", DataType: "<num>", Description: "First number", Kind: console.ArgInt, Required: true},
			{Short: "b", DataType: "<num>", Description: "Second number", Kind: console.ArgInt, Required: true},
			{Short: "v", Long: "verbose", Description: "Shows all operations", Kind: console.ArgFlag},
		},
	}
}

func (b *Builtins) calc(ctx *console.Context) int {
	a, bv := ctx.Int(0), ctx.Int(1)
	x, y := decimal.NewFromInt(int64(a)), decimal.NewFromInt(int64(bv))

	if !ctx.Flag(2) {
		fmt.Fprintf(ctx.Out, "Sum: %s\n", x.Add(y))
		return 0
	}

	fmt.Fprintf(ctx.Out, "Calculating operations with A=%d and B=%d\n", a, bv)
	fmt.Fprintf(ctx.Out, "  Addition:        %d + %d = %s\n", a, bv, x.Add(y))
	fmt.Fprintf(ctx.Out, "  Subtraction:     %d - %d = %s\n", a, bv, x.Sub(y))
	fmt.Fprintf(ctx.Out, "  Multiplication:  %d * %d = %s\n", a, bv, x.Mul(y))
	if y.IsZero() {
		fmt.Fprintln(ctx.Out, "  Division:        undefined (B=0)")
	} else {
		fmt.Fprintf(ctx.Out, "  Division:        %d / %d = %s\n", a, bv, x.Div(y))
	}
	return 0
}
