package builtin

import (
	"fmt"

	"github.com/mwantia/console"
	"github.com/mwantia/console/internal/gpio"
)

const (
	gpioPin = iota
	gpioMode
	gpioPull
	gpioLevel
	gpioInfo
	gpioSave
)

func (b *Builtins) gpioCommand() console.Command {
	return console.Command{
		Name:        "gpio",
		Description: "Configure a GPIO (mode, pull, level)",
		Callback:    b.gpio,
		Args: []console.Arg{
			{Short: "p", Long: "pin", DataType: "<0-48>", Description: "GPIO number", Kind: console.ArgInt, Required: true},
			{Short: "m", Long: "mode", DataType: "<in|out|od>", Description: "Mode: in, out, od, inout, inout_od", Kind: console.ArgString, Required: true},
			{Long: "pull", DataType: "<up|down|none>", Description: "Resistor pull: up, down, both, none", Kind: console.ArgString},
			{Short: "l", Long: "level", DataType: "<0|1>", Description: "Initial level (for output)", Kind: console.ArgInt},
			{Short: "i", Long: "info", Description: "Show extra GPIO information", Kind: console.ArgFlag},
			{Short: "s", Long: "save", Description: "Save configuration", Kind: console.ArgFlag},
		},
	}
}

func (b *Builtins) gpio(ctx *console.Context) int {
	pin := ctx.Int(gpioPin)
	if pin < 0 || pin >= gpio.NumPins {
		fmt.Fprintf(ctx.Out, "ERROR: GPIO %d invalid. Use 0-%d\n", pin, gpio.NumPins-1)
		return 1
	}
	if gpio.IsReserved(pin) {
		fmt.Fprintf(ctx.Out, "WARNING: GPIO %d may be reserved for flash/PSRAM\n", pin)
	}

	mode, err := gpio.ParseMode(ctx.Str(gpioMode))
	if err != nil {
		fmt.Fprintf(ctx.Out, "ERROR: Mode '%s' invalid. Use: in, out, od, inout, inout_od\n", ctx.Str(gpioMode))
		return 1
	}

	pullStr := "none"
	if ctx.Has(gpioPull) {
		pullStr = ctx.Str(gpioPull)
	}
	pull, err := gpio.ParsePull(pullStr)
	if err != nil {
		fmt.Fprintf(ctx.Out, "ERROR: Pull '%s' invalid. Use: up, down, both, none\n", pullStr)
		return 1
	}

	level := -1
	if ctx.Has(gpioLevel) {
		level = ctx.Int(gpioLevel)
		if level != 0 && level != 1 {
			fmt.Fprintf(ctx.Out, "ERROR: Level must be 0 or 1, received: %d\n", level)
			return 1
		}
	}

	fmt.Fprintln(ctx.Out)
	fmt.Fprintln(ctx.Out, "+-----------------------------------------+")
	fmt.Fprintf(ctx.Out, "|       Configuring GPIO %-2d               |\n", pin)
	fmt.Fprintln(ctx.Out, "+-----------------------------------------+")

	state, err := b.bank.Configure(pin, mode, pull, level)
	if err != nil {
		fmt.Fprintf(ctx.Out, "|  ERROR: %-30s |\n", err)
		fmt.Fprintln(ctx.Out, "+-----------------------------------------+")
		return 1
	}

	fmt.Fprintf(ctx.Out, "|  Mode:      %-27s |\n", state.Mode)
	fmt.Fprintf(ctx.Out, "|  Pull:      %-27s |\n", state.Pull)
	if state.Mode != gpio.ModeInput {
		fmt.Fprintf(ctx.Out, "|  Level:     %-27s |\n", levelName(state.Level))
	}
	if ctx.Flag(gpioInfo) {
		fmt.Fprintf(ctx.Out, "|  Reads:     %-27s |\n", levelName(b.bank.Read(pin)))
		fmt.Fprintf(ctx.Out, "|  Drives:    %-27t |\n", state.Mode.Drives())
	}
	fmt.Fprintf(ctx.Out, "|  Status:    %-27s |\n", "OK - Configured")

	if ctx.Flag(gpioSave) {
		fmt.Fprintln(ctx.Out, "+-----------------------------------------+")
		fmt.Fprintln(ctx.Out, "|  Configuration saved!                    |")
		b.logger.Info("GPIO %d config saved (mode=%s, pull=%s, level=%d)", pin, state.Mode, state.Pull, state.Level)
	}

	fmt.Fprintln(ctx.Out, "+-----------------------------------------+")
	fmt.Fprintln(ctx.Out)
	return 0
}

func levelName(level int) string {
	if level != 0 {
		return "HIGH (1)"
	}
	return "LOW (0)"
}
