package builtin

import (
	"fmt"
	"runtime"
	"time"
)

func (b *Builtins) hello(args []string) int {
	fmt.Fprintln(b.out, "Hello World! Welcome to the console!")
	return 0
}

func (b *Builtins) status(args []string) int {
	vm, err := b.memory()
	if err != nil {
		fmt.Fprintf(b.out, "status: failed to read memory: %v\n", err)
		return 1
	}

	fmt.Fprintln(b.out, "+--------------------------+")
	fmt.Fprintln(b.out, "|     System Status        |")
	fmt.Fprintln(b.out, "+--------------------------+")
	fmt.Fprintf(b.out, "|  Free mem:  %6d MiB   |\n", vm.Available>>20)
	fmt.Fprintf(b.out, "|  Total mem: %6d MiB   |\n", vm.Total>>20)
	if info, err := b.host(); err == nil {
		uptime := (time.Duration(info.Uptime) * time.Second).String()
		fmt.Fprintf(b.out, "|  Uptime:    %-12s |\n", uptime)
	}
	fmt.Fprintf(b.out, "|  Go ver:    %-12s |\n", runtime.Version())
	fmt.Fprintln(b.out, "+--------------------------+")
	return 0
}

func (b *Builtins) about(args []string) int {
	fmt.Fprintln(b.out, "Console Example")
	fmt.Fprintln(b.out, "  A declarative command layer for line-oriented consoles.")
	fmt.Fprintln(b.out, "  See: https://github.com/mwantia/console")
	return 0
}
