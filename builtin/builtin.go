// Package builtin provides a set of demonstration commands: hello, status and
// about parse their own arguments, while echo, calc and gpio declare options.
package builtin

import (
	"fmt"
	"io"
	"os"

	"github.com/mwantia/console"
	"github.com/mwantia/console/internal/gpio"
	"github.com/mwantia/console/log"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Registrar is satisfied by console.Session and console.Registry.
type Registrar interface {
	RegisterSimple(name, description string, fn console.SimpleFunc) error
	RegisterMany(cmds []console.Command) error
}

type Option func(*Builtins)

// WithOutput sets where simple commands print to.
func WithOutput(w io.Writer) Option {
	return func(b *Builtins) {
		b.out = w
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(b *Builtins) {
		b.logger = logger
	}
}

// WithBank shares a pin bank between several consoles.
func WithBank(bank *gpio.Bank) Option {
	return func(b *Builtins) {
		b.bank = bank
	}
}

// Builtins owns the descriptors of the demonstration commands. It must
// outlive every registry it was registered with.
type Builtins struct {
	out    io.Writer
	logger *log.Logger
	bank   *gpio.Bank

	memory func() (*mem.VirtualMemoryStat, error)
	host   func() (*host.InfoStat, error)

	commands []console.Command
}

func New(opts ...Option) *Builtins {
	b := &Builtins{
		out:    os.Stdout,
		logger: log.Discard(),
		bank:   gpio.NewBank(),
		memory: mem.VirtualMemory,
		host:   host.Info,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.commands = []console.Command{
		b.echoCommand(),
		b.calcCommand(),
		b.gpioCommand(),
	}
	return b
}

// Register adds all commands to r.
func (b *Builtins) Register(r Registrar) error {
	simple := []struct {
		name        string
		description string
		fn          console.SimpleFunc
	}{
		{"hello", "Prints Hello World", b.hello},
		{"status", "Shows system status (memory, Go version)", b.status},
		{"about", "Prints project information", b.about},
	}

	for _, cmd := range simple {
		if err := r.RegisterSimple(cmd.name, cmd.description, cmd.fn); err != nil {
			return fmt.Errorf("failed to register %s: %w", cmd.name, err)
		}
	}

	if err := r.RegisterMany(b.commands); err != nil {
		return err
	}

	b.logger.Info("Builtin commands registered: hello, status, about, echo, calc, gpio")
	return nil
}

// Bank returns the pins driven by the gpio command.
func (b *Builtins) Bank() *gpio.Bank {
	return b.bank
}
