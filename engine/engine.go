// Package engine implements the line execution layer of the console: a table
// of named commands, a tokenizer, and the built-in help command.
//
// Commands are kept ordered by name so that help output and completions are
// stable. Lookups are byte-exact and case-sensitive.
package engine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/mwantia/console/log"
	"github.com/tidwall/btree"
)

// Func is the signature every command handler exposes to the engine. It
// receives the full token vector, args[0] being the command name.
type Func func(args []string) int

// Command is one entry of the engine's command table.
type Command struct {
	// Name is the word that selects the command.
	Name string
	// Help is the description printed by the help command.
	Help string
	// Hint is shown after the name while typing and in help output.
	Hint string
	// Func is invoked with the tokenized line.
	Func Func
	// Glossary optionally prints one line per option below the help text.
	Glossary func(w io.Writer)
}

type Config struct {
	// MaxCmdlineArgs limits the number of tokens accepted per line.
	MaxCmdlineArgs int
	// MaxLineLength limits the number of bytes accepted per line.
	MaxLineLength int
}

func DefaultConfig() Config {
	return Config{
		MaxCmdlineArgs: 32,
		MaxLineLength:  256,
	}
}

type Option func(*Engine)

// WithOutput sets where the help command prints to.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

type Engine struct {
	cfg    Config
	out    io.Writer
	logger *log.Logger

	commands *btree.Map[string, *Command]
}

func New(cfg Config, opts ...Option) *Engine {
	def := DefaultConfig()
	if cfg.MaxCmdlineArgs <= 0 {
		cfg.MaxCmdlineArgs = def.MaxCmdlineArgs
	}
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = def.MaxLineLength
	}

	e := &Engine{
		cfg:      cfg,
		out:      os.Stdout,
		logger:   log.Discard(),
		commands: btree.NewMap[string, *Command](0),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Register adds cmd to the command table. A command with the same name is
// replaced.
func (e *Engine) Register(cmd Command) error {
	if cmd.Name == "" || strings.IndexFunc(cmd.Name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: command name %q", ErrInvalidArgument, cmd.Name)
	}
	if cmd.Func == nil {
		return fmt.Errorf("%w: command %q has no handler", ErrInvalidArgument, cmd.Name)
	}

	if _, replaced := e.commands.Set(cmd.Name, &cmd); replaced {
		e.logger.Debug("Command '%s' replaced", cmd.Name)
	}
	return nil
}

// Lookup returns the command registered under name.
func (e *Engine) Lookup(name string) (Command, bool) {
	cmd, ok := e.commands.Get(name)
	if !ok {
		return Command{}, false
	}
	return *cmd, true
}

// Commands returns all registered commands ordered by name.
func (e *Engine) Commands() []Command {
	cmds := make([]Command, 0, e.commands.Len())
	e.commands.Scan(func(_ string, cmd *Command) bool {
		cmds = append(cmds, *cmd)
		return true
	})
	return cmds
}

func (e *Engine) Len() int {
	return e.commands.Len()
}

// Run tokenizes line and invokes the matching command, returning its result.
// The error is non-nil only when no command ran.
func (e *Engine) Run(line string) (int, error) {
	if len(line) > e.cfg.MaxLineLength {
		return 0, fmt.Errorf("%w: line exceeds %d bytes", ErrInvalidArgument, e.cfg.MaxLineLength)
	}

	args, err := Split(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if len(args) == 0 {
		return 0, ErrEmptyLine
	}
	if len(args) > e.cfg.MaxCmdlineArgs {
		return 0, fmt.Errorf("%w: %d given, at most %d allowed", ErrTooManyArgs, len(args), e.cfg.MaxCmdlineArgs)
	}

	cmd, ok := e.commands.Get(args[0])
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, args[0])
	}

	return cmd.Func(args), nil
}

// Complete returns the names of all commands starting with line. Nothing is
// completed once the line contains a separator.
func (e *Engine) Complete(line string) []string {
	if strings.IndexFunc(line, unicode.IsSpace) >= 0 {
		return nil
	}

	var names []string
	e.commands.Ascend(line, func(name string, _ *Command) bool {
		if !strings.HasPrefix(name, line) {
			return false
		}
		names = append(names, name)
		return true
	})
	return names
}

// Hint returns the hint of the command whose name equals line exactly.
func (e *Engine) Hint(line string) string {
	cmd, ok := e.commands.Get(line)
	if !ok {
		return ""
	}
	return cmd.Hint
}

// Deinit removes every command from the table.
func (e *Engine) Deinit() {
	e.commands.Clear()
}
