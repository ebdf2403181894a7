package console

import (
	"fmt"

	"github.com/mwantia/console/engine"
	"github.com/mwantia/console/log"
)

// registryEntry pairs a registered Command with its compiled table. table is
// nil for commands that declare no options.
type registryEntry struct {
	cmd      *Command
	table    *argTable
	argCount int
}

// Registry owns the compiled tables of all declared commands and routes
// engine invocations back to their callbacks. Entries are only appended,
// and all of them are released together by Reset.
type Registry struct {
	engine  *engine.Engine
	logger  *log.Logger
	options *RegistryOptions

	entries []registryEntry
}

func NewRegistry(eng *engine.Engine, opts ...RegistryOption) (*Registry, error) {
	if eng == nil {
		return nil, fmt.Errorf("%w: engine is nil", ErrInvalidArgument)
	}

	options := newDefaultRegistryOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	return &Registry{
		engine:  eng,
		logger:  options.Logger,
		options: options,
		entries: make([]registryEntry, 0, options.MaxCommands),
	}, nil
}

// Register compiles cmd and adds it to the registry and the engine. On
// failure the registry is left unchanged.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.Name == "" || cmd.Callback == nil {
		r.logger.Error("Invalid parameters")
		return fmt.Errorf("%w: command requires a name and a callback", ErrInvalidArgument)
	}
	if len(r.entries) >= cap(r.entries) {
		r.logger.Error("Command limit reached (%d)", cap(r.entries))
		return fmt.Errorf("%w: %d commands registered", ErrCapacityExceeded, cap(r.entries))
	}

	table, err := compileTable(cmd)
	if err != nil {
		r.logger.Error("Failed to build argtable for command '%s': %v", cmd.Name, err)
		return err
	}

	ec := engine.Command{
		Name: cmd.Name,
		Help: cmd.Description,
		Hint: cmd.Hint,
		Func: r.Dispatch,
	}
	if table != nil {
		if ec.Hint == "" {
			ec.Hint = table.syntax()
		}
		ec.Glossary = table.glossary
	}

	if err := r.engine.Register(ec); err != nil {
		if table != nil {
			table.release()
		}
		r.logger.Error("Failed to register command '%s': %v", cmd.Name, err)
		return fmt.Errorf("console: register %q: %w", cmd.Name, err)
	}

	r.entries = append(r.entries, registryEntry{
		cmd:      cmd,
		table:    table,
		argCount: len(cmd.Args),
	})

	r.logger.Info("Command '%s' registered with %d arguments", cmd.Name, len(cmd.Args))
	return nil
}

// RegisterSimple adds a command that receives the raw argument vector. It is
// handed to the engine directly and does not occupy a registry slot.
func (r *Registry) RegisterSimple(name, description string, fn SimpleFunc) error {
	if name == "" || fn == nil {
		r.logger.Error("Invalid parameters")
		return fmt.Errorf("%w: command requires a name and a function", ErrInvalidArgument)
	}

	if err := r.engine.Register(engine.Command{
		Name: name,
		Help: description,
		Func: engine.Func(fn),
	}); err != nil {
		r.logger.Error("Failed to register simple command '%s': %v", name, err)
		return fmt.Errorf("console: register %q: %w", name, err)
	}

	r.logger.Info("Simple command '%s' registered", name)
	return nil
}

// RegisterMany registers cmds in order and stops at the first failure.
// Commands registered before the failure stay registered.
func (r *Registry) RegisterMany(cmds []Command) error {
	if len(cmds) == 0 {
		r.logger.Error("Invalid parameters")
		return fmt.Errorf("%w: no commands given", ErrInvalidArgument)
	}

	for i := range cmds {
		if err := r.Register(&cmds[i]); err != nil {
			r.logger.Error("Failed to register command %d: %v", i, err)
			return err
		}
	}

	r.logger.Info("Registered %d commands", len(cmds))
	return nil
}

// Dispatch runs the command named by argv[0]: it parses the remaining
// arguments, fills a Context and calls the Callback. Parse errors are
// printed and returned as 1 without calling the Callback.
func (r *Registry) Dispatch(argv []string) int {
	if len(argv) == 0 {
		r.logger.Error("Dispatch called without arguments")
		return 1
	}

	entry := r.find(argv[0])
	if entry == nil {
		r.logger.Error("Command '%s' not found in registry", argv[0])
		fmt.Fprintf(r.options.Err, "%s: internal error, command is not registered\n", argv[0])
		return 1
	}

	ctx := &Context{
		Argv: argv,
		Out:  r.options.Out,
		Err:  r.options.Err,
	}

	if entry.table != nil {
		if n := entry.table.parse(argv); n > 0 {
			entry.table.printErrors(r.options.Err, argv[0])
			return 1
		}
		ctx.Values = entry.table.values()
	}

	return entry.cmd.Callback(ctx)
}

// find returns the first entry named name.
func (r *Registry) find(name string) *registryEntry {
	for i := range r.entries {
		if r.entries[i].cmd.Name == name {
			return &r.entries[i]
		}
	}
	return nil
}

// Lookup returns the first registered command named name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	entry := r.find(name)
	if entry == nil {
		return nil, false
	}
	return entry.cmd, true
}

// Len returns the number of occupied slots.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Cap returns the maximum number of commands.
func (r *Registry) Cap() int {
	return cap(r.entries)
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command {
	cmds := make([]*Command, len(r.entries))
	for i, entry := range r.entries {
		cmds[i] = entry.cmd
	}
	return cmds
}

// Reset releases every compiled table and empties the registry.
func (r *Registry) Reset() {
	for i := range r.entries {
		if r.entries[i].table != nil {
			r.entries[i].table.release()
		}
		r.entries[i] = registryEntry{}
	}
	r.entries = r.entries[:0]
}
