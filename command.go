package console

import (
	"io"
)

const (
	// MaxArgs is the largest number of options a single command may declare.
	MaxArgs = 8
	// MaxCommands is the default capacity of a Registry.
	MaxCommands = 32
)

// Callback handles a command declared with options. Its return value is the
// command's exit status.
type Callback func(ctx *Context) int

// SimpleFunc handles a command that parses its own arguments. args[0] is the
// command name.
type SimpleFunc func(args []string) int

// Command declares a named command together with its options. The Registry
// keeps a reference to the Command, so it must not be modified after
// registration.
type Command struct {
	// Name is the word that selects the command
	Name string `json:"name"`

	// Description is the help text printed below the name by the help command
	Description string `json:"description"`

	// Hint overrides the generated syntax summary, e.g. "-m <text> [-n <N>]"
	Hint string `json:"hint,omitempty"`

	// Callback runs once the options were parsed successfully
	Callback Callback `json:"-"`

	// Args lists the accepted options in the order their values appear in
	// Context.Values
	Args []Arg `json:"args,omitempty"`
}

// Context is passed to a Callback with the values parsed for one invocation.
// It is only valid for the duration of the call.
type Context struct {
	// Argv is the tokenized command line, Argv[0] being the command name.
	Argv []string
	// Values holds one entry per declared Arg, in declaration order. It is
	// nil for commands that declare no options.
	Values []ArgValue

	Out io.Writer
	Err io.Writer
}

// ArgCount returns the number of parsed values.
func (c *Context) ArgCount() int {
	return len(c.Values)
}

// Value returns the value at index i, or the zero value if i is out of range.
func (c *Context) Value(i int) ArgValue {
	if i < 0 || i >= len(c.Values) {
		return ArgValue{}
	}
	return c.Values[i]
}

// Has reports whether the option at index i was given.
func (c *Context) Has(i int) bool {
	return c.Value(i).Present()
}

func (c *Context) Int(i int) int {
	return c.Value(i).Int
}

func (c *Context) Str(i int) string {
	return c.Value(i).Str
}

func (c *Context) Flag(i int) bool {
	return c.Value(i).Flag
}
