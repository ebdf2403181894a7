package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mwantia/console/history"
	"github.com/mwantia/console/lineedit"
	"github.com/mwantia/console/log"
)

type RegistryOptions struct {
	MaxCommands int
	Logger      *log.Logger
	Out         io.Writer
	Err         io.Writer
}

type RegistryOption func(*RegistryOptions) error

func newDefaultRegistryOptions() *RegistryOptions {
	return &RegistryOptions{
		MaxCommands: MaxCommands,
		Logger:      log.Discard(),
		Out:         os.Stdout,
		Err:         os.Stderr,
	}
}

// WithMaxCommands sets the capacity of the registry.
func WithMaxCommands(n int) RegistryOption {
	return func(opts *RegistryOptions) error {
		if n <= 0 {
			return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidArgument, n)
		}
		opts.MaxCommands = n
		return nil
	}
}

func WithRegistryLogger(logger *log.Logger) RegistryOption {
	return func(opts *RegistryOptions) error {
		opts.Logger = logger
		return nil
	}
}

// WithStreams sets the writers exposed to callbacks through Context. Parse
// errors are printed to errw.
func WithStreams(out, errw io.Writer) RegistryOption {
	return func(opts *RegistryOptions) error {
		opts.Out = out
		opts.Err = errw
		return nil
	}
}

type SessionOptions struct {
	Config   Config
	Logger   *log.Logger
	Store    history.Store
	Reader   lineedit.Reader
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
	NoBanner bool
	Registry []RegistryOption
}

type SessionOption func(*SessionOptions) error

func newDefaultSessionOptions() *SessionOptions {
	return &SessionOptions{
		Config: DefaultConfig(),
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

func WithConfig(cfg Config) SessionOption {
	return func(opts *SessionOptions) error {
		opts.Config = cfg
		return nil
	}
}

func WithLogger(logger *log.Logger) SessionOption {
	return func(opts *SessionOptions) error {
		opts.Logger = logger
		return nil
	}
}

// WithHistoryStore sets where the command history is persisted. It is only
// used when Config.StoreHistory is enabled.
func WithHistoryStore(store history.Store) SessionOption {
	return func(opts *SessionOptions) error {
		opts.Store = store
		return nil
	}
}

// WithReader replaces the line editor chosen by probing the terminal.
func WithReader(reader lineedit.Reader) SessionOption {
	return func(opts *SessionOptions) error {
		opts.Reader = reader
		return nil
	}
}

func WithInput(in io.Reader) SessionOption {
	return func(opts *SessionOptions) error {
		opts.In = in
		return nil
	}
}

func WithOutput(out, errw io.Writer) SessionOption {
	return func(opts *SessionOptions) error {
		opts.Out = out
		opts.Err = errw
		return nil
	}
}

// WithoutBanner skips the banner and the dumb terminal notice printed by Init.
func WithoutBanner() SessionOption {
	return func(opts *SessionOptions) error {
		opts.NoBanner = true
		return nil
	}
}

func WithRegistryOptions(ropts ...RegistryOption) SessionOption {
	return func(opts *SessionOptions) error {
		opts.Registry = append(opts.Registry, ropts...)
		return nil
	}
}
