package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mwantia/console/engine"
	"github.com/mwantia/console/lineedit"
	"github.com/mwantia/console/log"
)

const dumbNotice = "Your terminal application does not support escape sequences.\n" +
	"Line editing and history features are disabled.\n" +
	"On Windows, try using Putty instead."

// registerHelp adds the help command to the engine.
var registerHelp = (*engine.Engine).RegisterHelp

// Session is one interactive console: it owns the engine, the registry of
// declared commands, the line reader and the optional history store.
type Session struct {
	mu     sync.Mutex
	id     string
	cfg    Config
	logger *log.Logger

	options  *SessionOptions
	engine   *engine.Engine
	registry *Registry

	reader       lineedit.Reader
	storeHistory bool
	prompt       string
	initialized  bool
}

func NewSession(opts ...SessionOption) (*Session, error) {
	options := newDefaultSessionOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	cfg := options.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("console", log.WithWriter(options.Err))
	}

	eng := engine.New(engine.Config{
		MaxCmdlineArgs: cfg.MaxCmdlineArgs,
		MaxLineLength:  cfg.MaxLineLength,
	}, engine.WithOutput(options.Out), engine.WithLogger(logger.Named("engine")))

	ropts := append([]RegistryOption{
		WithMaxCommands(cfg.MaxCommands),
		WithRegistryLogger(logger.Named("registry")),
		WithStreams(options.Out, options.Err),
	}, options.Registry...)

	registry, err := NewRegistry(eng, ropts...)
	if err != nil {
		return nil, err
	}

	return &Session{
		id:       uuid.Must(uuid.NewV7()).String(),
		cfg:      cfg,
		logger:   logger,
		options:  options,
		engine:   eng,
		registry: registry,
	}, nil
}

// ID returns the unique identifier of this session.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) Engine() *engine.Engine {
	return s.engine
}

func (s *Session) Registry() *Registry {
	return s.registry
}

// Register adds a command declared with options.
func (s *Session) Register(cmd *Command) error {
	return s.registry.Register(cmd)
}

// RegisterSimple adds a command that parses its own arguments.
func (s *Session) RegisterSimple(name, description string, fn SimpleFunc) error {
	return s.registry.RegisterSimple(name, description, fn)
}

// RegisterMany adds cmds in order, stopping at the first failure.
func (s *Session) RegisterMany(cmds []Command) error {
	return s.registry.RegisterMany(cmds)
}

// Init prepares the history, the line reader and the help command, then
// prints the banner. Calling Init on an initialized session does nothing.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		s.logger.Warn("Console already initialized")
		return nil
	}

	s.storeHistory = false
	if s.cfg.StoreHistory {
		s.storeHistory = s.openHistory(ctx)
	}

	s.reader = s.options.Reader
	if s.reader == nil {
		s.reader = s.newReader()
	}
	s.reader.History().SetMaxLen(s.cfg.HistoryMaxLen)

	if s.storeHistory {
		lines, err := s.options.Store.Load(ctx)
		if err != nil {
			s.logger.Warn("Failed to load history: %v", err)
		} else {
			s.reader.History().Load(lines)
			s.logger.Info("Loaded %d history entries from %s", s.reader.History().Len(), s.options.Store.Name())
		}
	}

	if s.cfg.RegisterHelp {
		if err := registerHelp(s.engine); err != nil {
			s.closeHistory(ctx)
			return fmt.Errorf("failed to register help command: %w", err)
		}
	}

	s.prompt = s.renderPrompt()

	if !s.options.NoBanner {
		banner := s.cfg.Banner
		if banner == "" {
			banner = DefaultBanner
		}
		fmt.Fprintf(s.options.Out, "\n%s\n", banner)

		if s.reader.Dumb() {
			fmt.Fprintf(s.options.Out, "\n%s\n", dumbNotice)
		}
	}

	s.initialized = true
	s.logger.Info("Console successfully initialized (session %s)", s.id)
	return nil
}

// openHistory opens the configured store. A store that cannot be opened only
// disables persistence.
func (s *Session) openHistory(ctx context.Context) bool {
	store := s.options.Store
	if store == nil {
		s.logger.Warn("No history store configured, history will not be saved")
		return false
	}

	if err := store.Open(ctx); err != nil {
		s.logger.Warn("Failed to open %s history store (%v), history will not be saved", store.Name(), err)
		return false
	}
	return true
}

// closeHistory closes the store if Init opened it.
func (s *Session) closeHistory(ctx context.Context) error {
	if !s.storeHistory {
		return nil
	}
	s.storeHistory = false

	err := s.options.Store.Close(ctx)
	if err != nil {
		s.logger.Warn("Failed to close history store: %v", err)
	}
	return err
}

func (s *Session) newReader() lineedit.Reader {
	history := lineedit.NewHistory(s.cfg.HistoryMaxLen)

	in, inIsFile := s.options.In.(*os.File)
	out, outIsFile := s.options.Out.(*os.File)
	if !inIsFile || !outIsFile || !lineedit.Probe(in, out) {
		return lineedit.NewDumbReader(s.options.In, s.options.Out, history, s.cfg.MaxLineLength)
	}

	opts := []lineedit.EditorOption{
		lineedit.WithIO(in, out),
		lineedit.WithHistory(history),
		lineedit.WithCompleter(s.engine.Complete),
		lineedit.WithHinter(s.engine.Hint),
		lineedit.WithCharLimit(s.cfg.MaxLineLength),
	}
	if !s.cfg.Colors {
		opts = append(opts, lineedit.WithoutColor())
	}
	return lineedit.NewEditor(opts...)
}

// renderPrompt colours the prompt unless the reader cannot display escape
// sequences.
func (s *Session) renderPrompt() string {
	prompt := s.cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if !s.cfg.Colors || s.reader.Dumb() {
		return prompt
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(prompt)
}

// Prompt returns the prompt shown before every line.
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return s.cfg.Prompt
	}
	return s.prompt
}

// Run reads and executes lines until the input ends or ctx is cancelled.
// Failing commands never stop the loop.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	initialized := s.initialized
	s.mu.Unlock()

	if !initialized {
		return fmt.Errorf("%w: console not initialized", ErrInvalidState)
	}

	for ctx.Err() == nil {
		line, err := s.reader.ReadLine(ctx, s.prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				break
			}
			s.logger.Error("Failed to read line: %v", err)
			return err
		}

		if strings.TrimSpace(line) != "" {
			s.remember(ctx, line)
		}
		s.execute(line)
	}

	s.logger.Info("Console terminated")
	return nil
}

// remember adds line to the history and persists it when enabled.
func (s *Session) remember(ctx context.Context, line string) {
	history := s.reader.History()
	if !history.Add(line) || !s.storeHistory {
		return
	}

	if err := s.options.Store.Save(ctx, history.Lines()); err != nil {
		s.logger.Warn("Failed to save history: %v", err)
	}
}

// Exec runs a single line as if it was typed, reporting failures the same
// way Run does.
func (s *Session) Exec(line string) (int, error) {
	return s.execute(line)
}

func (s *Session) execute(line string) (int, error) {
	ret, err := s.engine.Run(line)

	switch {
	case errors.Is(err, engine.ErrNotFound):
		fmt.Fprintln(s.options.Out, "Command not recognized")
	case errors.Is(err, engine.ErrEmptyLine):
		// Command was empty
	case err != nil:
		fmt.Fprintf(s.options.Out, "Internal error: %v\n", err)
	case ret != 0:
		fmt.Fprintf(s.options.Out, "Command returned error: 0x%x (%d)\n", ret, ret)
	}

	return ret, err
}

// Deinit removes every command, releases the compiled tables and closes the
// history store. The session can be initialized again afterwards.
func (s *Session) Deinit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil
	}

	s.engine.Deinit()
	s.registry.Reset()

	err := s.closeHistory(ctx)

	s.initialized = false
	s.logger.Info("Console finalized")
	return err
}
