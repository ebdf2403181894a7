package console

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/mwantia/console/engine"
)

type recorder struct {
	calls []*Context
	ret   int
}

func (r *recorder) callback(ctx *Context) int {
	r.calls = append(r.calls, ctx)
	return r.ret
}

func newTestRegistry(t *testing.T, opts ...RegistryOption) (*Registry, *engine.Engine, *bytes.Buffer) {
	t.Helper()

	var errw bytes.Buffer
	eng := engine.New(engine.DefaultConfig())
	reg, err := NewRegistry(eng, append([]RegistryOption{WithStreams(&bytes.Buffer{}, &errw)}, opts...)...)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	return reg, eng, &errw
}

func TestRegistry_EchoScenario(t *testing.T) {
	reg, eng, errw := newTestRegistry(t)
	rec := &recorder{}

	echo := &Command{
		Name:        "echo",
		Description: "Echo a message",
		Callback:    rec.callback,
		Args:        echoArgs(),
	}
	if err := reg.Register(echo); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if ret := reg.Dispatch([]string{"echo", "-m", "hi", "-n", "2"}); ret != 0 {
		t.Fatalf("Expected 0, got %d (%s)", ret, errw.String())
	}
	if len(rec.calls) != 1 {
		t.Fatalf("Expected one call, got %d", len(rec.calls))
	}

	want := []ArgValue{
		{Kind: ArgString, Str: "hi", Count: 1},
		{Kind: ArgInt, Int: 2, Count: 1},
		{Kind: ArgFlag, Flag: false, Count: 0},
	}
	if got := rec.calls[0].Values; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if got := rec.calls[0].Argv; !reflect.DeepEqual(got, []string{"echo", "-m", "hi", "-n", "2"}) {
		t.Errorf("Unexpected argv %q", got)
	}

	if ret := reg.Dispatch([]string{"echo"}); ret == 0 {
		t.Error("Expected failure for missing required argument")
	}
	if len(rec.calls) != 1 {
		t.Error("Callback must not run when parsing fails")
	}
	if !strings.HasPrefix(errw.String(), "echo: ") {
		t.Errorf("Expected error naming the command, got %q", errw.String())
	}

	// The engine routes to the same dispatcher.
	if ret, err := eng.Run(`echo --msg "hello"`); err != nil || ret != 0 {
		t.Fatalf("engine Run failed: %d, %v", ret, err)
	}
	last := rec.calls[len(rec.calls)-1]
	if last.Str(0) != "hello" || last.Value(0).Count != 1 {
		t.Errorf("Expected str value hello with count 1, got %+v", last.Value(0))
	}
	if last.Has(1) || last.Int(1) != 0 || last.Flag(2) {
		t.Errorf("Expected absent optional values to be zero, got %+v", last.Values)
	}

	if cmd, ok := eng.Lookup("echo"); !ok || cmd.Hint != "-m|--msg=<text> [-n|--repeat=<N>] [-u|--uppercase]" {
		t.Errorf("Expected generated hint, got %q", cmd.Hint)
	}
}

func TestRegistry_ZeroArguments(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	rec := &recorder{ret: 3}

	if err := reg.Register(&Command{Name: "hello", Callback: rec.callback}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	argv := []string{"hello", "--anything", "goes", "-x"}
	if ret := reg.Dispatch(argv); ret != 3 {
		t.Errorf("Expected callback result 3, got %d", ret)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("Expected one call, got %d", len(rec.calls))
	}
	if rec.calls[0].Values != nil {
		t.Errorf("Expected no parsed values, got %+v", rec.calls[0].Values)
	}
	if !reflect.DeepEqual(rec.calls[0].Argv, argv) {
		t.Errorf("Expected argv to be passed through, got %q", rec.calls[0].Argv)
	}
}

func TestRegistry_Capacity(t *testing.T) {
	reg, eng, _ := newTestRegistry(t, WithMaxCommands(2))
	rec := &recorder{}

	for i := 0; i < 2; i++ {
		if err := reg.Register(&Command{Name: fmt.Sprintf("cmd%d", i), Callback: rec.callback}); err != nil {
			t.Fatalf("Register %d failed: %v", i, err)
		}
	}

	extra := &Command{Name: "extra", Callback: rec.callback, Args: echoArgs()}
	for i := 0; i < 2; i++ {
		if err := reg.Register(extra); !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("Expected ErrCapacityExceeded, got %v", err)
		}
		if reg.Len() != 2 {
			t.Errorf("Expected count to stay 2, got %d", reg.Len())
		}
	}
	if _, ok := eng.Lookup("extra"); ok {
		t.Error("Rejected command must not reach the engine")
	}
}

func TestRegistry_InvalidDescriptor(t *testing.T) {
	reg, eng, _ := newTestRegistry(t)
	rec := &recorder{}

	invalid := map[string]*Command{
		"nil":         nil,
		"no-name":     {Callback: rec.callback},
		"no-callback": {Name: "x"},
		"bad-kind":    {Name: "x", Callback: rec.callback, Args: []Arg{{Short: "a", Kind: ArgKind(9)}}},
	}
	for name, cmd := range invalid {
		t.Run(name, func(t *testing.T) {
			if err := reg.Register(cmd); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}

	if reg.Len() != 0 || eng.Len() != 0 {
		t.Errorf("Expected nothing registered, got %d/%d", reg.Len(), eng.Len())
	}
}

func TestRegistry_EngineRejects(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	rec := &recorder{}

	err := reg.Register(&Command{Name: "two words", Callback: rec.callback, Args: echoArgs()})
	if !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("Expected engine error to pass through, got %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Expected no slot to be occupied, got %d", reg.Len())
	}
}

func TestRegistry_ConstructionRollback(t *testing.T) {
	reg, eng, _ := newTestRegistry(t)
	rec := &recorder{}

	restore := newNode
	defer func() { newNode = restore }()

	var built []node
	newNode = func(a *Arg) (node, error) {
		if len(built) == 2 {
			return nil, errors.New("out of memory")
		}
		n, err := restore(a)
		built = append(built, n)
		return n, err
	}

	err := reg.Register(&Command{Name: "echo", Callback: rec.callback, Args: echoArgs()})
	if !errors.Is(err, ErrConstruction) {
		t.Fatalf("Expected ErrConstruction, got %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Expected registry to be untouched, got %d", reg.Len())
	}
	if _, ok := eng.Lookup("echo"); ok {
		t.Error("Expected engine to be untouched")
	}
	for i, n := range built {
		if !isReleased(n) {
			t.Errorf("Node %d was not released", i)
		}
	}
}

func TestRegistry_DuplicateNames(t *testing.T) {
	reg, eng, _ := newTestRegistry(t)
	first, second := &recorder{ret: 1}, &recorder{ret: 2}

	if err := reg.Register(&Command{Name: "dup", Callback: first.callback}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register(&Command{Name: "dup", Callback: second.callback, Args: echoArgs()}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("Expected two entries, got %d", reg.Len())
	}

	for i := 0; i < 3; i++ {
		if ret, _ := eng.Run("dup"); ret != 1 {
			t.Errorf("Expected first registration to win, got %d", ret)
		}
	}
	if len(second.calls) != 0 {
		t.Error("Second registration must be unreachable")
	}
	if cmd, _ := reg.Lookup("dup"); cmd.Args != nil {
		t.Error("Lookup must return the first registration")
	}
}

func TestRegistry_RegisterMany(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	rec := &recorder{}

	if err := reg.RegisterMany(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for empty list, got %v", err)
	}

	cmds := []Command{
		{Name: "a", Callback: rec.callback},
		{Name: "b", Callback: rec.callback, Args: echoArgs()},
		{Name: "c"},
		{Name: "d", Callback: rec.callback},
	}
	if err := reg.RegisterMany(cmds); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected failure on third command, got %v", err)
	}

	var names []string
	for _, cmd := range reg.Commands() {
		names = append(names, cmd.Name)
	}
	if !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("Expected earlier commands to stay registered, got %q", names)
	}
}

func TestRegistry_RegisterSimple(t *testing.T) {
	reg, eng, _ := newTestRegistry(t)

	var got []string
	err := reg.RegisterSimple("raw", "Raw arguments", func(args []string) int {
		got = args
		return 0
	})
	if err != nil {
		t.Fatalf("RegisterSimple failed: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Simple commands must not occupy a slot, got %d", reg.Len())
	}

	if _, err := eng.Run("raw -x --y z"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"raw", "-x", "--y", "z"}) {
		t.Errorf("Unexpected args %q", got)
	}

	if err := reg.RegisterSimple("", "x", func([]string) int { return 0 }); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
	if err := reg.RegisterSimple("x", "x", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestRegistry_DispatchUnknown(t *testing.T) {
	reg, _, errw := newTestRegistry(t)

	if ret := reg.Dispatch([]string{"ghost"}); ret == 0 {
		t.Error("Expected failure for unknown command")
	}
	if !strings.Contains(errw.String(), "internal error") {
		t.Errorf("Expected internal error report, got %q", errw.String())
	}
	if ret := reg.Dispatch(nil); ret == 0 {
		t.Error("Expected failure for empty argv")
	}
}

func TestRegistry_Reset(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	rec := &recorder{}

	cmd := &Command{Name: "echo", Callback: rec.callback, Args: echoArgs()}
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	table := reg.entries[0].table

	reg.Reset()
	if reg.Len() != 0 {
		t.Errorf("Expected empty registry, got %d", reg.Len())
	}
	for i, n := range table.nodes {
		if !isReleased(n) {
			t.Errorf("Node %d was not released", i)
		}
	}

	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register after Reset failed: %v", err)
	}
	if reg.Cap() != MaxCommands {
		t.Errorf("Expected capacity %d, got %d", MaxCommands, reg.Cap())
	}
}
