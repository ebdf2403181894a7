package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/pflag"
)

// node is one compiled option. It records every occurrence seen during a
// parse and copies the first one into an ArgValue.
type node interface {
	pflag.Value

	desc() *Arg
	reset()
	count() int
	failure() error
	fill(v *ArgValue)
	release()
}

// newNode constructs the node for a single Arg.
var newNode = func(a *Arg) (node, error) {
	switch a.Kind {
	case ArgInt:
		return &intNode{baseNode: baseNode{arg: a}}, nil
	case ArgString:
		return &strNode{baseNode: baseNode{arg: a}}, nil
	case ArgFlag:
		return &litNode{baseNode: baseNode{arg: a}}, nil
	default:
		return nil, fmt.Errorf("unknown kind %s", a.Kind)
	}
}

type baseNode struct {
	arg      *Arg
	err      error
	released bool
}

func (n *baseNode) desc() *Arg {
	return n.arg
}

func (n *baseNode) failure() error {
	return n.err
}

func (n *baseNode) fail(value string, err error) error {
	n.err = fmt.Errorf("invalid argument \"%s\" to option %s", value, n.arg.Spelling())
	if err != nil {
		n.err = fmt.Errorf("%w: %v", n.err, err)
	}
	return n.err
}

type intNode struct {
	baseNode
	values []int
}

func (n *intNode) Set(s string) error {
	v, err := parseInt(s)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return n.fail(s, err)
	}
	n.values = append(n.values, int(v))
	return nil
}

// parseInt reads a decimal integer or one with an explicit 0x, 0o or 0b
// prefix. A leading zero alone does not select octal.
func parseInt(s string) (int64, error) {
	sign, digits := "", s
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}

	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			digits = digits[2:]
		}
	}

	return strconv.ParseInt(sign+digits, base, strconv.IntSize)
}

func (n *intNode) String() string {
	if len(n.values) == 0 {
		return ""
	}
	return strconv.Itoa(n.values[0])
}

func (n *intNode) Type() string {
	return "int"
}

func (n *intNode) reset() {
	n.values = n.values[:0]
	n.err = nil
}

func (n *intNode) count() int {
	return len(n.values)
}

func (n *intNode) fill(v *ArgValue) {
	*v = ArgValue{Kind: ArgInt, Count: len(n.values)}
	if len(n.values) > 0 {
		v.Int = n.values[0]
	}
}

func (n *intNode) release() {
	n.values = nil
	n.released = true
}

type strNode struct {
	baseNode
	values []string
}

func (n *strNode) Set(s string) error {
	n.values = append(n.values, s)
	return nil
}

func (n *strNode) String() string {
	if len(n.values) == 0 {
		return ""
	}
	return n.values[0]
}

func (n *strNode) Type() string {
	return "string"
}

func (n *strNode) reset() {
	n.values = n.values[:0]
	n.err = nil
}

func (n *strNode) count() int {
	return len(n.values)
}

func (n *strNode) fill(v *ArgValue) {
	*v = ArgValue{Kind: ArgString, Count: len(n.values)}
	if len(n.values) > 0 {
		v.Str = n.values[0]
	}
}

func (n *strNode) release() {
	n.values = nil
	n.released = true
}

// litNode is a literal without a value. pflag passes NoOptDefVal for every
// bare occurrence.
type litNode struct {
	baseNode
	hits int
}

func (n *litNode) Set(s string) error {
	if s != "true" {
		return n.fail(s, errors.New("option takes no value"))
	}
	n.hits++
	return nil
}

func (n *litNode) String() string {
	return strconv.FormatBool(n.hits > 0)
}

func (n *litNode) Type() string {
	return "bool"
}

func (n *litNode) reset() {
	n.hits = 0
	n.err = nil
}

func (n *litNode) count() int {
	return n.hits
}

func (n *litNode) fill(v *ArgValue) {
	*v = ArgValue{Kind: ArgFlag, Flag: n.hits > 0, Count: n.hits}
}

func (n *litNode) release() {
	n.hits = 0
	n.released = true
}

// endNode terminates a table and collects the errors of the last parse, up
// to a fixed capacity.
type endNode struct {
	capacity int
	errors   []error
}

func (e *endNode) add(err error) {
	if len(e.errors) < e.capacity {
		e.errors = append(e.errors, err)
	}
}

func (e *endNode) reset() {
	e.errors = e.errors[:0]
}

// argTable is the compiled parser of one Command: one node per Arg followed
// by the end node.
type argTable struct {
	name  string
	nodes []node
	end   *endNode
	flags *pflag.FlagSet
}

// compileTable builds the parser table for cmd. Commands without options
// have no table. On failure every node built so far is released.
func compileTable(cmd *Command) (*argTable, error) {
	if len(cmd.Args) == 0 {
		return nil, nil
	}
	if len(cmd.Args) > MaxArgs {
		return nil, fmt.Errorf("%w: %q declares %d arguments, at most %d allowed",
			ErrCapacityExceeded, cmd.Name, len(cmd.Args), MaxArgs)
	}

	for i := range cmd.Args {
		if err := validateArg(&cmd.Args[i]); err != nil {
			return nil, fmt.Errorf("%w: argument %d of %q: %v", ErrInvalidArgument, i, cmd.Name, err)
		}
	}

	flags := pflag.NewFlagSet(cmd.Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flags.SortFlags = false

	nodes := make([]node, 0, len(cmd.Args))
	for i := range cmd.Args {
		n, err := newNode(&cmd.Args[i])
		if err == nil {
			err = bindNode(flags, n)
		}
		if err != nil {
			for _, built := range nodes {
				built.release()
			}
			if n != nil {
				n.release()
			}
			return nil, fmt.Errorf("%w: argument %d of %q: %v", ErrConstruction, i, cmd.Name, err)
		}
		nodes = append(nodes, n)
	}

	return &argTable{
		name:  cmd.Name,
		nodes: nodes,
		end: &endNode{
			capacity: len(nodes) + 1,
		},
		flags: flags,
	}, nil
}

func validateArg(a *Arg) error {
	if !a.Kind.valid() {
		return fmt.Errorf("unknown kind %s", a.Kind)
	}
	if a.Short == "" && a.Long == "" {
		return errors.New("neither short nor long name given")
	}
	if a.Short != "" {
		if len(a.Short) != 1 || a.Short == "-" || unicode.IsSpace(rune(a.Short[0])) {
			return fmt.Errorf("short name %q must be a single character", a.Short)
		}
	}
	if a.Long != "" {
		if strings.HasPrefix(a.Long, "-") || strings.ContainsAny(a.Long, "= \t\n") {
			return fmt.Errorf("invalid long name %q", a.Long)
		}
	}
	return nil
}

// bindNode registers n with the flag set. Options without a long spelling are
// stored under a name that can never be typed as a long option.
func bindNode(flags *pflag.FlagSet, n node) error {
	a := n.desc()

	name := a.Long
	if name == "" {
		name = "-" + a.Short
	}
	if flags.Lookup(name) != nil {
		return fmt.Errorf("duplicate option %s", a.Spelling())
	}
	if a.Short != "" && flags.ShorthandLookup(a.Short) != nil {
		return fmt.Errorf("duplicate option -%s", a.Short)
	}

	f := flags.VarPF(n, name, a.Short, a.Description)
	if a.Kind == ArgFlag {
		f.NoOptDefVal = "true"
	}
	return nil
}

// Len returns the number of nodes including the end node.
func (t *argTable) Len() int {
	return len(t.nodes) + 1
}

// parse consumes argv[1:] and returns the number of errors found.
func (t *argTable) parse(argv []string) int {
	for _, n := range t.nodes {
		n.reset()
	}
	t.end.reset()

	var args []string
	if len(argv) > 1 {
		args = argv[1:]
	}

	if err := t.flags.Parse(args); err != nil {
		t.end.add(t.explain(err))
	}
	for _, extra := range t.flags.Args() {
		t.end.add(fmt.Errorf("unexpected argument \"%s\"", extra))
	}
	for _, n := range t.nodes {
		if n.desc().Required && n.count() == 0 {
			t.end.add(fmt.Errorf("missing option %s", n.desc().Spelling()))
		}
	}

	return len(t.end.errors)
}

// explain prefers the error reported by a node over the generic flag error.
func (t *argTable) explain(err error) error {
	if errors.Is(err, pflag.ErrHelp) {
		return fmt.Errorf("no help option, try 'help %s'", t.name)
	}
	for _, n := range t.nodes {
		if nerr := n.failure(); nerr != nil {
			return nerr
		}
	}
	return err
}

// values copies the result of the last successful parse.
func (t *argTable) values() []ArgValue {
	values := make([]ArgValue, len(t.nodes))
	for i, n := range t.nodes {
		n.fill(&values[i])
	}
	return values
}

func (t *argTable) printErrors(w io.Writer, progname string) {
	for _, err := range t.end.errors {
		fmt.Fprintf(w, "%s: %v\n", progname, err)
	}
}

// syntax renders the one line summary used as hint, e.g.
// "-m|--msg=<text> [-n|--repeat=<N>]".
func (t *argTable) syntax() string {
	parts := make([]string, 0, len(t.nodes))
	for _, n := range t.nodes {
		a := n.desc()
		if a.Required {
			parts = append(parts, a.Spelling())
		} else {
			parts = append(parts, "["+a.Spelling()+"]")
		}
	}
	return strings.Join(parts, " ")
}

func (t *argTable) glossary(w io.Writer) {
	for _, n := range t.nodes {
		a := n.desc()
		fmt.Fprintf(w, "  %-20s %s\n", a.Spelling(), a.Description)
	}
}

func (t *argTable) release() {
	for _, n := range t.nodes {
		n.release()
	}
	t.end.errors = nil
}
