package console

import (
	"fmt"
	"strings"
)

// ArgKind selects how an option is parsed and which field of ArgValue it fills.
type ArgKind int

const (
	// ArgInt expects an integer value, e.g. "-n 3" or "--repeat=0x10".
	ArgInt ArgKind = iota
	// ArgString expects a text value.
	ArgString
	// ArgFlag takes no value and is counted each time it appears.
	ArgFlag
)

func (k ArgKind) String() string {
	switch k {
	case ArgInt:
		return "int"
	case ArgString:
		return "string"
	case ArgFlag:
		return "flag"
	default:
		return fmt.Sprintf("ArgKind(%d)", int(k))
	}
}

func (k ArgKind) valid() bool {
	return k >= ArgInt && k <= ArgFlag
}

// Arg describes one option a command accepts. At least one of Short and
// Long must be set.
type Arg struct {
	// Short is the single letter spelling used as "-x", empty if none.
	Short string `json:"short,omitempty"`
	// Long is the word spelling used as "--word", empty if none.
	Long string `json:"long,omitempty"`
	// DataType is the placeholder shown in help output, e.g. "<ms>".
	DataType string `json:"datatype,omitempty"`
	// Description is the glossary text.
	Description string  `json:"description"`
	Kind        ArgKind `json:"kind"`
	Required    bool    `json:"required"`
}

// Spelling returns the option as it appears in hints and error messages,
// e.g. "-m|--msg=<text>".
func (a *Arg) Spelling() string {
	var names []string
	if a.Short != "" {
		names = append(names, "-"+a.Short)
	}
	if a.Long != "" {
		names = append(names, "--"+a.Long)
	}

	s := strings.Join(names, "|")
	if a.Kind != ArgFlag && a.DataType != "" {
		if a.Long != "" {
			s += "=" + a.DataType
		} else {
			s += " " + a.DataType
		}
	}
	return s
}

// ArgValue holds the parsed result of one Arg. Only the field matching Kind
// is meaningful and Count is 0 when the option was absent.
type ArgValue struct {
	Kind  ArgKind
	Int   int
	Str   string
	Flag  bool
	Count int
}

// Present reports whether the option appeared on the command line.
func (v ArgValue) Present() bool {
	return v.Count > 0
}
