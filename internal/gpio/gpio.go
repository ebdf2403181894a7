// Package gpio simulates a bank of general purpose pins so the gpio console
// command can run on hosts without hardware access.
package gpio

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// NumPins is the number of pins in a bank, numbered 0 to NumPins-1.
const NumPins = 49

var (
	ErrInvalidPin   = errors.New("gpio: invalid pin")
	ErrInvalidMode  = errors.New("gpio: invalid mode")
	ErrInvalidPull  = errors.New("gpio: invalid pull")
	ErrInvalidLevel = errors.New("gpio: invalid level")
)

// reserved pins are usually wired to flash or PSRAM.
var reserved = []int{19, 20, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}

type Mode int

const (
	ModeDisable Mode = iota
	ModeInput
	ModeOutput
	ModeOutputOD
	ModeInputOutput
	ModeInputOutputOD
)

func (m Mode) String() string {
	switch m {
	case ModeDisable:
		return "DISABLE"
	case ModeInput:
		return "INPUT"
	case ModeOutput:
		return "OUTPUT"
	case ModeOutputOD:
		return "OUTPUT_OD"
	case ModeInputOutput:
		return "INPUT_OUTPUT"
	case ModeInputOutputOD:
		return "INPUT_OUTPUT_OD"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Drives reports whether the pin drives its output level.
func (m Mode) Drives() bool {
	return m != ModeDisable && m != ModeInput
}

// ParseMode accepts in, input, out, output, od, open-drain, inout and inout_od.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "in", "input":
		return ModeInput, nil
	case "out", "output":
		return ModeOutput, nil
	case "od", "open-drain":
		return ModeOutputOD, nil
	case "inout":
		return ModeInputOutput, nil
	case "inout_od":
		return ModeInputOutputOD, nil
	default:
		return ModeDisable, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

type Pull int

const (
	PullUp Pull = iota
	PullDown
	PullUpDown
	Floating
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "PULLUP"
	case PullDown:
		return "PULLDOWN"
	case PullUpDown:
		return "UP+DOWN"
	case Floating:
		return "FLOATING"
	default:
		return fmt.Sprintf("Pull(%d)", int(p))
	}
}

// ParsePull accepts up, down, both, none and float.
func ParsePull(s string) (Pull, error) {
	switch s {
	case "up":
		return PullUp, nil
	case "down":
		return PullDown, nil
	case "both":
		return PullUpDown, nil
	case "none", "float":
		return Floating, nil
	default:
		return Floating, fmt.Errorf("%w: %q", ErrInvalidPull, s)
	}
}

// IsReserved reports whether pin is commonly used by flash or PSRAM.
func IsReserved(pin int) bool {
	return slices.Contains(reserved, pin)
}

type State struct {
	Pin        int
	Mode       Mode
	Pull       Pull
	Level      int
	Configured bool
}

// Bank holds the configuration of every pin.
type Bank struct {
	mu     sync.RWMutex
	states [NumPins]State
}

func NewBank() *Bank {
	return &Bank{}
}

// Configure applies mode and pull to pin. A negative level keeps the level
// of a previous configuration, or 0 for a pin configured the first time.
func (b *Bank) Configure(pin int, mode Mode, pull Pull, level int) (State, error) {
	if pin < 0 || pin >= NumPins {
		return State{}, fmt.Errorf("%w: %d, use 0-%d", ErrInvalidPin, pin, NumPins-1)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if level < 0 {
		level = 0
		if b.states[pin].Configured {
			level = b.states[pin].Level
		}
	}
	if level != 0 && level != 1 {
		return State{}, fmt.Errorf("%w: must be 0 or 1, received %d", ErrInvalidLevel, level)
	}

	b.states[pin] = State{
		Pin:        pin,
		Mode:       mode,
		Pull:       pull,
		Level:      level,
		Configured: true,
	}
	return b.states[pin], nil
}

// State returns the configuration of pin.
func (b *Bank) State(pin int) (State, bool) {
	if pin < 0 || pin >= NumPins {
		return State{}, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.states[pin], b.states[pin].Configured
}

// Read returns the level seen on pin. Output-only pins read as 0, like the
// hardware they model.
func (b *Bank) Read(pin int) int {
	state, ok := b.State(pin)
	if !ok || state.Mode == ModeOutput || state.Mode == ModeOutputOD {
		return 0
	}
	if state.Mode == ModeInput {
		switch state.Pull {
		case PullUp, PullUpDown:
			return 1
		default:
			return 0
		}
	}
	return state.Level
}

// Configured returns the states of all configured pins in pin order.
func (b *Bank) Configured() []State {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var states []State
	for _, state := range b.states {
		if state.Configured {
			states = append(states, state)
		}
	}
	return states
}
