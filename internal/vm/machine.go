// Package vm implements the CHIP-8 interpreter: the machine state and the
// fetch-decode-execute cycle.
//
// A Machine is owned by a single caller. It has no notion of wall clock time
// and does nothing in the background, all state changes happen inside Step.
// Hosts that step the machine on another goroutine have to serialize Step
// with their calls of SetKey and the framebuffer accessors.
package vm

import (
	"fmt"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/display"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/keypad"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/memory"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/random"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

const (
	// Registers is the number of general purpose registers V0-VF.
	Registers = 16

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	// flagRegister is VF. It receives the carry, borrow, shifted out bit,
	// collision and index overflow outputs and is not a stable general
	// purpose register across those instructions.
	flagRegister = 0xF
)

// Quirks select between behaviors that differ across CHIP-8 interpreters.
// The zero value selects the reference behavior.
type Quirks struct {
	// ShiftUsesVY makes 8XY6 and 8XYE shift VY into VX instead of shifting VX.
	ShiftUsesVY bool
	// LoadStoreIncrementsIndex makes FX55 and FX65 advance I by X+1.
	LoadStoreIncrementsIndex bool
}

// Config contains the machine options.
type Config struct {
	// Random is the source for CXNN. A time seeded source is used if nil.
	Random random.Source

	Quirks Quirks

	// TimerDivider ticks the timers every TimerDivider steps. Values below 2
	// tick the timers on every step.
	TimerDivider int

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// State is a copy of the CPU visible state of a machine.
type State struct {
	V      [Registers]byte
	I      uint16
	PC     uint16
	SP     byte
	Stack  [StackDepth]uint16
	Delay  byte
	Sound  byte
	Cycles uint64

	WaitingForKey bool
}

// Machine is the aggregate CHIP-8 machine state.
type Machine struct {
	logger *log.Logger
	cfg    Config
	rnd    random.Source

	mem     *memory.Memory
	display *display.Framebuffer
	keys    *keypad.Keypad
	timers  *timer.Timers

	v     [Registers]byte
	i     uint16
	pc    uint16
	sp    byte
	stack [StackDepth]uint16

	waitingForKey bool
	cycles        uint64
}

// New returns a machine that has been reset.
func New(logger *log.Logger, cfg Config) *Machine {
	rnd := cfg.Random
	if rnd == nil {
		rnd = random.New(0)
	}

	m := &Machine{
		logger:  logger,
		cfg:     cfg,
		rnd:     rnd,
		mem:     memory.New(),
		display: display.New(),
		keys:    keypad.New(),
		timers:  timer.New(),
	}
	m.Reset()
	return m
}

// Reset restores the power on state: memory is cleared apart from the font,
// registers, stack and timers are zeroed, the framebuffer is cleared, all
// keys are released and the program counter points to the program start.
// Reset can be called at any time, also to abandon a pending key wait.
func (m *Machine) Reset() {
	m.mem.Reset()
	m.display.Reset()
	m.keys.Reset()
	m.timers.Reset()

	m.v = [Registers]byte{}
	m.i = 0
	m.pc = memory.ProgramStart
	m.sp = 0
	m.stack = [StackDepth]uint16{}

	m.waitingForKey = false
	m.cycles = 0
}

// LoadROM copies a raw program image to the program start address. The
// machine is not reset, bytes following the image keep their value. An image
// that does not fit into the program space is rejected and nothing is written.
func (m *Machine) LoadROM(data []byte) error {
	if len(data) > memory.ProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrRomTooLarge, len(data), memory.ProgramSize)
	}
	if err := m.mem.Copy(memory.ProgramStart, data); err != nil {
		return fmt.Errorf("copying rom: %w", err)
	}
	return nil
}

// SetKey sets the pressed state of a key of the keypad.
func (m *Machine) SetKey(index int, pressed bool) error {
	if err := m.keys.SetKey(index, pressed); err != nil {
		return fmt.Errorf("setting key: %w", err)
	}
	return nil
}

// Display returns the framebuffer. Hosts read pixels from it and call
// ClearDrawRequest after they consumed a frame.
func (m *Machine) Display() *display.Framebuffer {
	return m.display
}

// DrawRequested returns whether the framebuffer changed since the last
// ClearDrawRequest.
func (m *Machine) DrawRequested() bool {
	return m.display.DrawRequested()
}

// ClearDrawRequest acknowledges the current frame.
func (m *Machine) ClearDrawRequest() {
	m.display.ClearDrawRequest()
}

// ConsumeBeep returns whether the sound timer expired since the last call.
func (m *Machine) ConsumeBeep() bool {
	return m.timers.ConsumeBeep()
}

// WaitingForKey returns whether the machine is blocked in FX0A.
func (m *Machine) WaitingForKey() bool {
	return m.waitingForKey
}

// Memory returns a copy of the complete address space.
func (m *Machine) Memory() []byte {
	return m.mem.Dump()
}

// State returns a copy of the registers, stack and timers.
func (m *Machine) State() State {
	return State{
		V:             m.v,
		I:             m.i,
		PC:            m.pc,
		SP:            m.sp,
		Stack:         m.stack,
		Delay:         m.timers.Delay(),
		Sound:         m.timers.Sound(),
		Cycles:        m.cycles,
		WaitingForKey: m.waitingForKey,
	}
}
