// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input    string // ROM file to run
	StateDot string // Graphviz file to write the machine state to on exit
}

// Flags contains behavior options.
type Flags struct {
	Debug     bool // enable debug logging
	Quiet     bool // only log errors
	Trace     bool // log every executed instruction, implies Debug
	Dump      bool // print the framebuffer on exit
	StatsView bool // serve runtime statistics while running
}

// Machine contains the emulation options.
type Machine struct {
	Cycles       uint64 // steps to execute, 0 runs until interrupted
	Hz           int    // steps per second, 0 runs unpaced
	TimerDivider int    // tick the timers every n steps
	Seed         int64  // random seed, 0 seeds from the current time
	MaxErrors    int    // consecutive execution errors before stopping, 0 never stops

	ShiftUsesVY              bool // 8XY6 and 8XYE shift VY into VX
	LoadStoreIncrementsIndex bool // FX55 and FX65 advance I
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Machine
}

// Default values of the machine options.
const (
	DefaultHz           = 600
	DefaultTimerDivider = 1

	// MaxHz is the highest clock rate that still yields a positive step interval.
	MaxHz = 1_000_000_000
)
