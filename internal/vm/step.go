package vm

import (
	"github.com/Grandduchy/CHIP-8-Emulator/internal/instruction"
	"github.com/retroenv/retrogolib/log"
)

// Step executes one fetch-decode-execute cycle and then ticks the timers.
//
// Every instruction that does not change the control flow advances the
// program counter by one instruction. FX0A leaves the program counter
// unchanged until a key is pressed, so the host keeps calling Step while the
// machine waits.
//
// Errors are returned as *ExecError and never stop the machine:
//   - the instruction word can not be fetched: nothing is executed, the
//     program counter and the timers are unchanged
//   - unknown opcodes, stack overflow and underflow and accesses through I
//     outside of memory: the instruction has no effect apart from advancing
//     the program counter by one instruction, the timers tick
func (m *Machine) Step() error {
	pc := m.pc
	word, err := m.mem.ReadWord(pc)
	if err != nil {
		return &ExecError{PC: pc, Err: err}
	}

	ins, err := instruction.Decode(word)
	if err == nil {
		if m.cfg.Trace {
			m.logger.Debug("Executing instruction",
				log.Hex("pc", pc),
				log.Hex("opcode", word),
				log.String("mnemonic", ins.Kind.Name()),
				log.String("instruction", ins.String()))
		}
		err = m.execute(ins)
	}

	if err != nil || !ins.IsControlFlow() {
		m.pc = pc + instruction.Size
	}
	m.tickTimers()
	m.cycles++

	if err != nil {
		return &ExecError{PC: pc, Word: word, Err: err}
	}
	return nil
}

func (m *Machine) tickTimers() {
	if m.cfg.TimerDivider > 1 && m.cycles%uint64(m.cfg.TimerDivider) != 0 {
		return
	}
	m.timers.Tick()
}

// Run executes the given number of steps or until the first error.
// It returns the number of steps that completed without error.
func (m *Machine) Run(steps int) (int, error) {
	for n := 0; n < steps; n++ {
		if err := m.Step(); err != nil {
			return n, err
		}
	}
	return steps, nil
}
