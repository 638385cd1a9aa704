package vm

import (
	"fmt"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/instruction"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/memory"
)

// handler executes a decoded instruction. Only control flow instructions set
// the program counter, Step advances it for all others.
// A handler that returns an error must not have changed any state.
type handler func(m *Machine, ins instruction.Instruction) error

var handlers = map[instruction.Kind]handler{
	instruction.Sys:     (*Machine).sys,
	instruction.Cls:     (*Machine).cls,
	instruction.Ret:     (*Machine).ret,
	instruction.Jp:      (*Machine).jp,
	instruction.Call:    (*Machine).call,
	instruction.SeByte:  (*Machine).seByte,
	instruction.SneByte: (*Machine).sneByte,
	instruction.SeReg:   (*Machine).seReg,
	instruction.LdByte:  (*Machine).ldByte,
	instruction.AddByte: (*Machine).addByte,
	instruction.LdReg:   (*Machine).ldReg,
	instruction.Or:      (*Machine).or,
	instruction.And:     (*Machine).and,
	instruction.Xor:     (*Machine).xor,
	instruction.AddReg:  (*Machine).addReg,
	instruction.Sub:     (*Machine).sub,
	instruction.Shr:     (*Machine).shr,
	instruction.Subn:    (*Machine).subn,
	instruction.Shl:     (*Machine).shl,
	instruction.SneReg:  (*Machine).sneReg,
	instruction.LdI:     (*Machine).ldI,
	instruction.JpV0:    (*Machine).jpV0,
	instruction.Rnd:     (*Machine).rand,
	instruction.Drw:     (*Machine).drw,
	instruction.Skp:     (*Machine).skp,
	instruction.Sknp:    (*Machine).sknp,
	instruction.LdVxDT:  (*Machine).ldVxDT,
	instruction.LdVxK:   (*Machine).ldVxK,
	instruction.LdDTVx:  (*Machine).ldDTVx,
	instruction.LdSTVx:  (*Machine).ldSTVx,
	instruction.AddI:    (*Machine).addI,
	instruction.LdF:     (*Machine).ldF,
	instruction.LdB:     (*Machine).ldB,
	instruction.LdIVx:   (*Machine).ldIVx,
	instruction.LdVxI:   (*Machine).ldVxI,
}

func (m *Machine) execute(ins instruction.Instruction) error {
	h, ok := handlers[ins.Kind]
	if !ok {
		return &instruction.UnknownOpcodeError{Word: ins.Word}
	}
	return h(m, ins)
}

// skipIf advances the program counter by one instruction, or by two if the
// condition is true.
func (m *Machine) skipIf(condition bool) {
	m.pc += instruction.Size
	if condition {
		m.pc += instruction.Size
	}
}

// setFlag writes the flag output of an instruction to VF. It is always
// called after the result was written, so the flag wins if the result
// register is VF as well.
func (m *Machine) setFlag(set bool) {
	if set {
		m.v[flagRegister] = 1
	} else {
		m.v[flagRegister] = 0
	}
}

// sys is the machine code call of the original interpreters and is ignored.
func (m *Machine) sys(_ instruction.Instruction) error {
	return nil
}

func (m *Machine) cls(_ instruction.Instruction) error {
	m.display.Clear()
	return nil
}

func (m *Machine) ret(_ instruction.Instruction) error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

func (m *Machine) jp(ins instruction.Instruction) error {
	m.pc = ins.NNN
	return nil
}

// call pushes the address of the following instruction, the matching ret
// continues there without adjusting the popped address.
func (m *Machine) call(ins instruction.Instruction) error {
	if int(m.sp) >= StackDepth {
		return fmt.Errorf("%w: calling $%03X at depth %d", ErrStackOverflow, ins.NNN, m.sp)
	}
	m.stack[m.sp] = m.pc + instruction.Size
	m.sp++
	m.pc = ins.NNN
	return nil
}

func (m *Machine) seByte(ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] == ins.NN)
	return nil
}

func (m *Machine) sneByte(ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] != ins.NN)
	return nil
}

func (m *Machine) seReg(ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] == m.v[ins.Y])
	return nil
}

func (m *Machine) sneReg(ins instruction.Instruction) error {
	m.skipIf(m.v[ins.X] != m.v[ins.Y])
	return nil
}

func (m *Machine) ldByte(ins instruction.Instruction) error {
	m.v[ins.X] = ins.NN
	return nil
}

// addByte does not change VF.
func (m *Machine) addByte(ins instruction.Instruction) error {
	m.v[ins.X] += ins.NN
	return nil
}

func (m *Machine) ldReg(ins instruction.Instruction) error {
	m.v[ins.X] = m.v[ins.Y]
	return nil
}

func (m *Machine) or(ins instruction.Instruction) error {
	m.v[ins.X] |= m.v[ins.Y]
	return nil
}

func (m *Machine) and(ins instruction.Instruction) error {
	m.v[ins.X] &= m.v[ins.Y]
	return nil
}

func (m *Machine) xor(ins instruction.Instruction) error {
	m.v[ins.X] ^= m.v[ins.Y]
	return nil
}

func (m *Machine) addReg(ins instruction.Instruction) error {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.v[ins.X] = byte(sum)
	m.setFlag(sum > 0xFF)
	return nil
}

// sub sets VF to 1 if there was no borrow.
func (m *Machine) sub(ins instruction.Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = x - y
	m.setFlag(x >= y)
	return nil
}

func (m *Machine) subn(ins instruction.Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = y - x
	m.setFlag(y >= x)
	return nil
}

func (m *Machine) shiftSource(ins instruction.Instruction) byte {
	if m.cfg.Quirks.ShiftUsesVY {
		return m.v[ins.Y]
	}
	return m.v[ins.X]
}

func (m *Machine) shr(ins instruction.Instruction) error {
	value := m.shiftSource(ins)
	m.v[ins.X] = value >> 1
	m.setFlag(value&0x01 != 0)
	return nil
}

func (m *Machine) shl(ins instruction.Instruction) error {
	value := m.shiftSource(ins)
	m.v[ins.X] = value << 1
	m.setFlag(value&0x80 != 0)
	return nil
}

func (m *Machine) ldI(ins instruction.Instruction) error {
	m.i = ins.NNN
	return nil
}

func (m *Machine) jpV0(ins instruction.Instruction) error {
	m.pc = ins.NNN + uint16(m.v[0])
	return nil
}

func (m *Machine) rand(ins instruction.Instruction) error {
	m.v[ins.X] = m.rnd.Byte() & ins.NN
	return nil
}

func (m *Machine) drw(ins instruction.Instruction) error {
	sprite, err := m.mem.Slice(m.i, int(ins.N))
	if err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}
	collision := m.display.DrawSprite(m.v[ins.X], m.v[ins.Y], sprite)
	m.setFlag(collision)
	return nil
}

func (m *Machine) skp(ins instruction.Instruction) error {
	m.skipIf(m.keys.Pressed(m.v[ins.X]))
	return nil
}

func (m *Machine) sknp(ins instruction.Instruction) error {
	m.skipIf(!m.keys.Pressed(m.v[ins.X]))
	return nil
}

func (m *Machine) ldVxDT(ins instruction.Instruction) error {
	m.v[ins.X] = m.timers.Delay()
	return nil
}

// ldVxK blocks by not advancing the program counter until a key is pressed.
// The lowest pressed key index wins.
func (m *Machine) ldVxK(ins instruction.Instruction) error {
	key, ok := m.keys.FirstPressed()
	if !ok {
		m.waitingForKey = true
		return nil
	}
	m.waitingForKey = false
	m.v[ins.X] = key
	m.pc += instruction.Size
	return nil
}

func (m *Machine) ldDTVx(ins instruction.Instruction) error {
	m.timers.SetDelay(m.v[ins.X])
	return nil
}

func (m *Machine) ldSTVx(ins instruction.Instruction) error {
	m.timers.SetSound(m.v[ins.X])
	return nil
}

// addI sets VF if the result leaves the 12-bit address space.
func (m *Machine) addI(ins instruction.Instruction) error {
	sum := uint32(m.i) + uint32(m.v[ins.X])
	m.i = uint16(sum)
	m.setFlag(sum > memory.MaxAddress)
	return nil
}

func (m *Machine) ldF(ins instruction.Instruction) error {
	m.i = memory.GlyphAddress(m.v[ins.X])
	return nil
}

func (m *Machine) ldB(ins instruction.Instruction) error {
	value := m.v[ins.X]
	digits := []byte{value / 100, value / 10 % 10, value % 10}
	if err := m.mem.Copy(m.i, digits); err != nil {
		return fmt.Errorf("storing bcd: %w", err)
	}
	return nil
}

func (m *Machine) ldIVx(ins instruction.Instruction) error {
	count := int(ins.X) + 1
	if err := m.mem.Copy(m.i, m.v[:count]); err != nil {
		return fmt.Errorf("storing registers: %w", err)
	}
	m.advanceIndex(count)
	return nil
}

func (m *Machine) ldVxI(ins instruction.Instruction) error {
	count := int(ins.X) + 1
	data, err := m.mem.Slice(m.i, count)
	if err != nil {
		return fmt.Errorf("loading registers: %w", err)
	}
	copy(m.v[:count], data)
	m.advanceIndex(count)
	return nil
}

func (m *Machine) advanceIndex(count int) {
	if m.cfg.Quirks.LoadStoreIncrementsIndex {
		m.i += uint16(count)
	}
}
