package instruction

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Size is the size of an instruction in bytes.
const Size = 2

// ErrUnknownOpcode is returned for words that do not map to an instruction.
var ErrUnknownOpcode = errors.New("unknown opcode")

// Kind identifies the operation of a decoded instruction.
type Kind uint8

// Instruction kinds, one per opcode form.
const (
	Unknown Kind = iota
	Sys          // 0NNN
	Cls          // 00E0
	Ret          // 00EE
	Jp           // 1NNN
	Call         // 2NNN
	SeByte       // 3XNN
	SneByte      // 4XNN
	SeReg        // 5XY0
	LdByte       // 6XNN
	AddByte      // 7XNN
	LdReg        // 8XY0
	Or           // 8XY1
	And          // 8XY2
	Xor          // 8XY3
	AddReg       // 8XY4
	Sub          // 8XY5
	Shr          // 8XY6
	Subn         // 8XY7
	Shl          // 8XYE
	SneReg       // 9XY0
	LdI          // ANNN
	JpV0         // BNNN
	Rnd          // CXNN
	Drw          // DXYN
	Skp          // EX9E
	Sknp         // EXA1
	LdVxDT       // FX07
	LdVxK        // FX0A
	LdDTVx       // FX15
	LdSTVx       // FX18
	AddI         // FX1E
	LdF          // FX29
	LdB          // FX33
	LdIVx        // FX55
	LdVxI        // FX65

	kindCount
)

var kindNames = [kindCount]string{
	Unknown: "unknown",
	Sys:     "sys",
	Cls:     chip8.ClsName,
	Ret:     chip8.RetName,
	Jp:      chip8.JpName,
	Call:    chip8.CallName,
	SeByte:  chip8.SeName,
	SneByte: chip8.SneName,
	SeReg:   chip8.SeName,
	LdByte:  chip8.LdName,
	AddByte: chip8.AddName,
	LdReg:   chip8.LdName,
	Or:      chip8.OrName,
	And:     chip8.AndName,
	Xor:     chip8.XorName,
	AddReg:  chip8.AddName,
	Sub:     chip8.SubName,
	Shr:     chip8.ShrName,
	Subn:    chip8.SubnName,
	Shl:     chip8.ShlName,
	SneReg:  chip8.SneName,
	LdI:     chip8.LdName,
	JpV0:    chip8.JpName,
	Rnd:     chip8.RndName,
	Drw:     chip8.DrwName,
	Skp:     chip8.SkpName,
	Sknp:    chip8.SknpName,
	LdVxDT:  chip8.LdName,
	LdVxK:   chip8.LdName,
	LdDTVx:  chip8.LdName,
	LdSTVx:  chip8.LdName,
	AddI:    chip8.AddName,
	LdF:     chip8.LdName,
	LdB:     chip8.LdName,
	LdIVx:   chip8.LdName,
	LdVxI:   chip8.LdName,
}

// Name returns the assembler mnemonic of the kind.
func (k Kind) Name() string {
	if k >= kindCount {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Kind Kind
	Word uint16

	X   byte   // register index from bits 8-11
	Y   byte   // register index from bits 4-7
	N   byte   // 4-bit constant
	NN  byte   // 8-bit constant
	NNN uint16 // 12-bit address
}

// Decode classifies an instruction word by looking it up in the retrogolib
// CHIP-8 opcode table. Words that do not map to an instruction return an
// Instruction of kind Unknown and an error wrapping ErrUnknownOpcode.
func Decode(word uint16) (Instruction, error) {
	ins := Instruction{
		Word: word,
		X:    byte(word>>8) & 0x0F,
		Y:    byte(word>>4) & 0x0F,
		N:    byte(word) & 0x0F,
		NN:   byte(word),
		NNN:  word & 0x0FFF,
	}

	if op, ok := lookup(word); ok {
		ins.Kind = kindOf(op.Instruction.Name, word)
	}
	if ins.Kind == Unknown && word&0xF000 == 0 {
		// machine code routine of the original interpreters
		ins.Kind = Sys
	}
	if ins.Kind == Unknown {
		return ins, &UnknownOpcodeError{Word: word}
	}
	return ins, nil
}

// lookup returns the opcode table entry whose mask and value match the word.
func lookup(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8.Opcode{}, false
}

// kindOf resolves the form of an instruction. The opcode table names several
// forms the same, they are told apart by the operand layout of the word.
func kindOf(name string, word uint16) Kind {
	switch name {
	case chip8.ClsName:
		return Cls
	case chip8.RetName:
		return Ret
	case chip8.JpName:
		if word&0xF000 == 0xB000 {
			return JpV0
		}
		return Jp
	case chip8.CallName:
		return Call
	case chip8.SeName:
		return compareKind(word, SeByte, SeReg)
	case chip8.SneName:
		return compareKind(word, SneByte, SneReg)
	case chip8.LdName:
		return loadKind(word)
	case chip8.AddName:
		switch word & 0xF000 {
		case 0x7000:
			return AddByte
		case 0x8000:
			return AddReg
		case 0xF000:
			return AddI
		}
	case chip8.OrName:
		return Or
	case chip8.AndName:
		return And
	case chip8.XorName:
		return Xor
	case chip8.SubName:
		return Sub
	case chip8.SubnName:
		return Subn
	case chip8.ShrName:
		return Shr
	case chip8.ShlName:
		return Shl
	case chip8.RndName:
		return Rnd
	case chip8.DrwName:
		return Drw
	case chip8.SkpName:
		return Skp
	case chip8.SknpName:
		return Sknp
	}
	return Unknown
}

// compareKind separates the byte compare (3XNN, 4XNN) from the register
// compare (5XY0, 9XY0) forms.
func compareKind(word uint16, byteKind, regKind Kind) Kind {
	switch word & 0xF000 {
	case 0x3000, 0x4000:
		return byteKind
	case 0x5000, 0x9000:
		if word&0x000F == 0 {
			return regKind
		}
	}
	return Unknown
}

func loadKind(word uint16) Kind {
	switch word & 0xF000 {
	case 0x6000:
		return LdByte
	case 0x8000:
		return LdReg
	case 0xA000:
		return LdI
	case 0xF000:
		switch byte(word) {
		case 0x07:
			return LdVxDT
		case 0x0A:
			return LdVxK
		case 0x15:
			return LdDTVx
		case 0x18:
			return LdSTVx
		case 0x29:
			return LdF
		case 0x33:
			return LdB
		case 0x55:
			return LdIVx
		case 0x65:
			return LdVxI
		}
	}
	return Unknown
}

// IsSkip returns whether the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	switch i.Kind {
	case SeByte, SneByte, SeReg, SneReg, Skp, Sknp:
		return true
	default:
		return false
	}
}

// IsControlFlow returns whether the instruction sets the program counter
// itself instead of advancing to the next instruction. FX0A is included as
// it holds the program counter while no key is pressed.
func (i Instruction) IsControlFlow() bool {
	switch i.Kind {
	case Ret, Jp, Call, JpV0, LdVxK:
		return true
	default:
		return i.IsSkip()
	}
}

// String returns the instruction in assembler notation.
func (i Instruction) String() string {
	name := i.Kind.Name()
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

func (i Instruction) params() string {
	switch i.Kind {
	case Unknown:
		return fmt.Sprintf("$%04X", i.Word)
	case Cls, Ret:
		return ""
	case Sys, Jp, Call:
		return fmt.Sprintf("$%03X", i.NNN)
	case JpV0:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case SeByte, SneByte, LdByte, AddByte, Rnd:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case Shr, Shl, Skp, Sknp:
		return fmt.Sprintf("V%X", i.X)
	case LdI:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case Drw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case LdVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case LdVxK:
		return fmt.Sprintf("V%X, K", i.X)
	case LdDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case LdSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case AddI:
		return fmt.Sprintf("I, V%X", i.X)
	case LdF:
		return fmt.Sprintf("F, V%X", i.X)
	case LdB:
		return fmt.Sprintf("B, V%X", i.X)
	case LdIVx:
		return fmt.Sprintf("[I], V%X", i.X)
	case LdVxI:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}

// UnknownOpcodeError is returned by Decode for unmapped instruction words.
type UnknownOpcodeError struct {
	Word uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("%s $%04X", ErrUnknownOpcode, e.Word)
}

// Unwrap returns ErrUnknownOpcode.
func (e *UnknownOpcodeError) Unwrap() error {
	return ErrUnknownOpcode
}
