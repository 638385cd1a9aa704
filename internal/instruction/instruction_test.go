package instruction

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		kind Kind
		text string
	}{
		{0x00E0, Cls, "cls"},
		{0x00EE, Ret, "ret"},
		{0x0123, Sys, "sys $123"},
		{0x1234, Jp, "jp $234"},
		{0x2300, Call, "call $300"},
		{0x3234, SeByte, "se V2, $34"},
		{0x4A01, SneByte, "sne VA, $01"},
		{0x5120, SeReg, "se V1, V2"},
		{0x612A, LdByte, "ld V1, $2A"},
		{0x7F01, AddByte, "add VF, $01"},
		{0x8120, LdReg, "ld V1, V2"},
		{0x8121, Or, "or V1, V2"},
		{0x8122, And, "and V1, V2"},
		{0x8123, Xor, "xor V1, V2"},
		{0x8124, AddReg, "add V1, V2"},
		{0x8125, Sub, "sub V1, V2"},
		{0x8126, Shr, "shr V1"},
		{0x8127, Subn, "subn V1, V2"},
		{0x812E, Shl, "shl V1"},
		{0x9120, SneReg, "sne V1, V2"},
		{0xA2F0, LdI, "ld I, $2F0"},
		{0xB300, JpV0, "jp V0, $300"},
		{0xC10F, Rnd, "rnd V1, $0F"},
		{0xD015, Drw, "drw V0, V1, $5"},
		{0xE39E, Skp, "skp V3"},
		{0xE3A1, Sknp, "sknp V3"},
		{0xF407, LdVxDT, "ld V4, DT"},
		{0xF40A, LdVxK, "ld V4, K"},
		{0xF415, LdDTVx, "ld DT, V4"},
		{0xF418, LdSTVx, "ld ST, V4"},
		{0xF41E, AddI, "add I, V4"},
		{0xF429, LdF, "ld F, V4"},
		{0xF433, LdB, "ld B, V4"},
		{0xF455, LdIVx, "ld [I], V4"},
		{0xF465, LdVxI, "ld V4, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.kind, ins.Kind)
			assert.Equal(t, tt.word, ins.Word)
			assert.Equal(t, tt.text, ins.String())
		})
	}
}

func TestDecode_Operands(t *testing.T) {
	ins, err := Decode(0xD7A9)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x7), ins.X)
	assert.Equal(t, byte(0xA), ins.Y)
	assert.Equal(t, byte(0x9), ins.N)
	assert.Equal(t, byte(0xA9), ins.NN)
	assert.Equal(t, uint16(0x7A9), ins.NNN)
}

func TestDecode_Unknown(t *testing.T) {
	words := []uint16{0x5121, 0x912F, 0x8128, 0x812F, 0xE100, 0xE19F, 0xF100, 0xF1FF}

	for _, word := range words {
		ins, err := Decode(word)
		assert.Equal(t, Unknown, ins.Kind)
		assert.True(t, errors.Is(err, ErrUnknownOpcode))

		var opErr *UnknownOpcodeError
		assert.True(t, errors.As(err, &opErr))
		assert.Equal(t, word, opErr.Word)
	}
}

func TestInstruction_IsSkip(t *testing.T) {
	tests := []struct {
		word     uint16
		expected bool
	}{
		{0x3000, true},
		{0x4000, true},
		{0x5000, true},
		{0x9000, true},
		{0xE09E, true},
		{0xE0A1, true},
		{0x1000, false},
		{0x2000, false},
		{0x00EE, false},
		{0x6000, false},
	}

	for _, tt := range tests {
		ins, err := Decode(tt.word)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, ins.IsSkip())
	}
}

func TestInstruction_IsControlFlow(t *testing.T) {
	for _, word := range []uint16{0x00EE, 0x1200, 0x2200, 0xB200, 0x3000, 0xF00A} {
		ins, err := Decode(word)
		assert.NoError(t, err)
		assert.True(t, ins.IsControlFlow())
	}
	for _, word := range []uint16{0x00E0, 0x0123, 0x6000, 0xD001, 0xF055} {
		ins, err := Decode(word)
		assert.NoError(t, err)
		assert.False(t, ins.IsControlFlow())
	}
}

func TestKind_Name(t *testing.T) {
	assert.Equal(t, "drw", Drw.Name())
	assert.Equal(t, "unknown", Kind(200).Name())
}

func TestDecode_MatchesOpcodeTable(t *testing.T) {
	for word := 0x1000; word <= 0xFFFF; word++ {
		ins, err := Decode(uint16(word))
		if err != nil {
			continue
		}

		op, ok := lookup(uint16(word))
		assert.True(t, ok)
		assert.Equal(t, op.Instruction.Name, ins.Kind.Name())
	}
}

func TestLookup(t *testing.T) {
	op, ok := lookup(0x00E0)
	assert.True(t, ok)
	assert.Equal(t, chip8.ClsName, op.Instruction.Name)

	op, ok = lookup(0xB300)
	assert.True(t, ok)
	assert.Equal(t, chip8.JpName, op.Instruction.Name)

	op, ok = lookup(0xF465)
	assert.True(t, ok)
	assert.Equal(t, chip8.LdName, op.Instruction.Name)
}
