package vm

import (
	"errors"
	"testing"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/memory"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/random"
	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestMachine returns a machine with the given instruction words loaded
// at the program start.
func newTestMachine(t *testing.T, cfg Config, program ...uint16) *Machine {
	t.Helper()

	if cfg.Random == nil {
		cfg.Random = random.NewSequence(0xFF)
	}
	m := New(log.NewTestLogger(t), cfg)
	assert.NoError(t, m.LoadROM(words(program...)))
	return m
}

func words(program ...uint16) []byte {
	rom := make([]byte, 0, len(program)*2)
	for _, w := range program {
		rom = append(rom, byte(w>>8), byte(w))
	}
	return rom
}

func steps(t *testing.T, m *Machine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.NoError(t, m.Step())
	}
}

func TestNew(t *testing.T) {
	m := New(log.NewTestLogger(t), Config{})

	state := m.State()
	assert.Equal(t, uint16(memory.ProgramStart), state.PC)
	assert.Equal(t, uint16(0), state.I)
	assert.Equal(t, byte(0), state.SP)
	assert.Equal(t, [Registers]byte{}, state.V)
	assert.Equal(t, byte(0), state.Delay)
	assert.Equal(t, byte(0), state.Sound)
	assert.False(t, m.DrawRequested())

	mem := m.Memory()
	if diff := cmp.Diff(memory.Font(), mem[memory.FontStart:memory.FontStart+len(memory.Font())]); diff != "" {
		t.Errorf("font mismatch (-want +got):\n%s", diff)
	}
}

func TestMachine_ResetIsIdempotent(t *testing.T) {
	m := newTestMachine(t, Config{},
		0x6A42, // ld VA, $42
		0xA300, // ld I, $300
		0x2208, // call $208
		0x0000,
		0xF015, // ld DT, V0
		0xD001, // drw V0, V0, $1
	)
	m.v[0] = 5
	steps(t, m, 5)
	assert.NoError(t, m.SetKey(3, true))

	m.Reset()
	first := m.State()
	firstMem := m.Memory()

	m.Reset()
	assert.Equal(t, first, m.State())
	if diff := cmp.Diff(firstMem, m.Memory()); diff != "" {
		t.Errorf("memory differs after second reset (-want +got):\n%s", diff)
	}

	assert.Equal(t, New(log.NewTestLogger(t), Config{}).State(), first)
	assert.Equal(t, 0, m.Display().Lit())
	assert.False(t, m.DrawRequested())
	_, pressed := m.keys.FirstPressed()
	assert.False(t, pressed)
	assert.Equal(t, byte(0), firstMem[memory.ProgramStart])
}

func TestMachine_LoadROM(t *testing.T) {
	t.Run("copies image to program start", func(t *testing.T) {
		m := New(log.NewTestLogger(t), Config{})
		assert.NoError(t, m.LoadROM([]byte{0x12, 0x34, 0x56}))

		mem := m.Memory()
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x00}, mem[memory.ProgramStart:memory.ProgramStart+4])
	})

	t.Run("fills the program space exactly", func(t *testing.T) {
		m := New(log.NewTestLogger(t), Config{})
		rom := make([]byte, memory.ProgramSize)
		rom[len(rom)-1] = 0xEE
		assert.NoError(t, m.LoadROM(rom))
		assert.Equal(t, byte(0xEE), m.Memory()[memory.MaxAddress])
	})

	t.Run("too large rom leaves memory unmodified", func(t *testing.T) {
		m := New(log.NewTestLogger(t), Config{})
		assert.NoError(t, m.LoadROM([]byte{0xAA, 0xBB}))
		before := m.Memory()

		rom := make([]byte, memory.ProgramSize+1)
		for i := range rom {
			rom[i] = 0x77
		}
		err := m.LoadROM(rom)
		assert.True(t, errors.Is(err, ErrRomTooLarge))
		if diff := cmp.Diff(before, m.Memory()); diff != "" {
			t.Errorf("memory changed (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps bytes after a shorter image", func(t *testing.T) {
		m := New(log.NewTestLogger(t), Config{})
		assert.NoError(t, m.LoadROM([]byte{1, 2, 3, 4}))
		assert.NoError(t, m.LoadROM([]byte{9}))
		assert.Equal(t, []byte{9, 2, 3, 4}, m.Memory()[memory.ProgramStart:memory.ProgramStart+4])
	})

	t.Run("does not touch registers and timers", func(t *testing.T) {
		m := newTestMachine(t, Config{}, 0x6107, 0xF115) // ld V1, $07; ld DT, V1
		steps(t, m, 2)
		before := m.State()

		assert.NoError(t, m.LoadROM([]byte{0x00, 0xE0}))
		assert.Equal(t, before, m.State())
	})
}

func TestMachine_SetKey(t *testing.T) {
	m := New(log.NewTestLogger(t), Config{})

	assert.NoError(t, m.SetKey(0xF, true))
	assert.Error(t, m.SetKey(16, true))
	assert.Error(t, m.SetKey(-1, false))
}

func TestMachine_Run(t *testing.T) {
	m := newTestMachine(t, Config{}, 0x7001, 0x7001, 0x5000, 0x1200)

	n, err := m.Run(3)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, byte(2), m.v[0])

	// 0x0000 beyond the program is ignored as sys, 0x5001 is unknown
	m = newTestMachine(t, Config{}, 0x7001, 0x5001)
	n, err = m.Run(10)
	assert.Equal(t, 1, n)
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
}

func TestMachine_Trace(t *testing.T) {
	m := newTestMachine(t, Config{Trace: true}, 0x6001, 0x00E0)
	steps(t, m, 2)
	assert.Equal(t, uint64(2), m.State().Cycles)
}
