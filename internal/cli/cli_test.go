package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Machine:    options.Machine{Hz: options.DefaultHz, TimerDivider: options.DefaultTimerDivider},
			},
		},
		{
			name: "input flag",
			args: []string{"prog", "-i", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Machine:    options.Machine{Hz: options.DefaultHz, TimerDivider: options.DefaultTimerDivider},
			},
		},
		{
			name: "machine flags",
			args: []string{"prog", "-cycles", "100", "-hz", "0", "-timer-divider", "10", "-seed", "7",
				"-max-errors", "3", "-shift-vy", "-increment-i", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Machine: options.Machine{
					Cycles:                   100,
					TimerDivider:             10,
					Seed:                     7,
					MaxErrors:                3,
					ShiftUsesVY:              true,
					LoadStoreIncrementsIndex: true,
				},
			},
		},
		{
			name: "trace implies debug",
			args: []string{"prog", "-trace", "-dump", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:      options.Flags{Debug: true, Trace: true, Dump: true},
				Machine:    options.Machine{Hz: options.DefaultHz, TimerDivider: options.DefaultTimerDivider},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no rom file", []string{"prog"}, true},
		{"unknown flag", []string{"prog", "-unknown", "pong.ch8"}, true},
		{"flag after rom file", []string{"prog", "pong.ch8", "-q"}, true},
		{"negative clock rate", []string{"prog", "-hz", "-1", "pong.ch8"}, false},
		{"clock rate above one step per nanosecond", []string{"prog", "-hz", "2000000000", "pong.ch8"}, false},
		{"zero timer divider", []string{"prog", "-timer-divider", "0", "pong.ch8"}, false},
		{"negative error limit", []string{"prog", "-max-errors", "-2", "pong.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}
