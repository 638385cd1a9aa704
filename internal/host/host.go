// Package host implements the driver loop that steps a machine at a fixed
// cadence and forwards frames and beeps to the presentation layer.
package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/display"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// ErrTooManyErrors is returned by Run when the consecutive error limit was hit.
var ErrTooManyErrors = errors.New("too many consecutive execution errors")

// Options control the driver loop.
type Options struct {
	// Hz is the number of steps per second, 0 runs unpaced.
	Hz int
	// Cycles stops the loop after the given number of steps, 0 runs until
	// the context is cancelled.
	Cycles uint64
	// MaxErrors stops the loop after the given number of consecutive
	// execution errors, 0 never stops on errors.
	MaxErrors int
}

// Stats counts the events of a run.
type Stats struct {
	Cycles uint64
	Frames uint64
	Beeps  uint64
	Errors uint64
}

// Runner owns a machine and serializes all access to it. Keys can be set
// from any goroutine while Run is active.
type Runner struct {
	logger *log.Logger
	opts   Options

	// OnFrame is called after a step that changed the framebuffer. It runs
	// while the machine is locked and must not call back into the runner.
	OnFrame func(fb *display.Framebuffer)
	// OnBeep is called after a step in which the sound timer expired.
	OnBeep func()

	mu      sync.Mutex
	machine *vm.Machine
	stats   Stats
}

// New returns a runner for the given machine.
func New(logger *log.Logger, machine *vm.Machine, opts Options) *Runner {
	return &Runner{
		logger:  logger,
		opts:    opts,
		machine: machine,
	}
}

// SetKey sets the pressed state of a key.
func (r *Runner) SetKey(index int, pressed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.SetKey(index, pressed)
}

// Reset resets the machine, which also abandons a pending key wait.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.machine.Reset()
}

// Frame returns a copy of the current framebuffer contents.
func (r *Runner) Frame() [display.Height][display.Width]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.Display().Snapshot()
}

// State returns a copy of the machine registers.
func (r *Runner) State() vm.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.State()
}

// Stats returns the event counters.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Step executes a single machine step and dispatches the resulting frame
// and beep events.
func (r *Runner) Step() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.machine.Step()
	r.stats.Cycles++
	if err != nil {
		r.stats.Errors++
	}

	if r.machine.DrawRequested() {
		r.stats.Frames++
		if r.OnFrame != nil {
			r.OnFrame(r.machine.Display())
		}
		r.machine.ClearDrawRequest()
	}
	if r.machine.ConsumeBeep() {
		r.stats.Beeps++
		if r.OnBeep != nil {
			r.OnBeep()
		}
	}
	return err
}

// Run steps the machine until the context is cancelled, the cycle limit is
// reached or too many consecutive errors occurred. Execution errors are
// logged and do not stop the loop otherwise.
func (r *Runner) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if r.opts.Hz > 0 {
		ticker := time.NewTicker(stepInterval(r.opts.Hz))
		defer ticker.Stop()
		tick = ticker.C
	}

	var consecutive int
	for n := uint64(0); r.opts.Cycles == 0 || n < r.opts.Cycles; n++ {
		if err := r.wait(ctx, tick); err != nil {
			return err
		}

		err := r.Step()
		if err == nil {
			consecutive = 0
			continue
		}

		consecutive++
		r.logger.Warn("Execution error", log.Err(err))
		if r.opts.MaxErrors > 0 && consecutive >= r.opts.MaxErrors {
			return fmt.Errorf("%w: %d", ErrTooManyErrors, consecutive)
		}
	}
	return nil
}

// stepInterval returns the ticker period for the clock rate. Rates above
// one step per nanosecond are clamped.
func stepInterval(hz int) time.Duration {
	return max(time.Second/time.Duration(hz), time.Nanosecond)
}

func (r *Runner) wait(ctx context.Context, tick <-chan time.Time) error {
	if tick == nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick:
		return nil
	}
}
