// Package timer implements the CHIP-8 delay and sound timers.
//
// The timers have no clock of their own. They are advanced once per call of
// Tick, which the interpreter does after every executed instruction. Their
// effective rate therefore equals the rate at which the host steps the
// machine; the nominal CHIP-8 rate of 60 Hz has to be derived by the host.
package timer

// Timers holds the two 8-bit countdown counters.
type Timers struct {
	delay byte
	sound byte

	beep bool
}

// New returns stopped timers.
func New() *Timers {
	return &Timers{}
}

// Reset stops both timers and drops a pending beep request.
func (t *Timers) Reset() {
	*t = Timers{}
}

// Delay returns the current delay timer value.
func (t *Timers) Delay() byte {
	return t.delay
}

// SetDelay sets the delay timer.
func (t *Timers) SetDelay(value byte) {
	t.delay = value
}

// Sound returns the current sound timer value.
func (t *Timers) Sound() byte {
	return t.sound
}

// SetSound sets the sound timer.
func (t *Timers) SetSound(value byte) {
	t.sound = value
}

// Tick decrements every nonzero timer by one. A sound timer that reaches
// zero from one raises a beep request.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		if t.sound == 1 {
			t.beep = true
		}
		t.sound--
	}
}

// ConsumeBeep returns whether a beep is pending and clears the request.
func (t *Timers) ConsumeBeep() bool {
	beep := t.beep
	t.beep = false
	return beep
}
