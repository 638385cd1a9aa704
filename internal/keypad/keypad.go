// Package keypad implements the 16 key hexadecimal CHIP-8 input device.
package keypad

import (
	"errors"
	"fmt"
)

// Keys is the number of keys of the keypad.
const Keys = 16

// ErrInvalidKey is returned when a key index outside of 0x0-0xF is used.
var ErrInvalidKey = errors.New("invalid key index")

// Keypad latches the pressed state of every key. The state is only changed
// by the host, the interpreter reads it.
type Keypad struct {
	pressed [Keys]bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	k.pressed = [Keys]bool{}
}

// SetKey sets the state of a key.
func (k *Keypad) SetKey(index int, pressed bool) error {
	if index < 0 || index >= Keys {
		return fmt.Errorf("%w: %d", ErrInvalidKey, index)
	}
	k.pressed[index] = pressed
	return nil
}

// Pressed returns whether the key with the given index is pressed.
// Only the low nibble of the index is used.
func (k *Keypad) Pressed(index byte) bool {
	return k.pressed[index&0x0F]
}

// FirstPressed returns the lowest index of all pressed keys.
func (k *Keypad) FirstPressed() (byte, bool) {
	for i, pressed := range k.pressed {
		if pressed {
			return byte(i), true
		}
	}
	return 0, false
}
