// Package rom handles loading of raw CHIP-8 program images.
package rom

import (
	"fmt"
	"io"
	"os"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/memory"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/vm"
)

// Loader reads headerless program images from disk.
type Loader struct{}

// New creates a new rom loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program image from the given file.
// Failures to open or read the file are reported as vm.ErrRomUnreadable,
// images that do not fit the program space as vm.ErrRomTooLarge.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file %s: %w", vm.ErrRomUnreadable, path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return data, nil
}

// Read reads a program image from a reader. At most one byte more than
// the program space is read to detect oversized images.
func (l *Loader) Read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, memory.ProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vm.ErrRomUnreadable, err)
	}
	if len(data) > memory.ProgramSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", vm.ErrRomTooLarge, memory.ProgramSize)
	}
	return data, nil
}

// LoadInto reads the program image from the given file and copies it into
// the machine. The machine is left unchanged if loading fails.
func (l *Loader) LoadInto(m *vm.Machine, path string) error {
	data, err := l.Load(path)
	if err != nil {
		return err
	}
	if err := m.LoadROM(data); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
