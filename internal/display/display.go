// Package display implements the monochrome CHIP-8 framebuffer.
package display

import "bytes"

const (
	// Width of the framebuffer in pixels.
	Width = 64
	// Height of the framebuffer in pixels.
	Height = 32
	// SpriteWidth is the fixed width of a sprite in pixels.
	SpriteWidth = 8
)

// Framebuffer is a 64x32 grid of on/off pixels. Coordinates passed to the
// drawing functions wrap around the edges.
type Framebuffer struct {
	pixels [Height][Width]bool

	drawRequested bool
}

// New returns a cleared framebuffer.
func New() *Framebuffer {
	return &Framebuffer{}
}

// Reset turns all pixels off and drops a pending draw request.
func (f *Framebuffer) Reset() {
	f.pixels = [Height][Width]bool{}
	f.drawRequested = false
}

// Clear turns all pixels off and requests a redraw.
func (f *Framebuffer) Clear() {
	f.pixels = [Height][Width]bool{}
	f.drawRequested = true
}

// Pixel returns whether the pixel at the given coordinates is set.
// Coordinates wrap around.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.pixels[wrap(y, Height)][wrap(x, Width)]
}

// DrawSprite XORs the rows of an 8 pixel wide sprite onto the framebuffer
// with its top left corner at x, y. Every pixel position wraps around the
// screen edges. It returns true if any pixel that was set got turned off.
func (f *Framebuffer) DrawSprite(x, y byte, sprite []byte) bool {
	collision := false
	for row, bits := range sprite {
		py := wrap(int(y)+row, Height)
		for col := 0; col < SpriteWidth; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := wrap(int(x)+col, Width)
			if f.pixels[py][px] {
				collision = true
			}
			f.pixels[py][px] = !f.pixels[py][px]
		}
	}
	f.drawRequested = true
	return collision
}

// DrawRequested returns whether the framebuffer changed since the host
// last consumed a frame.
func (f *Framebuffer) DrawRequested() bool {
	return f.drawRequested
}

// ClearDrawRequest is called by the host after it consumed a frame.
func (f *Framebuffer) ClearDrawRequest() {
	f.drawRequested = false
}

// Snapshot returns a copy of the pixel grid, indexed by row then column.
func (f *Framebuffer) Snapshot() [Height][Width]bool {
	return f.pixels
}

// Lit returns the number of pixels that are set.
func (f *Framebuffer) Lit() int {
	n := 0
	for y := range f.pixels {
		for x := range f.pixels[y] {
			if f.pixels[y][x] {
				n++
			}
		}
	}
	return n
}

// String renders the framebuffer as text, one line per row.
func (f *Framebuffer) String() string {
	var buf bytes.Buffer
	for y := range f.pixels {
		for x := range f.pixels[y] {
			if f.pixels[y][x] {
				buf.WriteByte('#')
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
