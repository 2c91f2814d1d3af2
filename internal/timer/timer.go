// Package timer implements the DIV/TIMA/TMA/TAC timer block. TIMA
// increments on the falling edge of a DIV bit selected by TAC, and
// carries the four-cycle overflow-reload quirk.
package timer

import "github.com/pixelforge/dmgboy/internal/interrupts"

// freqBit maps the 2-bit TAC frequency select to the DIV bit position
// whose falling edge drives TIMA.
var freqBit = [4]uint8{9, 3, 5, 7}

type reloadState uint8

const (
	notReloading reloadState = iota
	inReload
	rightAfterReload
)

// Controller owns the 16-bit internal DIV counter and the TIMA/TMA/TAC
// registers.
type Controller struct {
	div uint16

	tima uint8
	tma  uint8
	tac  uint8

	enabled        bool
	freqBit        uint8
	reload         reloadState
	reloadOverride bool  // a write to TIMA happened during inReload
	reloadTo       uint8 // value of that write

	irq *interrupts.Controller
}

// New returns a Controller wired to the given interrupt controller, with
// DIV at its documented post-boot-ROM value.
func New(irq *interrupts.Controller) *Controller {
	return &Controller{
		div:     0xAB00,
		freqBit: freqBit[0],
		irq:     irq,
	}
}

func (c *Controller) mask() uint16 {
	if !c.enabled {
		return 0
	}
	return 1 << c.freqBit
}

// Advance ticks the timer by one machine cycle (4 clocks).
func (c *Controller) Advance() {
	old := c.div
	c.div += 4

	switch c.reload {
	case inReload:
		if c.reloadOverride {
			c.tima = c.reloadTo
		} else {
			c.tima = c.tma
		}
		c.irq.Schedule(interrupts.Timer)
		c.reload = rightAfterReload
		c.reloadOverride = false
	case rightAfterReload:
		c.reload = notReloading
	}

	mask := c.mask()
	if old&mask != 0 && c.div&mask == 0 {
		c.incrementTIMA()
	}
}

// incrementTIMA bumps TIMA and, on overflow, arms the four-cycle reload
// sequence (the interrupt and TMA reload happen one Advance() later).
func (c *Controller) incrementTIMA() {
	c.tima++
	if c.tima == 0 {
		c.reload = inReload
	}
}

// ReadDIV returns the CPU-visible upper byte of the internal divider.
func (c *Controller) ReadDIV() uint8 {
	return uint8(c.div >> 8)
}

// WriteDIV resets DIV to zero. If the write happens while the current
// frequency bit is set (i.e. a falling edge would occur), TIMA is
// incremented first, exactly as it would be on the edge the reset causes.
func (c *Controller) WriteDIV(uint8) {
	mask := c.mask()
	if c.div&mask != 0 {
		c.incrementTIMA()
	}
	c.div = 0
}

// ReadTIMA returns TIMA. In the cycle right after an overflow TIMA is 0,
// and the next Advance loads it from TMA, so a plain read is always
// correct.
func (c *Controller) ReadTIMA() uint8 {
	return c.tima
}

// WriteTIMA writes TIMA, honoring the reload-window quirks: a write
// during the reload cycle overrides what TMA would have reloaded; a
// write the cycle right after a reload is ignored.
func (c *Controller) WriteTIMA(v uint8) {
	switch c.reload {
	case inReload:
		c.reloadTo = v
		c.reloadOverride = true
		c.tima = v
	case rightAfterReload:
		// ignored
	default:
		c.tima = v
	}
}

// ReadTMA returns TMA.
func (c *Controller) ReadTMA() uint8 {
	return c.tma
}

// WriteTMA writes TMA. A write during the cycle right after a reload
// also retroactively overwrites TIMA.
func (c *Controller) WriteTMA(v uint8) {
	c.tma = v
	if c.reload == rightAfterReload {
		c.tima = v
	}
}

// ReadTAC returns TAC with its unused upper bits forced to 1.
func (c *Controller) ReadTAC() uint8 {
	return c.tac | 0xF8
}

// WriteTAC writes TAC. Changing the enable bit or the frequency select
// can create a spurious falling edge on the internal mux output; if
// that edge overflows TIMA, the Timer interrupt fires immediately.
func (c *Controller) WriteTAC(v uint8) {
	oldMask := c.mask()

	c.tac = v & 0x07
	c.enabled = v&0x04 != 0
	c.freqBit = freqBit[v&0x03]

	if c.div&oldMask != 0 && c.div&c.mask() == 0 {
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Schedule(interrupts.Timer)
		}
	}
}
