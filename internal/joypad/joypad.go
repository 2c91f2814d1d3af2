// Package joypad implements the P1/JOYP register and the button-press
// edge detection that schedules the Joypad interrupt.
package joypad

import "github.com/pixelforge/dmgboy/internal/interrupts"

// Button identifies one of the eight physical buttons. The low nibble is
// the directional group, the high nibble the face/select group, matching
// the bit layout the P1 register exposes when a group is selected.
type Button uint8

const (
	Right  Button = 0x01
	Left   Button = 0x02
	Up     Button = 0x04
	Down   Button = 0x08
	A      Button = 0x10
	B      Button = 0x20
	Select Button = 0x40
	Start  Button = 0x80
)

// Controller holds the P1 register and the set of currently pressed
// buttons. pressed uses 1 = pressed, 0 = released internally, inverted
// to the DMG's active-low convention only at the P1 boundary.
type Controller struct {
	p1      uint8
	pressed uint8

	irq *interrupts.Controller
}

// New returns a Controller with no group selected and nothing pressed.
func New(irq *interrupts.Controller) *Controller {
	return &Controller{
		p1:  0x30,
		irq: irq,
	}
}

// ReadP1 returns the P1 register: bits 4-5 as last written, bits 0-3
// derived from pressed according to which nibble(s) are selected
// (active-low), upper two bits forced to 1.
func (c *Controller) ReadP1() uint8 {
	out := uint8(0x0F)
	if c.p1&0x10 == 0 {
		out &= ^(c.pressed & 0x0F)
	}
	if c.p1&0x20 == 0 {
		out &= ^(c.pressed >> 4)
	}
	return c.p1&0x30 | out | 0xC0
}

// WriteP1 updates the group-select bits. Bits 0-3 are read-only from the
// CPU's perspective and ignored here.
func (c *Controller) WriteP1(v uint8) {
	c.p1 = c.p1&0xCF | v&0x30
}

// NotifyPressed marks the given buttons as pressed, scheduling a Joypad
// interrupt if any of them transitions from released to pressed (edge
// triggered).
func (c *Controller) NotifyPressed(buttons uint8) {
	if c.pressed&buttons != buttons {
		c.irq.Schedule(interrupts.Joypad)
	}
	c.pressed |= buttons
}

// NotifyReleased marks the given buttons as released. Releasing never
// schedules an interrupt.
func (c *Controller) NotifyReleased(buttons uint8) {
	c.pressed &^= buttons
}

// NotifyState replaces the entire pressed set at once, the interface
// used by polling frontends that sample the whole pad every frame. A
// Joypad interrupt fires if any newly-set bit was not already pressed.
func (c *Controller) NotifyState(buttons uint8) {
	if buttons&^c.pressed != 0 {
		c.irq.Schedule(interrupts.Joypad)
	}
	c.pressed = buttons
}
