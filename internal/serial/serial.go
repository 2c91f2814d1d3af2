// Package serial is a stub for the SB/SC serial-port registers. No
// actual link-cable transfer is performed; the
// registers merely hold whatever was last written, and unimplemented
// operations are logged rather than acted on.
package serial

import "github.com/pixelforge/dmgboy/pkg/log"

// Controller holds the SB/SC registers.
type Controller struct {
	sb uint8
	sc uint8

	log log.Logger
}

// New returns a Controller logging through l.
func New(l log.Logger) *Controller {
	return &Controller{sc: 0x7E, log: l}
}

// ReadSB returns the serial data register.
func (c *Controller) ReadSB() uint8 {
	return c.sb
}

// WriteSB writes the serial data register.
func (c *Controller) WriteSB(v uint8) {
	c.sb = v
}

// ReadSC returns the serial control register. Bits 1-6 always read back
// as 1.
func (c *Controller) ReadSC() uint8 {
	return c.sc | 0x7E
}

// WriteSC writes the serial control register. A transfer is never
// actually started; software that polls for transfer completion will
// see the start bit stay set forever, which is logged once per write
// since some games trigger it repeatedly during boot.
func (c *Controller) WriteSC(v uint8) {
	c.sc = v & 0x81
	if c.sc&0x80 != 0 {
		c.log.Infof("serial: transfer requested, no link cable attached")
	}
}
