// Package cpu implements the Sharp LR35902 instruction set: the 256
// base opcodes, the 256 CB-prefixed opcodes, and the interrupt/HALT/
// STOP model that drives them.
package cpu

import "github.com/pixelforge/dmgboy/internal/interrupts"

// Bus is everything the CPU needs from the rest of the machine. Every
// ReadByte/WriteByte call is expected to advance the shared m-cycle
// clock by exactly one cycle before performing the access; AdvanceMCycle
// does the same for cycles that don't touch the bus.
type Bus interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, v uint8)
	AdvanceMCycle()
}

// HaltState is one of running, halted, stopped, or stuck.
type HaltState uint8

const (
	Running HaltState = iota
	Halted
	Stopped
	Stuck
)

// CPU is the register file plus the fetch/decode/execute loop. It holds
// no VRAM/timer/interrupt state of its own beyond the registers and the
// halt flip-flop; everything else is reached through Bus and the
// shared interrupt controller.
type CPU struct {
	Reg   Registers
	Halt  HaltState
	irq   *interrupts.Controller
	bus   Bus
}

// New returns a CPU with every register zeroed, the documented DMG
// power-up state before the boot ROM runs (the boot ROM itself is what
// sets SP, clears VRAM, and leaves AF/BC/DE/HL at their documented
// post-boot values).
func New(bus Bus, irq *interrupts.Controller) *CPU {
	return &CPU{bus: bus, irq: irq}
}

func (c *CPU) fetch8() uint8 {
	v := c.bus.ReadByte(c.Reg.PC)
	c.Reg.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.bus.ReadByte(addr)
	hi := c.bus.ReadByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) write16(addr uint16, v uint16) {
	c.bus.WriteByte(addr, uint8(v))
	c.bus.WriteByte(addr+1, uint8(v>>8))
}

func (c *CPU) push16(v uint16) {
	c.Reg.SP -= 2
	c.bus.AdvanceMCycle()
	c.write16(c.Reg.SP, v)
}

func (c *CPU) pop16() uint16 {
	v := c.read16(c.Reg.SP)
	c.Reg.SP += 2
	return v
}

// StepInstruction advances the machine by exactly one CPU instruction,
// including any interrupt service it performs beforehand.
func (c *CPU) StepInstruction() {
	if c.Halt == Stuck {
		c.bus.AdvanceMCycle()
		return
	}

	if c.Halt == Halted || c.Halt == Stopped {
		if !c.irq.Pending() {
			c.bus.AdvanceMCycle()
			return
		}
		c.Halt = Running
	}

	if c.irq.IME {
		if kind, ok := c.irq.Query(); ok {
			c.serviceInterrupt(kind)
			return
		}
	}

	opcode := c.fetch8()
	c.execute(opcode)
}

// serviceInterrupt runs the fixed interrupt dispatch sequence: disable
// IME, clear the pending IF bit, burn a cycle, push PC, jump to the
// vector, burn a final cycle.
func (c *CPU) serviceInterrupt(kind interrupts.Kind) {
	c.irq.IME = false
	c.irq.Clear(kind)
	c.bus.AdvanceMCycle()
	c.Reg.SP -= 2
	c.write16(c.Reg.SP, c.Reg.PC)
	c.Reg.PC = kind.Vector()
	c.bus.AdvanceMCycle()
}
