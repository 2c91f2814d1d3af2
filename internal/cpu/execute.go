package cpu

// execute dispatches a fetched base opcode through a single switch
// over the opcode's regular low/middle/high bit fields.
func (c *CPU) execute(opcode uint8) {
	x := opcode >> 6         // 2 bits
	y := (opcode >> 3) & 0x7 // 3 bits
	z := opcode & 0x7        // 3 bits

	switch {
	case opcode == 0x00: // NOP
	case opcode == 0x10: // STOP
		c.fetch8()
		c.Halt = Stopped
	case opcode == 0x76: // HALT
		c.enterHalt()
	case x == 1: // LD r,r' (0x40-0x7F minus HALT)
		c.setR8(y, c.r8(z))
	case x == 2: // ALU A,r
		c.aluOp(y, c.r8(z))
	case x == 0 && z == 0 && y >= 3 && y <= 7:
		c.execJR(y - 3)
	case x == 0 && z == 1 && y&1 == 0:
		c.setR16(y>>1, c.fetch16())
	case x == 0 && z == 1 && y&1 == 1:
		c.addHL(c.r16(y >> 1))
		c.bus.AdvanceMCycle()
	case x == 0 && z == 2:
		c.execLDIndirect(y)
	case x == 0 && z == 3 && y&1 == 0:
		c.setR16(y>>1, c.r16(y>>1)+1)
		c.bus.AdvanceMCycle()
	case x == 0 && z == 3 && y&1 == 1:
		c.setR16(y>>1, c.r16(y>>1)-1)
		c.bus.AdvanceMCycle()
	case x == 0 && z == 4:
		c.setR8(y, c.inc8(c.r8(y)))
	case x == 0 && z == 5:
		c.setR8(y, c.dec8(c.r8(y)))
	case x == 0 && z == 6:
		c.setR8(y, c.fetch8())
	case x == 0 && z == 7 && y < 4:
		c.execRotateA(y)
	case opcode == 0x08: // LD (a16),SP
		addr := c.fetch16()
		c.bus.WriteByte(addr, uint8(c.Reg.SP))
		c.bus.WriteByte(addr+1, uint8(c.Reg.SP>>8))
	case opcode == 0x27:
		c.daa()
	case opcode == 0x2F: // CPL
		c.Reg.A = ^c.Reg.A
		c.Reg.SetFlag(FlagN, true)
		c.Reg.SetFlag(FlagH, true)
	case opcode == 0x37: // SCF
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagH, false)
		c.Reg.SetFlag(FlagC, true)
	case opcode == 0x3F: // CCF
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagH, false)
		c.Reg.SetFlag(FlagC, !c.Reg.Flag(FlagC))
	case x == 3 && z == 0 && y < 4:
		c.execRetCond(y)
	case x == 3 && z == 0 && y == 4:
		c.bus.WriteByte(0xFF00+uint16(c.fetch8()), c.Reg.A)
	case x == 3 && z == 0 && y == 5:
		d := int8(c.fetch8())
		c.Reg.SP = c.addSPr8(c.Reg.SP, d)
		c.bus.AdvanceMCycle()
		c.bus.AdvanceMCycle()
	case x == 3 && z == 0 && y == 6:
		c.Reg.A = c.bus.ReadByte(0xFF00 + uint16(c.fetch8()))
	case x == 3 && z == 0 && y == 7:
		d := int8(c.fetch8())
		c.Reg.SetHL(c.addSPr8(c.Reg.SP, d))
		c.bus.AdvanceMCycle()
	case x == 3 && z == 1 && y&1 == 0:
		c.setR16stk(y>>1, c.pop16())
	case opcode == 0xC9: // RET
		c.ret()
	case opcode == 0xD9: // RETI
		c.ret()
		c.irq.IME = true
	case opcode == 0xE9: // JP HL
		c.Reg.PC = c.Reg.HL()
	case opcode == 0xF9: // LD SP,HL
		c.Reg.SP = c.Reg.HL()
		c.bus.AdvanceMCycle()
	case x == 3 && z == 2 && y < 4:
		addr := c.fetch16()
		if c.cond(y) {
			c.jp(addr)
		}
	case opcode == 0xE2: // LD (C),A
		c.bus.WriteByte(0xFF00+uint16(c.Reg.C), c.Reg.A)
	case opcode == 0xEA: // LD (a16),A
		c.bus.WriteByte(c.fetch16(), c.Reg.A)
	case opcode == 0xF2: // LD A,(C)
		c.Reg.A = c.bus.ReadByte(0xFF00 + uint16(c.Reg.C))
	case opcode == 0xFA: // LD A,(a16)
		c.Reg.A = c.bus.ReadByte(c.fetch16())
	case opcode == 0xC3: // JP a16
		c.jp(c.fetch16())
	case opcode == 0xCB:
		c.executeCB(c.fetch8())
	case opcode == 0xF3: // DI
		c.irq.IME = false
	case opcode == 0xFB: // EI
		c.irq.IME = true
	case x == 3 && z == 4 && y < 4:
		addr := c.fetch16()
		if c.cond(y) {
			c.call(addr)
		}
	case opcode == 0xCD: // CALL a16
		c.call(c.fetch16())
	case x == 3 && z == 5 && y&1 == 0:
		c.push16(c.r16stk(y >> 1))
	case x == 3 && z == 6:
		c.aluOp(y, c.fetch8())
	case x == 3 && z == 7:
		c.rst(uint16(y) * 8)
	default:
		// Unassigned/illegal opcode. Real hardware locks up the CPU
		// until reset; modeled as STUCK rather than panicking so a
		// runaway fetch off corrupted memory doesn't crash the host.
		c.Halt = Stuck
	}
}

func (c *CPU) enterHalt() {
	c.Halt = Halted
}

func (c *CPU) aluOp(op uint8, operand uint8) {
	switch op {
	case 0:
		c.Reg.A = c.add8(c.Reg.A, operand)
	case 1:
		c.Reg.A = c.adc8(c.Reg.A, operand)
	case 2:
		c.Reg.A = c.sub8(c.Reg.A, operand)
	case 3:
		c.Reg.A = c.sbc8(c.Reg.A, operand)
	case 4:
		c.Reg.A = c.and8(c.Reg.A, operand)
	case 5:
		c.Reg.A = c.xor8(c.Reg.A, operand)
	case 6:
		c.Reg.A = c.or8(c.Reg.A, operand)
	case 7:
		c.cp8(c.Reg.A, operand)
	}
}

func (c *CPU) execJR(kind uint8) {
	d := int8(c.fetch8())
	if kind == 0 {
		c.jr(d)
		return
	}
	if c.cond(kind - 1) {
		c.jr(d)
	}
}

func (c *CPU) execRetCond(kind uint8) {
	c.bus.AdvanceMCycle()
	if c.cond(kind) {
		c.ret()
	}
}

func (c *CPU) execRotateA(y uint8) {
	switch y {
	case 0:
		c.rlca()
	case 1:
		c.rrca()
	case 2:
		c.rla()
	case 3:
		c.rra()
	}
}

// execLDIndirect handles the eight z==2 opcodes in the 0x00-0x3F block:
// LD (BC),A / LD A,(BC) / LD (DE),A / LD A,(DE) / LD (HL+),A / LD A,(HL+)
// / LD (HL-),A / LD A,(HL-).
func (c *CPU) execLDIndirect(y uint8) {
	switch y {
	case 0:
		c.bus.WriteByte(c.Reg.BC(), c.Reg.A)
	case 1:
		c.Reg.A = c.bus.ReadByte(c.Reg.BC())
	case 2:
		c.bus.WriteByte(c.Reg.DE(), c.Reg.A)
	case 3:
		c.Reg.A = c.bus.ReadByte(c.Reg.DE())
	case 4:
		hl := c.Reg.HL()
		c.bus.WriteByte(hl, c.Reg.A)
		c.Reg.SetHL(hl + 1)
	case 5:
		hl := c.Reg.HL()
		c.Reg.A = c.bus.ReadByte(hl)
		c.Reg.SetHL(hl + 1)
	case 6:
		hl := c.Reg.HL()
		c.bus.WriteByte(hl, c.Reg.A)
		c.Reg.SetHL(hl - 1)
	case 7:
		hl := c.Reg.HL()
		c.Reg.A = c.bus.ReadByte(hl)
		c.Reg.SetHL(hl - 1)
	}
}

// executeCB dispatches one of the 256 CB-prefixed opcodes: rotates/
// shifts 0x00-0x3F, BIT 0x40-0x7F, RES 0x80-0xBF, SET 0xC0-0xFF, each
// operating on one of the eight r8 operand slots.
func (c *CPU) executeCB(opcode uint8) {
	y := (opcode >> 3) & 0x7
	z := opcode & 0x7
	block := opcode >> 6

	switch block {
	case 0:
		c.setR8(z, c.cbShift(y, c.r8(z)))
	case 1:
		c.bit(y, c.r8(z))
	case 2:
		c.setR8(z, res(y, c.r8(z)))
	case 3:
		c.setR8(z, set(y, c.r8(z)))
	}
}

func (c *CPU) cbShift(op uint8, v uint8) uint8 {
	switch op {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.swap(v)
	default:
		return c.srl(v)
	}
}
