package cpu

// Shared opcode field decoding. Most of the 8-bit instruction set is
// regular in its low 3 bits (destination) and middle 3 bits (source or
// sub-opcode); rather than a 256-entry function table, opcodes are
// dispatched with a switch over those fields directly.

// r8 reads one of the eight 8-bit operand slots used throughout the
// base and CB-prefixed opcode maps: 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
func (c *CPU) r8(i uint8) uint8 {
	switch i {
	case 0:
		return c.Reg.B
	case 1:
		return c.Reg.C
	case 2:
		return c.Reg.D
	case 3:
		return c.Reg.E
	case 4:
		return c.Reg.H
	case 5:
		return c.Reg.L
	case 6:
		return c.bus.ReadByte(c.Reg.HL())
	default:
		return c.Reg.A
	}
}

func (c *CPU) setR8(i uint8, v uint8) {
	switch i {
	case 0:
		c.Reg.B = v
	case 1:
		c.Reg.C = v
	case 2:
		c.Reg.D = v
	case 3:
		c.Reg.E = v
	case 4:
		c.Reg.H = v
	case 5:
		c.Reg.L = v
	case 6:
		c.bus.WriteByte(c.Reg.HL(), v)
	default:
		c.Reg.A = v
	}
}

// r16 reads one of the four 16-bit register pairs used by LD rr,d16,
// INC rr, DEC rr and ADD HL,rr: 0=BC 1=DE 2=HL 3=SP.
func (c *CPU) r16(i uint8) uint16 {
	switch i {
	case 0:
		return c.Reg.BC()
	case 1:
		return c.Reg.DE()
	case 2:
		return c.Reg.HL()
	default:
		return c.Reg.SP
	}
}

func (c *CPU) setR16(i uint8, v uint16) {
	switch i {
	case 0:
		c.Reg.SetBC(v)
	case 1:
		c.Reg.SetDE(v)
	case 2:
		c.Reg.SetHL(v)
	default:
		c.Reg.SP = v
	}
}

// r16stk is the PUSH/POP register pairing, which substitutes AF for SP:
// 0=BC 1=DE 2=HL 3=AF.
func (c *CPU) r16stk(i uint8) uint16 {
	if i == 3 {
		return c.Reg.AF()
	}
	return c.r16(i)
}

func (c *CPU) setR16stk(i uint8, v uint16) {
	if i == 3 {
		c.Reg.SetAF(v)
		return
	}
	c.setR16(i, v)
}

// cond evaluates one of the four branch conditions: 0=NZ 1=Z 2=NC 3=C.
func (c *CPU) cond(i uint8) bool {
	switch i {
	case 0:
		return !c.Reg.Flag(FlagZ)
	case 1:
		return c.Reg.Flag(FlagZ)
	case 2:
		return !c.Reg.Flag(FlagC)
	default:
		return c.Reg.Flag(FlagC)
	}
}
