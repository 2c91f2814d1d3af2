package cpu

// Jump, call, return and restart helpers. Each bakes in the extra
// "internal" m-cycle real hardware spends computing the new PC, on top
// of whatever opcode/operand/stack bus accesses already happened.

func (c *CPU) jr(offset int8) {
	c.Reg.PC = uint16(int32(c.Reg.PC) + int32(offset))
	c.bus.AdvanceMCycle()
}

func (c *CPU) jp(addr uint16) {
	c.Reg.PC = addr
	c.bus.AdvanceMCycle()
}

func (c *CPU) call(addr uint16) {
	c.push16(c.Reg.PC)
	c.Reg.PC = addr
}

func (c *CPU) ret() {
	c.Reg.PC = c.pop16()
	c.bus.AdvanceMCycle()
}

func (c *CPU) rst(addr uint16) {
	c.push16(c.Reg.PC)
	c.Reg.PC = addr
}
