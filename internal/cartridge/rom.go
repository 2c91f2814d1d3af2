package cartridge

// noMBC is the direct-mapped variant: no banking registers, writes to
// ROM are nops.
type noMBC struct {
	titleMixin
	noMetadata
	rom bankedROM
	ram cram
}

func newNoMBC(rom []byte, h Header) *noMBC {
	return &noMBC{
		titleMixin: titleMixin{title: h.Title},
		rom:        newBankedROM(rom),
		ram:        newCRAM(h.RAMSize.bytes(), h.Type.hasBattery()),
	}
}

func (c *noMBC) ReadROM(addr uint16) uint8    { return c.rom.read(addr) }
func (c *noMBC) WriteROM(addr uint16, v uint8) {}
func (c *noMBC) ReadRAM(addr uint16) uint8    { return c.ram.read(addr) }
func (c *noMBC) WriteRAM(addr uint16, v uint8) { c.ram.write(addr, v) }

func (c *noMBC) Savegame() []byte          { return c.ram.savegame() }
func (c *noMBC) LoadSavegame(data []byte) { c.ram.loadSavegame(data) }
