package cartridge

// mbc2 implements the MBC2 banking scheme: ROM bank select and RAM
// enable share the 0x0000-0x3FFF write region, split by bit 8 of the
// address, and its 512 half-bytes of built-in RAM always read back
// with the unused nibble forced to 1s.
type mbc2 struct {
	titleMixin
	noMetadata
	rom bankedROM
	ram [512]uint8

	ramEnabled bool
	battery    bool
}

func newMBC2(rom []byte, h Header) *mbc2 {
	return &mbc2{
		titleMixin: titleMixin{title: h.Title},
		rom:        newBankedROM(rom),
		battery:    h.Type.hasBattery(),
	}
}

func (m *mbc2) ReadROM(addr uint16) uint8 {
	return m.rom.read(addr)
}

func (m *mbc2) WriteROM(addr uint16, v uint8) {
	if addr >= 0x4000 {
		return
	}
	if addr&0x0100 == 0 {
		m.ramEnabled = v&0x0F == 0x0A
	} else {
		bank := v & 0x0F
		if bank == 0 {
			bank = 1
		}
		m.rom.selectBank(uint16(bank))
	}
}

func (m *mbc2) ReadRAM(addr uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.ram[addr&0x01FF] | 0xF0
}

func (m *mbc2) WriteRAM(addr uint16, v uint8) {
	if !m.ramEnabled {
		return
	}
	m.ram[addr&0x01FF] = v & 0x0F
}

func (m *mbc2) Savegame() []byte {
	if !m.battery {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram[:])
	return out
}

func (m *mbc2) LoadSavegame(data []byte) {
	copy(m.ram[:], data)
}
