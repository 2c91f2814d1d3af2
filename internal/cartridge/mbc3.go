package cartridge

import "time"

// mbc3 implements the MBC3 banking scheme with an optional real-time
// clock. RAM and RTC share the same enable gate and the
// same 0xA000-0xBFFF mapping window, switched by the last value written
// to 0x4000-0x5FFF: 0-3 maps RAM, 0x08-0x0C maps one of the five RTC
// registers.
type mbc3 struct {
	titleMixin
	rom bankedROM
	ram cram
	rtc *rtc // nil if this cartridge has no RTC

	enabled    bool
	ramBank    uint8
	mapRTC     bool
	lastLatch  uint8
}

func newMBC3(rom []byte, h Header) *mbc3 {
	m := &mbc3{
		titleMixin: titleMixin{title: h.Title},
		rom:        newBankedROM(rom),
		ram:        newCRAM(h.RAMSize.bytes(), h.Type.hasBattery()),
		lastLatch:  1,
	}
	if h.Type.hasRTC() {
		m.rtc = newRTC(time.Now())
	}
	return m
}

func (m *mbc3) ReadROM(addr uint16) uint8 {
	return m.rom.read(addr)
}

func (m *mbc3) WriteROM(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		m.enabled = v&0x0F == 0x0A
	case addr < 0x4000:
		bank := v & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.rom.selectBank(uint16(bank))
	case addr < 0x6000:
		if v <= 0x03 {
			m.ramBank = v
			m.mapRTC = false
		} else if m.rtc != nil && m.rtc.selectReg(v) {
			m.mapRTC = true
		}
	case addr < 0x8000:
		if m.rtc != nil && m.lastLatch == 0 && v == 1 {
			m.rtc.toggleLatch(time.Now())
		}
		m.lastLatch = v
	}
}

func (m *mbc3) ReadRAM(addr uint16) uint8 {
	if !m.enabled {
		return 0xFF
	}
	if m.mapRTC && m.rtc != nil {
		return m.rtc.readReg(time.Now())
	}
	return m.ram.read(uint16(m.ramBank)*0x2000 + addr)
}

func (m *mbc3) WriteRAM(addr uint16, v uint8) {
	if !m.enabled {
		return
	}
	if m.mapRTC && m.rtc != nil {
		m.rtc.writeReg(v, time.Now())
		return
	}
	m.ram.write(uint16(m.ramBank)*0x2000+addr, v)
}

func (m *mbc3) Savegame() []byte          { return m.ram.savegame() }
func (m *mbc3) LoadSavegame(data []byte) { m.ram.loadSavegame(data) }

func (m *mbc3) HasMetadata() bool { return m.rtc != nil }

func (m *mbc3) SerializeMetadata() ([]byte, error) {
	if m.rtc == nil {
		return nil, newLoadError(ErrInvalidMetadata, "cartridge has no RTC")
	}
	return m.rtc.exportMetadata(), nil
}

func (m *mbc3) DeserializeMetadata(data []byte) error {
	if m.rtc == nil {
		return newLoadError(ErrInvalidMetadata, "cartridge has no RTC")
	}
	return m.rtc.importMetadata(data)
}
