package cartridge

import (
	"crypto/md5"
	"encoding/hex"
)

// Cartridge is the uniform interface every cartridge variant
// implements: one level of dispatch, no deeper hierarchy.
type Cartridge interface {
	ReadROM(addr uint16) uint8
	WriteROM(addr uint16, v uint8)
	ReadRAM(addr uint16) uint8
	WriteRAM(addr uint16, v uint8)

	Title() string
	Filename() string

	// Savegame returns the cartridge's battery-backed RAM, or nil if the
	// cartridge has no battery-backed RAM.
	Savegame() []byte
	// LoadSavegame restores previously-saved RAM bytes.
	LoadSavegame(data []byte)

	// HasMetadata reports whether SerializeMetadata/DeserializeMetadata
	// are meaningful (true only for RTC-bearing MBC3 cartridges).
	HasMetadata() bool
	SerializeMetadata() ([]byte, error)
	DeserializeMetadata(data []byte) error
}

// bankedROM holds an owned ROM image plus a current-bank index: the
// bank offset is computed on demand instead of carrying a slice
// pointer, keeping the struct trivially movable.
type bankedROM struct {
	data []byte
	bank uint16
}

func newBankedROM(data []byte) bankedROM {
	return bankedROM{data: data, bank: 1}
}

func (r *bankedROM) banks() uint16 {
	return uint16(len(r.data) / 0x4000)
}

func (r *bankedROM) selectBank(n uint16) {
	if banks := r.banks(); banks > 0 {
		n %= banks
	}
	r.bank = n
}

func (r *bankedROM) read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return r.data[addr]
	case addr < 0x8000:
		off := int(r.bank)*0x4000 + int(addr-0x4000)
		if off >= len(r.data) {
			return 0xFF
		}
		return r.data[off]
	default:
		return 0xFF
	}
}

// title and filename are shared by every variant; embed titleMixin to
// get both without repeating the MD5 logic.
type titleMixin struct {
	title string
}

func (t titleMixin) Title() string { return t.title }

func (t titleMixin) Filename() string {
	sum := md5.Sum([]byte(t.title))
	return hex.EncodeToString(sum[:])
}

// noMetadata is embedded by variants without an RTC; it answers
// HasMetadata() false and fails the serialize/deserialize calls.
type noMetadata struct{}

func (noMetadata) HasMetadata() bool { return false }

func (noMetadata) SerializeMetadata() ([]byte, error) {
	return nil, newLoadError(ErrInvalidMetadata, "cartridge has no RTC")
}

func (noMetadata) DeserializeMetadata([]byte) error {
	return newLoadError(ErrInvalidMetadata, "cartridge has no RTC")
}

// cram is a flat, optionally battery-backed cartridge RAM block shared
// by the No-MBC, MBC1, and MBC3 variants (MBC2's half-byte RAM is
// distinct and lives in mbc2.go).
type cram struct {
	data    []byte
	battery bool
}

func newCRAM(size int, battery bool) cram {
	return cram{data: make([]byte, size), battery: battery}
}

func (c *cram) read(addr uint16) uint8 {
	if int(addr) >= len(c.data) {
		return 0xFF
	}
	return c.data[addr]
}

func (c *cram) write(addr uint16, v uint8) {
	if int(addr) < len(c.data) {
		c.data[addr] = v
	}
}

func (c *cram) savegame() []byte {
	if !c.battery || len(c.data) == 0 {
		return nil
	}
	return c.data
}

func (c *cram) loadSavegame(data []byte) {
	copy(c.data, data)
}
