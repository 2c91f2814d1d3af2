package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildMBC1ROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	h := Header{Title: "TEST", Type: TypeMBC1, ROMBanks: banks, RAMSize: RAMNone}
	// stamp header fields directly so newMBC1 doesn't need Load().
	copy(rom[0x134:], h.Title)
	rom[0x147] = uint8(TypeMBC1)
	return rom
}

func TestMBC1BankLowZeroCoercion(t *testing.T) {
	rom := buildMBC1ROM(4)
	rom[0x4000] = 0x22 // bank 1
	m := newMBC1(rom, Header{Title: "T", Type: TypeMBC1, RAMSize: RAMNone})

	m.WriteROM(0x2000, 0x00)
	assert.Equal(t, uint8(0x22), m.ReadROM(0x4000))
}

func TestMBC1BankHighCombination(t *testing.T) {
	banks := 64 // 1 MiB, enough for bank 0x21
	rom := buildMBC1ROM(banks)
	rom[0x21*0x4000] = 0x33
	m := newMBC1(rom, Header{Title: "T", Type: TypeMBC1, RAMSize: RAMNone})

	// bankLow register left at 0 (masks to 0 -> coerced to 1), bankHigh
	// set to 1 (contributes bit 5): combined = 1 | (1<<5) = 0x21.
	m.WriteROM(0x2000, 0x00)
	m.WriteROM(0x4000, 0x01)
	assert.Equal(t, uint8(0x33), m.ReadROM(0x4000))
}

func TestMBC1RAMGatedByEnable(t *testing.T) {
	rom := buildMBC1ROM(4)
	m := newMBC1(rom, Header{Title: "T", Type: TypeMBC1, RAMSize: RAM8KiB})

	assert.Equal(t, uint8(0xFF), m.ReadRAM(0x0000))
	m.WriteROM(0x0000, 0x0A)
	m.WriteRAM(0x0000, 0x55)
	assert.Equal(t, uint8(0x55), m.ReadRAM(0x0000))
}
