// Package cartridge implements the cartridge header parser, the ROM
// loader, and the MBC family: one uniform Cartridge interface over
// every variant, at most one level of dispatch.
package cartridge

import "fmt"

// Type is the cartridge-type byte at header offset 0x147.
type Type uint8

const (
	TypeROMOnly         Type = 0x00
	TypeMBC1            Type = 0x01
	TypeMBC1RAM         Type = 0x02
	TypeMBC1RAMBattery  Type = 0x03
	TypeMBC2            Type = 0x05
	TypeMBC2Battery     Type = 0x06
	TypeROMRAM          Type = 0x08
	TypeROMRAMBattery   Type = 0x09
	TypeMBC3TimerBatt   Type = 0x0F
	TypeMBC3TimerRAMBat Type = 0x10
	TypeMBC3            Type = 0x11
	TypeMBC3RAM         Type = 0x12
	TypeMBC3RAMBattery  Type = 0x13
)

func (t Type) hasBattery() bool {
	switch t {
	case TypeMBC1RAMBattery, TypeMBC2Battery, TypeROMRAMBattery,
		TypeMBC3TimerBatt, TypeMBC3TimerRAMBat, TypeMBC3RAMBattery:
		return true
	default:
		return false
	}
}

func (t Type) hasRTC() bool {
	return t == TypeMBC3TimerBatt || t == TypeMBC3TimerRAMBat
}

// RAMSize is the RAM-size byte at header offset 0x149.
type RAMSize uint8

const (
	RAMNone  RAMSize = 0x00
	RAM2KiB  RAMSize = 0x01
	RAM8KiB  RAMSize = 0x02
	RAM32KiB RAMSize = 0x03 // unsupported
)

func (r RAMSize) bytes() int {
	switch r {
	case RAMNone:
		return 0
	case RAM2KiB:
		return 2 * 1024
	case RAM8KiB:
		return 8 * 1024
	default:
		return 0
	}
}

// Header holds the parsed fields of the 0x0100-0x014F cartridge header.
type Header struct {
	Title    string
	Type     Type
	ROMBanks int // number of 16 KiB ROM banks
	RAMSize  RAMSize
}

// parseHeader reads the header out of a full ROM image. rom must be at
// least 0x150 bytes (guaranteed by the size check in Load).
func parseHeader(rom []byte) Header {
	h := Header{}

	end := 0x134
	for end < 0x144 && rom[end] != 0 {
		end++
	}
	h.Title = string(rom[0x134:end])

	h.Type = Type(rom[0x147])
	h.ROMBanks = 2 << rom[0x148] // 32 KiB * 2^n, in 16 KiB banks
	h.RAMSize = RAMSize(rom[0x149])

	return h
}

// headerChecksum computes the checksum over bytes 0x134-0x14C: the
// sum of -(b+1), mod 256.
func headerChecksum(rom []byte) uint8 {
	var sum uint8
	for i := 0x134; i <= 0x14C; i++ {
		sum = sum - rom[i] - 1
	}
	return sum
}

func (t Type) String() string {
	return fmt.Sprintf("0x%02X", uint8(t))
}
