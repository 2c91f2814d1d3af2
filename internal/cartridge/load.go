package cartridge

import (
	"errors"
	"fmt"
)

// Cause identifies the category of a cartridge load failure.
type Cause uint8

const (
	ErrBadSize Cause = iota
	ErrBadChecksum
	ErrUnknownType
	ErrUnsupportedCombination
	ErrInvalidMetadata
)

func (c Cause) String() string {
	switch c {
	case ErrBadSize:
		return "invalid ROM size"
	case ErrBadChecksum:
		return "invalid header checksum"
	case ErrUnknownType:
		return "unknown cartridge type, ROM size, or RAM size"
	case ErrUnsupportedCombination:
		return "unsupported cartridge type / RAM size combination"
	case ErrInvalidMetadata:
		return "invalid RTC metadata"
	default:
		return "unknown cartridge load error"
	}
}

// LoadError reports why a ROM image could not be loaded. Callers
// distinguish categories by switching on Cause (after errors.As), or with
// errors.Is against a *LoadError carrying the wanted Cause.
type LoadError struct {
	Cause  Cause
	Detail string
}

func (e *LoadError) Error() string {
	if e.Detail == "" {
		return e.Cause.String()
	}
	return fmt.Sprintf("%s: %s", e.Cause, e.Detail)
}

func newLoadError(cause Cause, detail string) error {
	return &LoadError{Cause: cause, Detail: detail}
}

// Is reports whether target is a *LoadError with the same Cause, so
// errors.Is(err, &LoadError{Cause: c}) matches by category. A bare Cause
// value is not an error and cannot be passed to errors.Is.
func (e *LoadError) Is(target error) bool {
	var other *LoadError
	if errors.As(target, &other) {
		return e.Cause == other.Cause
	}
	return false
}

// Load parses rom and returns the Cartridge variant appropriate to
// its header. Unrecognized combinations and 32 KiB cartridge-RAM
// variants fail with ErrUnsupportedCombination.
func Load(rom []byte) (Cartridge, error) {
	if len(rom) < 0x8000 || len(rom)%0x4000 != 0 {
		return nil, newLoadError(ErrBadSize, fmt.Sprintf("got %d bytes", len(rom)))
	}

	if headerChecksum(rom) != rom[0x14D] {
		return nil, newLoadError(ErrBadChecksum, fmt.Sprintf("want 0x%02X", rom[0x14D]))
	}

	if rom[0x148] > 0x08 {
		return nil, newLoadError(ErrUnknownType, fmt.Sprintf("ROM size byte 0x%02X", rom[0x148]))
	}
	if rom[0x149] > 0x05 {
		return nil, newLoadError(ErrUnknownType, fmt.Sprintf("RAM size byte 0x%02X", rom[0x149]))
	}

	h := parseHeader(rom)

	switch h.Type {
	case TypeROMOnly, TypeROMRAM, TypeROMRAMBattery:
		switch h.RAMSize {
		case RAMNone, RAM2KiB, RAM8KiB:
			return newNoMBC(rom, h), nil
		default:
			return nil, unsupportedCombo(h)
		}

	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBattery:
		switch h.RAMSize {
		case RAMNone, RAM2KiB, RAM8KiB:
			return newMBC1(rom, h), nil
		default:
			return nil, unsupportedCombo(h)
		}

	case TypeMBC2, TypeMBC2Battery:
		return newMBC2(rom, h), nil

	case TypeMBC3, TypeMBC3RAM, TypeMBC3RAMBattery, TypeMBC3TimerBatt, TypeMBC3TimerRAMBat:
		switch h.RAMSize {
		case RAMNone, RAM2KiB, RAM8KiB:
			return newMBC3(rom, h), nil
		default:
			return nil, unsupportedCombo(h)
		}

	default:
		return nil, newLoadError(ErrUnknownType, fmt.Sprintf("type byte 0x%02X", uint8(h.Type)))
	}
}

func unsupportedCombo(h Header) error {
	return newLoadError(ErrUnsupportedCombination,
		fmt.Sprintf("type %s with RAM size 0x%02X", h.Type, uint8(h.RAMSize)))
}
