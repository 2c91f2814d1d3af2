package ppu

import "github.com/pixelforge/dmgboy/internal/bits"

// sprite is one 4-byte OAM entry, decoded for a single scanline.
type sprite struct {
	Y, X, ID uint8
	Flags    uint8
}

func (f sprite) occluded() bool     { return bits.Test(f.Flags, 7) }
func (f sprite) yFlipped() bool     { return bits.Test(f.Flags, 6) }
func (f sprite) xFlipped() bool     { return bits.Test(f.Flags, 5) }
func (f sprite) altPalette() bool   { return bits.Test(f.Flags, 4) }
