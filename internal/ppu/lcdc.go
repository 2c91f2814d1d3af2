package ppu

import "github.com/pixelforge/dmgboy/internal/bits"

// lcdc wraps the LCDC register (0xFF40), whose eight bits gate every
// other PPU decision: LCD power, tile map/data selection, sprite size,
// and the BG/window/sprite enables.
type lcdc uint8

func (l lcdc) lcdEnabled() bool       { return bits.Test(uint8(l), 7) }
func (l lcdc) windowTileMapHi() bool  { return bits.Test(uint8(l), 6) }
func (l lcdc) windowEnabled() bool    { return bits.Test(uint8(l), 5) }
func (l lcdc) tileDataAt8000() bool   { return bits.Test(uint8(l), 4) }
func (l lcdc) bgTileMapHi() bool      { return bits.Test(uint8(l), 3) }
func (l lcdc) spriteHeight() uint8 {
	if bits.Test(uint8(l), 2) {
		return 16
	}
	return 8
}
func (l lcdc) spritesEnabled() bool { return bits.Test(uint8(l), 1) }
func (l lcdc) bgEnabled() bool      { return bits.Test(uint8(l), 0) }

func (l lcdc) bgMapOffset() uint16 {
	if l.bgTileMapHi() {
		return 0x400
	}
	return 0
}

func (l lcdc) windowMapOffset() uint16 {
	if l.windowTileMapHi() {
		return 0x400
	}
	return 0
}
