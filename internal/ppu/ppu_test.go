package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/dmgboy/internal/interrupts"
	"github.com/pixelforge/dmgboy/pkg/log"
)

func newTestPPU() *PPU {
	return New(interrupts.New(), log.NewNullLogger())
}

func powerOn(p *PPU) {
	p.WriteLCDC(0x91)
}

// One frame is exactly 17556 m-cycles when the LCD is on. The first
// frame after power-on is swallowed by the boot-smear skip, so two
// frames of cycles publish exactly one video frame, 17556 cycles after
// the first was skipped.
func TestFrameTiming(t *testing.T) {
	p := newTestPPU()
	powerOn(p)

	var frames int
	var publishedAt int
	for i := 0; i < 2*17556; i++ {
		p.Advance()
		if p.QueryFrameStatus() == FrameVideo {
			frames++
			publishedAt = i
		}
	}
	assert.Equal(t, 1, frames)
	// line 144, m-cycle 1 of the second frame.
	assert.Equal(t, 17556+144*mcyclesPerLine+1, publishedAt)
}

func TestVRAMLockedDuringPixelTransfer(t *testing.T) {
	p := newTestPPU()
	powerOn(p)

	for i := 0; i < 22; i++ {
		p.Advance()
	}
	require.Equal(t, ModePixelTransfer, p.Mode())
	assert.Equal(t, uint8(0xFF), p.ReadTileData(0))
}

// With the LY-coincidence interrupt enabled and LYC=16, the STAT IRQ
// rises exactly once as the PPU reaches line 16.
func TestLYCCoincidenceSchedulesSTAT(t *testing.T) {
	irq := interrupts.New()
	p := New(irq, log.NewNullLogger())
	powerOn(p)
	p.WriteLCDS(0x40)
	p.WriteLYC(16)

	fires := 0
	for line := uint8(0); line < 20; line++ {
		for i := 0; i < mcyclesPerLine; i++ {
			before := irq.ReadIF() & 0x02
			p.Advance()
			after := irq.ReadIF() & 0x02
			if before == 0 && after != 0 {
				fires++
				irq.Clear(interrupts.LCDStat)
			}
		}
	}
	assert.Equal(t, 1, fires)
}

func TestWriteLYIsNoOp(t *testing.T) {
	p := newTestPPU()
	powerOn(p)
	before := p.ReadLY()
	p.WriteLY(0)
	assert.Equal(t, before, p.ReadLY())
}

func TestPaletteApply(t *testing.T) {
	bgp := Palette(0b11100100) // identity mapping 0->0,1->1,2->2,3->3
	assert.Equal(t, uint8(0), bgp.Apply(0))
	assert.Equal(t, uint8(1), bgp.Apply(1))
	assert.Equal(t, uint8(2), bgp.Apply(2))
	assert.Equal(t, uint8(3), bgp.Apply(3))
}

func TestLCDSReadbackMasksBits(t *testing.T) {
	p := newTestPPU()
	powerOn(p)
	p.WriteLCDS(0xFF)
	v := p.ReadLCDS()
	assert.Equal(t, uint8(0x80), v&0x80)
}

func runLine(p *PPU) {
	for i := 0; i < mcyclesPerLine; i++ {
		p.Advance()
	}
}

func TestBGDisabledRendersColorZeroThroughBGP(t *testing.T) {
	p := newTestPPU()
	p.WriteLCDC(0x80) // LCD on, BG off
	p.WriteBGP(0x01)  // color 0 -> shade 1
	runLine(p)
	assert.Equal(t, dmgPalette[1], p.frame[0])
}

func TestSpriteOverBackgroundComposition(t *testing.T) {
	p := newTestPPU()
	p.WriteLCDC(0x83) // LCD on, sprites on, BG on, signed BG tile data
	p.WriteBGP(0xE4)
	p.WriteOBP0(0xE4)

	// tile 0: solid color 3 (sprites address tile data unsigned from 0x8000)
	for i := 0; i < tileBytes; i++ {
		p.tileData.write(uint16(i), 0xFF)
	}

	// sprite 0 at the top-left corner
	p.oam.write(0, 16) // Y
	p.oam.write(1, 8)  // X
	p.oam.write(2, 0)  // tile
	p.oam.write(3, 0)  // flags

	runLine(p)
	assert.Equal(t, dmgPalette[3], p.frame[0], "sprite pixel")
	assert.Equal(t, dmgPalette[0], p.frame[8], "background pixel")
}

func TestTallSpritePartiallyAboveScreenIsVisible(t *testing.T) {
	p := newTestPPU()
	p.WriteLCDC(0x87) // LCD on, 8x16 sprites, sprites on, BG on
	p.WriteOBP0(0xE4)

	// tiles 0 and 1 solid color 3
	for i := 0; i < 2*tileBytes; i++ {
		p.tileData.write(uint16(i), 0xFF)
	}

	p.oam.write(0, 8) // Y=8: upper half above the screen, lower half on line 0-7
	p.oam.write(1, 8)
	p.oam.write(2, 0)
	p.oam.write(3, 0)

	runLine(p)
	assert.Equal(t, dmgPalette[3], p.frame[0])
}

func TestWindowOverlaysBackground(t *testing.T) {
	p := newTestPPU()
	p.WriteLCDC(0xF1) // LCD on, window on (high map), unsigned tile data, BG on
	p.WriteBGP(0xE4)
	p.WriteWY(0)
	p.WriteWX(7) // leftmost column

	// window map entry (0,0) -> tile 1, solid color 3
	p.tileMaps.write(0x400, 1)
	for i := tileBytes; i < 2*tileBytes; i++ {
		p.tileData.write(uint16(i), 0xFF)
	}

	runLine(p)
	assert.Equal(t, dmgPalette[3], p.frame[0], "window pixel")
	assert.Equal(t, dmgPalette[0], p.frame[8], "window color 0 past the first tile")
}

func TestLCDOffPublishesLCDOffFrameAndStops(t *testing.T) {
	p := newTestPPU()
	powerOn(p)
	for i := 0; i < 300; i++ {
		p.Advance()
	}
	p.WriteLCDC(0x11) // LCD off
	assert.Equal(t, FrameLCDOff, p.QueryFrameStatus())
	assert.Equal(t, uint8(0), p.ReadLY())

	p.Advance()
	assert.Equal(t, ModeLCDOff, p.Mode())
	assert.Equal(t, uint8(0), p.ReadLY())
}

func TestLine153LYQuirk(t *testing.T) {
	p := newTestPPU()
	powerOn(p)
	for p.ly != 153 {
		p.Advance()
	}
	p.Advance() // m-cycle 0 of line 153: LY reads 153
	assert.Equal(t, uint8(153), p.ReadLY())
	p.Advance() // m-cycle 1: LY flips to 0 for the rest of the line
	assert.Equal(t, uint8(0), p.ReadLY())
}
