// Package ppu implements the DMG pixel-processing unit: the scanline
// state machine, VRAM/OAM access gating, and the per-scanline pixel
// composition pipeline.
package ppu

import (
	"github.com/pixelforge/dmgboy/internal/interrupts"
	"github.com/pixelforge/dmgboy/pkg/log"
)

// Mode is the PPU's internal scanline mode. Its numeric values below
// LCDOff match the CPU-visible mode bits of LCDS.
type Mode uint8

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMSearch
	ModePixelTransfer
	ModeLCDOff
)

// FrameStatus reports whether a frame is ready for the frontend to
// consume, and if so, of what kind.
type FrameStatus uint8

const (
	FrameNotReady FrameStatus = iota
	FrameVideo
	FrameLCDOff
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	mcyclesPerLine = 114
	linesPerFrame  = 154
	vblankStart    = 144
)

// PPU owns VRAM, OAM, the video IO registers, and the scanline state
// machine driving them. It is advanced one machine cycle at a time by
// the bus, in lockstep with the CPU, timer, and OAM-DMA engine.
type PPU struct {
	scanlineMCycle uint8
	spriteDelay    uint8
	mode           Mode
	ly             uint8 // internal scanline, 0..153
	cpuLY          uint8 // CPU-visible LY register (differs from ly on line 153)
	wy             uint8 // WY cached for the whole frame
	wyReg          uint8 // raw WY register, may change mid-frame

	lcdc lcdc
	lcds lcds
	scx  uint8
	scy  uint8
	lyc  uint8
	wx   uint8
	bgp  Palette
	obp0 Palette
	obp1 Palette

	tileData *tileData
	tileMaps *tileMaps
	oam      *oam
	quads    [40]pixelQuad

	frame       [ScreenWidth * ScreenHeight]Pixel
	frameReady  FrameStatus
	skipFrames  uint8

	irq *interrupts.Controller
	log log.Logger
}

// New returns a PPU with the LCD off, matching DMG power-up state
// before the boot ROM turns it on.
func New(irq *interrupts.Controller, l log.Logger) *PPU {
	return &PPU{
		mode:     ModeLCDOff,
		lcds:     newLCDS(),
		tileData: newTileData(),
		tileMaps: newTileMaps(),
		oam:      newOAM(),
		irq:      irq,
		log:      l,
	}
}

// LY returns the internal scanline counter, not the (sometimes
// different, see the line-153 quirk) CPU-visible LY register.
func (p *PPU) LY() uint8 { return p.ly }

// Mode returns the PPU's current internal mode.
func (p *PPU) Mode() Mode { return p.mode }

// Frame returns the finished frame buffer. Only meaningful immediately
// after QueryFrameStatus reports FrameVideo.
func (p *PPU) Frame() []Pixel { return p.frame[:] }

// QueryFrameStatus returns and clears the pending frame-ready flag.
func (p *PPU) QueryFrameStatus() FrameStatus {
	s := p.frameReady
	p.frameReady = FrameNotReady
	return s
}

// Advance ticks the PPU state machine by one machine cycle, following
// the fixed per-line schedule. It is a no-op while the LCD is off.
func (p *PPU) Advance() {
	if p.mode == ModeLCDOff {
		return
	}

	switch {
	case p.ly == 0:
		p.advanceLine0()
	case p.ly < vblankStart:
		p.advanceVisibleLine(p.ly)
	case p.ly == vblankStart:
		p.advanceLine144()
	case p.ly == linesPerFrame-1:
		p.advanceLine153()
	default:
		p.advanceVBlankLine(p.ly)
	}

	p.scanlineMCycle++
	if p.scanlineMCycle == mcyclesPerLine {
		p.scanlineMCycle = 0
		p.ly++
		if p.ly == linesPerFrame {
			p.ly = 0
		}
	}
}

func (p *PPU) advanceLine0() {
	switch p.scanlineMCycle {
	case 0:
		p.wy = p.wyReg
		p.setLY(0)
		p.mode = ModeHBlank
		p.lcds = p.lcds.withMode(ModeHBlank)
	case 1:
		p.setModeWithInterrupt(ModeOAMSearch)
	case 21:
		p.beginPixelTransfer()
	default:
		p.popQuadIfInRange(p.scanlineMCycle)
		p.maybeEndPixelTransfer(p.scanlineMCycle)
	}
}

func (p *PPU) advanceVisibleLine(line uint8) {
	switch p.scanlineMCycle {
	case 0:
		p.setLY(line)
	case 1:
		p.setModeWithInterrupt(ModeOAMSearch)
		p.updateLYCEquality(line)
	case 21:
		p.beginPixelTransfer()
	default:
		p.popQuadIfInRange(p.scanlineMCycle)
		p.maybeEndPixelTransfer(p.scanlineMCycle)
	}
}

func (p *PPU) popQuadIfInRange(n uint8) {
	if n > 21 && n <= 61 {
		p.popPixelQuad(n - 22)
	}
}

func (p *PPU) maybeEndPixelTransfer(n uint8) {
	if n == 64+p.spriteDelay {
		p.setModeWithInterrupt(ModeHBlank)
	}
}

func (p *PPU) beginPixelTransfer() {
	p.setModeWithInterrupt(ModePixelTransfer)
	p.oam.rebuild()
	p.tileData.rebuild()
	p.spriteDelay = 2 * p.pushScanline()
}

func (p *PPU) advanceLine144() {
	switch p.scanlineMCycle {
	case 0:
		p.setLY(144)
		p.lcds = p.lcds.withLYCEqualsLY(false)
	case 1:
		if p.skipFrames == 0 {
			p.frameReady = FrameVideo
		} else {
			p.skipFrames--
		}
		p.irq.Schedule(interrupts.VBlank)
		p.updateLYCEquality(144)
		p.setModeWithInterrupt(ModeVBlank)
	}
}

func (p *PPU) advanceVBlankLine(line uint8) {
	switch p.scanlineMCycle {
	case 0:
		p.setLY(line)
	case 1:
		p.updateLYCEquality(line)
	}
}

// advanceLine153 implements the DMG quirk where LY reads 153 for one
// cycle then flips back to 0 for the remainder of the line.
func (p *PPU) advanceLine153() {
	switch p.scanlineMCycle {
	case 0:
		p.setLY(153)
		p.lcds = p.lcds.withLYCEqualsLY(false)
	case 1:
		p.setLYRaw(0)
		p.updateLYCEquality(153)
	case 2:
		p.lcds = p.lcds.withLYCEqualsLY(false)
	case 3:
		p.updateLYCEquality(0)
	}
}

// cpuLY is what CPU reads via ReadLY; tracked separately from p.ly to
// implement the line-153 handoff.
func (p *PPU) setLY(v uint8) {
	p.cpuLY = v
	p.lcds = p.lcds.withLYCEqualsLY(false)
}

func (p *PPU) setLYRaw(v uint8) {
	p.cpuLY = v
}

func (p *PPU) updateLYCEquality(against uint8) {
	equal := against == p.lyc
	if equal && p.lcds.lycInterruptEnabled() && !p.lcds.anyConditionMet() {
		p.irq.Schedule(interrupts.LCDStat)
	}
	p.lcds = p.lcds.withLYCEqualsLY(equal)
}

func (p *PPU) setModeWithInterrupt(m Mode) {
	p.mode = m
	if !p.lcds.anyConditionMet() {
		switch m {
		case ModeOAMSearch:
			if p.lcds.oamInterruptEnabled() {
				p.irq.Schedule(interrupts.LCDStat)
			}
		case ModeVBlank:
			if p.lcds.vblankInterruptEnabled() {
				p.irq.Schedule(interrupts.LCDStat)
			}
		case ModeHBlank:
			if p.lcds.hblankInterruptEnabled() {
				p.irq.Schedule(interrupts.LCDStat)
			}
		}
	}
	p.lcds = p.lcds.withMode(m)
}
