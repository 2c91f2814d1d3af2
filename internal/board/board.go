// Package board wires the CPU, PPU, cartridge, and the rest of the
// machine's IO-mapped components onto one shared address space. It is
// the sole concrete Bus implementation: components are held as concrete
// pointers/interfaces and addressed through a single switch over
// internal/bits.Region.
package board

import (
	"github.com/pixelforge/dmgboy/internal/bits"
	"github.com/pixelforge/dmgboy/internal/boot"
	"github.com/pixelforge/dmgboy/internal/cartridge"
	"github.com/pixelforge/dmgboy/internal/interrupts"
	"github.com/pixelforge/dmgboy/internal/joypad"
	"github.com/pixelforge/dmgboy/internal/oamdma"
	"github.com/pixelforge/dmgboy/internal/ppu"
	"github.com/pixelforge/dmgboy/internal/serial"
	"github.com/pixelforge/dmgboy/internal/timer"
	"github.com/pixelforge/dmgboy/pkg/log"
)

// Board is the shared bus: every CPU memory access passes through it,
// and it is what ticks the timer, PPU, and OAM-DMA engine one m-cycle
// for every access, before the access itself resolves.
type Board struct {
	cart cartridge.Cartridge
	wram [0x2000]byte
	hram [0x7F]byte

	ppu   *ppu.PPU
	irq   *interrupts.Controller
	timer *timer.Controller
	pad   *joypad.Controller
	ser   *serial.Controller
	dma   *oamdma.Engine

	bootROM  *boot.ROM
	bootDone bool

	log log.Logger
}

// New returns a Board with every component wired together, the boot ROM
// mapped in if provided (nil disables the overlay entirely, as if
// 0xFF50 had already been written).
func New(cart cartridge.Cartridge, bootROM *boot.ROM, l log.Logger) *Board {
	b := &Board{
		cart:     cart,
		bootROM:  bootROM,
		bootDone: bootROM == nil,
		log:      l,
	}
	b.irq = interrupts.New()
	b.timer = timer.New(b.irq)
	b.pad = joypad.New(b.irq)
	b.ser = serial.New(l)
	b.ppu = ppu.New(b.irq, l)
	b.dma = oamdma.New(dmaSource{b}, b.ppu)
	return b
}

// dmaSource adapts Board to oamdma.SourceReader without going through
// ReadByte, since the DMA engine's own Advance is what the board calls
// from AdvanceMCycle; routing through ReadByte would recursively tick
// the clock a second time for every byte it prefetches.
type dmaSource struct{ b *Board }

func (d dmaSource) ReadByte(addr uint16) uint8 { return d.b.peek(addr) }

// Interrupts returns the shared interrupt controller, for the CPU to
// hold onto directly.
func (b *Board) Interrupts() *interrupts.Controller { return b.irq }

// PPU returns the PPU, for frontends that want frame/status access
// without routing through register reads.
func (b *Board) PPU() *ppu.PPU { return b.ppu }

// Joypad returns the joypad controller, for frontends to post button
// state into.
func (b *Board) Joypad() *joypad.Controller { return b.pad }

// Cartridge returns the loaded cartridge, for savegame persistence.
func (b *Board) Cartridge() cartridge.Cartridge { return b.cart }

// AdvanceMCycle ticks every component that progresses independently of
// the CPU by one machine cycle: the timer, the PPU, and the OAM-DMA
// engine, in that order.
func (b *Board) AdvanceMCycle() {
	b.timer.Advance()
	b.ppu.Advance()
	b.dma.Advance()
}

// ReadByte advances the clock by one m-cycle, then returns the byte at
// addr. This is the CPU-facing read: it is subject to every access
// gate (VRAM/OAM locks, OAM-DMA lockout, boot ROM overlay).
func (b *Board) ReadByte(addr uint16) uint8 {
	b.AdvanceMCycle()
	return b.peek(addr)
}

// WriteByte advances the clock by one m-cycle, then writes v to addr,
// subject to the same gates as ReadByte.
func (b *Board) WriteByte(addr uint16, v uint8) {
	b.AdvanceMCycle()
	b.poke(addr, v)
}

// peek resolves a read without ticking the clock, for things that must
// not recursively advance the machine: OAM-DMA's source fetches (via
// oamdma.SourceReader). ReadByte calls it after ticking the clock.
func (b *Board) peek(addr uint16) uint8 {
	if !b.bootDone && addr < boot.Size {
		return b.bootROM.Read(addr)
	}

	region, off := bits.Decode(addr)
	switch region {
	case bits.RegionROM0, bits.RegionROMN:
		return b.cart.ReadROM(addr)
	case bits.RegionVRAMTileData:
		return b.ppu.ReadTileData(off)
	case bits.RegionVRAMTileMaps:
		return b.ppu.ReadTileMap(off)
	case bits.RegionCartRAM:
		return b.cart.ReadRAM(off)
	case bits.RegionWRAM:
		return b.wram[off]
	case bits.RegionEchoRAM:
		return b.wram[off]
	case bits.RegionOAM:
		if b.dma.IsActive() {
			return 0xFF
		}
		return b.ppu.ReadOAMCPU(off)
	case bits.RegionUnusable:
		// Real DMG hardware's behavior here is model-dependent; reads
		// return 0 unconditionally rather than varying by PPU mode.
		return 0x00
	case bits.RegionIO:
		return b.readIO(addr)
	case bits.RegionHRAM:
		return b.hram[off]
	default: // RegionIE
		return b.irq.ReadIE()
	}
}

func (b *Board) poke(addr uint16, v uint8) {
	region, off := bits.Decode(addr)
	switch region {
	case bits.RegionROM0, bits.RegionROMN:
		b.cart.WriteROM(addr, v)
	case bits.RegionVRAMTileData:
		b.ppu.WriteTileData(off, v)
	case bits.RegionVRAMTileMaps:
		b.ppu.WriteTileMap(off, v)
	case bits.RegionCartRAM:
		b.cart.WriteRAM(off, v)
	case bits.RegionWRAM:
		b.wram[off] = v
	case bits.RegionEchoRAM:
		b.wram[off] = v
	case bits.RegionOAM:
		if b.dma.IsActive() {
			return
		}
		b.ppu.WriteOAMCPU(off, v)
	case bits.RegionUnusable:
		// dropped
	case bits.RegionIO:
		b.writeIO(addr, v)
	case bits.RegionHRAM:
		b.hram[off] = v
	default: // RegionIE
		b.irq.WriteIE(v)
	}
}

func (b *Board) readIO(addr uint16) uint8 {
	switch addr {
	case bits.P1:
		return b.pad.ReadP1()
	case bits.SB:
		return b.ser.ReadSB()
	case bits.SC:
		return b.ser.ReadSC()
	case bits.DIV:
		return b.timer.ReadDIV()
	case bits.TIMA:
		return b.timer.ReadTIMA()
	case bits.TMA:
		return b.timer.ReadTMA()
	case bits.TAC:
		return b.timer.ReadTAC()
	case bits.IF:
		return b.irq.ReadIF()
	case bits.LCDC:
		return b.ppu.ReadLCDC()
	case bits.LCDS:
		return b.ppu.ReadLCDS()
	case bits.SCY:
		return b.ppu.ReadSCY()
	case bits.SCX:
		return b.ppu.ReadSCX()
	case bits.LY:
		return b.ppu.ReadLY()
	case bits.LYC:
		return b.ppu.ReadLYC()
	case bits.DMA:
		return b.dma.ReadDMA()
	case bits.BGP:
		return b.ppu.ReadBGP()
	case bits.OBP0:
		return b.ppu.ReadOBP0()
	case bits.OBP1:
		return b.ppu.ReadOBP1()
	case bits.WY:
		return b.ppu.ReadWY()
	case bits.WX:
		return b.ppu.ReadWX()
	case bits.BDIS:
		if b.bootDone {
			return 0x01
		}
		return 0x00
	default:
		b.log.Debugf("board: read of unimplemented IO register 0x%04X", addr)
		return 0xFF
	}
}

func (b *Board) writeIO(addr uint16, v uint8) {
	switch addr {
	case bits.P1:
		b.pad.WriteP1(v)
	case bits.SB:
		b.ser.WriteSB(v)
	case bits.SC:
		b.ser.WriteSC(v)
	case bits.DIV:
		b.timer.WriteDIV(v)
	case bits.TIMA:
		b.timer.WriteTIMA(v)
	case bits.TMA:
		b.timer.WriteTMA(v)
	case bits.TAC:
		b.timer.WriteTAC(v)
	case bits.IF:
		b.irq.WriteIF(v)
	case bits.LCDC:
		b.ppu.WriteLCDC(v)
	case bits.LCDS:
		b.ppu.WriteLCDS(v)
	case bits.SCY:
		b.ppu.WriteSCY(v)
	case bits.SCX:
		b.ppu.WriteSCX(v)
	case bits.LY:
		b.ppu.WriteLY(v)
	case bits.LYC:
		b.ppu.WriteLYC(v)
	case bits.DMA:
		b.dma.WriteDMA(v)
	case bits.BGP:
		b.ppu.WriteBGP(v)
	case bits.OBP0:
		b.ppu.WriteOBP0(v)
	case bits.OBP1:
		b.ppu.WriteOBP1(v)
	case bits.WY:
		b.ppu.WriteWY(v)
	case bits.WX:
		b.ppu.WriteWX(v)
	case bits.BDIS:
		if v&0x01 != 0 {
			b.bootDone = true
		}
	default:
		b.log.Debugf("board: write to unimplemented IO register 0x%04X = 0x%02X", addr, v)
	}
}
