package ppu

// ReadLY returns the CPU-visible scanline register.
func (p *PPU) ReadLY() uint8 { return p.cpuLY }

// ReadLCDC returns the LCDC register.
func (p *PPU) ReadLCDC() uint8 { return uint8(p.lcdc) }

// WriteLCDC writes LCDC and reacts to bit 7 (LCD power) edges.
func (p *PPU) WriteLCDC(v uint8) {
	p.lcdc = lcdc(v)
	p.tileMaps.notifyLCDC(p.lcdc)
	p.oam.notifyLCDC(p.lcdc)

	switch {
	case p.lcdc.lcdEnabled() && p.mode == ModeLCDOff:
		p.skipFrames = 1
		p.setModeWithInterrupt(ModeHBlank)
	case !p.lcdc.lcdEnabled() && p.mode != ModeLCDOff:
		if p.ly < vblankStart {
			p.log.Warnf("ppu: LCD disabled mid-frame at LY=%d, a real hardware hazard", p.ly)
		}
		p.frameReady = FrameLCDOff
		p.cpuLY = 0
		p.ly = 0
		p.scanlineMCycle = 0
		p.setModeWithInterrupt(ModeLCDOff)
	}
}

// ReadLCDS returns LCDS as the CPU observes it.
func (p *PPU) ReadLCDS() uint8 { return p.lcds.read() }

// WriteLCDS writes the writable bits of LCDS.
func (p *PPU) WriteLCDS(v uint8) { p.lcds = p.lcds.write(v) }

func (p *PPU) ReadSCY() uint8  { return p.scy }
func (p *PPU) WriteSCY(v uint8) { p.scy = v }

func (p *PPU) ReadSCX() uint8  { return p.scx }
func (p *PPU) WriteSCX(v uint8) { p.scx = v }

// WriteLY is a no-op: writes to 0xFF44 never change LY.
func (p *PPU) WriteLY(uint8) {}

func (p *PPU) ReadLYC() uint8 { return p.lyc }

// WriteLYC writes LYC and immediately re-checks the coincidence flag
// against the current line.
func (p *PPU) WriteLYC(v uint8) {
	p.lyc = v
	p.updateLYCEquality(p.cpuLY)
}

func (p *PPU) ReadBGP() uint8   { return uint8(p.bgp) }
func (p *PPU) WriteBGP(v uint8) { p.bgp = Palette(v) }

func (p *PPU) ReadOBP0() uint8   { return uint8(p.obp0) }
func (p *PPU) WriteOBP0(v uint8) { p.obp0 = Palette(v) }

func (p *PPU) ReadOBP1() uint8   { return uint8(p.obp1) }
func (p *PPU) WriteOBP1(v uint8) { p.obp1 = Palette(v) }

func (p *PPU) ReadWY() uint8  { return p.wyReg }
func (p *PPU) WriteWY(v uint8) { p.wyReg = v }

func (p *PPU) ReadWX() uint8  { return p.wx }
func (p *PPU) WriteWX(v uint8) { p.wx = v }

// vramAccessible reports whether the CPU may touch VRAM right now.
func (p *PPU) vramAccessible() bool {
	return p.mode != ModePixelTransfer
}

// oamAccessible reports whether the CPU may touch OAM right now
// (independent of OAM-DMA, which the bus gates separately).
func (p *PPU) oamAccessible() bool {
	return p.mode != ModeOAMSearch && p.mode != ModePixelTransfer
}

// ReadTileData reads a byte of VRAM tile data (0x8000-0x97FF offset),
// returning 0xFF if the CPU can't see VRAM right now.
func (p *PPU) ReadTileData(addr uint16) uint8 {
	if !p.vramAccessible() {
		return 0xFF
	}
	return p.tileData.read(addr)
}

// WriteTileData writes a byte of VRAM tile data, dropped silently if the
// CPU can't see VRAM right now.
func (p *PPU) WriteTileData(addr uint16, v uint8) {
	if !p.vramAccessible() {
		return
	}
	p.tileData.write(addr, v)
}

// ReadTileMap reads a byte of VRAM tile-map data (0x9800-0x9FFF offset).
func (p *PPU) ReadTileMap(addr uint16) uint8 {
	if !p.vramAccessible() {
		return 0xFF
	}
	return p.tileMaps.read(addr)
}

// WriteTileMap writes a byte of VRAM tile-map data.
func (p *PPU) WriteTileMap(addr uint16, v uint8) {
	if !p.vramAccessible() {
		return
	}
	p.tileMaps.write(addr, v)
}

// ReadOAMCPU reads an OAM byte on behalf of the CPU, gated by mode.
// OAM-DMA-in-progress gating is the bus's responsibility, since the bus
// is what knows whether a DMA transfer is active.
func (p *PPU) ReadOAMCPU(addr uint16) uint8 {
	if !p.oamAccessible() {
		return 0xFF
	}
	return p.oam.read(addr)
}

// WriteOAMCPU writes an OAM byte on behalf of the CPU, gated by mode.
func (p *PPU) WriteOAMCPU(addr uint16, v uint8) {
	if !p.oamAccessible() {
		return
	}
	p.oam.write(uint16(addr), v)
}

// WriteOAM writes an OAM byte unconditionally, bypassing mode gating:
// the interface the OAM-DMA engine uses, since it is exempt from its own
// lock.
func (p *PPU) WriteOAM(idx uint8, v uint8) {
	p.oam.write(uint16(idx), v)
}
