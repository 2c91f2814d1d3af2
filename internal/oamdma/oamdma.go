// Package oamdma implements the OAM-DMA transfer engine triggered by
// writes to 0xFF46: 160 bytes copied into OAM, one per m-cycle, with
// source reads that bypass the clock-advancing bus path.
package oamdma

// SourceReader reads a byte from anywhere in the 16-bit address space,
// bypassing the normal m-cycle-advancing bus access (the DMA engine's
// reads are "instant": they do not themselves recursively tick the
// timer/PPU/DMA).
type SourceReader interface {
	ReadByte(addr uint16) uint8
}

// OAMWriter writes a single OAM byte directly, bypassing the CPU-facing
// OAM-lock checks (the DMA engine is exempt from its own lock).
type OAMWriter interface {
	WriteOAM(idx uint8, v uint8)
}

// Engine drives a 161 m-cycle transfer of 160 bytes from src*0x100 into
// OAM, one byte prefetched per cycle and written out the next.
type Engine struct {
	active bool
	reg    uint8
	src    uint16
	dst    uint8
	cycle  uint8
	buf    uint8

	mem SourceReader
	oam OAMWriter
}

// New returns an Engine wired to the given source-byte reader and OAM
// writer.
func New(mem SourceReader, oam OAMWriter) *Engine {
	return &Engine{mem: mem, oam: oam}
}

// IsActive reports whether a transfer is in progress. While active, any
// non-DMA access to OAM must be redirected by the caller (reads return
// 0xFF, writes are dropped).
func (e *Engine) IsActive() bool {
	return e.active
}

// ReadDMA returns the last byte written to 0xFF46.
func (e *Engine) ReadDMA() uint8 {
	return e.reg
}

// WriteDMA starts a new transfer. Starting a transfer while one is
// already active simply restarts it at the new source.
func (e *Engine) WriteDMA(v uint8) {
	e.reg = v
	e.src = uint16(v) << 8
	e.active = true
	e.cycle = 0
	e.dst = 0
}

// Advance ticks the engine by one m-cycle. The first cycle of a
// transfer only prefetches a byte; every cycle after that writes the
// previously prefetched byte to OAM, advances the destination index,
// then prefetches the next source byte.
func (e *Engine) Advance() {
	if !e.active {
		return
	}

	if e.cycle > 0 {
		e.oam.WriteOAM(e.dst, e.buf)
		e.dst++
	}
	e.buf = e.mem.ReadByte(e.src + uint16(e.dst))
	e.cycle++

	if e.cycle > 160 {
		e.active = false
	}
}
