package ppu

// tileMapSize is the byte length of VRAM's tile-map region
// (0x9800-0x9FFF): two 32x32 index grids.
const tileMapSize = 0xA000 - 0x9800

// tileMaps holds the raw BG/window tile-index grids and the LCDC-derived
// settings needed to turn a pixel coordinate into a tile-data row
// address.
type tileMaps struct {
	mem [tileMapSize]byte

	signedAddressing bool // LCDC bit 4 clear: tile data origin is 0x8800, indices signed
	bgOffset         uint16
	windowOffset     uint16
}

func newTileMaps() *tileMaps {
	return &tileMaps{}
}

func (m *tileMaps) read(addr uint16) uint8 {
	return m.mem[addr]
}

func (m *tileMaps) write(addr uint16, v uint8) {
	m.mem[addr] = v
}

// notifyLCDC updates the cached addressing mode whenever LCDC changes.
func (m *tileMaps) notifyLCDC(l lcdc) {
	m.signedAddressing = !l.tileDataAt8000()
	m.bgOffset = l.bgMapOffset()
	m.windowOffset = l.windowMapOffset()
}

// bgTileRowAddr returns the tile-data byte address of the row containing
// background pixel (x, y), where x/y are BG-space coordinates (already
// wrapped by SCX/SCY).
func (m *tileMaps) bgTileRowAddr(x, y uint8) uint16 {
	return m.tileRowAddr(m.bgOffset, x, y)
}

// windowTileRowAddr is the window-space equivalent of bgTileRowAddr.
func (m *tileMaps) windowTileRowAddr(x, y uint8) uint16 {
	return m.tileRowAddr(m.windowOffset, x, y)
}

func (m *tileMaps) tileRowAddr(mapOffset uint16, x, y uint8) uint16 {
	tx := x / 8
	ty := y / 8
	subY := y % 8

	idx := m.mem[int(mapOffset)+int(ty)*32+int(tx)]

	if !m.signedAddressing {
		return uint16(idx)*tileBytes + uint16(subY)*2
	}
	return 0x800 + uint16(idx+128)*tileBytes + uint16(subY)*2
}

// spriteTileRowAddr returns the tile-data byte address of one row of a
// sprite tile, accounting for 8x16 sprites splitting across two adjacent
// tile IDs.
func spriteTileRowAddr(tileID uint8, subY uint8, height uint8) uint16 {
	if height == 8 {
		return uint16(tileID)*tileBytes + uint16(subY)*2
	}
	if subY < 8 {
		return uint16(tileID&0xFE)*tileBytes + uint16(subY)*2
	}
	return uint16(tileID|0x01)*tileBytes + uint16(subY-8)*2
}
