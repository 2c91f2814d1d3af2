package ppu

import "sort"

// oamSize is the byte length of the sprite attribute table.
const oamSize = 0xFEA0 - 0xFE00

// spriteBytes is the byte width of one OAM entry.
const spriteBytes = 4

// oam holds the raw sprite table plus a sorted-by-X cache of sprites
// that might be visible on some scanline, rebuilt once per scanline
// before that scanline's sprites are selected.
type oam struct {
	mem     [oamSize]byte
	visible []uint8 // sprite indices, sorted ascending by X

	dirty        bool
	spriteHeight uint8
}

func newOAM() *oam {
	return &oam{visible: make([]uint8, 0, 40), dirty: true, spriteHeight: 8}
}

func (o *oam) read(addr uint16) uint8 {
	return o.mem[addr]
}

func (o *oam) write(addr uint16, v uint8) {
	o.mem[addr] = v
	o.dirty = true
}

// notifyLCDC invalidates the visibility cache when sprite height changes.
func (o *oam) notifyLCDC(l lcdc) {
	if h := l.spriteHeight(); h != o.spriteHeight {
		o.spriteHeight = h
		o.dirty = true
	}
}

// rebuild recomputes the visible-sorted cache. Must be called once per
// scanline, after OAM becomes CPU-inaccessible but before spritesInLine.
func (o *oam) rebuild() {
	if !o.dirty {
		return
	}
	o.visible = o.visible[:0]
	for id := uint8(0); id < 40; id++ {
		y := int(o.mem[int(id)*spriteBytes])
		x := o.mem[int(id)*spriteBytes+1]
		// y is stored +16: the sprite covers lines y-16 .. y-16+height-1,
		// so it touches the screen iff that range crosses line 0 and
		// starts before line 144.
		if y+int(o.spriteHeight) > 16 && y < 160 && x < 168 {
			o.visible = append(o.visible, id)
		}
	}
	mem := &o.mem
	sort.SliceStable(o.visible, func(i, j int) bool {
		return mem[int(o.visible[i])*spriteBytes+1] < mem[int(o.visible[j])*spriteBytes+1]
	})
	o.dirty = false
}

// spritesInLine returns up to 10 sprites overlapping scanline ly, sorted
// by ascending X (the DMG's real left-to-right sprite priority order).
func (o *oam) spritesInLine(ly uint8) []sprite {
	var out []sprite
	for _, id := range o.visible {
		base := int(id) * spriteBytes
		y := int16(o.mem[base]) - 16
		if int16(ly) >= y && int16(ly) < y+int16(o.spriteHeight) {
			out = append(out, sprite{
				Y:     o.mem[base],
				X:     o.mem[base+1],
				ID:    o.mem[base+2],
				Flags: o.mem[base+3],
			})
			if len(out) == 10 {
				break
			}
		}
	}
	return out
}
