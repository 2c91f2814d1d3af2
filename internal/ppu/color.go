package ppu

// Pixel is an RGBA quadruple, directly mappable to any texture format a
// frontend cares to blit.
type Pixel struct {
	R, G, B, A uint8
}

// dmgPalette is the fixed four-shade green-tinted mapping from a 2-bit
// shade index to an RGBA pixel. Every pixel, background,
// window, or sprite, passes through exactly one of BGP/OBP0/OBP1 to
// produce a shade, then through this table to become a displayable color.
var dmgPalette = [4]Pixel{
	{239, 255, 222, 255},
	{173, 215, 148, 255},
	{82, 146, 115, 255},
	{24, 52, 66, 255},
}

func shadeToPixel(shade uint8) Pixel {
	return dmgPalette[shade&0x3]
}

// Palette is one of BGP/OBP0/OBP1: an 8-bit register mapping each 2-bit
// color index to a 2-bit shade.
type Palette uint8

// Apply maps a raw 2-bit color index through the palette to its shade.
func (p Palette) Apply(col uint8) uint8 {
	return (uint8(p) >> (2 * (col & 0x3))) & 0x3
}

// blendShade implements the OBJ-to-BG-priority-1 rule: the already-
// paletted sprite shade shows only where the raw background color
// underneath is 0, otherwise the background (through its own palette)
// wins.
func blendShade(spriteShade uint8, bgCol uint8, bgp Palette) uint8 {
	if bgCol == 0 {
		return spriteShade
	}
	return bgp.Apply(bgCol)
}
