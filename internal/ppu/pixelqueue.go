package ppu

// Pixel sources, 2 bits per pixel within a pixelQuad: a pixel is
// either still waiting on its background fetch, final, or a sprite
// pixel the background may yet cover.
const (
	srcBGPending    = 0b00
	srcFinal        = 0b01 // window, or a sprite blended per OBJ-to-BG priority
	srcSpriteOccl   = 0b10 // sprite with priority-1-over-BG, may still be covered by BG
	srcSpriteFinal  = 0b11 // sprite with priority 0, always on top
)

// pixelQuad holds the precomputed source/color for four consecutive
// screen pixels, so the 22-61 "pop" mcycle window only has to resolve
// background pixels that are still pending.
type pixelQuad struct {
	col uint8 // 4 x 2-bit, pixel 0 in the low bits
	src uint8 // 4 x 2-bit source tags, same layout
}

func quadPixel(q pixelQuad, i uint8) (col, src uint8) {
	shift := 2 * i
	return (q.col >> shift) & 0x3, (q.src >> shift) & 0x3
}

func quadSetPixel(q *pixelQuad, i uint8, col, src uint8) {
	shift := 2 * i
	mask := uint8(0x3) << shift
	q.col = q.col&^mask | (col << shift)
	q.src = q.src&^mask | (src << shift)
}

func pixelAt(row uint16, i uint8) uint8 {
	return uint8(row>>(2*i)) & 0x3
}

// pushScanline precomputes sprite and window pixels for the line about
// to be drawn (everything that doesn't depend on SCX/SCY, which can
// still be read mid-scanline on real hardware but isn't modeled here).
// Returns the number of sprites drawn, which drives the Pixel-transfer
// length's sprite delay.
func (p *PPU) pushScanline() uint8 {
	for i := range p.quads {
		p.quads[i] = pixelQuad{}
	}

	ly := p.cpuLY
	var numSprites uint8

	if p.lcdc.spritesEnabled() {
		height := p.lcdc.spriteHeight()
		for _, spr := range p.oam.spritesInLine(ly) {
			p.drawSprite(spr, ly, height)
			numSprites++
		}
	}

	windowVisible := p.lcdc.windowEnabled() && ly >= p.wy && p.wx >= 7 && p.wx <= 166
	if windowVisible {
		p.drawWindow(ly - p.wy)
	}

	if !p.lcdc.bgEnabled() {
		// With the background off, every pixel the background would have
		// supplied becomes color 0 through BGP, and occluded sprites have
		// nothing left to hide behind.
		blank := p.bgp.Apply(0)
		for i := range p.quads {
			for j := uint8(0); j < 4; j++ {
				col, src := quadPixel(p.quads[i], j)
				switch src {
				case srcBGPending:
					quadSetPixel(&p.quads[i], j, blank, srcFinal)
				case srcSpriteOccl:
					quadSetPixel(&p.quads[i], j, col, srcSpriteFinal)
				}
			}
		}
	}

	return numSprites
}

func (p *PPU) drawSprite(spr sprite, ly uint8, height uint8) {
	line := ly - uint8(int16(spr.Y)-16)
	if spr.yFlipped() {
		line = height - 1 - line
	}
	rowAddr := spriteTileRowAddr(spr.ID, line, height)
	row := p.tileData.row(rowAddr)

	src := uint8(srcSpriteFinal)
	if spr.occluded() {
		src = srcSpriteOccl
	}

	base := int(spr.X) - 8
	for tileCol := uint8(0); tileCol < 8; tileCol++ {
		screenX := base + int(tileCol)
		if screenX < 0 || screenX >= ScreenWidth {
			continue
		}
		srcCol := tileCol
		if spr.xFlipped() {
			srcCol = 7 - tileCol
		}
		col := pixelAt(row, srcCol)
		if col == 0 {
			continue
		}
		p.drawSpritePixel(spr, uint8(screenX), col, src)
	}
}

func (p *PPU) drawSpritePixel(spr sprite, x, col, src uint8) {
	q := &p.quads[x/4]
	_, oldSrc := quadPixel(*q, x%4)
	if oldSrc != 0 {
		return // a higher-priority sprite already claimed this pixel
	}
	palette := p.obp0
	if spr.altPalette() {
		palette = p.obp1
	}
	quadSetPixel(q, x%4, palette.Apply(col), src)
}

func (p *PPU) drawWindow(windowLine uint8) {
	start := int(p.wx) - 7
	for screenX := start; screenX < ScreenWidth; screenX++ {
		if screenX < 0 {
			continue
		}
		winX := uint8(screenX - start)
		rowAddr := p.tileMaps.windowTileRowAddr(winX, windowLine)
		row := p.tileData.row(rowAddr)
		col := pixelAt(row, winX%8)
		p.drawWindowPixel(uint8(screenX), col)
	}
}

func (p *PPU) drawWindowPixel(x, col uint8) {
	q := &p.quads[x/4]
	i := x % 4
	_, oldSrc := quadPixel(*q, i)

	if oldSrc&0x1 == 1 {
		return // already final
	}

	if oldSrc == srcSpriteOccl {
		oldCol, _ := quadPixel(*q, i)
		quadSetPixel(q, i, blendShade(oldCol, col, p.bgp), srcFinal)
		return
	}

	quadSetPixel(q, i, p.bgp.Apply(col), srcFinal)
}

// popPixelQuad resolves the four pixels of quad quadID (called once per
// m-cycle during the 22-61 pop window) and writes them into the frame
// buffer's current line.
func (p *PPU) popPixelQuad(quadID uint8) {
	q := p.quads[quadID]
	line := p.frame[int(p.cpuLY)*ScreenWidth : int(p.cpuLY)*ScreenWidth+ScreenWidth]

	bgY := p.cpuLY + p.scy

	for i := uint8(0); i < 4; i++ {
		x := quadID*4 + i
		col, src := quadPixel(q, i)

		var shade uint8
		switch src {
		case srcBGPending:
			shade = p.bgp.Apply(p.fetchBGPixel(x+p.scx, bgY))
		case srcSpriteOccl:
			bgCol := p.fetchBGPixel(x+p.scx, bgY)
			shade = blendShade(col, bgCol, p.bgp)
		default:
			shade = col
		}
		line[x] = shadeToPixel(shade)
	}
}

func (p *PPU) fetchBGPixel(bgX, bgY uint8) uint8 {
	rowAddr := p.tileMaps.bgTileRowAddr(bgX, bgY)
	row := p.tileData.row(rowAddr)
	return pixelAt(row, bgX%8)
}
