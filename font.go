package txlin

import (
	"image"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// placeholderRune is rendered for every rune absent from the glyph table.
// It is part of the table itself, so rendering it can never fail.
const placeholderRune = '�'

// FontRasterizer renders text into fixed-size glyph cells from a pre-baked
// bitmap glyph table. The cell geometry is supplied once at window creation
// and never changes; the table covers printable ASCII plus the placeholder
// glyph. There is no kerning, alignment or font substitution: every rune
// advances exactly one cell.
type FontRasterizer struct {
	face  *basicfont.Face
	cellW int
	cellH int

	// cache holds cell-sized alpha masks per rune. Guarded separately so
	// the rasterizer stays safe regardless of which lock the caller holds.
	mu    sync.Mutex
	cache map[rune]*image.Alpha
}

// NewFontRasterizer creates a rasterizer with the given glyph cell geometry.
// Geometry must be positive; the glyph table is fixed at build time.
func NewFontRasterizer(cellW, cellH int) *FontRasterizer {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &FontRasterizer{
		face:  basicfont.Face7x13,
		cellW: cellW,
		cellH: cellH,
		cache: make(map[rune]*image.Alpha),
	}
}

// CellSize returns the immutable glyph cell geometry.
func (f *FontRasterizer) CellSize() (w, h int) {
	return f.cellW, f.cellH
}

// Render walks text left to right, drawing one glyph per cell starting at
// (x, y) — the top-left corner of the first cell. Runes missing from the
// glyph table render the placeholder glyph; this is not an error.
func (f *FontRasterizer) Render(dst *Canvas, x, y int, text string, col Color) {
	cx := x
	for _, r := range text {
		f.renderCell(dst, cx, y, r, col)
		cx += f.cellW
	}
}

// Measure returns the pixel extent of text: one cell per rune.
func (f *FontRasterizer) Measure(text string) (w, h int) {
	n := 0
	for range text {
		n++
	}
	return n * f.cellW, f.cellH
}

func (f *FontRasterizer) renderCell(dst *Canvas, x, y int, r rune, col Color) {
	mask := f.cellMask(r)
	rect := image.Rect(x, y, x+f.cellW, y+f.cellH)
	draw.DrawMask(dst.RGBA(), rect,
		image.NewUniform(col.RGBA()), image.Point{},
		mask, image.Point{}, draw.Over)
}

// cellMask returns the cell-sized alpha mask for r, building and caching it
// on first use.
func (f *FontRasterizer) cellMask(r rune) *image.Alpha {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.cache[r]; ok {
		return m
	}
	m := f.buildMask(r)
	f.cache[r] = m
	return m
}

// buildMask rasterizes one glyph at the table's native size and scales it
// to the configured cell with nearest-neighbor sampling, preserving the
// bitmap look of the legacy font.
func (f *FontRasterizer) buildMask(r rune) *image.Alpha {
	nativeW := f.face.Advance
	nativeH := f.face.Ascent + f.face.Descent
	native := image.NewAlpha(image.Rect(0, 0, nativeW, nativeH))

	dot := fixed.P(0, f.face.Ascent)
	dr, mask, maskp, _, ok := f.face.Glyph(dot, r)
	if !ok {
		dr, mask, maskp, _, ok = f.face.Glyph(dot, placeholderRune)
	}
	if ok {
		draw.Draw(native, dr, mask, maskp, draw.Src)
	}

	if nativeW == f.cellW && nativeH == f.cellH {
		return native
	}
	scaled := image.NewAlpha(image.Rect(0, 0, f.cellW, f.cellH))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), native, native.Bounds(), xdraw.Src, nil)
	return scaled
}
