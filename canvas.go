package txlin

import (
	"image"
	"image/draw"
	"image/png"
	"os"
)

// Canvas is the CPU pixel surface a window draws into. It is backed by a
// standard *image.RGBA so the backend can present it without conversion
// beyond channel order.
//
// Canvas performs no locking; callers serialize access (the drawing context
// holds its mutex across every mutation).
type Canvas struct {
	img    *image.RGBA
	width  int
	height int
}

// NewCanvas creates a canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int { return c.width }

// Height returns the height of the canvas.
func (c *Canvas) Height() int { return c.height }

// RGBA returns the backing image. The backend reads it during present;
// mutating it directly bypasses the drawing context's synchronization.
func (c *Canvas) RGBA() *image.RGBA { return c.img }

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) SetPixel(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.img.SetRGBA(x, y, col.RGBA())
}

// At returns the color of a single pixel, or the zero Color out of bounds.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Color{}
	}
	return FromColor(c.img.RGBAAt(x, y))
}

// Clear fills the entire canvas with a color.
func (c *Canvas) Clear(col Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col.RGBA()), image.Point{}, draw.Src)
}

// Line draws a line with the given pen width using Bresenham stepping.
// A pen wider than one pixel stamps a square brush at every step, the way
// the legacy rasterizer did.
func (c *Canvas) Line(x1, y1, x2, y2 int, col Color, width int) {
	if width < 1 {
		width = 1
	}

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		c.stamp(x, y, col, width)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Rectangle draws an axis-aligned rectangle outline.
func (c *Canvas) Rectangle(x1, y1, x2, y2 int, col Color, width int) {
	c.Line(x1, y1, x2, y1, col, width)
	c.Line(x2, y1, x2, y2, col, width)
	c.Line(x2, y2, x1, y2, col, width)
	c.Line(x1, y2, x1, y1, col, width)
}

// Circle draws a circle outline with the midpoint algorithm.
func (c *Canvas) Circle(cx, cy, r int, col Color, width int) {
	if r < 0 {
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		c.stamp(cx+x, cy+y, col, width)
		c.stamp(cx+y, cy+x, col, width)
		c.stamp(cx-y, cy+x, col, width)
		c.stamp(cx-x, cy+y, col, width)
		c.stamp(cx-x, cy-y, col, width)
		c.stamp(cx-y, cy-x, col, width)
		c.stamp(cx+y, cy-x, col, width)
		c.stamp(cx+x, cy-y, col, width)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// stamp fills a width x width square centered on (x, y).
func (c *Canvas) stamp(x, y int, col Color, width int) {
	if width == 1 {
		c.SetPixel(x, y, col)
		return
	}
	half := width / 2
	for dy := -half; dy < width-half; dy++ {
		for dx := -half; dx < width-half; dx++ {
			c.SetPixel(x+dx, y+dy, col)
		}
	}
}

// SavePNG writes the canvas contents to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, c.img)
}

// Image returns a copy of the canvas as a standard image.
func (c *Canvas) Image() image.Image {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
