package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PixelSink receives rendered pixels. Render workers call WritePixel
// concurrently, but never twice for the same pixel.
type PixelSink interface {
	WritePixel(x, y int, c core.Color)
}

// Canvas is an in-memory grid of linear colors
type Canvas struct {
	Width, Height int
	pixels        []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

// WritePixel implements PixelSink. Out-of-range coordinates are ignored.
func (c *Canvas) WritePixel(x, y int, col core.Color) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.pixels[y*c.Width+x] = col
}

// PixelAt returns the color at (x, y), or black outside the canvas
func (c *Canvas) PixelAt(x, y int) core.Color {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return core.Black
	}
	return c.pixels[y*c.Width+x]
}

// ToImage converts the canvas to 8-bit RGBA
func (c *Canvas) ToImage() *image.RGBA {
	return c.SubImage(image.Rect(0, 0, c.Width, c.Height))
}

// SubImage converts the pixels inside bounds to an image whose origin is (0, 0)
func (c *Canvas) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, c.Width, c.Height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, toRGBA(c.pixels[y*c.Width+x]))
		}
	}
	return img
}

// toRGBA clamps a linear color to [0, 1] and quantizes it
func toRGBA(c core.Color) color.RGBA {
	return color.RGBA{
		R: toByte(c.R),
		G: toByte(c.G),
		B: toByte(c.B),
		A: 255,
	}
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// ppmLineLimit is the longest line plain PPM readers must accept
const ppmLineLimit = 70

// WritePPM writes the canvas as a plain (P3) PPM image
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height); err != nil {
		return err
	}

	for y := 0; y < c.Height; y++ {
		lineLen := 0
		for x := 0; x < c.Width; x++ {
			px := toRGBA(c.pixels[y*c.Width+x])
			for _, v := range [3]uint8{px.R, px.G, px.B} {
				s := strconv.Itoa(int(v))
				switch {
				case lineLen == 0:
				case lineLen+1+len(s) > ppmLineLimit:
					bw.WriteByte('\n')
					lineLen = 0
				default:
					bw.WriteByte(' ')
					lineLen++
				}
				bw.WriteString(s)
				lineLen += len(s)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
