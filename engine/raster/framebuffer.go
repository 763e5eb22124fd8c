package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// Framebuffer is a CPU render target holding unclamped straight-alpha colors and a depth
// value per pixel. Depth follows the WebGPU convention: 0 at the near plane, 1 at the far
// plane, cleared to 1.
//
// A Framebuffer is not safe for concurrent use except through a Rasterizer, which hands
// disjoint pixel tiles to its workers.
type Framebuffer struct {
	width  int
	height int
	color  []mgl32.Vec4
	depth  []float32
}

// NewFramebuffer allocates a framebuffer cleared to transparent black at far depth.
//
// Parameters:
//   - width: width in pixels, must be positive
//   - height: height in pixels, must be positive
//
// Returns:
//   - *Framebuffer: the allocated framebuffer
//   - error: if either dimension is not positive
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid framebuffer size %dx%d", width, height)
	}
	fb := &Framebuffer{
		width:  width,
		height: height,
		color:  make([]mgl32.Vec4, width*height),
		depth:  make([]float32, width*height),
	}
	fb.Clear(mgl32.Vec4{})
	return fb, nil
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Aspect returns width / height.
func (fb *Framebuffer) Aspect() float32 {
	return float32(fb.width) / float32(fb.height)
}

// Clear fills every pixel with color and resets depth to the far plane.
//
// Parameters:
//   - color: straight-alpha RGBA clear color
func (fb *Framebuffer) Clear(color mgl32.Vec4) {
	for i := range fb.color {
		fb.color[i] = color
		fb.depth[i] = 1
	}
}

// At returns the stored color of a pixel. Out-of-range coordinates return zero.
//
// Parameters:
//   - x: column, 0 at the left edge
//   - y: row, 0 at the top edge
//
// Returns:
//   - mgl32.Vec4: the unclamped color
func (fb *Framebuffer) At(x, y int) mgl32.Vec4 {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return mgl32.Vec4{}
	}
	return fb.color[y*fb.width+x]
}

// Depth returns the stored depth of a pixel. Out-of-range coordinates return 1.
//
// Parameters:
//   - x: column, 0 at the left edge
//   - y: row, 0 at the top edge
//
// Returns:
//   - float32: the depth in [0, 1]
func (fb *Framebuffer) Depth(x, y int) float32 {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return 1
	}
	return fb.depth[y*fb.width+x]
}

// blend composites src over the stored color with standard alpha blending:
// rgb = src*a + dst*(1-a), alpha = a + dst.a*(1-a).
func (fb *Framebuffer) blend(idx int, src mgl32.Vec4) {
	a := src[3]
	if a >= 1 {
		fb.color[idx] = src
		return
	}
	dst := fb.color[idx]
	inv := 1 - a
	fb.color[idx] = mgl32.Vec4{
		src[0]*a + dst[0]*inv,
		src[1]*a + dst[1]*inv,
		src[2]*a + dst[2]*inv,
		a + dst[3]*inv,
	}
}

// Image converts the framebuffer to 8-bit RGBA. Channels are clamped to [0, 1] and
// rounded to the nearest representable value; this is the only place colors are clamped.
//
// Returns:
//   - *image.RGBA: a new image the size of the framebuffer
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i, c := range fb.color {
		o := i * 4
		img.Pix[o+0] = Quantize(c[0])
		img.Pix[o+1] = Quantize(c[1])
		img.Pix[o+2] = Quantize(c[2])
		img.Pix[o+3] = Quantize(c[3])
	}
	return img
}

// ScaledImage returns Image enlarged by an integer factor with nearest-neighbor sampling.
//
// Parameters:
//   - scale: the enlargement factor; values below 2 return Image unchanged
//
// Returns:
//   - *image.RGBA: the scaled image
func (fb *Framebuffer) ScaledImage(scale int) *image.RGBA {
	src := fb.Image()
	if scale < 2 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.width*scale, fb.height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes the framebuffer as a PNG.
//
// Parameters:
//   - w: destination writer
//   - scale: enlargement factor passed to ScaledImage
//
// Returns:
//   - error: if encoding or writing fails
func (fb *Framebuffer) WritePNG(w io.Writer, scale int) error {
	if err := png.Encode(w, fb.ScaledImage(scale)); err != nil {
		return fmt.Errorf("raster: failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes the framebuffer to a PNG file, replacing any existing file.
//
// Parameters:
//   - path: destination file path
//   - scale: enlargement factor passed to ScaledImage
//
// Returns:
//   - error: if the file cannot be created or written
func (fb *Framebuffer) SavePNG(path string, scale int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: failed to create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("raster: failed to close %q: %w", path, cerr)
		}
	}()
	return fb.WritePNG(f, scale)
}

// Quantize maps a color channel to 8 bits, clamping to [0, 1] first.
//
// Parameters:
//   - c: the channel value
//
// Returns:
//   - uint8: round(clamp(c, 0, 1) * 255)
func Quantize(c float32) uint8 {
	if c != c {
		return 0
	}
	return uint8(mgl32.Clamp(c, 0, 1)*255 + 0.5)
}
