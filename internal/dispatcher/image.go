package dispatcher

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/frakt-go/frakt/internal/fractal"
	"github.com/frakt-go/frakt/internal/protocol"
)

// ImageSize is the full composed image's width and height in pixels.
const ImageSize = 1200

// planeWidth is the span of the tiled plane region on each axis.
const planeWidth = 2.4

// buffer is the dispatcher's exclusively-owned 1200x1200 RGB grid, mutated
// as tiles land.
type buffer struct {
	img *image.RGBA
}

func newBuffer() *buffer {
	return &buffer{img: image.NewRGBA(image.Rect(0, 0, ImageSize, ImageSize))}
}

// blit writes one completed tile's colors into the global image, per the
// dispatcher's assembly step: for each pixel index k, color(intensities[k].zn)
// is written at image coordinate derived from the tile's plane range.
func (b *buffer) blit(rng protocol.Range, res protocol.Resolution, intensities []fractal.Intensity) {
	originX := int((rng.Min.X + 1.2) / planeWidth * ImageSize)
	originY := int((rng.Min.Y + 1.2) / planeWidth * ImageSize)

	nx := int(res.Nx)
	for k, i := range intensities {
		rgb := fractal.Color(float64(i.Zn))
		x := originX + k%nx
		y := originY + k/nx
		b.img.Set(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
	}
}

// save persists the buffer as a PNG at images/server/full<name>.png,
// creating parent directories on demand.
func (b *buffer) save(name string) (string, error) {
	path := filepath.Join("images", "server", fmt.Sprintf("full%s.png", name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("dispatcher: creating image directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("dispatcher: creating image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, b.img); err != nil {
		return "", fmt.Errorf("dispatcher: encoding png: %w", err)
	}
	return path, nil
}

// reset clears the buffer back to fully transparent black, for the start of
// a new image.
func (b *buffer) reset() {
	b.img = image.NewRGBA(image.Rect(0, 0, ImageSize, ImageSize))
}
