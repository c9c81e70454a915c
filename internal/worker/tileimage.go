package worker

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/frakt-go/frakt/internal/fractal"
	"github.com/frakt-go/frakt/internal/protocol"
)

// saveTileImage persists the computed tile as a standalone PNG, matching the
// original implementation's optional worker-side preview: fractal.create_image
// in shared/src/fractal_implementation/fractal_calcul.rs. The normalized
// parameter fed to the palette is zn for escape-time kernels whose zn
// carries divergence information (Julia, Mandelbrot) and count otherwise,
// folded into [0,1) by (2t+0.5) mod 1.
func saveTileImage(kind fractal.Kind, task protocol.FragmentTask, intensities []fractal.Intensity) (string, error) {
	width := int(task.Resolution.Nx)
	height := int(task.Resolution.Ny)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, v := range intensities {
		var t float64
		switch kind {
		case fractal.Julia, fractal.Mandelbrot:
			t = float64(v.Zn)
		default:
			t = float64(v.Count)
		}
		rgb := fractal.Color(fold(t))
		x, y := i%width, i/width
		img.Set(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
	}

	name := fmt.Sprintf("%s_%010d.png", kind, rand.Int63n(1e10))
	path := filepath.Join("images", "worker", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("worker: creating tile image directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("worker: creating tile image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("worker: encoding tile png: %w", err)
	}
	return path, nil
}

func fold(t float64) float64 {
	v := 2*t + 0.5
	v -= float64(int(v))
	if v < 0 {
		v++
	}
	return v
}
