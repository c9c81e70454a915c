// Package worker implements the stateless worker loop: request a tile,
// compute it in parallel, send the result on a fresh connection, repeat.
// Grounded on worker/src/client_services/worker.rs and
// worker/src/main.rs of the original implementation this system was
// distilled from.
package worker

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/frakt-go/frakt/internal/complexnum"
	"github.com/frakt-go/frakt/internal/fractal"
	"github.com/frakt-go/frakt/internal/protocol"
)

// Compute fills one intensity per pixel of the tile described by task,
// walking pixels in scan order and computing each independently in
// parallel across all available cores.
//
// The scan order deliberately uses ny for both the mod and div terms
// (i mod ny, i div ny) rather than nx — a quirk carried over unchanged from
// the original implementation; since every generated tile is square
// (nx == ny == 300) no visible defect results, but a renderer of
// non-square tiles would need to decide whether to fix it.
func Compute(task protocol.FragmentTask) []fractal.Intensity {
	nx := int(task.Resolution.Nx)
	ny := int(task.Resolution.Ny)
	total := nx * ny

	dx := (task.Range.Max.X - task.Range.Min.X) / float64(nx)
	dy := (task.Range.Max.Y - task.Range.Min.Y) / float64(ny)

	out := make([]fractal.Intensity, total)

	grp, _ := errgroup.WithContext(context.Background())
	grp.SetLimit(runtime.NumCPU())

	for i := 0; i < total; i++ {
		i := i
		grp.Go(func() error {
			x := task.Range.Min.X + float64(i%ny)*dx
			y := task.Range.Min.Y + float64(i/ny)*dy
			pixel := complexnum.New(x, y)
			out[i] = fractal.Compute(task.Fractal, pixel, task.MaxIteration)
			return nil
		})
	}
	_ = grp.Wait()

	return out
}
