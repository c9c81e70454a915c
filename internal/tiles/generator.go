// Package tiles partitions the fractal plane into the fixed 4x4 grid of
// tiles the dispatcher hands out one at a time, grounded on
// server/src/server_services/server.rs's create_fragment_task (generalized
// here to all seven kernels per spec §4.3) of the original implementation
// this system was distilled from.
package tiles

import (
	"fmt"

	"github.com/frakt-go/frakt/internal/fractal"
	"github.com/frakt-go/frakt/internal/protocol"
)

const (
	// PlaneMin and PlaneMax bound the square region tiled for every image.
	PlaneMin = -1.2
	PlaneMax = 1.2

	// GridSize is the number of tiles per row/column (4x4 = 16 tiles total).
	GridSize = 4

	// Count is the total number of tiles generated per image.
	Count = GridSize * GridSize

	// TileResolution is the pixel resolution of each generated tile.
	TileResolution = 300

	// TileWidth is the plane-space width/height of each tile.
	TileWidth = (PlaneMax - PlaneMin) / GridSize

	// MaxIteration is the fixed iteration budget for every generated tile.
	MaxIteration = 64
)

// Generate produces the 16 FragmentTasks tiling [-1.2,1.2]^2 in row-major
// order for the named fractal. The task id is the placeholder U8Data{0,16};
// the dispatcher assigns the real id bytes at send time.
func Generate(kind fractal.Kind) ([]protocol.FragmentTask, error) {
	descriptor, err := fractal.Default(kind)
	if err != nil {
		return nil, fmt.Errorf("tiles: %w", err)
	}

	tasks := make([]protocol.FragmentTask, 0, Count)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			xMin := PlaneMin + float64(col)*TileWidth
			yMin := PlaneMin + float64(row)*TileWidth
			tasks = append(tasks, protocol.FragmentTask{
				ID:           protocol.U8Data{Offset: 0, Count: 16},
				Fractal:      descriptor,
				MaxIteration: MaxIteration,
				Resolution:   protocol.Resolution{Nx: TileResolution, Ny: TileResolution},
				Range: protocol.Range{
					Min: protocol.Point{X: xMin, Y: yMin},
					Max: protocol.Point{X: xMin + TileWidth, Y: yMin + TileWidth},
				},
			})
		}
	}
	return tasks, nil
}
