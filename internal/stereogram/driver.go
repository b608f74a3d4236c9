package stereogram

import (
	"runtime"
	"sync"

	"github.com/wb4/sgcreate/internal/controlpoint"
	"github.com/wb4/sgcreate/internal/heightmap"
	"github.com/wb4/sgcreate/internal/raster"
	"github.com/wb4/sgcreate/internal/sgerrors"
)

// Driver generates a complete stereogram image from a heightmap and
// texture. Rows share only read-only inputs and disjoint output
// offsets, so the per-row loop fans out across a worker pool.
type Driver struct {
	Params  Params
	Workers int // 0 means runtime.NumCPU()
}

// NewDriver returns a Driver with the given stereo parameters and the
// default worker count (NumCPU).
func NewDriver(p Params) *Driver {
	return &Driver{Params: p}
}

func (d *Driver) workerCount() int {
	if d.Workers > 0 {
		return d.Workers
	}
	return runtime.NumCPU()
}

// Generate builds the output stereogram for hm using texture. A
// solver failure on any row aborts the whole run; the first error
// encountered is returned.
func (d *Driver) Generate(hm *heightmap.Heightmap, texture *raster.Image) (*raster.Image, error) {
	width, height := hm.Width(), hm.Height()
	sg := raster.New(width, height)

	rows := make(chan int)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	worker := func() {
		defer wg.Done()
		// Each worker owns an independent Heightmap view (only the
		// Reflected flag differs per-row-in-flight) and its own
		// control-point arena, so no locking is needed across workers.
		// After a failure the workers keep draining rows without
		// solving them, so the producer loop below never blocks.
		localHM := *hm
		arena := controlpoint.NewList(2*width + 4)
		for row := range rows {
			if failed() {
				continue
			}
			arena.Reset()
			if err := GenerateControlPoints(arena, &localHM, row, d.Params); err != nil {
				fail(sgerrors.Wrap(sgerrors.InternalInvariantViolation, "solve row", err))
				continue
			}
			colorRow(sg, row, texture, arena, d.Params.EdgeEchoOffsetRows)
		}
	}

	n := d.workerCount()
	if n < 1 {
		n = 1
	}
	wg.Add(n)
	for i := 0; i < n; i++ {
		go worker()
	}

	for row := 0; row < height; row++ {
		rows <- row
	}
	close(rows)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return sg, nil
}
