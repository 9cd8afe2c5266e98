package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"

	"spheretracer/pkg/tracer"
)

// TileSize is the fixed dispatch granularity: the pixel grid is covered in
// 8x8 tiles, one task per tile.
const TileSize = 8

// TileGrid covers the full resolution with tiles, clipping the last row and
// column to the image bounds.
func TileGrid(width, height, tileSize int) []image.Rectangle {
	var tiles []image.Rectangle
	for y0 := 0; y0 < height; y0 += tileSize {
		for x0 := 0; x0 < width; x0 += tileSize {
			tiles = append(tiles, image.Rect(
				x0, y0,
				min(x0+tileSize, width), min(y0+tileSize, height),
			))
		}
	}
	return tiles
}

// tileTask is one tile of one frame submitted to the worker pool
type tileTask struct {
	bounds   image.Rectangle
	uniforms *tracer.Uniforms
	fb       *Framebuffer
}

// Dispatcher runs the kernel over the pixel grid using a persistent pool of
// workers. Invocations within a tile run sequentially on one worker; tiles
// run in parallel. Cancellation is whole-dispatch only: a cancelled context
// skips remaining tiles but never interrupts a pixel mid-flight.
type Dispatcher struct {
	numWorkers  int
	taskQueue   chan tileTask
	resultQueue chan struct{}
	wg          sync.WaitGroup
	started     bool
	stopped     bool
}

// NewDispatcher creates a dispatcher; numWorkers <= 0 selects the CPU count
func NewDispatcher(numWorkers int) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Dispatcher{
		numWorkers:  numWorkers,
		taskQueue:   make(chan tileTask, numWorkers*4),
		resultQueue: make(chan struct{}, numWorkers*4),
	}
}

// NumWorkers returns the worker count
func (d *Dispatcher) NumWorkers() int {
	return d.numWorkers
}

// start launches the workers on first use
func (d *Dispatcher) start() {
	if d.started || d.stopped {
		return
	}
	d.started = true
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		go d.run()
	}
}

// Stop shuts the worker pool down. Safe to call more than once; the
// dispatcher cannot be reused after.
func (d *Dispatcher) Stop() {
	if !d.started || d.stopped {
		return
	}
	d.stopped = true
	close(d.taskQueue)
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for task := range d.taskQueue {
		renderTile(task)
		d.resultQueue <- struct{}{}
	}
}

// Dispatch renders one frame: every pixel gets exactly one kernel invocation
// writing one radiance sample into fb. Returns the context error if the
// dispatch was cancelled before all tiles were submitted.
//
// Submission and result draining run concurrently: the queues hold far fewer
// entries than a frame has tiles, so submitting everything before reading a
// single result would fill both queues and wedge the workers.
func (d *Dispatcher) Dispatch(ctx context.Context, uniforms *tracer.Uniforms, fb *Framebuffer) error {
	d.start()

	tiles := TileGrid(uniforms.Width, uniforms.Height, TileSize)

	submitted := make(chan int, 1)
	go func() {
		n := 0
		for _, bounds := range tiles {
			if ctx.Err() != nil {
				break
			}
			d.taskQueue <- tileTask{bounds: bounds, uniforms: uniforms, fb: fb}
			n++
		}
		submitted <- n
	}()

	// Drain results as they arrive; the final count is only known once the
	// submitter finishes (it stops early on cancellation).
	done := 0
	want := -1
	for want < 0 || done < want {
		select {
		case <-d.resultQueue:
			done++
		case want = <-submitted:
		}
	}
	return ctx.Err()
}

// renderTile runs the kernel for every pixel in the tile
func renderTile(task tileTask) {
	for y := task.bounds.Min.Y; y < task.bounds.Max.Y; y++ {
		for x := task.bounds.Min.X; x < task.bounds.Max.X; x++ {
			task.fb.SetPixel(x, y, tracer.TracePixel(task.uniforms, x, y))
		}
	}
}
