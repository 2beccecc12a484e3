package preview

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"
)

// SequenceConfig holds the shared settings for encoding a frame sequence.
type SequenceConfig struct {
	OutputDir  string
	Format     string // "webp" or "tga"
	TargetSize int    // final image size after downsampling
	Workers    int
}

// Result is the outcome of encoding one frame.
type Result struct {
	Frame int
	Path  string
	Error string
}

// EncodeSequence downsamples and encodes rendered frames through a worker
// pool. Evaluation is serial per pose instance, so frames arrive already
// rendered; only the pixel work is parallel.
func EncodeSequence(cfg SequenceConfig, frames []*image.NRGBA) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = encodeFrame(cfg, idx, frames[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func encodeFrame(cfg SequenceConfig, idx int, img *image.NRGBA) Result {
	img = Downsample(img, cfg.TargetSize)

	path, err := WriteFrame(cfg.OutputDir, idx, img, cfg.Format)
	if err != nil {
		return Result{Frame: idx, Error: err.Error()}
	}
	return Result{Frame: idx, Path: path}
}
