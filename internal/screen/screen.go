// internal/screen/screen.go
package screen

import (
	"context"
	"sync"

	"detprod-core/detonation"
	"detprod-core/weights"

	"detprod/internal/catalog"
)

// Config controls the screening pool.
type Config struct {
	Threads      int                // number of worker goroutines (>=1)
	TemperatureK float64            // reference temperature for gas volumes
	Weights      weights.Table      // atomic weights; nil uses weights.Default()
	Engine       *detonation.Engine // shared, read-only; nil uses the zero Engine
}

// ForEachRow evaluates compounds on cfg.Threads workers and calls visit with
// each Row in catalog order.
//
// A failed compound goes to onErr; if onErr is nil or returns an error, that
// error stops the run. Returning nil from onErr skips the compound.
// It returns the first error encountered (including context cancellation).
func ForEachRow(
	ctx context.Context,
	cfg Config,
	compounds []catalog.Compound,
	visit func(Row) error,
	onErr func(catalog.Compound, error) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Weights == nil {
		cfg.Weights = weights.Default()
	}
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		idx int
		c   catalog.Compound
	}
	type result struct {
		idx int
		row Row
		err error
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					row, err := Evaluate(j.c, cfg.Weights, cfg.TemperatureK, cfg.Engine)
					row.Index = j.idx
					select {
					case results <- result{idx: j.idx, row: row, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	emit := func(r result) error {
		if r.err == nil {
			return visit(r.row)
		}
		if onErr == nil {
			return r.err
		}
		return onErr(compounds[r.idx], r.err)
	}

	// Collector + reorder
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]result, cfg.Threads*2)
		next := 0
		for r := range results {
			if cerr != nil {
				continue
			}
			pending[r.idx] = r
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := emit(p); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
feed:
	for i, c := range compounds {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, c: c}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if err := parent.Err(); err != nil {
		return err
	}
	return cerr
}
