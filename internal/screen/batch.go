package screen

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/latticelab/kscreen/internal/crystal"
	"github.com/latticelab/kscreen/internal/policy"
)

// Item is one batch input. A parser that already failed hands its
// error through Err; such items are passed through to the output
// unmodified without touching the pipeline.
type Item struct {
	Name      string
	Structure crystal.Structure
	Err       error
}

// Outcome is one batch output: the verdict, or the error that stopped
// this structure. Exactly one of Result and Err is set.
type Outcome struct {
	Name   string
	Result *ScreeningResult
	Err    error
}

// BatchOption configures Batch.
type BatchOption func(*batchConfig)

type batchConfig struct {
	workers int
	logger  *slog.Logger
}

// WithWorkers sets the number of parallel workers. Values below 1
// fall back to GOMAXPROCS-bounded CPU count.
func WithWorkers(n int) BatchOption {
	return func(c *batchConfig) { c.workers = n }
}

// WithLogger routes per-structure progress to the given logger.
func WithLogger(l *slog.Logger) BatchOption {
	return func(c *batchConfig) { c.logger = l }
}

// Batch screens every item and returns outcomes in input order,
// regardless of worker count or completion order. A failure on one
// structure is recorded against its name and never aborts the batch;
// every requested item appears exactly once in the output.
//
// The policy is validated once up front — a configuration error
// aborts before any structure is processed.
func Batch(items []Item, pol policy.Policy, opts ...BatchOption) ([]Outcome, error) {
	if err := pol.Validate(); err != nil {
		return nil, err
	}

	cfg := batchConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.NumCPU()
	}
	if cfg.workers > len(items) {
		cfg.workers = len(items)
	}

	outcomes := make([]Outcome, len(items))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < cfg.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				outcomes[idx] = screenItem(items[idx], pol, cfg.logger)
			}
		}()
	}
	for idx := range items {
		indexes <- idx
	}
	close(indexes)
	wg.Wait()

	return outcomes, nil
}

func screenItem(item Item, pol policy.Policy, logger *slog.Logger) Outcome {
	if item.Err != nil {
		// pre-failed at the parser boundary; pass through untouched
		return Outcome{Name: item.Name, Err: item.Err}
	}
	result, err := Screen(item.Structure, pol)
	if err != nil {
		logger.Warn("structure failed screening", "name", item.Name, "error", err)
		return Outcome{Name: item.Name, Err: err}
	}
	logger.Debug("structure screened",
		"name", item.Name,
		"K", result.K,
		"parity_pass", result.ParityPass,
		"energy_pass", result.EnergyPass,
		"overall_pass", result.OverallPass,
	)
	return Outcome{Name: item.Name, Result: result}
}
