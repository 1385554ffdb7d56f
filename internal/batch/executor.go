// Package batch computes many independent review aggregations concurrently.
// Each review is a pure computation with no shared mutable state, so the only
// coordination is an admission semaphore that caps in-flight work.
package batch

import (
	"context"
	"sync"

	"gopanel/domain/committee"
	"gopanel/internal"
	"gopanel/internal/aggregate"

	"golang.org/x/sync/semaphore"
)

// Outcome is the result slot for one review in a batch. Exactly one of
// Result and Err is set.
type Outcome struct {
	Index  int
	Result *aggregate.Result
	Err    error
}

// Executor runs batches of aggregations under a concurrency cap
type Executor struct {
	engine *aggregate.Engine
	sem    *semaphore.Weighted
	log    *internal.Logger
}

// NewExecutor creates an executor allowing at most maxConcurrent in-flight
// aggregations
func NewExecutor(engine *aggregate.Engine, maxConcurrent int64, log *internal.Logger) *Executor {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Executor{
		engine: engine,
		sem:    semaphore.NewWeighted(maxConcurrent),
		log:    log,
	}
}

// Run aggregates every input and returns outcomes in input order. A failed
// review fills its own slot; it never aborts the rest of the batch, because
// reviews are independent of each other.
func (x *Executor) Run(ctx context.Context, inputs []*committee.ReviewInput) []Outcome {
	outcomes := make([]Outcome, len(inputs))

	var wg sync.WaitGroup
	for i, in := range inputs {
		if err := x.sem.Acquire(ctx, 1); err != nil {
			// Context cancelled: fail the remaining slots
			for j := i; j < len(inputs); j++ {
				outcomes[j] = Outcome{Index: j, Err: err}
			}
			break
		}

		wg.Add(1)
		go func(idx int, input *committee.ReviewInput) {
			defer wg.Done()
			defer x.sem.Release(1)

			result, err := x.engine.Aggregate(input)
			if err != nil {
				x.log.Debug("batch review %d failed: %v", idx, err)
			}
			outcomes[idx] = Outcome{Index: idx, Result: result, Err: err}
		}(i, in)
	}

	wg.Wait()
	return outcomes
}
