package seed

import (
	"context"
	"errors"
	"sync"

	"aspectgraph/internal/domain"
)

// Writer is the mutation slice of the store the loader needs.
type Writer interface {
	UpsertElement(ctx context.Context, e domain.Element, held float64) error
	UpsertRecipe(ctx context.Context, recipe domain.Recipe) error
}

// LoadError accumulates the failures produced during a bulk load.
type LoadError struct {
	Errors []error
}

func (e *LoadError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *LoadError) append(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *LoadError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkLoader writes datasets into the store using a bounded worker pool.
// Elements are written before recipes so the recipe upserts can match their
// component nodes.
type BulkLoader struct {
	writer  Writer
	workers int
}

// NewBulkLoader creates a BulkLoader with the provided concurrency.
func NewBulkLoader(writer Writer, workers int) *BulkLoader {
	if workers <= 0 {
		workers = 4
	}
	return &BulkLoader{writer: writer, workers: workers}
}

// Load validates the dataset, derives missing base values and writes all
// elements and recipes.
func (b *BulkLoader) Load(ctx context.Context, ds Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	if err := ds.DeriveBaseValues(); err != nil {
		return err
	}

	if err := b.run(ctx, len(ds.Elements), func(idx int) error {
		e := ds.Elements[idx]
		return b.writer.UpsertElement(ctx, domain.Element{
			Name:      e.Name,
			Mod:       e.Mod,
			BaseValue: e.BaseValue,
		}, e.Held)
	}); err != nil {
		return err
	}

	return b.run(ctx, len(ds.Recipes), func(idx int) error {
		r := ds.Recipes[idx]
		return b.writer.UpsertRecipe(ctx, domain.Recipe{
			Product: domain.Handle(r.Product),
			A:       domain.Handle(r.ComponentA),
			B:       domain.Handle(r.ComponentB),
		})
	})
}

func (b *BulkLoader) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var loadErr LoadError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		loadErr.append(err)
	}
	return loadErr.asError()
}
