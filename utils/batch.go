package utils

import (
	"golang.org/x/sync/errgroup"
)

// RunLimited runs fn over every item with at most limit in flight at once.
// All items run even when one fails; the first error seen is returned after
// the whole batch has drained.
func RunLimited[T any](items []T, limit int, fn func(T) error) error {
	if limit < 1 {
		limit = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(limit)
	for _, item := range items {
		item := item
		g.Go(func() error {
			return fn(item)
		})
	}
	return g.Wait()
}
