package playlist

import (
	"math/rand"
	"time"
)

// Options controls candidate selection.
type Options struct {
	Limit   int
	Shuffle bool
	Seed    *int64 // nil means non-deterministic entropy
}

// Pick applies a single permutation (seeded when a seed is given) and
// truncates to the limit. The input slice is never modified. The same
// seed, input order and limit always produce the same output order.
func Pick[T any](items []T, opts Options) []T {
	picked := make([]T, len(items))
	copy(picked, items)

	if opts.Shuffle {
		var src rand.Source
		if opts.Seed != nil {
			src = rand.NewSource(*opts.Seed)
		} else {
			src = rand.NewSource(time.Now().UnixNano())
		}
		rnd := rand.New(src)
		rnd.Shuffle(len(picked), func(i, j int) {
			picked[i], picked[j] = picked[j], picked[i]
		})
	}

	if opts.Limit > 0 && len(picked) > opts.Limit {
		picked = picked[:opts.Limit]
	}
	return picked
}

// Short reports whether fewer candidates than requested were available.
// The caller surfaces this as a warning, not an error.
func Short(picked int, limit int) bool {
	return limit > 0 && picked < limit
}
