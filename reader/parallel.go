package reader

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/mzml/spectrum"
)

// FetchResult is the outcome of fetching one id.
type FetchResult struct {
	ID   string
	Scan *spectrum.Scan
	Err  error
}

// FetchMany fetches ids with at most concurrency fetches in flight and
// returns one result per id, in the order of ids.
//
// A failing id does not stop the others. Once ctx is done, ids not yet
// started get ctx.Err() as their error. concurrency <= 0 means GOMAXPROCS.
func (s *Store) FetchMany(ctx context.Context, ids []string, concurrency int) []FetchResult {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]FetchResult, len(ids))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, id := range ids {
		results[i].ID = id
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Scan, results[i].Err = s.Fetch(id)

			return nil
		})
	}
	_ = g.Wait()

	return results
}
