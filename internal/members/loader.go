package members

import (
	"context"
	"net/http"
	"time"

	"github.com/graph-gophers/dataloader/v7"
)

type loaderContextKey string

const loaderKey loaderContextKey = "members.loader"

// Loader batches member lookups made while serving one request
type Loader = dataloader.Loader[int64, *Member]

// NewLoader creates a request-scoped batched loader over repo
func NewLoader(repo Repository) *Loader {
	return dataloader.NewBatchedLoader(batchFn(repo),
		dataloader.WithWait[int64, *Member](2*time.Millisecond),
		dataloader.WithBatchCapacity[int64, *Member](100))
}

func batchFn(repo Repository) dataloader.BatchFunc[int64, *Member] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[*Member] {
		results := make([]*dataloader.Result[*Member], len(keys))

		found, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[*Member]{Error: err}
			}
			return results
		}

		byID := make(map[int64]*Member, len(found))
		for _, m := range found {
			byID[m.ID] = m
		}

		// results must line up with keys
		for i, key := range keys {
			if m, ok := byID[key]; ok {
				results[i] = &dataloader.Result[*Member]{Data: m}
			} else {
				results[i] = &dataloader.Result[*Member]{Error: ErrMemberNotFound}
			}
		}
		return results
	}
}

// WithLoader stores l in ctx
func WithLoader(ctx context.Context, l *Loader) context.Context {
	return context.WithValue(ctx, loaderKey, l)
}

// LoaderFromContext returns the request loader, or nil outside LoaderMiddleware
func LoaderFromContext(ctx context.Context) *Loader {
	if l, ok := ctx.Value(loaderKey).(*Loader); ok {
		return l
	}
	return nil
}

// LoaderMiddleware gives every request a fresh loader so nothing is cached across requests
func LoaderMiddleware(repo Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoader(r.Context(), NewLoader(repo))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
