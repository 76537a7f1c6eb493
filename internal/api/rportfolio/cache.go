package rportfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/the-dev-tools/folio/pkg/cachettl"
	"github.com/the-dev-tools/folio/pkg/metrics"
	"github.com/the-dev-tools/folio/pkg/movable"
)

// collectionCache holds the public views of one collection. Bumping gen on
// invalidation keeps loads that started earlier from storing stale views.
type collectionCache struct {
	mu      sync.Mutex
	gen     uint64
	entries *cachettl.Cache[string, any]
}

func newCollectionCache(ttl time.Duration) *collectionCache {
	return &collectionCache{entries: cachettl.New[string, any](ttl, ttl)}
}

func (cc *collectionCache) generation() uint64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.gen
}

func (cc *collectionCache) store(gen uint64, key string, v any) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.gen == gen {
		cc.entries.Set(key, v)
	}
}

func (cc *collectionCache) invalidate() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.gen++
	cc.entries.Clear()
}

type viewCache struct {
	byCollection map[movable.Collection]*collectionCache
	group        singleflight.Group
}

func newViewCache(ttl time.Duration, cols ...movable.Collection) *viewCache {
	v := &viewCache{byCollection: make(map[movable.Collection]*collectionCache, len(cols))}
	for _, col := range cols {
		v.byCollection[col] = newCollectionCache(ttl)
	}
	return v
}

func (v *viewCache) invalidate(col movable.Collection) bool {
	cc, ok := v.byCollection[col]
	if ok {
		cc.invalidate()
	}
	return ok
}

func (v *viewCache) close() {
	for _, cc := range v.byCollection {
		cc.entries.Close()
	}
}

// cached returns the view stored under col/variant, loading it once for all
// concurrent callers on a miss.
func cached[T any](ctx context.Context, v *viewCache, col movable.Collection, variant string, fetch func(context.Context) (T, error)) (T, error) {
	cc, ok := v.byCollection[col]
	if !ok {
		return fetch(ctx)
	}
	if hit, ok := cc.entries.Get(variant); ok {
		if t, ok := hit.(T); ok {
			metrics.CacheLookups.WithLabelValues(string(col), "hit").Inc()
			return t, nil
		}
	}
	metrics.CacheLookups.WithLabelValues(string(col), "miss").Inc()

	gen := cc.generation()
	key := fmt.Sprintf("%s/%s/%d", col, variant, gen)
	res, err, _ := v.group.Do(key, func() (any, error) {
		// one caller going away must not fail the others
		t, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		cc.store(gen, variant, t)
		return t, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}
