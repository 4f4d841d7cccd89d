package routing

import (
	"context"

	"github.com/openfleet/eldsim/internal/application/common"
	domainRouting "github.com/openfleet/eldsim/internal/domain/routing"
	"github.com/openfleet/eldsim/internal/domain/shared"
)

// CacheObserver counts cache effectiveness; nil disables instrumentation.
type CacheObserver interface {
	IncCacheHit()
	IncCacheMiss()
}

// CachingRouteProvider decorates a RouteProvider with a route cache keyed by
// rounded endpoint coordinates. Cache failures are logged and ignored; the
// inner provider always remains the source of truth.
type CachingRouteProvider struct {
	inner    domainRouting.RouteProvider
	cache    domainRouting.RouteCache
	observer CacheObserver
}

// NewCachingRouteProvider wraps inner with the given cache.
func NewCachingRouteProvider(inner domainRouting.RouteProvider, cache domainRouting.RouteCache, observer CacheObserver) *CachingRouteProvider {
	return &CachingRouteProvider{inner: inner, cache: cache, observer: observer}
}

// GetRoute serves from the cache when possible, falling through to the inner
// provider and storing its answer.
func (p *CachingRouteProvider) GetRoute(ctx context.Context, from, to shared.Location) (*domainRouting.Route, error) {
	logger := common.LoggerFromContext(ctx)
	key := domainRouting.CacheKey(from, to)

	cached, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		logger.Log("WARN", "Route cache read failed", map[string]interface{}{
			"cache_key": key,
			"error":     err.Error(),
		})
	}
	if ok {
		if p.observer != nil {
			p.observer.IncCacheHit()
		}
		return cached, nil
	}
	if p.observer != nil {
		p.observer.IncCacheMiss()
	}

	route, err := p.inner.GetRoute(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Put(ctx, key, route); err != nil {
		logger.Log("WARN", "Route cache write failed", map[string]interface{}{
			"cache_key": key,
			"error":     err.Error(),
		})
	}
	return route, nil
}
