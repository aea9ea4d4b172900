package resolve

import "context"

// cachedResolver memoizes resolution results, successes and failures both,
// so resolving the same dotted name twice within one parse yields identical
// output without re-consulting the underlying namespace. One instance is
// created per parse; it is never shared across documents.
type cachedResolver struct {
	inner   Resolver
	results map[string]cachedResult
}

type cachedResult struct {
	obj *Object
	err error
}

// Cached wraps a resolver with per-parse memoization.
func Cached(inner Resolver) Resolver {
	return &cachedResolver{inner: inner, results: make(map[string]cachedResult)}
}

// Resolve implements Resolver.
func (c *cachedResolver) Resolve(ctx context.Context, dotted string) (*Object, error) {
	if hit, ok := c.results[dotted]; ok {
		return hit.obj, hit.err
	}
	obj, err := c.inner.Resolve(ctx, dotted)
	c.results[dotted] = cachedResult{obj: obj, err: err}
	return obj, err
}

// chainResolver tries resolvers in order and returns the first success.
type chainResolver struct {
	resolvers []Resolver
}

// Chain composes resolvers: each name is tried against every resolver in
// order, and the last failure is reported when none succeeds. An index can
// therefore front a live package namespace.
func Chain(resolvers ...Resolver) Resolver {
	return &chainResolver{resolvers: resolvers}
}

// Resolve implements Resolver.
func (c *chainResolver) Resolve(ctx context.Context, dotted string) (*Object, error) {
	var lastErr error
	for _, r := range c.resolvers {
		obj, err := r.Resolve(ctx, dotted)
		if err == nil {
			return obj, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = notFound(dotted, "no resolvers configured")
	}
	return nil, lastErr
}
