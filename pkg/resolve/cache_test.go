package resolve_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rstexpand/pkg/resolve"
)

// countingResolver records how many times each name was resolved.
type countingResolver struct {
	objects map[string]*resolve.Object
	calls   map[string]int
}

func newCountingResolver(objects map[string]*resolve.Object) *countingResolver {
	return &countingResolver{objects: objects, calls: make(map[string]int)}
}

func (c *countingResolver) Resolve(_ context.Context, dotted string) (*resolve.Object, error) {
	c.calls[dotted]++
	if obj, ok := c.objects[dotted]; ok {
		return obj, nil
	}
	return nil, &resolve.ResolutionError{Name: dotted, Reason: "not in fixture"}
}

func TestCached(t *testing.T) {
	ctx := context.Background()

	t.Run("memoizes successes", func(t *testing.T) {
		inner := newCountingResolver(map[string]*resolve.Object{
			"pkg.f": {Name: "pkg.f", Kind: resolve.KindFunction},
		})
		cached := resolve.Cached(inner)

		first, err := cached.Resolve(ctx, "pkg.f")
		require.NoError(t, err)
		second, err := cached.Resolve(ctx, "pkg.f")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, inner.calls["pkg.f"])
	})

	t.Run("memoizes failures", func(t *testing.T) {
		inner := newCountingResolver(nil)
		cached := resolve.Cached(inner)

		_, err1 := cached.Resolve(ctx, "missing")
		_, err2 := cached.Resolve(ctx, "missing")

		require.Error(t, err1)
		assert.Equal(t, err1, err2)
		assert.Equal(t, 1, inner.calls["missing"])
	})
}

func TestChain(t *testing.T) {
	ctx := context.Background()

	t.Run("first success wins", func(t *testing.T) {
		first := newCountingResolver(map[string]*resolve.Object{
			"a": {Name: "a", Doc: "from first"},
		})
		second := newCountingResolver(map[string]*resolve.Object{
			"a": {Name: "a", Doc: "from second"},
		})

		obj, err := resolve.Chain(first, second).Resolve(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "from first", obj.Doc)
		assert.Equal(t, 0, second.calls["a"])
	})

	t.Run("falls through to later resolvers", func(t *testing.T) {
		first := newCountingResolver(nil)
		second := newCountingResolver(map[string]*resolve.Object{
			"b": {Name: "b"},
		})

		obj, err := resolve.Chain(first, second).Resolve(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "b", obj.Name)
		assert.Equal(t, 1, first.calls["b"])
	})

	t.Run("reports last failure", func(t *testing.T) {
		_, err := resolve.Chain(newCountingResolver(nil), newCountingResolver(nil)).Resolve(ctx, "x")
		require.Error(t, err)
		assert.ErrorIs(t, err, resolve.ErrNotFound)
	})

	t.Run("empty chain fails", func(t *testing.T) {
		_, err := resolve.Chain().Resolve(ctx, "x")
		assert.ErrorIs(t, err, resolve.ErrNotFound)
	})
}

func TestResolutionError(t *testing.T) {
	t.Run("wraps sentinel", func(t *testing.T) {
		err := &resolve.ResolutionError{Name: "a.b", Reason: "no such module"}
		assert.ErrorIs(t, err, resolve.ErrNotFound)
		assert.Contains(t, err.Error(), "a.b")
		assert.Contains(t, err.Error(), "no such module")
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := context.DeadlineExceeded
		err := &resolve.ResolutionError{Name: "a", Reason: "load failed", Err: cause}
		assert.ErrorIs(t, err, resolve.ErrNotFound)
		assert.ErrorIs(t, err, cause)
	})
}
