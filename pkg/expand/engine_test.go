package expand_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rstexpand/pkg/expand"
	"github.com/yaklabco/rstexpand/pkg/resolve"
	"github.com/yaklabco/rstexpand/pkg/rst"
)

const fixtureIndex = `
objects:
  - name: demo
    kind: module
    doc: Demo module for expansion tests.
    members:
      - name: alpha
        kind: function
        signature: alpha(x)
        doc: Compute alpha.
  - name: demo.alpha
    kind: function
    signature: alpha(x)
    doc: |
      Compute alpha.

      Longer detail paragraph.
  - name: demo.Widget
    kind: class
    signature: Widget(size)
    doc: A configurable widget.
    members:
      - name: resize
        kind: function
        signature: resize(n)
        doc: Resize the widget.
  - name: demo.nested
    kind: function
    signature: nested()
    doc: |
      Wraps a helper.

      .. autofunction:: demo.alpha
  - name: demo.deep
    kind: function
    signature: deep()
    doc: |
      Outer wrapper.

      .. autofunction:: demo.nested
  - name: loop.a
    kind: function
    signature: a()
    doc: |
      First half of a cycle.

      .. autofunction:: loop.b
  - name: loop.b
    kind: function
    signature: b()
    doc: |
      Second half of a cycle.

      .. autofunction:: loop.a
  - name: os.getcwd
    kind: function
    signature: getcwd()
    doc: Return the current working directory.
`

func fixtureEngine(t *testing.T, opts expand.Options) *expand.Engine {
	t.Helper()
	res, err := resolve.ParseIndex([]byte(fixtureIndex))
	require.NoError(t, err)
	return expand.NewEngine(res, opts)
}

func expandLines(t *testing.T, engine *expand.Engine, lines ...string) *expand.Result {
	t.Helper()
	result, err := engine.Expand(context.Background(), rst.NewBuffer(lines))
	require.NoError(t, err)
	return result
}

func TestExpandFunction(t *testing.T) {
	engine := fixtureEngine(t, expand.Options{})

	result := expandLines(t, engine,
		"Intro paragraph.",
		"",
		".. autofunction:: demo.alpha",
		"",
		"Outro paragraph.",
	)

	joined := strings.Join(result.Lines, "\n")
	assert.NotContains(t, joined, "autofunction")
	assert.Contains(t, joined, "demo.alpha(x)")
	assert.Contains(t, joined, "Compute alpha.")
	assert.Contains(t, joined, "Longer detail paragraph.")
	assert.Contains(t, joined, "Intro paragraph.")
	assert.Contains(t, joined, "Outro paragraph.")
	assert.Equal(t, 1, result.Blocks)
	assert.Empty(t, result.Diagnostics)
}

func TestExpandPreservesIndentation(t *testing.T) {
	engine := fixtureEngine(t, expand.Options{})

	result := expandLines(t, engine,
		"   .. autofunction:: demo.alpha",
	)

	require.NotEmpty(t, result.Lines)
	assert.Equal(t, "   demo.alpha(x)", result.Lines[0])
	for _, line := range result.Lines {
		if line == "" {
			continue
		}
		assert.True(t, strings.HasPrefix(line, "   "), "line %q lost indentation", line)
	}
}

func TestExpandClassMembers(t *testing.T) {
	engine := fixtureEngine(t, expand.Options{})

	t.Run("without members option", func(t *testing.T) {
		result := expandLines(t, engine, ".. autoclass:: demo.Widget")
		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "demo.Widget(size)")
		assert.NotContains(t, joined, "resize(n)")
	})

	t.Run("with members option", func(t *testing.T) {
		result := expandLines(t, engine,
			".. autoclass:: demo.Widget",
			"   :members:",
		)
		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "resize(n)")
		assert.Contains(t, joined, "Resize the widget.")
	})
}

func TestExpandAutosummary(t *testing.T) {
	engine := fixtureEngine(t, expand.Options{})

	t.Run("one line per name in input order", func(t *testing.T) {
		result := expandLines(t, engine,
			".. autosummary::",
			"",
			"   demo.alpha",
			"   os.getcwd",
		)
		require.Len(t, result.Lines, 2)
		assert.Equal(t, "demo.alpha -- Compute alpha.", result.Lines[0])
		assert.Equal(t, "os.getcwd -- Return the current working directory.", result.Lines[1])
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("failed name keeps its original form", func(t *testing.T) {
		result := expandLines(t, engine,
			".. autosummary::",
			"",
			"   demo.alpha",
			"   missing.name",
		)
		require.Len(t, result.Lines, 2)
		assert.Equal(t, "missing.name", result.Lines[1])
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, expand.KindResolutionError, result.Diagnostics[0].Kind)
		assert.Equal(t, "missing.name", result.Diagnostics[0].Name)
		assert.Equal(t, expand.SeverityWarning, result.Diagnostics[0].Severity)
	})

	t.Run("marker argument used when body is empty", func(t *testing.T) {
		result := expandLines(t, engine, ".. autosummary:: demo.alpha")
		require.Len(t, result.Lines, 1)
		assert.Equal(t, "demo.alpha -- Compute alpha.", result.Lines[0])
	})

	t.Run("indented block keeps indentation", func(t *testing.T) {
		result := expandLines(t, engine,
			"  .. autosummary::",
			"",
			"     demo.alpha",
		)
		require.Len(t, result.Lines, 1)
		assert.Equal(t, "  demo.alpha -- Compute alpha.", result.Lines[0])
	})
}

func TestExpandContextTracking(t *testing.T) {
	engine := fixtureEngine(t, expand.Options{})

	t.Run("currentmodule qualifies bare names", func(t *testing.T) {
		result := expandLines(t, engine,
			".. currentmodule:: os",
			"",
			".. autofunction:: getcwd",
		)
		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "os.getcwd()")
		assert.Contains(t, joined, ".. currentmodule:: os", "context directives pass through")
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("class context qualifies member names", func(t *testing.T) {
		result := expandLines(t, engine,
			".. class:: demo.Widget(size)",
			"",
			".. autofunction:: resize",
		)
		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "Resize the widget.")
		assert.Empty(t, result.Diagnostics)
	})

	t.Run("currentmodule clears class context", func(t *testing.T) {
		result := expandLines(t, engine,
			".. class:: Widget",
			"",
			".. currentmodule:: demo",
			"",
			".. autofunction:: alpha",
		)
		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "Compute alpha.")
		assert.Empty(t, result.Diagnostics)
	})
}

func TestExpandLenientFailures(t *testing.T) {
	engine := fixtureEngine(t, expand.Options{})

	t.Run("unresolvable block stays untouched", func(t *testing.T) {
		result := expandLines(t, engine,
			".. autofunction:: missing.name",
			"",
			"After.",
		)
		assert.Contains(t, result.Lines, ".. autofunction:: missing.name")
		assert.Contains(t, result.Lines, "After.")
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, expand.KindResolutionError, result.Diagnostics[0].Kind)
		assert.Equal(t, 1, result.Diagnostics[0].Line)
		assert.Equal(t, 0, result.Blocks)
	})

	t.Run("malformed directive is skipped", func(t *testing.T) {
		result := expandLines(t, engine,
			".. autofunction::",
			"",
			".. autofunction:: demo.alpha",
		)
		assert.Contains(t, result.Lines, ".. autofunction::")
		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "Compute alpha.", "later blocks still expand")
		require.NotEmpty(t, result.Diagnostics)
		assert.Equal(t, expand.KindMalformedDirective, result.Diagnostics[0].Kind)
	})

	t.Run("failures do not stop later expansion", func(t *testing.T) {
		result := expandLines(t, engine,
			".. autofunction:: nope.first",
			"",
			".. autofunction:: demo.alpha",
			"",
			".. autofunction:: nope.second",
		)
		assert.Len(t, result.Diagnostics, 2)
		assert.Equal(t, 1, result.Blocks)
	})
}

func TestExpandStrictPolicy(t *testing.T) {
	engine := fixtureEngine(t, expand.Options{Policy: expand.PolicyStrict})

	t.Run("aborts on first failure", func(t *testing.T) {
		result, err := engine.Expand(context.Background(), rst.NewBuffer([]string{
			".. autofunction:: missing.name",
			"",
			".. autofunction:: demo.alpha",
		}))
		require.Error(t, err)
		require.NotNil(t, result)
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, expand.SeverityError, result.Diagnostics[0].Severity)
		assert.True(t, result.HasErrors())
		joined := strings.Join(result.Lines, "\n")
		assert.NotContains(t, joined, "Compute alpha.", "expansion stops at the failure")
	})

	t.Run("clean document succeeds", func(t *testing.T) {
		result, err := engine.Expand(context.Background(), rst.NewBuffer([]string{
			".. autofunction:: demo.alpha",
		}))
		require.NoError(t, err)
		assert.Empty(t, result.Diagnostics)
	})
}

func TestExpandRecursion(t *testing.T) {
	t.Run("nested directive expands one level by default", func(t *testing.T) {
		engine := fixtureEngine(t, expand.Options{})
		result := expandLines(t, engine, ".. autofunction:: demo.nested")

		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "Wraps a helper.")
		assert.Contains(t, joined, "Compute alpha.", "one nested level expands")
		assert.NotContains(t, joined, ".. autofunction::")
	})

	t.Run("depth limit truncates deeper nesting", func(t *testing.T) {
		engine := fixtureEngine(t, expand.Options{})
		result := expandLines(t, engine, ".. autofunction:: demo.deep")

		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "Outer wrapper.")
		assert.Contains(t, joined, "Wraps a helper.")
		assert.Contains(t, joined, ".. expansion truncated:")

		var kinds []expand.Kind
		for _, d := range result.Diagnostics {
			kinds = append(kinds, d.Kind)
		}
		assert.Contains(t, kinds, expand.KindRecursionLimit)
	})

	t.Run("raised max depth expands further", func(t *testing.T) {
		engine := fixtureEngine(t, expand.Options{MaxDepth: 3})
		result := expandLines(t, engine, ".. autofunction:: demo.deep")

		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "Longer detail paragraph.", "innermost doc reached")
		for _, d := range result.Diagnostics {
			assert.NotEqual(t, expand.KindRecursionLimit, d.Kind)
		}
	})

	t.Run("circular reference is cut", func(t *testing.T) {
		engine := fixtureEngine(t, expand.Options{MaxDepth: 10})
		result := expandLines(t, engine, ".. autofunction:: loop.a")

		joined := strings.Join(result.Lines, "\n")
		assert.Contains(t, joined, "First half of a cycle.")
		assert.Contains(t, joined, "Second half of a cycle.")
		assert.Contains(t, joined, "circular reference to loop.a")

		var kinds []expand.Kind
		for _, d := range result.Diagnostics {
			kinds = append(kinds, d.Kind)
		}
		assert.Contains(t, kinds, expand.KindCircularReference)
	})

	t.Run("sibling directives are not a cycle", func(t *testing.T) {
		engine := fixtureEngine(t, expand.Options{})
		result := expandLines(t, engine,
			".. autofunction:: demo.alpha",
			"",
			".. autofunction:: demo.alpha",
		)
		assert.Equal(t, 2, result.Blocks)
		for _, d := range result.Diagnostics {
			assert.NotEqual(t, expand.KindCircularReference, d.Kind)
		}
	})
}

func TestExpandIdempotence(t *testing.T) {
	engine := fixtureEngine(t, expand.Options{})

	documents := [][]string{
		{".. autofunction:: demo.alpha"},
		{".. autoclass:: demo.Widget", "   :members:"},
		{".. autosummary::", "", "   demo.alpha", "   os.getcwd"},
		{".. autofunction:: demo.deep"},
		{"Plain text only.", "", "No directives here."},
	}

	for _, doc := range documents {
		first := expandLines(t, engine, doc...)
		second := expandLines(t, engine, first.Lines...)
		assert.Equal(t, first.Lines, second.Lines, "document %q not idempotent", strings.Join(doc, "\\n"))
		assert.Equal(t, 0, second.Blocks, "second pass must expand nothing")
	}
}

func TestExpandRoundTrip(t *testing.T) {
	// A document with no auto directives passes through unchanged.
	engine := fixtureEngine(t, expand.Options{})

	lines := []string{
		"Title",
		"=====",
		"",
		".. image:: logo.png",
		"   :width: 100",
		"",
		":field: value",
		"",
		"Prose with ``literals`` and trailing words.",
	}
	result := expandLines(t, engine, lines...)
	assert.Equal(t, lines, result.Lines)
	assert.Equal(t, 0, result.Blocks)
	assert.Empty(t, result.Diagnostics)
}

func TestExpandCancellation(t *testing.T) {
	engine := fixtureEngine(t, expand.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Expand(ctx, rst.NewBuffer([]string{".. autofunction:: demo.alpha"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPolicyIsValid(t *testing.T) {
	assert.True(t, expand.PolicyLenient.IsValid())
	assert.True(t, expand.PolicyStrict.IsValid())
	assert.True(t, expand.Policy("").IsValid())
	assert.False(t, expand.Policy("panic").IsValid())
}
