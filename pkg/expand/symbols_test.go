package expand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rstexpand/pkg/expand"
	"github.com/yaklabco/rstexpand/pkg/rst"
)

func TestBuildIndex(t *testing.T) {
	t.Run("qualifies names with surrounding context", func(t *testing.T) {
		buf := rst.NewBuffer([]string{
			".. module:: demo",
			"",
			".. autofunction:: alpha",
			"",
			".. autoclass:: Widget(size)",
			"",
			"   .. automethod:: resize",
		})

		symbols := expand.BuildIndex(buf)
		require.Len(t, symbols, 4)
		assert.Equal(t, expand.Symbol{Name: "demo", Line: 1}, symbols[0])
		assert.Equal(t, expand.Symbol{Name: "demo.alpha", Line: 3}, symbols[1])
		assert.Equal(t, expand.Symbol{Name: "demo.Widget", Line: 5}, symbols[2])
		assert.Equal(t, expand.Symbol{Name: "demo.Widget.resize", Line: 7}, symbols[3])
	})

	t.Run("currentmodule switches qualification", func(t *testing.T) {
		buf := rst.NewBuffer([]string{
			".. currentmodule:: os",
			"",
			".. function:: getcwd()",
			"",
			".. currentmodule:: sys",
			"",
			".. function:: exit()",
		})

		symbols := expand.BuildIndex(buf)
		require.Len(t, symbols, 4)
		assert.Equal(t, "os.getcwd", symbols[1].Name)
		assert.Equal(t, "sys.exit", symbols[3].Name)
	})

	t.Run("functions after a class stay module level", func(t *testing.T) {
		buf := rst.NewBuffer([]string{
			".. module:: demo",
			"",
			".. class:: Widget",
			"",
			"   .. method:: resize",
			"",
			".. function:: helper()",
		})

		symbols := expand.BuildIndex(buf)
		require.Len(t, symbols, 4)
		assert.Equal(t, "demo.Widget.resize", symbols[2].Name)
		assert.Equal(t, "demo.helper", symbols[3].Name)
	})

	t.Run("module declarations are recorded verbatim", func(t *testing.T) {
		buf := rst.NewBuffer([]string{
			".. module:: first",
			"",
			".. module:: second",
		})

		symbols := expand.BuildIndex(buf)
		require.Len(t, symbols, 2)
		assert.Equal(t, "first", symbols[0].Name)
		assert.Equal(t, "second", symbols[1].Name)
	})

	t.Run("duplicates keep the first position", func(t *testing.T) {
		buf := rst.NewBuffer([]string{
			".. autofunction:: demo.alpha",
			"",
			".. autofunction:: demo.alpha",
		})

		symbols := expand.BuildIndex(buf)
		require.Len(t, symbols, 1)
		assert.Equal(t, 1, symbols[0].Line)
	})

	t.Run("class signature arguments are stripped", func(t *testing.T) {
		buf := rst.NewBuffer([]string{
			".. class:: Widget(size, color)",
		})

		symbols := expand.BuildIndex(buf)
		require.Len(t, symbols, 1)
		assert.Equal(t, "Widget", symbols[0].Name)
	})

	t.Run("non-symbol directives are ignored", func(t *testing.T) {
		buf := rst.NewBuffer([]string{
			".. image:: logo.png",
			"",
			".. note:: remember this",
			"",
			".. envvar:: RSTEXPAND_CONFIG",
		})

		symbols := expand.BuildIndex(buf)
		require.Len(t, symbols, 1)
		assert.Equal(t, "RSTEXPAND_CONFIG", symbols[0].Name)
	})

	t.Run("markers without arguments are skipped", func(t *testing.T) {
		buf := rst.NewBuffer([]string{
			".. autosummary::",
			"",
			"   demo.alpha",
		})

		assert.Empty(t, expand.BuildIndex(buf))
	})

	t.Run("empty buffer", func(t *testing.T) {
		assert.Empty(t, expand.BuildIndex(rst.NewBuffer(nil)))
	})
}

func TestDiagnosticString(t *testing.T) {
	diag := expand.Diagnostic{
		Kind:    expand.KindResolutionError,
		Line:    14,
		Message: `cannot resolve "missing.name"`,
	}
	assert.Equal(t, `line 14: resolution-error: cannot resolve "missing.name"`, diag.String())
}
