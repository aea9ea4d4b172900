package rst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rstexpand/pkg/rst"
)

func delimit(t *testing.T, lines []string, start int) *rst.DirectiveBlock {
	t.Helper()
	blk, err := rst.Delimit(rst.NewBuffer(lines), start)
	require.NoError(t, err)
	return blk
}

func TestDelimit(t *testing.T) {
	t.Run("marker only", func(t *testing.T) {
		blk := delimit(t, []string{
			".. autofunction:: os.getcwd",
			"next paragraph",
		}, 0)
		assert.Equal(t, 0, blk.Start)
		assert.Equal(t, 1, blk.End)
		assert.Equal(t, "autofunction", blk.Name)
		assert.Equal(t, "os.getcwd", blk.Arg)
	})

	t.Run("indented body belongs to block", func(t *testing.T) {
		blk := delimit(t, []string{
			".. autoclass:: Sample",
			"   :members:",
			"",
			"   extra body line",
			"unindented closes the block",
		}, 0)
		assert.Equal(t, 4, blk.End)
		assert.True(t, blk.HasOption("members"))
	})

	t.Run("option with value", func(t *testing.T) {
		blk := delimit(t, []string{
			".. autosummary::",
			"   :toctree: generated",
			"",
			"   os.getcwd",
		}, 0)
		value, ok := blk.Option("toctree")
		require.True(t, ok)
		assert.Equal(t, "generated", value)
		assert.Equal(t, []string{"os.getcwd"}, blk.Args)
	})

	t.Run("autosummary body lines become args", func(t *testing.T) {
		blk := delimit(t, []string{
			".. autosummary::",
			"",
			"   os.getcwd",
			"   os.path.join",
			"   sample.Reader",
		}, 0)
		assert.Equal(t, []string{"os.getcwd", "os.path.join", "sample.Reader"}, blk.Args)
	})

	t.Run("trailing blank lines stay outside the block", func(t *testing.T) {
		blk := delimit(t, []string{
			".. autofunction:: f",
			"   body",
			"",
			"",
			"after",
		}, 0)
		assert.Equal(t, 2, blk.End)
	})

	t.Run("equal indentation closes the block", func(t *testing.T) {
		blk := delimit(t, []string{
			"   .. autofunction:: f",
			"      body",
			"   sibling at marker indent",
		}, 0)
		assert.Equal(t, 2, blk.End)
		assert.Equal(t, 3, blk.Indent)
	})

	t.Run("partial dedent closes the block", func(t *testing.T) {
		blk := delimit(t, []string{
			".. autoclass:: C",
			"      deep body",
			"   shallower but still right of the marker",
		}, 0)
		assert.Equal(t, 2, blk.End)
	})

	t.Run("block at end of buffer", func(t *testing.T) {
		blk := delimit(t, []string{
			"intro",
			".. automodule:: pkg",
			"   :members:",
		}, 1)
		assert.Equal(t, 3, blk.End)
		assert.Equal(t, 2, blk.Len())
	})

	t.Run("non-option body line ends the option list", func(t *testing.T) {
		blk := delimit(t, []string{
			".. autosummary::",
			"   :toctree: generated",
			"   os.getcwd",
			"   :members:",
		}, 0)
		assert.True(t, blk.HasOption("toctree"))
		assert.False(t, blk.HasOption("members"))
		assert.Equal(t, []string{"os.getcwd", ":members:"}, blk.Args)
	})
}

func TestDelimitMalformed(t *testing.T) {
	t.Run("auto directive without argument", func(t *testing.T) {
		_, err := rst.Delimit(rst.NewBuffer([]string{".. autofunction::"}), 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, rst.ErrMalformed)
	})

	t.Run("autosummary without argument is fine", func(t *testing.T) {
		_, err := rst.Delimit(rst.NewBuffer([]string{".. autosummary::"}), 0)
		assert.NoError(t, err)
	})

	t.Run("start is not a marker", func(t *testing.T) {
		_, err := rst.Delimit(rst.NewBuffer([]string{"plain text"}), 0)
		assert.ErrorIs(t, err, rst.ErrMalformed)
	})

	t.Run("start out of range", func(t *testing.T) {
		_, err := rst.Delimit(rst.NewBuffer([]string{"a"}), 5)
		assert.ErrorIs(t, err, rst.ErrMalformed)
	})
}
