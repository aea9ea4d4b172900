package resolve_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/rstexpand/pkg/resolve"
)

const sampleIndex = `
objects:
  - name: os
    kind: module
    doc: |
      OS routines for NT or Posix depending on what system we're on.
    members:
      - name: getcwd
        kind: function
        signature: getcwd()
        doc: Return a string representing the current working directory.
      - name: _exit
        kind: function
        doc: Exit the process without cleanup.
  - name: os.path
    kind: module
    doc: Common pathname manipulations.
    members:
      - name: join
        kind: function
        signature: join(path, *paths)
        doc: Join two or more pathname components.
  - name: sample.Reader
    kind: class
    signature: Reader(source)
    doc: |
      Incremental reader over a byte source.

      Longer description paragraph.
    members:
      - name: read
        kind: function
        signature: read(n)
        doc: Read up to n bytes.
      - name: close
        kind: function
        signature: close()
        doc: Release the underlying source.
`

func sampleResolver(t *testing.T) *resolve.IndexResolver {
	t.Helper()
	res, err := resolve.ParseIndex([]byte(sampleIndex))
	require.NoError(t, err)
	return res
}

func TestIndexResolve(t *testing.T) {
	res := sampleResolver(t)
	ctx := context.Background()

	t.Run("top-level module", func(t *testing.T) {
		obj, err := res.Resolve(ctx, "os")
		require.NoError(t, err)
		assert.Equal(t, "os", obj.Name)
		assert.Equal(t, resolve.KindModule, obj.Kind)
		assert.Contains(t, obj.Doc, "OS routines")
	})

	t.Run("member via attribute walk", func(t *testing.T) {
		obj, err := res.Resolve(ctx, "os.getcwd")
		require.NoError(t, err)
		assert.Equal(t, "os.getcwd", obj.Name)
		assert.Equal(t, resolve.KindFunction, obj.Kind)
		assert.Equal(t, "getcwd()", obj.Signature)
	})

	t.Run("longest prefix wins", func(t *testing.T) {
		// os.path is registered directly; its member must be found via
		// the os.path entry, not by walking os.
		obj, err := res.Resolve(ctx, "os.path.join")
		require.NoError(t, err)
		assert.Equal(t, "join(path, *paths)", obj.Signature)
	})

	t.Run("class with members", func(t *testing.T) {
		obj, err := res.Resolve(ctx, "sample.Reader")
		require.NoError(t, err)
		assert.Equal(t, resolve.KindClass, obj.Kind)
		require.Len(t, obj.Members, 2)
		assert.Equal(t, "read", obj.Members[0].Name)
		assert.Equal(t, "close", obj.Members[1].Name)
	})

	t.Run("underscore members are filtered", func(t *testing.T) {
		obj, err := res.Resolve(ctx, "os")
		require.NoError(t, err)
		for _, m := range obj.Members {
			assert.NotEqual(t, "_exit", m.Name)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := res.Resolve(ctx, "nonexistent.thing")
		require.Error(t, err)
		assert.ErrorIs(t, err, resolve.ErrNotFound)
	})

	t.Run("unknown member of known prefix", func(t *testing.T) {
		_, err := res.Resolve(ctx, "os.nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, resolve.ErrNotFound)
		assert.Contains(t, err.Error(), "os")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := res.Resolve(ctx, "")
		assert.ErrorIs(t, err, resolve.ErrNotFound)
	})
}

func TestLoadIndex(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.yml")
		require.NoError(t, os.WriteFile(path, []byte(sampleIndex), 0o644))

		res, err := resolve.LoadIndex(path)
		require.NoError(t, err)

		_, err = res.Resolve(context.Background(), "os.getcwd")
		assert.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := resolve.LoadIndex(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})
}

func TestParseIndexErrors(t *testing.T) {
	t.Run("invalid YAML", func(t *testing.T) {
		_, err := resolve.ParseIndex([]byte("objects: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("entry without name", func(t *testing.T) {
		_, err := resolve.ParseIndex([]byte("objects:\n  - kind: function\n"))
		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := resolve.ParseIndex([]byte("objects:\n  - name: x\n    kind: gadget\n"))
		assert.Error(t, err)
	})
}

func TestDedupMembers(t *testing.T) {
	members := []resolve.Member{
		{Name: "read", Doc: "first"},
		{Name: "close"},
		{Name: "read", Doc: "shadowed"},
	}
	out := resolve.DedupMembers(members)
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Doc)
	assert.Equal(t, "close", out[1].Name)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", resolve.FirstLine("one\ntwo"))
	assert.Equal(t, "whole", resolve.FirstLine("whole"))
	assert.Equal(t, "", resolve.FirstLine(""))
}
