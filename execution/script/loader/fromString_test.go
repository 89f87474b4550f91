package loader

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromString("1 + 1")
		require.NoError(t, err)

		reader, err := l.GetReader()
		require.NoError(t, err)
		defer reader.Close()

		content, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "1 + 1", string(content))
	})

	t.Run("content is trimmed", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromString("  x * 2\n")
		require.NoError(t, err)

		reader, err := l.GetReader()
		require.NoError(t, err)
		defer reader.Close()

		content, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "x * 2", string(content))
	})

	t.Run("empty content fails", func(t *testing.T) {
		t.Parallel()
		_, err := NewFromString("   \n\t")
		assert.ErrorIs(t, err, ErrScriptNotAvailable)
	})

	t.Run("identical scripts share a source URL", func(t *testing.T) {
		t.Parallel()
		a, err := NewFromString("doc['price'] * 2")
		require.NoError(t, err)
		b, err := NewFromString("doc['price'] * 2")
		require.NoError(t, err)

		assert.Equal(t, a.GetSourceURL().String(), b.GetSourceURL().String())
		assert.Equal(t, "string", a.GetSourceURL().Scheme)
	})

	t.Run("multiple readers", func(t *testing.T) {
		t.Parallel()
		l, err := NewFromString("1")
		require.NoError(t, err)

		for range 3 {
			reader, err := l.GetReader()
			require.NoError(t, err)
			content, err := io.ReadAll(reader)
			require.NoError(t, err)
			require.NoError(t, reader.Close())
			assert.Equal(t, "1", string(content))
		}
	})
}
