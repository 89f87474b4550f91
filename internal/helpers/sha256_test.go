package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256(t *testing.T) {
	t.Parallel()

	t.Run("known digest", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
			SHA256("hello"))
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, SHA256("doc['price'] * 2"), SHA256("doc['price'] * 2"))
		assert.NotEqual(t, SHA256("a"), SHA256("b"))
	})

	t.Run("bytes and string agree", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, SHA256("input"), SHA256Bytes([]byte("input")))
	})
}

func TestSHA256Reader(t *testing.T) {
	t.Parallel()

	got, err := SHA256Reader(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, SHA256("hello"), got)
}
