package expr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptforge/searchscript/engine"
	"github.com/scriptforge/searchscript/execution/lookup"
	machineTypes "github.com/scriptforge/searchscript/machines/types"
)

func compileString(t *testing.T, e *Engine, source string) *executable {
	t.Helper()

	content, err := e.Compile(io.NopCloser(strings.NewReader(source)))
	require.NoError(t, err)

	exec, ok := content.(*executable)
	require.True(t, ok)
	return exec
}

func TestEngine_Identity(t *testing.T) {
	t.Parallel()

	e, err := NewEngine()
	require.NoError(t, err)

	assert.Equal(t, "expr", e.Name())
	assert.Equal(t, []string{"expr"}, e.Extensions())
	assert.NoError(t, e.Close())
}

func TestEngine_Compile(t *testing.T) {
	t.Parallel()

	e, err := NewEngine()
	require.NoError(t, err)

	t.Run("valid expression compiles", func(t *testing.T) {
		t.Parallel()
		content, err := e.Compile(io.NopCloser(strings.NewReader("1 + 1")))
		require.NoError(t, err)
		assert.Equal(t, "1 + 1", content.GetSource())
		assert.NotNil(t, content.GetByteCode())
	})

	t.Run("invalid expression fails", func(t *testing.T) {
		t.Parallel()
		_, err := e.Compile(io.NopCloser(strings.NewReader("1 +* ]")))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("empty content fails", func(t *testing.T) {
		t.Parallel()
		_, err := e.Compile(io.NopCloser(strings.NewReader("   ")))
		assert.ErrorIs(t, err, ErrContentNil)
	})

	t.Run("nil reader fails", func(t *testing.T) {
		t.Parallel()
		_, err := e.Compile(nil)
		assert.ErrorIs(t, err, ErrContentNil)
	})
}

func TestEngine_Execute(t *testing.T) {
	t.Parallel()

	e, err := NewEngine()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("constant expression", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "1 + 1")

		result, err := e.Execute(ctx, content, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, result)
	})

	t.Run("bound variable", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "x * 2")

		result, err := e.Execute(ctx, content, map[string]any{"x": 5})
		require.NoError(t, err)
		assert.Equal(t, 10, result)
	})

	t.Run("undefined variable fails at evaluation", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "missing * 2")

		_, err := e.Execute(ctx, content, map[string]any{})
		assert.Error(t, err)
	})

	t.Run("nil content fails", func(t *testing.T) {
		t.Parallel()
		_, err := e.Execute(ctx, nil, nil)
		assert.ErrorIs(t, err, engine.ErrContentNil)
	})
}

func TestEngine_Builtins(t *testing.T) {
	t.Parallel()

	e, err := NewEngine()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("math functions", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "sqrt(16.0) + pow(2.0, 3.0)")

		result, err := e.Execute(ctx, content, nil)
		require.NoError(t, err)
		assert.Equal(t, 12.0, result)
	})

	t.Run("min and max", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "max(1.0, 2.0) + min(3.0, 4.0)")

		result, err := e.Execute(ctx, content, nil)
		require.NoError(t, err)
		assert.Equal(t, 5.0, result)
	})

	t.Run("time alias returns milliseconds", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "time()")

		result, err := e.Execute(ctx, content, nil)
		require.NoError(t, err)
		millis, ok := result.(int64)
		require.True(t, ok)
		assert.Positive(t, millis)
	})

	t.Run("bound variables override builtins", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "signum")

		result, err := e.Execute(ctx, content, map[string]any{"signum": 42})
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("custom builtin via option", func(t *testing.T) {
		t.Parallel()
		custom, err := NewEngine(WithBuiltins(map[string]any{
			"double": func(x float64) float64 { return x * 2 },
		}))
		require.NoError(t, err)

		content := compileString(t, custom, "double(21.0)")
		result, err := custom.Execute(ctx, content, nil)
		require.NoError(t, err)
		assert.Equal(t, 42.0, result)
	})
}

func TestEngine_Executable(t *testing.T) {
	t.Parallel()

	e, err := NewEngine()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("run with initial vars", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "x * 2")

		exe, err := e.Executable(content, map[string]any{"x": 5})
		require.NoError(t, err)

		result, err := exe.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, result)
	})

	t.Run("nil vars treated as empty", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "1 + 1")

		exe, err := e.Executable(content, nil)
		require.NoError(t, err)

		result, err := exe.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result)
	})

	t.Run("SetNextVar rebinds between runs", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "x * 2")

		exe, err := e.Executable(content, map[string]any{"x": 1})
		require.NoError(t, err)

		result, err := exe.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result)

		exe.SetNextVar("x", 21)
		result, err = exe.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("concurrent contexts share compiled handle", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "1 + 1")

		var wg sync.WaitGroup
		for range 32 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				exe, err := e.Executable(content, nil)
				assert.NoError(t, err)

				for range 10 {
					result, err := exe.Run(ctx)
					assert.NoError(t, err)
					assert.Equal(t, 2, result)
				}
			}()
		}
		wg.Wait()
	})
}

func TestEngine_Search(t *testing.T) {
	t.Parallel()

	e, err := NewEngine()
	require.NoError(t, err)
	ctx := context.Background()

	docs := []map[string]any{
		{"price": 10.0},
		{"price": 20.0},
		{"price": 30.0},
	}

	t.Run("document advance rebinds field lookups", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, `doc["price"] * 2`)

		search, err := e.Search(content, lookup.NewMemoryLookup(docs), nil)
		require.NoError(t, err)

		ds, err := search.ForSegment(0)
		require.NoError(t, err)

		for i, want := range []float64{20.0, 40.0, 60.0} {
			ds.SetDocument(i)
			result, err := ds.RunAsDouble(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, result)
		}
	})

	t.Run("score binding", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, `_score * doc["price"]`)

		search, err := e.Search(content, lookup.NewMemoryLookup(docs), nil)
		require.NoError(t, err)

		ds, err := search.ForSegment(0)
		require.NoError(t, err)
		ds.SetScorer(lookup.ScorerFunc(func() (float64, error) {
			return 0.5, nil
		}))

		ds.SetDocument(1)
		result, err := ds.RunAsDouble(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10.0, result)
	})

	t.Run("score failure is fatal", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "_score")

		search, err := e.Search(content, lookup.NewMemoryLookup(docs), nil)
		require.NoError(t, err)

		ds, err := search.ForSegment(0)
		require.NoError(t, err)
		ds.SetScorer(lookup.ScorerFunc(func() (float64, error) {
			return 0, errors.New("segment read failed")
		}))

		ds.SetDocument(0)
		_, err = ds.Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, engine.ErrScoreUnavailable)
	})

	t.Run("source replacement", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, `_source["price"]`)

		search, err := e.Search(content, lookup.NewMemoryLookup(docs), nil)
		require.NoError(t, err)

		ds, err := search.ForSegment(0)
		require.NoError(t, err)
		ds.SetDocument(0)

		result, err := ds.RunAsDouble(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10.0, result)

		ds.SetSource(map[string]any{"price": 99.0})
		result, err = ds.RunAsDouble(ctx)
		require.NoError(t, err)
		assert.Equal(t, 99.0, result)
	})

	t.Run("coerced runs", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, `doc["price"] + 0.5`)

		search, err := e.Search(content, lookup.NewMemoryLookup(docs), nil)
		require.NoError(t, err)

		ds, err := search.ForSegment(0)
		require.NoError(t, err)
		ds.SetDocument(0)

		f, err := ds.RunAsFloat(ctx)
		require.NoError(t, err)
		assert.Equal(t, float32(10.5), f)

		l, err := ds.RunAsLong(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10), l)

		d, err := ds.RunAsDouble(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10.5, d)
	})

	t.Run("vars and fields combine", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, `doc["price"] * factor`)

		search, err := e.Search(content, lookup.NewMemoryLookup(docs), map[string]any{"factor": 3.0})
		require.NoError(t, err)

		ds, err := search.ForSegment(0)
		require.NoError(t, err)
		ds.SetDocument(2)

		result, err := ds.RunAsDouble(ctx)
		require.NoError(t, err)
		assert.Equal(t, 90.0, result)
	})

	t.Run("segments do not share state", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, `doc["price"]`)

		segmented := lookup.NewSegmentedMemoryLookup([][]map[string]any{
			{{"price": 1.0}},
			{{"price": 2.0}},
		})

		search, err := e.Search(content, segmented, nil)
		require.NoError(t, err)

		ds0, err := search.ForSegment(0)
		require.NoError(t, err)
		ds1, err := search.ForSegment(1)
		require.NoError(t, err)

		ds0.SetDocument(0)
		ds1.SetDocument(0)

		r0, err := ds0.RunAsDouble(ctx)
		require.NoError(t, err)
		r1, err := ds1.RunAsDouble(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1.0, r0)
		assert.Equal(t, 2.0, r1)
	})

	t.Run("nil lookup fails", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "1")
		_, err := e.Search(content, nil, nil)
		assert.Error(t, err)
	})

	t.Run("out of range segment fails", func(t *testing.T) {
		t.Parallel()
		content := compileString(t, e, "1")

		search, err := e.Search(content, lookup.NewMemoryLookup(docs), nil)
		require.NoError(t, err)

		_, err = search.ForSegment(5)
		assert.Error(t, err)
	})
}

func TestEngine_Unwrap(t *testing.T) {
	t.Parallel()

	e, err := NewEngine()
	require.NoError(t, err)

	for _, v := range []any{nil, 42, "str", 1.5, map[string]any{"a": 1}} {
		assert.Equal(t, v, e.Unwrap(v), fmt.Sprintf("Unwrap(%v) should be identity", v))
	}
}

func TestEngine_BytecodeMismatch(t *testing.T) {
	t.Parallel()

	e, err := NewEngine()
	require.NoError(t, err)

	_, err = e.Executable(&badContent{}, nil)
	assert.ErrorIs(t, err, engine.ErrBytecodeMismatch)
}

type badContent struct{}

func (b *badContent) GetSource() string                { return "" }
func (b *badContent) GetByteCode() any                 { return "not a program" }
func (b *badContent) GetMachineType() machineTypes.Type { return machineTypes.Expr }
