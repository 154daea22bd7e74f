package simplify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/standardbeagle/varlens/internal/types"
)

func TestSimplifySnapshotOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newGoSimplifier(types.DefaultSimplificationOptions())

	vars := make([]types.Variable, 50)
	for i := range vars {
		vars[i] = types.Variable{Name: "v", Value: `{Name: "Alice", Age: 30}`}
	}
	vars[7].Value = "nil"
	vars[23].Value = "[1, 2, 3]"

	entries, err := s.SimplifySnapshot(context.Background(), vars)
	require.NoError(t, err)
	require.Len(t, entries, len(vars))

	// Results come back in input order regardless of scheduling.
	assert.True(t, entries[7].Simplified.Metadata.IsNil)
	assert.Equal(t, 3, entries[23].Simplified.Metadata.ArrayLength)
	for i, e := range entries {
		require.NotNil(t, e.Simplified, "entry %d", i)
		assert.Equal(t, vars[i].Value, e.Variable.Value, "entry %d", i)
	}
}

func TestSimplifySnapshotWorkerLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newGoSimplifier(types.DefaultSimplificationOptions())
	vars := []types.Variable{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "2"},
		{Name: "c", Value: "3"},
	}

	entries, err := s.SimplifySnapshotN(context.Background(), vars, 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// A zero or negative limit degrades to serial, never panics.
	entries, err = s.SimplifySnapshotN(context.Background(), vars, -5)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestSimplifySnapshotCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newGoSimplifier(types.DefaultSimplificationOptions())
	vars := make([]types.Variable, 100)
	for i := range vars {
		vars[i] = types.Variable{Name: "v", Value: "[1, 2, 3]"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SimplifySnapshotN(ctx, vars, 2)
	require.Error(t, err)
}

func TestSimplifySnapshotEmpty(t *testing.T) {
	s := newGoSimplifier(types.DefaultSimplificationOptions())

	entries, err := s.SimplifySnapshot(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
