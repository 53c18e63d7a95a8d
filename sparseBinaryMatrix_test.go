package htm

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSparseGetSet(t *testing.T) {
	sm := NewSparseBinaryMatrix(10, 10)
	sm.Set(2, 4, true)
	sm.Set(6, 5, true)
	sm.Set(7, 5, false)

	assert.True(t, sm.Get(2, 4))
	assert.True(t, sm.Get(6, 5))
	assert.False(t, sm.Get(7, 5))

	sm.Set(2, 4, false)
	assert.False(t, sm.Get(2, 4))
	assert.Equal(t, 1, sm.TotalNonZeroCount())
}

func TestSparseReplaceRowByIndices(t *testing.T) {
	sm := NewSparseBinaryMatrix(10, 10)

	sm.ReplaceRowByIndices(4, []int{3, 9, 6})
	assert.Equal(t, []int{3, 6, 9}, sm.GetRowIndices(4))

	sm.ReplaceRowByIndices(4, []int{4})
	assert.Equal(t, []int{4}, sm.GetRowIndices(4))
	assert.False(t, sm.Get(4, 3))
}

func TestSparseFillRow(t *testing.T) {
	sm := NewSparseBinaryMatrix(4, 3)
	sm.FillRow(2, true)
	assert.Equal(t, []int{0, 1, 2}, sm.GetRowIndices(2))

	sm.FillRow(2, false)
	assert.Equal(t, 0, sm.TotalNonZeroCount())
}

func TestSparseEntriesOrdered(t *testing.T) {
	sm := NewSparseBinaryMatrix(5, 5)
	sm.Set(3, 1, true)
	sm.Set(0, 4, true)
	sm.Set(0, 2, true)

	expected := []SparseEntry{{0, 2}, {0, 4}, {3, 1}}
	assert.Equal(t, expected, sm.Entries())
	assert.Equal(t, []int{0, 3}, sm.NonZeroRows())
	assert.Equal(t, 2, sm.TotalTrueRows())
}

func TestSparseOr(t *testing.T) {
	a := NewSparseBinaryMatrix(3, 3)
	a.Set(0, 0, true)
	b := NewSparseBinaryMatrix(3, 3)
	b.Set(0, 1, true)
	b.Set(2, 2, true)

	result := a.Or(b)
	assert.True(t, result.Get(0, 0))
	assert.True(t, result.Get(0, 1))
	assert.True(t, result.Get(2, 2))
	assert.Equal(t, 3, result.TotalNonZeroCount())

	// inputs untouched
	assert.Equal(t, 1, a.TotalNonZeroCount())
	assert.Equal(t, 2, b.TotalNonZeroCount())
}

func TestSparseFlatten(t *testing.T) {
	sm := NewSparseBinaryMatrix(2, 3)
	sm.Set(0, 1, true)
	sm.Set(1, 2, true)

	expected := []bool{false, true, false, false, false, true}
	assert.Equal(t, expected, sm.Flatten())
}

func TestSparseCopyIndependent(t *testing.T) {
	sm := NewSparseBinaryMatrix(3, 3)
	sm.Set(1, 1, true)

	cp := sm.Copy()
	cp.Set(1, 2, true)
	cp.Set(1, 1, false)

	assert.True(t, sm.Get(1, 1))
	assert.False(t, sm.Get(1, 2))
}

func TestSparseFromDense1D(t *testing.T) {
	sm := NewSparseBinaryMatrixFromDense1D(
		[]bool{true, false, false, true, false, true}, 2, 3)
	assert.True(t, sm.Get(0, 0))
	assert.True(t, sm.Get(1, 0))
	assert.True(t, sm.Get(1, 2))
	assert.Equal(t, 3, sm.TotalNonZeroCount())
}
