package htm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebkor/htm/utils"
)

func TestDenseGetSet(t *testing.T) {
	dm := NewDenseBinaryMatrix(10, 8)
	dm.Set(0, 0, true)
	dm.Set(9, 7, true)
	dm.Set(4, 3, true)

	assert.True(t, dm.Get(0, 0))
	assert.True(t, dm.Get(9, 7))
	assert.True(t, dm.Get(4, 3))
	assert.False(t, dm.Get(4, 4))
	assert.Equal(t, 3, dm.TotalNonZeroCount())
}

func TestDenseReplaceRow(t *testing.T) {
	dm := NewDenseBinaryMatrix(3, 4)
	dm.ReplaceRow(1, []bool{true, false, true, false})

	assert.Equal(t, []int{0, 2}, dm.GetRowIndices(1))
	assert.Equal(t, []bool{true, false, true, false}, dm.GetDenseRow(1))
	assert.Equal(t, 0, len(dm.GetRowIndices(0)))
}

func TestDenseReplaceRowByIndices(t *testing.T) {
	dm := NewDenseBinaryMatrix(3, 5)
	dm.ReplaceRowByIndices(2, []int{4, 1})
	assert.Equal(t, []int{1, 4}, dm.GetRowIndices(2))

	// replacing clears previous entries
	dm.ReplaceRowByIndices(2, []int{0})
	assert.Equal(t, []int{0}, dm.GetRowIndices(2))
}

func TestDenseRowAndSum(t *testing.T) {
	dm := NewDenseBinaryMatrixFromDense(utils.Make2DBool([][]int{
		{1, 1, 0, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 1},
	}))

	sums := dm.RowAndSum(utils.Make1DBool([]int{1, 1, 0, 0}))
	assert.Equal(t, []int{2, 1, 0}, sums)
}

func TestDenseEntries(t *testing.T) {
	dm := NewDenseBinaryMatrix(3, 3)
	dm.Set(2, 0, true)
	dm.Set(0, 1, true)

	assert.Equal(t, []SparseEntry{{0, 1}, {2, 0}}, dm.Entries())
}

func TestDenseFillRowAndClear(t *testing.T) {
	dm := NewDenseBinaryMatrix(2, 3)
	dm.FillRow(0, true)
	assert.Equal(t, 3, dm.TotalNonZeroCount())

	dm.Clear()
	assert.Equal(t, 0, dm.TotalNonZeroCount())
}

func TestDenseCopyIndependent(t *testing.T) {
	dm := NewDenseBinaryMatrix(2, 2)
	dm.Set(0, 0, true)

	cp := dm.Copy()
	cp.Set(1, 1, true)

	assert.False(t, dm.Get(1, 1))
	assert.True(t, cp.Get(0, 0))
}

func TestDenseOutOfBoundsPanics(t *testing.T) {
	dm := NewDenseBinaryMatrix(2, 2)
	assert.Panics(t, func() { dm.Get(2, 0) })
	assert.Panics(t, func() { dm.Set(0, -1, true) })
}

func BenchmarkDenseSet(b *testing.B) {
	m := NewDenseBinaryMatrix(1024, 4096)

	for i := 0; i < b.N; i++ {
		m.Set(rand.Intn(1024), rand.Intn(4096), true)
	}
}

func BenchmarkDenseRowAndSum(b *testing.B) {
	m := NewDenseBinaryMatrix(1024, 4096)
	input := make([]bool, 4096)
	for i := 0; i < 4096; i += 3 {
		m.Set(rand.Intn(1024), i, true)
		input[i] = true
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.RowAndSum(input)
	}
}
