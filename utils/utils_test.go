package utils

import (
	"github.com/stretchr/testify/assert"
	"math/rand"
	"testing"
)

func TestFillSliceWithIdxInt(t *testing.T) {
	vals := make([]int, 3)
	FillSliceWithIdxInt(vals)
	expected := []int{0, 1, 2}
	assert.Equal(t, expected, vals)
}

func TestFillSliceRangeBool(t *testing.T) {
	vals := make([]bool, 10)
	FillSliceRangeBool(vals, true, 3, 4)
	assert.Equal(t, Make1DBool([]int{0, 0, 0, 1, 1, 1, 1, 0, 0, 0}), vals)
}

func TestSubsetSliceFloat64(t *testing.T) {
	vals := []float64{0.1, 0.2, 0.3, 0.4}
	assert.Equal(t, []float64{0.2, 0.4}, SubsetSliceFloat64(vals, []int{1, 3}))
}

func TestOnIndices(t *testing.T) {
	vals := Make1DBool([]int{0, 1, 0, 0, 1, 1})
	assert.Equal(t, []int{1, 4, 5}, OnIndices(vals))
	assert.Equal(t, 3, CountTrue(vals))
}

func TestComplement(t *testing.T) {
	assert.Equal(t, []int{1, 3}, Complement([]int{1, 2, 3, 4}, []int{2, 4}))
	assert.Equal(t, []int{}, Complement([]int{}, []int{2, 4}))
}

func TestAdd(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Add([]int{1, 2}, []int{2, 3}))
	assert.Equal(t, []int{4, 5}, Add(nil, []int{4, 5}))
}

func TestRandFloatRange(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		v := RandFloatRange(0.25, 0.75, r)
		assert.True(t, v >= 0.25 && v < 0.75)
	}
}

func TestRoundPrec(t *testing.T) {
	assert.Equal(t, 0.12, RoundPrec(0.1234, 2))
	assert.Equal(t, -0.13, RoundPrec(-0.1251, 2))
}
