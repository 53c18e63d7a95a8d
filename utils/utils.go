package utils

import (
	"math"
	"math/rand"
)

type TupleInt struct {
	A int
	B int
}

//Populates integer slice with index values
func FillSliceWithIdxInt(values []int) {
	for i := range values {
		values[i] = i
	}
}

//Populates int slice with specified value
func FillSliceInt(values []int, value int) {
	for i := range values {
		values[i] = value
	}
}

//Populates float64 slice with specified value
func FillSliceFloat64(values []float64, value float64) {
	for i := range values {
		values[i] = value
	}
}

//Populates bool slice with specified value
func FillSliceBool(values []bool, value bool) {
	for i := range values {
		values[i] = value
	}
}

//Populates a range of a bool slice with specified value
func FillSliceRangeBool(values []bool, value bool, start, length int) {
	for i := 0; i < length; i++ {
		values[start+i] = value
	}
}

//Returns the subset of values specified by indices
func SubsetSliceInt(values, indices []int) []int {
	result := make([]int, len(indices))
	for i, val := range indices {
		result[i] = values[val]
	}
	return result
}

//Returns the subset of values specified by indices
func SubsetSliceFloat64(values []float64, indices []int) []float64 {
	result := make([]float64, len(indices))
	for i, val := range indices {
		result[i] = values[val]
	}
	return result
}

func MakeSliceInt(size, initialValue int) []int {
	result := make([]int, size)
	if initialValue != 0 {
		for i := range result {
			result[i] = initialValue
		}
	}
	return result
}

func MakeSliceFloat64(size int, initialValue float64) []float64 {
	result := make([]float64, size)
	if initialValue != 0 {
		for i := range result {
			result[i] = initialValue
		}
	}
	return result
}

//Searches int slice for specified integer
func ContainsInt(q int, vals []int) bool {
	for _, val := range vals {
		if val == q {
			return true
		}
	}
	return false
}

func ContainsTuple(q TupleInt, vals []TupleInt) bool {
	for _, val := range vals {
		if val == q {
			return true
		}
	}
	return false
}

func RandFloatRange(min, max float64, r *rand.Rand) float64 {
	return r.Float64()*(max-min) + min
}

//Returns number of occurrences of value
func CountInt(values []int, value int) int {
	count := 0
	for _, val := range values {
		if val == value {
			count++
		}
	}
	return count
}

//Returns number of occurrences of value
func CountFloat64(values []float64, value float64) int {
	count := 0
	for _, val := range values {
		if val == value {
			count++
		}
	}
	return count
}

//Returns number of on bits
func CountTrue(values []bool) int {
	count := 0
	for _, val := range values {
		if val {
			count++
		}
	}
	return count
}

//Or's 2 bool slices
func OrBool(a, b []bool) []bool {
	result := make([]bool, len(a))
	for i, val := range a {
		result[i] = val || b[i]
	}
	return result
}

func Bool2Int(s []bool) []int {
	result := make([]int, len(s))
	for idx, val := range s {
		if val {
			result[idx] = 1
		}
	}
	return result
}

func SumSliceFloat64(values []float64) float64 {
	result := 0.0
	for _, val := range values {
		result += val
	}
	return result
}

//Returns "on" indices
func OnIndices(s []bool) []int {
	var result []int
	for idx, val := range s {
		if val {
			result = append(result, idx)
		}
	}
	return result
}

// Returns the elements of s not present in t
func Complement(s []int, t []int) []int {
	result := make([]int, 0, len(s))
	for _, val := range s {
		if !ContainsInt(val, t) {
			result = append(result, val)
		}
	}
	return result
}

// Set union of s and t, preserving order of first occurrence
func Add(s []int, t []int) []int {
	result := make([]int, 0, len(s)+len(t))
	result = append(result, s...)

	for _, val := range t {
		if !ContainsInt(val, s) {
			result = append(result, val)
		}
	}
	return result
}

func RoundPrec(x float64, prec int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	sign := 1.0
	if x < 0 {
		sign = -1
		x *= -1
	}

	var rounder float64
	pow := math.Pow(10, float64(prec))
	intermed := x * pow
	_, frac := math.Modf(intermed)

	if frac >= 0.5 {
		rounder = math.Ceil(intermed)
	} else {
		rounder = math.Floor(intermed)
	}

	return rounder / pow * sign
}

//Helper for unit tests where int literals are easier
// to read
func Make2DBool(values [][]int) [][]bool {
	result := make([][]bool, len(values))

	for i, val := range values {
		result[i] = make([]bool, len(val))
		for j, col := range val {
			result[i][j] = col == 1
		}
	}

	return result
}

func Make1DBool(values []int) []bool {
	result := make([]bool, len(values))
	for i, val := range values {
		result[i] = val == 1
	}
	return result
}
