package htm

import (
	"bytes"

	"github.com/nebkor/htm/utils"
)

//Dense binary matrix backed by a flat bool slice
type DenseBinaryMatrix struct {
	Width   int
	Height  int
	entries []bool
}

//Create new dense binary matrix of specified size
func NewDenseBinaryMatrix(height, width int) *DenseBinaryMatrix {
	m := &DenseBinaryMatrix{}
	m.Height = height
	m.Width = width
	m.entries = make([]bool, width*height)
	return m
}

//Create dense binary matrix from specified 2d bool values
func NewDenseBinaryMatrixFromDense(values [][]bool) *DenseBinaryMatrix {
	if len(values) < 1 {
		panic("No values specified.")
	}

	m := NewDenseBinaryMatrix(len(values), len(values[0]))
	for r := 0; r < m.Height; r++ {
		m.SetRowFromDense(r, values[r])
	}
	return m
}

//Converts flat index to row/col
func (sm *DenseBinaryMatrix) toIndex(index int) (row int, col int) {
	row = index / sm.Width
	col = index % sm.Width
	return
}

//Returns all true/on entries
func (sm *DenseBinaryMatrix) Entries() []SparseEntry {
	var result []SparseEntry
	for idx, val := range sm.entries {
		if val {
			i, j := sm.toIndex(idx)
			result = append(result, SparseEntry{i, j})
		}
	}
	return result
}

//Get value at row,col position
func (sm *DenseBinaryMatrix) Get(row int, col int) bool {
	sm.validateRowCol(row, col)
	return sm.entries[row*sm.Width+col]
}

//Set value at row,col position
func (sm *DenseBinaryMatrix) Set(row int, col int, value bool) {
	sm.validateRowCol(row, col)
	sm.entries[row*sm.Width+col] = value
}

//Replaces specified row with values
func (sm *DenseBinaryMatrix) ReplaceRow(row int, values []bool) {
	if len(values) != sm.Width {
		panic("Invalid row width")
	}
	copy(sm.entries[row*sm.Width:(row+1)*sm.Width], values)
}

//Replaces row with true values at specified indices
func (sm *DenseBinaryMatrix) ReplaceRowByIndices(row int, indices []int) {
	sm.validateRow(row)
	start := row * sm.Width
	for i := 0; i < sm.Width; i++ {
		sm.entries[start+i] = utils.ContainsInt(i, indices)
	}
}

//Returns dense row
func (sm *DenseBinaryMatrix) GetDenseRow(row int) []bool {
	sm.validateRow(row)
	result := make([]bool, sm.Width)
	copy(result, sm.entries[row*sm.Width:(row+1)*sm.Width])
	return result
}

//Returns a rows "on" indices
func (sm *DenseBinaryMatrix) GetRowIndices(row int) []int {
	result := make([]int, 0, sm.Width)
	start := row * sm.Width
	for i := 0; i < sm.Width; i++ {
		if sm.entries[start+i] {
			result = append(result, i)
		}
	}
	return result
}

//Sets a row from dense representation
func (sm *DenseBinaryMatrix) SetRowFromDense(row int, denseRow []bool) {
	sm.ReplaceRow(row, denseRow)
}

//In a normal matrix this would be multiplication in binary terms
//we just and then sum the true entries per row
func (sm *DenseBinaryMatrix) RowAndSum(row []bool) []int {
	if len(row) != sm.Width {
		panic("Invalid row width")
	}
	result := make([]int, sm.Height)

	for idx, val := range sm.entries {
		if val {
			r, c := sm.toIndex(idx)
			if row[c] {
				result[r]++
			}
		}
	}

	return result
}

//Returns total true entries
func (sm *DenseBinaryMatrix) TotalNonZeroCount() int {
	return utils.CountTrue(sm.entries)
}

//Clears all entries
func (sm *DenseBinaryMatrix) Clear() {
	utils.FillSliceBool(sm.entries, false)
}

//Fills specified row with specified value
func (sm *DenseBinaryMatrix) FillRow(row int, val bool) {
	sm.validateRow(row)
	start := row * sm.Width
	for j := 0; j < sm.Width; j++ {
		sm.entries[start+j] = val
	}
}

//Copys a matrix
func (sm *DenseBinaryMatrix) Copy() *DenseBinaryMatrix {
	if sm == nil {
		return nil
	}

	result := NewDenseBinaryMatrix(sm.Height, sm.Width)
	copy(result.entries, sm.entries)
	return result
}

func (sm *DenseBinaryMatrix) ToString() string {
	var buffer bytes.Buffer

	for r := 0; r < sm.Height; r++ {
		for c := 0; c < sm.Width; c++ {
			if sm.Get(r, c) {
				buffer.WriteByte('1')
			} else {
				buffer.WriteByte('0')
			}
		}
		buffer.WriteByte('\n')
	}

	return buffer.String()
}

func (sm *DenseBinaryMatrix) validateRow(row int) {
	if row < 0 || row >= sm.Height {
		panic("Specified row is out of bounds.")
	}
}

func (sm *DenseBinaryMatrix) validateRowCol(row int, col int) {
	sm.validateRow(row)
	if col < 0 || col >= sm.Width {
		panic("Specified col is out of bounds.")
	}
}
