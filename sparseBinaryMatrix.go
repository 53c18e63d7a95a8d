package htm

import (
	"bytes"
	"sort"

	"github.com/nebkor/htm/utils"
)

type SparseEntry struct {
	Row int
	Col int
}

//Sparse binary matrix stores indexes of non-zero entries in matrix
//to conserve space
type SparseBinaryMatrix struct {
	Height int
	Width  int
	rows   map[int][]int
}

//Create new sparse binary matrix of specified size
func NewSparseBinaryMatrix(height, width int) *SparseBinaryMatrix {
	m := &SparseBinaryMatrix{}
	m.Height = height
	m.Width = width
	m.rows = make(map[int][]int)
	return m
}

//Create sparse binary matrix from specified dense matrix
func NewSparseBinaryMatrixFromDense(values [][]bool) *SparseBinaryMatrix {
	if len(values) < 1 {
		panic("No values specified.")
	}

	m := NewSparseBinaryMatrix(len(values), len(values[0]))
	for r := 0; r < m.Height; r++ {
		for c := 0; c < m.Width; c++ {
			if values[r][c] {
				m.Set(r, c, true)
			}
		}
	}
	return m
}

//Create sparse binary matrix from a flattened dense matrix
func NewSparseBinaryMatrixFromDense1D(values []bool, rows, cols int) *SparseBinaryMatrix {
	if len(values) != rows*cols {
		panic("Invalid size")
	}

	m := NewSparseBinaryMatrix(rows, cols)
	for idx, val := range values {
		if val {
			m.Set(idx/cols, idx%cols, true)
		}
	}
	return m
}

func (sm *SparseBinaryMatrix) validate(row, col int) {
	if row < 0 || row >= sm.Height {
		panic("Specified row is out of bounds.")
	}
	if col < 0 || col >= sm.Width {
		panic("Specified col is out of bounds.")
	}
}

//Get value at row,col position
func (sm *SparseBinaryMatrix) Get(row int, col int) bool {
	sm.validate(row, col)
	return utils.ContainsInt(col, sm.rows[row])
}

//Set value at row,col position
func (sm *SparseBinaryMatrix) Set(row int, col int, value bool) {
	sm.validate(row, col)
	cols := sm.rows[row]
	idx := sort.SearchInts(cols, col)
	found := idx < len(cols) && cols[idx] == col

	if value && !found {
		cols = append(cols, 0)
		copy(cols[idx+1:], cols[idx:])
		cols[idx] = col
		sm.rows[row] = cols
	} else if !value && found {
		cols = append(cols[:idx], cols[idx+1:]...)
		if len(cols) == 0 {
			delete(sm.rows, row)
		} else {
			sm.rows[row] = cols
		}
	}
}

//Returns a rows "on" indices in ascending order
func (sm *SparseBinaryMatrix) GetRowIndices(row int) []int {
	cols := sm.rows[row]
	result := make([]int, len(cols))
	copy(result, cols)
	return result
}

//Replaces row with true values at specified indices
func (sm *SparseBinaryMatrix) ReplaceRowByIndices(row int, indices []int) {
	delete(sm.rows, row)
	for _, col := range indices {
		sm.Set(row, col, true)
	}
}

//Fills specified row with specified value
func (sm *SparseBinaryMatrix) FillRow(row int, val bool) {
	if !val {
		delete(sm.rows, row)
		return
	}
	cols := make([]int, sm.Width)
	utils.FillSliceWithIdxInt(cols)
	sm.rows[row] = cols
}

//Clears all entries
func (sm *SparseBinaryMatrix) Clear() {
	sm.rows = make(map[int][]int)
}

//Returns all true/on entries in row-major order
func (sm *SparseBinaryMatrix) Entries() []SparseEntry {
	var result []SparseEntry
	for _, r := range sm.NonZeroRows() {
		for _, c := range sm.rows[r] {
			result = append(result, SparseEntry{r, c})
		}
	}
	return result
}

//Returns row indexes with at least 1 true column, ascending
func (sm *SparseBinaryMatrix) NonZeroRows() []int {
	result := make([]int, 0, len(sm.rows))
	for r := range sm.rows {
		result = append(result, r)
	}
	sort.Ints(result)
	return result
}

//Returns # of rows with at least 1 true value
func (sm *SparseBinaryMatrix) TotalTrueRows() int {
	return len(sm.rows)
}

//Returns total true entries
func (sm *SparseBinaryMatrix) TotalNonZeroCount() int {
	count := 0
	for _, cols := range sm.rows {
		count += len(cols)
	}
	return count
}

//Returns flattened dense representation
func (sm *SparseBinaryMatrix) Flatten() []bool {
	result := make([]bool, sm.Height*sm.Width)
	for r, cols := range sm.rows {
		for _, c := range cols {
			result[r*sm.Width+c] = true
		}
	}
	return result
}

// Ors 2 matrices
func (sm *SparseBinaryMatrix) Or(sm2 *SparseBinaryMatrix) *SparseBinaryMatrix {
	result := sm.Copy()
	for r, cols := range sm2.rows {
		for _, c := range cols {
			result.Set(r, c, true)
		}
	}
	return result
}

//Copys a matrix
func (sm *SparseBinaryMatrix) Copy() *SparseBinaryMatrix {
	if sm == nil {
		return nil
	}

	result := NewSparseBinaryMatrix(sm.Height, sm.Width)
	for r, cols := range sm.rows {
		nc := make([]int, len(cols))
		copy(nc, cols)
		result.rows[r] = nc
	}
	return result
}

func (sm *SparseBinaryMatrix) ToString() string {
	var buffer bytes.Buffer

	for r := 0; r < sm.Height; r++ {
		cols := sm.rows[r]
		for c := 0; c < sm.Width; c++ {
			if utils.ContainsInt(c, cols) {
				buffer.WriteByte('1')
			} else {
				buffer.WriteByte('0')
			}
		}
		buffer.WriteByte('\n')
	}

	return buffer.String()
}
