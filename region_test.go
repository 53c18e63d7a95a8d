package htm

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebkor/htm/utils"
)

func TestNewRegionParams(t *testing.T) {
	params := NewRegionParams()
	assert.Equal(t, params.Sp.numColumns(), params.Tp.NumberOfCols)
}

func TestNewRegionRejectsMismatchedSizes(t *testing.T) {
	params := NewRegionParams()
	params.Tp.NumberOfCols = params.Sp.numColumns() + 1

	r, err := NewRegion(params)
	assert.Nil(t, r)
	assert.IsType(t, ConfigError{}, err)
}

func TestNewRegionPropagatesPoolerErrors(t *testing.T) {
	params := NewRegionParams()
	params.Sp.MaxBoost = 0

	r, err := NewRegion(params)
	assert.Nil(t, r)
	assert.IsType(t, ConfigError{}, err)
}

func TestRegionRejectsBadInput(t *testing.T) {
	r, err := NewRegion(NewRegionParams())
	assert.Nil(t, err)

	result, err := r.Compute(nil, true)
	assert.Nil(t, result)
	assert.IsType(t, ContractError{}, err)

	result, err = r.Compute(make([]bool, 5), true)
	assert.Nil(t, result)
	assert.IsType(t, ContractError{}, err)

	// a rejected input advanced nothing
	assert.Equal(t, 0, r.iteration)
	assert.Equal(t, 0, r.sp.iterationNum)
}

func TestRegionConstructionDefaults(t *testing.T) {
	r, err := NewRegion(NewRegionParams())
	assert.Nil(t, err)

	assert.Equal(t, utils.MakeSliceFloat64(64, 1.0), r.BoostFactors())
	assert.Equal(t, make([]float64, 64), r.ActiveDutyCycles())
	assert.Equal(t, make([]float64, 64), r.OverlapDutyCycles())
	assert.True(t, r.InhibitionRadius() >= 1)
	assert.Equal(t, 0, len(r.PredictiveCells()))
	assert.Equal(t, 0, r.Stats().NInfersSinceReset)
}

func newTestRegion(t *testing.T) *Region {
	params := NewRegionParams()
	params.Sp.InputDimensions = []int{30}
	params.Sp.ColumnDimensions = []int{30}
	params.Sp.PotentialRadius = 30
	params.Sp.PotentialPct = 0.5
	params.Sp.GlobalInhibition = true
	params.Sp.NumActiveColumnsPerInhArea = 5
	params.Sp.MaxBoost = 1.0
	params.Sp.MinPctOverlapDutyCycle = 0.0

	params.Tp.NumberOfCols = 30
	params.Tp.CellsPerColumn = 1
	params.Tp.ActivationThreshold = 3
	params.Tp.MinThreshold = 2
	params.Tp.NewSynapseCount = 5

	r, err := NewRegion(params)
	assert.Nil(t, err)
	return r
}

func TestRegionComputeResult(t *testing.T) {
	r := newTestRegion(t)

	input := make([]bool, 30)
	utils.FillSliceRangeBool(input, true, 0, 10)

	result, err := r.Compute(input, true)
	assert.Nil(t, err)
	assert.Equal(t, 1, result.Iteration)
	assert.Equal(t, 30, len(result.Output))

	assert.True(t, len(result.ActiveColumns) >= 5)
	assert.True(t, sort.IntsAreSorted(result.ActiveColumns))
	for _, c := range result.ActiveColumns {
		assert.True(t, c >= 0 && c < 30)
		// unpredicted active columns burst into the output
		assert.True(t, result.Output[c])
	}
}

func TestRegionLearnsAlternatingSequence(t *testing.T) {
	r := newTestRegion(t)

	inputA := make([]bool, 30)
	utils.FillSliceRangeBool(inputA, true, 0, 10)
	inputB := make([]bool, 30)
	utils.FillSliceRangeBool(inputB, true, 15, 10)

	var activeColsB []int
	for step := 0; step < 60; step++ {
		input := inputA
		if step%2 == 1 {
			input = inputB
		}
		result, err := r.Compute(input, true)
		assert.Nil(t, err)
		if step == 59 {
			activeColsB = result.ActiveColumns
		}
	}

	// feeding A after training predicts B's columns
	result, err := r.Compute(inputA, false)
	assert.Nil(t, err)
	assert.True(t, len(result.PredictiveCells) > 0)
	for _, c := range activeColsB {
		assert.True(t, utils.ContainsTuple(utils.TupleInt{A: c, B: 0}, result.PredictiveCells))
	}

	// prediction confidence concentrates on the predicted columns
	confidences := r.ColumnConfidences()
	for _, c := range activeColsB {
		assert.True(t, confidences[c] > 0)
	}
}

func TestRegionZeroInputStable(t *testing.T) {
	r := newTestRegion(t)

	input := make([]bool, 30)
	for step := 0; step < 10; step++ {
		result, err := r.Compute(input, true)
		assert.Nil(t, err)
		assert.Equal(t, 0, len(result.ActiveColumns))
		assert.Equal(t, 0, utils.CountTrue(result.Output))
	}
}

func TestRegionReset(t *testing.T) {
	r := newTestRegion(t)

	input := make([]bool, 30)
	utils.FillSliceRangeBool(input, true, 0, 10)
	for step := 0; step < 10; step++ {
		_, err := r.Compute(input, true)
		assert.Nil(t, err)
	}

	synsBefore := r.tp.connections.NumSynapses()
	r.Reset()

	// per-timestep state clears, learned structure survives
	assert.Equal(t, 0, len(r.PredictiveCells()))
	assert.Equal(t, synsBefore, r.tp.connections.NumSynapses())
}

func TestRegionPredict(t *testing.T) {
	r := newTestRegion(t)

	inputA := make([]bool, 30)
	utils.FillSliceRangeBool(inputA, true, 0, 10)
	inputB := make([]bool, 30)
	utils.FillSliceRangeBool(inputB, true, 15, 10)

	for step := 0; step < 30; step++ {
		input := inputA
		if step%2 == 1 {
			input = inputB
		}
		_, err := r.Compute(input, true)
		assert.Nil(t, err)
	}

	preds := r.Predict(2)
	assert.Equal(t, 2, preds.Rows())
	assert.Equal(t, 30, preds.Cols())

	// Predict left the poolers untouched: the next compute behaves
	// as if Predict never ran
	before := r.tp.DynamicState.ColConfidence
	predsAgain := r.Predict(2)
	for c := 0; c < 30; c++ {
		assert.Equal(t, preds.Get(0, c), predsAgain.Get(0, c))
		assert.Equal(t, before[c], r.tp.DynamicState.ColConfidence[c])
	}
}

func TestRegionAccessors(t *testing.T) {
	r := newTestRegion(t)
	assert.Equal(t, r.sp, r.SpatialPooler())
	assert.Equal(t, r.tp, r.TemporalPooler())
	assert.Equal(t, 30, len(r.ColumnConfidences()))
}
