package htm

import (
	"fmt"
	"sort"

	"github.com/zacg/go.matrix"

	"github.com/nebkor/htm/utils"
)

type RegionParams struct {
	Sp SpParams
	Tp TpParams
}

//Returns default region params with the temporal pooler sized to the
//spatial pooler's column count
func NewRegionParams() RegionParams {
	rp := RegionParams{}
	rp.Sp = NewSpParams()
	rp.Tp = NewTpParams()
	rp.Tp.NumberOfCols = rp.Sp.numColumns()
	return rp
}

/*
Output of one region timestep: the spatial SDR, the cells predicting
the next input, and the temporal pooler's flattened cell output.
*/
type ComputeResult struct {
	ActiveColumns   []int
	PredictiveCells []utils.TupleInt
	Output          []bool
	Iteration       int
}

/*
Region owns one spatial pooler and one temporal pooler and runs them
in strict order per timestep: overlap, inhibition and spatial learning
first, then the temporal pooler's three phases. Construct once,
advance per timestep; snapshots of boost/duty-cycle/prediction state
are read through the accessors.
*/
type Region struct {
	sp *SpatialPooler
	tp *TemporalPooler

	iteration int
}

func NewRegion(params RegionParams) (*Region, error) {
	if params.Sp.numColumns() != params.Tp.NumberOfCols {
		return nil, ConfigError{"Tp.NumberOfCols",
			fmt.Sprintf("temporal pooler columns (%v) must match spatial pooler columns (%v)",
				params.Tp.NumberOfCols, params.Sp.numColumns())}
	}

	sp, err := NewSpatialPooler(params.Sp)
	if err != nil {
		return nil, err
	}
	tp, err := NewTemporalPooler(params.Tp)
	if err != nil {
		return nil, err
	}

	return &Region{sp: sp, tp: tp}, nil
}

/*
Advances the region one timestep. The phases run to completion
atomically from the caller's point of view; a wrong-length input is
rejected up front with a ContractError and mutates nothing.
*/
func (r *Region) Compute(inputVector []bool, learn bool) (*ComputeResult, error) {
	if inputVector == nil {
		return nil, ContractError{"Region.Compute", "nil input vector"}
	}

	activeColumns, err := r.sp.Compute(inputVector, learn)
	if err != nil {
		return nil, err
	}
	sort.Ints(activeColumns)

	output := r.tp.Compute(activeColumns, learn)
	r.iteration++

	return &ComputeResult{
		ActiveColumns:   activeColumns,
		PredictiveCells: r.tp.PredictiveCells(),
		Output:          output,
		Iteration:       r.iteration,
	}, nil
}

//Clears all per-timestep cell state at a sequence boundary; learned
//permanences and duty cycles survive
func (r *Region) Reset() {
	r.tp.Reset()
}

func (r *Region) SpatialPooler() *SpatialPooler {
	return r.sp
}

func (r *Region) TemporalPooler() *TemporalPooler {
	return r.tp
}

/* Diagnostics pass-throughs */

func (r *Region) BoostFactors() []float64 {
	return r.sp.BoostFactors()
}

func (r *Region) ActiveDutyCycles() []float64 {
	return r.sp.ActiveDutyCycles()
}

func (r *Region) OverlapDutyCycles() []float64 {
	return r.sp.OverlapDutyCycles()
}

func (r *Region) InhibitionRadius() int {
	return r.sp.InhibitionRadius()
}

func (r *Region) PredictiveCells() []utils.TupleInt {
	return r.tp.PredictiveCells()
}

func (r *Region) ColumnConfidences() []float64 {
	return r.tp.TopDownCompute()
}

func (r *Region) Stats() TpStats {
	return r.tp.Stats()
}

//Rolls the predictive state forward nSteps on a copy of the dynamic
//state; per-step column confidence rows
func (r *Region) Predict(nSteps int) *matrix.DenseMatrix {
	return r.tp.Predict(nSteps)
}
