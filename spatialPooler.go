package htm

import (
	"math"
	"math/rand"
	"sort"

	"github.com/cznic/mathutil"
	"github.com/gonum/floats"
	"github.com/skelterjohn/go.matrix"

	"github.com/nebkor/htm/utils"
)

/*
SpatialPooler converts a binary input vector into a sparse set of
active columns via overlap scoring and local or global inhibition,
while learning the permanences of each column's potential synapses and
keeping per-column duty-cycle and boost statistics.
*/
type SpatialPooler struct {
	params     SpParams
	numInputs  int
	numColumns int

	// [column][input bit]; row c is the potential pool of column c
	potentialPools *DenseBinaryMatrix
	// permanences[c][i] for every potential synapse of column c
	permanences *matrix.SparseMatrix
	// permanence >= SynPermConnected
	connectedSynapses *DenseBinaryMatrix
	connectedCounts   []int

	boostFactors         []float64
	overlapDutyCycles    []float64
	activeDutyCycles     []float64
	minOverlapDutyCycles []float64
	minActiveDutyCycles  []float64

	inhibitionRadius  int
	iterationNum      int
	iterationLearnNum int

	rand *rand.Rand
}

//Creates a pooler with validated params. All permanence pools are
//initialized here; columns are never created or destroyed afterwards.
func NewSpatialPooler(params SpParams) (*SpatialPooler, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	sp := new(SpatialPooler)
	sp.params = params
	sp.numInputs = params.numInputs()
	sp.numColumns = params.numColumns()
	sp.rand = rand.New(rand.NewSource(params.Seed))

	sp.potentialPools = NewDenseBinaryMatrix(sp.numColumns, sp.numInputs)
	sp.permanences = matrix.ZerosSparse(sp.numColumns, sp.numInputs)
	sp.connectedSynapses = NewDenseBinaryMatrix(sp.numColumns, sp.numInputs)
	sp.connectedCounts = make([]int, sp.numColumns)

	sp.boostFactors = utils.MakeSliceFloat64(sp.numColumns, 1.0)
	sp.overlapDutyCycles = make([]float64, sp.numColumns)
	sp.activeDutyCycles = make([]float64, sp.numColumns)
	sp.minOverlapDutyCycles = make([]float64, sp.numColumns)
	sp.minActiveDutyCycles = make([]float64, sp.numColumns)

	for c := 0; c < sp.numColumns; c++ {
		potential := sp.mapPotential(c)
		sp.potentialPools.SetRowFromDense(c, potential)
		perm := sp.initPermanence(potential, params.InitConnectedPct)
		sp.updatePermanencesForColumn(perm, c, true)
	}

	sp.updateInhibitionRadius()

	return sp, nil
}

/*
Main compute call: one timestep of overlap, inhibition and (when learn
is on) synapse adaptation plus duty-cycle/boost maintenance. Returns
the active column indices in ascending order. A wrong-length input
returns a ContractError and mutates nothing.
*/
func (sp *SpatialPooler) Compute(inputVector []bool, learn bool) ([]int, error) {
	if len(inputVector) != sp.numInputs {
		return nil, ContractError{"SpatialPooler.Compute", "input vector length does not match input size"}
	}

	sp.iterationNum++
	if learn {
		sp.iterationLearnNum++
	}

	overlaps := sp.calculateOverlap(inputVector)

	// Apply boosting only when learning is on
	boostedOverlaps := make([]float64, sp.numColumns)
	for c, o := range overlaps {
		if learn {
			boostedOverlaps[c] = float64(o) * sp.boostFactors[c]
		} else {
			boostedOverlaps[c] = float64(o)
		}
	}

	activeColumns := sp.inhibitColumns(boostedOverlaps)

	if learn {
		sp.adaptSynapses(inputVector, activeColumns)
		sp.updateDutyCycles(overlaps, activeColumns)
		sp.bumpUpWeakColumns()
		sp.updateBoostFactors()
		if sp.isUpdateRound() {
			sp.updateInhibitionRadius()
			sp.updateMinDutyCycles()
		}
	} else {
		activeColumns = sp.stripNeverLearned(activeColumns)
	}

	return activeColumns, nil
}

/*
Maps a column to the input bits it may ever grow synapses to: a
PotentialPct sample of the receptive field of PotentialRadius input
bits around the column's natural center. A radius covering the whole
input makes every bit a candidate.
*/
func (sp *SpatialPooler) mapPotential(column int) []bool {
	var candidates []int

	if 2*sp.params.PotentialRadius+1 >= sp.numInputs {
		candidates = make([]int, sp.numInputs)
		utils.FillSliceWithIdxInt(candidates)
	} else {
		center := column * sp.numInputs / sp.numColumns
		lo := mathutil.Max(0, center-sp.params.PotentialRadius)
		hi := mathutil.Min(sp.numInputs-1, center+sp.params.PotentialRadius)
		for i := lo; i <= hi; i++ {
			candidates = append(candidates, i)
		}
	}

	numPotential := mathutil.Max(1, int(sp.params.PotentialPct*float64(len(candidates))+0.5))

	result := make([]bool, sp.numInputs)
	for _, idx := range sp.rand.Perm(len(candidates))[:numPotential] {
		result[candidates[idx]] = true
	}
	return result
}

/*
Initial permanence values for one column's potential pool. Roughly
connectedPct of the synapses start just above the connected threshold,
the rest just below it, so learning can move them across quickly.
*/
func (sp *SpatialPooler) initPermanence(potential []bool, connectedPct float64) []float64 {
	perm := make([]float64, len(potential))
	connThresh := sp.params.SynPermConnected
	loThresh := sp.params.SynPermActiveInc / 2.0

	for i, isPotential := range potential {
		if !isPotential {
			continue
		}
		if sp.rand.Float64() <= connectedPct {
			perm[i] = connThresh + sp.rand.Float64()*(sp.params.SynPermActiveInc/4.0)
		} else {
			perm[i] = loThresh + sp.rand.Float64()*(connThresh-loThresh)
		}
	}
	return perm
}

/*
Uniformly bumps the permanences at maskPotential until at least
StimulusThreshold of them are connected, so no column is permanently
locked out of competition.
*/
func (sp *SpatialPooler) raisePermanenceToThreshold(perm []float64, maskPotential []int) {
	if sp.params.StimulusThreshold == 0 {
		return
	}

	for {
		numConnected := 0
		for _, i := range maskPotential {
			if perm[i] >= sp.params.SynPermConnected {
				numConnected++
			}
		}
		if numConnected >= sp.params.StimulusThreshold {
			return
		}

		raised := false
		for _, i := range maskPotential {
			if perm[i] < sp.params.SynPermMax {
				perm[i] = math.Min(sp.params.SynPermMax, perm[i]+sp.params.SynPermBelowStimulusInc)
				raised = true
			}
		}
		if !raised {
			// every potential synapse is already saturated
			return
		}
	}
}

/*
Clamps and stores one column's permanence row and rebuilds its
connected bitmap and count.
*/
func (sp *SpatialPooler) updatePermanencesForColumn(perm []float64, column int, raisePerm bool) {
	maskPotential := sp.potentialPools.GetRowIndices(column)
	if raisePerm {
		sp.raisePermanenceToThreshold(perm, maskPotential)
	}

	numConnected := 0
	for _, i := range maskPotential {
		p := perm[i]
		if p < sp.params.SynPermTrimThreshold {
			p = 0
		}
		p = math.Max(sp.params.SynPermMin, math.Min(sp.params.SynPermMax, p))
		sp.permanences.Set(column, i, p)

		connected := p >= sp.params.SynPermConnected
		sp.connectedSynapses.Set(column, i, connected)
		if connected {
			numConnected++
		}
	}
	sp.connectedCounts[column] = numConnected
}

/*
Overlap of every column with the input: the count of connected
synapses whose source bit is on, zeroed below StimulusThreshold.
Pure read, no state mutates.
*/
func (sp *SpatialPooler) calculateOverlap(inputVector []bool) []int {
	overlaps := sp.connectedSynapses.RowAndSum(inputVector)
	for c, o := range overlaps {
		if o < sp.params.StimulusThreshold {
			overlaps[c] = 0
		}
	}
	return overlaps
}

/*
Winner selection. A column wins when its overlap is positive and at
least the k-th highest score among its competitors, k =
NumActiveColumnsPerInhArea. Ties at the k-th position are inclusive,
so the winner count may exceed k by the tie count. Local inhibition
falls back to the global rule when the inhibition radius has grown to
cover the region.
*/
func (sp *SpatialPooler) inhibitColumns(overlaps []float64) []int {
	if sp.params.GlobalInhibition || sp.inhibitionRadius > sp.numColumns {
		return sp.inhibitColumnsGlobal(overlaps)
	}
	return sp.inhibitColumnsLocal(overlaps)
}

func (sp *SpatialPooler) inhibitColumnsGlobal(overlaps []float64) []int {
	minActivity := kthScore(overlaps, sp.params.NumActiveColumnsPerInhArea)

	var active []int
	for c, o := range overlaps {
		if o > 0 && o >= minActivity {
			active = append(active, c)
		}
	}
	return active
}

func (sp *SpatialPooler) inhibitColumnsLocal(overlaps []float64) []int {
	var active []int
	for c, o := range overlaps {
		if o <= 0 {
			continue
		}
		neighbors := sp.getNeighbors(c)
		minActivity := kthScore(utils.SubsetSliceFloat64(overlaps, neighbors),
			sp.params.NumActiveColumnsPerInhArea)
		if o >= minActivity {
			active = append(active, c)
		}
	}
	return active
}

//Returns the k-th highest score, 0 when there are fewer than k scores
func kthScore(scores []float64, k int) float64 {
	if k > len(scores) {
		return 0
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return sorted[k-1]
}

//Columns within inhibitionRadius of the specified column, self
//excluded, clamped to the region edges
func (sp *SpatialPooler) getNeighbors(column int) []int {
	lo := mathutil.Max(0, column-sp.inhibitionRadius)
	hi := mathutil.Min(sp.numColumns-1, column+sp.inhibitionRadius)

	result := make([]int, 0, hi-lo)
	for c := lo; c <= hi; c++ {
		if c != column {
			result = append(result, c)
		}
	}
	return result
}

/*
Hebbian step: every potential synapse of every active column moves
toward the input, +SynPermActiveInc when its source bit was on,
-SynPermInactiveDec otherwise. Clamping happens on the write-back.
*/
func (sp *SpatialPooler) adaptSynapses(inputVector []bool, activeColumns []int) {
	for _, c := range activeColumns {
		maskPotential := sp.potentialPools.GetRowIndices(c)
		perm := sp.permanenceRow(c)
		for _, i := range maskPotential {
			if inputVector[i] {
				perm[i] += sp.params.SynPermActiveInc
			} else {
				perm[i] -= sp.params.SynPermInactiveDec
			}
		}
		sp.updatePermanencesForColumn(perm, c, true)
	}
}

//Returns a dense copy of one column's permanence row
func (sp *SpatialPooler) permanenceRow(column int) []float64 {
	perm := make([]float64, sp.numInputs)
	for i := 0; i < sp.numInputs; i++ {
		perm[i] = sp.permanences.Get(column, i)
	}
	return perm
}

/*
Moving-average update of both duty cycles, over a window that grows
with the iteration count up to DutyCyclePeriod.
*/
func (sp *SpatialPooler) updateDutyCycles(overlaps []int, activeColumns []int) {
	period := float64(mathutil.Min(sp.params.DutyCyclePeriod, sp.iterationNum))

	for c := 0; c < sp.numColumns; c++ {
		overlapVal := 0.0
		if overlaps[c] > 0 {
			overlapVal = 1.0
		}
		activeVal := 0.0
		if utils.ContainsInt(c, activeColumns) {
			activeVal = 1.0
		}

		sp.overlapDutyCycles[c] = (sp.overlapDutyCycles[c]*(period-1) + overlapVal) / period
		sp.activeDutyCycles[c] = (sp.activeDutyCycles[c]*(period-1) + activeVal) / period
	}
}

/*
Rescues columns whose receptive field never overlaps the input enough:
when a column's overlap duty cycle falls below its minimum, all of its
potential permanences get a uniform bump.
*/
func (sp *SpatialPooler) bumpUpWeakColumns() {
	for c := 0; c < sp.numColumns; c++ {
		if sp.overlapDutyCycles[c] >= sp.minOverlapDutyCycles[c] {
			continue
		}
		maskPotential := sp.potentialPools.GetRowIndices(c)
		perm := sp.permanenceRow(c)
		for _, i := range maskPotential {
			perm[i] += sp.params.SynPermBelowStimulusInc
		}
		sp.updatePermanencesForColumn(perm, c, false)
	}
}

/*
boost == 1 whenever a column's active duty cycle meets its minimum;
below that, boost grows linearly up to MaxBoost along the line through
(0, MaxBoost) and (minDutyCycle, 1).
*/
func (sp *SpatialPooler) updateBoostFactors() {
	for c := 0; c < sp.numColumns; c++ {
		minDuty := sp.minActiveDutyCycles[c]
		if minDuty <= 0 || sp.activeDutyCycles[c] >= minDuty {
			sp.boostFactors[c] = 1.0
		} else {
			sp.boostFactors[c] = ((1.0-sp.params.MaxBoost)/minDuty)*sp.activeDutyCycles[c] +
				sp.params.MaxBoost
		}
	}
}

// Updates the minimum duty cycles defining normal activity for a
// column. A column with activity below this minimum gets boosted.
func (sp *SpatialPooler) updateMinDutyCycles() {
	if sp.params.GlobalInhibition || sp.inhibitionRadius > sp.numColumns {
		sp.updateMinDutyCyclesGlobal()
	} else {
		sp.updateMinDutyCyclesLocal()
	}
}

// Sets every column's minimums to a percent of the region-wide maximum
// duty cycles. Equivalent to the local variant when the inhibition
// radius spans the region, just cheaper.
func (sp *SpatialPooler) updateMinDutyCyclesGlobal() {
	minOverlap := sp.params.MinPctOverlapDutyCycle * floats.Max(sp.overlapDutyCycles)
	minActive := sp.params.MinPctActiveDutyCycle * floats.Max(sp.activeDutyCycles)

	utils.FillSliceFloat64(sp.minOverlapDutyCycles, minOverlap)
	utils.FillSliceFloat64(sp.minActiveDutyCycles, minActive)
}

// Sets each column's minimums to a percent of the maximum duty cycles
// in its neighborhood.
func (sp *SpatialPooler) updateMinDutyCyclesLocal() {
	for c := 0; c < sp.numColumns; c++ {
		neighborhood := append(sp.getNeighbors(c), c)
		maxOverlap := floats.Max(utils.SubsetSliceFloat64(sp.overlapDutyCycles, neighborhood))
		maxActive := floats.Max(utils.SubsetSliceFloat64(sp.activeDutyCycles, neighborhood))

		sp.minOverlapDutyCycles[c] = sp.params.MinPctOverlapDutyCycle * maxOverlap
		sp.minActiveDutyCycles[c] = sp.params.MinPctActiveDutyCycle * maxActive
	}
}

/*
Recomputes the inhibition radius from the average receptive-field
span of connected synapses, converted from input space to column
space. Always at least 1.
*/
func (sp *SpatialPooler) updateInhibitionRadius() {
	if sp.params.GlobalInhibition {
		sp.inhibitionRadius = sp.numColumns
		return
	}

	avgSpan := 0.0
	for c := 0; c < sp.numColumns; c++ {
		avgSpan += sp.avgConnectedSpanForColumn(c)
	}
	avgSpan /= float64(sp.numColumns)

	colsPerInput := float64(sp.numColumns) / float64(sp.numInputs)
	diameter := avgSpan * colsPerInput

	sp.inhibitionRadius = mathutil.Max(1, int((diameter-1)/2.0+0.5))
}

//Span between the first and last connected input bit of a column
func (sp *SpatialPooler) avgConnectedSpanForColumn(column int) float64 {
	connected := sp.connectedSynapses.GetRowIndices(column)
	if len(connected) == 0 {
		return 0
	}
	return float64(connected[len(connected)-1] - connected[0] + 1)
}

func (sp *SpatialPooler) isUpdateRound() bool {
	return sp.iterationNum%sp.params.UpdatePeriod == 0
}

/*
In inference mode, removes columns that have never won while learning.
Such columns carry no learned receptive field and their activity is
noise.
*/
func (sp *SpatialPooler) stripNeverLearned(activeColumns []int) []int {
	result := make([]int, 0, len(activeColumns))
	for _, c := range activeColumns {
		if sp.activeDutyCycles[c] > 0 {
			result = append(result, c)
		}
	}
	return result
}

/* Diagnostics accessors; all return copies of internal state. */

func (sp *SpatialPooler) BoostFactors() []float64 {
	result := make([]float64, len(sp.boostFactors))
	copy(result, sp.boostFactors)
	return result
}

func (sp *SpatialPooler) ActiveDutyCycles() []float64 {
	result := make([]float64, len(sp.activeDutyCycles))
	copy(result, sp.activeDutyCycles)
	return result
}

func (sp *SpatialPooler) OverlapDutyCycles() []float64 {
	result := make([]float64, len(sp.overlapDutyCycles))
	copy(result, sp.overlapDutyCycles)
	return result
}

func (sp *SpatialPooler) InhibitionRadius() int {
	return sp.inhibitionRadius
}

func (sp *SpatialPooler) ConnectedCounts() []int {
	result := make([]int, len(sp.connectedCounts))
	copy(result, sp.connectedCounts)
	return result
}

func (sp *SpatialPooler) NumColumns() int {
	return sp.numColumns
}

func (sp *SpatialPooler) NumInputs() int {
	return sp.numInputs
}
