package htm

import (
	"math/rand"

	"github.com/zacg/floats"
	"github.com/zacg/go.matrix"

	"github.com/nebkor/htm/utils"
)

/*
The per-timestep cell state, double buffered: the plain fields hold
timestep t, the Last fields hold t-1. Rows are columns, cols are cells
within a column. Only these two timesteps are ever retained; phases
read the slot the previous phase committed and never mutate it in
place, which is what keeps the per-column work independent.
*/
type DynamicState struct {
	ActiveState     *SparseBinaryMatrix // t
	ActiveStateLast *SparseBinaryMatrix // t-1

	PredictedState     *SparseBinaryMatrix
	PredictedStateLast *SparseBinaryMatrix

	LearnState     *SparseBinaryMatrix
	LearnStateLast *SparseBinaryMatrix

	CellConfidence     *matrix.DenseMatrix
	CellConfidenceLast *matrix.DenseMatrix

	ColConfidence     []float64
	ColConfidenceLast []float64
}

func newDynamicState(numberOfCols, cellsPerColumn int) *DynamicState {
	ds := new(DynamicState)

	ds.ActiveState = NewSparseBinaryMatrix(numberOfCols, cellsPerColumn)
	ds.ActiveStateLast = NewSparseBinaryMatrix(numberOfCols, cellsPerColumn)
	ds.PredictedState = NewSparseBinaryMatrix(numberOfCols, cellsPerColumn)
	ds.PredictedStateLast = NewSparseBinaryMatrix(numberOfCols, cellsPerColumn)
	ds.LearnState = NewSparseBinaryMatrix(numberOfCols, cellsPerColumn)
	ds.LearnStateLast = NewSparseBinaryMatrix(numberOfCols, cellsPerColumn)

	ds.CellConfidence = matrix.Zeros(numberOfCols, cellsPerColumn)
	ds.CellConfidenceLast = matrix.Zeros(numberOfCols, cellsPerColumn)
	ds.ColConfidence = make([]float64, numberOfCols)
	ds.ColConfidenceLast = make([]float64, numberOfCols)

	return ds
}

func (ds *DynamicState) Copy() *DynamicState {
	result := new(DynamicState)

	result.ActiveState = ds.ActiveState.Copy()
	result.ActiveStateLast = ds.ActiveStateLast.Copy()
	result.PredictedState = ds.PredictedState.Copy()
	result.PredictedStateLast = ds.PredictedStateLast.Copy()
	result.LearnState = ds.LearnState.Copy()
	result.LearnStateLast = ds.LearnStateLast.Copy()

	result.CellConfidence = ds.CellConfidence.Copy()
	result.CellConfidenceLast = ds.CellConfidenceLast.Copy()

	result.ColConfidence = make([]float64, len(ds.ColConfidence))
	copy(result.ColConfidence, ds.ColConfidence)
	result.ColConfidenceLast = make([]float64, len(ds.ColConfidenceLast))
	copy(result.ColConfidenceLast, ds.ColConfidenceLast)

	return result
}

//Rolls timestep t into t-1 and clears the t slots
func (ds *DynamicState) advance() {
	ds.ActiveState, ds.ActiveStateLast = ds.ActiveStateLast, ds.ActiveState
	ds.PredictedState, ds.PredictedStateLast = ds.PredictedStateLast, ds.PredictedState
	ds.LearnState, ds.LearnStateLast = ds.LearnStateLast, ds.LearnState
	ds.CellConfidence, ds.CellConfidenceLast = ds.CellConfidenceLast, ds.CellConfidence
	ds.ColConfidence, ds.ColConfidenceLast = ds.ColConfidenceLast, ds.ColConfidence

	ds.ActiveState.Clear()
	ds.PredictedState.Clear()
	ds.LearnState.Clear()
	ds.CellConfidence.Fill(0)
	utils.FillSliceFloat64(ds.ColConfidence, 0)
}

/*
TemporalPooler learns sequences of active-column SDRs. Each column
owns CellsPerColumn cells; each cell grows dendrite segments whose
synapses reference other cells in the region. Per timestep it runs
three ordered phases: active/learning state from the previous
prediction, new predictive state from segment activity, then commit or
discard of the queued segment updates.
*/
type TemporalPooler struct {
	params        TpParams
	numberOfCells int
	connections   *Connections

	lrnIterationIdx int
	iterationIdx    int

	CurrentOutput *SparseBinaryMatrix
	DynamicState  *DynamicState

	//ephemeral state: pending segment updates keyed by (column, cell)
	segmentUpdates map[utils.TupleInt][]UpdateState

	internalStats TpStats
	rand          *rand.Rand
}

func NewTemporalPooler(params TpParams) (*TemporalPooler, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tp := new(TemporalPooler)
	tp.params = params
	tp.numberOfCells = params.NumberOfCols * params.CellsPerColumn
	tp.connections = NewConnections(params.NumberOfCols, params.CellsPerColumn)
	tp.segmentUpdates = make(map[utils.TupleInt][]UpdateState)
	tp.DynamicState = newDynamicState(params.NumberOfCols, params.CellsPerColumn)
	tp.rand = rand.New(rand.NewSource(params.Seed))

	if params.CollectStats && params.CollectSequenceStats {
		tp.internalStats.ConfHistogram = matrix.Zeros(params.NumberOfCols, params.CellsPerColumn)
	}

	return tp, nil
}

/*
One timestep. activeColumns is the spatial pooler's output for this
timestep. Returns the pooler output, the boolean OR of active and
predicted state flattened column-major (subject to OutputType).
*/
func (tp *TemporalPooler) Compute(activeColumns []int, learn bool) []bool {
	tp.iterationIdx++
	if learn {
		tp.lrnIterationIdx++
	}

	tp.DynamicState.advance()

	tp.phase1(activeColumns, learn)
	tp.phase2(learn)
	if learn {
		tp.phase3()
	}

	output := tp.computeOutput()

	// Score how well the previous timestep's prediction anticipated
	// this bottom-up input.
	tp.updateStatsInferEnd(&tp.internalStats, activeColumns,
		tp.DynamicState.PredictedStateLast, tp.DynamicState.ColConfidenceLast)

	if tp.params.Verbosity > 0 {
		tp.printComputeEnd(output, learn)
	}

	return output
}

/*
Phase 1: compute active and learning state for every active column.
Cells correctly predicted through a sequence segment activate alone;
an unpredicted column bursts. Exactly one learning cell is chosen per
active column when learning is on.
*/
func (tp *TemporalPooler) phase1(activeColumns []int, learn bool) {
	ds := tp.DynamicState

	for _, c := range activeColumns {
		buPredicted := false
		lcChosen := false

		for i := 0; i < tp.params.CellsPerColumn; i++ {
			if !ds.PredictedStateLast.Get(c, i) {
				continue
			}
			s := tp.getActiveSegment(c, i, ds.ActiveStateLast)
			if s < 0 {
				continue
			}
			seg := tp.connections.Segment(s)
			if !seg.isSequenceSeg {
				continue
			}

			buPredicted = true
			ds.ActiveState.Set(c, i, true)

			if learn && !lcChosen && tp.isSegmentActive(seg, ds.LearnStateLast) {
				lcChosen = true
				ds.LearnState.Set(c, i, true)
			}
		}

		if !buPredicted {
			// No cell saw this coming: the whole column fires
			ds.ActiveState.FillRow(c, true)
		}

		if learn && !lcChosen {
			i, s := tp.getBestMatchingCell(c, ds.ActiveStateLast)
			ds.LearnState.Set(c, i, true)

			segUpdate := tp.getSegmentActiveSynapses(c, i, s, ds.ActiveStateLast, true)
			segUpdate.sequenceSegment = true
			tp.addToSegmentUpdates(c, i, segUpdate)
		}
	}
}

/*
Phase 2: compute the predictive state. A cell predicts when one of its
segments has at least ActivationThreshold connected synapses onto
cells active at t. Each activating segment contributes its duty cycle
to the cell and column confidences, which are then normalized to sum
to 1 across the region. When learning, two updates are queued per
activating segment: one reinforcing the segment that fired and one
provisional update toward the best match against t-1.
*/
func (tp *TemporalPooler) phase2(learn bool) {
	ds := tp.DynamicState

	ds.PredictedState.Clear()
	ds.CellConfidence.Fill(0)
	utils.FillSliceFloat64(ds.ColConfidence, 0)

	for c := 0; c < tp.params.NumberOfCols; c++ {
		for i := 0; i < tp.params.CellsPerColumn; i++ {
			for _, s := range tp.connections.SegmentsForCell(c, i) {
				seg := tp.connections.Segment(s)

				// Check if it has the min number of active synapses;
				// confidences count synapses below the connected threshold too
				numActiveSyns := tp.getSegmentActivityLevel(seg, ds.ActiveState, false)
				if numActiveSyns < tp.params.ActivationThreshold {
					continue
				}

				// Incorporate the confidence into the owner cell and column
				dc := seg.dutyCycle(tp.lrnIterationIdx, false, true)
				ds.CellConfidence.Set(c, i, ds.CellConfidence.Get(c, i)+dc)
				ds.ColConfidence[c] += dc

				if !tp.isSegmentActive(seg, ds.ActiveState) {
					continue
				}

				ds.PredictedState.Set(c, i, true)

				if learn {
					seg.totalActivations++
					seg.lastActiveIteration = tp.lrnIterationIdx

					activeUpdate := tp.getSegmentActiveSynapses(c, i, s, ds.ActiveState, false)
					tp.addToSegmentUpdates(c, i, activeUpdate)

					predSegment := tp.getBestMatchingSegment(c, i, ds.ActiveStateLast)
					predUpdate := tp.getSegmentActiveSynapses(c, i, predSegment, ds.ActiveStateLast, true)
					tp.addToSegmentUpdates(c, i, predUpdate)
				}
			}
		}
	}

	// Normalize column and cell confidences
	sumConfidences := floats.Sum(ds.ColConfidence)
	if sumConfidences > 0 {
		floats.DivConst(sumConfidences, ds.ColConfidence)
		ds.CellConfidence.DivScaler(sumConfidences)
	}
}

/*
Phase 3: commit. Learning cells apply their queued updates positively;
cells whose prediction just broke (predicted at t-1, not at t) apply
them negatively. Everyone else keeps the queue, minus entries older
than SegUpdateValidDuration.
*/
func (tp *TemporalPooler) phase3() {
	ds := tp.DynamicState

	for c := 0; c < tp.params.NumberOfCols; c++ {
		for i := 0; i < tp.params.CellsPerColumn; i++ {
			key := utils.TupleInt{A: c, B: i}
			updates, ok := tp.segmentUpdates[key]
			if !ok {
				continue
			}

			if ds.LearnState.Get(c, i) {
				for _, u := range updates {
					tp.adaptSegment(u.Update, true)
				}
				delete(tp.segmentUpdates, key)
			} else if !ds.PredictedState.Get(c, i) && ds.PredictedStateLast.Get(c, i) {
				for _, u := range updates {
					tp.adaptSegment(u.Update, false)
				}
				delete(tp.segmentUpdates, key)
			} else {
				// Keep pending, but forget anything stale
				kept := updates[:0]
				for _, u := range updates {
					if tp.lrnIterationIdx-u.CreationDate <= tp.params.SegUpdateValidDuration {
						kept = append(kept, u)
					}
				}
				if len(kept) == 0 {
					delete(tp.segmentUpdates, key)
				} else {
					tp.segmentUpdates[key] = kept
				}
			}
		}
	}
}

/*
A segment is active if it has >= ActivationThreshold connected
synapses that are active due to activeState.
*/
func (tp *TemporalPooler) isSegmentActive(seg *Segment, activeState *SparseBinaryMatrix) bool {
	if len(seg.syns) < tp.params.ActivationThreshold {
		return false
	}

	activity := 0
	for _, syn := range seg.syns {
		if syn.Permanence >= tp.params.ConnectedPerm {
			if activeState.Get(syn.SrcCellCol, syn.SrcCellIdx) {
				activity++
				if activity >= tp.params.ActivationThreshold {
					return true
				}
			}
		}
	}

	return false
}

/*
This routine computes the activity level of a segment given activeState.
It can tally up only connected synapses (permanence >= ConnectedPerm),
or all the synapses of the segment.
*/
func (tp *TemporalPooler) getSegmentActivityLevel(seg *Segment, activeState *SparseBinaryMatrix,
	connectedSynapsesOnly bool) int {
	activity := 0
	for _, syn := range seg.syns {
		if connectedSynapsesOnly && syn.Permanence < tp.params.ConnectedPerm {
			continue
		}
		if activeState.Get(syn.SrcCellCol, syn.SrcCellIdx) {
			activity++
		}
	}
	return activity
}

/*
Returns the handle of the most-active active segment on the cell,
preferring sequence segments. Ties keep the lowest handle so runs
reproduce. -1 when no segment is active.
*/
func (tp *TemporalPooler) getActiveSegment(c, i int, activeState *SparseBinaryMatrix) int {
	best := -1
	bestActivity := 0
	bestIsSequence := false

	for _, s := range tp.connections.SegmentsForCell(c, i) {
		seg := tp.connections.Segment(s)
		if !tp.isSegmentActive(seg, activeState) {
			continue
		}
		activity := tp.getSegmentActivityLevel(seg, activeState, true)

		better := false
		switch {
		case best < 0:
			better = true
		case seg.isSequenceSeg && !bestIsSequence:
			better = true
		case seg.isSequenceSeg == bestIsSequence && activity > bestActivity:
			better = true
		}
		if better {
			best = s
			bestActivity = activity
			bestIsSequence = seg.isSequenceSeg
		}
	}

	return best
}

/*
Returns the segment with the greatest number of active synapses under
activeState, counting synapses below the connected threshold, but
requiring at least MinThreshold of them. -1 when no segment qualifies.
Ties keep the lowest handle.
*/
func (tp *TemporalPooler) getBestMatchingSegment(c, i int, activeState *SparseBinaryMatrix) int {
	best := -1
	bestActivity := tp.params.MinThreshold - 1

	for _, s := range tp.connections.SegmentsForCell(c, i) {
		seg := tp.connections.Segment(s)
		activity := tp.getSegmentActivityLevel(seg, activeState, false)
		if activity > bestActivity {
			best = s
			bestActivity = activity
		}
	}

	return best
}

/*
Returns the cell in the column owning the best matching segment, with
that segment's handle. If no cell has a matching segment, returns the
cell with the fewest segments and -1. Ties break to the lowest cell
index.
*/
func (tp *TemporalPooler) getBestMatchingCell(c int, activeState *SparseBinaryMatrix) (int, int) {
	bestCell := -1
	bestSeg := -1
	bestActivity := 0

	for i := 0; i < tp.params.CellsPerColumn; i++ {
		s := tp.getBestMatchingSegment(c, i, activeState)
		if s < 0 {
			continue
		}
		activity := tp.getSegmentActivityLevel(tp.connections.Segment(s), activeState, false)
		if activity > bestActivity {
			bestCell = i
			bestSeg = s
			bestActivity = activity
		}
	}

	if bestCell >= 0 {
		return bestCell, bestSeg
	}

	fewest := -1
	for i := 0; i < tp.params.CellsPerColumn; i++ {
		n := len(tp.connections.SegmentsForCell(c, i))
		if fewest < 0 || n < fewest {
			fewest = n
			bestCell = i
		}
	}
	return bestCell, -1
}

/*
Builds the segment update for (c,i) against the given active state:
the indices of the segment's synapses whose source was active, plus --
when newSynapses is set -- up to NewSynapseCount new synapses sampled
from the cells that were in learn state at t-1. segHandle may be the
-1 sentinel meaning "create a new segment on commit".
*/
func (tp *TemporalPooler) getSegmentActiveSynapses(c, i, segHandle int,
	activeState *SparseBinaryMatrix, newSynapses bool) *SegmentUpdate {

	update := &SegmentUpdate{columnIdx: c, cellIdx: i, segment: segHandle}

	if segHandle >= 0 {
		seg := tp.connections.Segment(segHandle)
		for idx, syn := range seg.syns {
			if activeState.Get(syn.SrcCellCol, syn.SrcCellIdx) {
				update.activeSynapses = append(update.activeSynapses,
					SynapseUpdateState{Index: idx})
			}
		}
	}

	if newSynapses {
		nToAdd := tp.params.NewSynapseCount - len(update.activeSynapses)
		if nToAdd > 0 {
			update.activeSynapses = append(update.activeSynapses,
				tp.chooseCellsToLearnFrom(c, i, segHandle, nToAdd)...)
		}
	}

	return update
}

/*
Samples up to n distinct source cells from the cells that were in
learn state at t-1, never the target cell itself and never a source
the segment already has. Sampling uses the pooler's own seeded rand.
*/
func (tp *TemporalPooler) chooseCellsToLearnFrom(c, i, segHandle, n int) []SynapseUpdateState {
	var candidates []utils.TupleInt

	for _, entry := range tp.DynamicState.LearnStateLast.Entries() {
		if entry.Row == c && entry.Col == i {
			continue
		}
		if segHandle >= 0 &&
			tp.connections.Segment(segHandle).synapseIndex(entry.Row, entry.Col) >= 0 {
			continue
		}
		candidates = append(candidates, utils.TupleInt{A: entry.Row, B: entry.Col})
	}

	if len(candidates) == 0 {
		return nil
	}

	perm := tp.rand.Perm(len(candidates))
	if n > len(candidates) {
		n = len(candidates)
	}

	result := make([]SynapseUpdateState, 0, n)
	for _, idx := range perm[:n] {
		result = append(result, SynapseUpdateState{
			New:    true,
			SrcCol: candidates[idx].A,
			SrcIdx: candidates[idx].B,
		})
	}
	return result
}

/*
Computes output for both learning and inference. In the Normal mode
the output is the boolean OR of activeState and predictedState at t,
flattened column-major. Stores CurrentOutput for checkPrediction.
*/
func (tp *TemporalPooler) computeOutput() []bool {
	ds := tp.DynamicState

	switch tp.params.OutputType {
	case ActiveState1CellPerCol:
		// Fire only the most confident cell in each active column.
		// CellConfidence is (numberOfCols x cellsPerColumn), so the
		// per-column argmax is the argmax over each matrix row.
		mostActiveCellPerCol := ds.CellConfidence.ArgMaxRows()
		tp.CurrentOutput = NewSparseBinaryMatrix(ds.ActiveState.Height, ds.ActiveState.Width)

		for _, c := range ds.ActiveState.NonZeroRows() {
			tp.CurrentOutput.Set(c, mostActiveCellPerCol[c], true)
		}
	case ActiveState:
		tp.CurrentOutput = ds.ActiveState.Copy()
	case Normal:
		tp.CurrentOutput = ds.PredictedState.Or(ds.ActiveState)
	default:
		panic("Unknown output type")
	}

	return tp.CurrentOutput.Flatten()
}

/*
Compute the column confidences from the current cell confidences:
simply the stored column confidences from the last compute. Returns
a copy, the internal slice is reused between timesteps.
*/
func (tp *TemporalPooler) columnConfidences() []float64 {
	result := make([]float64, len(tp.DynamicState.ColConfidence))
	copy(result, tp.DynamicState.ColConfidence)
	return result
}

/*
Top-down compute - generate expected input given output of the TP.
For now there is no level above us, so this is simply the column
confidences.
*/
func (tp *TemporalPooler) TopDownCompute() []float64 {
	return tp.columnConfidences()
}

/*
This function gives the future predictions for nSteps timesteps
starting from the current TP state. The TP is returned to its original
state at the end before returning: Predict is a read-only diagnostic,
not a third retained timestep.

Returns a matrix of shape (nSteps, NumberOfCols): the i'th row gives
the prediction for every column at timestep t+i+1.
*/
func (tp *TemporalPooler) Predict(nSteps int) *matrix.DenseMatrix {
	if nSteps <= 0 {
		panic("nSteps must be greater than zero")
	}

	// Roll forward on a scratch copy so callers holding references
	// into the live state never observe the intermediate steps
	pristineTPDynamicState := tp.DynamicState
	tp.DynamicState = pristineTPDynamicState.Copy()

	multiStepColumnPredictions := matrix.Zeros(nSteps, tp.params.NumberOfCols)

	// This is a (nSteps-1)+half loop: phase 2 of the regular compute
	// already predicted for timestep t+1, use that prediction for free.
	step := 0
	for {
		multiStepColumnPredictions.FillRow(step, tp.TopDownCompute())
		if step == nSteps-1 {
			break
		}
		step++

		// Predicted state at t becomes the active state at t+1
		tp.DynamicState.ActiveState = tp.DynamicState.PredictedState.Copy()
		tp.phase2(false)
	}

	// Revert the dynamic state to the saved state
	tp.DynamicState = pristineTPDynamicState

	return multiStepColumnPredictions
}

/*
Reset the state of all cells at a sequence boundary. All per-timestep
states in both slots are cleared and pending segment updates dropped;
learned permanences and duty cycles are untouched.
*/
func (tp *TemporalPooler) Reset() {
	ds := tp.DynamicState

	ds.ActiveState.Clear()
	ds.ActiveStateLast.Clear()
	ds.PredictedState.Clear()
	ds.PredictedStateLast.Clear()
	ds.LearnState.Clear()
	ds.LearnStateLast.Clear()
	ds.CellConfidence.Fill(0)
	ds.CellConfidenceLast.Fill(0)
	utils.FillSliceFloat64(ds.ColConfidence, 0)
	utils.FillSliceFloat64(ds.ColConfidenceLast, 0)

	tp.segmentUpdates = make(map[utils.TupleInt][]UpdateState)

	tp.internalStats.NInfersSinceReset = 0
	tp.internalStats.CurPredictionScore = 0
	tp.internalStats.CurPredictionScore2 = 0
	tp.internalStats.CurFalseNegativeScore = 0
	tp.internalStats.CurFalsePositiveScore = 0
	tp.internalStats.CurMissing = 0
	tp.internalStats.CurExtra = 0
}

//Returns (column, cell) pairs with predictiveState true at t
func (tp *TemporalPooler) PredictiveCells() []utils.TupleInt {
	var result []utils.TupleInt
	for _, entry := range tp.DynamicState.PredictedState.Entries() {
		result = append(result, utils.TupleInt{A: entry.Row, B: entry.Col})
	}
	return result
}

//Returns a copy of the accumulated stats
func (tp *TemporalPooler) Stats() TpStats {
	return tp.internalStats
}

func (tp *TemporalPooler) Connections() *Connections {
	return tp.connections
}
