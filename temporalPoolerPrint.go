//
// Code related to temporal pooler diagnostics printing
//

package htm

import (
	"fmt"

	"github.com/nebkor/htm/utils"
)

type SegmentStats struct {
	NumSegments       int
	NumSynapses       int
	NumActiveSegments int
	NumActiveSynapses int

	DistSegSizes    map[int]int
	DistSegsPerCell map[int]int
	DistPermValues  map[int]int
	DistAges        map[int]int
	DistAgesLabels  []string
}

/*
Returns information about the distribution of segments, synapses and
permanence values in the current TP. If requested, also returns
information regarding the number of currently active segments and
synapses.
*/
func (tp *TemporalPooler) CalcSegmentStats(collectActiveData bool) SegmentStats {
	result := SegmentStats{}

	numAgeBuckets := 20
	ageBucketSize := (tp.lrnIterationIdx + numAgeBuckets) / numAgeBuckets

	result.DistSegsPerCell = make(map[int]int)
	result.DistSegSizes = make(map[int]int)
	result.DistPermValues = make(map[int]int)
	result.DistAges = make(map[int]int)
	result.DistAgesLabels = make([]string, numAgeBuckets)
	for i := 0; i < numAgeBuckets; i++ {
		result.DistAgesLabels[i] = fmt.Sprintf("%v-%v", i*ageBucketSize, (i+1)*ageBucketSize-1)
	}

	for c := 0; c < tp.params.NumberOfCols; c++ {
		for i := 0; i < tp.params.CellsPerColumn; i++ {
			segs := tp.connections.SegmentsForCell(c, i)

			result.NumSegments += len(segs)
			result.DistSegsPerCell[len(segs)]++

			for _, s := range segs {
				seg := tp.connections.Segment(s)

				result.NumSynapses += len(seg.syns)
				result.DistSegSizes[len(seg.syns)]++

				// Permanence value histogram in buckets of 0.1
				for _, syn := range seg.syns {
					result.DistPermValues[int(syn.Permanence*10)]++
				}

				// Segment age histogram
				age := tp.lrnIterationIdx - seg.lastActiveIteration
				result.DistAges[age/ageBucketSize]++

				if collectActiveData {
					if tp.isSegmentActive(seg, tp.DynamicState.ActiveState) {
						result.NumActiveSegments++
					}
					for _, syn := range seg.syns {
						if tp.DynamicState.ActiveState.Get(syn.SrcCellCol, syn.SrcCellIdx) {
							result.NumActiveSynapses++
						}
					}
				}
			}
		}
	}

	return result
}

/*
Print the list of [column, cellIdx] indices for each of the active
cells in state.
*/
func (tp *TemporalPooler) printActiveIndices(state *SparseBinaryMatrix) {
	entries := state.Entries()
	if len(entries) == 0 {
		fmt.Println("None")
		return
	}
	fmt.Println(entries)
}

/*
Prints a cell's information
*/
func (tp *TemporalPooler) printCell(c int, i int, onlyActiveSegments bool) {
	segs := tp.connections.SegmentsForCell(c, i)
	if len(segs) == 0 {
		return
	}

	fmt.Printf("Column: %v Cell: %v - %v segment(s)\n", c, i, len(segs))
	for _, s := range segs {
		seg := tp.connections.Segment(s)
		isActive := tp.isSegmentActive(seg, tp.DynamicState.ActiveState)
		if !onlyActiveSegments || isActive {
			marker := " "
			if isActive {
				marker = "*"
			}
			fmt.Printf("%vSeg: %v %v\n", marker, s, seg.ToString())
		}
	}
}

/*
Print all cell information
*/
func (tp *TemporalPooler) printCells(predictedOnly bool) {
	if predictedOnly {
		fmt.Println("--- PREDICTED CELLS ---")
	} else {
		fmt.Println("--- ALL CELLS ---")
	}

	fmt.Println("Activation threshold:", tp.params.ActivationThreshold)
	fmt.Println("min threshold:", tp.params.MinThreshold)
	fmt.Println("connected perm:", tp.params.ConnectedPerm)

	for c := 0; c < tp.params.NumberOfCols; c++ {
		for i := 0; i < tp.params.CellsPerColumn; i++ {
			if !predictedOnly || tp.DynamicState.PredictedState.Get(c, i) {
				tp.printCell(c, i, predictedOnly)
			}
		}
	}
}

/*
Called at the end of inference to print out various diagnostic
information based on the current verbosity level.
*/
func (tp *TemporalPooler) printComputeEnd(output []bool, learn bool) {
	ds := tp.DynamicState

	if tp.params.Verbosity < 3 {
		fmt.Println("TP: learn:", learn)
		fmt.Printf("TP: active outputs(%v):\n", utils.CountTrue(output))
		fmt.Print(NewSparseBinaryMatrixFromDense1D(output,
			tp.params.NumberOfCols, tp.params.CellsPerColumn).ToString())
		return
	}

	fmt.Println("----- computeEnd summary: ")
	fmt.Println("learn:", learn)

	bursting := 0
	for _, c := range ds.ActiveState.NonZeroRows() {
		if len(ds.ActiveState.GetRowIndices(c)) == ds.ActiveState.Width {
			bursting++
		}
	}
	fmt.Println("numBurstingCols:", bursting)
	fmt.Println("curPredScore2:", tp.internalStats.CurPredictionScore2)
	fmt.Println("curFalsePosScore:", tp.internalStats.CurFalsePositiveScore)
	fmt.Println("1-curFalseNegScore:", 1-tp.internalStats.CurFalseNegativeScore)

	stats := tp.CalcSegmentStats(true)
	fmt.Println("numSegments:", stats.NumSegments)
	fmt.Println("numSynapses:", stats.NumSynapses)

	fmt.Printf("----- activeState (%v on) ------\n", ds.ActiveState.TotalNonZeroCount())
	tp.printActiveIndices(ds.ActiveState)
	fmt.Printf("----- predictedState (%v on)-----\n", ds.PredictedState.TotalNonZeroCount())
	tp.printActiveIndices(ds.PredictedState)
	fmt.Printf("----- learnState (%v on) ------\n", ds.LearnState.TotalNonZeroCount())
	tp.printActiveIndices(ds.LearnState)

	fmt.Println("----- cellConfidence -----")
	for r := 0; r < ds.CellConfidence.Rows(); r++ {
		for c := 0; c < ds.CellConfidence.Cols(); c++ {
			if ds.CellConfidence.Get(r, c) != 0 {
				fmt.Printf("[%v,%v,%v]", r, c, ds.CellConfidence.Get(r, c))
			}
		}
	}
	fmt.Println()

	fmt.Println("----- colConfidence -----")
	for c, conf := range ds.ColConfidence {
		if conf != 0 {
			fmt.Printf("[%v,%v]", c, conf)
		}
	}
	fmt.Println()

	if tp.params.Verbosity == 4 {
		fmt.Println("Cells, predicted segments only:")
		tp.printCells(true)
	} else if tp.params.Verbosity >= 5 {
		fmt.Println("Cells, all segments:")
		tp.printCells(false)
	}
}
