//
// Code related to temporal pooler stats
//

package htm

import (
	"fmt"

	"github.com/cznic/mathutil"
	"github.com/zacg/floats"
	"github.com/zacg/go.matrix"

	"github.com/nebkor/htm/utils"
)

/*
Prediction-quality counters, maintained per timestep when CollectStats
is on. The Cur* fields describe the latest timestep; the totals only
accumulate once BurnIn timesteps have elapsed since the last reset.
*/
type TpStats struct {
	NInfersSinceReset       int
	NPredictions            int
	PredictionScoreTotal    float64
	PredictionScoreTotal2   float64
	FalseNegativeScoreTotal float64
	FalsePositiveScoreTotal float64
	PctExtraTotal           float64
	PctMissingTotal         float64
	TotalMissing            float64
	TotalExtra              float64

	CurPredictionScore    float64
	CurPredictionScore2   float64
	CurFalseNegativeScore float64
	CurFalsePositiveScore float64
	CurMissing            float64
	CurExtra              float64
	ConfHistogram         *matrix.DenseMatrix
}

func (s *TpStats) ToString() string {
	result := "Stats: \n"

	result += fmt.Sprintf("nInfersSinceReset %v \n", s.NInfersSinceReset)
	result += fmt.Sprintf("nPredictions %v \n", s.NPredictions)
	result += fmt.Sprintf("predictionScoreTotal %v \n", s.PredictionScoreTotal)
	result += fmt.Sprintf("predictionScoreTotal2 %v \n", s.PredictionScoreTotal2)
	result += fmt.Sprintf("falseNegativeScoreTotal %v \n", s.FalseNegativeScoreTotal)
	result += fmt.Sprintf("falsePositiveScoreTotal %v \n", s.FalsePositiveScoreTotal)
	result += fmt.Sprintf("pctExtraTotal %v \n", s.PctExtraTotal)
	result += fmt.Sprintf("pctMissingTotal %v \n", s.PctMissingTotal)
	result += fmt.Sprintf("totalMissing %v \n", s.TotalMissing)
	result += fmt.Sprintf("totalExtra %v \n", s.TotalExtra)
	result += fmt.Sprintf("curPredictionScore2 %v \n", s.CurPredictionScore2)
	result += fmt.Sprintf("curFalseNegativeScore %v \n", s.CurFalseNegativeScore)
	result += fmt.Sprintf("curFalsePositiveScore %v \n", s.CurFalsePositiveScore)
	result += fmt.Sprintf("curMissing %v \n", s.CurMissing)
	result += fmt.Sprintf("curExtra %v \n", s.CurExtra)
	if s.ConfHistogram != nil {
		result += fmt.Sprintf("confHistogram\n%v \n", s.ConfHistogram.String())
	}

	return result
}

type confidence struct {
	PredictionScore         float64
	PositivePredictionScore float64
	NegativePredictionScore float64
}

/*
This function produces goodness-of-match scores for a set of input
patterns, by checking for their presence in the current and predicted
output of the TP. Returns a global count of the number of extra and
missing bits, the confidence scores for each input pattern, and (if
requested) the bits in each input pattern that were not present in the
TP's prediction.

patternNZs is a list of input patterns to check for, each given as the
list of its non-zero column indices. output and colConfidence default
to the TP's current output and column confidences when nil; pass past
values to score an output from the past.
*/
func (tp *TemporalPooler) checkPrediction(patternNZs [][]int, output *SparseBinaryMatrix,
	colConfidence []float64, details bool) (int, int, []confidence, []int) {

	numPatterns := len(patternNZs)

	// Compute the union of all the expected patterns
	var orAll []int
	for _, pattern := range patternNZs {
		orAll = utils.Add(orAll, pattern)
	}

	// Get the list of active columns in the output
	if output == nil {
		if tp.CurrentOutput == nil {
			panic("Expected tp output")
		}
		output = tp.CurrentOutput
	}
	outputIdxs := output.NonZeroRows()

	// Compute the total extra and missing in the output
	totalExtras := len(utils.Complement(outputIdxs, orAll))
	totalMissing := len(utils.Complement(orAll, outputIdxs))

	// The percent confidence level per column is the sum of the
	// confidence levels of the cells in the column; during training each
	// segment's confidence is a running average of how often it correctly
	// predicted bottom-up activity on its column. Confidence is only
	// non-zero for predicted columns.
	if colConfidence == nil {
		colConfidence = tp.DynamicState.ColConfidence
	}

	// Assign confidences to each pattern
	confidences := make([]confidence, 0, numPatterns)
	for i := 0; i < numPatterns; i++ {
		// Sum of the column confidences for this pattern
		positivePredictionSum := floats.Sum(floats.SubSet(colConfidence, patternNZs[i]))
		// Sum of all the column confidences
		totalPredictionSum := floats.Sum(colConfidence)

		positivePredictionScore := positivePredictionSum
		negativePredictionScore := totalPredictionSum - positivePredictionSum

		// Scale the positive and negative prediction scores so that they
		// sum to 1.0
		currentSum := negativePredictionScore + positivePredictionScore
		if currentSum > 0 {
			positivePredictionScore *= 1.0 / currentSum
			negativePredictionScore *= 1.0 / currentSum
		}

		predictionScore := positivePredictionScore - negativePredictionScore
		confidences = append(confidences,
			confidence{predictionScore, positivePredictionScore, negativePredictionScore})
	}

	// Include detail? (bits in each pattern that were missing from the output)
	if details {
		var missingPatternBits []int
		for _, pattern := range patternNZs {
			missingPatternBits = utils.Add(missingPatternBits,
				utils.Complement(pattern, outputIdxs))
		}
		return totalExtras, totalMissing, confidences, missingPatternBits
	}

	return totalExtras, totalMissing, confidences, nil
}

/*
Called at the end of learning and inference. Updates the accumulated
stats with the computed prediction score: how well the prediction from
the last timestep anticipated the current bottom-up input.

bottomUpNZ is the list of active bottom-up columns; predictedState and
colConfidence are the values the TP determined on the last timestep.
*/
func (tp *TemporalPooler) updateStatsInferEnd(stats *TpStats, bottomUpNZ []int,
	predictedState *SparseBinaryMatrix, colConfidence []float64) {
	if !tp.params.CollectStats {
		return
	}

	stats.NInfersSinceReset++

	numExtra, numMissing, confidences, _ :=
		tp.checkPrediction([][]int{bottomUpNZ}, predictedState, colConfidence, false)
	predictionScore := confidences[0].PredictionScore
	positivePredictionScore := confidences[0].PositivePredictionScore
	negativePredictionScore := confidences[0].NegativePredictionScore

	// Store the stats that don't depend on burn-in
	stats.CurPredictionScore2 = predictionScore
	stats.CurFalseNegativeScore = 1.0 - positivePredictionScore
	stats.CurFalsePositiveScore = negativePredictionScore
	stats.CurMissing = float64(numMissing)
	stats.CurExtra = float64(numExtra)

	// Burn-in values mean: 0 = try to predict the first element of each
	// sequence and all subsequent, 1 = the second element and on, etc.
	if stats.NInfersSinceReset <= tp.params.BurnIn {
		return
	}

	stats.NPredictions++
	numExpected := mathutil.Max(1, len(bottomUpNZ))

	stats.TotalMissing += float64(numMissing)
	stats.TotalExtra += float64(numExtra)
	stats.PctExtraTotal += 100.0 * float64(numExtra) / float64(numExpected)
	stats.PctMissingTotal += 100.0 * float64(numMissing) / float64(numExpected)
	stats.PredictionScoreTotal2 += predictionScore
	stats.FalseNegativeScoreTotal += 1.0 - positivePredictionScore
	stats.FalsePositiveScoreTotal += negativePredictionScore

	if tp.params.CollectSequenceStats {
		// Collect cell confidences for every cell that correctly predicted
		// current bottom up input, normalized per column, into the histogram
		cc := tp.DynamicState.CellConfidenceLast.Copy()

		for r := 0; r < cc.Rows(); r++ {
			rowSum := 0.0
			for c := 0; c < cc.Cols(); c++ {
				if !tp.DynamicState.ActiveState.Get(r, c) {
					cc.Set(r, c, 0)
				}
				rowSum += cc.Get(r, c)
			}
			if rowSum > 0 {
				for c := 0; c < cc.Cols(); c++ {
					cc.Set(r, c, cc.Get(r, c)/rowSum)
				}
			}
		}

		stats.ConfHistogram.Add(cc)
	}
}

/*
Reset the learning and inference stats. This will usually be called by
user code at the start of each inference run (for a particular data
set).
*/
func (tp *TemporalPooler) ResetStats() {
	stats := &tp.internalStats

	stats.NInfersSinceReset = 0
	stats.NPredictions = 0
	stats.PredictionScoreTotal = 0
	stats.PredictionScoreTotal2 = 0
	stats.FalseNegativeScoreTotal = 0
	stats.FalsePositiveScoreTotal = 0
	stats.PctExtraTotal = 0
	stats.PctMissingTotal = 0
	stats.TotalMissing = 0
	stats.TotalExtra = 0

	stats.CurPredictionScore = 0
	stats.CurPredictionScore2 = 0
	stats.CurFalseNegativeScore = 0
	stats.CurFalsePositiveScore = 0
	stats.CurMissing = 0
	stats.CurExtra = 0

	if tp.params.CollectStats && tp.params.CollectSequenceStats {
		stats.ConfHistogram = matrix.Zeros(tp.params.NumberOfCols, tp.params.CellsPerColumn)
	}
}
