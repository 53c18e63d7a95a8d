package htm

import (
	"fmt"
	"math/rand"

	"github.com/cznic/mathutil"
	"github.com/zacg/ints"

	"github.com/nebkor/htm/utils"
)

/*
Baseline prediction methods, for calibrating the real pooler's
prediction scores against dumb predictors.

(n = half the number of average input columns on)
"random" - predict n random columns
"zeroth" - predict the n most common columns learned from the input
"last"   - predict the last input
"all"    - predict all columns
"lots"   - predict the 2n most common columns learned from the input

Both "random" and "all" should give a prediction score of zero.
*/
type PredictorMethod int

const (
	Random PredictorMethod = 1
	Zeroth PredictorMethod = 2
	Last   PredictorMethod = 3
	All    PredictorMethod = 4
	Lots   PredictorMethod = 5
)

type TrivialPredictorState struct {
	ActiveState        []bool
	ActiveStateLast    []bool
	PredictedState     []bool
	PredictedStateLast []bool
	Confidence         []float64
	ConfidenceLast     []float64
}

type TrivialPredictor struct {
	NumOfCols      int
	Methods        []PredictorMethod
	Verbosity      int
	BurnIn         int
	InternalStats  map[PredictorMethod]*TpStats
	State          map[PredictorMethod]*TrivialPredictorState
	ColumnCount    []int
	AverageDensity float64

	rand *rand.Rand
}

func NewTrivialPredictor(numberOfCols int, methods []PredictorMethod, seed int64) *TrivialPredictor {
	tp := new(TrivialPredictor)

	tp.NumOfCols = numberOfCols
	tp.Methods = methods
	tp.BurnIn = 1
	tp.InternalStats = make(map[PredictorMethod]*TpStats)
	tp.State = make(map[PredictorMethod]*TrivialPredictorState)
	tp.rand = rand.New(rand.NewSource(seed))

	for _, method := range methods {
		tps := new(TrivialPredictorState)
		tps.ActiveState = make([]bool, numberOfCols)
		tps.ActiveStateLast = make([]bool, numberOfCols)
		tps.Confidence = make([]float64, numberOfCols)
		tps.ConfidenceLast = make([]float64, numberOfCols)
		tps.PredictedState = make([]bool, numberOfCols)
		tps.PredictedStateLast = make([]bool, numberOfCols)
		tp.State[method] = tps

		tp.InternalStats[method] = new(TpStats)
	}

	// Number of times each column has been active during learning
	tp.ColumnCount = make([]int, numberOfCols)

	// Running average of input density
	tp.AverageDensity = 0.05

	return tp
}

func (tp *TrivialPredictor) infer(activeColumns []int) {
	numColsToPredict := int(0.5 + tp.AverageDensity*float64(tp.NumOfCols))

	for _, method := range tp.Methods {
		state := tp.State[method]

		// Copy t into t-1
		copy(state.ActiveStateLast, state.ActiveState)
		copy(state.PredictedStateLast, state.PredictedState)
		copy(state.ConfidenceLast, state.Confidence)

		utils.FillSliceBool(state.ActiveState, false)
		utils.FillSliceBool(state.PredictedState, false)
		utils.FillSliceFloat64(state.Confidence, 0.0)

		for _, val := range activeColumns {
			state.ActiveState[val] = true
		}

		var predictedCols []int

		switch method {
		case Random:
			// Randomly predict N columns
			predictedCols = tp.rand.Perm(tp.NumOfCols)[:numColsToPredict]
		case Zeroth:
			// Always predict the top N most frequent columns
			predictedCols = tp.mostFrequentColumns(numColsToPredict)
		case Last:
			// Always predict the last input
			predictedCols = utils.OnIndices(state.ActiveState)
		case All:
			// Always predict all columns
			predictedCols = make([]int, tp.NumOfCols)
			utils.FillSliceWithIdxInt(predictedCols)
		case Lots:
			// Always predict 2 * the top N most frequent columns
			n := mathutil.Min(2*numColsToPredict, tp.NumOfCols)
			predictedCols = tp.mostFrequentColumns(n)
		default:
			panic("prediction method not implemented")
		}

		for _, val := range predictedCols {
			state.PredictedState[val] = true
			state.Confidence[val] = 1.0
		}

		if tp.Verbosity > 1 {
			fmt.Println("Trivial prediction:", method)
			fmt.Println(" numColsToPredict:", numColsToPredict)
			fmt.Println(predictedCols)
		}

		tp.updateStats(method, activeColumns)
	}
}

//Returns the n most frequently active columns so far
func (tp *TrivialPredictor) mostFrequentColumns(n int) []int {
	counts := make([]int, len(tp.ColumnCount))
	copy(counts, tp.ColumnCount)
	inds := make([]int, len(counts))
	ints.Argsort(counts, inds)
	return inds[len(inds)-n:]
}

/*
Do one iteration of trivial learning: update the average input density
and the per-column activity counts, then predict per each method.
*/
func (tp *TrivialPredictor) Learn(activeColumns []int) {
	// Running average of bottom up density
	density := float64(len(activeColumns)) / float64(tp.NumOfCols)
	tp.AverageDensity = 0.95*tp.AverageDensity + 0.05*density

	// Running count of how often each column has been active
	for _, val := range activeColumns {
		tp.ColumnCount[val]++
	}

	tp.infer(activeColumns)
}

/*
Scores the previous timestep's prediction against the current
bottom-up input, mirroring the real pooler's stat semantics.
*/
func (tp *TrivialPredictor) updateStats(method PredictorMethod, activeColumns []int) {
	state := tp.State[method]
	stats := tp.InternalStats[method]

	stats.NInfersSinceReset++

	predicted := utils.OnIndices(state.PredictedStateLast)
	numExtra := len(utils.Complement(predicted, activeColumns))
	numMissing := len(utils.Complement(activeColumns, predicted))

	positiveSum := utils.SumSliceFloat64(
		utils.SubsetSliceFloat64(state.ConfidenceLast, activeColumns))
	totalSum := utils.SumSliceFloat64(state.ConfidenceLast)

	positiveScore := positiveSum
	negativeScore := totalSum - positiveSum
	if currentSum := positiveScore + negativeScore; currentSum > 0 {
		positiveScore /= currentSum
		negativeScore /= currentSum
	}
	predictionScore := positiveScore - negativeScore

	stats.CurPredictionScore2 = predictionScore
	stats.CurFalseNegativeScore = 1.0 - positiveScore
	stats.CurFalsePositiveScore = negativeScore
	stats.CurMissing = float64(numMissing)
	stats.CurExtra = float64(numExtra)

	if stats.NInfersSinceReset <= tp.BurnIn {
		return
	}

	stats.NPredictions++
	numExpected := mathutil.Max(1, len(activeColumns))

	stats.TotalMissing += float64(numMissing)
	stats.TotalExtra += float64(numExtra)
	stats.PctExtraTotal += 100.0 * float64(numExtra) / float64(numExpected)
	stats.PctMissingTotal += 100.0 * float64(numMissing) / float64(numExpected)
	stats.PredictionScoreTotal2 += predictionScore
	stats.FalseNegativeScoreTotal += 1.0 - positiveScore
	stats.FalsePositiveScoreTotal += negativeScore
}

/*
Reset the state of all cells. This is normally used between sequences
while training. All internal states are reset to 0.
*/
func (tp *TrivialPredictor) Reset() {
	for _, method := range tp.Methods {
		state := tp.State[method]

		utils.FillSliceBool(state.ActiveState, false)
		utils.FillSliceBool(state.ActiveStateLast, false)
		utils.FillSliceBool(state.PredictedState, false)
		utils.FillSliceBool(state.PredictedStateLast, false)
		utils.FillSliceFloat64(state.Confidence, 0.0)
		utils.FillSliceFloat64(state.ConfidenceLast, 0.0)

		stats := tp.InternalStats[method]
		stats.NInfersSinceReset = 0
		stats.CurPredictionScore = 0.0
		stats.CurPredictionScore2 = 0.0
		stats.CurFalseNegativeScore = 0.0
		stats.CurFalsePositiveScore = 0.0
		stats.CurExtra = 0.0
		stats.CurMissing = 0.0
	}
}

/*
Reset the learning and inference stats. This will usually be called by
user code at the start of each inference run (for a particular data
set).
*/
func (tp *TrivialPredictor) ResetStats() {
	tp.Reset()

	// Additionally, reset all of the "total" values
	for _, method := range tp.Methods {
		stats := tp.InternalStats[method]
		stats.NPredictions = 0
		stats.PredictionScoreTotal = 0
		stats.PredictionScoreTotal2 = 0
		stats.FalseNegativeScoreTotal = 0
		stats.FalsePositiveScoreTotal = 0
		stats.PctExtraTotal = 0.0
		stats.PctMissingTotal = 0.0
		stats.TotalMissing = 0.0
		stats.TotalExtra = 0.0
	}
}
