package htm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcSegmentStats(t *testing.T) {
	tp := newTestTp(t, nil)
	tp.lrnIterationIdx = 10

	a := tp.connections.CreateSegment(0, 0, true, 4)
	tp.connections.Segment(a).AddSynapse(1, 0, 0.25)
	tp.connections.Segment(a).AddSynapse(2, 0, 0.15)

	b := tp.connections.CreateSegment(0, 0, false, 10)
	tp.connections.Segment(b).AddSynapse(1, 0, 0.5)
	tp.connections.Segment(b).AddSynapse(2, 0, 0.5)
	tp.connections.Segment(b).AddSynapse(3, 0, 0.5)

	stats := tp.CalcSegmentStats(false)

	assert.Equal(t, 2, stats.NumSegments)
	assert.Equal(t, 5, stats.NumSynapses)
	assert.Equal(t, 1, stats.DistSegSizes[2])
	assert.Equal(t, 1, stats.DistSegSizes[3])
	// one cell holds both segments, the rest hold none
	assert.Equal(t, 1, stats.DistSegsPerCell[2])
	assert.Equal(t, 19, stats.DistSegsPerCell[0])
	// permanence histogram in buckets of 0.1
	assert.Equal(t, 1, stats.DistPermValues[1])
	assert.Equal(t, 1, stats.DistPermValues[2])
	assert.Equal(t, 3, stats.DistPermValues[5])
	assert.Equal(t, 20, len(stats.DistAgesLabels))

	assert.Equal(t, 0, stats.NumActiveSegments)
	assert.Equal(t, 0, stats.NumActiveSynapses)
}

func TestCalcSegmentStatsActiveData(t *testing.T) {
	tp := newTestTp(t, nil)
	tp.lrnIterationIdx = 5

	h := tp.connections.CreateSegment(0, 0, false, 5)
	tp.connections.Segment(h).AddSynapse(1, 0, 0.5)
	tp.connections.Segment(h).AddSynapse(2, 0, 0.5)
	tp.connections.Segment(h).AddSynapse(3, 0, 0.1)

	tp.DynamicState.ActiveState.Set(1, 0, true)
	tp.DynamicState.ActiveState.Set(2, 0, true)
	tp.DynamicState.ActiveState.Set(3, 0, true)

	stats := tp.CalcSegmentStats(true)

	// two connected active synapses meet the activation threshold
	assert.Equal(t, 1, stats.NumActiveSegments)
	assert.Equal(t, 3, stats.NumActiveSynapses)
}
