package htm

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestConnectionsCreateSegment(t *testing.T) {
	c := NewConnections(10, 4)

	h := c.CreateSegment(3, 2, true, 7)
	assert.Equal(t, 0, h)

	seg := c.Segment(h)
	assert.True(t, seg.isSequenceSeg)
	assert.Equal(t, 7, seg.creationIteration)
	assert.Equal(t, 1, seg.positiveActivations)
	assert.Equal(t, 1, seg.totalActivations)
	assert.InDelta(t, 1.0/7.0, seg.lastPosDutyCycle, 1e-12)

	assert.Equal(t, []int{h}, c.SegmentsForCell(3, 2))
	assert.Equal(t, 0, len(c.SegmentsForCell(3, 1)))
}

func TestConnectionsHandlesStableAcrossGrowth(t *testing.T) {
	c := NewConnections(20, 4)

	first := c.CreateSegment(0, 0, false, 1)
	c.Segment(first).AddSynapse(5, 1, 0.4)

	// Growing the arena must not invalidate earlier handles
	for i := 0; i < 200; i++ {
		c.CreateSegment(i%20, i%4, false, i+2)
	}

	seg := c.Segment(first)
	assert.Equal(t, 1, len(seg.syns))
	assert.Equal(t, 5, seg.syns[0].SrcCellCol)
	assert.Equal(t, 1, seg.syns[0].SrcCellIdx)
	assert.Equal(t, 201, c.NumSegments())
}

func TestConnectionsCounts(t *testing.T) {
	c := NewConnections(5, 2)
	a := c.CreateSegment(0, 0, false, 1)
	b := c.CreateSegment(4, 1, true, 1)

	c.Segment(a).AddSynapse(1, 0, 0.2)
	c.Segment(a).AddSynapse(2, 0, 0.2)
	c.Segment(b).AddSynapse(3, 1, 0.2)

	assert.Equal(t, 2, c.NumSegments())
	assert.Equal(t, 3, c.NumSynapses())
}

func TestConnectionsCellOutOfRange(t *testing.T) {
	c := NewConnections(5, 2)
	assert.Panics(t, func() { c.CreateSegment(5, 0, false, 1) })
	assert.Panics(t, func() { c.SegmentsForCell(0, 2) })
}
