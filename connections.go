package htm

import (
	"github.com/cznic/mathutil"
)

/*
Connections holds the cell/segment/synapse tables the temporal pooler
operates on. Segments live in a single flat arena and are referenced
everywhere by their index in it, so cross-column synapse graphs never
form pointer cycles and handles stay stable as the arena grows.
*/
type Connections struct {
	numColumns     int
	cellsPerColumn int

	segments []Segment
	// [column][cell] -> handles into the segments arena
	cells [][][]int
}

func NewConnections(numColumns, cellsPerColumn int) *Connections {
	c := new(Connections)
	c.numColumns = numColumns
	c.cellsPerColumn = cellsPerColumn

	c.cells = make([][][]int, numColumns)
	for col := range c.cells {
		c.cells[col] = make([][]int, cellsPerColumn)
	}
	return c
}

func (c *Connections) validateCell(col, idx int) {
	if col < 0 || col >= c.numColumns || idx < 0 || idx >= c.cellsPerColumn {
		panic("cell reference out of range")
	}
}

//Creates a segment on the specified cell, returns its handle
func (c *Connections) CreateSegment(col, idx int, isSequenceSeg bool, lrnIterationIdx int) int {
	c.validateCell(col, idx)

	seg := Segment{}
	seg.segId = len(c.segments)
	seg.isSequenceSeg = isSequenceSeg
	seg.creationIteration = lrnIterationIdx
	seg.lastActiveIteration = lrnIterationIdx
	seg.positiveActivations = 1
	seg.totalActivations = 1
	seg.lastPosDutyCycle = 1.0 / float64(mathutil.Max(1, lrnIterationIdx))
	seg.lastPosDutyCycleIteration = lrnIterationIdx

	handle := len(c.segments)
	c.segments = append(c.segments, seg)
	c.cells[col][idx] = append(c.cells[col][idx], handle)
	return handle
}

//Returns the segment for the specified handle
func (c *Connections) Segment(handle int) *Segment {
	return &c.segments[handle]
}

//Returns handles of the segments owned by the specified cell
func (c *Connections) SegmentsForCell(col, idx int) []int {
	c.validateCell(col, idx)
	return c.cells[col][idx]
}

func (c *Connections) NumSegments() int {
	return len(c.segments)
}

func (c *Connections) NumSynapses() int {
	total := 0
	for i := range c.segments {
		total += len(c.segments[i].syns)
	}
	return total
}
