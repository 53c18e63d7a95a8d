package htm

import (
	"github.com/nebkor/htm/utils"
)

/*
One entry in a SegmentUpdate's synapse list: either an existing synapse
on the target segment (Index) to reinforce, or a new synapse to create
toward the source cell (SrcCol, SrcIdx).
*/
type SynapseUpdateState struct {
	New    bool
	Index  int
	SrcCol int
	SrcIdx int
}

/*
A pending, not-yet-applied change to a segment of the cell at
(columnIdx, cellIdx). segment is a handle into the Connections arena;
-1 means a new segment is created on commit, flagged with
sequenceSegment. Queued updates are applied positively, applied
negatively, or aged out -- never left pending indefinitely.
*/
type SegmentUpdate struct {
	columnIdx       int
	cellIdx         int
	segment         int
	activeSynapses  []SynapseUpdateState
	sequenceSegment bool
}

type UpdateState struct {
	//creation date refers to iteration idx
	CreationDate int
	Update       *SegmentUpdate
}

/*
Store a dated potential segment update. The "date" (iteration index) is
used later to determine whether the update is too old and should be
forgotten. This is controlled by parameter SegUpdateValidDuration.
*/
func (tp *TemporalPooler) addToSegmentUpdates(c, i int, segUpdate *SegmentUpdate) {
	if segUpdate == nil || len(segUpdate.activeSynapses) == 0 {
		return
	}

	// key = (column index, cell index in column)
	key := utils.TupleInt{A: c, B: i}

	newUpdate := UpdateState{tp.lrnIterationIdx, segUpdate}
	tp.segmentUpdates[key] = append(tp.segmentUpdates[key], newUpdate)
}

/*
This function applies segment update information to a segment in a
cell.

On positive reinforcement, synapses on the active list get their
permanence counts incremented by PermanenceInc and all other synapses
on the segment get decremented by PermanenceDec; synapses named in the
update that do not yet exist are created at InitialPerm. On negative
reinforcement only the active list is decremented.

Returns true if some synapses were decremented to 0 and the segment is
a candidate for trimming.
*/
func (tp *TemporalPooler) adaptSegment(segUpdate *SegmentUpdate, positive bool) bool {
	trimSegment := false

	// segment is the create-new sentinel when negative reinforcement
	// arrives before the segment exists; there is nothing to weaken.
	if segUpdate.segment < 0 {
		if positive {
			handle := tp.connections.CreateSegment(segUpdate.columnIdx, segUpdate.cellIdx,
				segUpdate.sequenceSegment, tp.lrnIterationIdx)
			seg := tp.connections.Segment(handle)
			for _, val := range segUpdate.activeSynapses {
				if val.New {
					seg.AddSynapse(val.SrcCol, val.SrcIdx, tp.params.InitialPerm)
				}
			}
		}
		return false
	}

	seg := tp.connections.Segment(segUpdate.segment)

	var synToUpdate []int
	for _, val := range segUpdate.activeSynapses {
		if !val.New && val.Index < len(seg.syns) {
			synToUpdate = append(synToUpdate, val.Index)
		}
	}

	if positive {
		// Mark it as recently useful
		seg.lastActiveIteration = tp.lrnIterationIdx

		// Update frequency and positiveActivations
		seg.positiveActivations++
		seg.dutyCycle(tp.lrnIterationIdx, true, false)

		// First, decrement synapses that are not active
		var inactiveSynIndices []int
		for i := range seg.syns {
			if !utils.ContainsInt(i, synToUpdate) {
				inactiveSynIndices = append(inactiveSynIndices, i)
			}
		}
		trimSegment = seg.updateSynapses(inactiveSynIndices, -tp.params.PermanenceDec, tp.params.PermanenceMax)

		// Now, increment active synapses
		seg.updateSynapses(synToUpdate, tp.params.PermanenceInc, tp.params.PermanenceMax)

		var synsToAdd []SynapseUpdateState
		for _, val := range segUpdate.activeSynapses {
			if val.New {
				synsToAdd = append(synsToAdd, val)
			}
		}

		// If we have fixed resources, get rid of some old syns if necessary
		if tp.params.MaxSynapsesPerSegment > 0 &&
			len(synsToAdd)+len(seg.syns) > tp.params.MaxSynapsesPerSegment {
			numToFree := len(seg.syns) + len(synsToAdd) - tp.params.MaxSynapsesPerSegment
			seg.freeNSynapses(numToFree, inactiveSynIndices)
		}

		for _, val := range synsToAdd {
			seg.AddSynapse(val.SrcCol, val.SrcIdx, tp.params.InitialPerm)
		}
	} else {
		// Negative reinforcement: weaken only the synapses that drove
		// the broken prediction.
		trimSegment = seg.updateSynapses(synToUpdate, -tp.params.PermanenceDec, tp.params.PermanenceMax)
	}

	return trimSegment
}
