package htm

import (
	"fmt"
	"math"
	"sort"
)

//Lateral synapse onto another cell in the region
type Synapse struct {
	SrcCellCol int
	SrcCellIdx int
	Permanence float64
}

/*
The Segment struct is a container for all of the segment variables and
the synapses it owns. Segments are held in the Connections arena and
referenced by integer handle; they are created lazily during learning
and never destroyed.
*/
type Segment struct {
	segId                     int
	isSequenceSeg             bool
	creationIteration         int
	lastActiveIteration       int
	positiveActivations       int
	totalActivations          int
	lastPosDutyCycle          float64
	lastPosDutyCycleIteration int
	syns                      []Synapse
}

// The duty cycle ages at which the running-average alpha switches. A
// young segment's duty cycle is its exact positive-activation rate;
// older segments decay exponentially with a progressively smaller alpha.
var dutyCycleTiers = []int{0, 100, 320, 1000, 3200, 10000, 32000, 100000, 320000}

var dutyCycleAlphas = []float64{0.0, 0.32, 0.1, 0.032, 0.01, 0.0032, 0.001, 0.00032, 0.0001}

/*
Returns the positive-activation duty cycle of this segment as of the
specified learning iteration. If active is true the current iteration
counts as a positive activation. readOnly skips updating the cached
value, which phase 2 requires since it may evaluate a segment several
times per timestep.
*/
func (s *Segment) dutyCycle(lrnIterationIdx int, active, readOnly bool) float64 {
	if lrnIterationIdx <= dutyCycleTiers[1] {
		dc := float64(s.positiveActivations) / float64(lrnIterationIdx)
		if !readOnly {
			s.lastPosDutyCycleIteration = lrnIterationIdx
			s.lastPosDutyCycle = dc
		}
		return dc
	}

	age := lrnIterationIdx - s.lastPosDutyCycleIteration
	if age == 0 && !active {
		return s.lastPosDutyCycle
	}

	alpha := dutyCycleAlphas[len(dutyCycleAlphas)-1]
	for i := len(dutyCycleTiers) - 1; i >= 1; i-- {
		if lrnIterationIdx > dutyCycleTiers[i] {
			alpha = dutyCycleAlphas[i]
			break
		}
	}

	dc := math.Pow(1.0-alpha, float64(age)) * s.lastPosDutyCycle
	if active {
		dc += alpha
	}

	if !readOnly {
		s.lastPosDutyCycleIteration = lrnIterationIdx
		s.lastPosDutyCycle = dc
	}

	return dc
}

//Returns index of synapse sourced at the specified cell, -1 if absent
func (s *Segment) synapseIndex(srcCol, srcIdx int) int {
	for i, syn := range s.syns {
		if syn.SrcCellCol == srcCol && syn.SrcCellIdx == srcIdx {
			return i
		}
	}
	return -1
}

//Adds a synapse toward the specified source cell. A segment never
//holds two synapses onto the same source.
func (s *Segment) AddSynapse(srcCol, srcIdx int, perm float64) {
	if s.synapseIndex(srcCol, srcIdx) >= 0 {
		return
	}
	s.syns = append(s.syns, Synapse{srcCol, srcIdx, perm})
}

/*
Adjusts the permanence of the synapses at the specified indices by
delta, clamping to [0, permMax]. Returns true if any synapse was
decremented to 0.
*/
func (s *Segment) updateSynapses(indices []int, delta, permMax float64) bool {
	reachedZero := false
	for _, i := range indices {
		p := s.syns[i].Permanence + delta
		if p < 0 {
			p = 0
			reachedZero = true
		}
		if p > permMax {
			p = permMax
		}
		s.syns[i].Permanence = p
	}
	return reachedZero
}

/*
Removes the n least useful synapses: weakest among the inactive ones
first, then weakest overall. Used when MaxSynapsesPerSegment would be
exceeded.
*/
func (s *Segment) freeNSynapses(n int, inactiveIndices []int) {
	if n <= 0 {
		return
	}

	candidates := make([]int, len(inactiveIndices))
	copy(candidates, inactiveIndices)
	sort.Slice(candidates, func(a, b int) bool {
		return s.syns[candidates[a]].Permanence < s.syns[candidates[b]].Permanence
	})

	if len(candidates) < n {
		rest := make([]int, 0, len(s.syns))
		for i := range s.syns {
			if !containsIdx(i, candidates) {
				rest = append(rest, i)
			}
		}
		sort.Slice(rest, func(a, b int) bool {
			return s.syns[rest[a]].Permanence < s.syns[rest[b]].Permanence
		})
		candidates = append(candidates, rest...)
	}

	doomed := candidates[:n]
	sort.Sort(sort.Reverse(sort.IntSlice(doomed)))
	for _, i := range doomed {
		s.syns = append(s.syns[:i], s.syns[i+1:]...)
	}
}

func containsIdx(q int, vals []int) bool {
	for _, v := range vals {
		if v == q {
			return true
		}
	}
	return false
}

func (s *Segment) ToString() string {
	result := fmt.Sprintf("[seg %v seq: %v created: %v lastActive: %v pos: %v total: %v syns:",
		s.segId, s.isSequenceSeg, s.creationIteration, s.lastActiveIteration,
		s.positiveActivations, s.totalActivations)
	for _, syn := range s.syns {
		result += fmt.Sprintf(" (%v,%v):%.2f", syn.SrcCellCol, syn.SrcCellIdx, syn.Permanence)
	}
	return result + "]"
}
