package htm

import (
	"fmt"
)

/*
Parameters for a spatial pooler. Permanence increment/decrement and the
connected threshold default to the classic CLA values (forgetting is
slower than learning).
*/
type SpParams struct {
	InputDimensions            []int
	ColumnDimensions           []int
	PotentialRadius            int
	PotentialPct               float64
	GlobalInhibition           bool
	NumActiveColumnsPerInhArea int
	StimulusThreshold          int
	SynPermActiveInc           float64
	SynPermInactiveDec         float64
	SynPermBelowStimulusInc    float64
	SynPermConnected           float64
	MinPctOverlapDutyCycle     float64
	MinPctActiveDutyCycle      float64
	DutyCyclePeriod            int
	MaxBoost                   float64
	Seed                       int64
	SpVerbosity                int

	SynPermMin           float64
	SynPermMax           float64
	SynPermTrimThreshold float64
	UpdatePeriod         int
	InitConnectedPct     float64
}

//Returns default spatial pooler params
func NewSpParams() SpParams {
	sp := SpParams{}

	sp.InputDimensions = []int{64}
	sp.ColumnDimensions = []int{64}
	sp.PotentialRadius = 16
	sp.PotentialPct = 0.5
	sp.GlobalInhibition = false
	sp.NumActiveColumnsPerInhArea = 5
	sp.StimulusThreshold = 0
	sp.SynPermActiveInc = 0.1
	sp.SynPermInactiveDec = 0.05
	sp.SynPermConnected = 0.2
	sp.SynPermBelowStimulusInc = sp.SynPermConnected / 10.0
	sp.MinPctOverlapDutyCycle = 0.01
	sp.MinPctActiveDutyCycle = 0.01
	sp.DutyCyclePeriod = 1000
	sp.MaxBoost = 10.0
	sp.Seed = 42
	sp.SpVerbosity = 0

	sp.SynPermMin = 0.0
	sp.SynPermMax = 1.0
	sp.SynPermTrimThreshold = sp.SynPermActiveInc / 2.0
	sp.UpdatePeriod = 50
	sp.InitConnectedPct = 0.5

	return sp
}

func (sp *SpParams) numInputs() int {
	return prodInt(sp.InputDimensions)
}

func (sp *SpParams) numColumns() int {
	return prodInt(sp.ColumnDimensions)
}

func (sp *SpParams) Validate() error {
	if sp.numInputs() < 1 {
		return ConfigError{"InputDimensions", "input size must be positive"}
	}
	if sp.numColumns() < 1 {
		return ConfigError{"ColumnDimensions", "column count must be positive"}
	}
	if sp.PotentialRadius < 1 {
		return ConfigError{"PotentialRadius", "must be at least 1"}
	}
	if sp.PotentialPct <= 0 || sp.PotentialPct > 1 {
		return ConfigError{"PotentialPct", "must be in (0,1]"}
	}
	if sp.NumActiveColumnsPerInhArea < 1 || sp.NumActiveColumnsPerInhArea > sp.numColumns() {
		return ConfigError{"NumActiveColumnsPerInhArea",
			fmt.Sprintf("must be in [1,%v]", sp.numColumns())}
	}
	if sp.StimulusThreshold < 0 {
		return ConfigError{"StimulusThreshold", "must be non-negative"}
	}
	if sp.SynPermConnected < 0 || sp.SynPermConnected > 1 {
		return ConfigError{"SynPermConnected", "must be in [0,1]"}
	}
	if sp.SynPermActiveInc < 0 || sp.SynPermActiveInc > 1 {
		return ConfigError{"SynPermActiveInc", "must be in [0,1]"}
	}
	if sp.SynPermInactiveDec < 0 || sp.SynPermInactiveDec > 1 {
		return ConfigError{"SynPermInactiveDec", "must be in [0,1]"}
	}
	if sp.SynPermBelowStimulusInc < 0 || sp.SynPermBelowStimulusInc > 1 {
		return ConfigError{"SynPermBelowStimulusInc", "must be in [0,1]"}
	}
	if sp.MinPctOverlapDutyCycle < 0 || sp.MinPctOverlapDutyCycle > 1 {
		return ConfigError{"MinPctOverlapDutyCycle", "must be in [0,1]"}
	}
	if sp.MinPctActiveDutyCycle < 0 || sp.MinPctActiveDutyCycle > 1 {
		return ConfigError{"MinPctActiveDutyCycle", "must be in [0,1]"}
	}
	if sp.DutyCyclePeriod < 1 {
		return ConfigError{"DutyCyclePeriod", "must be at least 1"}
	}
	if sp.MaxBoost < 1 {
		return ConfigError{"MaxBoost", "must be at least 1"}
	}
	if sp.SynPermMin < 0 || sp.SynPermMax > 1 || sp.SynPermMin >= sp.SynPermMax {
		return ConfigError{"SynPermMin/SynPermMax", "must satisfy 0 <= min < max <= 1"}
	}
	if sp.UpdatePeriod < 1 {
		return ConfigError{"UpdatePeriod", "must be at least 1"}
	}
	if sp.InitConnectedPct < 0 || sp.InitConnectedPct > 1 {
		return ConfigError{"InitConnectedPct", "must be in [0,1]"}
	}
	return nil
}

type TpOutputType int

const (
	Normal                 TpOutputType = 0
	ActiveState            TpOutputType = 1
	ActiveState1CellPerCol TpOutputType = 2
)

/*
Parameters for a temporal pooler.
*/
type TpParams struct {
	NumberOfCols           int
	CellsPerColumn         int
	InitialPerm            float64
	ConnectedPerm          float64
	MinThreshold           int
	NewSynapseCount        int
	PermanenceInc          float64
	PermanenceDec          float64
	PermanenceMax          float64
	ActivationThreshold    int
	SegUpdateValidDuration int
	BurnIn                 int
	CollectStats           bool
	CollectSequenceStats   bool
	Seed                   int64
	Verbosity              int
	MaxSynapsesPerSegment  int
	OutputType             TpOutputType
}

//Returns default temporal pooler params
func NewTpParams() TpParams {
	tp := TpParams{}

	tp.NumberOfCols = 500
	tp.CellsPerColumn = 4
	tp.InitialPerm = 0.11
	tp.ConnectedPerm = 0.2
	tp.MinThreshold = 8
	tp.NewSynapseCount = 15
	tp.PermanenceInc = 0.1
	tp.PermanenceDec = 0.05
	tp.PermanenceMax = 1.0
	tp.ActivationThreshold = 12
	tp.SegUpdateValidDuration = 5
	tp.BurnIn = 2
	tp.CollectStats = false
	tp.CollectSequenceStats = false
	tp.Seed = 42
	tp.Verbosity = 0
	tp.MaxSynapsesPerSegment = -1
	tp.OutputType = Normal

	return tp
}

func (tp *TpParams) Validate() error {
	if tp.NumberOfCols < 1 {
		return ConfigError{"NumberOfCols", "must be positive"}
	}
	if tp.CellsPerColumn < 1 {
		return ConfigError{"CellsPerColumn", "must be positive"}
	}
	if tp.InitialPerm < 0 || tp.InitialPerm > 1 {
		return ConfigError{"InitialPerm", "must be in [0,1]"}
	}
	if tp.ConnectedPerm < 0 || tp.ConnectedPerm > 1 {
		return ConfigError{"ConnectedPerm", "must be in [0,1]"}
	}
	if tp.PermanenceInc < 0 || tp.PermanenceInc > 1 {
		return ConfigError{"PermanenceInc", "must be in [0,1]"}
	}
	if tp.PermanenceDec < 0 || tp.PermanenceDec > 1 {
		return ConfigError{"PermanenceDec", "must be in [0,1]"}
	}
	if tp.PermanenceMax <= 0 || tp.PermanenceMax > 1 {
		return ConfigError{"PermanenceMax", "must be in (0,1]"}
	}
	if tp.ActivationThreshold < 1 {
		return ConfigError{"ActivationThreshold", "must be positive"}
	}
	if tp.MinThreshold < 1 || tp.MinThreshold > tp.ActivationThreshold {
		return ConfigError{"MinThreshold",
			fmt.Sprintf("must be in [1,%v]", tp.ActivationThreshold)}
	}
	if tp.NewSynapseCount < 1 {
		return ConfigError{"NewSynapseCount", "must be positive"}
	}
	if tp.SegUpdateValidDuration < 1 {
		return ConfigError{"SegUpdateValidDuration", "must be at least 1"}
	}
	if tp.BurnIn < 0 {
		return ConfigError{"BurnIn", "must be non-negative"}
	}
	if tp.MaxSynapsesPerSegment != -1 {
		if tp.MaxSynapsesPerSegment < 1 {
			return ConfigError{"MaxSynapsesPerSegment", "must be -1 or positive"}
		}
		if tp.MaxSynapsesPerSegment < tp.NewSynapseCount {
			return ConfigError{"MaxSynapsesPerSegment", "must be >= NewSynapseCount"}
		}
	}
	switch tp.OutputType {
	case Normal, ActiveState, ActiveState1CellPerCol:
	default:
		return ConfigError{"OutputType", "unknown output type"}
	}
	return nil
}

//Returns product of set of integers
func prodInt(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	result := 1
	for _, v := range vals {
		result *= v
	}
	return result
}
