package htm

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSpParamsDefaultsValid(t *testing.T) {
	params := NewSpParams()
	assert.Nil(t, params.Validate())
	assert.Equal(t, 64, params.numInputs())
	assert.Equal(t, 64, params.numColumns())
}

func TestSpParamsValidation(t *testing.T) {
	params := NewSpParams()
	params.InputDimensions = []int{0}
	err := params.Validate()
	assert.NotNil(t, err)
	assert.IsType(t, ConfigError{}, err)

	params = NewSpParams()
	params.NumActiveColumnsPerInhArea = params.numColumns() + 1
	assert.NotNil(t, params.Validate())

	params = NewSpParams()
	params.SynPermConnected = 1.5
	assert.NotNil(t, params.Validate())

	params = NewSpParams()
	params.MaxBoost = 0.5
	assert.NotNil(t, params.Validate())

	params = NewSpParams()
	params.SynPermMin = 0.8
	params.SynPermMax = 0.5
	assert.NotNil(t, params.Validate())
}

func TestSpParamsMultiDimensional(t *testing.T) {
	params := NewSpParams()
	params.InputDimensions = []int{32, 32}
	params.ColumnDimensions = []int{16, 16}
	assert.Nil(t, params.Validate())
	assert.Equal(t, 1024, params.numInputs())
	assert.Equal(t, 256, params.numColumns())
}

func TestTpParamsDefaultsValid(t *testing.T) {
	params := NewTpParams()
	assert.Nil(t, params.Validate())
}

func TestTpParamsValidation(t *testing.T) {
	params := NewTpParams()
	params.CellsPerColumn = 0
	err := params.Validate()
	assert.NotNil(t, err)
	assert.IsType(t, ConfigError{}, err)

	params = NewTpParams()
	params.MinThreshold = params.ActivationThreshold + 1
	assert.NotNil(t, params.Validate())

	params = NewTpParams()
	params.InitialPerm = -0.1
	assert.NotNil(t, params.Validate())

	// -1 disables the cap; any other value below NewSynapseCount is rejected
	params = NewTpParams()
	params.MaxSynapsesPerSegment = -1
	assert.Nil(t, params.Validate())
	params.MaxSynapsesPerSegment = params.NewSynapseCount - 1
	assert.NotNil(t, params.Validate())

	params = NewTpParams()
	params.OutputType = TpOutputType(99)
	assert.NotNil(t, params.Validate())
}

func TestConfigErrorMessage(t *testing.T) {
	err := ConfigError{"MaxBoost", "must be at least 1"}
	assert.Contains(t, err.Error(), "MaxBoost")
	assert.Contains(t, err.Error(), "must be at least 1")
}
