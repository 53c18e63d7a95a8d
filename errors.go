package htm

import (
	"fmt"
)

/*
ConfigError reports an out-of-domain parameter at construction time.
Nothing inside a timestep returns one; bad configuration is rejected
before any input is processed.
*/
type ConfigError struct {
	Param  string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("htm: invalid config %v: %v", e.Param, e.Reason)
}

/*
ContractError reports misuse of the compute API by the caller, e.g. an
input vector whose length does not match the configured input space.
The call that returns it mutates no model state.
*/
type ContractError struct {
	Op     string
	Reason string
}

func (e ContractError) Error() string {
	return fmt.Sprintf("htm: %v: %v", e.Op, e.Reason)
}
