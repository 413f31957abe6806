package pipeline

import "github.com/quantmind-br/clicktwice-go/internal/domain"

// Capability is the set of phases a registered handler runs in.
type Capability int

const (
	CapabilityInput Capability = 1 << iota
	CapabilityOutput

	CapabilityBoth = CapabilityInput | CapabilityOutput
)

func (c Capability) String() string {
	switch c {
	case CapabilityInput:
		return "input"
	case CapabilityOutput:
		return "output"
	case CapabilityBoth:
		return "both"
	default:
		return "none"
	}
}

// Registration binds a handler to the phases chosen at registration time.
type Registration struct {
	capability Capability
	input      domain.InputHandler
	output     domain.OutputHandler
}

// Input registers h for the input phase only.
func Input(h domain.InputHandler) Registration {
	return Registration{capability: CapabilityInput, input: h}
}

// Output registers h for the output phase only.
func Output(h domain.OutputHandler) Registration {
	return Registration{capability: CapabilityOutput, output: h}
}

// Dual registers h for both phases.
func Dual(h domain.DualHandler) Registration {
	return Registration{capability: CapabilityBoth, input: h, output: h}
}

// Capability returns the phases the handler was registered for.
func (r Registration) Capability() Capability {
	return r.capability
}

// Name returns the handler name.
func (r Registration) Name() string {
	switch {
	case r.input != nil:
		return r.input.Name()
	case r.output != nil:
		return r.output.Name()
	default:
		return ""
	}
}

func (r Registration) valid() bool {
	switch r.capability {
	case CapabilityInput:
		return r.input != nil
	case CapabilityOutput:
		return r.output != nil
	case CapabilityBoth:
		return r.input != nil && r.output != nil
	default:
		return false
	}
}
