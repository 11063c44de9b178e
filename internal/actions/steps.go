package actions

import "errors"

const registryRequiredMessageConstant = "action registry not configured"

// ErrRegistryNotConfigured indicates the step computer was built without a registry.
var ErrRegistryNotConfigured = errors.New(registryRequiredMessageConstant)

// StepComputer expands actions into ordered git commands.
type StepComputer struct {
	registry *Registry
}

// NewStepComputer constructs a StepComputer over registry.
func NewStepComputer(registry *Registry) (*StepComputer, error) {
	if registry == nil {
		return nil, ErrRegistryNotConfigured
	}
	return &StepComputer{registry: registry}, nil
}

// Registry exposes the catalog backing the computer.
func (computer *StepComputer) Registry() *Registry {
	return computer.registry
}

// ComputeSteps returns the ordered commands for actionID. localBranches is consulted
// only by dynamic actions; fixed-template actions depend on parameters alone.
func (computer *StepComputer) ComputeSteps(actionID ActionID, parameters Parameters, localBranches LocalBranchSet) (StepList, error) {
	action, lookupError := computer.registry.Lookup(actionID)
	if lookupError != nil {
		return nil, lookupError
	}

	normalizedParameters := parameters.Normalize()
	if validationError := validateParameters(action, normalizedParameters); validationError != nil {
		return nil, validationError
	}

	if action.Dynamic() {
		return action.Compute(normalizedParameters, localBranches), nil
	}

	steps := make(StepList, 0, len(action.Templates))
	for _, template := range action.Templates {
		step, emitted := template.Render(normalizedParameters)
		if !emitted {
			continue
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func validateParameters(action Action, parameters Parameters) error {
	for _, requiredParameter := range action.RequiredParameters {
		if len(parameters.value(requiredParameter)) == 0 {
			return &MissingParameterError{Action: action.ID, Parameter: requiredParameter}
		}
	}
	return nil
}
