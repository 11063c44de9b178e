package actions

import "strings"

const (
	// GitExecutableName prefixes every rendered command line.
	GitExecutableName             = "git"
	stepArgumentSeparatorConstant = " "
)

// Step is one concrete git invocation.
type Step struct {
	Arguments []string
}

// NewStep builds a Step from git arguments.
func NewStep(arguments ...string) Step {
	return Step{Arguments: append([]string(nil), arguments...)}
}

// String renders the arguments without the executable name.
func (step Step) String() string {
	return strings.Join(step.Arguments, stepArgumentSeparatorConstant)
}

// CommandLine renders the full command as printed in both execute and explain modes.
func (step Step) CommandLine() string {
	if len(step.Arguments) == 0 {
		return GitExecutableName
	}
	return GitExecutableName + stepArgumentSeparatorConstant + step.String()
}

// StepList is the ordered result of one step computation.
type StepList []Step

// Strings renders each step without the executable name.
func (steps StepList) Strings() []string {
	rendered := make([]string, 0, len(steps))
	for _, step := range steps {
		rendered = append(rendered, step.String())
	}
	return rendered
}

// CommandLines renders each step as a full command line.
func (steps StepList) CommandLines() []string {
	rendered := make([]string, 0, len(steps))
	for _, step := range steps {
		rendered = append(rendered, step.CommandLine())
	}
	return rendered
}

// LocalBranchSet is a read-only snapshot of local branch names.
type LocalBranchSet struct {
	names map[string]struct{}
}

// NewLocalBranchSet captures the provided branch names.
func NewLocalBranchSet(branchNames ...string) LocalBranchSet {
	names := make(map[string]struct{}, len(branchNames))
	for _, branchName := range branchNames {
		trimmedName := strings.TrimSpace(branchName)
		if len(trimmedName) == 0 {
			continue
		}
		names[trimmedName] = struct{}{}
	}
	return LocalBranchSet{names: names}
}

// Contains reports whether the branch exists locally.
func (branchSet LocalBranchSet) Contains(branchName string) bool {
	_, exists := branchSet.names[branchName]
	return exists
}

// Len reports the number of branches in the snapshot.
func (branchSet LocalBranchSet) Len() int {
	return len(branchSet.names)
}
