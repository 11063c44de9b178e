package actions

import "strings"

const (
	// DefaultRemoteName is used when the caller leaves the remote blank.
	DefaultRemoteName = "origin"
	// DefaultTrunkBranch is checked out before deleting the branch in use.
	DefaultTrunkBranch = "master"
)

// ActionID is the canonical identifier of a catalog action.
type ActionID string

// Canonical action identifiers.
const (
	ActionCreate  ActionID = "create"
	ActionPublish ActionID = "publish"
	ActionRename  ActionID = "rename"
	ActionDelete  ActionID = "delete"
	ActionTrack   ActionID = "track"
	ActionRetrack ActionID = "retrack"
	ActionUnfork  ActionID = "unfork"
)

// ParameterName identifies a field of Parameters in validation errors.
type ParameterName string

// Parameter names checked before steps are computed.
const (
	ParameterBranchName    ParameterName = "branch name"
	ParameterRemoteName    ParameterName = "remote name"
	ParameterCurrentBranch ParameterName = "current branch"
)

// StepFunction computes steps for actions whose commands depend on repository state.
type StepFunction func(parameters Parameters, localBranches LocalBranchSet) StepList

// Action is an immutable catalog entry.
type Action struct {
	ID                 ActionID
	Description        string
	Aliases            []string
	RequiredParameters []ParameterName
	Templates          []CommandTemplate
	Compute            StepFunction
}

// Dynamic reports whether the action computes its steps from the local branch snapshot.
func (action Action) Dynamic() bool {
	return action.Compute != nil
}

// Requires reports whether the action needs the named parameter.
func (action Action) Requires(parameter ParameterName) bool {
	for _, requiredParameter := range action.RequiredParameters {
		if requiredParameter == parameter {
			return true
		}
	}
	return false
}

func (action Action) clone() Action {
	cloned := action
	cloned.Aliases = append([]string(nil), action.Aliases...)
	cloned.RequiredParameters = append([]ParameterName(nil), action.RequiredParameters...)
	cloned.Templates = append([]CommandTemplate(nil), action.Templates...)
	return cloned
}

// Parameters carries the per-invocation input to step computation.
type Parameters struct {
	BranchName    string
	RemoteName    string
	CurrentBranch string
	TrunkBranch   string
}

// Normalize trims every field and applies the remote and trunk defaults.
func (parameters Parameters) Normalize() Parameters {
	normalized := Parameters{
		BranchName:    strings.TrimSpace(parameters.BranchName),
		RemoteName:    strings.TrimSpace(parameters.RemoteName),
		CurrentBranch: strings.TrimSpace(parameters.CurrentBranch),
		TrunkBranch:   strings.TrimSpace(parameters.TrunkBranch),
	}
	if len(normalized.RemoteName) == 0 {
		normalized.RemoteName = DefaultRemoteName
	}
	if len(normalized.TrunkBranch) == 0 {
		normalized.TrunkBranch = DefaultTrunkBranch
	}
	return normalized
}

func (parameters Parameters) value(parameter ParameterName) string {
	switch parameter {
	case ParameterBranchName:
		return parameters.BranchName
	case ParameterRemoteName:
		return parameters.RemoteName
	case ParameterCurrentBranch:
		return parameters.CurrentBranch
	default:
		return ""
	}
}
