package actions

import "strings"

// Placeholders substituted into command template arguments.
const (
	PlaceholderBranch  = "{branch}"
	PlaceholderRemote  = "{remote}"
	PlaceholderCurrent = "{current}"
	PlaceholderTrunk   = "{trunk}"
)

// Guard decides whether a template is emitted for the given parameters.
type Guard func(parameters Parameters) bool

// CommandTemplate is a parameterized git invocation belonging to a fixed-template action.
// A nil Guard always emits.
type CommandTemplate struct {
	Arguments []string
	Guard     Guard
}

// Always builds a template emitted for every invocation.
func Always(arguments ...string) CommandTemplate {
	return CommandTemplate{Arguments: arguments}
}

// When builds a template emitted only when guard holds.
func When(guard Guard, arguments ...string) CommandTemplate {
	return CommandTemplate{Arguments: arguments, Guard: guard}
}

// CurrentIsTarget holds when the branch being operated on is checked out.
func CurrentIsTarget(parameters Parameters) bool {
	return parameters.CurrentBranch == parameters.BranchName
}

// Render substitutes parameters into the template. The boolean is false when the guard omits it.
func (template CommandTemplate) Render(parameters Parameters) (Step, bool) {
	if template.Guard != nil && !template.Guard(parameters) {
		return Step{}, false
	}

	replacer := strings.NewReplacer(
		PlaceholderBranch, parameters.BranchName,
		PlaceholderRemote, parameters.RemoteName,
		PlaceholderCurrent, parameters.CurrentBranch,
		PlaceholderTrunk, parameters.TrunkBranch,
	)

	renderedArguments := make([]string, 0, len(template.Arguments))
	for _, argument := range template.Arguments {
		renderedArguments = append(renderedArguments, replacer.Replace(argument))
	}
	return Step{Arguments: renderedArguments}, true
}
