package branchops

import (
	"errors"
	"fmt"

	"github.com/temirov/grb/internal/actions"
)

const (
	commandExecutionMessageConstant         = "git command failed"
	commandExecutionFailureTemplateConstant = "%s: step %d (%s): %v"
	repositoryStateMissingMessageConstant   = "repository state not configured"
	gitExecutorMissingMessageConstant       = "git executor not configured"
	stepComputerMissingMessageConstant      = "step computer not configured"
	stepWriterMissingMessageConstant        = "step writer not configured"
	missingActionMessageConstant            = "an action is required"
)

// ErrCommandExecution matches every CommandExecutionFailure.
var ErrCommandExecution = errors.New(commandExecutionMessageConstant)

// ErrRepositoryStateNotConfigured indicates the service was built without a repository state reader.
var ErrRepositoryStateNotConfigured = errors.New(repositoryStateMissingMessageConstant)

// ErrGitExecutorNotConfigured indicates the service was built without a git executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrStepComputerNotConfigured indicates the service was built without a step computer.
var ErrStepComputerNotConfigured = errors.New(stepComputerMissingMessageConstant)

// ErrStepWriterNotConfigured indicates the service was built without an output writer.
var ErrStepWriterNotConfigured = errors.New(stepWriterMissingMessageConstant)

// ErrMissingAction indicates a request without an action alias.
var ErrMissingAction = errors.New(missingActionMessageConstant)

// CommandExecutionFailure reports the step that stopped execute mode. Index is zero based;
// the steps after it were not run.
type CommandExecutionFailure struct {
	Step  actions.Step
	Index int
	Cause error
}

// Error names the failing step and its cause.
func (failure *CommandExecutionFailure) Error() string {
	return fmt.Sprintf(commandExecutionFailureTemplateConstant, commandExecutionMessageConstant, failure.Index+1, failure.Step.CommandLine(), failure.Cause)
}

// Is reports whether target is ErrCommandExecution.
func (failure *CommandExecutionFailure) Is(target error) bool {
	return target == ErrCommandExecution
}

// Unwrap exposes the executor error.
func (failure *CommandExecutionFailure) Unwrap() error {
	return failure.Cause
}
