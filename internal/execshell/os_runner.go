package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const (
	environmentAssignmentTemplateConstant = "%s=%s"
	gitTerminalPromptVariableConstant     = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant     = "0"
)

// OSCommandRunner starts processes with os/exec and collects their output.
type OSCommandRunner struct {
	disableTerminalPrompts bool
}

// NewOSCommandRunner constructs a runner backed by os/exec. git may still prompt for credentials on the terminal.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// NewNonInteractiveOSCommandRunner constructs a runner that makes git fail instead of prompting for credentials.
func NewNonInteractiveOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{disableTerminalPrompts: true}
}

// Run executes command and waits for it. A non-zero exit is reported through ExitCode, not as an error.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory
	executable.Env = runner.buildEnvironment()

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()
	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}
	if runError == nil {
		return executionResult, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) && executionContext.Err() == nil {
		executionResult.ExitCode = exitError.ExitCode()
		return executionResult, nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, contextError
	}
	return ExecutionResult{}, runError
}

func (runner *OSCommandRunner) buildEnvironment() []string {
	environment := append([]string{}, os.Environ()...)
	if runner.disableTerminalPrompts {
		environment = append(environment, fmt.Sprintf(environmentAssignmentTemplateConstant, gitTerminalPromptVariableConstant, gitTerminalPromptDisabledConstant))
	}
	return environment
}
