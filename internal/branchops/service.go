package branchops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/grb/internal/actions"
	"github.com/temirov/grb/internal/execshell"
)

const (
	explainHeadingTemplateConstant       = "List of operations to do to %s:"
	explainBranchPlaceholderTemplate     = "branch_to_%s"
	explainCurrentBranchPlaceholder      = "current_branch"
	repositoryRootErrorTemplateConstant  = "unable to locate repository root: %w"
	localBranchesErrorTemplateConstant   = "unable to list local branches: %w"
	outputWriteErrorTemplateConstant     = "unable to write output: %w"
	planComputedLogMessageConstant       = "branch action planned"
	executionStartedLogMessageConstant   = "branch action started"
	executionCompletedLogMessageConstant = "branch action completed"
	executionStoppedLogMessageConstant   = "branch action stopped at failing command"
	logFieldActionConstant               = "action"
	logFieldBranchConstant               = "branch"
	logFieldRemoteConstant               = "remote"
	logFieldCurrentBranchConstant        = "current_branch"
	logFieldStepCountConstant            = "step_count"
	logFieldStepIndexConstant            = "step_index"
	logFieldRepositoryRootConstant       = "repository_root"
)

// RepositoryState answers the questions steps are computed from.
type RepositoryState interface {
	RepositoryRoot(executionContext context.Context) (string, error)
	CurrentBranch(executionContext context.Context) (string, error)
	LocalBranches(executionContext context.Context) (actions.LocalBranchSet, error)
}

// GitExecutor runs one git invocation.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// StepWriter renders headings, command lines and captured git output.
type StepWriter interface {
	WriteLine(text string) error
	WriteCommand(commandLine string) error
	WriteOutput(output string) error
}

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	RepositoryState RepositoryState
	GitExecutor     GitExecutor
	StepComputer    *actions.StepComputer
	Writer          StepWriter
	Logger          *zap.Logger
}

// Request describes one invocation. ActionToken may be any alias.
type Request struct {
	ActionToken string
	BranchName  string
	RemoteName  string
	TrunkBranch string
	Verbose     bool
}

// Plan is the outcome of planning: the resolved action, the parameters used and the steps.
type Plan struct {
	Action     actions.Action
	Parameters actions.Parameters
	Steps      actions.StepList
}

// Service plans branch actions and prints or runs them.
type Service struct {
	repositoryState RepositoryState
	gitExecutor     GitExecutor
	stepComputer    *actions.StepComputer
	aliasResolver   actions.AliasResolver
	writer          StepWriter
	logger          *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RepositoryState == nil {
		return nil, ErrRepositoryStateNotConfigured
	}
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.StepComputer == nil {
		return nil, ErrStepComputerNotConfigured
	}
	if dependencies.Writer == nil {
		return nil, ErrStepWriterNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repositoryState: dependencies.RepositoryState,
		gitExecutor:     dependencies.GitExecutor,
		stepComputer:    dependencies.StepComputer,
		aliasResolver:   actions.NewAliasResolver(dependencies.StepComputer.Registry()),
		writer:          dependencies.Writer,
		logger:          logger,
	}, nil
}

// Plan resolves the alias and computes the steps. The current branch is read only
// for actions that need it and the local branches only for dynamic actions.
func (service *Service) Plan(executionContext context.Context, request Request) (Plan, error) {
	return service.plan(executionContext, request, false)
}

// Explain prints the action description and its command lines without running anything.
func (service *Service) Explain(executionContext context.Context, request Request) (Plan, error) {
	plan, planError := service.plan(executionContext, request, true)
	if planError != nil {
		return Plan{}, planError
	}

	lines := []string{fmt.Sprintf(explainHeadingTemplateConstant, plan.Action.Description), ""}
	if writeError := service.writeLines(lines...); writeError != nil {
		return Plan{}, writeError
	}
	for _, step := range plan.Steps {
		if writeError := service.writer.WriteCommand(step.CommandLine()); writeError != nil {
			return Plan{}, fmt.Errorf(outputWriteErrorTemplateConstant, writeError)
		}
	}
	if writeError := service.writeLines(""); writeError != nil {
		return Plan{}, writeError
	}
	return plan, nil
}

// Execute prints and runs every step in the repository root. It stops at the first
// failing command and returns a *CommandExecutionFailure.
func (service *Service) Execute(executionContext context.Context, request Request) (Plan, error) {
	plan, planError := service.plan(executionContext, request, false)
	if planError != nil {
		return Plan{}, planError
	}

	repositoryRoot, rootError := service.repositoryState.RepositoryRoot(executionContext)
	if rootError != nil {
		return Plan{}, fmt.Errorf(repositoryRootErrorTemplateConstant, rootError)
	}

	service.logger.Info(
		executionStartedLogMessageConstant,
		zap.String(logFieldActionConstant, string(plan.Action.ID)),
		zap.String(logFieldRepositoryRootConstant, repositoryRoot),
		zap.Int(logFieldStepCountConstant, len(plan.Steps)),
	)

	for stepIndex, step := range plan.Steps {
		if writeError := service.writer.WriteCommand(step.CommandLine()); writeError != nil {
			return plan, fmt.Errorf(outputWriteErrorTemplateConstant, writeError)
		}

		executionResult, executionError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
			Arguments:        append([]string{}, step.Arguments...),
			WorkingDirectory: repositoryRoot,
		})
		if request.Verbose {
			if writeError := service.writeCommandOutput(executionResult, executionError); writeError != nil {
				return plan, writeError
			}
		}
		if executionError != nil {
			service.logger.Debug(
				executionStoppedLogMessageConstant,
				zap.String(logFieldActionConstant, string(plan.Action.ID)),
				zap.Int(logFieldStepIndexConstant, stepIndex),
				zap.Error(executionError),
			)
			return plan, &CommandExecutionFailure{Step: step, Index: stepIndex, Cause: executionError}
		}

		if writeError := service.writeLines(""); writeError != nil {
			return plan, writeError
		}
	}

	service.logger.Info(executionCompletedLogMessageConstant, zap.String(logFieldActionConstant, string(plan.Action.ID)))
	return plan, nil
}

func (service *Service) plan(executionContext context.Context, request Request, explaining bool) (Plan, error) {
	actionToken := strings.TrimSpace(request.ActionToken)
	if len(actionToken) == 0 {
		return Plan{}, ErrMissingAction
	}

	actionID, resolveError := service.aliasResolver.Resolve(actionToken)
	if resolveError != nil {
		return Plan{}, resolveError
	}

	action, lookupError := service.stepComputer.Registry().Lookup(actionID)
	if lookupError != nil {
		return Plan{}, lookupError
	}

	parameters := actions.Parameters{
		BranchName:  strings.TrimSpace(request.BranchName),
		RemoteName:  request.RemoteName,
		TrunkBranch: request.TrunkBranch,
	}
	if explaining && len(parameters.BranchName) == 0 {
		parameters.BranchName = fmt.Sprintf(explainBranchPlaceholderTemplate, action.ID)
	}

	if action.Requires(actions.ParameterCurrentBranch) {
		currentBranch, currentBranchError := service.repositoryState.CurrentBranch(executionContext)
		switch {
		case currentBranchError == nil:
			parameters.CurrentBranch = currentBranch
		case explaining && !isCancellation(currentBranchError):
			parameters.CurrentBranch = explainCurrentBranchPlaceholder
		default:
			return Plan{}, &actions.MissingParameterError{Action: action.ID, Parameter: actions.ParameterCurrentBranch, Cause: currentBranchError}
		}
	}

	localBranches := actions.NewLocalBranchSet()
	if action.Dynamic() {
		snapshot, snapshotError := service.repositoryState.LocalBranches(executionContext)
		switch {
		case snapshotError == nil:
			localBranches = snapshot
		case explaining && !isCancellation(snapshotError):
			// explained outside a repository: plan as if no local branch exists
		default:
			return Plan{}, fmt.Errorf(localBranchesErrorTemplateConstant, snapshotError)
		}
	}

	steps, computeError := service.stepComputer.ComputeSteps(action.ID, parameters, localBranches)
	if computeError != nil {
		return Plan{}, computeError
	}

	normalizedParameters := parameters.Normalize()
	service.logger.Debug(
		planComputedLogMessageConstant,
		zap.String(logFieldActionConstant, string(action.ID)),
		zap.String(logFieldBranchConstant, normalizedParameters.BranchName),
		zap.String(logFieldRemoteConstant, normalizedParameters.RemoteName),
		zap.String(logFieldCurrentBranchConstant, normalizedParameters.CurrentBranch),
		zap.Int(logFieldStepCountConstant, len(steps)),
	)

	return Plan{Action: action, Parameters: normalizedParameters, Steps: steps}, nil
}

func (service *Service) writeCommandOutput(executionResult execshell.ExecutionResult, executionError error) error {
	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) {
		executionResult = failedError.Result
	}
	for _, output := range []string{executionResult.StandardOutput, executionResult.StandardError} {
		if writeError := service.writer.WriteOutput(output); writeError != nil {
			return fmt.Errorf(outputWriteErrorTemplateConstant, writeError)
		}
	}
	return nil
}

func (service *Service) writeLines(lines ...string) error {
	for _, line := range lines {
		if writeError := service.writer.WriteLine(line); writeError != nil {
			return fmt.Errorf(outputWriteErrorTemplateConstant, writeError)
		}
	}
	return nil
}

func isCancellation(candidate error) bool {
	return errors.Is(candidate, context.Canceled) || errors.Is(candidate, context.DeadlineExceeded)
}
