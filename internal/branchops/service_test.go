package branchops

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/grb/internal/actions"
	"github.com/temirov/grb/internal/execshell"
	"github.com/temirov/grb/internal/ui"
)

const (
	testRepositoryRootConstant  = "/tmp/grb-repository"
	testCurrentBranchConstant   = "feature/current"
	testTargetBranchConstant    = "feature/target"
	testRemoteNameConstant      = "upstream"
	testTrunkBranchConstant     = "main"
	testGitOutputConstant       = "Everything up-to-date\n"
	testGitErrorOutputConstant  = "fatal: remote rejected\n"
	testRepositoryErrorConstant = "not a git repository"
)

type stubRepositoryState struct {
	root               string
	rootError          error
	currentBranch      string
	currentBranchError error
	localBranches      []string
	localBranchesError error
	currentBranchCalls int
	localBranchesCalls int
}

func (state *stubRepositoryState) RepositoryRoot(context.Context) (string, error) {
	return state.root, state.rootError
}

func (state *stubRepositoryState) CurrentBranch(context.Context) (string, error) {
	state.currentBranchCalls++
	return state.currentBranch, state.currentBranchError
}

func (state *stubRepositoryState) LocalBranches(context.Context) (actions.LocalBranchSet, error) {
	state.localBranchesCalls++
	if state.localBranchesError != nil {
		return actions.LocalBranchSet{}, state.localBranchesError
	}
	return actions.NewLocalBranchSet(state.localBranches...), nil
}

type stubGitExecutor struct {
	recorded  []execshell.CommandDetails
	responses []stubGitResponse
}

type stubGitResponse struct {
	result execshell.ExecutionResult
	err    error
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	if len(executor.responses) == 0 {
		return execshell.ExecutionResult{}, nil
	}

	next := executor.responses[0]
	executor.responses = executor.responses[1:]
	return next.result, next.err
}

func (executor *stubGitExecutor) commandLines() []string {
	commandLines := make([]string, 0, len(executor.recorded))
	for _, details := range executor.recorded {
		commandLines = append(commandLines, execshell.ShellCommand{Name: execshell.CommandGit, Details: details}.CommandLine())
	}
	return commandLines
}

type serviceFixture struct {
	service    *Service
	state      *stubRepositoryState
	executor   *stubGitExecutor
	output     *bytes.Buffer
	logEntries *observer.ObservedLogs
}

func newServiceFixture(testInstance *testing.T, state *stubRepositoryState, executor *stubGitExecutor) serviceFixture {
	testInstance.Helper()

	registry, registryError := actions.NewDefaultRegistry()
	require.NoError(testInstance, registryError)
	stepComputer, computerError := actions.NewStepComputer(registry)
	require.NoError(testInstance, computerError)

	core, logEntries := observer.New(zapcore.DebugLevel)
	output := &bytes.Buffer{}
	service, serviceError := NewService(ServiceDependencies{
		RepositoryState: state,
		GitExecutor:     executor,
		StepComputer:    stepComputer,
		Writer:          ui.NewStepRenderer(output, ui.ColorModeNever),
		Logger:          zap.New(core),
	})
	require.NoError(testInstance, serviceError)

	return serviceFixture{service: service, state: state, executor: executor, output: output, logEntries: logEntries}
}

func defaultRepositoryState() *stubRepositoryState {
	return &stubRepositoryState{root: testRepositoryRootConstant, currentBranch: testCurrentBranchConstant}
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	registry, registryError := actions.NewDefaultRegistry()
	require.NoError(testInstance, registryError)
	stepComputer, computerError := actions.NewStepComputer(registry)
	require.NoError(testInstance, computerError)

	complete := ServiceDependencies{
		RepositoryState: defaultRepositoryState(),
		GitExecutor:     &stubGitExecutor{},
		StepComputer:    stepComputer,
		Writer:          ui.NewStepRenderer(&bytes.Buffer{}, ui.ColorModeNever),
	}

	testCases := []struct {
		name          string
		mutate        func(*ServiceDependencies)
		expectedError error
	}{
		{name: "complete", mutate: func(*ServiceDependencies) {}},
		{name: "missing_repository_state", mutate: func(dependencies *ServiceDependencies) { dependencies.RepositoryState = nil }, expectedError: ErrRepositoryStateNotConfigured},
		{name: "missing_git_executor", mutate: func(dependencies *ServiceDependencies) { dependencies.GitExecutor = nil }, expectedError: ErrGitExecutorNotConfigured},
		{name: "missing_step_computer", mutate: func(dependencies *ServiceDependencies) { dependencies.StepComputer = nil }, expectedError: ErrStepComputerNotConfigured},
		{name: "missing_writer", mutate: func(dependencies *ServiceDependencies) { dependencies.Writer = nil }, expectedError: ErrStepWriterNotConfigured},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			dependencies := complete
			testCase.mutate(&dependencies)

			service, serviceError := NewService(dependencies)
			if testCase.expectedError != nil {
				require.ErrorIs(subtest, serviceError, testCase.expectedError)
				require.Nil(subtest, service)
				return
			}
			require.NoError(subtest, serviceError)
			require.NotNil(subtest, service)
		})
	}
}

func TestExecuteRunsStepsInRepositoryRoot(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		request              Request
		localBranches        []string
		expectedCommandLines []string
	}{
		{
			name:    "create_from_current_branch",
			request: Request{ActionToken: "new", BranchName: testTargetBranchConstant},
			expectedCommandLines: []string{
				"git push origin feature/current:refs/heads/feature/target",
				"git fetch origin",
				"git branch --track feature/target origin/feature/target",
				"git checkout feature/target",
			},
		},
		{
			name:    "delete_current_branch_checks_out_trunk",
			request: Request{ActionToken: "rm", BranchName: testCurrentBranchConstant, RemoteName: testRemoteNameConstant, TrunkBranch: testTrunkBranchConstant},
			expectedCommandLines: []string{
				"git push upstream :refs/heads/feature/current",
				"git checkout main",
				"git branch -d feature/current",
			},
		},
		{
			name:          "track_existing_branch",
			request:       Request{ActionToken: "follow", BranchName: testTargetBranchConstant},
			localBranches: []string{testTargetBranchConstant},
			expectedCommandLines: []string{
				"git fetch origin",
				"git config branch.feature/target.remote origin",
				"git config branch.feature/target.merge refs/heads/feature/target",
				"git checkout feature/target",
			},
		},
		{
			name:    "unfork_new_branch",
			request: Request{ActionToken: "unfork", BranchName: testRemoteNameConstant},
			expectedCommandLines: []string{
				"git fetch upstream",
				"git branch --track feature/current upstream/feature/current",
				"git checkout feature/current",
				"git push -f origin feature/current:refs/heads/feature/current",
				"git fetch origin",
				"git branch --track feature/current origin/feature/current",
				"git checkout feature/current",
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			state := defaultRepositoryState()
			state.localBranches = testCase.localBranches
			fixture := newServiceFixture(subtest, state, &stubGitExecutor{})

			plan, executeError := fixture.service.Execute(context.Background(), testCase.request)
			require.NoError(subtest, executeError)
			require.Equal(subtest, testCase.expectedCommandLines, plan.Steps.CommandLines())
			require.Equal(subtest, testCase.expectedCommandLines, fixture.executor.commandLines())
			for _, details := range fixture.executor.recorded {
				require.Equal(subtest, testRepositoryRootConstant, details.WorkingDirectory)
			}

			expectedOutput := strings.Join(testCase.expectedCommandLines, "\n\n") + "\n\n"
			require.Equal(subtest, expectedOutput, fixture.output.String())
		})
	}
}

func TestExplainMatchesExecuteCommandLines(testInstance *testing.T) {
	registry, registryError := actions.NewDefaultRegistry()
	require.NoError(testInstance, registryError)

	for actionIndex, action := range registry.List() {
		testInstance.Run(fmt.Sprintf("%d_%s", actionIndex, action.ID), func(subtest *testing.T) {
			request := Request{ActionToken: string(action.ID), BranchName: testTargetBranchConstant, RemoteName: testRemoteNameConstant}

			explainFixture := newServiceFixture(subtest, defaultRepositoryState(), &stubGitExecutor{})
			explainedPlan, explainError := explainFixture.service.Explain(context.Background(), request)
			require.NoError(subtest, explainError)
			require.Empty(subtest, explainFixture.executor.recorded)

			executeFixture := newServiceFixture(subtest, defaultRepositoryState(), &stubGitExecutor{})
			executedPlan, executeError := executeFixture.service.Execute(context.Background(), request)
			require.NoError(subtest, executeError)

			require.Equal(subtest, executedPlan.Steps.CommandLines(), explainedPlan.Steps.CommandLines())
			require.Equal(subtest, executedPlan.Steps.CommandLines(), executeFixture.executor.commandLines())

			expectedExplanation := fmt.Sprintf("List of operations to do to %s:\n\n%s\n\n", action.Description, strings.Join(explainedPlan.Steps.CommandLines(), "\n"))
			require.Equal(subtest, expectedExplanation, explainFixture.output.String())
		})
	}
}

func TestExecuteStopsAtFirstFailingCommand(testInstance *testing.T) {
	failure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"fetch", "origin"}}},
		Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: testGitErrorOutputConstant},
	}
	executor := &stubGitExecutor{responses: []stubGitResponse{{}, {err: failure}}}
	fixture := newServiceFixture(testInstance, defaultRepositoryState(), executor)

	plan, executeError := fixture.service.Execute(context.Background(), Request{ActionToken: "create", BranchName: testTargetBranchConstant})
	require.Error(testInstance, executeError)
	require.ErrorIs(testInstance, executeError, ErrCommandExecution)

	var executionFailure *CommandExecutionFailure
	require.ErrorAs(testInstance, executeError, &executionFailure)
	require.Equal(testInstance, 1, executionFailure.Index)
	require.Equal(testInstance, "git fetch origin", executionFailure.Step.CommandLine())

	var failedError execshell.CommandFailedError
	require.ErrorAs(testInstance, executeError, &failedError)
	require.Equal(testInstance, 128, failedError.Result.ExitCode)

	require.Len(testInstance, plan.Steps, 4)
	require.Len(testInstance, executor.recorded, 2)
	require.NotContains(testInstance, fixture.output.String(), "git branch --track")
	require.NotContains(testInstance, fixture.output.String(), testGitErrorOutputConstant)

	stoppedEntries := fixture.logEntries.FilterMessage(executionStoppedLogMessageConstant).All()
	require.Len(testInstance, stoppedEntries, 1)
	require.Equal(testInstance, zapcore.DebugLevel, stoppedEntries[0].Level)
}

func TestExecuteVerboseWritesGitOutput(testInstance *testing.T) {
	failure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: testGitErrorOutputConstant},
	}
	executor := &stubGitExecutor{responses: []stubGitResponse{
		{result: execshell.ExecutionResult{StandardOutput: testGitOutputConstant}},
		{err: failure},
	}}
	fixture := newServiceFixture(testInstance, defaultRepositoryState(), executor)

	_, executeError := fixture.service.Execute(context.Background(), Request{ActionToken: "publish", BranchName: testTargetBranchConstant, Verbose: true})
	require.ErrorIs(testInstance, executeError, ErrCommandExecution)

	expectedOutput := strings.Join([]string{
		"git push origin feature/target:refs/heads/feature/target",
		strings.TrimRight(testGitOutputConstant, "\n"),
		"",
		"git fetch origin",
		strings.TrimRight(testGitErrorOutputConstant, "\n"),
		"",
	}, "\n")
	require.Equal(testInstance, expectedOutput, fixture.output.String())
}

func TestPlanReadsRepositoryStateOnlyWhenNeeded(testInstance *testing.T) {
	testCases := []struct {
		name                       string
		actionToken                string
		expectedCurrentBranchCalls int
		expectedLocalBranchesCalls int
	}{
		{name: "publish_reads_nothing", actionToken: "share", expectedCurrentBranchCalls: 0, expectedLocalBranchesCalls: 0},
		{name: "create_reads_current_branch", actionToken: "create", expectedCurrentBranchCalls: 1, expectedLocalBranchesCalls: 0},
		{name: "track_reads_local_branches", actionToken: "grab", expectedCurrentBranchCalls: 0, expectedLocalBranchesCalls: 1},
		{name: "unfork_reads_both", actionToken: "unfork", expectedCurrentBranchCalls: 1, expectedLocalBranchesCalls: 1},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			fixture := newServiceFixture(subtest, defaultRepositoryState(), &stubGitExecutor{})

			_, planError := fixture.service.Plan(context.Background(), Request{ActionToken: testCase.actionToken, BranchName: testTargetBranchConstant})
			require.NoError(subtest, planError)
			require.Equal(subtest, testCase.expectedCurrentBranchCalls, fixture.state.currentBranchCalls)
			require.Equal(subtest, testCase.expectedLocalBranchesCalls, fixture.state.localBranchesCalls)
		})
	}
}

func TestPlanReportsInputErrors(testInstance *testing.T) {
	repositoryError := errors.New(testRepositoryErrorConstant)

	testCases := []struct {
		name          string
		request       Request
		mutateState   func(*stubRepositoryState)
		expectedError error
	}{
		{name: "empty_action", request: Request{ActionToken: "  "}, expectedError: ErrMissingAction},
		{name: "unknown_action", request: Request{ActionToken: "frobnicate", BranchName: testTargetBranchConstant}, expectedError: actions.ErrUnknownAction},
		{name: "missing_branch", request: Request{ActionToken: "publish"}, expectedError: actions.ErrMissingParameter},
		{
			name:          "current_branch_unavailable",
			request:       Request{ActionToken: "rename", BranchName: testTargetBranchConstant},
			mutateState:   func(state *stubRepositoryState) { state.currentBranchError = repositoryError },
			expectedError: repositoryError,
		},
		{
			name:          "local_branches_unavailable",
			request:       Request{ActionToken: "track", BranchName: testTargetBranchConstant},
			mutateState:   func(state *stubRepositoryState) { state.localBranchesError = repositoryError },
			expectedError: repositoryError,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			state := defaultRepositoryState()
			if testCase.mutateState != nil {
				testCase.mutateState(state)
			}
			fixture := newServiceFixture(subtest, state, &stubGitExecutor{})

			_, executeError := fixture.service.Execute(context.Background(), testCase.request)
			require.ErrorIs(subtest, executeError, testCase.expectedError)
			require.Empty(subtest, fixture.executor.recorded)
			require.Empty(subtest, fixture.output.String())
		})
	}
}

func TestCurrentBranchFailureIsReportedAsMissingParameter(testInstance *testing.T) {
	state := defaultRepositoryState()
	state.currentBranchError = errors.New(testRepositoryErrorConstant)
	fixture := newServiceFixture(testInstance, state, &stubGitExecutor{})

	_, planError := fixture.service.Plan(context.Background(), Request{ActionToken: "create", BranchName: testTargetBranchConstant})

	var missingParameterError *actions.MissingParameterError
	require.ErrorAs(testInstance, planError, &missingParameterError)
	require.Equal(testInstance, actions.ActionCreate, missingParameterError.Action)
	require.Equal(testInstance, actions.ParameterCurrentBranch, missingParameterError.Parameter)
}

func TestExplainFillsPlaceholders(testInstance *testing.T) {
	state := &stubRepositoryState{
		currentBranchError: errors.New(testRepositoryErrorConstant),
		localBranchesError: errors.New(testRepositoryErrorConstant),
	}

	testCases := []struct {
		name                 string
		request              Request
		expectedCommandLines []string
	}{
		{
			name:    "create_without_branch_or_repository",
			request: Request{ActionToken: "create"},
			expectedCommandLines: []string{
				"git push origin current_branch:refs/heads/branch_to_create",
				"git fetch origin",
				"git branch --track branch_to_create origin/branch_to_create",
				"git checkout branch_to_create",
			},
		},
		{
			name:    "track_outside_repository_plans_new_branch",
			request: Request{ActionToken: "track", BranchName: "my_branch", RemoteName: "github"},
			expectedCommandLines: []string{
				"git fetch github",
				"git branch --track my_branch github/my_branch",
				"git checkout my_branch",
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			fixture := newServiceFixture(subtest, state, &stubGitExecutor{})

			plan, explainError := fixture.service.Explain(context.Background(), testCase.request)
			require.NoError(subtest, explainError)
			require.Equal(subtest, testCase.expectedCommandLines, plan.Steps.CommandLines())
			require.Empty(subtest, fixture.executor.recorded)
		})
	}
}

func TestExplainPropagatesCancellation(testInstance *testing.T) {
	state := defaultRepositoryState()
	state.currentBranchError = context.Canceled
	fixture := newServiceFixture(testInstance, state, &stubGitExecutor{})

	_, explainError := fixture.service.Explain(context.Background(), Request{ActionToken: "create", BranchName: testTargetBranchConstant})
	require.ErrorIs(testInstance, explainError, context.Canceled)
}

func TestExecuteFailsWhenRepositoryRootUnavailable(testInstance *testing.T) {
	state := defaultRepositoryState()
	state.rootError = errors.New(testRepositoryErrorConstant)
	fixture := newServiceFixture(testInstance, state, &stubGitExecutor{})

	_, executeError := fixture.service.Execute(context.Background(), Request{ActionToken: "publish", BranchName: testTargetBranchConstant})
	require.ErrorContains(testInstance, executeError, testRepositoryErrorConstant)
	require.Empty(testInstance, fixture.executor.recorded)
}
