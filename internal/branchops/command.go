package branchops

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/grb/internal/actions"
	"github.com/temirov/grb/internal/execshell"
	"github.com/temirov/grb/internal/gitrepo"
	"github.com/temirov/grb/internal/ui"
	"github.com/temirov/grb/internal/utils"
	"github.com/temirov/grb/internal/utils/flags"
)

const (
	applicationNameConstant               = "grb"
	commandUseConstant                    = applicationNameConstant + " [explain] <action> [branch_name] [origin_server]"
	commandShortDescriptionConstant       = "Run or explain the git commands behind common remote branch operations"
	commandLongDescriptionConstant        = "grb maps create, publish, rename, delete, track, retrack and unfork to the ordered git commands that carry them out, then runs them or prints them."
	explainKeywordConstant                = "explain"
	maximumPositionalArgumentsConstant    = 3
	tooManyArgumentsTemplateConstant      = "expected at most an action, a branch name and a remote; got %d arguments"
	commandExecutionErrorTemplateConstant = "branch action failed: %w"
	invocationLogMessageConstant          = "grb invocation parsed"
	logFieldExplainConstant               = "explain"
	logFieldVerboseConstant               = "verbose"
	logFieldColorModeConstant             = "color_mode"
	logFieldTrunkConstant                 = "trunk"
	logFieldDisablePromptsConstant        = "disable_prompts"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// HumanReadableLoggingProvider reports whether console logging is active.
type HumanReadableLoggingProvider func() bool

// ConfigurationProvider supplies the configured branch action defaults.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the grb cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  GitExecutor
	RepositoryState              RepositoryState
	WorkingDirectory             string
	Version                      string
}

type invocation struct {
	Explain     bool
	ActionToken string
	BranchName  string
	RemoteName  string
}

// Build constructs the grb command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultCommandConfiguration()
	colorModes := make([]string, 0, len(ui.ColorModes()))
	for _, colorMode := range ui.ColorModes() {
		colorModes = append(colorModes, string(colorMode))
	}

	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
	}

	flagValues := flags.BindOutputFlags(command, flags.OutputDefaults{
		Explain:     false,
		Verbose:     defaults.Verbose,
		ColorMode:   defaults.ColorMode,
		ColorModes:  colorModes,
		TrunkBranch: defaults.TrunkBranch,
		NoPrompt:    defaults.DisablePrompts,
	})

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, flagValues)
	}
	command.SetHelpFunc(func(command *cobra.Command, _ []string) {
		_ = builder.writeHelp(command, command.OutOrStdout())
	})

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, flagValues *flags.OutputFlagValues) error {
	parsedInvocation, parseError := parseInvocation(arguments)
	if parseError != nil {
		return parseError
	}

	overrides := flags.ResolveOutputFlags(command, flagValues)
	if overrides.ExplainSet && overrides.Explain {
		parsedInvocation.Explain = true
	}
	configuration := applyFlagOverrides(builder.resolveConfiguration(), overrides)

	if len(parsedInvocation.ActionToken) == 0 {
		return command.Help()
	}

	colorMode, colorError := ui.ParseColorMode(configuration.ColorMode)
	if colorError != nil {
		return colorError
	}

	logger := builder.resolveLogger()
	logger.Debug(
		invocationLogMessageConstant,
		zap.String(logFieldActionConstant, parsedInvocation.ActionToken),
		zap.Bool(logFieldExplainConstant, parsedInvocation.Explain),
		zap.Bool(logFieldVerboseConstant, configuration.Verbose),
		zap.String(logFieldColorModeConstant, string(colorMode)),
		zap.String(logFieldTrunkConstant, configuration.TrunkBranch),
		zap.Bool(logFieldDisablePromptsConstant, configuration.DisablePrompts),
	)

	service, serviceError := builder.buildService(command, logger, colorMode, configuration)
	if serviceError != nil {
		return serviceError
	}

	remoteName := parsedInvocation.RemoteName
	if len(strings.TrimSpace(remoteName)) == 0 {
		remoteName = configuration.RemoteName
	}
	request := Request{
		ActionToken: parsedInvocation.ActionToken,
		BranchName:  parsedInvocation.BranchName,
		RemoteName:  remoteName,
		TrunkBranch: configuration.TrunkBranch,
		Verbose:     configuration.Verbose,
	}

	var runError error
	if parsedInvocation.Explain {
		_, runError = service.Explain(command.Context(), request)
	} else {
		_, runError = service.Execute(command.Context(), request)
	}

	switch {
	case runError == nil:
		return nil
	case errors.Is(runError, actions.ErrUnknownAction):
		if helpError := builder.writeHelp(command, command.ErrOrStderr()); helpError != nil {
			return helpError
		}
		return runError
	case errors.Is(runError, ErrCommandExecution):
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	default:
		return runError
	}
}

func (builder *CommandBuilder) buildService(command *cobra.Command, logger *zap.Logger, colorMode ui.ColorMode, configuration CommandConfiguration) (*Service, error) {
	registry, registryError := actions.NewDefaultRegistry()
	if registryError != nil {
		return nil, registryError
	}

	stepComputer, computerError := actions.NewStepComputer(registry)
	if computerError != nil {
		return nil, computerError
	}

	gitExecutor, executorError := builder.resolveGitExecutor(logger, configuration)
	if executorError != nil {
		return nil, executorError
	}

	return NewService(ServiceDependencies{
		RepositoryState: builder.resolveRepositoryState(command),
		GitExecutor:     gitExecutor,
		StepComputer:    stepComputer,
		Writer:          ui.NewStepRenderer(utils.NewFlushingWriter(command.OutOrStdout()), colorMode),
		Logger:          logger,
	})
}

func (builder *CommandBuilder) writeHelp(command *cobra.Command, writer io.Writer) error {
	configuration := builder.resolveConfiguration().Sanitize()

	registry, registryError := actions.NewDefaultRegistry()
	if registryError != nil {
		return registryError
	}

	return WriteHelp(writer, registry, HelpOptions{
		ApplicationName: applicationNameConstant,
		Version:         builder.Version,
		RemoteName:      configuration.RemoteName,
		TrunkBranch:     configuration.TrunkBranch,
		FlagUsages:      command.LocalFlags().FlagUsages(),
	})
}

func parseInvocation(arguments []string) (invocation, error) {
	parsed := invocation{}
	remaining := arguments
	if len(remaining) > 0 && remaining[0] == explainKeywordConstant {
		parsed.Explain = true
		remaining = remaining[1:]
	}

	if len(remaining) > maximumPositionalArgumentsConstant {
		return invocation{}, fmt.Errorf(tooManyArgumentsTemplateConstant, len(remaining))
	}

	positional := make([]string, maximumPositionalArgumentsConstant)
	copy(positional, remaining)
	parsed.ActionToken = strings.TrimSpace(positional[0])
	parsed.BranchName = strings.TrimSpace(positional[1])
	parsed.RemoteName = strings.TrimSpace(positional[2])
	return parsed, nil
}

// AcceptsPositional reports whether grb would read candidate as the positional argument after positionals.
// The action slot only accepts known action tokens, so "grb -v on create feature" keeps "on" as the flag value.
func AcceptsPositional(positionals []string, candidate string) bool {
	remaining := positionals
	if len(remaining) > 0 && remaining[0] == explainKeywordConstant {
		remaining = remaining[1:]
	} else if len(remaining) == 0 && candidate == explainKeywordConstant {
		return true
	}

	if len(remaining) == 0 {
		registry, registryError := actions.NewDefaultRegistry()
		if registryError != nil {
			return true
		}
		_, resolveError := registry.ResolveAlias(candidate)
		return resolveError == nil
	}
	return len(remaining) < maximumPositionalArgumentsConstant
}

// applyFlagOverrides layers the flags the user set over configuration and sanitizes the result.
func applyFlagOverrides(configuration CommandConfiguration, overrides flags.OutputFlagOverrides) CommandConfiguration {
	if overrides.VerboseSet {
		configuration.Verbose = overrides.Verbose
	}
	if overrides.ColorModeSet {
		configuration.ColorMode = overrides.ColorMode
	}
	if overrides.TrunkBranchSet {
		configuration.TrunkBranch = overrides.TrunkBranch
	}
	if overrides.NoPromptSet {
		configuration.DisablePrompts = overrides.NoPrompt
	}
	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveGitExecutor(logger *zap.Logger, configuration CommandConfiguration) (GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	var commandEventsObserver execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		consoleLogger := logger
		if builder.ConsoleLoggerProvider != nil {
			if providedLogger := builder.ConsoleLoggerProvider(); providedLogger != nil {
				consoleLogger = providedLogger
			}
		}
		commandEventsObserver = ui.NewConsoleCommandEventLogger(consoleLogger)
	}

	shellExecutor, creationError := execshell.NewObservedShellExecutor(logger, resolveCommandRunner(configuration), commandEventsObserver)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}

func resolveCommandRunner(configuration CommandConfiguration) execshell.CommandRunner {
	if configuration.DisablePrompts {
		return execshell.NewNonInteractiveOSCommandRunner()
	}
	return execshell.NewOSCommandRunner()
}

func (builder *CommandBuilder) resolveRepositoryState(command *cobra.Command) RepositoryState {
	if builder.RepositoryState != nil {
		return builder.RepositoryState
	}

	workingDirectory := builder.WorkingDirectory
	if contextDirectory, found := utils.NewCommandContextAccessor().WorkingDirectory(command.Context()); found {
		workingDirectory = contextDirectory
	}
	return gitrepo.NewInspector(workingDirectory)
}
