package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/grb/internal/branchops"
	"github.com/temirov/grb/internal/utils"
	"github.com/temirov/grb/internal/utils/flags"
)

const (
	applicationNameConstant                 = "grb"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonLogFileConfigKeyConstant          = commonConfigurationKeyConstant + ".log_file"
	commonLogMaxSizeConfigKeyConstant       = commonConfigurationKeyConstant + ".log_max_size_mb"
	commonLogMaxBackupsConfigKeyConstant    = commonConfigurationKeyConstant + ".log_max_backups"
	commonLogMaxAgeConfigKeyConstant        = commonConfigurationKeyConstant + ".log_max_age_days"
	branchConfigurationKeyConstant          = "branch"
	branchRemoteConfigKeyConstant           = branchConfigurationKeyConstant + ".remote"
	branchTrunkConfigKeyConstant            = branchConfigurationKeyConstant + ".trunk"
	branchNoPromptConfigKeyConstant         = branchConfigurationKeyConstant + ".no_prompt"
	outputConfigurationKeyConstant          = "output"
	outputColorConfigKeyConstant            = outputConfigurationKeyConstant + ".color"
	outputVerboseConfigKeyConstant          = outputConfigurationKeyConstant + ".verbose"
	environmentPrefixConstant               = "GRB"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	workingDirectoryErrorTemplateConstant   = "unable to determine working directory: %w"
	versionTemplateConstant                 = "{{.Name}} version {{.Version}}\n"
	defaultConfigurationSearchPathConstant  = "."
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Branch ApplicationBranchConfiguration `mapstructure:"branch"`
	Output ApplicationOutputConfiguration `mapstructure:"output"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days"`
}

// ApplicationBranchConfiguration stores the remote and trunk branch used by branch actions.
// NoPrompt makes git fail instead of asking for credentials.
type ApplicationBranchConfiguration struct {
	Remote   string `mapstructure:"remote"`
	Trunk    string `mapstructure:"trunk"`
	NoPrompt bool   `mapstructure:"no_prompt"`
}

// ApplicationOutputConfiguration stores presentation settings.
type ApplicationOutputConfiguration struct {
	Color   string `mapstructure:"color"`
	Verbose bool   `mapstructure:"verbose"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	loggerOutputs          utils.LoggerOutputs
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
	argumentsProvider      func() []string
	workingDirectoryLookup func() (string, error)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		argumentsProvider: func() []string {
			return os.Args[1:]
		},
		workingDirectoryLookup: os.Getwd,
	}

	branchBuilder := branchops.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConsoleLoggerProvider: func() *zap.Logger {
			return application.loggerOutputs.ConsoleLogger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        application.branchCommandConfiguration,
		Version:                      ResolveVersion(),
	}

	cobraCommand, buildError := branchBuilder.Build()
	if buildError != nil {
		cobraCommand = &cobra.Command{Use: applicationNameConstant}
	}

	cobraCommand.Version = branchBuilder.Version
	cobraCommand.SilenceUsage = true
	cobraCommand.SilenceErrors = true
	cobraCommand.CompletionOptions.DisableDefaultCmd = true
	cobraCommand.PersistentPreRunE = func(command *cobra.Command, arguments []string) error {
		return application.initializeConfiguration(command)
	}
	cobraCommand.SetVersionTemplate(versionTemplateConstant)
	cobraCommand.SetContext(context.Background())

	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	flags.AddChoiceFlag(
		cobraCommand.PersistentFlags(),
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		string(utils.LogFormatConsole),
		utils.LogFormats(),
		logFormatFlagUsageConstant,
	)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the root command with toggle arguments normalized and flushes the logger afterwards.
func (application *Application) Execute(executionContext context.Context) error {
	if executionContext == nil {
		executionContext = context.Background()
	}

	arguments := flags.NormalizeToggleArguments(application.rootCommand.Flags(), application.argumentsProvider(), branchops.AcceptsPositional)
	application.rootCommand.SetArgs(arguments)

	executionError := application.rootCommand.ExecuteContext(executionContext)
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute(executionContext context.Context) error {
	return NewApplication().Execute(executionContext)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:      string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant:     string(utils.LogFormatConsole),
		commonLogFileConfigKeyConstant:       "",
		commonLogMaxSizeConfigKeyConstant:    0,
		commonLogMaxBackupsConfigKeyConstant: 0,
		commonLogMaxAgeConfigKeyConstant:     0,
	}
	branchDefaults := branchops.DefaultCommandConfiguration()
	defaultValues[branchRemoteConfigKeyConstant] = branchDefaults.RemoteName
	defaultValues[branchTrunkConfigKeyConstant] = branchDefaults.TrunkBranch
	defaultValues[branchNoPromptConfigKeyConstant] = branchDefaults.DisablePrompts
	defaultValues[outputColorConfigKeyConstant] = branchDefaults.ColorMode
	defaultValues[outputVerboseConfigKeyConstant] = branchDefaults.Verbose

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
		utils.LogFileOptions{
			Path:             application.configuration.Common.LogFile,
			MaxSizeMegabytes: application.configuration.Common.LogMaxSizeMB,
			MaxBackups:       application.configuration.Common.LogMaxBackups,
			MaxAgeDays:       application.configuration.Common.LogMaxAgeDays,
		},
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.loggerOutputs = loggerOutputs
	application.logger = loggerOutputs.DiagnosticLogger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		workingDirectory, workingDirectoryError := application.workingDirectoryLookup()
		if workingDirectoryError != nil {
			return fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
		}

		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithWorkingDirectory(updatedContext, workingDirectory)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) branchCommandConfiguration() branchops.CommandConfiguration {
	return branchops.CommandConfiguration{
		RemoteName:     application.configuration.Branch.Remote,
		TrunkBranch:    application.configuration.Branch.Trunk,
		ColorMode:      application.configuration.Output.Color,
		Verbose:        application.configuration.Output.Verbose,
		DisablePrompts: application.configuration.Branch.NoPrompt,
	}.Sanitize()
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	syncErrors := []error{
		utils.SyncLogger(application.logger),
		utils.SyncLogger(application.loggerOutputs.ConsoleLogger),
		application.loggerOutputs.Close(),
	}
	return errors.Join(syncErrors...)
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, applicationNameConstant))
	}
	return searchPaths
}
