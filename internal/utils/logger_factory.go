package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	logFileCloseErrorTemplateConstant    = "unable to close log file %s: %w"
	defaultLogFileMaxSizeMegabytes       = 10
	defaultLogFileMaxBackups             = 3
	defaultLogFileMaxAgeDays             = 28
	consoleMessageKeyConstant            = "message"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LogFormats lists the accepted log formats in help order.
func LogFormats() []string {
	return []string{string(LogFormatStructured), string(LogFormatConsole)}
}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// LogFileOptions enables a rotating log file next to the stderr output. An empty Path disables it.
// Zero limits fall back to 10 MB, 3 backups and 28 days.
type LogFileOptions struct {
	Path             string
	MaxSizeMegabytes int
	MaxBackups       int
	MaxAgeDays       int
}

// LoggerOutputs holds the loggers built for one CLI invocation.
type LoggerOutputs struct {
	// DiagnosticLogger carries structured diagnostics in the configured format.
	DiagnosticLogger *zap.Logger
	// ConsoleLogger prints bare human-readable messages, used to narrate git commands.
	ConsoleLogger *zap.Logger
	logFile       *lumberjack.Logger
}

// Close releases the log file, if any.
func (outputs LoggerOutputs) Close() error {
	if outputs.logFile == nil {
		return nil
	}
	if closeError := outputs.logFile.Close(); closeError != nil {
		return fmt.Errorf(logFileCloseErrorTemplateConstant, outputs.logFile.Filename, closeError)
	}
	return nil
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	homeExpander *HomeExpander
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{homeExpander: NewHomeExpander()}
}

// CreateLogger produces a zap.Logger writing to stderr with the requested level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	outputs, creationError := factory.CreateLoggerOutputs(requestedLogLevel, requestedLogFormat, LogFileOptions{})
	if creationError != nil {
		return nil, creationError
	}
	return outputs.DiagnosticLogger, nil
}

// CreateLoggerOutputs builds the diagnostic and console loggers. Both also write JSON
// entries to the rotating log file when fileOptions.Path is set.
func (factory *LoggerFactory) CreateLoggerOutputs(requestedLogLevel LogLevel, requestedLogFormat LogFormat, fileOptions LogFileOptions) (LoggerOutputs, error) {
	zapLogLevel, levelExists := logLevelMapping[LogLevel(strings.ToLower(strings.TrimSpace(string(requestedLogLevel))))]
	if !levelExists {
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	var diagnosticEncoder zapcore.Encoder
	switch LogFormat(strings.ToLower(strings.TrimSpace(string(requestedLogFormat)))) {
	case LogFormatStructured:
		diagnosticEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case LogFormatConsole:
		diagnosticEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return LoggerOutputs{}, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	levelEnabler := zap.NewAtomicLevelAt(zapLogLevel)
	standardErrorSink := zapcore.Lock(os.Stderr)
	diagnosticCore := zapcore.NewCore(diagnosticEncoder, standardErrorSink, levelEnabler)
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig()), standardErrorSink, levelEnabler)

	outputs := LoggerOutputs{}
	if trimmedPath := strings.TrimSpace(fileOptions.Path); len(trimmedPath) > 0 {
		outputs.logFile = factory.buildLogFile(trimmedPath, fileOptions)
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(outputs.logFile), levelEnabler)
		diagnosticCore = zapcore.NewTee(diagnosticCore, fileCore)
		consoleCore = zapcore.NewTee(consoleCore, fileCore)
	}

	outputs.DiagnosticLogger = zap.New(diagnosticCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	outputs.ConsoleLogger = zap.New(consoleCore)
	return outputs, nil
}

func (factory *LoggerFactory) buildLogFile(path string, fileOptions LogFileOptions) *lumberjack.Logger {
	expandedPath := path
	if factory != nil {
		expandedPath = factory.homeExpander.Expand(path)
	}
	return &lumberjack.Logger{
		Filename:   expandedPath,
		MaxSize:    positiveOrDefault(fileOptions.MaxSizeMegabytes, defaultLogFileMaxSizeMegabytes),
		MaxBackups: positiveOrDefault(fileOptions.MaxBackups, defaultLogFileMaxBackups),
		MaxAge:     positiveOrDefault(fileOptions.MaxAgeDays, defaultLogFileMaxAgeDays),
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     consoleMessageKeyConstant,
		LevelKey:       zapcore.OmitKey,
		TimeKey:        zapcore.OmitKey,
		NameKey:        zapcore.OmitKey,
		CallerKey:      zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func positiveOrDefault(value int, defaultValue int) int {
	if value > 0 {
		return value
	}
	return defaultValue
}

// SyncLogger flushes logger, ignoring the errors stderr returns when it is a terminal or pipe.
func SyncLogger(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}
	syncError := logger.Sync()
	if syncError == nil || isIgnorableSyncError(syncError) {
		return nil
	}
	return syncError
}
