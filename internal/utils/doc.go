// Package utils holds the CLI plumbing shared by grb's commands.
//
// ConfigurationLoader layers embedded defaults, configuration files and GRB_
// environment variables through Viper. LoggerFactory builds the zap loggers,
// optionally teeing into a rotating log file. CommandContextAccessor carries
// per-invocation values through cobra contexts.
package utils
