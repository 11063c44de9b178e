// Package cli constructs the grb command-line interface. It wires the branch
// action command to the Viper configuration loader and the zap loggers, and
// exposes Execute for the main package.
package cli
