// Package actions defines the grb action catalog and the step computer that
// turns an action plus its parameters into an ordered list of git commands.
//
// Registry holds the seven actions and their aliases, StepComputer expands
// fixed command templates or runs the dynamic track and unfork computations,
// and AliasResolver exposes alias lookup to the command-line front end.
package actions
