// Package branchops runs grb's branch actions.
//
// Service turns a request (action alias, branch, remote) into a step list using
// the actions catalog, then either prints it (explain mode) or runs every git
// command in order and stops at the first failure (execute mode).
// CommandBuilder exposes the service as a cobra command.
package branchops
