// Package execshell runs git on behalf of grb.
//
// ShellExecutor wraps a CommandRunner with structured logging and lifecycle
// observers, OSCommandRunner is the os/exec backed runner, and
// CommandMessageFormatter renders human-readable descriptions of the git
// commands grb issues.
package execshell
