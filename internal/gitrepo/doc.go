// Package gitrepo reads the state grb plans against: the repository root,
// the checked out branch and the set of local branches.
//
// Inspector answers these questions with go-git so no git process is spawned
// while planning.
package gitrepo
