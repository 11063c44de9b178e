package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/temirov/grb/internal/actions"
)

const (
	notInRepositoryMessageConstant             = "not inside a git repository"
	detachedHeadMessageConstant                = "HEAD is not on a branch"
	workingDirectoryResolveTemplateConstant    = "unable to resolve working directory %s: %w"
	repositoryOpenTemplateConstant             = "unable to open repository at %s: %w"
	notInRepositoryTemplateConstant            = "%s: %w"
	worktreeResolveTemplateConstant            = "unable to resolve worktree of %s: %w"
	headReadTemplateConstant                   = "unable to read HEAD of %s: %w"
	branchListTemplateConstant                 = "unable to list branches of %s: %w"
	branchIterationTemplateConstant            = "unable to iterate branches of %s: %w"
	currentWorkingDirectoryPlaceholderConstant = "."
)

// ErrNotInRepository indicates the working directory is not inside a git work tree.
var ErrNotInRepository = errors.New(notInRepositoryMessageConstant)

// ErrDetachedHead indicates HEAD points at a commit rather than a branch.
var ErrDetachedHead = errors.New(detachedHeadMessageConstant)

// Inspector reads repository state for the work tree containing a working directory.
// Every call reopens the repository so answers reflect the state at call time.
type Inspector struct {
	workingDirectory string
}

// NewInspector constructs an Inspector rooted at workingDirectory. An empty value means the process working directory.
func NewInspector(workingDirectory string) *Inspector {
	trimmedWorkingDirectory := strings.TrimSpace(workingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		trimmedWorkingDirectory = currentWorkingDirectoryPlaceholderConstant
	}
	return &Inspector{workingDirectory: trimmedWorkingDirectory}
}

// RepositoryRoot returns the top-level directory of the work tree.
func (inspector *Inspector) RepositoryRoot(executionContext context.Context) (string, error) {
	repository, openError := inspector.open(executionContext)
	if openError != nil {
		return "", openError
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return "", fmt.Errorf(worktreeResolveTemplateConstant, inspector.workingDirectory, worktreeError)
	}
	return worktree.Filesystem.Root(), nil
}

// CurrentBranch returns the short name of the checked out branch. It works on
// repositories without commits because HEAD is read without resolving it.
func (inspector *Inspector) CurrentBranch(executionContext context.Context) (string, error) {
	repository, openError := inspector.open(executionContext)
	if openError != nil {
		return "", openError
	}

	headReference, headError := repository.Reference(plumbing.HEAD, false)
	if headError != nil {
		return "", fmt.Errorf(headReadTemplateConstant, inspector.workingDirectory, headError)
	}
	if headReference.Type() != plumbing.SymbolicReference || !headReference.Target().IsBranch() {
		return "", ErrDetachedHead
	}
	return headReference.Target().Short(), nil
}

// LocalBranches returns a snapshot of the branches under refs/heads.
func (inspector *Inspector) LocalBranches(executionContext context.Context) (actions.LocalBranchSet, error) {
	branchNames, listError := inspector.LocalBranchNames(executionContext)
	if listError != nil {
		return actions.LocalBranchSet{}, listError
	}
	return actions.NewLocalBranchSet(branchNames...), nil
}

// LocalBranchNames returns the sorted short names of all local branches.
func (inspector *Inspector) LocalBranchNames(executionContext context.Context) ([]string, error) {
	repository, openError := inspector.open(executionContext)
	if openError != nil {
		return nil, openError
	}

	branchIterator, branchesError := repository.Branches()
	if branchesError != nil {
		return nil, fmt.Errorf(branchListTemplateConstant, inspector.workingDirectory, branchesError)
	}
	defer branchIterator.Close()

	branchNames := []string{}
	iterationError := branchIterator.ForEach(func(reference *plumbing.Reference) error {
		if reference.Name().IsBranch() {
			branchNames = append(branchNames, reference.Name().Short())
		}
		return nil
	})
	if iterationError != nil {
		return nil, fmt.Errorf(branchIterationTemplateConstant, inspector.workingDirectory, iterationError)
	}

	sort.Strings(branchNames)
	return branchNames, nil
}

func (inspector *Inspector) open(executionContext context.Context) (*git.Repository, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	absoluteWorkingDirectory, resolveError := filepath.Abs(inspector.workingDirectory)
	if resolveError != nil {
		return nil, fmt.Errorf(workingDirectoryResolveTemplateConstant, inspector.workingDirectory, resolveError)
	}

	repository, openError := git.PlainOpenWithOptions(absoluteWorkingDirectory, &git.PlainOpenOptions{DetectDotGit: true, EnableDotGitCommonDir: true})
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf(notInRepositoryTemplateConstant, absoluteWorkingDirectory, ErrNotInRepository)
		}
		return nil, fmt.Errorf(repositoryOpenTemplateConstant, absoluteWorkingDirectory, openError)
	}
	return repository, nil
}
