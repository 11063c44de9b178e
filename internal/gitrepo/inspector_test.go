package gitrepo_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	"github.com/temirov/grb/internal/gitrepo"
)

const (
	testCommitHashConstant      = "0123456789abcdef0123456789abcdef01234567"
	testNestedDirectoryConstant = "nested/deeper"
)

func initializeRepository(testInstance *testing.T, branchNames ...string) (string, *git.Repository) {
	testInstance.Helper()

	repositoryRoot := testInstance.TempDir()
	repository, initError := git.PlainInit(repositoryRoot, false)
	require.NoError(testInstance, initError)

	for _, branchName := range branchNames {
		branchReference := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branchName), plumbing.NewHash(testCommitHashConstant))
		require.NoError(testInstance, repository.Storer.SetReference(branchReference))
	}
	return repositoryRoot, repository
}

func resolvedPath(testInstance *testing.T, path string) string {
	testInstance.Helper()
	resolved, resolveError := filepath.EvalSymlinks(path)
	require.NoError(testInstance, resolveError)
	return resolved
}

func TestInspectorRepositoryRoot(testInstance *testing.T) {
	repositoryRoot, _ := initializeRepository(testInstance)
	nestedDirectory := filepath.Join(repositoryRoot, testNestedDirectoryConstant)
	require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))

	testCases := []struct {
		name             string
		workingDirectory string
	}{
		{name: "root", workingDirectory: repositoryRoot},
		{name: "nested_directory", workingDirectory: nestedDirectory},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			inspector := gitrepo.NewInspector(testCase.workingDirectory)
			root, rootError := inspector.RepositoryRoot(context.Background())
			require.NoError(testInstance, rootError)
			require.Equal(testInstance, resolvedPath(testInstance, repositoryRoot), resolvedPath(testInstance, root))
		})
	}
}

func TestInspectorCurrentBranch(testInstance *testing.T) {
	testCases := []struct {
		name           string
		configure      func(testInstance *testing.T, repository *git.Repository)
		expectedBranch string
		expectedError  error
	}{
		{
			name:           "unborn_default_branch",
			configure:      func(*testing.T, *git.Repository) {},
			expectedBranch: "master",
		},
		{
			name: "switched_branch",
			configure: func(testInstance *testing.T, repository *git.Repository) {
				headReference := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("feature/login"))
				require.NoError(testInstance, repository.Storer.SetReference(headReference))
			},
			expectedBranch: "feature/login",
		},
		{
			name: "detached_head",
			configure: func(testInstance *testing.T, repository *git.Repository) {
				headReference := plumbing.NewHashReference(plumbing.HEAD, plumbing.NewHash(testCommitHashConstant))
				require.NoError(testInstance, repository.Storer.SetReference(headReference))
			},
			expectedError: gitrepo.ErrDetachedHead,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			repositoryRoot, repository := initializeRepository(testInstance, "feature/login")
			testCase.configure(testInstance, repository)

			currentBranch, branchError := gitrepo.NewInspector(repositoryRoot).CurrentBranch(context.Background())
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, branchError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, branchError)
			require.Equal(testInstance, testCase.expectedBranch, currentBranch)
		})
	}
}

func TestInspectorLocalBranches(testInstance *testing.T) {
	repositoryRoot, _ := initializeRepository(testInstance, "topic", "master", "feature/login")
	inspector := gitrepo.NewInspector(repositoryRoot)

	branchNames, namesError := inspector.LocalBranchNames(context.Background())
	require.NoError(testInstance, namesError)
	require.Equal(testInstance, []string{"feature/login", "master", "topic"}, branchNames)

	localBranches, branchesError := inspector.LocalBranches(context.Background())
	require.NoError(testInstance, branchesError)
	require.Equal(testInstance, 3, localBranches.Len())
	require.True(testInstance, localBranches.Contains("feature/login"))
	require.False(testInstance, localBranches.Contains("origin/topic"))
}

func TestInspectorReportsMissingRepository(testInstance *testing.T) {
	inspector := gitrepo.NewInspector(testInstance.TempDir())

	_, rootError := inspector.RepositoryRoot(context.Background())
	require.ErrorIs(testInstance, rootError, gitrepo.ErrNotInRepository)

	_, branchError := inspector.CurrentBranch(context.Background())
	require.ErrorIs(testInstance, branchError, gitrepo.ErrNotInRepository)

	_, branchesError := inspector.LocalBranches(context.Background())
	require.ErrorIs(testInstance, branchesError, gitrepo.ErrNotInRepository)
}

func TestInspectorHonorsCancelledContext(testInstance *testing.T) {
	repositoryRoot, _ := initializeRepository(testInstance)
	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	_, branchError := gitrepo.NewInspector(repositoryRoot).CurrentBranch(cancelledContext)
	require.ErrorIs(testInstance, branchError, context.Canceled)
}
