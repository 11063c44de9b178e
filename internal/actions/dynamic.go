package actions

import "fmt"

const (
	gitFetchSubcommandConstant    = "fetch"
	gitConfigSubcommandConstant   = "config"
	gitBranchSubcommandConstant   = "branch"
	gitCheckoutSubcommandConstant = "checkout"
	gitPushSubcommandConstant     = "push"
	gitTrackFlagConstant          = "--track"
	gitForceFlagConstant          = "-f"
	remoteConfigKeyTemplate       = "branch.%s.remote"
	mergeConfigKeyTemplate        = "branch.%s.merge"
	headsReferenceTemplate        = "refs/heads/%s"
	remoteBranchTemplate          = "%s/%s"
	pushRefspecTemplate           = "%s:refs/heads/%s"
)

// TrackSteps fetches remoteName and then points branchName at remoteName/branchName,
// repointing the tracking configuration when the branch already exists locally and
// creating a tracking branch otherwise. The branch is checked out last.
func TrackSteps(branchName string, remoteName string, localBranches LocalBranchSet) StepList {
	steps := StepList{NewStep(gitFetchSubcommandConstant, remoteName)}
	if localBranches.Contains(branchName) {
		steps = append(steps,
			NewStep(gitConfigSubcommandConstant, fmt.Sprintf(remoteConfigKeyTemplate, branchName), remoteName),
			NewStep(gitConfigSubcommandConstant, fmt.Sprintf(mergeConfigKeyTemplate, branchName), fmt.Sprintf(headsReferenceTemplate, branchName)),
		)
	} else {
		steps = append(steps, NewStep(gitBranchSubcommandConstant, gitTrackFlagConstant, branchName, fmt.Sprintf(remoteBranchTemplate, remoteName, branchName)))
	}
	return append(steps, NewStep(gitCheckoutSubcommandConstant, branchName))
}

// UnforkSteps re-homes currentBranch onto remoteName. The branch first tracks reference
// (the remote it was forked from), is force-pushed to remoteName, and then tracks remoteName.
// Both tracking phases read the same snapshot.
func UnforkSteps(reference string, remoteName string, currentBranch string, localBranches LocalBranchSet) StepList {
	steps := TrackSteps(currentBranch, reference, localBranches)
	steps = append(steps, NewStep(gitPushSubcommandConstant, gitForceFlagConstant, remoteName, fmt.Sprintf(pushRefspecTemplate, currentBranch, currentBranch)))
	return append(steps, TrackSteps(currentBranch, remoteName, localBranches)...)
}

func trackStepFunction(parameters Parameters, localBranches LocalBranchSet) StepList {
	return TrackSteps(parameters.BranchName, parameters.RemoteName, localBranches)
}

func unforkStepFunction(parameters Parameters, localBranches LocalBranchSet) StepList {
	return UnforkSteps(parameters.BranchName, parameters.RemoteName, parameters.CurrentBranch, localBranches)
}
