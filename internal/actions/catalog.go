package actions

const (
	remoteBranchPattern        = PlaceholderRemote + "/" + PlaceholderBranch
	branchHeadsPattern         = "refs/heads/" + PlaceholderBranch
	pushBranchPattern          = PlaceholderBranch + ":refs/heads/" + PlaceholderBranch
	pushCurrentPattern         = PlaceholderCurrent + ":refs/heads/" + PlaceholderBranch
	deleteRemoteBranchPattern  = ":refs/heads/" + PlaceholderBranch
	deleteRemoteCurrentPattern = ":refs/heads/" + PlaceholderCurrent
	remoteConfigPattern        = "branch." + PlaceholderBranch + ".remote"
	mergeConfigPattern         = "branch." + PlaceholderBranch + ".merge"
	gitDeleteFlagConstant      = "-d"
	gitForceDeleteFlagConstant = "-D"
)

// DefaultActions returns the seven catalog entries in declaration order.
func DefaultActions() []Action {
	return []Action{
		{
			ID:                 ActionCreate,
			Description:        "create a new remote branch and track it locally",
			Aliases:            []string{"create", "new"},
			RequiredParameters: []ParameterName{ParameterBranchName, ParameterCurrentBranch},
			Templates: []CommandTemplate{
				Always(gitPushSubcommandConstant, PlaceholderRemote, pushCurrentPattern),
				Always(gitFetchSubcommandConstant, PlaceholderRemote),
				Always(gitBranchSubcommandConstant, gitTrackFlagConstant, PlaceholderBranch, remoteBranchPattern),
				Always(gitCheckoutSubcommandConstant, PlaceholderBranch),
			},
		},
		{
			ID:                 ActionPublish,
			Description:        "publish an existing local branch",
			Aliases:            []string{"publish", "remotize", "share"},
			RequiredParameters: []ParameterName{ParameterBranchName},
			Templates: []CommandTemplate{
				Always(gitPushSubcommandConstant, PlaceholderRemote, pushBranchPattern),
				Always(gitFetchSubcommandConstant, PlaceholderRemote),
				Always(gitConfigSubcommandConstant, remoteConfigPattern, PlaceholderRemote),
				Always(gitConfigSubcommandConstant, mergeConfigPattern, branchHeadsPattern),
				Always(gitCheckoutSubcommandConstant, PlaceholderBranch),
			},
		},
		{
			ID:                 ActionRename,
			Description:        "rename a remote branch and its local tracking branch",
			Aliases:            []string{"rename", "rn", "mv", "move"},
			RequiredParameters: []ParameterName{ParameterBranchName, ParameterCurrentBranch},
			Templates: []CommandTemplate{
				Always(gitPushSubcommandConstant, PlaceholderRemote, pushCurrentPattern),
				Always(gitFetchSubcommandConstant, PlaceholderRemote),
				Always(gitBranchSubcommandConstant, gitTrackFlagConstant, PlaceholderBranch, remoteBranchPattern),
				Always(gitCheckoutSubcommandConstant, PlaceholderBranch),
				Always(gitPushSubcommandConstant, PlaceholderRemote, deleteRemoteCurrentPattern),
				Always(gitBranchSubcommandConstant, gitDeleteFlagConstant, PlaceholderCurrent),
			},
		},
		{
			ID:                 ActionDelete,
			Description:        "delete a local and a remote branch",
			Aliases:            []string{"delete", "destroy", "kill", "remove", "rm"},
			RequiredParameters: []ParameterName{ParameterBranchName, ParameterCurrentBranch},
			Templates: []CommandTemplate{
				Always(gitPushSubcommandConstant, PlaceholderRemote, deleteRemoteBranchPattern),
				When(CurrentIsTarget, gitCheckoutSubcommandConstant, PlaceholderTrunk),
				Always(gitBranchSubcommandConstant, gitDeleteFlagConstant, PlaceholderBranch),
			},
		},
		{
			ID:                 ActionTrack,
			Description:        "track an existing remote branch",
			Aliases:            []string{"track", "follow", "grab", "fetch"},
			RequiredParameters: []ParameterName{ParameterBranchName},
			Compute:            trackStepFunction,
		},
		{
			ID:                 ActionRetrack,
			Description:        "delete and then track a remote branch",
			Aliases:            []string{"retrack"},
			RequiredParameters: []ParameterName{ParameterBranchName},
			Templates: []CommandTemplate{
				Always(gitCheckoutSubcommandConstant, PlaceholderTrunk),
				Always(gitBranchSubcommandConstant, gitForceDeleteFlagConstant, PlaceholderBranch),
				Always(gitFetchSubcommandConstant, PlaceholderRemote),
				Always(gitBranchSubcommandConstant, gitTrackFlagConstant, PlaceholderBranch, remoteBranchPattern),
				Always(gitCheckoutSubcommandConstant, PlaceholderBranch),
			},
		},
		{
			ID:                 ActionUnfork,
			Description:        "unfork a remote (e.g. github) branch",
			Aliases:            []string{"unfork"},
			RequiredParameters: []ParameterName{ParameterBranchName, ParameterCurrentBranch},
			Compute:            unforkStepFunction,
		},
	}
}
