// Package flags binds grb's shared command-line flags and renders their usage text.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// ExplainFlagName selects explain mode.
	ExplainFlagName = "explain"
	// ExplainFlagUsage describes explain mode.
	ExplainFlagUsage = "Print the git commands instead of running them"
	// VerboseFlagName selects verbose execution.
	VerboseFlagName = "verbose"
	// VerboseFlagShorthand is the shorthand of the verbose flag.
	VerboseFlagShorthand = "v"
	// VerboseFlagUsage describes verbose execution.
	VerboseFlagUsage = "Show the output of every git command"
	// ColorFlagName selects the color mode.
	ColorFlagName = "color"
	// ColorFlagUsage describes the color modes.
	ColorFlagUsage = "Color git commands in the output"
	// TrunkFlagName overrides the trunk branch.
	TrunkFlagName = "trunk"
	// TrunkFlagUsage describes the trunk branch.
	TrunkFlagUsage = "Branch checked out before deleting or re-tracking the current branch"
	// NoPromptFlagName disables git credential prompts.
	NoPromptFlagName = "no-prompt"
	// NoPromptFlagUsage describes the no-prompt flag.
	NoPromptFlagUsage = "Make git fail instead of asking for credentials on the terminal"
)

// OutputDefaults carries the configured values shown as flag defaults.
type OutputDefaults struct {
	Explain     bool
	Verbose     bool
	ColorMode   string
	ColorModes  []string
	TrunkBranch string
	NoPrompt    bool
}

// OutputFlagValues receives parsed flag values.
type OutputFlagValues struct {
	Explain     bool
	Verbose     bool
	ColorMode   string
	TrunkBranch string
	NoPrompt    bool
}

// OutputFlagOverrides reports the parsed flag values together with whether each flag was set.
type OutputFlagOverrides struct {
	OutputFlagValues
	ExplainSet     bool
	VerboseSet     bool
	ColorModeSet   bool
	TrunkBranchSet bool
	NoPromptSet    bool
}

// BindOutputFlags attaches grb's shared flags to command.
func BindOutputFlags(command *cobra.Command, defaults OutputDefaults) *OutputFlagValues {
	values := &OutputFlagValues{}
	if command == nil {
		return values
	}

	flagSet := command.Flags()
	AddToggleFlag(flagSet, &values.Explain, ExplainFlagName, "", defaults.Explain, ExplainFlagUsage)
	AddToggleFlag(flagSet, &values.Verbose, VerboseFlagName, VerboseFlagShorthand, defaults.Verbose, VerboseFlagUsage)
	AddChoiceFlag(flagSet, &values.ColorMode, ColorFlagName, defaults.ColorMode, defaults.ColorModes, ColorFlagUsage)
	flagSet.StringVar(&values.TrunkBranch, TrunkFlagName, defaults.TrunkBranch, TrunkFlagUsage)
	AddToggleFlag(flagSet, &values.NoPrompt, NoPromptFlagName, "", defaults.NoPrompt, NoPromptFlagUsage)
	return values
}

// ResolveOutputFlags reads the output flags from command and marks the ones the user set.
func ResolveOutputFlags(command *cobra.Command, values *OutputFlagValues) OutputFlagOverrides {
	overrides := OutputFlagOverrides{}
	if command == nil || values == nil {
		return overrides
	}

	flagSet := command.Flags()
	overrides.OutputFlagValues = *values
	overrides.ExplainSet = flagChanged(flagSet, ExplainFlagName)
	overrides.VerboseSet = flagChanged(flagSet, VerboseFlagName)
	overrides.ColorModeSet = flagChanged(flagSet, ColorFlagName)
	overrides.TrunkBranchSet = flagChanged(flagSet, TrunkFlagName)
	overrides.NoPromptSet = flagChanged(flagSet, NoPromptFlagName)
	return overrides
}

func flagChanged(flagSet *pflag.FlagSet, name string) bool {
	flag := flagSet.Lookup(name)
	return flag != nil && flag.Changed
}
