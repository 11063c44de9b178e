package branchops

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/grb/internal/actions"
)

const (
	helpWelcomeTemplateConstant         = "%s version %s"
	helpUsageHeadingConstant            = "Usage:"
	helpUsageLineTemplateConstant       = "  %s %s %s [origin_server]"
	helpBranchArgumentConstant          = "branch_name"
	helpReferenceArgumentConstant       = "remote_branch_ref"
	helpNotesHeadingConstant            = "Notes:"
	helpRemoteNoteTemplateConstant      = "- If origin_server is not specified, the name '%s' is assumed"
	helpRenameNoteConstant              = "- rename renames the branch you are currently on"
	helpUnforkNoteConstant              = "- unfork makes the branch you are currently on track remote_branch_ref"
	helpTrunkNoteTemplateConstant       = "- delete and retrack check out '%s' before removing the branch in use"
	helpExplainParagraphConstant        = "The explain meta-command: prepend any command with the keyword 'explain' (or pass --explain)\nand grb prints the git commands it would run instead of running them."
	helpExampleHeadingConstant          = "Examples:"
	helpExampleLineTemplateConstant     = "  %s explain %s"
	helpExampleFullLineTemplateConstant = "  %s explain %s my_branch github"
	helpAliasHeadingConstant            = "All commands also have aliases:"
	helpAliasLineTemplateConstant       = "%s: %s"
	helpAliasSeparatorConstant          = ", "
	helpFlagsHeadingConstant            = "Flags:"
	helpWriteErrorTemplateConstant      = "unable to write help: %w"
)

// positionalUsageOrder lists the actions that take a branch name, in the order the usage block shows them.
var positionalUsageOrder = []actions.ActionID{
	actions.ActionCreate,
	actions.ActionPublish,
	actions.ActionRename,
	actions.ActionDelete,
	actions.ActionTrack,
	actions.ActionRetrack,
}

// HelpOptions carries the values interpolated into the help surface.
type HelpOptions struct {
	ApplicationName string
	Version         string
	RemoteName      string
	TrunkBranch     string
	FlagUsages      string
}

// WriteHelp renders the welcome line, usage, notes, the explain paragraph and the alias table.
func WriteHelp(writer io.Writer, registry *actions.Registry, options HelpOptions) error {
	if _, writeError := io.WriteString(writer, RenderHelp(registry, options)); writeError != nil {
		return fmt.Errorf(helpWriteErrorTemplateConstant, writeError)
	}
	return nil
}

// RenderHelp returns the help surface as text.
func RenderHelp(registry *actions.Registry, options HelpOptions) string {
	applicationName := strings.TrimSpace(options.ApplicationName)
	if len(applicationName) == 0 {
		applicationName = applicationNameConstant
	}
	remoteName := strings.TrimSpace(options.RemoteName)
	if len(remoteName) == 0 {
		remoteName = actions.DefaultRemoteName
	}
	trunkBranch := strings.TrimSpace(options.TrunkBranch)
	if len(trunkBranch) == 0 {
		trunkBranch = actions.DefaultTrunkBranch
	}

	var builder strings.Builder
	writeLine := func(line string) {
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	writeLine(fmt.Sprintf(helpWelcomeTemplateConstant, applicationName, options.Version))
	writeLine("")
	writeLine(helpUsageHeadingConstant)
	writeLine("")
	for _, actionID := range positionalUsageOrder {
		writeLine(fmt.Sprintf(helpUsageLineTemplateConstant, applicationName, actionID, helpBranchArgumentConstant))
	}
	writeLine("")
	writeLine(fmt.Sprintf(helpUsageLineTemplateConstant, applicationName, actions.ActionUnfork, helpReferenceArgumentConstant))
	writeLine("")
	writeLine(helpNotesHeadingConstant)
	writeLine(fmt.Sprintf(helpRemoteNoteTemplateConstant, remoteName))
	writeLine(helpRenameNoteConstant)
	writeLine(helpUnforkNoteConstant)
	writeLine(fmt.Sprintf(helpTrunkNoteTemplateConstant, trunkBranch))
	writeLine("")
	writeLine(helpExplainParagraphConstant)
	writeLine("")
	writeLine(helpExampleHeadingConstant)
	writeLine(fmt.Sprintf(helpExampleLineTemplateConstant, applicationName, actions.ActionCreate))
	writeLine(fmt.Sprintf(helpExampleFullLineTemplateConstant, applicationName, actions.ActionCreate))
	writeLine("")
	writeLine(helpAliasHeadingConstant)
	if registry != nil {
		for _, action := range registry.List() {
			writeLine(fmt.Sprintf(helpAliasLineTemplateConstant, action.ID, strings.Join(action.Aliases, helpAliasSeparatorConstant)))
		}
	}

	flagUsages := strings.TrimRight(options.FlagUsages, "\n")
	if len(strings.TrimSpace(flagUsages)) > 0 {
		writeLine("")
		writeLine(helpFlagsHeadingConstant)
		writeLine(flagUsages)
	}

	return builder.String()
}
