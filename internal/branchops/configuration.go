package branchops

import (
	"strings"

	"github.com/temirov/grb/internal/actions"
	"github.com/temirov/grb/internal/ui"
)

// CommandConfiguration captures the configured defaults for branch actions.
type CommandConfiguration struct {
	RemoteName     string `mapstructure:"remote"`
	TrunkBranch    string `mapstructure:"trunk"`
	ColorMode      string `mapstructure:"color"`
	Verbose        bool   `mapstructure:"verbose"`
	DisablePrompts bool   `mapstructure:"no_prompt"`
}

// DefaultCommandConfiguration provides baseline configuration values for branch actions.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RemoteName:     actions.DefaultRemoteName,
		TrunkBranch:    actions.DefaultTrunkBranch,
		ColorMode:      string(ui.ColorModeAuto),
		Verbose:        false,
		DisablePrompts: false,
	}
}

// Sanitize trims configuration values and restores defaults for blank fields.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = defaults.RemoteName
	}

	sanitized.TrunkBranch = strings.TrimSpace(configuration.TrunkBranch)
	if len(sanitized.TrunkBranch) == 0 {
		sanitized.TrunkBranch = defaults.TrunkBranch
	}

	sanitized.ColorMode = strings.ToLower(strings.TrimSpace(configuration.ColorMode))
	if len(sanitized.ColorMode) == 0 {
		sanitized.ColorMode = defaults.ColorMode
	}

	return sanitized
}
