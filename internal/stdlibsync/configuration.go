package stdlibsync

import "strings"

const (
	repositoryRootConfigurationKeyConstant = "repository_root"
	defaultRepositoryRootConstant          = "."
)

// CommandConfiguration captures configuration values for the sync command.
type CommandConfiguration struct {
	RepositoryRoot string `mapstructure:"repository_root"`
}

// DefaultCommandConfiguration provides baseline configuration values for the sync command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{RepositoryRoot: defaultRepositoryRootConstant}
}

// DefaultConfigurationValues returns viper defaults for the sync command keyed under the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + "." + repositoryRootConfigurationKeyConstant: defaults.RepositoryRoot,
	}
}

// Sanitize trims configuration values and restores the default repository root when it is empty.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RepositoryRoot = strings.TrimSpace(configuration.RepositoryRoot)
	if len(sanitized.RepositoryRoot) == 0 {
		sanitized.RepositoryRoot = defaultRepositoryRootConstant
	}
	return sanitized
}
