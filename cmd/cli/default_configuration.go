package cli

import _ "embed"

// defaultConfigurationContent is merged beneath the user configuration file.
//
//go:embed default_config.yaml
var defaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a private copy of grb's built-in config.yaml and its viper config type.
// Callers may modify the returned bytes.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	configurationCopy := append([]byte(nil), defaultConfigurationContent...)
	return configurationCopy, configurationTypeConstant
}
