package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tyemirov/dirtree/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `tree:
  order: name
  format: text
  copy: false
  tokens:
    enabled: false
    model: gpt-4o
pdf:
  font_path: ""
  font_size: 10
  margin: 40
  line_height: 12
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// DefaultConfiguration returns the YAML written by InitializeConfiguration.
func DefaultConfiguration() string {
	return defaultConfigurationTemplate
}

// InitializeConfiguration writes the default configuration to the requested target and
// returns the written path. An existing file is replaced only when Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, resolveErr := resolveInitPath(options)
	if resolveErr != nil {
		return "", resolveErr
	}

	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !options.Force {
		openFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	fileHandle, openErr := os.OpenFile(destinationPath, openFlags, 0o600)
	if openErr != nil {
		if os.IsExist(openErr) {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
		return "", fmt.Errorf("open configuration %s: %w", destinationPath, openErr)
	}
	if _, writeErr := fileHandle.WriteString(defaultConfigurationTemplate); writeErr != nil {
		_ = fileHandle.Close()
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, writeErr)
	}
	if closeErr := fileHandle.Close(); closeErr != nil {
		return "", fmt.Errorf("close configuration %s: %w", destinationPath, closeErr)
	}
	return destinationPath, nil
}

func resolveInitPath(options InitOptions) (string, error) {
	switch options.Target {
	case "", InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory for configuration: %w", err)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, 0o755); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf("unsupported init target %q", options.Target)
	}
}
