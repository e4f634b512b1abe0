// Package config loads dirtree configuration files and writes the default one.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tyemirov/dirtree/internal/export"
	"github.com/tyemirov/dirtree/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults for rendering and exporting trees.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree"`
	PDF  PDFConfiguration  `mapstructure:"pdf"`
}

// TreeConfiguration defines defaults for the tree command.
type TreeConfiguration struct {
	Order  string             `mapstructure:"order"`
	Format string             `mapstructure:"format"`
	Copy   *bool              `mapstructure:"copy"`
	Tokens TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting of the rendering.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// PDFConfiguration overrides the page geometry of PDF exports.
type PDFConfiguration struct {
	FontPath   string   `mapstructure:"font_path"`
	FontSize   *float64 `mapstructure:"font_size"`
	Margin     *float64 `mapstructure:"margin"`
	LineHeight *float64 `mapstructure:"line_height"`
}

// LoadApplicationConfiguration loads configuration from the global file and then the local one,
// letting local values override global values.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	return merged.Merge(localConfig), nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	result.PDF = result.PDF.merge(override.PDF)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Order != "" {
		result.Order = override.Order
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.Tokens.Enabled != nil {
		result.Tokens.Enabled = cloneBool(override.Tokens.Enabled)
	}
	if override.Tokens.Model != "" {
		result.Tokens.Model = override.Tokens.Model
	}
	return result
}

func (config PDFConfiguration) merge(override PDFConfiguration) PDFConfiguration {
	result := config
	if override.FontPath != "" {
		result.FontPath = override.FontPath
	}
	if override.FontSize != nil {
		result.FontSize = cloneFloat(override.FontSize)
	}
	if override.Margin != nil {
		result.Margin = cloneFloat(override.Margin)
	}
	if override.LineHeight != nil {
		result.LineHeight = cloneFloat(override.LineHeight)
	}
	return result
}

// Layout applies the configured overrides to the default Letter layout.
func (config PDFConfiguration) Layout() export.Layout {
	layout := export.DefaultLayout()
	layout.FontPath = config.FontPath
	if config.FontSize != nil {
		layout.FontSize = *config.FontSize
	}
	if config.Margin != nil {
		layout.Margin = *config.Margin
	}
	if config.LineHeight != nil {
		layout.LineHeight = *config.LineHeight
	}
	return layout
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
