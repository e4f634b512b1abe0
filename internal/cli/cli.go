// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/dirtree/internal/config"
	"github.com/tyemirov/dirtree/internal/export"
	"github.com/tyemirov/dirtree/internal/services/clipboard"
	"github.com/tyemirov/dirtree/internal/session"
	"github.com/tyemirov/dirtree/internal/tokenizer"
	"github.com/tyemirov/dirtree/internal/tree"
	"github.com/tyemirov/dirtree/internal/utils"
)

const (
	configFlagName       = "config"
	versionFlagName      = "version"
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	formatFlagName       = "format"
	orderFlagName        = "order"
	copyFlagName         = "copy"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	globalFlagName       = "global"
	forceFlagName        = "force"
	defaultPath          = "."
	versionTemplate      = "dirtree version: %s\n"
	rootUse              = "dirtree"
	rootShortDescription = "dirtree command line interface"
	rootLongDescription  = `dirtree renders the directory structure of a folder as an indented text tree.
The rendering is printed to standard output and can be saved as a text or PDF file.
Use --config to select a configuration file and --version to print the application version.`
	treeUse              = "tree [path]"
	treeAlias            = "t"
	treeShortDescription = "render a directory tree (" + treeAlias + ")"
	treeLongDescription  = `Render the directory tree of path, or of the working directory when no path is given.
Use --output to save the rendering and --format to choose between text and pdf.`
	treeUsageExample = `  # Print the tree of the current directory
  dirtree tree

  # Save the tree of ./src as a PDF
  dirtree tree ./src --format pdf --output src-tree.pdf`
	initUse              = "init"
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write the default configuration to ./config.yaml, or to ~/.dirtree/config.yaml with --global.
An existing file is kept unless --force is given.`

	configFlagDescription  = "configuration file to use instead of ./config.yaml"
	versionFlagDescription = "display application version"
	outputFlagDescription  = "save the rendering to this file"
	formatFlagDescription  = "export format: text or pdf"
	orderFlagDescription   = "entry order: name or listing"
	copyFlagDescription    = "copy the rendering to the clipboard"
	tokensFlagDescription  = "log the token count of the rendering"
	modelFlagDescription   = "tokenizer model used with --tokens"
	globalFlagDescription  = "write the global configuration"
	forceFlagDescription   = "overwrite an existing configuration file"

	copiedMessage            = "tree copied to clipboard"
	tokenSummaryMessage      = "token summary"
	configWrittenMessage     = "configuration written"
	workingDirectoryErrorFmt = "unable to determine working directory: %w"
	errorAbsolutePathFormat  = "abs failed for '%s': %w"
	errorPathMissingFormat   = "path '%s' does not exist"
	errorStatFormat          = "stat failed for '%s': %w"
	errorNotDirectoryFormat  = "path '%s' is not a directory"
	errorLoadConfigFormat    = "load configuration: %w"
)

// dependencies holds collaborators that tests replace.
type dependencies struct {
	copier     clipboard.Copier
	newCounter func(tokenizer.Config) (tokenizer.Counter, string, error)
	newLogger  func(io.Writer) *zap.Logger
}

func defaultDependencies() dependencies {
	return dependencies{
		copier:     clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
		newLogger:  utils.NewWriterLogger,
	}
}

// Execute runs the dirtree application.
func Execute() error {
	rootCommand := createRootCommand(defaultDependencies())
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	var showVersion bool
	var configurationPath string

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return command.Help()
		},
	}
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(deps, &configurationPath),
		createInitCommand(deps),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// treeOptions stores the flag values of the tree command.
type treeOptions struct {
	output string
	format string
	order  string
	copy   bool
	tokens bool
	model  string
}

// treeSettings are the effective options after configuration and flags are merged.
type treeSettings struct {
	output string
	format export.Format
	order  tree.Order
	copy   bool
	tokens bool
	model  string
	layout export.Layout
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(deps dependencies, configurationPath *string) *cobra.Command {
	var options treeOptions

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			inputPath := defaultPath
			if len(arguments) == 1 {
				inputPath = arguments[0]
			}
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFmt, workingDirectoryError)
			}
			configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: *configurationPath,
			})
			if configurationError != nil {
				return fmt.Errorf(errorLoadConfigFormat, configurationError)
			}
			settings, settingsError := resolveTreeSettings(command, options, configuration)
			if settingsError != nil {
				return settingsError
			}
			rootDirectory, pathError := resolveDirectory(inputPath)
			if pathError != nil {
				return pathError
			}
			return runTree(command, deps, rootDirectory, settings)
		},
	}

	treeCommand.Flags().StringVarP(&options.output, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	treeCommand.Flags().StringVar(&options.format, formatFlagName, string(export.FormatText), formatFlagDescription)
	treeCommand.Flags().StringVar(&options.order, orderFlagName, string(tree.OrderName), orderFlagDescription)
	treeCommand.Flags().BoolVar(&options.copy, copyFlagName, false, copyFlagDescription)
	treeCommand.Flags().BoolVar(&options.tokens, tokensFlagName, false, tokensFlagDescription)
	treeCommand.Flags().StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	return treeCommand
}

// resolveTreeSettings overlays explicitly set flags onto configured values.
func resolveTreeSettings(command *cobra.Command, options treeOptions, configuration config.ApplicationConfiguration) (treeSettings, error) {
	flags := command.Flags()
	treeConfiguration := configuration.Tree

	formatValue := options.format
	if !flags.Changed(formatFlagName) && treeConfiguration.Format != "" {
		formatValue = treeConfiguration.Format
	}
	format, formatError := export.ParseFormat(formatValue)
	if formatError != nil {
		return treeSettings{}, formatError
	}

	orderValue := options.order
	if !flags.Changed(orderFlagName) && treeConfiguration.Order != "" {
		orderValue = treeConfiguration.Order
	}
	order, orderError := tree.ParseOrder(orderValue)
	if orderError != nil {
		return treeSettings{}, orderError
	}

	copyEnabled := options.copy
	if !flags.Changed(copyFlagName) && treeConfiguration.Copy != nil {
		copyEnabled = *treeConfiguration.Copy
	}
	tokensEnabled := options.tokens
	if !flags.Changed(tokensFlagName) && treeConfiguration.Tokens.Enabled != nil {
		tokensEnabled = *treeConfiguration.Tokens.Enabled
	}
	model := options.model
	if !flags.Changed(modelFlagName) && treeConfiguration.Tokens.Model != "" {
		model = treeConfiguration.Tokens.Model
	}

	return treeSettings{
		output: options.output,
		format: format,
		order:  order,
		copy:   copyEnabled,
		tokens: tokensEnabled,
		model:  model,
		layout: configuration.PDF.Layout(),
	}, nil
}

// runTree renders rootDirectory, then copies, counts, and saves it as requested.
func runTree(command *cobra.Command, deps dependencies, rootDirectory string, settings treeSettings) error {
	logger := deps.newLogger(command.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	host := newCommandHost(rootDirectory, settings.output, command.OutOrStdout(), logger)
	treeSession := session.New(host, session.Options{Order: settings.order, Layout: settings.layout})
	if browseError := treeSession.Browse(); browseError != nil {
		return browseError
	}
	rendering := treeSession.Rendering()

	if settings.copy {
		if copyError := deps.copier.Copy(rendering); copyError != nil {
			return copyError
		}
		logger.Info(copiedMessage)
	}

	if settings.tokens {
		counter, resolvedModel, counterError := deps.newCounter(tokenizer.Config{Model: settings.model})
		if counterError != nil {
			return counterError
		}
		summary, countError := tokenizer.CountRendering(counter, resolvedModel, rendering)
		if countError != nil {
			return countError
		}
		logger.Info(tokenSummaryMessage,
			zap.String("model", summary.Model),
			zap.Int("lines", summary.Lines),
			zap.Int("tokens", summary.Tokens),
		)
	}

	if settings.output == "" {
		return nil
	}
	return treeSession.Save(settings.format)
}

// createInitCommand returns the init subcommand.
func createInitCommand(deps dependencies) *cobra.Command {
	var writeGlobal bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			logger := deps.newLogger(command.ErrOrStderr())
			defer func() { _ = logger.Sync() }()
			logger.Info(configWrittenMessage, zap.String("path", writtenPath))
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolveDirectory converts inputPath to a clean absolute path of an existing directory.
func resolveDirectory(inputPath string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return "", fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return "", fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return cleanPath, nil
}
