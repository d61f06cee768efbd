// Package cli provides the Cobra command structure for mdtree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/configloader"
	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	backend    string
	renderer   string
	configPath string
	color      string
	noConfig   bool
	verbose    bool
}

// NewRootCommand creates the root mdtree command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdtree",
		Short: "Parse, query and re-render Markdown as a document tree",
		Long: `mdtree turns Markdown into a structural document tree that can be
inspected, queried and rendered back to Markdown, JSON, YAML or plain text.

Documents are read from a file argument or from standard input. The fmt
command re-renders whole directories of Markdown files in place.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			if flags.verbose {
				level = "debug"
			}
			logger := logging.New(logging.Config{Level: level, Output: cmd.ErrOrStderr()})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.backend, "backend", "b", config.DefaultBackend, "parser backend: gfm, commonmark, json, yaml")
	pf.StringVarP(&flags.renderer, "renderer", "r", config.DefaultRenderer, "output renderer: markdown, json, yaml, text")
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to config file")
	pf.BoolVar(&flags.noConfig, "no-config", false, "ignore user and project config files")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flags.color, "color", string(config.ColorAuto), "colorize output: auto, always, never")

	rootCmd.AddCommand(
		newRenderCommand(flags),
		newTreeCommand(flags),
		newQueryCommand(flags),
		newFmtCommand(flags),
		newInitCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(&flags.color).ApplyToCommand(rootCmd)

	return rootCmd
}

// load resolves the configuration for cmd. Global flags that were set
// explicitly override every file and environment layer, as do the values
// already present in overrides.
func (g *globalFlags) load(cmd *cobra.Command, overrides *config.Config) (*config.Config, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg := overrides
	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if cmd.Flags().Changed("backend") {
		cliCfg.Backend = g.backend
	}
	if cmd.Flags().Changed("renderer") {
		cliCfg.Renderer = g.renderer
	}
	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(g.color)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath:        g.configPath,
		IgnoreUserConfig:    g.noConfig,
		IgnoreProjectConfig: g.noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	logger.Debug("configuration loaded",
		logging.FieldPaths, result.LoadedFrom,
		logging.FieldBackend, result.Config.Backend,
		logging.FieldRenderer, result.Config.Renderer,
	)

	return result.Config, nil
}
