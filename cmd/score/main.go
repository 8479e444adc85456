// Command score runs the retirement match engine from the command line:
// scoring local files or stored profiles, and checking inputs and storage.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/utils"
)

const appName = "score"

// Actual version can be specified in build command.
var version = "unknown"

// cli carries state shared by the subcommands.
type cli struct {
	debug       bool
	jsonLogs    bool
	scoringPath string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:               appName,
		Short:             "score matches retirement preference profiles against candidate towns",
		SilenceUsage:      true,
		PersistentPreRunE: c.init,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.scoringPath, "scoring", "", "scoring table YAML (default is the built-in table or SCORING_CONFIG_PATH)")
	root.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolVarP(&c.jsonLogs, "json", "j", false, "json format for logging")

	root.AddCommand(
		c.filesCmd(),
		c.userCmd(),
		c.validateCSVCmd(),
		c.validateConfigCmd(),
		c.checkDBCmd(),
		c.initDBCmd(),
		c.loadTownsCmd(),
		versionCmd(),
	)
	return root
}

// init loads the environment and builds the logger before any subcommand.
func (c *cli) init(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.scoringPath != "" {
		cfg.ScoringConfigPath = c.scoringPath
	}

	level := "warn"
	if c.debug {
		level = "debug"
	}
	logger, err := utils.NewLogger(level, c.jsonLogs)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	utils.Logger = logger

	c.cfg = cfg
	c.logger = logger
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s (scoring %s)\n", appName, version, config.ScoringVersion)
		},
	}
}
