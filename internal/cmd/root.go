// Package cmd wires the CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/config"
	"github.com/vizlens/vizlens/internal/observability"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main via SetVersionInfo.
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main to record build-time version details.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   "vizlens",
	Short: "Business visibility audit engine",
	Long: `vizlens audits the online visibility of a business: website health,
social profile discovery, Google Business Profile presence, deep site
probes, and AI verification of the discovered profiles.

Use the subcommands to perform specific operations.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults to vizlens.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
}

// loadConfig reads configuration honoring the --config and --verbose
// flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func newCLILogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewCLILogger(cfg.Logging.Level)
}
