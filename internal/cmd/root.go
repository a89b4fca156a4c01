// Package cmd provides the command-line interface for rotorconf.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/k3ng-tools/rotorconf-go/pkg/board"
	"github.com/k3ng-tools/rotorconf-go/pkg/check"
)

var (
	// Version information (set by main)
	version   string
	gitCommit string
	buildTime string

	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string
	rulesPath string
	pinsPath  string
	boardsDir string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rotorconf",
	Short: "Configuration validator for rotator controller firmware",
	Long: `rotorconf validates rotator controller configuration files before
they are compiled into firmware.

It checks feature dependencies (mutual exclusivity, required features,
conflicts), physical pin assignments (capability requirements, collisions,
reserved pins) against a board definition, and can apply unambiguous
automatic fixes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information from main.
func SetVersionInfo(ver, commit, build string) {
	version = ver
	gitCommit = commit
	buildTime = build
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rotorconf.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (json, text)")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "rule document (default: built-in ruleset)")
	rootCmd.PersistentFlags().StringVar(&pinsPath, "pins", "", "pin requirement document (default: built-in table)")
	rootCmd.PersistentFlags().StringVar(&boardsDir, "boards-dir", "", "directory with extra board definitions")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("rules.path", rootCmd.PersistentFlags().Lookup("rules"))
	viper.BindPFlag("pins.path", rootCmd.PersistentFlags().Lookup("pins"))
	viper.BindPFlag("boards.dir", rootCmd.PersistentFlags().Lookup("boards-dir"))

	viper.SetEnvPrefix("ROTORCONF")
	viper.AutomaticEnv()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rotorconf")
	}

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

// loadEngine builds the validation engine from the configured rule and
// board sources, falling back to the built-in tables.
func loadEngine() (*check.Engine, error) {
	logger := slog.Default()

	rules := check.DefaultRules()
	if path := viper.GetString("rules.path"); path != "" {
		loaded, err := check.LoadRules(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded rule document", "path", path, "rules", loaded.RuleCount())
		rules = loaded
	}

	reqs := check.DefaultRequirements()
	if path := viper.GetString("pins.path"); path != "" {
		loaded, err := check.LoadRequirements(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded pin requirement document", "path", path, "roles", len(loaded.Roles()))
		reqs = loaded
	}

	boards := board.Builtin()
	if dir := viper.GetString("boards.dir"); dir != "" {
		if err := boards.LoadDir(dir); err != nil {
			return nil, err
		}
		logger.Debug("loaded board definitions", "dir", dir)
	}

	return check.NewEngine(rules, reqs, boards), nil
}
