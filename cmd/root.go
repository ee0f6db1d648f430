// Package cmd provides the command-line interface for iconfont with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	Settings are resolved with the following precedence:
//	1. Command-line flags (--input, --font-name, etc.) - highest priority
//	2. Individual environment variables (ICONFONT_FONT_NAME, etc.)
//	3. Configuration file: --config, ICONFONT_CONFIG_FILE or .iconfont.yml
//	4. Built-in defaults - lowest priority
//
// Environment Variables:
//
//	ICONFONT_CONFIG_FILE: Path to custom configuration file
//	ICONFONT_INPUT_DIR: Override the icon directory
//	ICONFONT_FONT_NAME: Override the font name
//	And the rest following the ICONFONT_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/iconfont/internal/config"
	"github.com/conneroisu/iconfont/internal/errors"
	"github.com/conneroisu/iconfont/internal/logging"
)

var cfgFile string

// rootCmd builds the font when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "iconfont",
	Short: "Turn a directory of SVG icons into an icon font",
	Long: `iconfont converts a directory of SVG icons into a single WOFF2 icon font
and a CSS stylesheet that maps one class name to each icon.

Every file ending in .svg directly inside the input directory becomes a
glyph. Glyphs get consecutive Private Use Area code points starting at
U+E000, in file name order, and a class named <prefix>-<file name>.

Quick Start:
  iconfont                        Build icons/*.svg into dist/icons.{woff2,css}
  iconfont build -i assets/svg    Build from another directory
  iconfont watch                  Rebuild whenever an icon changes
  iconfont fingerprint            Print the digest of the current inputs`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBuild,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is .iconfont.yml, can also use ICONFONT_CONFIG_FILE env var)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	addBuildFlags(pf)

	bindFlags(pf, map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
	})
	bindFlags(pf, buildFlagKeys)
}

// initConfig initializes the configuration system.
//
// Configuration file lookup (highest to lowest):
//  1. --config flag
//  2. ICONFONT_CONFIG_FILE environment variable
//  3. .iconfont.yml in the current directory
//
// Every key can also be set from the environment with the ICONFONT_ prefix,
// dots replaced by underscores (font.name becomes ICONFONT_FONT_NAME).
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("ICONFONT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".iconfont")
	}

	viper.SetEnvPrefix("ICONFONT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing config file is fine, defaults apply
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig loads and validates the merged configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) logging.Logger {
	level, _ := logging.ParseLevel(cfg.Log.Level)
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Log.Format,
		Output:    os.Stderr,
		Component: "iconfont",
	})
}

// PrintError writes err and any suggestions for fixing it to stderr.
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	for _, s := range errors.Suggest(err) {
		if s.Command != "" {
			fmt.Fprintf(os.Stderr, "  • %s: %s\n", s.Title, s.Command)
		} else {
			fmt.Fprintf(os.Stderr, "  • %s\n", s.Title)
		}
	}
}
