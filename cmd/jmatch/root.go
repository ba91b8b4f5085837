package main

import (
	"jmatch/internal/version"

	"github.com/spf13/cobra"
)

var (
	// configPathFlag is the --config flag value, empty means search
	// .jmatch/config.{yaml,toml} relative to the working directory.
	configPathFlag string
	logFormatFlag  string
	logLevelFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "jmatch",
	Short: "jmatch - obfuscated JVM symbol matcher",
	Long: `jmatch matches obfuscated classes, methods, and fields between two
versions of a jar archive using a voting-based, iterative merge engine
over several heuristic passes, with an optional TF-IDF/KNN hybrid ranker
for residual ambiguity.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("jmatch version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "path to a config file (default: search .jmatch/config.yaml or .jmatch/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "log output format: human or json (default: from config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error (default: from config)")
}
