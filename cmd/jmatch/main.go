// Command jmatch matches obfuscated JVM symbols between two versions of a
// jar archive.
package main

import (
	"os"

	"jmatch/internal/errors"
	"jmatch/internal/logging"
)

func main() {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	if err := rootCmd.Execute(); err != nil {
		if jerr, ok := err.(*errors.JmatchError); ok {
			logger.LogJmatchError(jerr)
		} else {
			logger.Error("command execution failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		os.Exit(1)
	}
}
