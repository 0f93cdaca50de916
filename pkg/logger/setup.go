package logger

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SetupLogger initializes the package default logger from CLI-style settings.
func SetupLogger(logLevel string, logJSON bool) {
	cfg := DefaultConfig()
	cfg.JSON = logJSON
	switch logLevel {
	case "debug":
		cfg.Level = DebugLevel
	case "info":
		cfg.Level = InfoLevel
	case "warn":
		cfg.Level = WarnLevel
	case "error":
		cfg.Level = ErrorLevel
	}
	Init(cfg)
}

func GetLoggerConfig(cmd *cobra.Command) (string, bool, error) {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return "", false, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return "", false, fmt.Errorf("failed to get log-json flag: %w", err)
	}
	return logLevel, logJSON, nil
}
