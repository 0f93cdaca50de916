package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/toolpact/toolpact/pkg/logger"
)

// RootCmd builds the toolpact command tree.
func RootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "toolpact",
		Short: "Tool contract resolution and chunking for workflow tasks",
		Long: "toolpact validates declared tool contracts, resolves them against a\n" +
			"run-time environment into executable documents, and manages the\n" +
			"scatter/gather chunk protocol.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return err
				}
			} else if _, err := os.Stat(".env"); err == nil {
				_ = godotenv.Load()
			}
			logLevel, logJSON, err := logger.GetLoggerConfig(cmd)
			if err != nil {
				return err
			}
			logger.SetupLogger(logLevel, logJSON)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Bool("log-json", false, "emit logs as JSON")
	pf.StringVar(&envFile, "env-file", "", "load environment variables from this file")

	cmd.AddCommand(
		resolveCmd(),
		validateCmd(),
		chunkCmd(),
		versionCmd(),
	)
	return cmd
}
