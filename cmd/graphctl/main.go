package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/firejune/notion-github-embed/internal/logging"
)

var (
	// Global flags
	verbose bool
	timeout time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "graphctl",
	Short:         "Render contribution graphs and manage the snapshot store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("APP_ENV") != "production" {
			_ = godotenv.Load()
		}
		level := "warn"
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = logging.New(level, "console")
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newDBCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
