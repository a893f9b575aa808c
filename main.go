package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"diabetes-risk/pkg/config"
)

var (
	// Global flags
	verbose    bool
	configFile string

	cfg    *config.Config
	logger *zap.Logger
)

// errPredictionFailed makes the process exit non-zero after the error panel is printed
var errPredictionFailed = errors.New("prediction failed")

var rootCmd = &cobra.Command{
	Use:   "diabetes-risk",
	Short: "Diabetes risk survey backed by a remote prediction service",
	Long: `Serves the diabetes risk survey form, forwards answers to the prediction
service and shows the returned risk label and probability.

Run without a subcommand to start the web server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file loaded")
		}
		if configFile != "" {
			os.Setenv("CONFIG_FILE", configFile)
		}

		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		// Initialize logger
		zapConfig := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("error parsing log level: %w", err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zapConfig.Level = zap.NewAtomicLevelAt(level)
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (overrides CONFIG_FILE)")

	rootCmd.AddCommand(serveCmd, predictCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errPredictionFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
