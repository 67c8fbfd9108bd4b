// Package cli implements the litqa command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driving"
	"github.com/medlit-labs/litqa-cli/internal/logger"
)

// version is set via SetVersion at startup (ldflags in release builds).
var version = "dev"

// Services are installed by the application before Execute. Commands check
// for a missing service and fail with a clear error instead of panicking.
var (
	ingestionService driving.IngestionService
	answerService    driving.AnswerService
	indexCollection  driven.Collection

	// defaultTopics seeds `litqa ingest` when no topics are given.
	defaultTopics []string
)

var (
	verbose bool

	// configDir and dataDir are registered here so cobra accepts and
	// documents them, but they are read by the application before command
	// dispatch: services are wired before Execute runs.
	configDir string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "litqa",
	Short: "Question answering over PubMed literature",
	Long: `litqa builds a local vector index from PubMed abstracts and answers
questions against it using a language model.

Typical usage:
  litqa ingest "cancer immunotherapy"
  litqa ask "how do checkpoint inhibitors work?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.litqa)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory holding the index (default ~/.litqa/data)")
}

// SetServices installs the service implementations used by the commands.
func SetServices(ingest driving.IngestionService, answer driving.AnswerService, collection driven.Collection) {
	ingestionService = ingest
	answerService = answer
	indexCollection = collection
}

// SetDefaultTopics installs the configured fallback topics for ingest.
func SetDefaultTopics(topics []string) {
	defaultTopics = topics
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
