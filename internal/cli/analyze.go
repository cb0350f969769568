package cli

import (
	"fmt"

	"resumelens/internal/analyzer"
	"resumelens/internal/classifier"
	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume and produce a full report",
	Long: `Analyze a resume file and produce a full report: extracted skills,
predicted roles, ATS compatibility score, education assessment, employment
gap detection, and improvement suggestions. Plain text, Markdown, PDF, and
DOCX files are supported.

Provide --job-title (and optionally --job-description) to additionally score
the resume against a specific position.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig
var analyzeOpts types.AnalyzeOptions

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVar(&analyzeOpts.JobTitle, "job-title", "", "Target job title to score the resume against")
	analyzeCmd.Flags().StringVar(&analyzeOpts.JobDescription, "job-description", "", "Target job description text")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	cls, err := classifier.New(&cfg.Classifier, logger)
	if err != nil {
		return fmt.Errorf("failed to create role classifier: %w", err)
	}

	engine := analyzer.New(analyzer.Config{
		Classifier: cls,
		Logger:     logger,
	})

	err = common.RunAnalysisCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args[0],
		analyzeOpts,
		engine.Analyze,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}
