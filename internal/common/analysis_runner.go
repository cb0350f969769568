package common

import (
	"context"
	"path/filepath"

	"resumelens/internal/errors"
	"resumelens/internal/extract"
	"resumelens/internal/types"
)

// AnalyzeFunc is the analysis operation invoked on the extracted document.
type AnalyzeFunc func(ctx context.Context, doc types.Document, opts types.AnalyzeOptions) (types.Report, error)

// RunAnalysisCommand encapsulates the common logic for file-based CLI
// commands: validate and read the résumé file, extract its text, run the
// analysis, and write the formatted report.
func RunAnalysisCommand(
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	resumePath string,
	opts types.AnalyzeOptions,
	analyze AnalyzeFunc,
) error {
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	data, err := fileProcessor.ValidateAndReadResume(resumePath)
	if err != nil {
		return err
	}

	fileName := filepath.Base(resumePath)
	text, err := extract.FromBytes(data, fileName, "")
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Info("Starting resume analysis",
			"file", fileName,
			"text_length", len(text),
			"job_title", opts.JobTitle)
	}

	report, err := analyze(ctx, types.Document{Text: text, FileName: fileName}, opts)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(report, cmdConfig)
}
