package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"resumelens/internal/analyzer"
	"resumelens/internal/common"
	"resumelens/internal/extract"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file]",
	Short: "Score a resume against a target job title",
	Long: `Score a resume against a target job title without producing a full
report. The output is the match score, the predicted primary role, and the
critical skills missing for that role.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

var (
	matchJobTitle       string
	matchJobDescription string
	matchOutputFile     string
)

func init() {
	matchCmd.Flags().StringVar(&matchJobTitle, "job-title", "", "Target job title (required)")
	matchCmd.Flags().StringVar(&matchJobDescription, "job-description", "", "Target job description text")
	matchCmd.Flags().StringVarP(&matchOutputFile, "output", "o", "", "Output file path (default: stdout)")
	_ = matchCmd.MarkFlagRequired("job-title")
}

// matchResult is the JSON output of the match command.
type matchResult struct {
	FileName      string   `json:"fileName"`
	JobTitle      string   `json:"jobTitle"`
	JobMatchScore int      `json:"jobMatchScore"`
	PrimaryRole   string   `json:"primaryRole"`
	MissingSkills []string `json:"missingSkills"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	data, err := fileProcessor.ValidateAndReadResume(args[0])
	if err != nil {
		return err
	}

	fileName := filepath.Base(args[0])
	text, err := extract.FromBytes(data, fileName, "")
	if err != nil {
		return err
	}

	sections := analyzer.Segment(text)
	skills := analyzer.ExtractSkills(text, sections)
	roles := analyzer.PredictRoles(skills)
	primary := analyzer.GeneralistRole
	if len(roles) > 0 {
		primary = roles[0]
	}

	result := matchResult{
		FileName:      fileName,
		JobTitle:      matchJobTitle,
		JobMatchScore: analyzer.JobMatchScore(skills, matchJobTitle, matchJobDescription),
		PrimaryRole:   primary,
		MissingSkills: analyzer.MissingSkillsForRole(primary, skills),
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode match result: %w", err)
	}

	if matchOutputFile != "" {
		if err := fileProcessor.WriteFile(matchOutputFile, string(output)+"\n"); err != nil {
			return err
		}
		logger.Info("Match result written", "file", matchOutputFile)
		return nil
	}

	_, err = fmt.Fprintln(os.Stdout, string(output))
	return err
}
