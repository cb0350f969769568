package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Report", &ReportTextFormatter{})
	registry.RegisterFormatter("markdown", "Report", &ReportMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.Report:
		return "Report"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ReportTextFormatter handles text formatting for analysis reports
type ReportTextFormatter struct{}

func (rtf *ReportTextFormatter) Format(data any) (string, error) {
	report, ok := data.(types.Report)
	if !ok {
		return "", fmt.Errorf("expected Report, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	if report.FileName != "" {
		output.WriteString(fmt.Sprintf("File: %s\n", report.FileName))
	}
	output.WriteString(fmt.Sprintf("Analyzed: %s\n", report.AnalysisDate))
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n", report.OverallScore))
	output.WriteString(fmt.Sprintf("Primary Role: %s\n", report.PrimaryRole))
	output.WriteString(fmt.Sprintf("Experience Level: %s\n\n", report.ExperienceLevel))

	output.WriteString("=== ATS COMPATIBILITY ===\n")
	output.WriteString(fmt.Sprintf("Total: %d/100\n", report.ATSCompatibility.Total))
	b := report.ATSCompatibility.Breakdown
	output.WriteString(fmt.Sprintf("  Formatting: %d/25\n", b.Formatting))
	output.WriteString(fmt.Sprintf("  Content Quality: %d/25\n", b.ContentQuality))
	output.WriteString(fmt.Sprintf("  Skills Presentation: %d/20\n", b.SkillsPresentation))
	output.WriteString(fmt.Sprintf("  Keyword Optimization: %d/20\n", b.KeywordOptimization))
	output.WriteString(fmt.Sprintf("  Contact Info: %d/10\n\n", b.ContactInfo))

	if len(report.CategorizedSkills) > 0 {
		output.WriteString("=== SKILLS ===\n")
		for _, category := range sortedKeys(report.CategorizedSkills) {
			output.WriteString(fmt.Sprintf("%s: %s\n", category,
				strings.Join(report.CategorizedSkills[category], ", ")))
		}
		output.WriteString("\n")
	}

	if len(report.PredictedRoles) > 0 {
		output.WriteString("=== PREDICTED ROLES ===\n")
		for i, role := range report.PredictedRoles {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, role))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== EDUCATION ===\n")
	output.WriteString(fmt.Sprintf("Score: %d/25\n", report.EducationAssessment.Score))
	if len(report.EducationAssessment.Degrees) > 0 {
		output.WriteString(fmt.Sprintf("Degrees: %s\n",
			strings.Join(report.EducationAssessment.Degrees, ", ")))
	}
	if len(report.EducationAssessment.Institutions) > 0 {
		output.WriteString(fmt.Sprintf("Institutions: %s\n",
			strings.Join(report.EducationAssessment.Institutions, ", ")))
	}
	output.WriteString("\n")

	if len(report.MissingCriticalSkills) > 0 {
		output.WriteString("=== MISSING CRITICAL SKILLS ===\n")
		for _, skill := range report.MissingCriticalSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== CAREER TIMELINE ===\n")
	if report.GapAnalysis.HasGaps {
		output.WriteString("Employment gaps detected:\n")
		for _, gap := range report.GapAnalysis.Gaps {
			output.WriteString(fmt.Sprintf("- %s\n", gap))
		}
	} else if report.GapAnalysis.Details != "" {
		output.WriteString(report.GapAnalysis.Details)
		output.WriteString("\n")
	} else {
		output.WriteString("No employment gaps detected.\n")
	}
	output.WriteString("\n")

	if report.JobMatchScore != nil {
		output.WriteString("=== JOB MATCH ===\n")
		output.WriteString(fmt.Sprintf("Score: %d/100\n\n", *report.JobMatchScore))
	}

	if len(report.ImprovementSuggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n")
		for _, suggestion := range report.ImprovementSuggestions {
			output.WriteString(fmt.Sprintf("- %s\n", suggestion))
		}
		output.WriteString("\n")
	}

	if len(report.ActionItems) > 0 {
		output.WriteString("=== ACTION ITEMS ===\n")
		for i, item := range report.ActionItems {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
		}
	}

	return output.String(), nil
}

func (rtf *ReportTextFormatter) SupportedType() string {
	return "Report"
}

// ReportMarkdownFormatter handles markdown formatting for analysis reports
type ReportMarkdownFormatter struct{}

func (rmf *ReportMarkdownFormatter) Format(data any) (string, error) {
	report, ok := data.(types.Report)
	if !ok {
		return "", fmt.Errorf("expected Report, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	if report.FileName != "" {
		output.WriteString(fmt.Sprintf("**File:** %s\n\n", report.FileName))
	}
	output.WriteString(fmt.Sprintf("**Analyzed:** %s\n\n", report.AnalysisDate))
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", report.OverallScore))
	output.WriteString(fmt.Sprintf("**Primary Role:** %s\n\n", report.PrimaryRole))
	output.WriteString(fmt.Sprintf("**Experience Level:** %s\n\n", report.ExperienceLevel))

	output.WriteString("## ATS Compatibility\n\n")
	output.WriteString(fmt.Sprintf("**Total:** %d/100\n\n", report.ATSCompatibility.Total))
	b := report.ATSCompatibility.Breakdown
	output.WriteString("| Component | Score |\n|---|---|\n")
	output.WriteString(fmt.Sprintf("| Formatting | %d/25 |\n", b.Formatting))
	output.WriteString(fmt.Sprintf("| Content Quality | %d/25 |\n", b.ContentQuality))
	output.WriteString(fmt.Sprintf("| Skills Presentation | %d/20 |\n", b.SkillsPresentation))
	output.WriteString(fmt.Sprintf("| Keyword Optimization | %d/20 |\n", b.KeywordOptimization))
	output.WriteString(fmt.Sprintf("| Contact Info | %d/10 |\n\n", b.ContactInfo))

	if len(report.CategorizedSkills) > 0 {
		output.WriteString("## Skills\n\n")
		for _, category := range sortedKeys(report.CategorizedSkills) {
			output.WriteString(fmt.Sprintf("**%s:** %s\n\n", category,
				strings.Join(report.CategorizedSkills[category], ", ")))
		}
	}

	if len(report.PredictedRoles) > 0 {
		output.WriteString("## Predicted Roles\n\n")
		for i, role := range report.PredictedRoles {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, role))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Education\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/25\n\n", report.EducationAssessment.Score))
	if len(report.EducationAssessment.Degrees) > 0 {
		output.WriteString(fmt.Sprintf("**Degrees:** %s\n\n",
			strings.Join(report.EducationAssessment.Degrees, ", ")))
	}
	if len(report.EducationAssessment.Institutions) > 0 {
		output.WriteString(fmt.Sprintf("**Institutions:** %s\n\n",
			strings.Join(report.EducationAssessment.Institutions, ", ")))
	}

	if len(report.MissingCriticalSkills) > 0 {
		output.WriteString("## Missing Critical Skills\n\n")
		for _, skill := range report.MissingCriticalSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Career Timeline\n\n")
	if report.GapAnalysis.HasGaps {
		output.WriteString("Employment gaps detected:\n\n")
		for _, gap := range report.GapAnalysis.Gaps {
			output.WriteString(fmt.Sprintf("- %s\n", gap))
		}
		output.WriteString("\n")
	} else if report.GapAnalysis.Details != "" {
		output.WriteString(report.GapAnalysis.Details)
		output.WriteString("\n\n")
	} else {
		output.WriteString("No employment gaps detected.\n\n")
	}

	if report.JobMatchScore != nil {
		output.WriteString("## Job Match\n\n")
		output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", *report.JobMatchScore))
	}

	if len(report.ImprovementSuggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for _, suggestion := range report.ImprovementSuggestions {
			output.WriteString(fmt.Sprintf("- %s\n", suggestion))
		}
		output.WriteString("\n")
	}

	if len(report.ActionItems) > 0 {
		output.WriteString("## Action Items\n\n")
		for i, item := range report.ActionItems {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
		}
	}

	return output.String(), nil
}

func (rmf *ReportMarkdownFormatter) SupportedType() string {
	return "Report"
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
