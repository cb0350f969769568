package formatters

import (
	"strings"
	"testing"

	"resumelens/internal/types"
)

func sampleReport() types.Report {
	match := 72
	return types.Report{
		FileName:     "resume.pdf",
		AnalysisDate: "2026-03-01 10:30:00",
		OverallScore: 81,
		ATSCompatibility: types.ATSCompatibility{
			Total: 74,
			Breakdown: types.ScoreBreakdown{
				Formatting:          20,
				ContentQuality:      18,
				SkillsPresentation:  16,
				KeywordOptimization: 12,
				ContactInfo:         8,
			},
		},
		SkillsExtracted: []string{"python", "docker"},
		CategorizedSkills: map[string][]string{
			"Programming Languages": {"python"},
			"Cloud & DevOps":        {"docker"},
		},
		PredictedRoles:        []string{"DevOps Engineer", "Backend Developer"},
		PrimaryRole:           "DevOps Engineer",
		ExperienceLevel:       "Mid-level",
		EducationAssessment:   types.EducationAssessment{Score: 15, Degrees: []string{"bachelors"}},
		MissingCriticalSkills: []string{"kubernetes", "terraform"},
		ImprovementSuggestions: []string{
			"Add a LinkedIn profile URL.",
		},
		GapAnalysis:   types.GapAnalysis{HasGaps: true, Gaps: []string{"2019 - 2021"}},
		JobMatchScore: &match,
		ActionItems:   []string{"Learn these in-demand skills: kubernetes, terraform."},
	}
}

func TestFormatJSON(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleReport(), "json")
	if err != nil {
		t.Fatalf("Format(json) error: %v", err)
	}
	for _, want := range []string{`"overallScore": 81`, `"primaryRole": "DevOps Engineer"`, `"jobMatchScore": 72`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %q", want)
		}
	}
}

func TestFormatText(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleReport(), "text")
	if err != nil {
		t.Fatalf("Format(text) error: %v", err)
	}
	for _, want := range []string{
		"=== RESUME ANALYSIS ===",
		"Overall Score: 81/100",
		"Primary Role: DevOps Engineer",
		"Total: 74/100",
		"- kubernetes",
		"- 2019 - 2021",
		"Score: 72/100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestFormatMarkdown(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleReport(), "markdown")
	if err != nil {
		t.Fatalf("Format(markdown) error: %v", err)
	}
	for _, want := range []string{
		"# Resume Analysis",
		"**Overall Score:** 81/100",
		"| Formatting | 20/25 |",
		"## Missing Critical Skills",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	if _, err := registry.Format(sampleReport(), "xml"); err == nil {
		t.Fatal("Format(xml) should fail")
	}
}

func TestFormatFallsBackToJSON(t *testing.T) {
	registry := NewFormatterRegistry()

	// Non-Report data has no text formatter but json handles anything.
	out, err := registry.Format(map[string]int{"n": 1}, "json")
	if err != nil {
		t.Fatalf("Format(json) error: %v", err)
	}
	if !strings.Contains(out, `"n": 1`) {
		t.Errorf("JSON fallback output missing value: %s", out)
	}
}
