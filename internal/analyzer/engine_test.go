package analyzer

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	apperrors "resumelens/internal/errors"
	"resumelens/internal/types"
)

var engineTestClock = func() time.Time {
	return time.Date(2026, time.March, 1, 10, 30, 0, 0, time.UTC)
}

const sampleResume = `Jane Doe
jane@example.com | 555-123-4567
linkedin.com/in/janedoe | github.com/janedoe

Professional Summary
Backend engineer who enjoys building reliable data-heavy platform services.

Work Experience
• Developed billing services in python and go, serving 200 clients
• Managed docker and kubernetes deployments, Acme Corp, 2019 - 2023
• Built internal tooling, Beta LLC, 2015 - 2018

Skills
Languages: python, go
Infrastructure: docker, kubernetes

Education
Bachelor of Science, State University, 2011 - 2015
GPA: 3.8
`

func newTestEngine() *Engine {
	return New(Config{Clock: engineTestClock})
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		_, err := newTestEngine().Analyze(context.Background(), types.Document{Text: text}, types.AnalyzeOptions{})
		if err == nil {
			t.Fatalf("Analyze(%q) expected error", text)
		}
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeEmptyDocument {
			t.Errorf("error = %v, want code %s", err, apperrors.ErrCodeEmptyDocument)
		}
	}
}

func TestAnalyzeFullReport(t *testing.T) {
	report, err := newTestEngine().Analyze(context.Background(),
		types.Document{Text: sampleResume, FileName: "jane_resume.pdf"},
		types.AnalyzeOptions{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.FileName != "jane_resume.pdf" {
		t.Errorf("fileName = %q", report.FileName)
	}
	if report.AnalysisDate != "2026-03-01 10:30:00" {
		t.Errorf("analysisDate = %q", report.AnalysisDate)
	}
	for _, skill := range []string{"python", "go", "docker", "kubernetes"} {
		if !slices.Contains(report.SkillsExtracted, skill) {
			t.Errorf("skillsExtracted %v missing %q", report.SkillsExtracted, skill)
		}
	}
	if report.PrimaryRole != report.PredictedRoles[0] {
		t.Errorf("primaryRole %q != first predicted role %q", report.PrimaryRole, report.PredictedRoles[0])
	}
	if !report.HasLinkedIn {
		t.Error("hasLinkedIn should be true")
	}
	if !report.HasPortfolio {
		t.Error("hasPortfolio should be true")
	}
	if report.JobMatchScore != nil {
		t.Error("jobMatchScore should be absent without a job title")
	}
	if report.OverallScore <= 0 || report.OverallScore > 100 {
		t.Errorf("overallScore = %d, want within (0,100]", report.OverallScore)
	}
	if report.ATSCompatibility.Total != report.ATSCompatibility.Breakdown.Sum() {
		t.Error("ats total must equal breakdown sum")
	}
	if len(report.ActionItems) == 0 {
		t.Error("expected at least one action item")
	}
}

func TestAnalyzeJobMatch(t *testing.T) {
	report, err := newTestEngine().Analyze(context.Background(),
		types.Document{Text: sampleResume},
		types.AnalyzeOptions{JobTitle: "DevOps Engineer", JobDescription: "docker and kubernetes work"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.JobMatchScore == nil {
		t.Fatal("jobMatchScore missing despite job title")
	}
	if *report.JobMatchScore <= 0 || *report.JobMatchScore > 100 {
		t.Errorf("jobMatchScore = %d, want within (0,100]", *report.JobMatchScore)
	}
}

type staticClassifier struct {
	label string
	err   error
}

func (c staticClassifier) Predict(_ context.Context, _ string) (string, error) {
	return c.label, c.err
}

func TestAnalyzeClassifierOverridesPrimary(t *testing.T) {
	engine := New(Config{Clock: engineTestClock, Classifier: staticClassifier{label: "Site Reliability Engineer"}})
	report, err := engine.Analyze(context.Background(), types.Document{Text: sampleResume}, types.AnalyzeOptions{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.PrimaryRole != "Site Reliability Engineer" {
		t.Errorf("primaryRole = %q, want classifier label", report.PrimaryRole)
	}
	if report.PredictedRoles[0] != "Site Reliability Engineer" {
		t.Errorf("predictedRoles = %v, want label first", report.PredictedRoles)
	}
}

func TestAnalyzeClassifierFailureFallsBack(t *testing.T) {
	engine := New(Config{Clock: engineTestClock, Classifier: staticClassifier{err: errors.New("model offline")}})
	report, err := engine.Analyze(context.Background(), types.Document{Text: sampleResume}, types.AnalyzeOptions{})
	if err != nil {
		t.Fatalf("classifier failure must not fail analysis: %v", err)
	}
	if report.PrimaryRole == "" || report.PrimaryRole == "Site Reliability Engineer" {
		t.Errorf("primaryRole = %q, want rule-based fallback", report.PrimaryRole)
	}
}

func TestKeywordDensity(t *testing.T) {
	text := "python is there with python and machine learning for machine learning fans"
	stats := KeywordDensity(text, []string{"python", "machine learning", "rust"})

	if stats["python"].Count != 2 {
		t.Errorf("python count = %d, want 2", stats["python"].Count)
	}
	if stats["machine learning"].Count != 2 {
		t.Errorf("machine learning count = %d, want 2", stats["machine learning"].Count)
	}
	if _, ok := stats["rust"]; ok {
		t.Error("absent skill should be omitted")
	}

	// 12 words, python twice: 2/12*100 rounded to 2 decimals.
	if got := stats["python"].Density; got != 16.67 {
		t.Errorf("python density = %v, want 16.67", got)
	}
}

func TestKeywordDensityEmptyText(t *testing.T) {
	if got := KeywordDensity("   ", []string{"python"}); len(got) != 0 {
		t.Errorf("KeywordDensity on blank text = %v, want empty", got)
	}
}

func TestOverallScoreBlend(t *testing.T) {
	// 80*0.4 + 20*0.2 + 100*0.3 + 100*0.1 = 76
	if got := overallScore(80, 20, 25, "Senior"); got != 76 {
		t.Errorf("overallScore = %d, want 76", got)
	}
	// Unknown level falls back to the entry-level score.
	// 50*0.4 + 10*0.2 + 10*0.3 + 60*0.1 = 31
	if got := overallScore(50, 10, 2, "Unknown"); got != 31 {
		t.Errorf("overallScore = %d, want 31", got)
	}
}

func TestActionItemsPortfolioAdvice(t *testing.T) {
	text := strings.ReplaceAll(sampleResume, "github.com/janedoe", "")
	report, err := newTestEngine().Analyze(context.Background(), types.Document{Text: text}, types.AnalyzeOptions{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.HasPortfolio {
		t.Fatal("fixture should have no portfolio link")
	}
	if !slices.Contains(report.ActionItems, "Add links to your portfolio, GitHub, or personal website") {
		t.Errorf("actionItems %v missing portfolio advice", report.ActionItems)
	}
}
