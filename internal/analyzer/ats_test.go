package analyzer

import (
	"strings"
	"testing"
)

func TestATSScoreContactInfo(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"email only", "Reach me at jane@example.com", 3},
		{"phone only", "Call 555-123-4567 anytime", 3},
		{"social handle", "github janedoe", 4},
		{"email and phone", "jane@example.com, 555-123-4567", 6},
		{"none", "No contact details here", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ATSScore(tt.text, nil, nil)
			if got.Breakdown.ContactInfo != tt.want {
				t.Errorf("contactInfo = %d, want %d", got.Breakdown.ContactInfo, tt.want)
			}
		})
	}
}

func TestATSScoreFormattingSections(t *testing.T) {
	text := strings.Join([]string{
		"Summary", "An engineer.",
		"Experience", "Did things.",
		"Education", "Learned things.",
		"Skills", "python",
	}, "\n")

	got := ATSScore(text, nil, Segment(text))
	// summary 5 + experience 7 + education 5 + skills 8
	if got.Breakdown.Formatting != 25 {
		t.Errorf("formatting = %d, want 25", got.Breakdown.Formatting)
	}
}

func TestATSScoreBulletBonus(t *testing.T) {
	little := strings.Repeat("• item\n", 6)
	lots := strings.Repeat("• item\n", 11)

	if got := ATSScore(little, nil, nil).Breakdown.Formatting; got != 3 {
		t.Errorf("six bullets formatting = %d, want 3", got)
	}
	if got := ATSScore(lots, nil, nil).Breakdown.Formatting; got != 5 {
		t.Errorf("eleven bullets formatting = %d, want 5", got)
	}
}

func TestATSScoreContentQuality(t *testing.T) {
	text := "developed implemented created designed managed led improved built " +
		"served 500 users and saved $20000"

	got := ATSScore(text, nil, nil)
	// verbs capped at 15, two metric hits add 4
	if got.Breakdown.ContentQuality != 19 {
		t.Errorf("contentQuality = %d, want 19", got.Breakdown.ContentQuality)
	}
}

func TestATSScoreSkillsPresentation(t *testing.T) {
	withSection := "Skills\nLanguages: python, go"
	got := ATSScore(withSection, nil, Segment(withSection))
	if got.Breakdown.SkillsPresentation != 20 {
		t.Errorf("categorized skills section = %d, want 20", got.Breakdown.SkillsPresentation)
	}

	noSection := "I know python and docker well"
	got = ATSScore(noSection, []string{"python", "docker"}, Segment(noSection))
	if got.Breakdown.SkillsPresentation != 2 {
		t.Errorf("inline skills = %d, want 2", got.Breakdown.SkillsPresentation)
	}
}

func TestATSScoreKeywordOptimizationCap(t *testing.T) {
	skills := make([]string, 0, 25)
	var sb strings.Builder
	for _, s := range []string{
		"python", "java", "react", "docker", "kubernetes", "terraform",
		"aws", "azure", "gcp", "sql", "mysql", "mongodb", "kafka", "spark",
		"hadoop", "pandas", "numpy", "tensorflow", "pytorch", "keras",
		"jenkins", "grafana", "prometheus", "figma", "sketch",
	} {
		skills = append(skills, s)
		sb.WriteString(s + " ")
	}

	got := ATSScore(sb.String(), skills, nil)
	if got.Breakdown.KeywordOptimization != 20 {
		t.Errorf("keywordOptimization = %d, want cap of 20", got.Breakdown.KeywordOptimization)
	}
}

func TestATSScoreTotalIsComponentSum(t *testing.T) {
	text := "Summary\nDeveloped services for 40 users.\nSkills\nCore: python\njane@example.com"
	got := ATSScore(text, []string{"python"}, Segment(text))

	if got.Total != got.Breakdown.Sum() {
		t.Errorf("total %d != breakdown sum %d", got.Total, got.Breakdown.Sum())
	}
}
