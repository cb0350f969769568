package analyzer

import (
	"slices"
	"testing"
)

func TestExtractSkillsKnownVocabulary(t *testing.T) {
	text := "Skills\nProficient in python, docker and kubernetes. Shipped react frontends."
	skills := ExtractSkills(text, Segment(text))

	for _, want := range []string{"python", "docker", "kubernetes", "react"} {
		if !slices.Contains(skills, want) {
			t.Errorf("skills %v missing %q", skills, want)
		}
	}
}

func TestExtractSkillsVariantSpellings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"nodejs collapses to node.js", "Backend services in nodejs", "node.js"},
		{"scikit learn space variant", "Modeling with scikit learn", "scikit-learn"},
		{"rest-api hyphen variant", "Designed the rest-api layer", "rest api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := ExtractSkills(tt.text, nil)
			if !slices.Contains(skills, tt.want) {
				t.Errorf("ExtractSkills(%q) = %v, want to include %q", tt.text, skills, tt.want)
			}
		})
	}
}

func TestExtractSkillsDiscoversUnknownTech(t *testing.T) {
	text := "Built dashboards with nextjs and chart-tools integrations"
	skills := ExtractSkills(text, nil)

	if !slices.Contains(skills, "nextjs") {
		t.Errorf("skills %v missing discovered token nextjs", skills)
	}
	if !slices.Contains(skills, "chart-tools") {
		t.Errorf("skills %v missing discovered hyphenated token", skills)
	}
}

func TestExtractSkillsFiltersStopwords(t *testing.T) {
	skills := ExtractSkills("worked on this-and-that", nil)
	for _, s := range skills {
		if s == "the" || s == "and" || s == "this" {
			t.Errorf("stopword %q leaked into skills %v", s, skills)
		}
	}
}

func TestExtractSkillsDeduplicates(t *testing.T) {
	text := "python python python"
	skills := ExtractSkills(text, nil)

	count := 0
	for _, s := range skills {
		if s == "python" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("python appeared %d times in %v, want once", count, skills)
	}
}

func TestCategorizeSkills(t *testing.T) {
	got := CategorizeSkills([]string{"python", "react", "docker", "figma"})

	checks := map[string]string{
		"Programming Languages": "python",
		"Web Development":       "react",
		"Cloud & DevOps":        "docker",
		"UI/UX Design":          "figma",
	}
	for category, skill := range checks {
		if !slices.Contains(got[category], skill) {
			t.Errorf("category %q = %v, want to include %q", category, got[category], skill)
		}
	}
}

func TestCategorizeSkillsFirstMatchWins(t *testing.T) {
	// stakeholder management is listed under both Project Management and
	// Soft Skills; it must land only in the earlier category.
	got := CategorizeSkills([]string{"stakeholder management"})

	if !slices.Contains(got["Project Management"], "stakeholder management") {
		t.Errorf("Project Management = %v, want stakeholder management", got["Project Management"])
	}
	if len(got["Soft Skills"]) != 0 {
		t.Errorf("Soft Skills = %v, want empty", got["Soft Skills"])
	}
}

func TestCategorizeSkillsOmitsEmptyCategories(t *testing.T) {
	got := CategorizeSkills([]string{"python"})
	if _, ok := got["Blockchain"]; ok {
		t.Error("empty category should be omitted from the result")
	}
}
