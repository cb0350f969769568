package analyzer

import (
	"slices"
	"strings"
	"testing"
)

func TestFormattingSuggestionsContactChecks(t *testing.T) {
	got := FormattingSuggestions("Plain resume with no contact details at all", nil)

	for _, want := range []string{
		"Include a LinkedIn profile link.",
		"Add an email address.",
		"Include a phone number for contact.",
	} {
		if !slices.Contains(got, want) {
			t.Errorf("suggestions %v missing %q", got, want)
		}
	}
}

func TestFormattingSuggestionsContactSatisfied(t *testing.T) {
	text := "jane@example.com 555-123-4567 linkedin.com/in/janedoe"
	got := FormattingSuggestions(text, nil)

	for _, absent := range []string{
		"Include a LinkedIn profile link.",
		"Add an email address.",
		"Include a phone number for contact.",
	} {
		if slices.Contains(got, absent) {
			t.Errorf("suggestions %v should not contain %q", got, absent)
		}
	}
}

func TestFormattingSuggestionsMissingSections(t *testing.T) {
	text := "Experience\nDeveloped and managed stuff"
	got := FormattingSuggestions(text, Segment(text))

	want := "Add these essential sections: Summary, Education, Skills."
	if !slices.Contains(got, want) {
		t.Errorf("suggestions %v missing %q", got, want)
	}
}

func TestFormattingSuggestionsLength(t *testing.T) {
	short := "too short"
	got := FormattingSuggestions(short, nil)
	if !slices.Contains(got, "Resume is too short. Aim for at least 400–600 words.") {
		t.Errorf("short resume suggestions %v missing length warning", got)
	}

	long := strings.Repeat("word ", 1100)
	got = FormattingSuggestions(long, nil)
	if !slices.Contains(got, "Resume may be too long. Consider condensing to 1-2 pages.") {
		t.Errorf("long resume suggestions %v missing length warning", got)
	}
}

func TestFormattingSuggestionsPronouns(t *testing.T) {
	got := FormattingSuggestions("I managed my team", nil)
	if !slices.Contains(got, "Avoid personal pronouns (I, my, me) - use action verbs instead.") {
		t.Errorf("suggestions %v missing pronoun warning", got)
	}

	got = FormattingSuggestions("Managed the team", nil)
	if slices.Contains(got, "Avoid personal pronouns (I, my, me) - use action verbs instead.") {
		t.Errorf("suggestions %v should not warn about pronouns", got)
	}
}

func TestFormattingSuggestionsTense(t *testing.T) {
	text := "Experience\nmanage develop create things, designed one thing"
	got := FormattingSuggestions(text, Segment(text))
	if !slices.Contains(got, "Use past tense consistently for previous positions.") {
		t.Errorf("suggestions %v missing tense warning", got)
	}
}

func TestFormattingSuggestionsExperienceDates(t *testing.T) {
	text := "Experience\nDeveloper at Acme for ages"
	got := FormattingSuggestions(text, Segment(text))
	if !slices.Contains(got, "Include dates (month/year) for each position in your experience section.") {
		t.Errorf("suggestions %v missing dates warning", got)
	}
}

func TestFormattingSuggestionsSectionOrder(t *testing.T) {
	// Education before skills breaks the conventional order.
	text := strings.Join([]string{
		"Summary", "An engineer with managed background",
		"Experience", "Built 3 things around 2020 - 2021",
		"Education", "BSc, GPA: 3.5",
		"Skills", "python",
	}, "\n")
	got := FormattingSuggestions(text, Segment(text))

	want := "Consider a standard section order: Summary, Experience, Skills, Education."
	if !slices.Contains(got, want) {
		t.Errorf("suggestions %v missing ordering advice", got)
	}
}

func TestHasLinkedIn(t *testing.T) {
	if !HasLinkedIn("see linkedin.com/in/janedoe") {
		t.Error("profile URL should be detected")
	}
	if HasLinkedIn("no social links") {
		t.Error("false positive")
	}
}

func TestHasPortfolio(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"github.com/janedoe", true},
		{"Portfolio: https://janedoe.dev/work", true},
		{"website: https://example.org", true},
		{"nothing to see", false},
	}
	for _, tt := range tests {
		if got := HasPortfolio(tt.text); got != tt.want {
			t.Errorf("HasPortfolio(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
