package analyzer

import "testing"

func TestDetectExperienceLevel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "no signals",
			text: "Recent graduate eager to learn",
			want: "Entry-level",
		},
		{
			name: "stated years junior",
			text: "Developer with 3 years of experience",
			want: "Junior",
		},
		{
			name: "stated years mid",
			text: "Engineer with 7 years of experience in backend work",
			want: "Mid-level",
		},
		{
			name: "stated years senior",
			text: "Architect with 12 years of experience",
			want: "Senior",
		},
		{
			name: "years with plus sign",
			text: "5+ years experience shipping services",
			want: "Mid-level",
		},
		{
			name: "alternate phrasing",
			text: "worked for 11 years across three companies",
			want: "Senior",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectExperienceLevel(tt.text, nil)
			if got != tt.want {
				t.Errorf("DetectExperienceLevel(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectExperienceLevelCountsJobs(t *testing.T) {
	text := "Experience\n" +
		"Developer, Acme, 2018 - 2020\n" +
		"Developer, Beta, 2020 - 2022\n" +
		"Developer, Gamma, 2022 - present\n"

	got := DetectExperienceLevel(text, Segment(text))
	if got != "Mid-level" {
		t.Errorf("three dated positions = %q, want Mid-level", got)
	}
}

func TestDetectExperienceLevelPrefersExperienceSection(t *testing.T) {
	// The years figure outside the experience section must not count once a
	// dedicated section exists.
	text := "Summary\n10 years of experience mentoring\nExperience\nDeveloper, Acme, 2023 - present\n"

	got := DetectExperienceLevel(text, Segment(text))
	if got != "Junior" {
		t.Errorf("got %q, want Junior from the single dated entry", got)
	}
}
