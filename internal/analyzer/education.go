package analyzer

import (
	"regexp"
	"strings"

	"resumelens/internal/types"
)

// degreePatterns map a canonical degree token to the pattern that detects
// it. Checked in slice order so degrees list from highest to lowest.
var degreePatterns = []struct {
	degree  string
	pattern *regexp.Regexp
}{
	{"phd", regexp.MustCompile(`\b(?:ph\.?d|doctorate|doctor of philosophy)\b`)},
	{"masters", regexp.MustCompile(`\bm\.?(?:sc|tech|eng|s|a|b\.?a|arch|phil|fa|com)\b|master of|masters`)},
	{"bachelors", regexp.MustCompile(`\bb\.?(?:tech|sc|a|arch|des|com)\b|bachelor of|bachelors`)},
	{"diploma", regexp.MustCompile(`\bdiploma\b`)},
}

var (
	institutionHintRE = regexp.MustCompile(`(?i)college|university|institute|school`)
	institutionRE     = regexp.MustCompile(`(?i)([A-Z][A-Za-z\s]+(?:College|University|Institute|School)[A-Za-z\s]*)`)
	gpaRE             = regexp.MustCompile(`(?i)(?:CGPA|GPA):\s*(\d+\.\d+)`)
	percentageRE      = regexp.MustCompile(`(?i)percentage:\s*(\d+(?:\.\d+)?)`)
	gradYearRE        = regexp.MustCompile(`(20\d{2})(?:\s*[-–]\s*(20\d{2}|present))?`)
)

// AssessEducation scores the education section on a 0-25 scale. The highest
// degree found sets the base (level times 5, not summed across degrees);
// named institutions, a GPA, a percentage, and graduation years each add 5.
func AssessEducation(text string, sections *Sections) types.EducationAssessment {
	eduText := text
	if t, ok := sections.Get("education"); ok {
		eduText = t
	}
	eduLower := strings.ToLower(eduText)

	score := 0
	degrees := []string{}
	for _, dp := range degreePatterns {
		if dp.pattern.MatchString(eduLower) {
			if level := degreeLevels[dp.degree] * 5; level > score {
				score = level
			}
			degrees = append(degrees, dp.degree)
		}
	}

	institutions := []string{}
	if institutionHintRE.MatchString(eduText) {
		for _, m := range institutionRE.FindAllStringSubmatch(eduText, -1) {
			institutions = append(institutions, m[1])
		}
		if len(institutions) > 0 {
			score += 5
		}
	}

	if gpaRE.MatchString(eduText) {
		score += 5
	}
	if percentageRE.MatchString(eduText) {
		score += 5
	}
	if gradYearRE.MatchString(eduText) {
		score += 5
	}

	if score > 25 {
		score = 25
	}
	return types.EducationAssessment{
		Score:        score,
		Institutions: institutions,
		Degrees:      degrees,
	}
}
