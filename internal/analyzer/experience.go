package analyzer

import (
	"regexp"
	"strconv"
	"strings"
)

var yearsOfExperienceREs = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`experience\s+(?:of\s+)?(\d+)\+?\s*years?`),
	regexp.MustCompile(`worked\s+(?:for\s+)?(\d+)\+?\s*years?`),
}

var employmentDateREs = []*regexp.Regexp{
	regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* \d{4}\s*[–-]\s*((jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* \d{4}|present|current)`),
	regexp.MustCompile(`\b\d{4}\s*[–-]\s*(\d{4}|present|current)`),
	regexp.MustCompile(`\b\d{2}/\d{4}\s*[–-]\s*(\d{2}/\d{4}|present|current)`),
}

// DetectExperienceLevel classifies seniority from two signals: the largest
// explicitly stated years-of-experience figure and the number of dated
// employment entries in the experience section. Years are read from the
// experience section when present, otherwise from the full text; job entries
// only count when an experience section exists.
func DetectExperienceLevel(text string, sections *Sections) string {
	expText := text
	if t, ok := sections.Get("experience"); ok {
		expText = t
	}
	expLower := strings.ToLower(expText)

	maxYears := 0
	for _, re := range yearsOfExperienceREs {
		for _, m := range re.FindAllStringSubmatch(expLower, -1) {
			if years, err := strconv.Atoi(m[1]); err == nil && years > maxYears {
				maxYears = years
			}
		}
	}

	jobCount := 0
	if t, ok := sections.Get("experience"); ok {
		lower := strings.ToLower(t)
		for _, re := range employmentDateREs {
			jobCount += len(re.FindAllString(lower, -1))
		}
	}

	switch {
	case maxYears > 10 || jobCount >= 5:
		return "Senior"
	case maxYears >= 5 || jobCount >= 3:
		return "Mid-level"
	case maxYears >= 2 || jobCount >= 1:
		return "Junior"
	default:
		return "Entry-level"
	}
}
