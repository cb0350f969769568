package analyzer

import (
	"regexp"
	"strings"
)

// Sections is an ordered map of canonical section names to section text.
// Order follows first appearance in the document, which matters for the
// section-ordering formatting check.
type Sections struct {
	order []string
	texts map[string][]string
}

// headerPattern pairs a canonical section name with the pattern that marks
// its header line. Patterns run against the trimmed, lowercased line, and a
// header line must be shorter than 40 characters.
type headerPattern struct {
	name    string
	pattern *regexp.Regexp
}

var headerPatterns = []headerPattern{
	{"summary", regexp.MustCompile(`^(?:professional\s+)?summary|profile|objective|about\s+me`)},
	{"experience", regexp.MustCompile(`^(?:work\s+)?experience|employment|work\s+history|career`)},
	{"education", regexp.MustCompile(`^education|academic|qualification`)},
	{"skills", regexp.MustCompile(`^(?:technical\s+)?skills|technologies|expertise|competencies`)},
	{"projects", regexp.MustCompile(`^projects|personal\s+projects|portfolio|works`)},
	{"certifications", regexp.MustCompile(`^certifications|certificates|qualifications`)},
	{"contact", regexp.MustCompile(`^contact|personal\s+details|contact\s+information`)},
}

const maxHeaderLen = 40

// Segment splits resume text into named sections. Lines before the first
// recognized header accumulate under "header". A bullet line whose preceding
// line is a short non-bullet line matching a known section keyword also
// starts a section, with the bullet content as its first line.
func Segment(text string) *Sections {
	lines := strings.Split(text, "\n")
	s := &Sections{texts: make(map[string][]string)}
	current := "header"

	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))

		matched := false
		for _, hp := range headerPatterns {
			if len(lower) < maxHeaderLen && hp.pattern.MatchString(lower) {
				current = hp.name
				s.reset(current)
				matched = true
				break
			}
		}

		if !matched && (strings.HasPrefix(lower, "•") || strings.HasPrefix(lower, "-")) {
			if name, ok := bulletHeader(lines, i); ok {
				current = name
				s.reset(current)
				s.texts[current] = append(s.texts[current], strings.TrimSpace(line))
				matched = true
			}
		}

		if !matched {
			if _, ok := s.texts[current]; !ok {
				s.order = append(s.order, current)
			}
			s.texts[current] = append(s.texts[current], line)
		}
	}
	return s
}

// bulletHeader checks whether the line preceding a bullet at index i is a
// short standalone section header, and returns the matched section name.
func bulletHeader(lines []string, i int) (string, bool) {
	if i == 0 {
		return "", false
	}
	prev := strings.TrimSpace(lines[i-1])
	if prev == "" || strings.HasPrefix(prev, "•") || strings.HasPrefix(prev, "-") {
		return "", false
	}
	prevLower := strings.ToLower(prev)
	if len(prevLower) >= 30 {
		return "", false
	}
	for _, name := range sectionKeywords {
		if strings.Contains(prevLower, name) {
			return name, true
		}
	}
	return "", false
}

func (s *Sections) reset(name string) {
	if _, ok := s.texts[name]; !ok {
		s.order = append(s.order, name)
	}
	s.texts[name] = []string{}
}

// Has reports whether a section with the given name was detected.
func (s *Sections) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.texts[name]
	return ok
}

// Get returns the joined text of the named section.
func (s *Sections) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	lines, ok := s.texts[name]
	if !ok {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// Names returns section names in order of first appearance.
func (s *Sections) Names() []string {
	if s == nil {
		return nil
	}
	return s.order
}
