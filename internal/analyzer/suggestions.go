package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	suggestionPhoneRE   = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	quantifiableRE      = regexp.MustCompile(`\b\d+%|\$\d+|\d+ (users|clients|customers|projects)\b`)
	personalPronounRE   = regexp.MustCompile(`(?i)\b(I|my|me)\b`)
	anyYearRE           = regexp.MustCompile(`\b(20\d{2}|19\d{2})\b`)
	academicHonorsRE    = regexp.MustCompile(`\b(gpa|grade|cum laude|honors)\b`)
	linkedInREs         = compileAll(`linkedin\.com/in/[a-zA-Z0-9_%-]+`, `linkedin:?\s*[a-zA-Z0-9_%-]+`, `linkedin\.com/[a-zA-Z0-9_%-]+`)
	portfolioREs        = compileAll(`(?i)github\.com/[a-zA-Z0-9_%-]+`, `(?i)github:?\s*[a-zA-Z0-9_%-]+`, `(?i)portfolio:?\s*https?://[a-zA-Z0-9_%./-]+`, `(?i)portfolio:?\s*[a-zA-Z0-9_%./-]+\.(com|io|net|org)`, `(?i)(website|site|blog):?\s*https?://[a-zA-Z0-9_%./-]+`)
	coreSections        = []string{"summary", "experience", "education", "skills"}
	idealSectionOrder   = []string{"summary", "experience", "skills", "education"}
)

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

// HasLinkedIn reports whether the text carries a LinkedIn profile reference.
func HasLinkedIn(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range linkedInREs {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// HasPortfolio reports whether the text links a portfolio, GitHub profile,
// or personal website.
func HasPortfolio(text string) bool {
	for _, re := range portfolioREs {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// FormattingSuggestions runs the formatting checklist and returns one
// suggestion string per failed check, in checklist order.
func FormattingSuggestions(text string, sections *Sections) []string {
	suggestions := []string{}
	lower := strings.ToLower(text)

	if !HasLinkedIn(text) {
		suggestions = append(suggestions, "Include a LinkedIn profile link.")
	}
	if !emailRE.MatchString(text) {
		suggestions = append(suggestions, "Add an email address.")
	}
	if !suggestionPhoneRE.MatchString(text) {
		suggestions = append(suggestions, "Include a phone number for contact.")
	}

	if sections != nil {
		var missing []string
		for _, name := range coreSections {
			if !sections.Has(name) && !sections.Has(name+"s") {
				missing = append(missing, strings.ToUpper(name[:1])+name[1:])
			}
		}
		if len(missing) > 0 {
			suggestions = append(suggestions, fmt.Sprintf("Add these essential sections: %s.", strings.Join(missing, ", ")))
		}
	}

	wordCount := len(strings.Fields(text))
	if wordCount < 300 {
		suggestions = append(suggestions, "Resume is too short. Aim for at least 400–600 words.")
	} else if wordCount > 1000 {
		suggestions = append(suggestions, "Resume may be too long. Consider condensing to 1-2 pages.")
	}

	if strings.Count(text, "•") < 5 && strings.Count(text, "- ") < 5 {
		suggestions = append(suggestions, "Use bullet points to list experience and achievements.")
	}

	hasVerb := false
	for _, verb := range suggestionActionVerbs {
		if strings.Contains(lower, verb) {
			hasVerb = true
			break
		}
	}
	if !hasVerb {
		suggestions = append(suggestions, "Use more action verbs to describe your experience.")
	}

	if !quantifiableRE.MatchString(text) {
		suggestions = append(suggestions, "Include quantifiable achievements (e.g., 'Increased sales by 20%', 'Managed a team of 15 developers').")
	}

	if personalPronounRE.MatchString(text) {
		suggestions = append(suggestions, "Avoid personal pronouns (I, my, me) - use action verbs instead.")
	}

	pastCount := countWordMatches(lower, pastTenseMarkers)
	presentCount := countWordMatches(lower, presentTenseMarkers)
	if pastCount > 0 && presentCount > 0 && sections.Has("experience") && pastCount < presentCount {
		suggestions = append(suggestions, "Use past tense consistently for previous positions.")
	}

	if expText, ok := sections.Get("experience"); ok && !anyYearRE.MatchString(expText) {
		suggestions = append(suggestions, "Include dates (month/year) for each position in your experience section.")
	}

	if eduText, ok := sections.Get("education"); ok && !academicHonorsRE.MatchString(strings.ToLower(eduText)) {
		suggestions = append(suggestions, "Consider adding GPA or academic honors if they strengthen your application.")
	}

	if headerText, ok := sections.Get("header"); ok && len(headerText) < 50 {
		suggestions = append(suggestions, "Ensure your contact information is prominently displayed at the top of the resume.")
	}

	if badSectionOrder(sections) {
		suggestions = append(suggestions, "Consider a standard section order: Summary, Experience, Skills, Education.")
	}

	return suggestions
}

var wordBoundaryREs = make(map[string]*regexp.Regexp)

func init() {
	for _, w := range append(append([]string{}, pastTenseMarkers...), presentTenseMarkers...) {
		wordBoundaryREs[w] = regexp.MustCompile(`\b` + w + `\b`)
	}
}

func countWordMatches(lower string, words []string) int {
	count := 0
	for _, w := range words {
		if wordBoundaryREs[w].MatchString(lower) {
			count++
		}
	}
	return count
}

// badSectionOrder reports whether all four standard sections exist but do
// not appear in the conventional Summary, Experience, Skills, Education
// order.
func badSectionOrder(sections *Sections) bool {
	if sections == nil {
		return false
	}
	positions := make(map[string]int)
	for i, name := range sections.Names() {
		positions[name] = i
	}
	for _, name := range idealSectionOrder {
		if _, ok := positions[name]; !ok {
			return false
		}
	}
	for i := 0; i < len(idealSectionOrder)-1; i++ {
		if positions[idealSectionOrder[i]] >= positions[idealSectionOrder[i+1]] {
			return true
		}
	}
	return false
}
