package analyzer

import (
	"regexp"
	"strings"

	"resumelens/internal/types"
)

var (
	emailRE   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRE   = regexp.MustCompile(`\b(?:\+\d{1,3}[-\s]?)?\d{3}[-\s]?\d{3}[-\s]?\d{4}\b`)
	socialRE  = regexp.MustCompile(`(?i)(?:linkedin|github|twitter)\s*[a-zA-Z0-9_-]+`)
	metricsRE = regexp.MustCompile(`\b\d+%|\$\d+|\d+\s+(?:users|clients|team|people|developers|students)\b`)
)

// keySections weight the core resume sections for the formatting component.
var keySections = []struct {
	name  string
	score int
}{
	{"summary", 5},
	{"experience", 7},
	{"education", 5},
	{"skills", 8},
}

// ATSScore computes the applicant-tracking-system compatibility score from
// five components: contact info (max 10), formatting (max 30), content
// quality (max 25), skills presentation (max 20), and keyword optimization
// (max 20).
func ATSScore(text string, skills []string, sections *Sections) types.ATSCompatibility {
	var b types.ScoreBreakdown
	lower := strings.ToLower(text)

	if emailRE.MatchString(text) {
		b.ContactInfo += 3
	}
	if phoneRE.MatchString(text) {
		b.ContactInfo += 3
	}
	if socialRE.MatchString(text) {
		b.ContactInfo += 4
	}

	if sections != nil {
		for _, ks := range keySections {
			if sections.Has(ks.name) || sections.Has(ks.name+"s") {
				b.Formatting += ks.score
			}
		}
	}
	bulletCount := strings.Count(text, "•") + strings.Count(text, "- ") + strings.Count(text, "– ")
	if bulletCount > 10 {
		b.Formatting += 5
	} else if bulletCount > 5 {
		b.Formatting += 3
	}

	verbCount := 0
	for _, verb := range contentActionVerbs {
		if strings.Contains(lower, verb) {
			verbCount++
		}
	}
	b.ContentQuality = capInt(verbCount*2, 15)
	b.ContentQuality += capInt(len(metricsRE.FindAllString(lower, -1))*2, 10)

	if sections.Has("skills") || sections.Has("technical skills") {
		b.SkillsPresentation += 10
		if skillsText, ok := sections.Get("skills"); ok {
			for _, line := range strings.Split(skillsText, "\n") {
				if strings.Contains(line, ":") {
					b.SkillsPresentation += 10
					break
				}
			}
		}
	} else {
		inText := 0
		for _, skill := range skills {
			if strings.Contains(lower, skill) {
				inText++
			}
		}
		b.SkillsPresentation += capInt(inText, 10)
	}

	for _, skill := range skills {
		if re, ok := skillBoundaryRE[skill]; ok {
			if re.MatchString(lower) {
				b.KeywordOptimization++
			}
		} else if regexp.MustCompile(`\b`+regexp.QuoteMeta(skill)+`\b`).MatchString(lower) {
			b.KeywordOptimization++
		}
	}
	b.KeywordOptimization = capInt(b.KeywordOptimization, 20)

	return types.ATSCompatibility{Total: b.Sum(), Breakdown: b}
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}
