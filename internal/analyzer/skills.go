package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

// prioritizedSections are searched ahead of the full text so that skills
// named in dedicated sections are always picked up.
var prioritizedSections = []string{"skills", "experience", "projects", "technical skills"}

// discoveryPatterns find technology tokens outside the known vocabulary:
// JS-suffixed frameworks, dotted names, and hyphenated names.
var discoveryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Za-z]+[Jj][Ss]\b`),
	regexp.MustCompile(`\b[A-Za-z]+\.[A-Za-z]+\b`),
	regexp.MustCompile(`\b[A-Za-z]+(?:-[A-Za-z]+)+\b`),
}

// ExtractSkills finds skills in resume text. Known vocabulary skills are
// matched through spelling variants (spaces, dots, hyphens removed or
// swapped) and word-boundary search; unknown technology tokens are picked up
// by the discovery patterns. The result is deduplicated and ordered with
// vocabulary hits first.
func ExtractSkills(text string, sections *Sections) []string {
	lower := strings.ToLower(text)

	searchText := lower
	if sections != nil {
		var parts []string
		for _, name := range prioritizedSections {
			if t, ok := sections.Get(name); ok {
				parts = append(parts, strings.ToLower(t))
			}
		}
		if len(parts) > 0 {
			searchText = strings.Join(parts, "\n") + "\n" + lower
		}
	}

	var found []string
	seen := make(map[string]struct{})
	add := func(skill string) {
		if _, ok := seen[skill]; !ok {
			seen[skill] = struct{}{}
			found = append(found, skill)
		}
	}

	for _, skill := range vocabularySkills {
		if matchesVariant(searchText, skill) {
			add(skill)
			continue
		}
		if skillBoundaryRE[skill].MatchString(searchText) {
			add(skill)
		}
	}

	for _, p := range discoveryPatterns {
		for _, m := range p.FindAllString(searchText, -1) {
			token := strings.ToLower(m)
			if len(token) <= 2 {
				continue
			}
			if _, stop := stopwords[token]; stop {
				continue
			}
			add(token)
		}
	}

	return found
}

// matchesVariant checks the skill and its common spelling variants as plain
// substrings, so "nodejs" still matches "node.js".
func matchesVariant(searchText, skill string) bool {
	variants := []string{
		skill,
		strings.ReplaceAll(skill, " ", ""),
		strings.ReplaceAll(skill, ".", ""),
		strings.ReplaceAll(skill, "-", ""),
		strings.ReplaceAll(skill, " ", "-"),
		strings.ReplaceAll(skill, "-", " "),
	}
	for _, v := range variants {
		if strings.Contains(searchText, v) {
			return true
		}
	}
	return false
}

// CategorizeSkills groups extracted skills by domain. Categories are checked
// in a fixed order and each skill lands in the first category that contains
// it. Empty categories are omitted.
func CategorizeSkills(skills []string) map[string][]string {
	categorized := make(map[string][]string)
	for _, skill := range skills {
		for _, cat := range skillCategories {
			if _, ok := cat.Skills[skill]; ok {
				categorized[cat.Name] = append(categorized[cat.Name], skill)
				break
			}
		}
	}
	return categorized
}

// vocabularySkills holds the known skill identifiers in sorted order so
// extraction output is deterministic. skillBoundaryRE carries a precompiled
// word-boundary matcher per skill.
var (
	vocabularySkills []string
	skillBoundaryRE  = make(map[string]*regexp.Regexp)
)

func init() {
	for skill := range skillTable {
		vocabularySkills = append(vocabularySkills, skill)
		skillBoundaryRE[skill] = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	sort.Strings(vocabularySkills)
}
