package analyzer

import (
	"math"
	"sort"
	"strings"
)

// GeneralistRole is returned when no skill maps to a known role.
const GeneralistRole = "Generalist"

// PredictRoles ranks candidate roles by summing the weights of the skills
// associated with each. Ties keep first-seen order, so output is stable for
// a given skill list.
func PredictRoles(skills []string) []string {
	scores := make(map[string]float64)
	var order []string

	for _, skill := range skills {
		rec, ok := skillTable[skill]
		if !ok {
			continue
		}
		for _, role := range rec.Roles {
			if _, seen := scores[role]; !seen {
				order = append(order, role)
			}
			scores[role] += rec.Weight
		}
	}

	if len(order) == 0 {
		return []string{GeneralistRole}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	return order
}

// MissingSkillsForRole returns the critical skills for a role that do not
// appear in the given skill list, sorted. Unknown roles have no critical
// skill set and yield an empty result.
func MissingSkillsForRole(role string, skills []string) []string {
	critical, ok := criticalSkills[role]
	if !ok {
		return []string{}
	}
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[s] = struct{}{}
	}
	missing := []string{}
	for s := range critical {
		if _, ok := have[s]; !ok {
			missing = append(missing, s)
		}
	}
	sort.Strings(missing)
	return missing
}

// SkillsForRole returns the sorted skills whose metadata lists the role.
func SkillsForRole(role string) []string {
	set, ok := roleSkills[role]
	if !ok {
		return nil
	}
	skills := make([]string, 0, len(set))
	for s := range set {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// JobMatchScore scores resume skills against a job posting. The target role
// is the critical-skills role whose name has the highest word-level Jaccard
// similarity to the job title; below 0.3 similarity the score defaults to a
// moderate 50. Otherwise the score is the matched fraction of the role's
// critical skills, plus up to 20 bonus points for resume skills that appear
// verbatim in the job description, capped at 100.
func JobMatchScore(skills []string, jobTitle, jobDescription string) int {
	if jobTitle == "" {
		return 0
	}

	jobWords := wordSet(strings.ToLower(jobTitle))

	var targetRole string
	var maxSimilarity float64
	for _, role := range criticalRoleNames() {
		roleWords := wordSet(strings.ToLower(role))
		if sim := jaccard(roleWords, jobWords); sim > maxSimilarity {
			maxSimilarity = sim
			targetRole = role
		}
	}

	if targetRole == "" || maxSimilarity < 0.3 {
		return 50
	}
	critical := criticalSkills[targetRole]

	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[s] = struct{}{}
	}
	matches := 0
	for s := range critical {
		if _, ok := have[s]; ok {
			matches++
		}
	}
	matchPct := float64(matches) / float64(len(critical)) * 100

	if jobDescription != "" {
		descLower := strings.ToLower(jobDescription)
		bonus := 0
		for s := range have {
			if strings.Contains(descLower, s) {
				bonus++
			}
		}
		matchPct = math.Min(100, matchPct+math.Min(20, float64(bonus*2)))
	}

	return int(math.Round(matchPct))
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// criticalRolesSorted holds role names in sorted order for deterministic
// target-role selection.
var criticalRolesSorted = func() []string {
	roles := make([]string, 0, len(criticalSkills))
	for role := range criticalSkills {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}()

func criticalRoleNames() []string { return criticalRolesSorted }

// KnownRoles returns every role label the skill vocabulary maps to, sorted.
func KnownRoles() []string {
	roles := make([]string, 0, len(roleSkills))
	for role := range roleSkills {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
