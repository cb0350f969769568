package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"resumelens/internal/types"
)

var (
	monthRangeRE = regexp.MustCompile(`(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* (\d{4})\s*[–-]\s*((jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]* (\d{4})|present|current)`)
	yearRangeRE  = regexp.MustCompile(`(\d{4})\s*[–-]\s*((\d{4})|present|current)`)
)

type yearRange struct {
	start, end int
}

// DetectGaps looks for multi-year holes between dated positions in the
// experience section. Ranges ending in "present" or "current" resolve to
// the current year. A difference of exactly one year between consecutive
// positions is flagged as a potential gap; more than one year is a gap.
func DetectGaps(sections *Sections, now time.Time) types.GapAnalysis {
	expText, ok := sections.Get("experience")
	if !ok {
		return types.GapAnalysis{HasGaps: false, Details: "No experience section found"}
	}
	lower := strings.ToLower(expText)
	currentYear := now.Year()

	var ranges []yearRange
	for _, m := range monthRangeRE.FindAllStringSubmatch(lower, -1) {
		start, _ := strconv.Atoi(m[2])
		end := currentYear
		if m[3] != "present" && m[3] != "current" {
			end, _ = strconv.Atoi(m[5])
		}
		ranges = append(ranges, yearRange{start, end})
	}
	for _, m := range yearRangeRE.FindAllStringSubmatch(lower, -1) {
		start, _ := strconv.Atoi(m[1])
		end := currentYear
		if m[2] != "present" && m[2] != "current" {
			end, _ = strconv.Atoi(m[3])
		}
		ranges = append(ranges, yearRange{start, end})
	}

	if len(ranges) == 0 {
		return types.GapAnalysis{HasGaps: false, Details: "No date ranges detected"}
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].start != ranges[j].start {
			return ranges[i].start < ranges[j].start
		}
		return ranges[i].end < ranges[j].end
	})

	var gaps []string
	for i := 0; i < len(ranges)-1; i++ {
		gap := ranges[i+1].start - ranges[i].end
		if gap > 1 {
			gaps = append(gaps, fmt.Sprintf("%d - %d", ranges[i].end, ranges[i+1].start))
		} else if gap == 1 {
			gaps = append(gaps, fmt.Sprintf("%d - %d (potential gap)", ranges[i].end, ranges[i+1].start))
		}
	}

	return types.GapAnalysis{HasGaps: len(gaps) > 0, Gaps: gaps}
}
