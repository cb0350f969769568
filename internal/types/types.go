package types

// Document is the immutable input to an analysis: the extracted résumé text
// plus the optional name of the file it came from. The boundary layer fills
// FileName explicitly; the core never inspects the shape of its input.
type Document struct {
	Text     string `json:"text"`
	FileName string `json:"fileName,omitempty"`
}

// AnalyzeOptions carries the optional job-targeting inputs for an analysis.
type AnalyzeOptions struct {
	JobTitle       string `json:"jobTitle,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// ScoreBreakdown holds the independently bounded ATS score components.
type ScoreBreakdown struct {
	Formatting          int `json:"formatting"`
	ContentQuality      int `json:"contentQuality"`
	SkillsPresentation  int `json:"skillsPresentation"`
	KeywordOptimization int `json:"keywordOptimization"`
	ContactInfo         int `json:"contactInfo"`
}

// Sum returns the unweighted total of all components.
func (b ScoreBreakdown) Sum() int {
	return b.Formatting + b.ContentQuality + b.SkillsPresentation +
		b.KeywordOptimization + b.ContactInfo
}

// ATSCompatibility is the composite ATS result: the unweighted sum of the
// breakdown components, reported separately from the blended overall score.
type ATSCompatibility struct {
	Total     int            `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// EducationAssessment represents the education quality evaluation.
type EducationAssessment struct {
	Score        int      `json:"score"`
	Institutions []string `json:"institutions"`
	Degrees      []string `json:"degrees"`
}

// GapAnalysis reports chronological gaps between employment date ranges.
// Details carries the reason when no ranges could be analyzed.
type GapAnalysis struct {
	HasGaps bool     `json:"hasGaps"`
	Gaps    []string `json:"gaps,omitempty"`
	Details string   `json:"details,omitempty"`
}

// KeywordStat holds occurrence count and density (percent of total words)
// for one extracted skill.
type KeywordStat struct {
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// Report is the terminal aggregate of a résumé analysis. It is created once
// per analysis call and immutable once returned.
type Report struct {
	FileName               string                 `json:"fileName"`
	AnalysisDate           string                 `json:"analysisDate"`
	OverallScore           int                    `json:"overallScore"`
	ATSCompatibility       ATSCompatibility       `json:"atsCompatibility"`
	SkillsExtracted        []string               `json:"skillsExtracted"`
	CategorizedSkills      map[string][]string    `json:"categorizedSkills"`
	PredictedRoles         []string               `json:"predictedRoles"`
	PrimaryRole            string                 `json:"primaryRole"`
	ExperienceLevel        string                 `json:"experienceLevel"`
	EducationAssessment    EducationAssessment    `json:"educationAssessment"`
	MissingCriticalSkills  []string               `json:"missingCriticalSkills"`
	ImprovementSuggestions []string               `json:"improvementSuggestions"`
	KeywordDensity         map[string]KeywordStat `json:"keywordDensity"`
	HasLinkedIn            bool                   `json:"hasLinkedIn"`
	HasPortfolio           bool                   `json:"hasPortfolio"`
	GapAnalysis            GapAnalysis            `json:"gapAnalysis"`
	JobMatchScore          *int                   `json:"jobMatchScore,omitempty"`
	ActionItems            []string               `json:"actionItems"`
}
