// Package analyzer implements the résumé analysis pipeline: section
// segmentation, skill extraction, role inference, scoring heuristics, and
// report synthesis. All functions are pure over their inputs; the Engine
// injects the only two effects (clock and optional role classifier) so
// results are reproducible in tests.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// RoleClassifier predicts a role label from resume feature text. The Engine
// treats it as advisory: a classifier failure never fails the analysis.
type RoleClassifier interface {
	Predict(ctx context.Context, features string) (string, error)
}

// Engine runs resume analyses. The zero value is not usable; construct with
// New.
type Engine struct {
	clock      func() time.Time
	classifier RoleClassifier
	logger     *errors.Logger
}

// Config carries optional Engine dependencies. A nil Clock defaults to
// time.Now; a nil Classifier disables model-assisted role prediction.
type Config struct {
	Clock      func() time.Time
	Classifier RoleClassifier
	Logger     *errors.Logger
}

// New constructs an analysis Engine.
func New(cfg Config) *Engine {
	e := &Engine{
		clock:      cfg.Clock,
		classifier: cfg.Classifier,
		logger:     cfg.Logger,
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.logger == nil {
		e.logger = errors.NewLogger(slog.LevelInfo)
	}
	return e
}

// scoreWeights blend the component scores into the overall score.
const (
	atsWeight        = 0.4
	educationWeight  = 0.2
	skillsWeight     = 0.3
	experienceWeight = 0.1
)

// Analyze produces a full report for one resume. It fails only when the
// document text is blank; every heuristic below that is total. An
// unexpected fault inside the pipeline is recovered and reported as an
// internal error rather than crashing the caller.
func (e *Engine) Analyze(ctx context.Context, doc types.Document, opts types.AnalyzeOptions) (report types.Report, err error) {
	if strings.TrimSpace(doc.Text) == "" {
		return types.Report{}, errors.NewExtractionError(errors.ErrCodeEmptyDocument, "Could not extract text from resume", nil)
	}

	defer func() {
		if r := recover(); r != nil {
			report = types.Report{}
			err = errors.NewInternalError(errors.ErrCodeAnalysisFailed, fmt.Sprintf("Analysis failed: %v", r), nil)
		}
	}()

	sections := Segment(doc.Text)
	skills := ExtractSkills(doc.Text, sections)

	roles := PredictRoles(skills)
	primary := roles[0]

	if e.classifier != nil {
		roles, primary = e.classify(ctx, doc.Text, skills, roles, primary)
	}

	eduAssessment := AssessEducation(doc.Text, sections)
	atsScore := ATSScore(doc.Text, skills, sections)
	experienceLevel := DetectExperienceLevel(doc.Text, sections)
	suggestions := FormattingSuggestions(doc.Text, sections)

	report = types.Report{
		FileName:               doc.FileName,
		AnalysisDate:           e.clock().Format("2006-01-02 15:04:05"),
		OverallScore:           overallScore(atsScore.Total, eduAssessment.Score, len(skills), experienceLevel),
		ATSCompatibility:       atsScore,
		SkillsExtracted:        skills,
		CategorizedSkills:      CategorizeSkills(skills),
		PredictedRoles:         roles,
		PrimaryRole:            primary,
		ExperienceLevel:        experienceLevel,
		EducationAssessment:    eduAssessment,
		MissingCriticalSkills:  MissingSkillsForRole(primary, skills),
		ImprovementSuggestions: suggestions,
		KeywordDensity:         KeywordDensity(doc.Text, skills),
		HasLinkedIn:            HasLinkedIn(doc.Text),
		HasPortfolio:           HasPortfolio(doc.Text),
		GapAnalysis:            DetectGaps(sections, e.clock()),
	}

	if opts.JobTitle != "" {
		score := JobMatchScore(skills, opts.JobTitle, opts.JobDescription)
		report.JobMatchScore = &score
	}

	report.ActionItems = actionItems(report)
	return report, nil
}

// classify asks the external classifier for a role label. A non-empty label
// becomes the primary role and is prepended to the role ranking when the
// rules missed it; errors are logged and the rule-based result stands.
func (e *Engine) classify(ctx context.Context, text string, skills, roles []string, primary string) ([]string, string) {
	features := strings.Join(skills, " ")
	if features == "" {
		features = text
	}
	label, err := e.classifier.Predict(ctx, features)
	if err != nil {
		e.logger.Warn("role classifier unavailable, using rule-based prediction", "error", err)
		return roles, primary
	}
	if label == "" {
		return roles, primary
	}
	for _, r := range roles {
		if r == label {
			return roles, label
		}
	}
	return append([]string{label}, roles...), label
}

// overallScore blends the component scores: 40% ATS, 20% education, 30%
// skill breadth (5 points per skill, capped at 100), 10% experience level.
func overallScore(atsTotal, eduScore, skillCount int, experienceLevel string) int {
	skillsScore := skillCount * 5
	if skillsScore > 100 {
		skillsScore = 100
	}
	expScore, ok := experienceLevelScores[experienceLevel]
	if !ok {
		expScore = 60
	}
	weighted := float64(atsTotal)*atsWeight +
		float64(eduScore)*educationWeight +
		float64(skillsScore)*skillsWeight +
		float64(expScore)*experienceWeight
	return int(math.Round(weighted))
}

// KeywordDensity counts skill occurrences and their share of total words.
// Multi-word skills are counted as substrings; single words must match a
// whole token. Skills with zero occurrences are omitted.
func KeywordDensity(text string, skills []string) map[string]types.KeywordStat {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)
	total := len(words)
	if total == 0 {
		return map[string]types.KeywordStat{}
	}

	stats := make(map[string]types.KeywordStat)
	for _, skill := range skills {
		var count int
		if strings.Contains(skill, " ") {
			count = strings.Count(lower, skill)
		} else {
			for _, w := range words {
				if w == skill {
					count++
				}
			}
		}
		if count > 0 {
			density := float64(count) / float64(total) * 100
			stats[skill] = types.KeywordStat{
				Count:   count,
				Density: math.Round(density*100) / 100,
			}
		}
	}
	return stats
}

// actionItems synthesizes a prioritized to-do list from a finished report:
// ATS component weaknesses, missing critical skills, low keyword density,
// thin education detail, absent portfolio links, then the top formatting
// suggestions.
func actionItems(report types.Report) []string {
	actions := []string{}

	if report.ATSCompatibility.Total < 70 {
		b := report.ATSCompatibility.Breakdown
		if b.Formatting < 15 {
			actions = append(actions, "Improve resume formatting with clear section headers and consistent spacing")
		}
		if b.ContentQuality < 15 {
			actions = append(actions, "Add more quantifiable achievements and action verbs to your experience")
		}
		if b.SkillsPresentation < 10 {
			actions = append(actions, "Create a dedicated skills section with categories")
		}
	}

	if len(report.MissingCriticalSkills) > 0 {
		top := report.MissingCriticalSkills
		if len(top) > 3 {
			top = top[:3]
		}
		actions = append(actions, fmt.Sprintf("Add these critical skills to your resume if applicable: %s", strings.Join(top, ", ")))
	}

	lowDensity := true
	for _, stat := range report.KeywordDensity {
		if stat.Density > 0.5 {
			lowDensity = false
			break
		}
	}
	if lowDensity {
		actions = append(actions, "Increase keyword density by mentioning your core skills more frequently")
	}

	if report.EducationAssessment.Score < 10 {
		actions = append(actions, "Enhance your education section with more details about degrees and achievements")
	}

	if !report.HasPortfolio {
		actions = append(actions, "Add links to your portfolio, GitHub, or personal website")
	}

	limit := 3
	if len(report.ImprovementSuggestions) < limit {
		limit = len(report.ImprovementSuggestions)
	}
	actions = append(actions, report.ImprovementSuggestions[:limit]...)

	return actions
}
