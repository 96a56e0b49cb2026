package scoring

import (
	"context"
	"strings"

	"alfredoptarigan/resume-screener/internal/extraction"
)

// RuleStrategyName is the registry name of the keyword rule strategy.
const RuleStrategyName = "rule"

const (
	pointsPerSkill     = 2
	seniorExperience   = 3
	seniorPoints       = 5
	juniorExperience   = 1
	juniorPoints       = 3
	masterPoints       = 3
	bachelorPoints     = 2
	projectsPoints     = 2
	certificatesPoints = 2
)

// DefaultRuleThresholds returns the Selected/Consider/Rejected cut-offs.
func DefaultRuleThresholds() Thresholds {
	return Thresholds{
		Upper: 12,
		Lower: 7,
		High:  "Selected",
		Mid:   "Consider",
		Low:   "Rejected",
	}
}

// RuleScore adds up points for skills, experience tier, education level and
// the presence of projects and certifications.
func RuleScore(fields extraction.Fields) float64 {
	score := pointsPerSkill * len(fields.Skills)

	switch {
	case fields.ExperienceYears >= seniorExperience:
		score += seniorPoints
	case fields.ExperienceYears >= juniorExperience:
		score += juniorPoints
	}

	score += educationPoints(fields.Education)

	if len(fields.Projects) > 0 {
		score += projectsPoints
	}
	if len(fields.Certifications) > 0 {
		score += certificatesPoints
	}

	return float64(score)
}

// educationPoints reads the degree label: an "M" marks a master-level degree,
// a "B" a bachelor-level one. PhD ranks with master degrees.
func educationPoints(label string) int {
	if label == "" || label == extraction.NotFound {
		return 0
	}

	upper := strings.ToUpper(label)
	switch {
	case upper == "PHD" || strings.Contains(upper, "M"):
		return masterPoints
	case strings.Contains(upper, "B"):
		return bachelorPoints
	default:
		return 0
	}
}

type ruleStrategy struct {
	thresholds Thresholds
}

// NewRuleStrategy builds the keyword rule strategy. It ignores the job description.
func NewRuleStrategy(thresholds Thresholds) Strategy {
	return &ruleStrategy{thresholds: thresholds}
}

func (s *ruleStrategy) Name() string {
	return RuleStrategyName
}

func (s *ruleStrategy) Bind(_ context.Context, _ string) (Scorer, error) {
	return s, nil
}

func (s *ruleStrategy) Score(_ context.Context, subject Subject) (Result, error) {
	score := RuleScore(subject.Fields)
	return Result{Score: score, Decision: s.thresholds.Decide(score)}, nil
}
