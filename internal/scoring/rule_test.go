package scoring

import (
	"context"
	"testing"
	"testing/quick"

	"alfredoptarigan/resume-screener/internal/extraction"
)

func TestRuleScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields extraction.Fields
		want   float64
	}{
		{
			name: "sample resume",
			fields: extraction.Fields{
				Skills:          []string{"python", "machine learning", "deep learning", "sql", "react", "pandas", "tableau"},
				ExperienceYears: 5,
				Education:       "B.TECH",
				Projects:        []string{"Developed a resume screening tool in Python"},
				Certifications:  []string{"AWS Certified Solutions Architect"},
			},
			want: 25,
		},
		{
			name:   "nothing found",
			fields: extraction.Fields{Education: extraction.NotFound},
			want:   0,
		},
		{
			name:   "junior with master degree",
			fields: extraction.Fields{Skills: []string{"sql"}, ExperienceYears: 1, Education: "M.TECH"},
			want:   2 + 3 + 3,
		},
		{
			name:   "phd ranks as master",
			fields: extraction.Fields{ExperienceYears: 3, Education: "PHD"},
			want:   5 + 3,
		},
		{
			name:   "bachelor",
			fields: extraction.Fields{Education: "BSC"},
			want:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RuleScore(tt.fields); got != tt.want {
				t.Fatalf("RuleScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleScoreMonotonicInSkills(t *testing.T) {
	t.Parallel()

	property := func(fewer, more uint8, years uint8, education bool, projects, certs bool) bool {
		if fewer > more {
			fewer, more = more, fewer
		}

		build := func(n uint8) extraction.Fields {
			fields := extraction.Fields{
				Skills:          make([]string, int(n)%32),
				ExperienceYears: int(years % 15),
				Education:       extraction.NotFound,
			}
			if education {
				fields.Education = "B.TECH"
			}
			if projects {
				fields.Projects = []string{"Built a thing"}
			}
			if certs {
				fields.Certifications = []string{"Certified thing holder"}
			}
			return fields
		}

		// compare counts after the modulo so "more" really has more skills
		a, b := build(fewer), build(more)
		if len(a.Skills) > len(b.Skills) {
			a, b = b, a
		}
		return RuleScore(a) <= RuleScore(b)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestThresholdsDecide(t *testing.T) {
	t.Parallel()

	rule := DefaultRuleThresholds()
	semantic := DefaultSemanticThresholds()

	tests := []struct {
		thresholds Thresholds
		score      float64
		want       string
	}{
		{thresholds: rule, score: 25, want: "Selected"},
		{thresholds: rule, score: 12, want: "Selected"},
		{thresholds: rule, score: 11, want: "Consider"},
		{thresholds: rule, score: 7, want: "Consider"},
		{thresholds: rule, score: 6, want: "Rejected"},
		{thresholds: semantic, score: 75, want: "Strong Match"},
		{thresholds: semantic, score: 74.99, want: "Moderate Match"},
		{thresholds: semantic, score: 50, want: "Moderate Match"},
		{thresholds: semantic, score: 0, want: "Low Match"},
	}

	for _, tt := range tests {
		if got := tt.thresholds.Decide(tt.score); got != tt.want {
			t.Fatalf("Decide(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestRuleStrategyIgnoresJobDescription(t *testing.T) {
	t.Parallel()

	strategy := NewRuleStrategy(DefaultRuleThresholds())
	scorer, err := strategy.Bind(context.Background(), "")
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	result, err := scorer.Score(context.Background(), Subject{Fields: extraction.Fields{Skills: []string{"a", "b", "c", "d"}, ExperienceYears: 4}})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if result.Score != 13 || result.Decision != "Selected" {
		t.Fatalf("unexpected result: %+v", result)
	}
}
