package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/resume-screener/internal/extraction"
)

const (
	// SemanticStrategyName is the registry name of the embedding similarity strategy.
	SemanticStrategyName = "semantic"
	// DefaultResumeChars is how much of the cleaned resume text is embedded.
	DefaultResumeChars = 2500
)

// Embedder turns text into a dense vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// DefaultSemanticThresholds returns the Strong/Moderate/Low Match cut-offs.
func DefaultSemanticThresholds() Thresholds {
	return Thresholds{
		Upper: 75,
		Lower: 50,
		High:  "Strong Match",
		Mid:   "Moderate Match",
		Low:   "Low Match",
	}
}

type semanticStrategy struct {
	embedder    Embedder
	thresholds  Thresholds
	resumeChars int
}

// NewSemanticStrategy builds a strategy scoring resumes by cosine similarity
// to the job description. Only the first resumeChars characters of the
// cleaned resume are embedded, together with the extracted skills.
func NewSemanticStrategy(embedder Embedder, thresholds Thresholds, resumeChars int) Strategy {
	if resumeChars <= 0 {
		resumeChars = DefaultResumeChars
	}
	return &semanticStrategy{
		embedder:    embedder,
		thresholds:  thresholds,
		resumeChars: resumeChars,
	}
}

func (s *semanticStrategy) Name() string {
	return SemanticStrategyName
}

func (s *semanticStrategy) Bind(ctx context.Context, jobDescription string) (Scorer, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return nil, ErrJobDescriptionRequired
	}

	vector, err := s.embedder.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	return &semanticScorer{strategy: s, jobVector: vector}, nil
}

type semanticScorer struct {
	strategy  *semanticStrategy
	jobVector []float32
}

func (s *semanticScorer) Score(ctx context.Context, subject Subject) (Result, error) {
	text := strings.TrimSpace(extraction.Head(extraction.Clean(subject.Text), s.strategy.resumeChars) + " " + subject.Fields.SkillsDisplay())

	vector, err := s.strategy.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("failed to embed resume: %w", err)
	}

	score := SimilarityScore(s.jobVector, vector)
	return Result{Score: score, Decision: s.strategy.thresholds.Decide(score)}, nil
}

// SimilarityScore scales the cosine similarity of a and b to [0, 100], rounded
// to two decimals.
func SimilarityScore(a, b []float32) float64 {
	score := Cosine(a, b) * 100
	score = math.Max(0, math.Min(100, score))
	return math.Round(score*100) / 100
}

// Cosine returns the cosine similarity of a and b. Vectors of different length
// or with zero magnitude have similarity 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
