// Package scoring turns extracted candidate fields into a numeric score and a
// decision label. Strategies are registered by name and bound to one job
// description per batch.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"alfredoptarigan/resume-screener/internal/extraction"
)

var (
	// ErrJobDescriptionRequired is returned by strategies that compare resumes
	// against a job description when none was supplied.
	ErrJobDescriptionRequired = errors.New("please enter a job description for semantic matching")
	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown scoring strategy")
)

// Subject is one document as seen by a scorer.
type Subject struct {
	Text   string
	Fields extraction.Fields
}

// Result is the outcome of scoring one subject.
type Result struct {
	Score    float64
	Decision string
}

// Scorer scores subjects against a job description fixed at bind time.
type Scorer interface {
	Score(ctx context.Context, subject Subject) (Result, error)
}

// Strategy is a named scoring method.
type Strategy interface {
	Name() string
	// Bind prepares a scorer for one batch. Expensive per-batch work, such as
	// embedding the job description, happens here once.
	Bind(ctx context.Context, jobDescription string) (Scorer, error)
}

// Thresholds maps a score to one of three decision labels.
type Thresholds struct {
	Upper float64
	Lower float64
	High  string
	Mid   string
	Low   string
}

// Decide returns High for scores at or above Upper, Mid for scores at or above
// Lower, and Low otherwise.
func (t Thresholds) Decide(score float64) string {
	switch {
	case score >= t.Upper:
		return t.High
	case score >= t.Lower:
		return t.Mid
	default:
		return t.Low
	}
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(strategy Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[normalizeName(strategy.Name())] = strategy
}

// Resolve returns a strategy by name, case-insensitively.
func (r *Registry) Resolve(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strategy, ok := r.strategies[normalizeName(name)]; ok {
		return strategy, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Names lists the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
