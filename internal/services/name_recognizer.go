package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"alfredoptarigan/resume-screener/internal/extraction"
)

// NameRecognizer finds a person name in free text.
type NameRecognizer interface {
	RecognizeName(ctx context.Context, text string) (string, error)
}

type nameRecognizer struct {
	gemini     GeminiService
	prompts    *PromptBuilder
	vocab      extraction.Vocabulary
	window     int
	maxRetries int
}

// NewNameRecognizer builds a recogniser that asks Gemini for the candidate
// name in the first window characters of a resume. Answers go through the
// same acceptance filter as heuristic candidates.
func NewNameRecognizer(gemini GeminiService, vocab extraction.Vocabulary, window, maxRetries int) NameRecognizer {
	if window <= 0 {
		window = 2500
	}
	return &nameRecognizer{
		gemini:     gemini,
		prompts:    NewPromptBuilder(),
		vocab:      vocab,
		window:     window,
		maxRetries: maxRetries,
	}
}

func (r *nameRecognizer) RecognizeName(ctx context.Context, text string) (string, error) {
	head := strings.TrimSpace(extraction.Head(text, r.window))
	if head == "" {
		return extraction.NotFound, nil
	}

	response, err := r.gemini.GenerateTextWithRetry(ctx, r.prompts.BuildNameRecognitionPrompt(head), 0, r.maxRetries)
	if err != nil {
		return extraction.NotFound, fmt.Errorf("failed to recognise name: %w", err)
	}

	var answer struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &answer); err != nil {
		return extraction.NotFound, fmt.Errorf("failed to parse name response: %w", err)
	}

	name, ok := extraction.AcceptName(answer.Name, r.vocab)
	if !ok {
		return extraction.NotFound, nil
	}
	return name, nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}
