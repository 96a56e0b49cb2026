package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"alfredoptarigan/resume-screener/internal/extraction"
)

type fakeGemini struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGemini) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

func TestRecognizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		err      error
		want     string
		wantErr  bool
	}{
		{name: "markdown wrapped answer", response: "```json\n{\"name\": \"priya sharma\"}\n```", want: "Priya Sharma"},
		{name: "section header rejected", response: `{"name": "Curriculum Vitae"}`, want: extraction.NotFound},
		{name: "empty answer", response: `{"name": ""}`, want: extraction.NotFound},
		{name: "garbage answer", response: "I cannot tell", want: extraction.NotFound, wantErr: true},
		{name: "api failure", err: errors.New("quota exceeded"), want: extraction.NotFound, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gemini := &fakeGemini{response: tt.response, err: tt.err}
			recognizer := NewNameRecognizer(gemini, extraction.DefaultVocabulary(), 20, 1)

			got, err := recognizer.RecognizeName(context.Background(), "priya sharma, data analyst with a long summary that is cut")
			if (err != nil) != tt.wantErr {
				t.Fatalf("RecognizeName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("RecognizeName() = %q, want %q", got, tt.want)
			}

			if len(gemini.prompts) != 1 || !strings.Contains(gemini.prompts[0], "priya sharma, data a") || strings.Contains(gemini.prompts[0], "long summary") {
				t.Fatalf("prompt must carry only the first 20 characters: %v", gemini.prompts)
			}
		})
	}
}

func TestRecognizeNameSkipsEmptyText(t *testing.T) {
	t.Parallel()

	gemini := &fakeGemini{response: `{"name": "Someone Else"}`}
	got, err := NewNameRecognizer(gemini, extraction.DefaultVocabulary(), 0, 1).RecognizeName(context.Background(), "  \n ")
	if err != nil || got != extraction.NotFound {
		t.Fatalf("RecognizeName() = %q, %v", got, err)
	}
	if len(gemini.prompts) != 0 {
		t.Fatal("model must not be called for empty text")
	}
}
