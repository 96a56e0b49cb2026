package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"google.golang.org/genai"
)

type fakeModels struct {
	mu          sync.Mutex
	embedErrs   []error
	embedCalls  int
	embedConfig *genai.EmbedContentConfig
	text        string
	genErr      error
	genCalls    int
}

func (f *fakeModels) EmbedContent(_ context.Context, _ string, _ []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.embedCalls++
	f.embedConfig = config
	if f.embedCalls <= len(f.embedErrs) && f.embedErrs[f.embedCalls-1] != nil {
		return nil, f.embedErrs[f.embedCalls-1]
	}
	return &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.1, 0.2, 0.3}}},
	}, nil
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.genCalls++
	if f.genErr != nil {
		return nil, f.genErr
	}
	if f.text == "" {
		return &genai.GenerateContentResponse{}, nil
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.text, genai.RoleModel)}},
	}, nil
}

func testGemini(models *fakeModels) *geminiService {
	return newGeminiService(models, GeminiOptions{MaxRetries: 3, InitialDelay: time.Millisecond}, nil)
}

func TestGenerateEmbeddingRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	models := &fakeModels{embedErrs: []error{
		genai.APIError{Code: 503, Status: "UNAVAILABLE"},
		errors.New("connection reset by peer"),
	}}

	values, err := testGemini(models).GenerateEmbedding(context.Background(), "golang engineer")
	if err != nil {
		t.Fatalf("GenerateEmbedding() error = %v", err)
	}
	if len(values) != 3 || models.embedCalls != 3 {
		t.Fatalf("expected success on third attempt, got %d values after %d calls", len(values), models.embedCalls)
	}
	if models.embedConfig == nil || models.embedConfig.TaskType != "SEMANTIC_SIMILARITY" {
		t.Fatalf("unexpected embed config: %+v", models.embedConfig)
	}
}

func TestGenerateEmbeddingDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	models := &fakeModels{embedErrs: []error{genai.APIError{Code: 400, Message: "bad request"}}}

	_, err := testGemini(models).GenerateEmbedding(context.Background(), "text")
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != 400 {
		t.Fatalf("expected wrapped APIError, got %v", err)
	}
	if models.embedCalls != 1 {
		t.Fatalf("expected a single attempt, got %d", models.embedCalls)
	}
}

func TestGenerateEmbeddingGivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	unavailable := genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}
	models := &fakeModels{embedErrs: []error{unavailable, unavailable, unavailable, unavailable}}

	if _, err := testGemini(models).GenerateEmbedding(context.Background(), "text"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if models.embedCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", models.embedCalls)
	}
}

func TestGenerateEmbeddingStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	models := &fakeModels{embedErrs: []error{errors.New("timeout"), errors.New("timeout"), errors.New("timeout")}}
	service := newGeminiService(models, GeminiOptions{MaxRetries: 3, InitialDelay: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.GenerateEmbedding(ctx, "text"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if models.embedCalls != 1 {
		t.Fatalf("expected a single attempt before cancellation, got %d", models.embedCalls)
	}
}

func TestGenerateText(t *testing.T) {
	t.Parallel()

	models := &fakeModels{text: `{"name": "Jane Smith"}`}
	text, err := testGemini(models).GenerateText(context.Background(), "prompt", 0)
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if text != `{"name": "Jane Smith"}` {
		t.Fatalf("unexpected text: %q", text)
	}

	empty := &fakeModels{}
	if _, err := testGemini(empty).GenerateText(context.Background(), "prompt", 0); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestGenerateTextWithRetry(t *testing.T) {
	t.Parallel()

	models := &fakeModels{genErr: errors.New("upstream hiccup")}
	if _, err := testGemini(models).GenerateTextWithRetry(context.Background(), "prompt", 0, 2); err == nil {
		t.Fatal("expected error")
	}
	if models.genCalls != 2 {
		t.Fatalf("expected 2 attempts, got %d", models.genCalls)
	}
}
