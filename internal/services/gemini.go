package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultGenerationModel = "gemini-2.5-flash"
	defaultEmbeddingModel  = "text-embedding-004"

	// embeddingTaskType asks for vectors tuned for comparing two texts.
	embeddingTaskType = "SEMANTIC_SIMILARITY"
	maxEmbeddingInput = 40000
)

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

// modelsAPI is the subset of *genai.Models the service calls.
type modelsAPI interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiOptions struct {
	APIKey     string
	Model      string
	EmbedModel string
	// MaxRetries bounds the attempts of GenerateEmbedding.
	MaxRetries   int
	InitialDelay time.Duration
}

type geminiService struct {
	models       modelsAPI
	modelName    string
	embedModel   string
	maxRetries   int
	initialDelay time.Duration
	logger       *zap.Logger
}

func NewGeminiService(ctx context.Context, opts GeminiOptions, logger *zap.Logger) (GeminiService, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiService(client.Models, opts, logger), nil
}

func newGeminiService(models modelsAPI, opts GeminiOptions, logger *zap.Logger) *geminiService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Model == "" {
		opts.Model = defaultGenerationModel
	}
	if opts.EmbedModel == "" {
		opts.EmbedModel = defaultEmbeddingModel
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 1
	}

	return &geminiService{
		models:       models,
		modelName:    opts.Model,
		embedModel:   opts.EmbedModel,
		maxRetries:   opts.MaxRetries,
		initialDelay: opts.InitialDelay,
		logger:       logger.With(zap.String("ai_provider", "gemini")),
	}
}

// GenerateEmbedding implements GeminiService. Transient failures are retried
// with exponential backoff.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	runes := []rune(text)
	if len(runes) > maxEmbeddingInput {
		text = string(runes[:maxEmbeddingInput])
	}

	config := &genai.EmbedContentConfig{TaskType: embeddingTaskType}

	var values []float32
	err := g.withRetry(ctx, "embedding", func() error {
		result, err := g.models.EmbedContent(ctx, g.embedModel, genai.Text(text), config)
		if err != nil {
			return fmt.Errorf("failed to generate embedding: %w", err)
		}
		if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
			return errors.New("empty embedding result")
		}
		values = result.Embeddings[0].Values
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  1024,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("no text content in response")
	}
	return text, nil
}

// GenerateTextWithRetry implements GeminiService.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	var text string
	err := g.retry(ctx, "generation", maxRetries, func() error {
		var err error
		text, err = g.GenerateText(ctx, prompt, temperature)
		return err
	})
	return text, err
}

func (g *geminiService) withRetry(ctx context.Context, op string, fn func() error) error {
	return g.retry(ctx, op, g.maxRetries, fn)
}

func (g *geminiService) retry(ctx context.Context, op string, attempts int, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}

	delay := g.initialDelay
	var lastErr error
	attempt := 0

	for attempt < attempts {
		attempt++
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) || attempt == attempts {
			break
		}

		g.logger.Warn("gemini call failed, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(lastErr),
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempt(s): %w", op, attempt, lastErr)
}

// retryable reports whether err may succeed on a later attempt. Client errors
// other than rate limiting are final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}
