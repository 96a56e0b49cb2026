// Package app wires configuration, services and scoring strategies together
// for the HTTP server and the command line tool.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/extraction"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/report"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/scoring"
	"alfredoptarigan/resume-screener/internal/services"
)

type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Layout     report.Layout
	Screener   services.ScreenerService
	Uploads    services.UploadService
	Screenings repositories.ScreeningRepository
	Janitor    services.Worker
}

// New builds every service described by cfg. The semantic strategy and name
// recognition are only available when a Gemini API key is configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	layout, err := report.ParseLayout(cfg.Report.Layout)
	if err != nil {
		return nil, err
	}

	vocab := extraction.DefaultVocabulary()
	if cfg.Scoring.VocabularyFile != "" {
		if vocab, err = extraction.LoadVocabulary(cfg.Scoring.VocabularyFile); err != nil {
			return nil, err
		}
		logger.Info("vocabulary loaded", zap.String("path", cfg.Scoring.VocabularyFile))
	}

	registry := scoring.NewRegistry()
	registry.Register(scoring.NewRuleStrategy(scoring.DefaultRuleThresholds()))

	var names services.NameRecognizer
	if cfg.GeminiEnabled() {
		gemini, err := services.NewGeminiService(ctx, services.GeminiOptions{
			APIKey:       cfg.Gemini.APIKey,
			Model:        cfg.Gemini.Model,
			EmbedModel:   cfg.Gemini.EmbedModel,
			MaxRetries:   cfg.Worker.RetryMaxAttempts,
			InitialDelay: cfg.Worker.RetryInitialDelay,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini: %w", err)
		}

		registry.Register(scoring.NewSemanticStrategy(gemini, scoring.DefaultSemanticThresholds(), cfg.Scoring.ResumeChars))
		if cfg.Scoring.NameRecognition {
			names = services.NewNameRecognizer(gemini, vocab, cfg.Scoring.NameWindow, cfg.Worker.RetryMaxAttempts)
		}
	} else {
		logger.Info("GEMINI_API_KEY not set, semantic scoring and name recognition disabled")
	}

	if _, err := registry.Resolve(cfg.Scoring.Strategy); err != nil {
		return nil, fmt.Errorf("SCORING_STRATEGY: %w (available: %v)", err, registry.Names())
	}

	screenings := repositories.NewScreeningRepository(cfg.Session.TTL)

	return &App{
		Config: cfg,
		Logger: logger,
		Layout: layout,
		Screener: services.NewScreenerService(
			services.NewPDFParserService(logger),
			registry,
			names,
			services.ScreenerOptions{
				DefaultStrategy: cfg.Scoring.Strategy,
				Concurrency:     cfg.Worker.Concurrency,
				Vocabulary:      vocab,
			},
			logger,
		),
		Uploads:    services.NewUploadService(cfg.Upload.MaxFileSize, cfg.Upload.MaxFiles),
		Screenings: screenings,
		Janitor:    services.NewSessionJanitor(screenings, cfg.Session.SweepInterval, logger),
	}, nil
}

// Handlers builds the HTTP handlers backed by the app's services.
func (a *App) Handlers() (*handlers.ScreeningHandler, *handlers.PageHandler) {
	screenings := handlers.NewScreeningHandler(
		a.Screener,
		a.Uploads,
		a.Screenings,
		handlers.Options{Layout: a.Layout, Sort: a.Config.Report.Sort},
		a.Logger,
	)
	return screenings, handlers.NewPageHandler(screenings)
}
