package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-screener/internal/extraction"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/report"
	"alfredoptarigan/resume-screener/internal/scoring"
)

// jobDescriptionLogLimit bounds how much of a job description is logged.
const jobDescriptionLogLimit = 120

// Document is one uploaded file.
type Document struct {
	FileName string
	Data     []byte
}

type ScreenRequest struct {
	Documents      []Document
	JobDescription string
	// Strategy names a registered scoring strategy. Empty selects the default.
	Strategy string
	Sort     bool
}

type ScreenerService interface {
	Screen(ctx context.Context, req ScreenRequest) (*models.Screening, error)
	Strategies() []string
	DefaultStrategy() string
}

type ScreenerOptions struct {
	DefaultStrategy string
	Concurrency     int
	Vocabulary      extraction.Vocabulary
}

type screenerService struct {
	parser   PDFParserService
	registry *scoring.Registry
	names    NameRecognizer
	opts     ScreenerOptions
	logger   *zap.Logger
	now      func() time.Time
}

// NewScreenerService builds the screening pipeline. names may be nil, in which
// case only the heuristic name extractors run.
func NewScreenerService(
	parser PDFParserService,
	registry *scoring.Registry,
	names NameRecognizer,
	opts ScreenerOptions,
	log *zap.Logger,
) ScreenerService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.DefaultStrategy == "" {
		opts.DefaultStrategy = scoring.RuleStrategyName
	}
	opts.Vocabulary = extraction.DefaultVocabulary().Merge(opts.Vocabulary)

	return &screenerService{
		parser:   parser,
		registry: registry,
		names:    names,
		opts:     opts,
		logger:   log,
		now:      time.Now,
	}
}

func (s *screenerService) Strategies() []string {
	return s.registry.Names()
}

func (s *screenerService) DefaultStrategy() string {
	return s.opts.DefaultStrategy
}

// Screen extracts, scores and collects every document of the request. The
// candidates keep upload order unless req.Sort is set. An unreadable document
// still yields a candidate; a scoring failure aborts the whole batch.
func (s *screenerService) Screen(ctx context.Context, req ScreenRequest) (*models.Screening, error) {
	name := strings.TrimSpace(req.Strategy)
	if name == "" {
		name = s.opts.DefaultStrategy
	}

	strategy, err := s.registry.Resolve(name)
	if err != nil {
		return nil, err
	}

	jobDescription := NormalizeJobDescription(req.JobDescription)
	scorer, err := strategy.Bind(ctx, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare %s scoring: %w", strategy.Name(), err)
	}

	id := uuid.New()
	log := logger.WithScreening(s.logger, id.String(), strategy.Name())
	started := s.now()

	log.Info("screening started", zap.Int("documents", len(req.Documents)))
	if jobDescription != "" {
		log.Debug("job description",
			zap.String("job_description", logger.TruncateForLog(jobDescription, jobDescriptionLogLimit)),
		)
	}

	candidates := make([]models.Candidate, len(req.Documents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, doc := range req.Documents {
		g.Go(func() error {
			candidate, err := s.screenDocument(gctx, scorer, doc, log)
			if err != nil {
				return fmt.Errorf("failed to score %s: %w", doc.FileName, err)
			}
			candidates[i] = candidate
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("screening failed", zap.Error(err))
		return nil, err
	}

	if req.Sort {
		candidates = report.SortByScore(candidates)
	}

	log.Info("screening finished",
		zap.Int("candidates", len(candidates)),
		zap.Duration("took", s.now().Sub(started)),
	)

	return &models.Screening{
		ID:             id,
		Strategy:       strategy.Name(),
		JobDescription: jobDescription,
		Sorted:         req.Sort,
		Candidates:     candidates,
		CreatedAt:      started,
	}, nil
}

func (s *screenerService) screenDocument(ctx context.Context, scorer scoring.Scorer, doc Document, log *zap.Logger) (models.Candidate, error) {
	log = logger.WithFields(log, zap.String(logger.FieldFile, doc.FileName))

	text, err := s.parser.ExtractText(doc.Data)
	if err != nil {
		log.Warn("could not extract text, continuing with empty text", zap.Error(err))
		text = ""
	}

	fields := extraction.Extract(text, s.opts.Vocabulary)

	if fields.Name == extraction.NotFound && s.names != nil {
		name, err := s.names.RecognizeName(ctx, text)
		if err != nil {
			log.Warn("name recognition failed", zap.Error(err))
		} else {
			fields.Name = name
		}
	}

	result, err := scorer.Score(ctx, scoring.Subject{Text: text, Fields: fields})
	if err != nil {
		return models.Candidate{}, err
	}

	log.Debug("document screened",
		zap.Float64("score", result.Score),
		zap.String("decision", result.Decision),
	)

	return models.Candidate{
		FileName: doc.FileName,
		Fields:   fields,
		Score:    result.Score,
		Decision: result.Decision,
	}, nil
}
