package handlers

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/report"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

const (
	fieldResumes        = "resumes"
	fieldJobDescription = "job_description"
	fieldStrategy       = "strategy"
	fieldSort           = "sort"

	screeningsPath = "/api/v1/screenings"
)

// Options are the report defaults used when a request does not choose.
type Options struct {
	Layout report.Layout
	Sort   bool
}

type ScreeningHandler struct {
	screener   services.ScreenerService
	uploads    services.UploadService
	screenings repositories.ScreeningRepository
	opts       Options
	logger     *zap.Logger
}

func NewScreeningHandler(
	screener services.ScreenerService,
	uploads services.UploadService,
	screenings repositories.ScreeningRepository,
	opts Options,
	logger *zap.Logger,
) *ScreeningHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Layout == "" {
		opts.Layout = report.LayoutFull
	}

	return &ScreeningHandler{
		screener:   screener,
		uploads:    uploads,
		screenings: screenings,
		opts:       opts,
		logger:     logger,
	}
}

// HandleScreen handles POST /api/v1/screen
func (h *ScreeningHandler) HandleScreen(c *fiber.Ctx) error {
	screening, err := h.screen(c)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewScreeningResponse(screening, screeningsPath))
}

// HandleGetScreening handles GET /api/v1/screenings/:id
func (h *ScreeningHandler) HandleGetScreening(c *fiber.Ctx) error {
	screening, err := h.find(c)
	if err != nil {
		return err
	}

	return c.JSON(models.NewScreeningResponse(screening, screeningsPath))
}

// HandleExport handles GET /api/v1/screenings/:id/export
func (h *ScreeningHandler) HandleExport(c *fiber.Ctx) error {
	screening, err := h.find(c)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		return err
	}

	layout := h.opts.Layout
	if raw := c.Query("layout"); raw != "" {
		if layout, err = report.ParseLayout(raw); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, report.Build(screening.Candidates, layout)); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}

	c.Attachment(report.FileName(format))
	c.Set(fiber.HeaderContentType, report.ContentType(format))
	return c.Send(buf.Bytes())
}

// screen reads the multipart request, screens its resumes and stores the
// result for later retrieval.
func (h *ScreeningHandler) screen(c *fiber.Ctx) (*models.Screening, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse multipart form", services.ErrNoFiles)
	}

	docs, err := h.uploads.ReadUploads(form.File[fieldResumes])
	if err != nil {
		return nil, err
	}

	screening, err := h.screener.Screen(c.UserContext(), services.ScreenRequest{
		Documents:      docs,
		JobDescription: c.FormValue(fieldJobDescription),
		Strategy:       c.FormValue(fieldStrategy),
		Sort:           h.sortRequested(c),
	})
	if err != nil {
		return nil, err
	}

	if err := h.screenings.Save(screening); err != nil {
		return nil, err
	}

	h.logger.Debug("screening stored",
		zap.String(logger.FieldScreening, screening.ID.String()),
		zap.Int("candidates", len(screening.Candidates)),
	)
	return screening, nil
}

func (h *ScreeningHandler) find(c *fiber.Ctx) (*models.Screening, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid screening ID format")
	}
	return h.screenings.FindByID(id)
}

// sortRequested reads the sort field. Anything but a recognisable boolean
// falls back to the configured default.
func (h *ScreeningHandler) sortRequested(c *fiber.Ctx) bool {
	raw := strings.ToLower(strings.TrimSpace(c.FormValue(fieldSort)))
	switch raw {
	case "on", "yes":
		return true
	case "off", "no":
		return false
	}

	sorted, err := strconv.ParseBool(raw)
	if err != nil {
		return h.opts.Sort
	}
	return sorted
}
