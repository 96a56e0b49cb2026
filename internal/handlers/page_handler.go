package handlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/report"
	"alfredoptarigan/resume-screener/internal/scoring"
	"alfredoptarigan/resume-screener/internal/services"
)

//go:embed views/*.html
var viewFS embed.FS

var views = template.Must(template.ParseFS(viewFS, "views/*.html"))

type pageData struct {
	Strategies     []string
	Strategy       string
	JobDescription string
	Sort           bool
	Notice         string

	Result *resultView
}

type resultView struct {
	ID       string
	Strategy string
	Table    report.Table
	Exports  models.ExportLinks
}

// PageHandler serves the browser form on top of ScreeningHandler.
type PageHandler struct {
	screenings *ScreeningHandler
}

func NewPageHandler(screenings *ScreeningHandler) *PageHandler {
	return &PageHandler{screenings: screenings}
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, h.formData(c))
}

// HandleScreen handles POST /screen. Input errors re-render the form with a
// notice instead of a JSON error.
func (h *PageHandler) HandleScreen(c *fiber.Ctx) error {
	data := h.formData(c)

	screening, err := h.screenings.screen(c)
	if err != nil {
		status := statusFor(err)
		if status != fiber.StatusBadRequest {
			return err
		}
		data.Notice = notice(err)
		return h.render(c, status, data)
	}

	data.Result = &resultView{
		ID:       screening.ID.String(),
		Strategy: screening.Strategy,
		Table:    report.Build(screening.Candidates, h.screenings.opts.Layout),
		Exports:  models.NewScreeningResponse(screening, screeningsPath).Exports,
	}
	return h.render(c, fiber.StatusOK, data)
}

func (h *PageHandler) formData(c *fiber.Ctx) pageData {
	strategy := c.FormValue(fieldStrategy)
	if strategy == "" {
		strategy = h.screenings.screener.DefaultStrategy()
	}

	return pageData{
		Strategies:     h.screenings.screener.Strategies(),
		Strategy:       strategy,
		JobDescription: c.FormValue(fieldJobDescription),
		Sort:           h.screenings.sortRequested(c),
	}
}

func (h *PageHandler) render(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, "index.html", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// notice turns an input error into the message shown above the form.
func notice(err error) string {
	switch {
	case errors.Is(err, scoring.ErrJobDescriptionRequired):
		return "Please enter a job description for semantic matching."
	case errors.Is(err, services.ErrNoFiles):
		return "Please upload at least one PDF resume."
	default:
		return err.Error()
	}
}
