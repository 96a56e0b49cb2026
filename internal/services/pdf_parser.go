package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrMalformedPDF  = errors.New("malformed PDF")
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextWithMetaData(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text         string
	PageCount    int
	SkippedPages int
}

type pdfParserService struct {
	logger *zap.Logger
}

func NewPDFParserService(logger *zap.Logger) PDFParserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pdfParserService{logger: logger}
}

// ExtractText returns the plain text of every page, one page per line group.
// A PDF without a text layer yields an empty string and no error.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	content, err := p.ExtractTextWithMetaData(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func (p *pdfParserService) ExtractTextWithMetaData(data []byte) (content *PDFContent, err error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("%w: %v", ErrMalformedPDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()
	skipped := 0

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			skipped++
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Debug("skipping unreadable page", zap.Int("page", pageIndex), zap.Error(err))
			skipped++
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return &PDFContent{
		Text:         textBuilder.String(),
		PageCount:    totalPage,
		SkippedPages: skipped,
	}, nil
}
