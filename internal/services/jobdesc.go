package services

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"alfredoptarigan/resume-screener/internal/extraction"
)

var (
	htmlMarkup    = regexp.MustCompile(`(?i)<\s*(?:html|body|div|p|ul|ol|li|br|span|h[1-6]|table|strong|b|em)\b[^>]*>`)
	blockElements = "p, div, li, br, tr, h1, h2, h3, h4, h5, h6"
)

// NormalizeJobDescription returns the plain text of a pasted job description.
// Descriptions copied from a job board as HTML are reduced to their visible
// text. Whitespace is collapsed either way.
func NormalizeJobDescription(raw string) string {
	if !htmlMarkup.MatchString(raw) {
		return extraction.Clean(raw)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return extraction.Clean(raw)
	}

	doc.Find("script, style, noscript, head").Remove()
	// keep words from adjacent blocks apart
	doc.Find(blockElements).AfterHtml(" ")

	return extraction.Clean(doc.Text())
}
