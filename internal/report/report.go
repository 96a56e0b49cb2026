// Package report turns screened candidates into a ranked table and writes it
// as CSV or as an XLSX workbook.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

// Layout selects the column schema of a report.
type Layout string

const (
	LayoutFull    Layout = "full"
	LayoutCompact Layout = "compact"
)

const (
	ColumnName           = "Name"
	ColumnEmail          = "Email"
	ColumnPhone          = "Phone"
	ColumnExperience     = "Experience(Years)"
	ColumnEducation      = "Education"
	ColumnSkills         = "Skills"
	ColumnProjects       = "Projects"
	ColumnCertifications = "Certifications"
	ColumnScore          = "Score"
	ColumnStatus         = "Status"
)

var ErrUnknownLayout = errors.New("unknown report layout")

// ParseLayout parses a layout name. An empty name selects the full layout.
func ParseLayout(name string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(name))) {
	case "", LayoutFull:
		return LayoutFull, nil
	case LayoutCompact:
		return LayoutCompact, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
}

// Columns returns the header row of the layout.
func (l Layout) Columns() []string {
	if l == LayoutCompact {
		return []string{ColumnName, ColumnEmail, ColumnSkills, ColumnScore, ColumnStatus}
	}
	return []string{
		ColumnName, ColumnEmail, ColumnPhone, ColumnExperience, ColumnEducation,
		ColumnSkills, ColumnProjects, ColumnCertifications, ColumnScore, ColumnStatus,
	}
}

// Table is a rendered report: a header row and one string row per candidate.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Build renders candidates in the given order.
func Build(candidates []models.Candidate, layout Layout) Table {
	headers := layout.Columns()
	rows := make([][]string, 0, len(candidates))

	for _, candidate := range candidates {
		row := make([]string, len(headers))
		for i, column := range headers {
			row[i] = cell(candidate, column)
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}
}

func cell(c models.Candidate, column string) string {
	switch column {
	case ColumnName:
		return c.Name
	case ColumnEmail:
		return c.Email
	case ColumnPhone:
		return c.Phone
	case ColumnExperience:
		return strconv.Itoa(c.ExperienceYears)
	case ColumnEducation:
		return c.Education
	case ColumnSkills:
		return c.SkillsDisplay()
	case ColumnProjects:
		return c.ProjectsDisplay()
	case ColumnCertifications:
		return c.CertificationsDisplay()
	case ColumnScore:
		return FormatScore(c.Score)
	case ColumnStatus:
		return c.Decision
	default:
		return ""
	}
}

// SortByScore returns a copy of candidates ordered by descending score.
// Candidates with equal scores keep their upload order.
func SortByScore(candidates []models.Candidate) []models.Candidate {
	sorted := make([]models.Candidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

// FormatScore prints a score without trailing zeros: 25, 57.74.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
