package models

import (
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/extraction"
)

// Candidate is one screened resume. It is built once by the screening
// pipeline and not modified afterwards.
type Candidate struct {
	FileName string `json:"file_name"`
	extraction.Fields
	Score    float64 `json:"score"`
	Decision string  `json:"decision"`
}

// Screening is the result of one batch of uploaded resumes.
type Screening struct {
	ID             uuid.UUID   `json:"id"`
	Strategy       string      `json:"strategy"`
	JobDescription string      `json:"-"`
	Sorted         bool        `json:"sorted"`
	Candidates     []Candidate `json:"candidates"`
	CreatedAt      time.Time   `json:"created_at"`
}
