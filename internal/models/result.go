package models

import (
	"fmt"
	"time"
)

type ScreeningResponse struct {
	ID         string      `json:"id"`
	Strategy   string      `json:"strategy"`
	Sorted     bool        `json:"sorted"`
	Count      int         `json:"count"`
	Candidates []Candidate `json:"candidates"`
	Exports    ExportLinks `json:"exports"`
	CreatedAt  time.Time   `json:"created_at"`
}

type ExportLinks struct {
	CSV  string `json:"csv"`
	XLSX string `json:"xlsx"`
}

// NewScreeningResponse builds the API view of a screening. prefix is the
// route the screening is served under, e.g. "/api/v1/screenings".
func NewScreeningResponse(s *Screening, prefix string) ScreeningResponse {
	export := fmt.Sprintf("%s/%s/export", prefix, s.ID)

	return ScreeningResponse{
		ID:         s.ID.String(),
		Strategy:   s.Strategy,
		Sorted:     s.Sorted,
		Count:      len(s.Candidates),
		Candidates: s.Candidates,
		Exports: ExportLinks{
			CSV:  export + "?format=csv",
			XLSX: export + "?format=xlsx",
		},
		CreatedAt: s.CreatedAt,
	}
}
