package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildNameRecognitionPrompt asks the model to pick the candidate's own name
// out of the top of a resume.
func (pb *PromptBuilder) BuildNameRecognitionPrompt(resumeHead string) string {
	return fmt.Sprintf(`You are reading the beginning of a candidate's resume that was extracted from a PDF.
Line breaks and spacing may be lost.

RESUME TEXT:
%s

Identify the full personal name of the candidate who wrote this resume.
Ignore section headings, job titles, company names, university names, and the names of referees.

Return your response in the following JSON format:
{
  "name": "<full name of the candidate, or an empty string if no name is present>"
}`, resumeHead)
}
