// Package cleaning prepares raw scraped reviews for scoring: drops records
// with missing required fields, blank text, or duplicate review IDs, and
// normalizes whitespace in the surviving text.
package cleaning

import (
	"log/slog"
	"regexp"
	"strings"

	"reviewpulse/internal/domain"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Report counts what one cleaning pass dropped and why.
type Report struct {
	Input         int `json:"input"`
	MissingFields int `json:"missing_fields"`
	BlankText     int `json:"blank_text"`
	DuplicateIDs  int `json:"duplicate_ids"`
	Kept          int `json:"kept"`
}

// Dropped is the total number of discarded records.
func (r Report) Dropped() int {
	return r.MissingFields + r.BlankText + r.DuplicateIDs
}

// Log writes the report as structured diagnostics.
func (r Report) Log(logger *slog.Logger) {
	logger.Info("Cleaning pass finished",
		"input", r.Input,
		"missing_fields", r.MissingFields,
		"blank_text", r.BlankText,
		"duplicate_ids", r.DuplicateIDs,
		"kept", r.Kept,
	)
}

// Clean filters and normalizes raw reviews, preserving input order.
// Required fields are text, rating (1-5), app and source; the first
// occurrence of a duplicated review ID wins.
func Clean(reviews []domain.Review) ([]domain.Review, Report) {
	report := Report{Input: len(reviews)}
	seen := make(map[string]bool, len(reviews))
	cleaned := make([]domain.Review, 0, len(reviews))

	for _, review := range reviews {
		if review.Rating < 1 || review.Rating > 5 || review.App == "" || review.Source == "" {
			report.MissingFields++
			continue
		}
		text := normalizeWhitespace(review.Text)
		if text == "" {
			report.BlankText++
			continue
		}
		if review.ReviewID != "" {
			if seen[review.ReviewID] {
				report.DuplicateIDs++
				continue
			}
			seen[review.ReviewID] = true
		}

		review.Text = text
		cleaned = append(cleaned, review)
	}

	report.Kept = len(cleaned)
	return cleaned, report
}

func normalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
