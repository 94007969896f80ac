// Package csvfile reads raw review datasets and writes augmented ones.
// Columns the pipeline does not interpret are preserved as passthrough
// fields on export.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"reviewpulse/internal/domain"
)

const dateLayout = "2006-01-02"

// Core input columns; everything else is passthrough.
var coreColumns = map[string]bool{
	"review_id": true,
	"app":       true,
	"source":    true,
	"date":      true,
	"review":    true,
	"rating":    true,
}

// augmentedColumns are appended on export, names exact per the downstream
// persistence contract.
var augmentedColumns = []string{
	"bert", "vader", "textblob", "ensemble", "label", "uncertainty", "rule_label", "flag", "themes",
}

// ReadReviews parses a raw review CSV. Required columns: review, rating.
// Optional: review_id, app, source, date. A row with an unparseable rating
// gets rating 0, which the cleaning pass then drops; parsing itself only
// fails on malformed CSV structure.
func ReadReviews(r io.Reader) ([]domain.Review, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := index["review"]; !ok {
		return nil, fmt.Errorf("CSV is missing the required 'review' column")
	}
	if _, ok := index["rating"]; !ok {
		return nil, fmt.Errorf("CSV is missing the required 'rating' column")
	}

	var reviews []domain.Review
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		reviews = append(reviews, rowToReview(header, index, row))
	}
	return reviews, nil
}

func rowToReview(header []string, index map[string]int, row []string) domain.Review {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	review := domain.Review{
		ReviewID: field("review_id"),
		App:      field("app"),
		Source:   field("source"),
		Text:     field("review"),
	}
	review.Rating, _ = strconv.Atoi(field("rating"))
	if raw := field("date"); raw != "" {
		if parsed, err := time.Parse(dateLayout, raw); err == nil {
			review.Date = parsed
		}
	}

	for i, name := range header {
		key := strings.TrimSpace(strings.ToLower(name))
		if coreColumns[key] || i >= len(row) {
			continue
		}
		if review.Extra == nil {
			review.Extra = make(map[string]string)
		}
		review.Extra[key] = row[i]
	}
	return review
}

// WriteReviews writes augmented reviews: core columns, passthrough columns
// (sorted for a stable header), then the sentiment and theme columns.
func WriteReviews(w io.Writer, reviews []domain.Review) error {
	writer := csv.NewWriter(w)

	extraCols := collectExtraColumns(reviews)
	header := []string{"review_id", "app", "source", "date", "review", "rating"}
	header = append(header, extraCols...)
	header = append(header, augmentedColumns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, review := range reviews {
		row := []string{
			review.ReviewID,
			review.App,
			review.Source,
			formatDate(review.Date),
			review.Text,
			strconv.Itoa(review.Rating),
		}
		for _, col := range extraCols {
			row = append(row, review.Extra[col])
		}
		row = append(row, sentimentFields(review.Sentiment)...)
		row = append(row, strings.Join(review.Themes, "|"))
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func collectExtraColumns(reviews []domain.Review) []string {
	seen := make(map[string]bool)
	for _, review := range reviews {
		for col := range review.Extra {
			seen[col] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for col := range seen {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func sentimentFields(s *domain.SentimentRecord) []string {
	if s == nil {
		return []string{"", "", "", "", "", "", "", ""}
	}
	return []string{
		formatScore(s.Bert),
		formatScore(s.Vader),
		formatScore(s.Textblob),
		formatScore(s.Ensemble),
		string(s.Label),
		formatScore(s.Uncertainty),
		string(s.RuleLabel),
		strconv.FormatBool(s.Flag),
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
