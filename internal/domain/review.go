package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReviewInput is the minimal per-record input the scoring engine consumes.
// Text and rating are both required; a record missing either is disqualified
// with a validation error before any scorer runs.
type ReviewInput struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// Review is a scraped app review flowing through the pipeline. Extra carries
// passthrough columns from the source dataset that the engine does not
// interpret but must preserve on export.
type Review struct {
	ID        uuid.UUID
	ReviewID  string
	App       string
	Source    string
	Date      time.Time
	Text      string
	Rating    int
	Themes    []string
	Sentiment *SentimentRecord
	Extra     map[string]string
}

// Input projects the review down to the engine's input contract.
func (r Review) Input() ReviewInput {
	return ReviewInput{Text: r.Text, Rating: r.Rating}
}

// ReviewRepository persists augmented reviews.
type ReviewRepository interface {
	InsertBatch(ctx context.Context, reviews []Review) (int, error)
	ListByApp(ctx context.Context, app string, flaggedOnly bool) ([]Review, error)
}
