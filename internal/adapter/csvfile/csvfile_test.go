package csvfile

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewpulse/internal/domain"
)

const rawCSV = `review_id,app,source,date,review,rating,reviewer_name
r1,cbe,google_play,2026-06-01,"Great app, works well",5,Abebe
r2,boa,google_play,2026-06-02,Crashes on login,1,Tigist
r3,cbe,google_play,,No rating given,abc,
`

func TestReadReviews(t *testing.T) {
	reviews, err := ReadReviews(strings.NewReader(rawCSV))
	require.NoError(t, err)
	require.Len(t, reviews, 3)

	first := reviews[0]
	assert.Equal(t, "r1", first.ReviewID)
	assert.Equal(t, "cbe", first.App)
	assert.Equal(t, "google_play", first.Source)
	assert.Equal(t, "Great app, works well", first.Text)
	assert.Equal(t, 5, first.Rating)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Abebe", first.Extra["reviewer_name"])
}

func TestReadReviews_UnparseableRatingBecomesZero(t *testing.T) {
	reviews, err := ReadReviews(strings.NewReader(rawCSV))
	require.NoError(t, err)

	assert.Zero(t, reviews[2].Rating)
	assert.True(t, reviews[2].Date.IsZero())
}

func TestReadReviews_HeaderCaseInsensitive(t *testing.T) {
	csv := "Review,Rating\nokay app,3\n"

	reviews, err := ReadReviews(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "okay app", reviews[0].Text)
	assert.Equal(t, 3, reviews[0].Rating)
}

func TestReadReviews_MissingRequiredColumns(t *testing.T) {
	_, err := ReadReviews(strings.NewReader("review_id,app\nr1,cbe\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "review")

	_, err = ReadReviews(strings.NewReader("review\nsome text\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating")
}

func TestWriteReviews_RoundTrip(t *testing.T) {
	scored := domain.Review{
		ReviewID: "r1",
		App:      "cbe",
		Source:   "google_play",
		Date:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Text:     "Great app",
		Rating:   5,
		Themes:   []string{"Performance", "Concise Feedback"},
		Extra:    map[string]string{"reviewer_name": "Abebe"},
		Sentiment: &domain.SentimentRecord{
			Bert:      0.9,
			Vader:     0.6,
			Textblob:  0.3,
			Ensemble:  0.6,
			Label:     domain.LabelPositive,
			RuleLabel: domain.LabelPositive,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReviews(&buf, []domain.Review{scored}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		"review_id,app,source,date,review,rating,reviewer_name,bert,vader,textblob,ensemble,label,uncertainty,rule_label,flag,themes",
		lines[0])
	assert.Contains(t, lines[1], "0.900000")
	assert.Contains(t, lines[1], "positive")
	assert.Contains(t, lines[1], "Performance|Concise Feedback")

	// The output parses back with the sentiment columns as passthrough.
	parsed, err := ReadReviews(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Great app", parsed[0].Text)
	assert.Equal(t, "0.600000", parsed[0].Extra["ensemble"])
}

func TestWriteReviews_FailedRecordHasEmptySentimentColumns(t *testing.T) {
	unscored := domain.Review{
		ReviewID: "r2",
		App:      "boa",
		Source:   "google_play",
		Text:     "failed row",
		Rating:   2,
		Themes:   []string{"Other"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReviews(&buf, []domain.Review{unscored}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], ",,,,,,,,Other")
}
