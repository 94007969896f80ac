package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reviewpulse/internal/domain"
)

// reviewColumns must match the Scan order in scanReview.
const reviewColumns = `id, review_id, app, source, review_date, review_text, rating,
	bert, vader, textblob, ensemble, label, uncertainty, rule_label, flag, themes`

// ReviewRepo implements domain.ReviewRepository backed by PostgreSQL.
type ReviewRepo struct {
	pool *pgxpool.Pool
}

// NewReviewRepo creates a ReviewRepo from the shared pool.
func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

// InsertBatch upserts augmented reviews in one transaction, keyed by
// (review_id, source). Returns the number of rows written.
func (r *ReviewRepo) InsertBatch(ctx context.Context, reviews []domain.Review) (int, error) {
	if len(reviews) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, review := range reviews {
		var s *domain.SentimentRecord
		if s = review.Sentiment; s == nil {
			s = &domain.SentimentRecord{}
		}
		batch.Queue(`
			insert into reviews (
				review_id, app, source, review_date, review_text, rating,
				bert, vader, textblob, ensemble, label, uncertainty, rule_label, flag, themes
			) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			on conflict (review_id, source) do update set
				bert = excluded.bert,
				vader = excluded.vader,
				textblob = excluded.textblob,
				ensemble = excluded.ensemble,
				label = excluded.label,
				uncertainty = excluded.uncertainty,
				rule_label = excluded.rule_label,
				flag = excluded.flag,
				themes = excluded.themes`,
			review.ReviewID, review.App, review.Source, review.Date, review.Text, review.Rating,
			s.Bert, s.Vader, s.Textblob, s.Ensemble, string(s.Label), s.Uncertainty, string(s.RuleLabel), s.Flag,
			review.Themes,
		)
	}

	results := tx.SendBatch(ctx, batch)
	written := 0
	for range reviews {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("failed to insert review batch: %w", err)
		}
		written += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit review batch: %w", err)
	}
	return written, nil
}

// ListByApp returns augmented reviews for one app, optionally only flagged
// ones, newest first.
func (r *ReviewRepo) ListByApp(ctx context.Context, app string, flaggedOnly bool) ([]domain.Review, error) {
	query := `select ` + reviewColumns + ` from reviews where app = $1`
	if flaggedOnly {
		query += ` and flag`
	}
	query += ` order by review_date desc nulls last, review_id`

	rows, err := r.pool.Query(ctx, query, app)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read review rows: %w", err)
	}
	return reviews, nil
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var review domain.Review
	var s domain.SentimentRecord
	var label, ruleLabel string

	err := row.Scan(
		&review.ID, &review.ReviewID, &review.App, &review.Source, &review.Date, &review.Text, &review.Rating,
		&s.Bert, &s.Vader, &s.Textblob, &s.Ensemble, &label, &s.Uncertainty, &ruleLabel, &s.Flag,
		&review.Themes,
	)
	if err != nil {
		return domain.Review{}, fmt.Errorf("failed to scan review: %w", err)
	}

	s.Label = domain.Label(label)
	s.RuleLabel = domain.Label(ruleLabel)
	review.Sentiment = &s
	return review, nil
}
