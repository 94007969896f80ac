package domain

import "errors"

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrMissingText    = errors.New("review text is required")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrEmptyBatch     = errors.New("batch contains no reviews")
)
