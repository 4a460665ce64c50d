package domain

import (
	"time"

	"github.com/capital-schemes/backend/internal/types"
	"golang.org/x/exp/slices"
)

// AuthorityReview records that an authority confirmed its scheme data is up
// to date. Reviews are historical facts, there is no notion of a current
// one.
type AuthorityReview struct {
	ID         uint // zero until persisted
	ReviewDate time.Time
	Source     DataSource
}

// SchemeReviews is the append-only ledger of a scheme's authority reviews.
type SchemeReviews struct {
	reviews []AuthorityReview
}

// AuthorityReviews returns a copy of the ledger.
func (r *SchemeReviews) AuthorityReviews() []AuthorityReview {
	return slices.Clone(r.reviews)
}

// UpdateAuthorityReview appends a review.
func (r *SchemeReviews) UpdateAuthorityReview(review AuthorityReview) {
	r.reviews = append(r.reviews, review)
}

// UpdateAuthorityReviews appends reviews in the given order.
func (r *SchemeReviews) UpdateAuthorityReviews(reviews ...AuthorityReview) {
	r.reviews = append(r.reviews, reviews...)
}

// LastReviewed is the most recent review date, or nil when the scheme has
// never been reviewed.
func (r *SchemeReviews) LastReviewed() *time.Time {
	var last *time.Time
	for _, review := range r.reviews {
		if last == nil || review.ReviewDate.After(*last) {
			reviewDate := review.ReviewDate
			last = &reviewDate
		}
	}

	return last
}

// NeedsReview reports whether the scheme has not been reviewed since the
// reporting window opened. A review at the window start counts.
func (r *SchemeReviews) NeedsReview(window types.ReportingWindow) bool {
	last := r.LastReviewed()
	return last == nil || last.Before(window.Start())
}
