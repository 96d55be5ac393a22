// internal/domain/catalog/review_service.go
package catalog

import (
	"strings"

	"github.com/your-org/storefront/internal/pkg/apperr"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ReviewRequest represents the review form
type ReviewRequest struct {
	Rating  int    `form:"rating" json:"rating"`
	Comment string `form:"comment" json:"comment"`
}

// AddReview records a rating for a persisted item
func (s *Service) AddReview(customerID, catalogID uint, req *ReviewRequest) (*Review, error) {
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, apperr.Validation("Rating must be between %d and %d", MinRating, MaxRating)
	}

	entry, err := s.Lookup(catalogID)
	if err != nil {
		return nil, err
	}
	if entry.IsFlash() {
		return nil, apperr.NotAllowed("Flash sale items cannot be reviewed")
	}

	review := Review{
		CustomerID: customerID,
		ItemID:     entry.ItemID(),
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, apperr.Internal("create review", err)
	}

	return &review, nil
}

// ItemReviews returns reviews newest first and their mean rating, nil when there are none
func (s *Service) ItemReviews(itemID uint) ([]Review, *float64, error) {
	var reviews []Review
	if err := s.db.Where("item_id = ?", itemID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, nil, apperr.Internal("load reviews", err)
	}

	if len(reviews) == 0 {
		return []Review{}, nil, nil
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))

	return reviews, &avg, nil
}
