package reviews

import (
	"context"
	"errors"

	"wanderlust-backend/internal/listings"
	"wanderlust-backend/internal/models"
	"wanderlust-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service implements the review sub-resource over GORM. Add and Delete each
// run as one transaction, so the review row and the listing's reference set
// can never disagree.
type Service struct {
	DB *gorm.DB
}

// Add attaches a review to a listing. The position is the next slot in the
// listing's review list, assigned under the same transaction that creates
// the row.
func (s *Service) Add(ctx context.Context, listingID uuid.UUID, payload validation.ReviewPayload) (*models.Review, error) {
	var review models.Review
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, "listing_id = ?", listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return listings.ErrListingNotFound
			}
			return err
		}

		// Max, not count: a delete in the middle of the list must not make
		// the next insert collide with a surviving position.
		var maxPos int64
		if err := tx.Model(&models.Review{}).Where("listing_id = ?", listingID).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos).Error; err != nil {
			return err
		}

		review = models.Review{
			ListingID: listingID,
			Rating:    payload.Rating,
			Comment:   payload.Comment,
			Position:  int(maxPos) + 1,
		}
		return tx.Create(&review).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes one review from its listing. The listing id in the URL must
// match the review's owner; a mismatch reads as "review not found" rather
// than detaching someone else's review.
func (s *Service) Delete(ctx context.Context, listingID, reviewID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("review_id = ? AND listing_id = ?", reviewID, listingID).Delete(&models.Review{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrReviewNotFound
		}
		return nil
	})
}
