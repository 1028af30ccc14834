package listings

import (
	"context"
	"encoding/json"
	"errors"

	"wanderlust-backend/internal/models"
	"wanderlust-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service implements listing CRUD over GORM.
type Service struct {
	DB *gorm.DB
}

// GetAll returns every listing, oldest first.
func (s *Service) GetAll(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// GetByID returns one listing with its reviews populated in display order.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := s.DB.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&listing, "listing_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// Create persists a new listing from an already-validated payload.
func (s *Service) Create(ctx context.Context, payload validation.ListingPayload) (*models.Listing, error) {
	listing := models.Listing{
		Title:       payload.Title,
		Description: payload.Description,
		Location:    payload.Location,
		Country:     payload.Country,
		Image:       imageJSON(payload),
	}
	if payload.Price != nil {
		listing.Price = *payload.Price
	}
	if err := s.DB.WithContext(ctx).Create(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// Update replaces all listing fields from the submitted payload.
func (s *Service) Update(ctx context.Context, id uuid.UUID, payload validation.ListingPayload) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, "listing_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	listing.Title = payload.Title
	listing.Description = payload.Description
	listing.Location = payload.Location
	listing.Country = payload.Country
	listing.Image = imageJSON(payload)
	listing.Price = 0
	if payload.Price != nil {
		listing.Price = *payload.Price
	}

	if err := s.DB.WithContext(ctx).Save(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// Delete removes a listing and all reviews it owns in one transaction, so a
// failure on either side leaves no orphaned reviews and no dangling listing.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		res := tx.Where("listing_id = ?", id).Delete(&models.Listing{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrListingNotFound
		}
		return nil
	})
}

// imageJSON builds the image column, defaulting each missing field.
func imageJSON(payload validation.ListingPayload) datatypes.JSON {
	img := models.ListingImage{
		Filename: payload.ImageFilename,
		URL:      payload.ImageURL,
	}
	if img.Filename == "" {
		img.Filename = models.DefaultImageFilename
	}
	if img.URL == "" {
		img.URL = models.DefaultImageURL
	}
	b, _ := json.Marshal(img)
	return datatypes.JSON(b)
}
