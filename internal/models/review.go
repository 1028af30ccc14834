package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a rating+comment record attached to exactly one listing.
// Position is assigned inside the add-review transaction and fixes the
// display order of a listing's reviews.
type Review struct {
	ReviewID  uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Comment   string    `gorm:"column:comment;not null" json:"comment"`
	Position  int       `gorm:"column:position;not null" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Review) TableName() string {
	return "Reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == uuid.Nil {
		r.ReviewID = uuid.New()
	}
	return nil
}
