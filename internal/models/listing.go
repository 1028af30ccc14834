package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Default image applied when a listing is created without one.
const (
	DefaultImageFilename = "listingimage"
	DefaultImageURL      = "https://images.unsplash.com/photo-1603477849227-705c424d1d80?fm=jpg&q=60&w=3000"
)

// ListingImage is the image subdocument stored as a JSON column.
type ListingImage struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Listing is a rentable property record, the primary entity. Reviews are
// separate rows owned by the listing; display order is insertion order
// (Review.Position). Deleting a listing must delete its reviews — see the
// listings service cascade transaction.
type Listing struct {
	ListingID   uuid.UUID      `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Price       float64        `gorm:"column:price;type:decimal(18,2)" json:"price"`
	Location    string         `gorm:"column:location" json:"location"`
	Country     string         `gorm:"column:country" json:"country"`
	Image       datatypes.JSON `gorm:"column:image;type:json" json:"image"`
	Reviews     []Review       `gorm:"foreignKey:ListingID;references:ListingID" json:"reviews,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (Listing) TableName() string {
	return "Listings"
}

// BeforeCreate sets UUID and the default image when absent.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	if len(l.Image) == 0 {
		img, err := json.Marshal(ListingImage{Filename: DefaultImageFilename, URL: DefaultImageURL})
		if err != nil {
			return err
		}
		l.Image = datatypes.JSON(img)
	}
	return nil
}
