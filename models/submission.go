package models

import (
	"time"

	gorm "gorm.io/gorm"
)

// Submission is a user's entry to a listing. WinnerPosition is set only
// while IsWinner is true; the listing update flow clears both together
// when a reward tier is removed.
type Submission struct {
	ID             string          `gorm:"primaryKey;type:uuid" json:"id"`
	ListingID      string          `gorm:"index;not null" json:"listingId"`
	UserID         string          `gorm:"index;not null" json:"userId"`
	Link           string          `gorm:"type:text" json:"link,omitempty"`
	IsWinner       bool            `gorm:"default:false" json:"isWinner"`
	WinnerPosition *WinnerPosition `gorm:"type:varchar(16)" json:"winnerPosition,omitempty"`

	Listing Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
