package models

import "time"

// SubscribeListing relates a user to a listing they want deadline-change
// notifications for. Read-only in this service.
type SubscribeListing struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	ListingID string `gorm:"index;not null" json:"listingId"`
	UserID    string `gorm:"index;not null" json:"userId"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
