package models

import (
	"time"

	gorm "gorm.io/gorm"
)

// ListingType indicates what kind of opportunity a listing is
type ListingType string

const (
	ListingTypeBounty    ListingType = "bounty"
	ListingTypeProject   ListingType = "project"
	ListingTypeHackathon ListingType = "hackathon"
)

// ListingStatus indicates the publishing status of the listing
type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "draft"
	ListingStatusPublished ListingStatus = "published"
	ListingStatusReview    ListingStatus = "review"
	ListingStatusClosed    ListingStatus = "closed"
)

// Listing represents a sponsor-owned bounty/listing
type Listing struct {
	ID                   string        `gorm:"primaryKey;type:uuid" json:"id"`
	Title                string        `gorm:"not null" json:"title"`
	Slug                 string        `gorm:"uniqueIndex;not null" json:"slug"`
	Type                 ListingType   `gorm:"type:varchar(16);not null;default:'bounty'" json:"type"`
	Description          string        `gorm:"type:text" json:"description"`
	Deadline             *time.Time    `json:"deadline,omitempty"`
	Rewards              Rewards       `gorm:"type:jsonb" json:"rewards,omitempty"`
	TotalWinnersSelected int           `gorm:"default:0" json:"totalWinnersSelected"`
	SponsorID            string        `gorm:"index;not null" json:"sponsorId"`
	IsWinnersAnnounced   bool          `gorm:"default:false" json:"isWinnersAnnounced"`
	Status               ListingStatus `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsDraft reports whether the listing is still an unpublished draft.
func (l *Listing) IsDraft() bool {
	return l.Status == ListingStatusDraft
}
