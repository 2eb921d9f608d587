package models

import (
	"time"
)

// User is a platform account. CurrentSponsorID (nullable) establishes which
// sponsor the user currently acts on behalf of; sponsor-scoped mutations are
// authorized only when it matches the target listing's SponsorID.
type User struct {
	ID               string  `gorm:"primaryKey;type:uuid" json:"id"`
	Email            string  `gorm:"uniqueIndex;not null" json:"email"`
	Username         string  `gorm:"index" json:"username,omitempty"`
	CurrentSponsorID *string `gorm:"index" json:"currentSponsorId,omitempty"`

	Submissions []Submission `gorm:"foreignKey:UserID" json:"submissions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sponsor is the owning entity of listings.
type Sponsor struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Slug    string `gorm:"uniqueIndex;not null" json:"slug"`
	LogoURL string `gorm:"type:text" json:"logo_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
