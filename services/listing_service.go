package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"sponsor-dashboard-system/middleware"
	"sponsor-dashboard-system/models"
	"sponsor-dashboard-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// emailConcurrency caps the number of notification sends in flight at once.
const emailConcurrency = 5

type ListingService struct {
	DB     *gorm.DB
	Cfg    Config
	Mailer EmailSender
	Unsubs UnsubProvider
	HTTP   *http.Client
}

func NewListingService(db *gorm.DB, cfg Config, mailer EmailSender, unsubs UnsubProvider) *ListingService {
	return &ListingService{
		DB:     db,
		Cfg:    cfg,
		Mailer: mailer,
		Unsubs: unsubs,
		HTTP:   utils.HTTPClient,
	}
}

// UpdateListingRequest is the partial update payload for a listing. Nil
// fields are left untouched on the record.
type UpdateListingRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Type        *models.ListingType `json:"type"`
	Deadline    *time.Time          `json:"deadline"`
	Rewards     models.Rewards      `json:"rewards"`
}

// UpdateListing applies a partial update to a sponsor's listing and runs its
// side effects: trimming winner positions when the reward count shrinks,
// notifying subscribers when the deadline moves, and posting the resulting
// record to the outbound webhook.
func (s *ListingService) UpdateListing(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "listing id is required"})
	}

	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "User does not have a current sponsor."})
	}
	if user.CurrentSponsorID == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "User does not have a current sponsor."})
	}

	var current models.Listing
	if err := s.DB.First(&current, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Listing with id=%s not found.", id),
			})
		}
		return s.updateFailed(c, id, err)
	}

	if current.SponsorID != *user.CurrentSponsorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Listing does not belong to the user's current sponsor."})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if req.Rewards != nil {
		updates["rewards"] = req.Rewards
	}

	// An absent rewards mapping counts as zero tiers, matching how the
	// dashboard always submits the full mapping on edit.
	newRewardsCount := len(req.Rewards)
	if newRewardsCount < current.TotalWinnersSelected {
		updates["total_winners_selected"] = newRewardsCount

		for _, position := range models.PositionsBeyond(newRewardsCount) {
			err := s.DB.Model(&models.Submission{}).
				Where("listing_id = ? AND is_winner = ? AND winner_position = ?", id, true, position).
				Updates(map[string]interface{}{
					"is_winner":       false,
					"winner_position": nil,
				}).Error
			if err != nil {
				return s.updateFailed(c, id, err)
			}
		}
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.Listing{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return s.updateFailed(c, id, err)
		}
	}

	var result models.Listing
	if err := s.DB.First(&result, "id = ?", id).Error; err != nil {
		return s.updateFailed(c, id, err)
	}

	if deadlineChanged(current.Deadline, result.Deadline) {
		if err := s.notifyDeadlineExtended(&result); err != nil {
			return s.updateFailed(c, id, err)
		}
	}

	if err := s.postWebhook(&result); err != nil {
		return s.updateFailed(c, id, err)
	}

	return c.JSON(result)
}

func (s *ListingService) updateFailed(c *fiber.Ctx, id string, err error) error {
	log.Printf("[LISTING] update %s failed: %v", id, err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   err.Error(),
		"message": fmt.Sprintf("Error occurred while updating listing with id=%s.", id),
	})
}

func deadlineChanged(before, after *time.Time) bool {
	if before == nil || after == nil {
		return before != after
	}
	return !before.Equal(*after)
}

// notifyDeadlineExtended emails every subscriber of the listing that has not
// unsubscribed, at most emailConcurrency sends in flight. Individual send
// failures do not stop the rest of the batch; the first failure is reported
// once the batch drains.
func (s *ListingService) notifyDeadlineExtended(listing *models.Listing) error {
	var subscribers []models.SubscribeListing
	if err := s.DB.Preload("User").Where("listing_id = ?", listing.ID).Find(&subscribers).Error; err != nil {
		return fmt.Errorf("failed to load subscribers: %w", err)
	}

	unsubscribed, err := s.Unsubs.UnsubscribedEmails()
	if err != nil {
		return fmt.Errorf("failed to load unsubscribe list: %w", err)
	}
	unsubSet := make(map[string]bool, len(unsubscribed))
	for _, email := range unsubscribed {
		unsubSet[email] = true
	}

	var recipients []models.SubscribeListing
	for _, sub := range subscribers {
		if !unsubSet[sub.User.Email] {
			recipients = append(recipients, sub)
		}
	}

	link := fmt.Sprintf("%s/listings/%s/%s/", s.Cfg.FrontendBaseURL, listing.Type, listing.Slug)
	subject, html := deadlineExtendedEmail(listing.Title, link)

	return utils.RunLimited(recipients, emailConcurrency, func(sub models.SubscribeListing) error {
		if err := s.Mailer.Send(sub.User.Email, subject, html); err != nil {
			log.Printf("[LISTING] deadline notification to %s failed: %v", sub.User.Email, err)
			return err
		}
		return nil
	})
}

// postWebhook posts the resulting listing record to the configured outbound
// webhook. Runs on every update, whether or not the deadline moved.
func (s *ListingService) postWebhook(listing *models.Listing) error {
	payload, err := json.Marshal(listing)
	if err != nil {
		return err
	}

	resp, err := s.HTTP.Post(s.Cfg.WebhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("webhook post failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// DeleteDraft deletes a draft listing and its submissions. Published
// listings are not deletable through this path.
func (s *ListingService) DeleteDraft(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "listing id is required"})
	}

	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil || user.CurrentSponsorID == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "User does not have a current sponsor."})
	}

	var listing models.Listing
	if err := s.DB.First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Listing with id=%s not found.", id),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load listing"})
	}

	if listing.SponsorID != *user.CurrentSponsorID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Listing does not belong to the user's current sponsor."})
	}

	if !listing.IsDraft() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "only draft listings can be deleted"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&listing).Error
	})
	if err != nil {
		log.Printf("[LISTING] delete draft %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete draft"})
	}

	return c.JSON(fiber.Map{"message": "draft deleted"})
}

// CreateDraftRequest is the payload for creating a new draft listing.
type CreateDraftRequest struct {
	Title       string             `json:"title"`
	Type        models.ListingType `json:"type"`
	Description string             `json:"description"`
	Deadline    *time.Time         `json:"deadline"`
	Rewards     models.Rewards     `json:"rewards"`
}

// CreateDraft creates a new draft listing for the caller's current sponsor.
func (s *ListingService) CreateDraft(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil || user.CurrentSponsorID == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "User does not have a current sponsor."})
	}

	var req CreateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	if req.Type == "" {
		req.Type = models.ListingTypeBounty
	}

	listingSlug := slug.Make(req.Title)
	// soft-deleted drafts still occupy the unique slug index
	var taken int64
	if err := s.DB.Unscoped().Model(&models.Listing{}).Where("slug = ?", listingSlug).Count(&taken).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create draft"})
	}
	if taken > 0 {
		listingSlug = fmt.Sprintf("%s-%s", listingSlug, uuid.NewString()[:8])
	}

	listing := models.Listing{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        listingSlug,
		Type:        req.Type,
		Description: req.Description,
		Deadline:    req.Deadline,
		Rewards:     req.Rewards,
		SponsorID:   *user.CurrentSponsorID,
		Status:      models.ListingStatusDraft,
	}

	if err := s.DB.Create(&listing).Error; err != nil {
		log.Printf("[LISTING] create draft failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create draft"})
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

// GetSponsorListings returns the caller's sponsor listings, newest first.
// This is the collection the dashboard's delete-draft flow operates over.
func (s *ListingService) GetSponsorListings(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil || user.CurrentSponsorID == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "User does not have a current sponsor."})
	}

	var listings []models.Listing
	if err := s.DB.Where("sponsor_id = ?", *user.CurrentSponsorID).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load listings"})
	}

	return c.JSON(listings)
}

// UploadSponsorLogo stores a sponsor logo in R2 and persists its public URL.
func (s *ListingService) UploadSponsorLogo(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil || user.CurrentSponsorID == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "User does not have a current sponsor."})
	}

	logoFile, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "logo is required"})
	}

	ext := filepath.Ext(logoFile.Filename)
	if ext == "" {
		ext = ".png"
	}
	key := "logos/" + uuid.NewString() + ext

	logoURL, err := utils.UploadFileToR2(logoFile, key)
	if err != nil {
		log.Printf("[SPONSOR] logo upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload logo"})
	}

	if err := s.DB.Model(&models.Sponsor{}).
		Where("id = ?", *user.CurrentSponsorID).
		Update("logo_url", logoURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save logo"})
	}

	return c.JSON(fiber.Map{"logo_url": logoURL})
}
